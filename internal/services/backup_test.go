package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fsdevblog/linkly/internal/backup"
	"github.com/fsdevblog/linkly/internal/db"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{}

func (failingSink) Write(context.Context, []byte) error  { return errors.New("disk full") }
func (failingSink) Read(context.Context) ([]byte, error) { return nil, errors.New("disk gone") }
func (failingSink) String() string                       { return "failing" }

func TestBackupService_MissingSnapshotIsNotAnError(t *testing.T) {
	sink := backup.NewFileSink(filepath.Join(t.TempDir(), "none.json"))
	svc := NewBackupService(db.NewMemStorage(), sink, logrus.New())

	require.NoError(t, svc.Restore(t.Context()))
}

func TestBackupService_RoundTrip(t *testing.T) {
	sink := backup.NewFileSink(filepath.Join(t.TempDir(), "snapshot.json"))

	src := db.NewMemStorage()
	s, err := Factory(src, ServiceTypeInMemory, Params{JWTSecret: testSecret, BackupSink: sink}, logrus.New())
	require.NoError(t, err)
	require.NotNil(t, s.BackupService)

	alice := signIn(t, s, "alice@example.com", "secret", "")
	_, _, err = s.LinkService.Shorten(t.Context(), alice, "https://example.com", nil)
	require.NoError(t, err)
	require.NoError(t, s.BackupService.Backup(t.Context()))

	restored, err := Factory(db.NewMemStorage(), ServiceTypeInMemory,
		Params{JWTSecret: testSecret, BackupSink: sink}, logrus.New())
	require.NoError(t, err)
	require.NoError(t, restored.BackupService.Restore(t.Context()))

	links, err := restored.LinkService.ListOwn(t.Context(), alice)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com", links[0].TargetURL)
}

func TestBackupService_SinkErrors(t *testing.T) {
	svc := NewBackupService(db.NewMemStorage(), failingSink{}, logrus.New())

	assert.Error(t, svc.Backup(t.Context()))
	assert.Error(t, svc.Restore(t.Context()))
}
