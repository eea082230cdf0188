package services

import (
	"context"
	"fmt"

	"github.com/fsdevblog/linkly/internal/backup"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Snapshotter хранилище, умеющее сохранять и восстанавливать свое состояние целиком.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
	Restore(ctx context.Context, data []byte) error
}

// BackupService переносит снимок in-memory хранилища в backup.Sink и обратно.
type BackupService struct {
	store  Snapshotter
	sink   backup.Sink
	logger *logrus.Entry
}

func NewBackupService(store Snapshotter, sink backup.Sink, logger *logrus.Logger) *BackupService {
	return &BackupService{
		store:  store,
		sink:   sink,
		logger: logger.WithField("module", "service/backup"),
	}
}

func (b *BackupService) Backup(ctx context.Context) error {
	data, err := b.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("make snapshot: %w", err)
	}
	if err = b.sink.Write(ctx, data); err != nil {
		return fmt.Errorf("write snapshot to %s: %w", b.sink, err)
	}
	b.logger.Infof("snapshot saved to %s", b.sink)
	return nil
}

// Restore загружает снимок, если он есть. Отсутствие снимка не ошибка.
func (b *BackupService) Restore(ctx context.Context) error {
	data, err := b.sink.Read(ctx)
	if err != nil {
		if errors.Is(err, backup.ErrNoSnapshot) {
			b.logger.Infof("no snapshot at %s, starting empty", b.sink)
			return nil
		}
		return fmt.Errorf("read snapshot from %s: %w", b.sink, err)
	}
	if err = b.store.Restore(ctx, data); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	b.logger.Infof("snapshot restored from %s", b.sink)
	return nil
}
