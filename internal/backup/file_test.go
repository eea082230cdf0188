package backup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	sink := NewFileSink(path)

	_, err := sink.Read(t.Context())
	require.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, sink.Write(t.Context(), []byte(`{"users":{}}`)))
	require.NoError(t, sink.Write(t.Context(), []byte(`{"links":{}}`)))

	data, err := sink.Read(t.Context())
	require.NoError(t, err)
	assert.JSONEq(t, `{"links":{}}`, string(data))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
