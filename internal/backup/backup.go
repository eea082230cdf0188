// Package backup хранит снимки in-memory хранилища между перезапусками: в локальном файле или в MinIO.
package backup

import (
	"context"
	"errors"
)

// ErrNoSnapshot снимок еще ни разу не сохранялся.
var ErrNoSnapshot = errors.New("[backup]: snapshot not found")

// Sink место хранения снимка.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	// Read возвращает ErrNoSnapshot, если снимка нет.
	Read(ctx context.Context) ([]byte, error)
	String() string
}
