package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink хранит снимок в локальном файле. Запись идет через временный файл и rename,
// чтобы оборванная запись не портила предыдущий снимок.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (f *FileSink) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("create backup dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp backup file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close backup file: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace backup file: %w", err)
	}
	return nil
}

func (f *FileSink) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

func (f *FileSink) String() string {
	return "file://" + f.path
}
