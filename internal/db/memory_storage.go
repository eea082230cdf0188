package db

import (
	"context"

	"github.com/fsdevblog/linkly/internal/db/memory"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MemoryStorage соединение in-memory хранилища: по одной коллекции на сущность.
type MemoryStorage struct {
	Users *memory.MStorage
	Links *memory.MStorage
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		Users: memory.NewMemStorage(),
		Links: memory.NewMemStorage(),
	}
}

// Ping хранилище в памяти доступно всегда, пока жив процесс.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err() //nolint:wrapcheck
}

type memorySnapshot struct {
	Users map[string]json.RawMessage `json:"users"`
	Links map[string]json.RawMessage `json:"links"`
}

// Snapshot сериализует содержимое всех коллекций.
func (s *MemoryStorage) Snapshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	data, err := json.Marshal(memorySnapshot{
		Users: s.Users.Snapshot(),
		Links: s.Links.Snapshot(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal memory snapshot")
	}
	return data, nil
}

// Restore заменяет содержимое коллекций данными снимка.
func (s *MemoryStorage) Restore(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	var snap memorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return errors.Wrap(err, "unmarshal memory snapshot")
	}
	s.Users.Restore(snap.Users)
	s.Links.Restore(snap.Links)
	return nil
}
