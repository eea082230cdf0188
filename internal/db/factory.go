package db

import (
	"context"
	"errors"
	"fmt"
)

type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

type FactoryConfig struct {
	StorageType  StorageType
	PostgresDSN  *string
	SqliteDBPath *string
}

// NewConnectionFactory создает подключение к хранилищу выбранного типа и прогоняет миграции.
//
// Возвращает:
//   - *pgxpool.Pool для StorageTypePostgres
//   - *gorm.DB для StorageTypeSQLite
//   - *MemoryStorage для StorageTypeInMemory
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (any, error) {
	switch config.StorageType {
	case StorageTypePostgres:
		if config.PostgresDSN == nil || *config.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		if migrateErr := MigratePostgres(ctx, *config.PostgresDSN); migrateErr != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
		}
		pool, err := NewPostgresConnection(ctx, *config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", err)
		}
		return pool, nil
	case StorageTypeSQLite:
		if config.SqliteDBPath == nil || *config.SqliteDBPath == "" {
			return nil, errors.New("sqlite path is empty")
		}
		conn, err := NewSQLite(*config.SqliteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", err)
		}
		return conn, nil
	case StorageTypeInMemory:
		return NewMemStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}
