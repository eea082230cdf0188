package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/linkly/internal/backup"
	"github.com/fsdevblog/linkly/internal/db"
	"github.com/fsdevblog/linkly/internal/repositories/memstore"
	"github.com/fsdevblog/linkly/internal/repositories/pgsql"
	"github.com/fsdevblog/linkly/internal/repositories/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypePostgres ServiceType = "postgres"
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

// Params общие настройки сервисов.
type Params struct {
	JWTSecret []byte
	TokenTTL  time.Duration
	// DisableAdminSignup запрещает регистрацию с ролью admin. По умолчанию разрешена.
	DisableAdminSignup bool
	// BackupSink используется только in-memory хранилищем. nil отключает снимки.
	BackupSink backup.Sink
}

type Services struct {
	AuthService      *AuthService
	LinkService      *LinkService
	AnalyticsService *AnalyticsService
	PingService      *PingService
	// BackupService nil для хранилищ, которые сами переживают перезапуск.
	BackupService *BackupService
}

// Factory собирает сервисный слой поверх соединения, созданного db.NewConnectionFactory.
func Factory(conn any, sType ServiceType, params Params, logger *logrus.Logger) (*Services, error) {
	switch sType {
	case ServiceTypePostgres:
		pool, ok := conn.(*pgxpool.Pool)
		if !ok {
			return nil, errors.New("invalid connection type. expected *pgxpool.Pool")
		}
		users := pgsql.NewUserRepo(pool, logger)
		links := pgsql.NewLinkRepo(pool, logger)
		return build(users, links, pool, params, logger), nil
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		users := sql.NewUserRepo(gormDB, logger)
		links := sql.NewLinkRepo(gormDB, logger)
		return build(users, links, db.NewSQLitePinger(gormDB), params, logger), nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		users := memstore.NewUserRepo(store.Users, logger)
		links := memstore.NewLinkRepo(store.Links, store.Users, logger)
		s := build(users, links, store, params, logger)
		if params.BackupSink != nil {
			s.BackupService = NewBackupService(store, params.BackupSink, logger)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}

func build(users UserRepository, links LinkRepository, pinger Pinger, params Params, logger *logrus.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(users, params.JWTSecret, logger,
			WithTokenTTL(params.TokenTTL),
			WithAdminSignup(!params.DisableAdminSignup),
		),
		LinkService:      NewLinkService(links, logger),
		AnalyticsService: NewAnalyticsService(links, users, logger),
		PingService:      NewPingService(pinger, logger),
	}
}
