package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/linkly/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewSQLite(dbPath string) (*gorm.DB, error) {
	conn, connErr := connectSQLite(dbPath)
	if connErr != nil {
		return nil, fmt.Errorf("init database error: %w", connErr)
	}
	if migrateErr := migrateSQLite(conn); migrateErr != nil {
		return nil, fmt.Errorf("migrate database error: %w", migrateErr)
	}
	return conn, nil
}

func connectSQLite(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database with path %s error: %w", dbPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// sqlite сериализует запись, один коннект исключает SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err = db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

func migrateSQLite(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Link{}); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}

// SQLitePinger проверяет доступность sqlite базы.
type SQLitePinger struct {
	conn *gorm.DB
}

func NewSQLitePinger(conn *gorm.DB) *SQLitePinger {
	return &SQLitePinger{conn: conn}
}

func (p *SQLitePinger) Ping(ctx context.Context) error {
	sqlDB, err := p.conn.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}
