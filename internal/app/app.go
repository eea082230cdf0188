package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/linkly/internal/backup"
	"github.com/fsdevblog/linkly/internal/config"
	"github.com/fsdevblog/linkly/internal/controllers"
	"github.com/fsdevblog/linkly/internal/db"
	"github.com/fsdevblog/linkly/internal/services"
)

const (
	backupTimeout   = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	config     config.Config
	dbServices *services.Services
	Logger     *logrus.Logger
}

func New(config config.Config) (*App, error) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	dbServices, servicesErr := initServices(ctx, config, logger)
	if servicesErr != nil {
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	return &App{
		config:     config,
		dbServices: dbServices,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

func (a *App) restoreBackup() error {
	if a.dbServices.BackupService == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if err := a.dbServices.BackupService.Restore(ctx); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}

func (a *App) makeBackup() {
	if a.dbServices.BackupService == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if err := a.dbServices.BackupService.Backup(ctx); err != nil {
		a.Logger.WithError(err).Error("making backup error")
	}
}

// Handler возвращает роутер приложения.
func (a *App) Handler() http.Handler {
	return controllers.SetupRouter(controllers.RouterParams{
		AuthService:      a.dbServices.AuthService,
		LinkService:      a.dbServices.LinkService,
		AnalyticsService: a.dbServices.AnalyticsService,
		PingService:      a.dbServices.PingService,
		BaseURL:          a.config.BaseURL,
		Logger:           a.Logger,
	})
}

// Run запускает web сервер и блокируется до SIGINT/SIGTERM или ошибки сервера.
func (a *App) Run() error {
	if restoreErr := a.restoreBackup(); restoreErr != nil {
		return fmt.Errorf("run app: %w", restoreErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	a.Logger.Infof("Server listening on %s", a.config.ServerAddress)

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("router error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("server shutdown error")
	}

	// Снимок пишем после остановки сервера, чтобы не потерять последние запросы.
	a.makeBackup()

	return serverErr
}

// initServices создает подключение к хранилищу и возвращает сервисный слой приложения.
func initServices(ctx context.Context, appConf config.Config, logger *logrus.Logger) (*services.Services, error) {
	storageType := whatIsDBStorageType(&appConf)
	logger.Infof("using %s storage", storageType)

	dbConn, connErr := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  storageType,
		PostgresDSN:  &appConf.DatabaseDSN,
		SqliteDBPath: &appConf.SQLitePath,
	})
	if connErr != nil {
		return nil, connErr //nolint:wrapcheck
	}

	var sink backup.Sink
	if storageType == db.StorageTypeInMemory {
		var sinkErr error
		if sink, sinkErr = backupSink(ctx, &appConf); sinkErr != nil {
			return nil, sinkErr
		}
	}

	dbServices, dbServErr := services.Factory(dbConn, whatIsServiceType(storageType), services.Params{
		JWTSecret:          []byte(appConf.JWTSecret),
		TokenTTL:           appConf.TokenTTL,
		DisableAdminSignup: !appConf.AllowAdminSignup,
		BackupSink:         sink,
	}, logger)
	if dbServErr != nil {
		return nil, dbServErr //nolint:wrapcheck
	}
	return dbServices, nil
}

// backupSink выбирает хранилище снимков: MinIO, если задан endpoint, иначе файл. nil если снимки выключены.
func backupSink(ctx context.Context, appConf *config.Config) (backup.Sink, error) {
	if appConf.Minio.Endpoint != "" {
		sink, err := backup.NewMinioSink(ctx, backup.MinioConfig{
			Endpoint:  appConf.Minio.Endpoint,
			AccessKey: appConf.Minio.AccessKey,
			SecretKey: appConf.Minio.SecretKey,
			Bucket:    appConf.Minio.Bucket,
			UseSSL:    appConf.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio backup: %w", err)
		}
		return sink, nil
	}
	if appConf.FileStoragePath != "" {
		return backup.NewFileSink(appConf.FileStoragePath), nil
	}
	return nil, nil //nolint:nilnil
}

func whatIsDBStorageType(appConf *config.Config) db.StorageType {
	switch {
	case appConf.DatabaseDSN != "":
		return db.StorageTypePostgres
	case appConf.SQLitePath != "":
		return db.StorageTypeSQLite
	default:
		return db.StorageTypeInMemory
	}
}

func whatIsServiceType(storageType db.StorageType) services.ServiceType {
	switch storageType {
	case db.StorageTypePostgres:
		return services.ServiceTypePostgres
	case db.StorageTypeSQLite:
		return services.ServiceTypeSQLite
	default:
		return services.ServiceTypeInMemory
	}
}
