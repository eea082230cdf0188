package config

import (
	"flag"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// devJWTSecret используется, если JWT_SECRET не задан. Годится только для локального запуска.
const devJWTSecret = "linkly-dev-secret"

// MinioConfig параметры хранения снимков в MinIO. Пустой Endpoint отключает MinIO.
type MinioConfig struct {
	Endpoint  string `env:"BACKUP_MINIO_ENDPOINT"`
	AccessKey string `env:"BACKUP_MINIO_ACCESS_KEY"`
	SecretKey string `env:"BACKUP_MINIO_SECRET_KEY"`
	Bucket    string `env:"BACKUP_MINIO_BUCKET" envDefault:"linkly-backups"`
	UseSSL    bool   `env:"BACKUP_MINIO_USE_SSL"`
}

type Config struct {
	// Адрес, на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// DSN postgres. Если задан, используется pgx хранилище
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Файл sqlite. Используется, если DSN не задан
	SQLitePath string `env:"SQLITE_PATH"`
	// Файл снимка in-memory хранилища
	FileStoragePath string `env:"FILE_STORAGE_PATH"`
	// Ключ подписи токенов
	JWTSecret string `env:"JWT_SECRET"`

	// Дальше только через env, флаги не нужны
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AllowAdminSignup bool          `env:"ALLOW_ADMIN_SIGNUP" envDefault:"true"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	Minio            MinioConfig

	Logger *logrus.Logger `env:"-"`
}

// LoadConfig читает .env (если есть), переменные окружения и флаги. Env имеет приоритет над флагами.
func LoadConfig() (*Config, error) {
	return loadConfig(flag.CommandLine, os.Args[1:])
}

// MustLoadConfig вызывает панику, если конфиг не удалось загрузить.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

func loadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	// .env нужен только для локальной разработки, его отсутствие не ошибка
	_ = godotenv.Load()

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	if err := loadsFlags(fs, args, &flagsConfig); err != nil {
		return nil, errors.Wrap(err, "parse flags error")
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	conf.Logger = initLogger(conf.LogLevel)

	if conf.JWTSecret == "" {
		conf.Logger.Warn("JWT_SECRET is not set, using insecure development secret")
		conf.JWTSecret = devJWTSecret
	}
	return conf, nil
}

// loadsFlags парсит флаги командной строки.
func loadsFlags(fs *flag.FlagSet, args []string, flagsConfig *Config) error {
	fs.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запущенного сервера)"
	fs.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := parseBaseURL(rawURL)
		if err != nil {
			return err
		}
		flagsConfig.BaseURL = parsedURL
		return nil
	})

	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN базы данных postgres")
	fs.StringVar(&flagsConfig.SQLitePath, "s", "", "Путь к файлу sqlite")
	fs.StringVar(&flagsConfig.FileStoragePath, "f", "", "Путь к файлу снимка in-memory хранилища")
	fs.StringVar(&flagsConfig.JWTSecret, "j", "", "Ключ подписи JWT")

	return fs.Parse(args) //nolint:wrapcheck
}

// parseBaseURL отсекает Path и Query, если они заданы в базовом урле.
func parseBaseURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse base url")
	}
	return &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}, nil
}

// mergeConfig сливает структуры для env и флагов. Настройки, у которых нет флагов, берутся из env.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	baseURL := envConfig.BaseURL
	if baseURL != nil {
		baseURL = &url.URL{Scheme: baseURL.Scheme, Host: baseURL.Host}
	}
	return &Config{
		ServerAddress:    defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:          defaultIfBlank[*url.URL](baseURL, flagsConfig.BaseURL),
		DatabaseDSN:      defaultIfBlank[string](envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		SQLitePath:       defaultIfBlank[string](envConfig.SQLitePath, flagsConfig.SQLitePath),
		FileStoragePath:  defaultIfBlank[string](envConfig.FileStoragePath, flagsConfig.FileStoragePath),
		JWTSecret:        defaultIfBlank[string](envConfig.JWTSecret, flagsConfig.JWTSecret),
		TokenTTL:         envConfig.TokenTTL,
		AllowAdminSignup: envConfig.AllowAdminSignup,
		LogLevel:         envConfig.LogLevel,
		Minio:            envConfig.Minio,
	}
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
