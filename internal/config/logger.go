package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// initLogger инициализирует логгер. Неизвестный уровень молча заменяется на info.
func initLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	logger.SetFormatter(new(logrus.JSONFormatter))

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	// перезаписываем ряд настроек для окружений отличных от продакшн
	if os.Getenv("GIN_MODE") != "release" {
		logger.SetFormatter(new(logrus.TextFormatter))
	}

	return logger
}
