package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingService проверяет доступность хранилища.
type PingService struct {
	conn   Pinger
	logger *logrus.Entry
}

func NewPingService(conn Pinger, logger *logrus.Logger) *PingService {
	return &PingService{
		conn:   conn,
		logger: logger.WithField("module", "service/ping"),
	}
}

func (s *PingService) CheckConnection(ctx context.Context) error {
	if err := s.conn.Ping(ctx); err != nil {
		s.logger.WithError(err).Warn("storage is unreachable")
		return fmt.Errorf("ping error: %w", err)
	}
	return nil
}
