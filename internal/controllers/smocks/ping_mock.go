package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type PingMock struct {
	mock.Mock
}

func (p *PingMock) CheckConnection(_ context.Context) error {
	return p.Called().Error(0) //nolint:wrapcheck
}
