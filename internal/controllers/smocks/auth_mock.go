package smocks

import (
	"context"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/services"
	"github.com/stretchr/testify/mock"
)

type AuthMock struct {
	mock.Mock
}

func (a *AuthMock) Register(_ context.Context, params services.RegisterParams) (*models.User, error) {
	args := a.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}

func (a *AuthMock) Login(_ context.Context, email, password string) (string, *models.User, error) {
	args := a.Called(email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2) //nolint:wrapcheck,errcheck
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2) //nolint:wrapcheck,errcheck
}

func (a *AuthMock) ResolveIdentity(_ context.Context, token string) (*models.Identity, error) {
	args := a.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Identity), args.Error(1) //nolint:wrapcheck,errcheck
}

func (a *AuthMock) Me(_ context.Context, identity *models.Identity) (*models.User, error) {
	args := a.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}
