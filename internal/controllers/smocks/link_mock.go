package smocks

import (
	"context"
	"net/url"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/stretchr/testify/mock"
)

type LinkMock struct {
	mock.Mock
}

func (l *LinkMock) Shorten(
	_ context.Context,
	identity *models.Identity,
	rawURL string,
	baseURL *url.URL,
) (*models.Link, bool, error) {
	args := l.Called(identity, rawURL, baseURL)
	if args.Get(0) == nil {
		return nil, false, args.Error(2) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Bool(1), args.Error(2) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) Resolve(_ context.Context, code string) (*models.Link, error) {
	args := l.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) ListOwn(_ context.Context, identity *models.Identity) ([]models.Link, error) {
	args := l.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) ListAll(_ context.Context, identity *models.Identity) ([]models.OwnedLink, error) {
	args := l.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.OwnedLink), args.Error(1) //nolint:wrapcheck,errcheck
}
