package smocks

import (
	"context"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/stretchr/testify/mock"
)

type AnalyticsMock struct {
	mock.Mock
}

func (a *AnalyticsMock) Summary(_ context.Context, identity *models.Identity) (*models.LinkSummary, error) {
	args := a.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.LinkSummary), args.Error(1) //nolint:wrapcheck,errcheck
}

func (a *AnalyticsMock) ClicksOverTime(
	_ context.Context,
	identity *models.Identity,
	windowDays int,
) ([]models.DailyClicks, error) {
	args := a.Called(identity, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.DailyClicks), args.Error(1) //nolint:wrapcheck,errcheck
}

func (a *AnalyticsMock) AdminClicksOverTime(_ context.Context, identity *models.Identity) ([]models.DailyClicks, error) {
	args := a.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.DailyClicks), args.Error(1) //nolint:wrapcheck,errcheck
}

func (a *AnalyticsMock) AdminOverview(_ context.Context, identity *models.Identity) (*models.AdminOverview, error) {
	args := a.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.AdminOverview), args.Error(1) //nolint:wrapcheck,errcheck
}
