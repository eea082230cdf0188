package controllers

import (
	"context"
	"net/url"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/services"
)

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// Authenticator регистрация, вход и восстановление личности.
type Authenticator interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ResolveIdentity(ctx context.Context, token string) (*models.Identity, error)
	Me(ctx context.Context, identity *models.Identity) (*models.User, error)
}

type LinkShortener interface {
	// Shorten возвращает ссылку, bool true если она создана этим вызовом.
	Shorten(ctx context.Context, identity *models.Identity, rawURL string, baseURL *url.URL) (*models.Link, bool, error)
	Resolve(ctx context.Context, code string) (*models.Link, error)
	ListOwn(ctx context.Context, identity *models.Identity) ([]models.Link, error)
	ListAll(ctx context.Context, identity *models.Identity) ([]models.OwnedLink, error)
}

type Analyzer interface {
	Summary(ctx context.Context, identity *models.Identity) (*models.LinkSummary, error)
	ClicksOverTime(ctx context.Context, identity *models.Identity, windowDays int) ([]models.DailyClicks, error)
	AdminClicksOverTime(ctx context.Context, identity *models.Identity) ([]models.DailyClicks, error)
	AdminOverview(ctx context.Context, identity *models.Identity) (*models.AdminOverview, error)
}
