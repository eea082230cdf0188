package services

import (
	"context"

	"github.com/fsdevblog/linkly/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// UserRepository описывает хранилище учетных записей.
type UserRepository interface {
	// Create сохраняет пользователя. Повтор email возвращает repositories.ErrDuplicateKey.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll возвращает всех пользователей в порядке регистрации.
	GetAll(ctx context.Context) ([]models.User, error)
}

// LinkRepository описывает хранилище коротких ссылок.
type LinkRepository interface {
	// Create сохраняет ссылку. repositories.ErrDuplicateKey возвращается при совпадении кода
	// или пары (владелец, url).
	Create(ctx context.Context, link *models.Link) error
	GetByOwnerAndURL(ctx context.Context, ownerID, targetURL string) (*models.Link, error)
	// IncrementClicks атомарно увеличивает счетчик и возвращает обновленную запись.
	IncrementClicks(ctx context.Context, code string) (*models.Link, error)
	// GetAllByOwner возвращает ссылки владельца, новые первыми.
	GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error)
	GetAll(ctx context.Context) ([]models.Link, error)
	GetAllWithOwner(ctx context.Context) ([]models.OwnedLink, error)
}
