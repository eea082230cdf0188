package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsdevblog/linkly/internal/db/memory"
	"github.com/fsdevblog/linkly/internal/models"
	"github.com/sirupsen/logrus"
)

type LinkRepo struct {
	links  *memory.MStorage
	users  *memory.MStorage
	mu     sync.Mutex
	logger *logrus.Entry
}

// NewLinkRepo создает репозиторий ссылок. users нужен для выборок с email владельца.
func NewLinkRepo(links, users *memory.MStorage, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		links:  links,
		users:  users,
		logger: logger.WithField("module", "repository/memstore/link"),
	}
}

// Create сохраняет ссылку. repositories.ErrDuplicateKey возвращается как при совпадении кода,
// так и при повторе пары (владелец, url).
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	same, err := memory.FilterAll[models.Link](ctx, l.links, func(v models.Link) bool {
		return v.OwnerID == link.OwnerID && v.TargetURL == link.TargetURL
	})
	if err != nil {
		return convertErrorType(err)
	}
	if len(same) > 0 {
		return convertErrorType(memory.ErrDuplicateKey)
	}

	return convertErrorType(memory.Set(ctx, link.Code, link, l.links))
}

func (l *LinkRepo) GetByOwnerAndURL(ctx context.Context, ownerID, targetURL string) (*models.Link, error) {
	found, err := memory.FilterAll[models.Link](ctx, l.links, func(v models.Link) bool {
		return v.OwnerID == ownerID && v.TargetURL == targetURL
	})
	if err != nil {
		return nil, convertErrorType(err)
	}
	if len(found) == 0 {
		return nil, convertErrorType(memory.ErrNotFound)
	}
	return &found[0], nil
}

// IncrementClicks атомарно увеличивает счетчик переходов на единицу.
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string) (*models.Link, error) {
	link, err := memory.Update[models.Link](ctx, code, l.links, func(v *models.Link) error {
		v.Clicks++
		return nil
	})
	if err != nil {
		return nil, convertErrorType(err)
	}
	return link, nil
}

// GetAllByOwner возвращает ссылки владельца, новые первыми.
func (l *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	links, err := memory.FilterAll[models.Link](ctx, l.links, func(v models.Link) bool {
		return v.OwnerID == ownerID
	})
	if err != nil {
		return nil, convertErrorType(err)
	}
	sortNewestFirst(links)
	return links, nil
}

func (l *LinkRepo) GetAll(ctx context.Context) ([]models.Link, error) {
	links, err := memory.GetAll[models.Link](ctx, l.links)
	if err != nil {
		return nil, convertErrorType(err)
	}
	sortNewestFirst(links)
	return links, nil
}

// GetAllWithOwner возвращает все ссылки с email владельца.
func (l *LinkRepo) GetAllWithOwner(ctx context.Context) ([]models.OwnedLink, error) {
	links, err := l.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := memory.GetAll[userRecord](ctx, l.users)
	if err != nil {
		l.logger.WithError(err).Error("failed to read users")
		return nil, convertErrorType(err)
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	result := make([]models.OwnedLink, 0, len(links))
	for _, link := range links {
		result = append(result, models.OwnedLink{Link: link, OwnerEmail: emails[link.OwnerID]})
	}
	return result, nil
}

func sortNewestFirst(links []models.Link) {
	slices.SortFunc(links, func(a, b models.Link) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
}
