package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fsdevblog/linkly/internal/db/memory"
	"github.com/fsdevblog/linkly/internal/models"
	"github.com/sirupsen/logrus"
)

// userRecord форма хранения пользователя. models.User не сериализуется в json целиком.
type userRecord struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"createdAt"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"passwordHash"`
	Name         string      `json:"name"`
	Role         models.Role `json:"role"`
}

func newUserRecord(u *models.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		CreatedAt:    u.CreatedAt,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         u.Role,
	}
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         r.Role,
	}
}

type UserRepo struct {
	s      *memory.MStorage
	mu     sync.Mutex
	logger *logrus.Entry
}

func NewUserRepo(s *memory.MStorage, logger *logrus.Logger) *UserRepo {
	return &UserRepo{
		s:      s,
		logger: logger.WithField("module", "repository/memstore/user"),
	}
}

// Create сохраняет пользователя. Повтор email или ID дает repositories.ErrDuplicateKey.
func (u *UserRepo) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	same, err := memory.FilterAll[userRecord](ctx, u.s, func(r userRecord) bool {
		return r.Email == user.Email
	})
	if err != nil {
		return convertErrorType(err)
	}
	if len(same) > 0 {
		return convertErrorType(memory.ErrDuplicateKey)
	}

	if setErr := memory.Set(ctx, user.ID, newUserRecord(user), u.s); setErr != nil {
		return convertErrorType(setErr)
	}
	return nil
}

func (u *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	rec, err := memory.Get[userRecord](ctx, id, u.s)
	if err != nil {
		return nil, convertErrorType(err)
	}
	return rec.toModel(), nil
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	found, err := memory.FilterAll[userRecord](ctx, u.s, func(r userRecord) bool {
		return r.Email == email
	})
	if err != nil {
		return nil, convertErrorType(err)
	}
	if len(found) == 0 {
		return nil, convertErrorType(memory.ErrNotFound)
	}
	return found[0].toModel(), nil
}

// GetAll возвращает всех пользователей в порядке регистрации.
func (u *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	recs, err := memory.GetAll[userRecord](ctx, u.s)
	if err != nil {
		u.logger.WithError(err).Error("failed to read users")
		return nil, convertErrorType(err)
	}
	slices.SortFunc(recs, func(a, b userRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	users := make([]models.User, 0, len(recs))
	for _, r := range recs {
		users = append(users, *r.toModel())
	}
	return users, nil
}
