package sql

import (
	"context"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewUserRepo(db *gorm.DB, logger *logrus.Logger) *UserRepo {
	return &UserRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/user"),
	}
}

func (u *UserRepo) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			u.logger.WithError(err).Errorf("failed to create user %s", user.Email)
		}
		return ConvertErrorType(err)
	}
	return nil
}

func (u *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, ConvertErrorType(err)
	}
	return &user, nil
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ConvertErrorType(err)
	}
	return &user, nil
}

func (u *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := u.db.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		u.logger.WithError(err).Error("failed to get users")
		return nil, ConvertErrorType(err)
	}
	return users, nil
}
