package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

type UserRepo struct {
	conn   Conn
	logger *logrus.Entry
}

func NewUserRepo(conn Conn, logger *logrus.Logger) *UserRepo {
	return &UserRepo{
		conn:   conn,
		logger: logger.WithField("module", "repository/pgsql/user"),
	}
}

const userColumns = `id, created_at, email, password_hash, name, role`

func (u *UserRepo) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := u.conn.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.CreatedAt, user.Email, user.PasswordHash, user.Name, string(user.Role),
	)
	if err != nil {
		converted := convertErrType(err)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			u.logger.WithError(err).Errorf("failed to create user %s", user.Email)
		}
		return converted
	}
	return nil
}

func (u *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (u *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := u.conn.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		u.logger.WithError(err).Error("failed to get users")
		return nil, convertErrType(err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		return scanUserRow(row)
	})
	if err != nil {
		return nil, convertErrType(err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	user, err := scanUserRow(row)
	if err != nil {
		return nil, convertErrType(err)
	}
	return &user, nil
}

func scanUserRow(row pgx.Row) (models.User, error) {
	var (
		user models.User
		role string
	)
	err := row.Scan(&user.ID, &user.CreatedAt, &user.Email, &user.PasswordHash, &user.Name, &role)
	user.Role = models.Role(role)
	return user, err //nolint:wrapcheck
}
