package services

import (
	"context"
	"strings"
	"time"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/repositories"
	"github.com/fsdevblog/linkly/internal/tokens"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	// bcrypt игнорирует байты после 72-го.
	maxPasswordBytes = 72
)

// RegisterParams данные регистрации. Name и Role необязательны.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Role     models.Role
}

// AuthService регистрирует пользователей, выдает токены и восстанавливает личность по токену.
type AuthService struct {
	users            UserRepository
	secret           []byte
	tokenTTL         time.Duration
	allowAdminSignup bool
	bcryptCost       int
	dummyHash        []byte
	logger           *logrus.Entry
}

type AuthOption func(*AuthService)

func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithAdminSignup разрешает или запрещает самостоятельную регистрацию с ролью admin.
func WithAdminSignup(allow bool) AuthOption {
	return func(s *AuthService) {
		s.allowAdminSignup = allow
	}
}

func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

func NewAuthService(users UserRepository, secret []byte, logger *logrus.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:            users,
		secret:           secret,
		tokenTTL:         DefaultTokenTTL,
		allowAdminSignup: true,
		bcryptCost:       bcrypt.DefaultCost,
		logger:           logger.WithField("module", "service/auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	// хеш для выравнивания времени ответа при неизвестном email.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
	if err != nil {
		s.logger.WithError(err).Warn("failed to generate dummy hash")
	}
	s.dummyHash = hash
	return s
}

// Register создает пользователя.
//
// Возвращает:
//   - ErrInvalidInput: пустой email или пароль, неизвестная роль, запрещенная регистрация администратора
//   - ErrDuplicateIdentity: email уже занят
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" || strings.TrimSpace(params.Password) == "" {
		return nil, errors.Wrap(ErrInvalidInput, "email and password are required")
	}
	if len(params.Password) > maxPasswordBytes {
		return nil, errors.Wrapf(ErrInvalidInput, "password is longer than %d bytes", maxPasswordBytes)
	}

	role := params.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return nil, errors.Wrapf(ErrInvalidInput, "unknown role %q", role)
	}
	if role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, errors.Wrap(ErrInvalidInput, "admin registration is disabled")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		return nil, ErrUnknown
	}

	user := models.User{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(params.Name),
		Role:         role,
	}
	if createErr := s.users.Create(ctx, &user); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, errors.Wrapf(ErrDuplicateIdentity, "email %s", email)
		}
		s.logger.WithError(createErr).Error("failed to create user")
		return nil, ErrUnknown
	}
	return &user, nil
}

// Login проверяет пару email/пароль и выдает токен. Неизвестный email и неверный пароль
// неразличимы: оба дают ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, errors.Wrap(ErrInvalidInput, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.WithError(err).Error("failed to get user by email")
			return "", nil, ErrUnknown
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", nil, ErrInvalidCredentials
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); cmpErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := tokens.GenerateUserJWT(user.ID, string(user.Role), s.tokenTTL, s.secret)
	if err != nil {
		s.logger.WithError(err).Error("failed to generate token")
		return "", nil, ErrUnknown
	}
	return token, user, nil
}

// ResolveIdentity восстанавливает личность по токену. Роль читается из текущей записи пользователя,
// а не из токена.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*models.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	claims, err := tokens.ValidateUserJWT(token, s.secret)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if _, parseErr := uuid.Parse(claims.UserID); parseErr != nil {
		return nil, errors.Wrap(ErrInvalidToken, "malformed user id")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		s.logger.WithError(err).Error("failed to get user by id")
		return nil, ErrUnknown
	}

	return &models.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// Me возвращает текущую запись пользователя.
func (s *AuthService) Me(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrMissingToken
	}
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		s.logger.WithError(err).Error("failed to get user by id")
		return nil, ErrUnknown
	}
	return user, nil
}

// RequireRole возвращает ErrForbidden, если роль личности отличается от требуемой.
func RequireRole(identity *models.Identity, role models.Role) error {
	if identity == nil || identity.Role != role {
		return ErrForbidden
	}
	return nil
}
