package services

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/linkly/internal/db"
	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/repositories"
	"github.com/fsdevblog/linkly/internal/repositories/memstore"
	"github.com/fsdevblog/linkly/internal/services/mocks"
	"github.com/fsdevblog/linkly/internal/tokens"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

type AuthServiceSuite struct {
	suite.Suite
	store *db.MemoryStorage
	users *memstore.UserRepo
	svc   *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.store = db.NewMemStorage()
	s.users = memstore.NewUserRepo(s.store.Users, logrus.New())
	s.svc = NewAuthService(s.users, testSecret, logrus.New(), WithBcryptCost(bcrypt.MinCost))
}

func (s *AuthServiceSuite) register(email, password string, role models.Role) *models.User {
	user, err := s.svc.Register(context.Background(), RegisterParams{
		Email:    email,
		Password: password,
		Name:     gofakeit.Name(),
		Role:     role,
	})
	s.Require().NoError(err)
	return user
}

func (s *AuthServiceSuite) TestRegister() {
	user := s.register("alice@example.com", "p", "")
	s.Equal(models.RoleUser, user.Role)
	s.NotEqual("p", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("p")))

	s.Run("duplicate", func() {
		_, err := s.svc.Register(context.Background(), RegisterParams{Email: "alice@example.com", Password: "q"})
		s.ErrorIs(err, ErrDuplicateIdentity)
	})

	s.Run("missing password", func() {
		_, err := s.svc.Register(context.Background(), RegisterParams{Email: "bob@example.com"})
		s.ErrorIs(err, ErrInvalidInput)
	})

	s.Run("missing email", func() {
		_, err := s.svc.Register(context.Background(), RegisterParams{Password: "x"})
		s.ErrorIs(err, ErrInvalidInput)
	})

	s.Run("unknown role", func() {
		_, err := s.svc.Register(context.Background(), RegisterParams{Email: "c@example.com", Password: "x", Role: "root"})
		s.ErrorIs(err, ErrInvalidInput)
	})

	s.Run("admin signup disabled", func() {
		svc := NewAuthService(s.users, testSecret, logrus.New(), WithBcryptCost(bcrypt.MinCost), WithAdminSignup(false))
		_, err := svc.Register(context.Background(), RegisterParams{Email: "d@example.com", Password: "x", Role: models.RoleAdmin})
		s.ErrorIs(err, ErrInvalidInput)
	})
}

func (s *AuthServiceSuite) TestLogin() {
	s.register("alice@example.com", "secret", "")

	token, user, err := s.svc.Login(context.Background(), "alice@example.com", "secret")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("alice@example.com", user.Email)

	_, _, wrongPassErr := s.svc.Login(context.Background(), "alice@example.com", "nope")
	_, _, unknownErr := s.svc.Login(context.Background(), "nobody@example.com", "secret")
	s.ErrorIs(wrongPassErr, ErrInvalidCredentials)
	s.ErrorIs(unknownErr, ErrInvalidCredentials)
	s.Equal(wrongPassErr.Error(), unknownErr.Error())
}

func (s *AuthServiceSuite) TestResolveIdentity() {
	user := s.register("alice@example.com", "secret", "")
	token, _, err := s.svc.Login(context.Background(), "alice@example.com", "secret")
	s.Require().NoError(err)

	identity, err := s.svc.ResolveIdentity(context.Background(), token)
	s.Require().NoError(err)
	s.Equal(user.ID, identity.UserID)
	s.Equal(models.RoleUser, identity.Role)

	s.Run("missing", func() {
		_, err := s.svc.ResolveIdentity(context.Background(), "")
		s.ErrorIs(err, ErrMissingToken)
	})

	s.Run("expired", func() {
		expired, genErr := tokens.GenerateUserJWT(user.ID, "user", -time.Minute, testSecret)
		s.Require().NoError(genErr)
		_, err := s.svc.ResolveIdentity(context.Background(), expired)
		s.ErrorIs(err, ErrTokenExpired)
	})

	s.Run("invalid signature", func() {
		forged, genErr := tokens.GenerateUserJWT(user.ID, "admin", time.Hour, []byte("other"))
		s.Require().NoError(genErr)
		_, err := s.svc.ResolveIdentity(context.Background(), forged)
		s.ErrorIs(err, ErrInvalidToken)
	})

	s.Run("deleted user", func() {
		ghost, genErr := tokens.GenerateUserJWT(gofakeit.UUID(), "user", time.Hour, testSecret)
		s.Require().NoError(genErr)
		_, err := s.svc.ResolveIdentity(context.Background(), ghost)
		s.ErrorIs(err, ErrIdentityNotFound)
	})
}

// Роль в токене не влияет на права: используется роль из хранилища.
func (s *AuthServiceSuite) TestResolveIdentity_RoleFromStore() {
	ctrl := gomock.NewController(s.T())
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, testSecret, logrus.New(), WithBcryptCost(bcrypt.MinCost))

	userID := gofakeit.UUID()
	token, err := tokens.GenerateUserJWT(userID, string(models.RoleAdmin), time.Hour, testSecret)
	s.Require().NoError(err)

	repo.EXPECT().GetByID(gomock.Any(), userID).
		Return(&models.User{ID: userID, Email: "demoted@example.com", Role: models.RoleUser}, nil)

	identity, err := svc.ResolveIdentity(context.Background(), token)
	s.Require().NoError(err)
	s.Equal(models.RoleUser, identity.Role)
	s.ErrorIs(RequireRole(identity, models.RoleAdmin), ErrForbidden)
}

func (s *AuthServiceSuite) TestRegister_StoreFailure() {
	ctrl := gomock.NewController(s.T())
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, testSecret, logrus.New(), WithBcryptCost(bcrypt.MinCost))

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repositories.ErrUnknown)

	_, err := svc.Register(context.Background(), RegisterParams{Email: "e@example.com", Password: "x"})
	s.ErrorIs(err, ErrUnknown)
}

func (s *AuthServiceSuite) TestMe() {
	user := s.register("me@example.com", "p", "")

	got, err := s.svc.Me(context.Background(), &models.Identity{UserID: user.ID})
	s.Require().NoError(err)
	s.Equal(user.Email, got.Email)

	_, err = s.svc.Me(context.Background(), &models.Identity{UserID: "gone"})
	s.ErrorIs(err, ErrIdentityNotFound)

	_, err = s.svc.Me(context.Background(), nil)
	s.ErrorIs(err, ErrMissingToken)
}

func (s *AuthServiceSuite) TestMe_StoreFailureIsLogged() {
	ctrl := gomock.NewController(s.T())
	repo := mocks.NewMockUserRepository(ctrl)
	logger, hook := logtest.NewNullLogger()
	svc := NewAuthService(repo, testSecret, logger, WithBcryptCost(bcrypt.MinCost))
	hook.Reset()

	repo.EXPECT().GetByID(gomock.Any(), "u1").Return(nil, repositories.ErrUnknown)

	_, err := svc.Me(context.Background(), &models.Identity{UserID: "u1"})
	s.ErrorIs(err, ErrUnknown)

	entry := hook.LastEntry()
	s.Require().NotNil(entry)
	s.Equal(logrus.ErrorLevel, entry.Level)
	s.Equal("failed to get user by id", entry.Message)
}
