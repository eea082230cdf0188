package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultMaxAllocAttempts uint = 10

// LinkService выдает короткие коды, резолвит их с подсчетом переходов и отдает списки ссылок.
type LinkService struct {
	links       LinkRepository
	generate    CodeGenerator
	maxAttempts uint
	logger      *logrus.Entry
}

type LinkOption func(*LinkService)

// WithCodeGenerator подменяет генератор кодов.
func WithCodeGenerator(gen CodeGenerator) LinkOption {
	return func(s *LinkService) {
		s.generate = gen
	}
}

func WithMaxAllocAttempts(n uint) LinkOption {
	return func(s *LinkService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewLinkService(links LinkRepository, logger *logrus.Logger, opts ...LinkOption) *LinkService {
	s := &LinkService{
		links:       links,
		generate:    GenerateShortCode,
		maxAttempts: defaultMaxAllocAttempts,
		logger:      logger.WithField("module", "service/link"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shorten возвращает ссылку владельца на rawURL, создавая ее при необходимости.
//
// Параметры:
//   - ctx: контекст
//   - identity: владелец, берется только из личности
//   - rawURL: исходная ссылка
//   - baseURL: префикс короткой ссылки
//
// Возвращает:
//   - *models.Link: ссылка
//   - bool: true если ссылка создана этим вызовом
//   - error: ErrInvalidInput, ErrAllocationExhausted, ErrUnknown
func (s *LinkService) Shorten(
	ctx context.Context,
	identity *models.Identity,
	rawURL string,
	baseURL *url.URL,
) (*models.Link, bool, error) {
	if identity == nil {
		return nil, false, ErrMissingToken
	}
	if _, err := ValidateURL(rawURL); err != nil {
		return nil, false, err
	}
	target := strings.TrimSpace(rawURL)

	existing, err := s.findExisting(ctx, identity.UserID, target)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var delta uint = 1
	for {
		if delta > s.maxAttempts {
			s.logger.WithFields(logrus.Fields{
				"owner":    identity.UserID,
				"attempts": s.maxAttempts,
			}).Error("short code allocation exhausted")
			return nil, false, errors.Wrap(ErrAllocationExhausted, "generateShortCode loop limit")
		}

		code, genErr := s.generate()
		if genErr != nil {
			s.logger.WithError(genErr).Error("failed to generate short code")
			return nil, false, ErrUnknown
		}
		link := models.Link{
			Code:      code,
			TargetURL: target,
			OwnerID:   identity.UserID,
			ShortURL:  buildShortURL(baseURL, code),
			CreatedAt: time.Now().UTC(),
		}

		createErr := s.links.Create(ctx, &link)
		if createErr == nil {
			return &link, true, nil
		}
		if !errors.Is(createErr, repositories.ErrDuplicateKey) {
			s.logger.WithError(createErr).Error("failed to create link")
			return nil, false, ErrUnknown
		}

		// дубликат: либо параллельный запрос уже создал ссылку на этот url, либо коллизия кода.
		winner, findErr := s.findExisting(ctx, identity.UserID, target)
		if findErr != nil {
			return nil, false, findErr
		}
		if winner != nil {
			return winner, false, nil
		}
		s.logger.WithField("code", code).Debug("short code collision")
		delta++
	}
}

func (s *LinkService) findExisting(ctx context.Context, ownerID, target string) (*models.Link, error) {
	link, err := s.links.GetByOwnerAndURL(ctx, ownerID, target)
	if err == nil {
		return link, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil //nolint:nilnil
	}
	s.logger.WithError(err).Error("failed to get link by owner and url")
	return nil, ErrUnknown
}

// Resolve находит ссылку по коду и атомарно засчитывает переход.
// Промах не меняет хранилище.
func (s *LinkService) Resolve(ctx context.Context, code string) (*models.Link, error) {
	if !IsValidShortCode(code) {
		return nil, errors.Wrapf(ErrRecordNotFound, "code %s not found", code)
	}
	link, err := s.links.IncrementClicks(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "code %s not found", code)
		}
		s.logger.WithError(err).Error("failed to increment clicks")
		return nil, ErrUnknown
	}
	return link, nil
}

// ListOwn возвращает ссылки текущего пользователя.
func (s *LinkService) ListOwn(ctx context.Context, identity *models.Identity) ([]models.Link, error) {
	if identity == nil {
		return nil, ErrMissingToken
	}
	links, err := s.links.GetAllByOwner(ctx, identity.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list own links")
		return nil, ErrUnknown
	}
	return links, nil
}

// ListAll возвращает все ссылки с email владельцев. Только для администратора.
func (s *LinkService) ListAll(ctx context.Context, identity *models.Identity) ([]models.OwnedLink, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	links, err := s.links.GetAllWithOwner(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list all links")
		return nil, ErrUnknown
	}
	return links, nil
}

func buildShortURL(baseURL *url.URL, code string) string {
	if baseURL == nil {
		return "/" + code
	}
	return strings.TrimRight(baseURL.String(), "/") + "/" + code
}
