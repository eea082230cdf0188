package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 90
	dayLayout         = "2006-01-02"
)

// AnalyticsService считает сводки по переходам.
type AnalyticsService struct {
	links  LinkRepository
	users  UserRepository
	now    func() time.Time
	logger *logrus.Entry
}

type AnalyticsOption func(*AnalyticsService)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) AnalyticsOption {
	return func(s *AnalyticsService) {
		s.now = now
	}
}

func NewAnalyticsService(
	links LinkRepository,
	users UserRepository,
	logger *logrus.Logger,
	opts ...AnalyticsOption,
) *AnalyticsService {
	s := &AnalyticsService{
		links:  links,
		users:  users,
		now:    time.Now,
		logger: logger.WithField("module", "service/analytics"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary количество ссылок пользователя и сумма переходов по ним.
func (s *AnalyticsService) Summary(ctx context.Context, identity *models.Identity) (*models.LinkSummary, error) {
	links, err := s.ownLinks(ctx, identity)
	if err != nil {
		return nil, err
	}
	summary := models.LinkSummary{Count: len(links)}
	for _, l := range links {
		summary.TotalClicks += l.Clicks
	}
	return &summary, nil
}

// ClicksOverTime оценка переходов по дням за последние windowDays дней (UTC), старые дни первыми.
//
// Переходы хранятся только суммарным счетчиком, поэтому распределение по дням оценочное:
// счетчик ссылки раскладывается на дни окна начиная с дня ее создания с линейно растущими весами
// 1..n, остаток от целочисленного деления отдается по одному самым новым дням.
// Сумма по всем дням равна сумме счетчиков ссылок, созданных не позже последнего дня окна.
func (s *AnalyticsService) ClicksOverTime(
	ctx context.Context,
	identity *models.Identity,
	windowDays int,
) ([]models.DailyClicks, error) {
	if windowDays < 1 || windowDays > MaxWindowDays {
		return nil, errors.Wrapf(ErrInvalidInput, "window must be between 1 and %d days", MaxWindowDays)
	}
	links, err := s.ownLinks(ctx, identity)
	if err != nil {
		return nil, err
	}
	return estimateDailyClicks(links, windowDays, s.now()), nil
}

// AdminClicksOverTime точная сумма счетчиков, сгруппированная по дню создания ссылки.
func (s *AnalyticsService) AdminClicksOverTime(
	ctx context.Context,
	identity *models.Identity,
) ([]models.DailyClicks, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	links, err := s.links.GetAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to get links")
		return nil, ErrUnknown
	}
	return groupByCreationDay(links), nil
}

// AdminOverview агрегаты по всем пользователям и ссылкам.
func (s *AnalyticsService) AdminOverview(ctx context.Context, identity *models.Identity) (*models.AdminOverview, error) {
	if err := RequireRole(identity, models.RoleAdmin); err != nil {
		return nil, err
	}
	links, err := s.links.GetAllWithOwner(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to get links with owners")
		return nil, ErrUnknown
	}
	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to get users")
		return nil, ErrUnknown
	}

	overview := models.AdminOverview{
		URLCount:  len(links),
		UserCount: len(users),
		URLs:      links,
		Users:     make([]models.UserSummary, 0, len(users)),
	}
	for _, l := range links {
		overview.TotalClicks += l.Clicks
	}
	for i := range users {
		overview.Users = append(overview.Users, users[i].Summary())
	}
	return &overview, nil
}

func (s *AnalyticsService) ownLinks(ctx context.Context, identity *models.Identity) ([]models.Link, error) {
	if identity == nil {
		return nil, ErrMissingToken
	}
	links, err := s.links.GetAllByOwner(ctx, identity.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to get own links")
		return nil, ErrUnknown
	}
	return links, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func estimateDailyClicks(links []models.Link, days int, now time.Time) []models.DailyClicks {
	end := truncateDay(now)
	start := end.AddDate(0, 0, -(days - 1))
	buckets := make([]int64, days)

	for _, link := range links {
		if link.Clicks <= 0 {
			continue
		}
		created := truncateDay(link.CreatedAt)
		if created.After(end) {
			continue
		}
		first := 0
		if created.After(start) {
			first = int(created.Sub(start).Hours() / 24) //nolint:mnd
		}

		n := days - first
		weightSum := int64(n * (n + 1) / 2) //nolint:mnd
		var allocated int64
		for i := range n {
			share := link.Clicks * int64(i+1) / weightSum
			buckets[first+i] += share
			allocated += share
		}
		// остаток меньше n, поэтому не выходит за дни, доступные ссылке.
		for j := days - 1; allocated < link.Clicks; j-- {
			buckets[j]++
			allocated++
		}
	}

	result := make([]models.DailyClicks, days)
	for i := range days {
		result[i] = models.DailyClicks{
			Date:   start.AddDate(0, 0, i).Format(dayLayout),
			Clicks: buckets[i],
		}
	}
	return result
}

func groupByCreationDay(links []models.Link) []models.DailyClicks {
	byDay := make(map[string]int64)
	for _, l := range links {
		byDay[l.CreatedAt.UTC().Format(dayLayout)] += l.Clicks
	}
	result := make([]models.DailyClicks, 0, len(byDay))
	for day, clicks := range byDay {
		result = append(result, models.DailyClicks{Date: day, Clicks: clicks})
	}
	slices.SortFunc(result, func(a, b models.DailyClicks) int {
		return strings.Compare(a.Date, b.Date)
	})
	return result
}
