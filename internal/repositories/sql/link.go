package sql

import (
	"context"
	"time"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := l.db.WithContext(ctx).Create(link).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			l.logger.WithError(err).Errorf("failed to create link %+v", *link)
		}
		return ConvertErrorType(err)
	}
	return nil
}

func (l *LinkRepo) GetByOwnerAndURL(ctx context.Context, ownerID, targetURL string) (*models.Link, error) {
	var link models.Link
	err := l.db.WithContext(ctx).
		Where("owner_id = ? AND target_url = ?", ownerID, targetURL).
		First(&link).Error
	if err != nil {
		return nil, ConvertErrorType(err)
	}
	return &link, nil
}

// IncrementClicks увеличивает счетчик одним UPDATE и перечитывает запись в той же транзакции.
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	txErr := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Link{}).
			Where("code = ?", code).
			UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("code = ?", code).First(&link).Error
	})
	if txErr != nil {
		if !errors.Is(txErr, gorm.ErrRecordNotFound) {
			l.logger.WithError(txErr).Errorf("failed to increment clicks for %s", code)
		}
		return nil, ConvertErrorType(txErr)
	}
	return &link, nil
}

func (l *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	var links []models.Link
	err := l.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc, code asc").
		Find(&links).Error
	if err != nil {
		return nil, ConvertErrorType(err)
	}
	return links, nil
}

func (l *LinkRepo) GetAll(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := l.db.WithContext(ctx).Order("created_at desc, code asc").Find(&links).Error; err != nil {
		return nil, ConvertErrorType(err)
	}
	return links, nil
}

type ownedLinkRow struct {
	Code       string
	TargetURL  string
	OwnerID    string
	ShortURL   string
	Clicks     int64
	CreatedAt  time.Time
	OwnerEmail string
}

func (l *LinkRepo) GetAllWithOwner(ctx context.Context) ([]models.OwnedLink, error) {
	var rows []ownedLinkRow
	err := l.db.WithContext(ctx).
		Table("links").
		Select("links.*, users.email AS owner_email").
		Joins("LEFT JOIN users ON users.id = links.owner_id").
		Order("links.created_at desc, links.code asc").
		Scan(&rows).Error
	if err != nil {
		l.logger.WithError(err).Error("failed to get links with owners")
		return nil, ConvertErrorType(err)
	}

	result := make([]models.OwnedLink, 0, len(rows))
	for _, r := range rows {
		result = append(result, models.OwnedLink{
			Link: models.Link{
				Code:      r.Code,
				TargetURL: r.TargetURL,
				OwnerID:   r.OwnerID,
				ShortURL:  r.ShortURL,
				Clicks:    r.Clicks,
				CreatedAt: r.CreatedAt,
			},
			OwnerEmail: r.OwnerEmail,
		})
	}
	return result, nil
}
