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

type LinkRepo struct {
	conn   Conn
	logger *logrus.Entry
}

func NewLinkRepo(conn Conn, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		conn:   conn,
		logger: logger.WithField("module", "repository/pgsql/link"),
	}
}

const linkColumns = `code, target_url, owner_id, short_url, clicks, created_at`

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	_, err := l.conn.Exec(ctx,
		`INSERT INTO links (`+linkColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		link.Code, link.TargetURL, link.OwnerID, link.ShortURL, link.Clicks, link.CreatedAt,
	)
	if err != nil {
		converted := convertErrType(err)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			l.logger.WithError(err).Errorf("failed to create link %+v", *link)
		}
		return converted
	}
	return nil
}

func (l *LinkRepo) GetByOwnerAndURL(ctx context.Context, ownerID, targetURL string) (*models.Link, error) {
	row := l.conn.QueryRow(ctx,
		`SELECT `+linkColumns+` FROM links WHERE owner_id = $1 AND target_url = $2`,
		ownerID, targetURL,
	)
	link, err := scanLinkRow(row)
	if err != nil {
		return nil, convertErrType(err)
	}
	return &link, nil
}

// IncrementClicks увеличивает счетчик одним UPDATE ... RETURNING.
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string) (*models.Link, error) {
	row := l.conn.QueryRow(ctx,
		`UPDATE links SET clicks = clicks + 1 WHERE code = $1 RETURNING `+linkColumns,
		code,
	)
	link, err := scanLinkRow(row)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			l.logger.WithError(err).Errorf("failed to increment clicks for %s", code)
		}
		return nil, convertErrType(err)
	}
	return &link, nil
}

func (l *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	rows, err := l.conn.Query(ctx,
		`SELECT `+linkColumns+` FROM links WHERE owner_id = $1 ORDER BY created_at DESC, code`,
		ownerID,
	)
	if err != nil {
		return nil, convertErrType(err)
	}
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Link, error) {
		return scanLinkRow(row)
	})
	if err != nil {
		return nil, convertErrType(err)
	}
	return links, nil
}

func (l *LinkRepo) GetAll(ctx context.Context) ([]models.Link, error) {
	rows, err := l.conn.Query(ctx, `SELECT `+linkColumns+` FROM links ORDER BY created_at DESC, code`)
	if err != nil {
		return nil, convertErrType(err)
	}
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Link, error) {
		return scanLinkRow(row)
	})
	if err != nil {
		return nil, convertErrType(err)
	}
	return links, nil
}

func (l *LinkRepo) GetAllWithOwner(ctx context.Context) ([]models.OwnedLink, error) {
	rows, err := l.conn.Query(ctx, `
		SELECT l.code, l.target_url, l.owner_id, l.short_url, l.clicks, l.created_at, COALESCE(u.email, '')
		FROM links l
		LEFT JOIN users u ON u.id = l.owner_id
		ORDER BY l.created_at DESC, l.code`)
	if err != nil {
		l.logger.WithError(err).Error("failed to get links with owners")
		return nil, convertErrType(err)
	}
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OwnedLink, error) {
		var ol models.OwnedLink
		scanErr := row.Scan(
			&ol.Code, &ol.TargetURL, &ol.OwnerID, &ol.ShortURL, &ol.Clicks, &ol.CreatedAt, &ol.OwnerEmail,
		)
		return ol, scanErr //nolint:wrapcheck
	})
	if err != nil {
		return nil, convertErrType(err)
	}
	return links, nil
}

func scanLinkRow(row pgx.Row) (models.Link, error) {
	var link models.Link
	err := row.Scan(&link.Code, &link.TargetURL, &link.OwnerID, &link.ShortURL, &link.Clicks, &link.CreatedAt)
	return link, err //nolint:wrapcheck
}
