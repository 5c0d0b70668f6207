package repositories

import (
	"context"
	"time"

	"ledger/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.HoldingEntry, error)
	UpdateCategory(ctx context.Context, rowID int, category string) error
	CountByCategory(ctx context.Context, portfolioID, category string) (int, error)
	ClearCategory(ctx context.Context, portfolioID, category, replacement string) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.HoldingEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, portfolio_id, import_id, holder, shares, price, current_value, invested, category, snapshot_date
		FROM holdings WHERE portfolio_id = $1
		ORDER BY snapshot_date DESC, holder ASC`, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.HoldingEntry
	for rows.Next() {
		var h models.HoldingEntry
		var date time.Time
		if err := rows.Scan(&h.ID, &h.PortfolioID, &h.ImportID, &h.Holder, &h.Shares, &h.Price,
			&h.CurrentValue, &h.Invested, &h.Category, &date); err != nil {
			return nil, err
		}
		h.SnapshotDate = date
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) UpdateCategory(ctx context.Context, rowID int, category string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE holdings SET category = $1 WHERE id = $2`, category, rowID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *holdingRepo) CountByCategory(ctx context.Context, portfolioID, category string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM holdings WHERE portfolio_id = $1 AND lower(category) = lower($2)`,
		portfolioID, category).Scan(&count)
	return count, err
}

func (r *holdingRepo) ClearCategory(ctx context.Context, portfolioID, category, replacement string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE holdings SET category = $1 WHERE portfolio_id = $2 AND lower(category) = lower($3)`,
		replacement, portfolioID, category)
	return err
}
