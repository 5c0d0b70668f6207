package repositories

import (
	"context"
	"strings"

	"ledger/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, portfolioID, label string) error
}

type categoryRepo struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT portfolio_id, label, label_normalized, position
		FROM categories WHERE portfolio_id = $1 ORDER BY position ASC`, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.PortfolioID, &c.Label, &c.LabelNormalized, &c.Position); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	if category.LabelNormalized == "" {
		category.LabelNormalized = strings.ToLower(strings.TrimSpace(category.Label))
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (portfolio_id, label, label_normalized, position)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories WHERE portfolio_id = $1))
		ON CONFLICT (portfolio_id, label_normalized) DO NOTHING`,
		category.PortfolioID, category.Label, category.LabelNormalized)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, portfolioID, label string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM categories WHERE portfolio_id = $1 AND label_normalized = $2`,
		portfolioID, strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
