package repositories

import (
	"context"

	"ledger/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BudgetRepository interface {
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.Budget, error)
	GetByMonth(ctx context.Context, portfolioID, month string) ([]models.Budget, error)
	Upsert(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, budgetID int) error
}

type budgetRepo struct {
	db *pgxpool.Pool
}

func NewBudgetRepository(db *pgxpool.Pool) BudgetRepository {
	return &budgetRepo{db: db}
}

func (r *budgetRepo) GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.Budget, error) {
	return r.query(ctx,
		`SELECT id, portfolio_id, category, month, amount
		FROM budgets WHERE portfolio_id = $1 ORDER BY month ASC, category ASC`, portfolioID)
}

func (r *budgetRepo) GetByMonth(ctx context.Context, portfolioID, month string) ([]models.Budget, error) {
	return r.query(ctx,
		`SELECT id, portfolio_id, category, month, amount
		FROM budgets WHERE portfolio_id = $1 AND month = $2 ORDER BY category ASC`, portfolioID, month)
}

func (r *budgetRepo) Upsert(ctx context.Context, budget *models.Budget) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO budgets (portfolio_id, category, month, amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (portfolio_id, category, month) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING id`,
		budget.PortfolioID, budget.Category, budget.Month, budget.Amount).Scan(&budget.ID)
}

func (r *budgetRepo) Delete(ctx context.Context, budgetID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, budgetID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *budgetRepo) query(ctx context.Context, sql string, args ...interface{}) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.PortfolioID, &b.Category, &b.Month, &b.Amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
