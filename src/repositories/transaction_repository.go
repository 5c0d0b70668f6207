package repositories

import (
	"context"
	"fmt"
	"time"

	"ledger/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionFilters narrows a transaction listing. Zero values mean no
// filtering on that dimension. Month is a "YYYY-MM" key.
type TransactionFilters struct {
	Month       string
	Category    string
	Subcategory string
	Institution string
}

type TransactionRepository interface {
	GetByPortfolioID(ctx context.Context, portfolioID string, filters TransactionFilters) ([]models.Transaction, error)
	UpdateCategory(ctx context.Context, rowID int, category, subcategory string) error
	CountByCategory(ctx context.Context, portfolioID, category string) (int, error)
	ClearCategory(ctx context.Context, portfolioID, category, replacement string) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) GetByPortfolioID(ctx context.Context, portfolioID string, filters TransactionFilters) ([]models.Transaction, error) {
	query := `SELECT id, portfolio_id, import_id, tx_date, description, amount, currency, institution, category, subcategory
		FROM transactions WHERE portfolio_id = $1`
	args := []interface{}{portfolioID}

	if filters.Month != "" {
		args = append(args, filters.Month)
		query += fmt.Sprintf(` AND to_char(tx_date, 'YYYY-MM') = $%d`, len(args))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		query += fmt.Sprintf(` AND lower(category) = lower($%d)`, len(args))
	}
	if filters.Subcategory != "" {
		args = append(args, filters.Subcategory)
		query += fmt.Sprintf(` AND lower(subcategory) = lower($%d)`, len(args))
	}
	if filters.Institution != "" {
		args = append(args, filters.Institution)
		query += fmt.Sprintf(` AND lower(institution) = lower($%d)`, len(args))
	}
	query += ` ORDER BY tx_date ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var date time.Time
		if err := rows.Scan(&t.ID, &t.PortfolioID, &t.ImportID, &date, &t.Description, &t.Amount,
			&t.Currency, &t.Institution, &t.Category, &t.Subcategory); err != nil {
			return nil, err
		}
		t.TxDate = date
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) UpdateCategory(ctx context.Context, rowID int, category, subcategory string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE transactions SET category = $1, subcategory = $2 WHERE id = $3`,
		category, subcategory, rowID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *transactionRepo) CountByCategory(ctx context.Context, portfolioID, category string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE portfolio_id = $1 AND lower(category) = lower($2)`,
		portfolioID, category).Scan(&count)
	return count, err
}

func (r *transactionRepo) ClearCategory(ctx context.Context, portfolioID, category, replacement string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE transactions SET category = $1, subcategory = '' WHERE portfolio_id = $2 AND lower(category) = lower($3)`,
		replacement, portfolioID, category)
	return err
}
