package repositories

import (
	"context"
	"errors"

	"ledger/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type ImportRepository interface {
	// CreateWithRows persists an import record together with its derived
	// rows and taxonomy additions as a single database transaction. Either
	// everything is visible afterwards or nothing is.
	CreateWithRows(ctx context.Context, record *models.ImportRecord, transactions []models.Transaction, holdings []models.HoldingEntry, categories []models.Category) error
	Delete(ctx context.Context, importID uuid.UUID) error
	GetByID(ctx context.Context, importID uuid.UUID) (*models.ImportRecord, error)
	GetByFingerprint(ctx context.Context, portfolioID, fingerprint string) (*models.ImportRecord, error)
	GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.ImportRecord, error)
}

type importRepo struct {
	db *pgxpool.Pool
}

func NewImportRepository(db *pgxpool.Pool) ImportRepository {
	return &importRepo{db: db}
}

func (r *importRepo) CreateWithRows(ctx context.Context, record *models.ImportRecord, transactions []models.Transaction, holdings []models.HoldingEntry, categories []models.Category) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO imports (id, portfolio_id, source_institution, content_fingerprint, committed_at, row_count, total_amount, total_value, total_invested)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.PortfolioID, record.SourceInstitution, record.ContentFingerprint,
		record.CommittedAt, record.RowCount, record.TotalAmount, record.TotalValue, record.TotalInvested,
	)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, t := range transactions {
		batch.Queue(`
			INSERT INTO transactions (portfolio_id, import_id, tx_date, description, amount, currency, institution, category, subcategory)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			t.PortfolioID, t.ImportID, t.TxDate, t.Description, t.Amount, t.Currency, t.Institution, t.Category, t.Subcategory,
		)
	}
	for _, h := range holdings {
		batch.Queue(`
			INSERT INTO holdings (portfolio_id, import_id, holder, shares, price, current_value, invested, category, snapshot_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			h.PortfolioID, h.ImportID, h.Holder, h.Shares, h.Price, h.CurrentValue, h.Invested, h.Category, h.SnapshotDate,
		)
	}
	for _, c := range categories {
		batch.Queue(`
			INSERT INTO categories (portfolio_id, label, label_normalized, position)
			VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories WHERE portfolio_id = $1))
			ON CONFLICT (portfolio_id, label_normalized) DO NOTHING`,
			c.PortfolioID, c.Label, c.LabelNormalized,
		)
	}

	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err = results.Exec(); err != nil {
				_ = results.Close()
				return err
			}
		}
		if err = results.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *importRepo) Delete(ctx context.Context, importID uuid.UUID) error {
	// Derived transactions and holdings go with it via ON DELETE CASCADE.
	result, err := r.db.Exec(ctx, `DELETE FROM imports WHERE id = $1`, importID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *importRepo) GetByID(ctx context.Context, importID uuid.UUID) (*models.ImportRecord, error) {
	record, err := r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, portfolio_id, source_institution, content_fingerprint, committed_at, row_count, total_amount, total_value, total_invested
		FROM imports WHERE id = $1`, importID))
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *importRepo) GetByFingerprint(ctx context.Context, portfolioID, fingerprint string) (*models.ImportRecord, error) {
	record, err := r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, portfolio_id, source_institution, content_fingerprint, committed_at, row_count, total_amount, total_value, total_invested
		FROM imports WHERE portfolio_id = $1 AND content_fingerprint = $2
		ORDER BY committed_at DESC LIMIT 1`, portfolioID, fingerprint))
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *importRepo) GetByPortfolioID(ctx context.Context, portfolioID string) ([]models.ImportRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, portfolio_id, source_institution, content_fingerprint, committed_at, row_count, total_amount, total_value, total_invested
		FROM imports WHERE portfolio_id = $1 ORDER BY committed_at DESC`, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ImportRecord
	for rows.Next() {
		var record models.ImportRecord
		if err := rows.Scan(&record.ID, &record.PortfolioID, &record.SourceInstitution, &record.ContentFingerprint,
			&record.CommittedAt, &record.RowCount, &record.TotalAmount, &record.TotalValue, &record.TotalInvested); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *importRepo) scanOne(row pgx.Row) (*models.ImportRecord, error) {
	var record models.ImportRecord
	err := row.Scan(&record.ID, &record.PortfolioID, &record.SourceInstitution, &record.ContentFingerprint,
		&record.CommittedAt, &record.RowCount, &record.TotalAmount, &record.TotalValue, &record.TotalInvested)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
