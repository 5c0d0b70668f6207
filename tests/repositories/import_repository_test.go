package repositories_test

import (
	"context"
	"testing"
	"time"

	"ledger/src/models"
	"ledger/src/repositories"

	"ledger/tests/init_test"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(portfolioID, fingerprint string) *models.ImportRecord {
	return &models.ImportRecord{
		ID:                 uuid.New(),
		PortfolioID:        portfolioID,
		SourceInstitution:  "chase",
		ContentFingerprint: fingerprint,
		CommittedAt:        time.Now().UTC().Truncate(time.Second),
		RowCount:           2,
		TotalAmount:        -50,
	}
}

func sampleTransactions(record *models.ImportRecord) []models.Transaction {
	return []models.Transaction{
		{
			PortfolioID: record.PortfolioID,
			ImportID:    record.ID,
			TxDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Description: "Coffee",
			Amount:      -4.50,
			Category:    "Dining",
		},
		{
			PortfolioID: record.PortfolioID,
			ImportID:    record.ID,
			TxDate:      time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Description: "Groceries",
			Amount:      -45.50,
			Category:    "Groceries",
		},
	}
}

func TestImportRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	defer init_test.TruncateTables(t, db)

	repo := repositories.NewImportRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	ctx := context.Background()

	t.Run("CreateWithRows persists record, rows and categories together", func(t *testing.T) {
		record := sampleRecord("test-p1", "fp-1")
		categories := []models.Category{
			{PortfolioID: record.PortfolioID, Label: "Dining", LabelNormalized: "dining"},
			{PortfolioID: record.PortfolioID, Label: "Groceries", LabelNormalized: "groceries"},
		}

		err := repo.CreateWithRows(ctx, record, sampleTransactions(record), nil, categories)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ContentFingerprint, stored.ContentFingerprint)
		assert.Equal(t, record.RowCount, stored.RowCount)

		transactions, err := transactionRepo.GetByPortfolioID(ctx, record.PortfolioID, repositories.TransactionFilters{})
		require.NoError(t, err)
		assert.Len(t, transactions, 2)

		storedCategories, err := categoryRepo.GetByPortfolioID(ctx, record.PortfolioID)
		require.NoError(t, err)
		require.Len(t, storedCategories, 2)
		assert.Equal(t, "Dining", storedCategories[0].Label)
		assert.Less(t, storedCategories[0].Position, storedCategories[1].Position)
	})

	t.Run("duplicate fingerprint in the same portfolio is rejected", func(t *testing.T) {
		first := sampleRecord("test-p2", "fp-dup")
		require.NoError(t, repo.CreateWithRows(ctx, first, sampleTransactions(first), nil, nil))

		second := sampleRecord("test-p2", "fp-dup")
		err := repo.CreateWithRows(ctx, second, sampleTransactions(second), nil, nil)
		require.Error(t, err)

		// The failed commit left no partial rows behind.
		transactions, err := transactionRepo.GetByPortfolioID(ctx, "test-p2", repositories.TransactionFilters{})
		require.NoError(t, err)
		assert.Len(t, transactions, 2)

		// Same fingerprint in another portfolio is fine.
		other := sampleRecord("test-p3", "fp-dup")
		assert.NoError(t, repo.CreateWithRows(ctx, other, nil, []models.HoldingEntry{{
			PortfolioID:  other.PortfolioID,
			ImportID:     other.ID,
			Holder:       "VTI",
			CurrentValue: 2500,
			SnapshotDate: time.Now().UTC(),
		}}, nil))
	})

	t.Run("GetByFingerprint", func(t *testing.T) {
		record := sampleRecord("test-p4", "fp-find")
		require.NoError(t, repo.CreateWithRows(ctx, record, nil, nil, nil))

		found, err := repo.GetByFingerprint(ctx, "test-p4", "fp-find")
		require.NoError(t, err)
		assert.Equal(t, record.ID, found.ID)

		_, err = repo.GetByFingerprint(ctx, "test-p4", "fp-missing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("Delete cascades to derived rows", func(t *testing.T) {
		record := sampleRecord("test-p5", "fp-del")
		require.NoError(t, repo.CreateWithRows(ctx, record, sampleTransactions(record), nil, nil))

		require.NoError(t, repo.Delete(ctx, record.ID))

		_, err := repo.GetByID(ctx, record.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		transactions, err := transactionRepo.GetByPortfolioID(ctx, record.PortfolioID, repositories.TransactionFilters{})
		require.NoError(t, err)
		assert.Empty(t, transactions)

		assert.ErrorIs(t, repo.Delete(ctx, record.ID), repositories.ErrNotFound)
	})
}
