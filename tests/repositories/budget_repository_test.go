package repositories_test

import (
	"context"
	"testing"

	"ledger/src/models"
	"ledger/src/repositories"

	"ledger/tests/init_test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	defer init_test.TruncateTables(t, db)

	repo := repositories.NewBudgetRepository(db)
	ctx := context.Background()
	portfolioID := "budget-p1"

	t.Run("Upsert creates then replaces", func(t *testing.T) {
		budget := &models.Budget{PortfolioID: portfolioID, Category: "Groceries", Month: "2024-03", Amount: 400}
		require.NoError(t, repo.Upsert(ctx, budget))
		assert.NotZero(t, budget.ID)

		replaced := &models.Budget{PortfolioID: portfolioID, Category: "Groceries", Month: "2024-03", Amount: 500}
		require.NoError(t, repo.Upsert(ctx, replaced))
		assert.Equal(t, budget.ID, replaced.ID)

		budgets, err := repo.GetByMonth(ctx, portfolioID, "2024-03")
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.InDelta(t, 500, budgets[0].Amount, 0.001)
	})

	t.Run("GetByMonth scopes to the month", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &models.Budget{PortfolioID: portfolioID, Category: "Rent", Month: "2024-04", Amount: 900}))

		budgets, err := repo.GetByMonth(ctx, portfolioID, "2024-04")
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Rent", budgets[0].Category)

		all, err := repo.GetByPortfolioID(ctx, portfolioID)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		budget := &models.Budget{PortfolioID: portfolioID, Category: "Travel", Month: "2024-05", Amount: 300}
		require.NoError(t, repo.Upsert(ctx, budget))

		require.NoError(t, repo.Delete(ctx, budget.ID))
		assert.ErrorIs(t, repo.Delete(ctx, budget.ID), repositories.ErrNotFound)
	})
}
