package servicestest

import (
	"context"
	"testing"

	"ledger/src/models"
	"ledger/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTaxonomy(t *testing.T) {
	existing := []models.Category{
		{Label: "Groceries", LabelNormalized: "groceries", Position: 1},
		{Label: "Rent", LabelNormalized: "rent", Position: 2},
	}

	t.Run("case-insensitive match is not re-added", func(t *testing.T) {
		added := services.MergeTaxonomy(existing, []string{"groceries", "GROCERIES", "Rent"})
		assert.Empty(t, added)
	})

	t.Run("new labels keep encounter order", func(t *testing.T) {
		added := services.MergeTaxonomy(existing, []string{"Utilities", "Travel", "Utilities"})
		assert.Equal(t, []string{"Utilities", "Travel"}, added)
	})

	t.Run("case-variant suggestions collapse to the first", func(t *testing.T) {
		added := services.MergeTaxonomy(nil, []string{"Dining", "DINING", "dining"})
		assert.Equal(t, []string{"Dining"}, added)
	})

	t.Run("blank suggestions are dropped", func(t *testing.T) {
		added := services.MergeTaxonomy(nil, []string{"", "  ", "Misc"})
		assert.Equal(t, []string{"Misc"}, added)
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		suggested := []string{"Utilities", "Travel"}
		first := services.MergeTaxonomy(existing, suggested)

		merged := append([]models.Category{}, existing...)
		for _, label := range first {
			merged = append(merged, models.Category{Label: label, LabelNormalized: label})
		}
		second := services.MergeTaxonomy(merged, suggested)
		assert.Empty(t, second)
	})
}

func TestTaxonomyServiceRemove(t *testing.T) {
	ctx := context.Background()
	portfolioID := "portfolio-1"

	setup := func() (*FakeLedger, *services.TaxonomyService) {
		ledger := NewFakeLedger()
		ledger.Categories = []models.Category{
			{PortfolioID: portfolioID, Label: "Dining", LabelNormalized: "dining", Position: 1},
		}
		ledger.Transactions = []models.Transaction{
			{ID: 1, PortfolioID: portfolioID, Category: "Dining", Amount: -20},
			{ID: 2, PortfolioID: portfolioID, Category: "Rent", Amount: -900},
		}
		service := services.NewTaxonomyService(ledger.CategoryRepo(), ledger.TransactionRepo(), ledger.HoldingRepo())
		return ledger, service
	}

	t.Run("referenced category without cascade conflicts", func(t *testing.T) {
		_, service := setup()

		err := service.Remove(ctx, portfolioID, "Dining", false)

		var conflict *services.TaxonomyConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 1, conflict.References)
	})

	t.Run("cascade moves rows to uncategorized then deletes", func(t *testing.T) {
		ledger, service := setup()

		err := service.Remove(ctx, portfolioID, "Dining", true)
		require.NoError(t, err)

		assert.Equal(t, services.UncategorizedLabel, ledger.Transactions[0].Category)
		assert.Equal(t, "Rent", ledger.Transactions[1].Category)
		assert.Empty(t, ledger.Categories)
	})

	t.Run("unreferenced category deletes without cascade", func(t *testing.T) {
		ledger, service := setup()
		ledger.Categories = append(ledger.Categories, models.Category{
			PortfolioID: portfolioID, Label: "Unused", LabelNormalized: "unused", Position: 2,
		})

		require.NoError(t, service.Remove(ctx, portfolioID, "Unused", false))
		assert.Len(t, ledger.Categories, 1)
	})
}

func TestTaxonomyServiceAddPreservesOrder(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := services.NewTaxonomyService(ledger.CategoryRepo(), ledger.TransactionRepo(), ledger.HoldingRepo())

	require.NoError(t, service.Add(ctx, "p1", "Groceries"))
	require.NoError(t, service.Add(ctx, "p1", "Rent"))
	require.NoError(t, service.Add(ctx, "p1", "groceries"))

	categories, err := service.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Groceries", categories[0].Label)
	assert.Equal(t, "Rent", categories[1].Label)
}
