package servicestest

import (
	"context"
	"testing"
	"time"

	"ledger/src/models"
	"ledger/src/schemas"
	"ledger/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newAggregation(ledger *FakeLedger) *services.AggregationService {
	return services.NewAggregationService(ledger.TransactionRepo(), ledger.BudgetRepo(), ledger)
}

func TestBudgetStatus(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	ledger.Budgets = []models.Budget{
		{ID: 1, PortfolioID: "p1", Category: "Groceries", Month: "2024-03", Amount: 400},
		{ID: 2, PortfolioID: "p1", Category: "Dining", Month: "2024-03", Amount: 0},
	}
	ledger.Transactions = []models.Transaction{
		{ID: 1, PortfolioID: "p1", TxDate: day(2024, 3, 2), Category: "Groceries", Amount: -120},
		{ID: 2, PortfolioID: "p1", TxDate: day(2024, 3, 9), Category: "groceries", Amount: -80},
		{ID: 3, PortfolioID: "p1", TxDate: day(2024, 3, 12), Category: "Groceries", Amount: 50},
		{ID: 4, PortfolioID: "p1", TxDate: day(2024, 4, 1), Category: "Groceries", Amount: -999},
		{ID: 5, PortfolioID: "p1", TxDate: day(2024, 3, 15), Category: "Dining", Amount: -35},
	}
	service := newAggregation(ledger)

	statuses, err := service.BudgetStatus(ctx, "p1", "2024-03")
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	groceries := statuses[0]
	assert.Equal(t, "Groceries", groceries.Category)
	// Refunds (positive amounts) and other months never count as spend;
	// category matching ignores case.
	assert.InDelta(t, 200, groceries.Spent, 0.001)
	assert.InDelta(t, 200, groceries.Remaining, 0.001)
	assert.InDelta(t, 50, groceries.Percent, 0.001)

	dining := statuses[1]
	assert.InDelta(t, 35, dining.Spent, 0.001)
	assert.Equal(t, schemas.PercentUndefined, dining.Percent)
}

func TestMonthlyNet(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	ledger.Transactions = []models.Transaction{
		{ID: 1, PortfolioID: "p1", TxDate: day(2024, 4, 5), Amount: -100},
		{ID: 2, PortfolioID: "p1", TxDate: day(2024, 3, 1), Amount: 2500},
		{ID: 3, PortfolioID: "p1", TxDate: day(2024, 3, 20), Amount: -400},
		{ID: 4, PortfolioID: "p1", TxDate: day(2024, 4, 9), Amount: 2600},
		{ID: 5, PortfolioID: "p2", TxDate: day(2024, 3, 9), Amount: -77},
	}
	service := newAggregation(ledger)

	rows, err := service.MonthlyNet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03", rows[0].Month)
	assert.InDelta(t, 2500, rows[0].Income, 0.001)
	assert.InDelta(t, 400, rows[0].Expense, 0.001)
	assert.InDelta(t, 2100, rows[0].Net, 0.001)

	assert.Equal(t, "2024-04", rows[1].Month)
	assert.InDelta(t, 2500, rows[1].Net, 0.001)
}

func TestCategoryTotals(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	ledger.Transactions = []models.Transaction{
		{ID: 1, PortfolioID: "p1", TxDate: day(2024, 3, 2), Category: "Rent", Amount: -900},
		{ID: 2, PortfolioID: "p1", TxDate: day(2024, 3, 5), Category: "", Amount: -60},
		{ID: 3, PortfolioID: "p1", TxDate: day(2024, 3, 9), Category: "Rent", Amount: -100},
		{ID: 4, PortfolioID: "p1", TxDate: day(2024, 3, 10), Category: "Salary", Amount: 2500},
	}
	service := newAggregation(ledger)

	totals, err := service.CategoryTotals(ctx, "p1", "2024-03")
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "Rent", totals[0].Category)
	assert.InDelta(t, 1000, totals[0].Total, 0.001)
	assert.Equal(t, services.UncategorizedLabel, totals[1].Category)
	assert.InDelta(t, 60, totals[1].Total, 0.001)
}

func TestImportSummaries(t *testing.T) {
	ctx := context.Background()
	ledger := NewFakeLedger()
	service := newImportService(ledger)

	draft := previewSingle(t, service, sampleStatement, "statement.csv", "chase", "p1")
	record, err := service.Commit(ctx, draft, "p1")
	require.NoError(t, err)

	summaries, err := newAggregation(ledger).ImportSummaries(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, record.ID, summaries[0].ImportID)
	assert.Equal(t, 3, summaries[0].RowCount)
	assert.InDelta(t, record.TotalAmount, summaries[0].TotalAmount, 0.001)
}
