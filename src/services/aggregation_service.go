package services

import (
	"context"
	"sort"
	"strings"

	"ledger/src/repositories"
	"ledger/src/schemas"
	"ledger/src/utils"
)

type AggregationServiceI interface {
	BudgetStatus(ctx context.Context, portfolioID, month string) ([]schemas.BudgetStatus, error)
	MonthlyNet(ctx context.Context, portfolioID string) ([]schemas.MonthlyNet, error)
	CategoryTotals(ctx context.Context, portfolioID, month string) ([]schemas.CategoryTotal, error)
	ImportSummaries(ctx context.Context, portfolioID string) ([]schemas.ImportSummary, error)
}

// AggregationService derives read-only views from the committed ledger. It
// recomputes on every call and is never the source of truth, so category
// edits and deletions are reflected immediately.
type AggregationService struct {
	transactionRepo repositories.TransactionRepository
	budgetRepo      repositories.BudgetRepository
	importRepo      repositories.ImportRepository
}

func NewAggregationService(transactionRepo repositories.TransactionRepository, budgetRepo repositories.BudgetRepository, importRepo repositories.ImportRepository) *AggregationService {
	return &AggregationService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		importRepo:      importRepo,
	}
}

// BudgetStatus reports spend against each budget of a month. Spent sums the
// absolute value of the month's negative amounts per category. A zero-amount
// budget reports the PercentUndefined sentinel instead of dividing by zero.
func (s *AggregationService) BudgetStatus(ctx context.Context, portfolioID, month string) ([]schemas.BudgetStatus, error) {
	budgets, err := s.budgetRepo.GetByMonth(ctx, portfolioID, month)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.GetByPortfolioID(ctx, portfolioID, repositories.TransactionFilters{Month: month})
	if err != nil {
		return nil, err
	}

	spent := map[string]float64{}
	for _, t := range transactions {
		if t.Amount < 0 {
			spent[strings.ToLower(t.Category)] += -t.Amount
		}
	}

	statuses := make([]schemas.BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		status := schemas.BudgetStatus{
			Category: budget.Category,
			Month:    budget.Month,
			Amount:   budget.Amount,
			Spent:    spent[strings.ToLower(budget.Category)],
			Percent:  schemas.PercentUndefined,
		}
		status.Remaining = status.Amount - status.Spent
		if budget.Amount != 0 {
			status.Percent = 100 * status.Spent / budget.Amount
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// MonthlyNet groups transactions by year-month, summing inflows and
// outflows separately, ordered by month ascending.
func (s *AggregationService) MonthlyNet(ctx context.Context, portfolioID string) ([]schemas.MonthlyNet, error) {
	transactions, err := s.transactionRepo.GetByPortfolioID(ctx, portfolioID, repositories.TransactionFilters{})
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*schemas.MonthlyNet{}
	for _, t := range transactions {
		key := utils.MonthKey(t.TxDate)
		entry, ok := byMonth[key]
		if !ok {
			entry = &schemas.MonthlyNet{Month: key}
			byMonth[key] = entry
		}
		if t.Amount >= 0 {
			entry.Income += t.Amount
		} else {
			entry.Expense += -t.Amount
		}
	}

	months := make([]string, 0, len(byMonth))
	for key := range byMonth {
		months = append(months, key)
	}
	sort.Strings(months)

	result := make([]schemas.MonthlyNet, 0, len(months))
	for _, key := range months {
		entry := byMonth[key]
		entry.Net = entry.Income - entry.Expense
		result = append(result, *entry)
	}
	return result, nil
}

// CategoryTotals sums spend per category, counting only negative amounts.
// Rows without a category fall back to the Uncategorized label.
func (s *AggregationService) CategoryTotals(ctx context.Context, portfolioID, month string) ([]schemas.CategoryTotal, error) {
	transactions, err := s.transactionRepo.GetByPortfolioID(ctx, portfolioID, repositories.TransactionFilters{Month: month})
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		category := t.Category
		if strings.TrimSpace(category) == "" {
			category = UncategorizedLabel
		}
		totals[category] += -t.Amount
	}

	result := make([]schemas.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, schemas.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}

// ImportSummaries reports each import's worth from the totals snapshotted
// at commit, without re-deriving from raw files.
func (s *AggregationService) ImportSummaries(ctx context.Context, portfolioID string) ([]schemas.ImportSummary, error) {
	records, err := s.importRepo.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	summaries := make([]schemas.ImportSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, schemas.ImportSummary{
			ImportID:          record.ID,
			SourceInstitution: record.SourceInstitution,
			CommittedAt:       record.CommittedAt,
			RowCount:          record.RowCount,
			TotalAmount:       record.TotalAmount,
			TotalValue:        record.TotalValue,
			TotalInvested:     record.TotalInvested,
		})
	}
	return summaries, nil
}
