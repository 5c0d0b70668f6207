package servicestest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ledger/src/models"
	"ledger/src/repositories"
	"ledger/src/utils"

	"github.com/google/uuid"
)

// FakeLedger is an in-memory stand-in for every repository interface, so
// service tests can exercise the pipeline without a database. CreateWithRows
// keeps the production all-or-nothing contract: when FailCreateWithRows is
// set nothing is stored at all.
type FakeLedger struct {
	mu sync.Mutex

	Imports      map[uuid.UUID]*models.ImportRecord
	Transactions []models.Transaction
	Holdings     []models.HoldingEntry
	Categories   []models.Category
	Budgets      []models.Budget

	FailCreateWithRows bool

	nextRowID    int
	nextBudgetID int
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		Imports: make(map[uuid.UUID]*models.ImportRecord),
	}
}

// --- ImportRepository ---

func (f *FakeLedger) CreateWithRows(_ context.Context, record *models.ImportRecord, transactions []models.Transaction, holdings []models.HoldingEntry, categories []models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailCreateWithRows {
		return errors.New("injected write failure")
	}

	stored := *record
	f.Imports[record.ID] = &stored
	for _, t := range transactions {
		f.nextRowID++
		t.ID = f.nextRowID
		f.Transactions = append(f.Transactions, t)
	}
	for _, h := range holdings {
		f.nextRowID++
		h.ID = f.nextRowID
		f.Holdings = append(f.Holdings, h)
	}
	for _, c := range categories {
		f.addCategoryLocked(c)
	}
	return nil
}

func (f *FakeLedger) Delete(_ context.Context, importID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.Imports[importID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.Imports, importID)

	kept := f.Transactions[:0]
	for _, t := range f.Transactions {
		if t.ImportID != importID {
			kept = append(kept, t)
		}
	}
	f.Transactions = kept

	keptHoldings := f.Holdings[:0]
	for _, h := range f.Holdings {
		if h.ImportID != importID {
			keptHoldings = append(keptHoldings, h)
		}
	}
	f.Holdings = keptHoldings
	return nil
}

func (f *FakeLedger) GetByID(_ context.Context, importID uuid.UUID) (*models.ImportRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.Imports[importID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *FakeLedger) GetByFingerprint(_ context.Context, portfolioID, fingerprint string) (*models.ImportRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, record := range f.Imports {
		if record.PortfolioID == portfolioID && record.ContentFingerprint == fingerprint {
			copied := *record
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *FakeLedger) GetByPortfolioID(_ context.Context, portfolioID string) ([]models.ImportRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []models.ImportRecord
	for _, record := range f.Imports {
		if record.PortfolioID == portfolioID {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CommittedAt.Before(records[j].CommittedAt) })
	return records, nil
}

// --- TransactionRepository ---

type txRepoFake struct{ *FakeLedger }

func (f *FakeLedger) TransactionRepo() repositories.TransactionRepository { return txRepoFake{f} }

func (f txRepoFake) GetByPortfolioID(_ context.Context, portfolioID string, filters repositories.TransactionFilters) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.Transaction
	for _, t := range f.Transactions {
		if t.PortfolioID != portfolioID {
			continue
		}
		if filters.Month != "" && utils.MonthKey(t.TxDate) != filters.Month {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(t.Category, filters.Category) {
			continue
		}
		if filters.Subcategory != "" && !strings.EqualFold(t.Subcategory, filters.Subcategory) {
			continue
		}
		if filters.Institution != "" && !strings.EqualFold(t.Institution, filters.Institution) {
			continue
		}
		rows = append(rows, t)
	}
	return rows, nil
}

func (f txRepoFake) UpdateCategory(_ context.Context, rowID int, category, subcategory string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.Transactions {
		if f.Transactions[i].ID == rowID {
			f.Transactions[i].Category = category
			f.Transactions[i].Subcategory = subcategory
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f txRepoFake) CountByCategory(_ context.Context, portfolioID, category string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, t := range f.Transactions {
		if t.PortfolioID == portfolioID && strings.EqualFold(t.Category, category) {
			count++
		}
	}
	return count, nil
}

func (f txRepoFake) ClearCategory(_ context.Context, portfolioID, category, replacement string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.Transactions {
		if f.Transactions[i].PortfolioID == portfolioID && strings.EqualFold(f.Transactions[i].Category, category) {
			f.Transactions[i].Category = replacement
		}
	}
	return nil
}

// --- HoldingRepository ---

type holdingRepoFake struct{ *FakeLedger }

func (f *FakeLedger) HoldingRepo() repositories.HoldingRepository { return holdingRepoFake{f} }

func (f holdingRepoFake) GetByPortfolioID(_ context.Context, portfolioID string) ([]models.HoldingEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.HoldingEntry
	for _, h := range f.Holdings {
		if h.PortfolioID == portfolioID {
			rows = append(rows, h)
		}
	}
	return rows, nil
}

func (f holdingRepoFake) UpdateCategory(_ context.Context, rowID int, category string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.Holdings {
		if f.Holdings[i].ID == rowID {
			f.Holdings[i].Category = category
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f holdingRepoFake) CountByCategory(_ context.Context, portfolioID, category string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, h := range f.Holdings {
		if h.PortfolioID == portfolioID && strings.EqualFold(h.Category, category) {
			count++
		}
	}
	return count, nil
}

func (f holdingRepoFake) ClearCategory(_ context.Context, portfolioID, category, replacement string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.Holdings {
		if f.Holdings[i].PortfolioID == portfolioID && strings.EqualFold(f.Holdings[i].Category, category) {
			f.Holdings[i].Category = replacement
		}
	}
	return nil
}

// --- CategoryRepository ---

type categoryRepoFake struct{ *FakeLedger }

func (f *FakeLedger) CategoryRepo() repositories.CategoryRepository { return categoryRepoFake{f} }

func (f categoryRepoFake) GetByPortfolioID(_ context.Context, portfolioID string) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.Category
	for _, c := range f.Categories {
		if c.PortfolioID == portfolioID {
			rows = append(rows, c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows, nil
}

func (f categoryRepoFake) Create(_ context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCategoryLocked(*category)
	return nil
}

func (f categoryRepoFake) Delete(_ context.Context, portfolioID, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	normalized := strings.ToLower(strings.TrimSpace(label))
	for i, c := range f.Categories {
		if c.PortfolioID == portfolioID && c.LabelNormalized == normalized {
			f.Categories = append(f.Categories[:i], f.Categories[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *FakeLedger) addCategoryLocked(category models.Category) {
	if category.LabelNormalized == "" {
		category.LabelNormalized = strings.ToLower(strings.TrimSpace(category.Label))
	}
	maxPosition := 0
	for _, existing := range f.Categories {
		if existing.PortfolioID == category.PortfolioID {
			if existing.LabelNormalized == category.LabelNormalized {
				return
			}
			if existing.Position > maxPosition {
				maxPosition = existing.Position
			}
		}
	}
	category.Position = maxPosition + 1
	f.Categories = append(f.Categories, category)
}

// --- BudgetRepository ---

type budgetRepoFake struct{ *FakeLedger }

func (f *FakeLedger) BudgetRepo() repositories.BudgetRepository { return budgetRepoFake{f} }

func (f budgetRepoFake) GetByPortfolioID(_ context.Context, portfolioID string) ([]models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.Budget
	for _, b := range f.Budgets {
		if b.PortfolioID == portfolioID {
			rows = append(rows, b)
		}
	}
	return rows, nil
}

func (f budgetRepoFake) GetByMonth(_ context.Context, portfolioID, month string) ([]models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.Budget
	for _, b := range f.Budgets {
		if b.PortfolioID == portfolioID && b.Month == month {
			rows = append(rows, b)
		}
	}
	return rows, nil
}

func (f budgetRepoFake) Upsert(_ context.Context, budget *models.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, b := range f.Budgets {
		if b.PortfolioID == budget.PortfolioID && strings.EqualFold(b.Category, budget.Category) && b.Month == budget.Month {
			f.Budgets[i].Amount = budget.Amount
			budget.ID = b.ID
			return nil
		}
	}
	f.nextBudgetID++
	budget.ID = f.nextBudgetID
	f.Budgets = append(f.Budgets, *budget)
	return nil
}

func (f budgetRepoFake) Delete(_ context.Context, budgetID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, b := range f.Budgets {
		if b.ID == budgetID {
			f.Budgets = append(f.Budgets[:i], f.Budgets[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}
