package handlers_test

import (
	"net/http/httptest"
	"testing"

	"ledger/src/adapters"
	"ledger/src/api/controllers"
	"ledger/src/api/handlers"
	"ledger/src/services"
	servicestest "ledger/tests/services"

	"github.com/go-chi/chi/v5"
)

// newTestServer builds the full handler stack over in-memory repositories,
// so handler tests run the real services without a database.
func newTestServer(t *testing.T) (*httptest.Server, *servicestest.FakeLedger) {
	t.Helper()

	ledger := servicestest.NewFakeLedger()

	mappingService := services.NewMappingService()
	importService := services.NewImportService(adapters.NewRegistry(), mappingService, ledger, ledger.CategoryRepo())
	taxonomyService := services.NewTaxonomyService(ledger.CategoryRepo(), ledger.TransactionRepo(), ledger.HoldingRepo())
	aggregationService := services.NewAggregationService(ledger.TransactionRepo(), ledger.BudgetRepo(), ledger)
	exportService := services.NewExportService(aggregationService)

	controller := controllers.NewController(
		importService,
		taxonomyService,
		aggregationService,
		exportService,
		nil,
		ledger.TransactionRepo(),
		ledger.HoldingRepo(),
		ledger.BudgetRepo(),
		ledger,
	)
	h := handlers.Handler{Controller: controller}

	r := chi.NewRouter()
	r.Get("/alive", handlers.Healthcheck)
	r.Route("/api/portfolios/{id}", func(r chi.Router) {
		r.Post("/imports/preview", h.PreviewImport)
		r.Post("/imports/commit", h.CommitImport)
		r.Get("/imports", h.GetImports)
		r.Get("/transactions", h.GetTransactions)
		r.Get("/holdings", h.GetHoldings)
		r.Get("/categories", h.GetCategories)
		r.Post("/categories", h.AddCategory)
		r.Delete("/categories/{label}", h.RemoveCategory)
		r.Get("/budgets", h.GetBudgets)
		r.Post("/budgets", h.UpsertBudget)
		r.Get("/budgets/status", h.GetBudgetStatus)
		r.Get("/reports/monthly-net", h.GetMonthlyNet)
		r.Get("/reports/category-totals", h.GetCategoryTotals)
		r.Get("/reports/export", h.ExportReport)
	})
	r.Delete("/api/imports/{importID}", h.DeleteImport)
	r.Delete("/api/budgets/{budgetID}", h.DeleteBudget)
	r.Put("/api/transactions/{rowID}/category", h.RecategorizeTransaction)
	r.Put("/api/holdings/{rowID}/category", h.RecategorizeHolding)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, ledger
}
