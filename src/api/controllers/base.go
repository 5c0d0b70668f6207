package controllers

import (
	"ledger/src/clients/pricing"
	"ledger/src/repositories"
	"ledger/src/services"
)

type IController interface {
	ImportsControllerI
	RowsControllerI
	TaxonomyControllerI
	BudgetsControllerI
	ReportsControllerI
}

// Controller wires the domain services behind the HTTP handlers. Handlers
// stay transport-only; everything ledger-shaped happens here or below.
type Controller struct {
	ImportService   services.ImportServiceI
	TaxonomyService services.TaxonomyServiceI
	Aggregation     services.AggregationServiceI
	Export          services.ExportServiceI
	PricingClient   pricing.ServiceClientI

	TransactionRepo repositories.TransactionRepository
	HoldingRepo     repositories.HoldingRepository
	BudgetRepo      repositories.BudgetRepository
	ImportRepo      repositories.ImportRepository
}

func NewController(
	importService services.ImportServiceI,
	taxonomyService services.TaxonomyServiceI,
	aggregation services.AggregationServiceI,
	export services.ExportServiceI,
	pricingClient pricing.ServiceClientI,
	transactionRepo repositories.TransactionRepository,
	holdingRepo repositories.HoldingRepository,
	budgetRepo repositories.BudgetRepository,
	importRepo repositories.ImportRepository,
) *Controller {
	return &Controller{
		ImportService:   importService,
		TaxonomyService: taxonomyService,
		Aggregation:     aggregation,
		Export:          export,
		PricingClient:   pricingClient,
		TransactionRepo: transactionRepo,
		HoldingRepo:     holdingRepo,
		BudgetRepo:      budgetRepo,
		ImportRepo:      importRepo,
	}
}
