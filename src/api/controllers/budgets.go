package controllers

import (
	"context"

	"ledger/src/models"
	"ledger/src/schemas"
)

type BudgetsControllerI interface {
	GetBudgets(ctx context.Context, portfolioID string) ([]models.Budget, error)
	UpsertBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, budgetID int) error
	GetBudgetStatus(ctx context.Context, portfolioID, month string) ([]schemas.BudgetStatus, error)
}

func (c *Controller) GetBudgets(ctx context.Context, portfolioID string) ([]models.Budget, error) {
	return c.BudgetRepo.GetByPortfolioID(ctx, portfolioID)
}

func (c *Controller) UpsertBudget(ctx context.Context, budget *models.Budget) error {
	return c.BudgetRepo.Upsert(ctx, budget)
}

func (c *Controller) DeleteBudget(ctx context.Context, budgetID int) error {
	return c.BudgetRepo.Delete(ctx, budgetID)
}

func (c *Controller) GetBudgetStatus(ctx context.Context, portfolioID, month string) ([]schemas.BudgetStatus, error) {
	return c.Aggregation.BudgetStatus(ctx, portfolioID, month)
}
