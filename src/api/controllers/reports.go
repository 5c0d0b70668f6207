package controllers

import (
	"context"

	"ledger/src/schemas"

	"github.com/xuri/excelize/v2"
)

type ReportsControllerI interface {
	GetMonthlyNet(ctx context.Context, portfolioID string) ([]schemas.MonthlyNet, error)
	GetCategoryTotals(ctx context.Context, portfolioID, month string) ([]schemas.CategoryTotal, error)
	GenerateExport(ctx context.Context, portfolioID string) (*excelize.File, error)
}

func (c *Controller) GetMonthlyNet(ctx context.Context, portfolioID string) ([]schemas.MonthlyNet, error) {
	return c.Aggregation.MonthlyNet(ctx, portfolioID)
}

func (c *Controller) GetCategoryTotals(ctx context.Context, portfolioID, month string) ([]schemas.CategoryTotal, error) {
	return c.Aggregation.CategoryTotals(ctx, portfolioID, month)
}

func (c *Controller) GenerateExport(ctx context.Context, portfolioID string) (*excelize.File, error) {
	return c.Export.GenerateWorkbook(ctx, portfolioID)
}
