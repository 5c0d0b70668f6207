package controllers

import (
	"context"

	"ledger/src/models"
)

type TaxonomyControllerI interface {
	GetCategories(ctx context.Context, portfolioID string) ([]models.Category, error)
	AddCategory(ctx context.Context, portfolioID, label string) error
	RemoveCategory(ctx context.Context, portfolioID, label string, cascade bool) error
}

func (c *Controller) GetCategories(ctx context.Context, portfolioID string) ([]models.Category, error) {
	return c.TaxonomyService.List(ctx, portfolioID)
}

func (c *Controller) AddCategory(ctx context.Context, portfolioID, label string) error {
	return c.TaxonomyService.Add(ctx, portfolioID, label)
}

func (c *Controller) RemoveCategory(ctx context.Context, portfolioID, label string, cascade bool) error {
	return c.TaxonomyService.Remove(ctx, portfolioID, label, cascade)
}
