package controllers

import (
	"context"

	"ledger/src/adapters"
	"ledger/src/models"
	"ledger/src/schemas"

	"github.com/google/uuid"
)

type ImportsControllerI interface {
	PreviewFiles(ctx context.Context, payloads []adapters.Payload, portfolioID string) (*schemas.PreviewResponse, error)
	CommitDraft(ctx context.Context, draft *schemas.PreviewDraft, portfolioID string) (*models.ImportRecord, error)
	GetImports(ctx context.Context, portfolioID string) ([]schemas.ImportSummary, error)
	DeleteImport(ctx context.Context, importID uuid.UUID) error
}

func (c *Controller) PreviewFiles(ctx context.Context, payloads []adapters.Payload, portfolioID string) (*schemas.PreviewResponse, error) {
	return c.ImportService.Preview(ctx, payloads, portfolioID)
}

func (c *Controller) CommitDraft(ctx context.Context, draft *schemas.PreviewDraft, portfolioID string) (*models.ImportRecord, error) {
	return c.ImportService.Commit(ctx, draft, portfolioID)
}

func (c *Controller) GetImports(ctx context.Context, portfolioID string) ([]schemas.ImportSummary, error) {
	return c.Aggregation.ImportSummaries(ctx, portfolioID)
}

func (c *Controller) DeleteImport(ctx context.Context, importID uuid.UUID) error {
	return c.ImportService.Delete(ctx, importID)
}
