package controllers

import (
	"context"

	"ledger/src/models"
	"ledger/src/repositories"
	"ledger/src/schemas"
	"ledger/src/utils"
)

type RowsControllerI interface {
	GetTransactions(ctx context.Context, portfolioID string, filters repositories.TransactionFilters) ([]models.Transaction, error)
	RecategorizeTransaction(ctx context.Context, rowID int, category, subcategory string) error
	GetHoldings(ctx context.Context, portfolioID string, priced bool) ([]schemas.PricedHolding, error)
	RecategorizeHolding(ctx context.Context, rowID int, category string) error
}

func (c *Controller) GetTransactions(ctx context.Context, portfolioID string, filters repositories.TransactionFilters) ([]models.Transaction, error) {
	return c.TransactionRepo.GetByPortfolioID(ctx, portfolioID, filters)
}

func (c *Controller) RecategorizeTransaction(ctx context.Context, rowID int, category, subcategory string) error {
	return c.TransactionRepo.UpdateCategory(ctx, rowID, category, subcategory)
}

// GetHoldings lists the portfolio's holding entries. When priced is set each
// entry is enriched with a live quote where the pricing client can supply
// one; a failed lookup leaves the entry unpriced rather than failing the
// listing.
func (c *Controller) GetHoldings(ctx context.Context, portfolioID string, priced bool) ([]schemas.PricedHolding, error) {
	entries, err := c.HoldingRepo.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	logger := utils.LoggerFromContext(ctx)
	holdings := make([]schemas.PricedHolding, 0, len(entries))
	for _, entry := range entries {
		holding := schemas.PricedHolding{
			ID:           entry.ID,
			Holder:       entry.Holder,
			Shares:       entry.Shares,
			Price:        entry.Price,
			CurrentValue: entry.CurrentValue,
			Invested:     entry.Invested,
			Category:     entry.Category,
			SnapshotDate: entry.SnapshotDate,
			ImportID:     entry.ImportID,
		}
		if priced && c.PricingClient != nil {
			quote, err := c.PricingClient.CurrentPrice(ctx, entry.Holder)
			if err != nil {
				logger.Warnf("no live quote for %s: %v", entry.Holder, err)
			} else {
				holding.LivePrice = &quote.Price
				if entry.Shares != nil {
					liveValue := quote.Price * *entry.Shares
					holding.LiveValue = &liveValue
				}
			}
		}
		holdings = append(holdings, holding)
	}
	return holdings, nil
}

func (c *Controller) RecategorizeHolding(ctx context.Context, rowID int, category string) error {
	return c.HoldingRepo.UpdateCategory(ctx, rowID, category)
}
