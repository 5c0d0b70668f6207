package services

import (
	"context"
	"strings"

	"ledger/src/models"
	"ledger/src/repositories"
)

// UncategorizedLabel is where rows land when their category is removed with
// cascade, and the fallback label for aggregation over rows without one.
const UncategorizedLabel = "Uncategorized"

type TaxonomyServiceI interface {
	List(ctx context.Context, portfolioID string) ([]models.Category, error)
	Add(ctx context.Context, portfolioID, label string) error
	Remove(ctx context.Context, portfolioID, label string, cascade bool) error
}

// TaxonomyService maintains the per-portfolio category list: case-insensitive
// uniqueness, insertion order preserved, removal guarded against dangling
// ledger references.
type TaxonomyService struct {
	categoryRepo    repositories.CategoryRepository
	transactionRepo repositories.TransactionRepository
	holdingRepo     repositories.HoldingRepository
}

func NewTaxonomyService(categoryRepo repositories.CategoryRepository, transactionRepo repositories.TransactionRepository, holdingRepo repositories.HoldingRepository) *TaxonomyService {
	return &TaxonomyService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		holdingRepo:     holdingRepo,
	}
}

// MergeTaxonomy reconciles suggested labels against the existing taxonomy.
// A suggestion already present under any casing is dropped; the rest are
// returned in the order encountered, without introducing case-variant
// duplicates among themselves. Existing labels are never renamed or removed.
func MergeTaxonomy(existing []models.Category, suggested []string) []string {
	present := make(map[string]bool, len(existing))
	for _, category := range existing {
		present[strings.ToLower(category.Label)] = true
	}

	var added []string
	for _, label := range suggested {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			continue
		}
		normalized := strings.ToLower(trimmed)
		if present[normalized] {
			continue
		}
		present[normalized] = true
		added = append(added, trimmed)
	}
	return added
}

func (s *TaxonomyService) List(ctx context.Context, portfolioID string) ([]models.Category, error) {
	return s.categoryRepo.GetByPortfolioID(ctx, portfolioID)
}

func (s *TaxonomyService) Add(ctx context.Context, portfolioID, label string) error {
	return s.categoryRepo.Create(ctx, &models.Category{
		PortfolioID: portfolioID,
		Label:       strings.TrimSpace(label),
	})
}

// Remove deletes a category label. When ledger rows still reference it the
// removal fails with TaxonomyConflictError unless cascade is set, in which
// case the referencing rows are moved to the Uncategorized label first.
func (s *TaxonomyService) Remove(ctx context.Context, portfolioID, label string, cascade bool) error {
	txCount, err := s.transactionRepo.CountByCategory(ctx, portfolioID, label)
	if err != nil {
		return err
	}
	holdingCount, err := s.holdingRepo.CountByCategory(ctx, portfolioID, label)
	if err != nil {
		return err
	}

	references := txCount + holdingCount
	if references > 0 {
		if !cascade {
			return &TaxonomyConflictError{Category: label, References: references}
		}
		if err := s.transactionRepo.ClearCategory(ctx, portfolioID, label, UncategorizedLabel); err != nil {
			return err
		}
		if err := s.holdingRepo.ClearCategory(ctx, portfolioID, label, UncategorizedLabel); err != nil {
			return err
		}
	}

	return s.categoryRepo.Delete(ctx, portfolioID, label)
}
