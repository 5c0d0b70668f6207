package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ledger/src/adapters"
	"ledger/src/models"
	"ledger/src/repositories"
	"ledger/src/schemas"

	"github.com/google/uuid"
)

type ImportServiceI interface {
	Preview(ctx context.Context, payloads []adapters.Payload, portfolioID string) (*schemas.PreviewResponse, error)
	Commit(ctx context.Context, draft *schemas.PreviewDraft, portfolioID string) (*models.ImportRecord, error)
	Delete(ctx context.Context, importID uuid.UUID) error
}

// ImportService drives the two-phase preview/commit protocol. Preview never
// writes to the ledger; commit persists a draft exactly once, atomically, or
// not at all.
type ImportService struct {
	registry     *adapters.Registry
	mapping      MappingServiceI
	importRepo   repositories.ImportRepository
	categoryRepo repositories.CategoryRepository
}

func NewImportService(registry *adapters.Registry, mapping MappingServiceI, importRepo repositories.ImportRepository, categoryRepo repositories.CategoryRepository) *ImportService {
	return &ImportService{
		registry:     registry,
		mapping:      mapping,
		importRepo:   importRepo,
		categoryRepo: categoryRepo,
	}
}

// Preview extracts every payload of a batch concurrently and builds one
// editable draft per file. A file whose extraction fails becomes a per-file
// warning; it never aborts the rest of the batch.
func (s *ImportService) Preview(ctx context.Context, payloads []adapters.Payload, portfolioID string) (*schemas.PreviewResponse, error) {
	if len(payloads) == 0 {
		return nil, fmt.Errorf("no content submitted for preview")
	}

	drafts := make([]*schemas.PreviewDraft, len(payloads))
	failures := make([]*schemas.FileWarning, len(payloads))

	var wg sync.WaitGroup
	for i := range payloads {
		wg.Add(1)
		go func(i int, payload adapters.Payload) {
			defer wg.Done()
			draft, err := s.previewOne(ctx, payload, portfolioID)
			if err != nil {
				failures[i] = &schemas.FileWarning{
					Filename: payload.Filename,
					Code:     schemas.WarnExtractionFailed,
					Message:  err.Error(),
				}
				return
			}
			drafts[i] = draft
		}(i, payloads[i])
	}
	wg.Wait()

	response := &schemas.PreviewResponse{}
	for i := range payloads {
		if drafts[i] != nil {
			response.Drafts = append(response.Drafts, drafts[i])
		}
		if failures[i] != nil {
			response.FileWarnings = append(response.FileWarnings, *failures[i])
		}
	}
	return response, nil
}

func (s *ImportService) previewOne(ctx context.Context, payload adapters.Payload, portfolioID string) (*schemas.PreviewDraft, error) {
	adapter, err := s.registry.ForFile(payload.Filename)
	if err != nil {
		return nil, err
	}
	extraction, err := adapter.Extract(ctx, payload)
	if err != nil {
		return nil, err
	}
	return s.buildDraft(ctx, extraction, portfolioID)
}

// buildDraft assembles the editable draft from an extraction: resolved
// mapping, per-row inclusion defaults, parse warnings and the duplicate
// check. Reads the ledger, never writes it.
func (s *ImportService) buildDraft(ctx context.Context, extraction *schemas.RawExtraction, portfolioID string) (*schemas.PreviewDraft, error) {
	mapping := s.mapping.Resolve(extraction.DetectedMapping, nil, len(extraction.Columns))

	rows := make([]schemas.DraftRow, 0, len(extraction.Rows))
	var warnings []schemas.RowWarning
	for i, raw := range extraction.Rows {
		row := schemas.DraftRow{
			Cells:    raw.Cells,
			Include:  raw.IncludeByDefault,
			Category: extraction.DefaultCategory,
		}
		if code, message := rowProblem(mapping, raw.Cells, extraction.Kind); code != "" {
			row.Include = false
			warnings = append(warnings, schemas.RowWarning{Row: i, Code: code, Message: message})
		}
		rows = append(rows, row)
	}

	draft := &schemas.PreviewDraft{
		Fingerprint:       extraction.ContentFingerprint,
		PortfolioID:       portfolioID,
		SourceInstitution: extraction.Institution,
		Kind:              extraction.Kind,
		Columns:           extraction.Columns,
		Mapping:           mapping,
		Rows:              rows,
		Warnings:          warnings,
		SuggestedDate:     extraction.SuggestedDate,
	}

	prior, err := s.importRepo.GetByFingerprint(ctx, portfolioID, extraction.ContentFingerprint)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if prior != nil {
		// Informational only: the user may be re-importing a corrected copy.
		draft.DuplicateOf = &prior.ID
		draft.Warnings = append(draft.Warnings, schemas.RowWarning{
			Row:     -1,
			Code:    schemas.WarnDuplicateContent,
			Message: fmt.Sprintf("content matches import %s committed earlier", prior.ID),
		})
	}

	return draft, nil
}

// Commit validates the edited draft and persists it as one atomic import
// unit. On any failure the ledger is untouched and the caller keeps the
// draft for an edited retry.
func (s *ImportService) Commit(ctx context.Context, draft *schemas.PreviewDraft, portfolioID string) (*models.ImportRecord, error) {
	if draft == nil || len(draft.Rows) == 0 {
		return nil, &NoValidRowsError{}
	}
	if err := s.mapping.Validate(draft.Mapping, draft.Kind); err != nil {
		return nil, err
	}

	importID := uuid.New()
	var transactions []models.Transaction
	var holdings []models.HoldingEntry
	warningCount := 0

	for _, row := range draft.Rows {
		if code, _ := rowProblem(draft.Mapping, row.Cells, draft.Kind); code != "" {
			warningCount++
			continue
		}
		if !row.Include {
			continue
		}
		if draft.Kind == schemas.KindHoldings {
			parsed, _, _ := parseHoldingCells(draft.Mapping, row.Cells)
			holdings = append(holdings, buildHolding(draft, row, parsed, portfolioID, importID))
		} else {
			parsed, _, _ := parseTransactionCells(draft.Mapping, row.Cells)
			transactions = append(transactions, buildTransaction(draft, row, parsed, portfolioID, importID))
		}
	}

	emitted := len(transactions) + len(holdings)
	if warningCount >= len(draft.Rows) || emitted == 0 {
		return nil, &NoValidRowsError{RowCount: len(draft.Rows), WarningCount: warningCount}
	}

	record := &models.ImportRecord{
		ID:                 importID,
		PortfolioID:        portfolioID,
		SourceInstitution:  draft.SourceInstitution,
		ContentFingerprint: draft.Fingerprint,
		CommittedAt:        time.Now().UTC(),
		RowCount:           emitted,
	}
	for _, t := range transactions {
		record.TotalAmount += t.Amount
	}
	for _, h := range holdings {
		record.TotalValue += h.CurrentValue
		if h.Invested != nil {
			record.TotalInvested += *h.Invested
		}
	}

	// The taxonomy merge runs after the caller's final row edits, so
	// categories edited away during preview never pollute the taxonomy.
	existing, err := s.categoryRepo.GetByPortfolioID(ctx, portfolioID)
	if err != nil {
		return nil, &LedgerWriteError{Err: err}
	}
	var suggested []string
	for _, t := range transactions {
		suggested = append(suggested, t.Category)
	}
	for _, h := range holdings {
		suggested = append(suggested, h.Category)
	}
	var categories []models.Category
	for _, label := range MergeTaxonomy(existing, suggested) {
		categories = append(categories, models.Category{
			PortfolioID:     portfolioID,
			Label:           label,
			LabelNormalized: strings.ToLower(label),
		})
	}

	if err := s.importRepo.CreateWithRows(ctx, record, transactions, holdings, categories); err != nil {
		return nil, &LedgerWriteError{Err: err}
	}
	return record, nil
}

// Delete removes an import record and every derived row carrying its id,
// atomically. Partial-import deletion is not exposed.
func (s *ImportService) Delete(ctx context.Context, importID uuid.UUID) error {
	return s.importRepo.Delete(ctx, importID)
}
