package schemas

import (
	"time"

	"github.com/google/uuid"
)

// Warning codes attached to draft rows and files.
const (
	WarnUnparseableDate   = "unparseable_date"
	WarnUnparseableAmount = "unparseable_amount"
	WarnMissingHolder     = "missing_holder"
	WarnEmptyRow          = "empty_row"
	WarnDuplicateContent  = "duplicate_content"
	WarnExtractionFailed  = "extraction_failed"
)

// RowWarning is a diagnostic produced while building a draft. Row is the
// zero-based row index, or -1 for batch-level diagnostics such as
// WarnDuplicateContent.
type RowWarning struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FileWarning reports one file of a multi-file preview batch that failed
// extraction. It never aborts the batch.
type FileWarning struct {
	Filename string `json:"filename"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// DraftRow is one editable row of a preview draft.
type DraftRow struct {
	Cells       []string `json:"cells"`
	Include     bool     `json:"include"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
}

// PreviewDraft is the caller-held, not yet persisted normalization of one
// import batch. It is a plain serializable value: the caller edits it client
// side and passes it back at commit.
type PreviewDraft struct {
	Fingerprint       string         `json:"fingerprint"`
	PortfolioID       string         `json:"portfolioId"`
	SourceInstitution string         `json:"sourceInstitution"`
	Kind              ExtractionKind `json:"kind"`
	Columns           []string       `json:"columns"`
	Mapping           ColumnMapping  `json:"mapping"`
	Rows              []DraftRow     `json:"rows"`
	Warnings          []RowWarning   `json:"warnings"`
	SuggestedDate     *time.Time     `json:"suggestedDate,omitempty"`
	// DuplicateOf carries the prior import with the same fingerprint, when
	// one exists. Informational only; commit still proceeds.
	DuplicateOf *uuid.UUID `json:"duplicateOf,omitempty"`
}

// PreviewTextRequest is the body of a pasted-text preview call.
type PreviewTextRequest struct {
	Institution string `json:"institution"`
	Text        string `json:"text"`
}

// PreviewResponse bundles the drafts of a (possibly multi-file) preview
// batch with per-file extraction warnings.
type PreviewResponse struct {
	Drafts       []*PreviewDraft `json:"drafts"`
	FileWarnings []FileWarning   `json:"fileWarnings,omitempty"`
}

// RecategorizeRequest updates the category of one committed row.
type RecategorizeRequest struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
}
