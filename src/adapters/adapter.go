package adapters

import (
	"context"
	"fmt"
	"ledger/src/schemas"
	"path/filepath"
	"strings"
)

// Payload is one uploaded file or pasted text blob to extract rows from.
type Payload struct {
	Filename    string
	Institution string
	Content     []byte
}

// Adapter turns a payload into a RawExtraction. One implementation exists
// per source format; the pipeline is agnostic to adapter internals.
type Adapter interface {
	Extract(ctx context.Context, payload Payload) (*schemas.RawExtraction, error)
}

// ExtractionError reports a malformed or unsupported source file. It is
// surfaced verbatim to the user and never retried.
type ExtractionError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("extraction failed for %s: %s", e.Filename, e.Reason)
	}
	return "extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// institutionProfile captures per-institution defaults applied during
// extraction.
type institutionProfile struct {
	Kind            schemas.ExtractionKind
	DefaultCategory string
}

var institutionProfiles = map[string]institutionProfile{
	"fidelity":  {Kind: schemas.KindHoldings, DefaultCategory: "Retirement Plans"},
	"vanguard":  {Kind: schemas.KindHoldings, DefaultCategory: "Retirement Plans"},
	"schwab":    {Kind: schemas.KindHoldings, DefaultCategory: "Investments"},
	"brokerage": {Kind: schemas.KindHoldings, DefaultCategory: "Investments"},
}

// profileFor returns the institution defaults, falling back to a
// transactions-kind profile with the "Unknown" category.
func profileFor(institution string) institutionProfile {
	if profile, ok := institutionProfiles[strings.ToLower(strings.TrimSpace(institution))]; ok {
		return profile
	}
	return institutionProfile{Kind: schemas.KindTransactions, DefaultCategory: "Unknown"}
}

// Registry resolves the adapter for a payload by file extension.
type Registry struct {
	csv  *CSVAdapter
	xlsx *XLSXAdapter
}

func NewRegistry() *Registry {
	return &Registry{
		csv:  NewCSVAdapter(),
		xlsx: NewXLSXAdapter(),
	}
}

// ForFile picks the adapter matching the payload's file extension.
func (r *Registry) ForFile(filename string) (Adapter, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv", "":
		return r.csv, nil
	case ".xlsx", ".xlsm":
		return r.xlsx, nil
	default:
		return nil, &ExtractionError{Filename: filename, Reason: "unsupported file type"}
	}
}

// ForText returns the adapter handling pasted statement text.
func (r *Registry) ForText() Adapter {
	return r.csv
}
