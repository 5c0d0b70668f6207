package services

import (
	"fmt"
	"ledger/src/schemas"
	"strings"
)

// IncompleteMappingError is returned at commit time when the column mapping
// lacks the roles required to normalize rows. Recoverable: the caller edits
// the mapping and retries commit with the same draft.
type IncompleteMappingError struct {
	Missing []schemas.Role
}

func (e *IncompleteMappingError) Error() string {
	roles := make([]string, len(e.Missing))
	for i, role := range e.Missing {
		roles[i] = string(role)
	}
	return "column mapping incomplete: missing " + strings.Join(roles, ", ")
}

// NoValidRowsError hard-blocks a commit whose batch has no usable rows.
// Nothing is persisted.
type NoValidRowsError struct {
	RowCount     int
	WarningCount int
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("no valid rows to commit: %d warnings across %d rows", e.WarningCount, e.RowCount)
}

// TaxonomyConflictError is returned when a category removal is requested
// while ledger rows still reference the label. Recoverable via the explicit
// cascade flag.
type TaxonomyConflictError struct {
	Category   string
	References int
}

func (e *TaxonomyConflictError) Error() string {
	return fmt.Sprintf("category %q is referenced by %d ledger rows", e.Category, e.References)
}

// LedgerWriteError wraps a storage failure during commit. The commit is
// not retried internally; the draft stays with the caller.
type LedgerWriteError struct {
	Err error
}

func (e *LedgerWriteError) Error() string {
	return "ledger write failed: " + e.Err.Error()
}

func (e *LedgerWriteError) Unwrap() error {
	return e.Err
}
