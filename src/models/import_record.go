package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportRecord is the persisted unit of one successful commit. It is created
// only by the commit protocol, never updated, and deleted as a whole together
// with its derived rows.
type ImportRecord struct {
	ID                 uuid.UUID `db:"id"`
	PortfolioID        string    `db:"portfolio_id"`
	SourceInstitution  string    `db:"source_institution"`
	ContentFingerprint string    `db:"content_fingerprint"`
	CommittedAt        time.Time `db:"committed_at"`
	RowCount           int       `db:"row_count"`
	TotalAmount        float64   `db:"total_amount"`
	TotalValue         float64   `db:"total_value"`
	TotalInvested      float64   `db:"total_invested"`
}
