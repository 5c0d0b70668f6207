package models

import (
	"time"

	"github.com/google/uuid"
)

// HoldingEntry is a canonical snapshot record from a broker, retirement or
// investment import. Shares, Price and Invested are optional depending on
// what the source statement exposes.
type HoldingEntry struct {
	ID           int       `db:"id"`
	PortfolioID  string    `db:"portfolio_id"`
	ImportID     uuid.UUID `db:"import_id"`
	Holder       string    `db:"holder"`
	Shares       *float64  `db:"shares"`
	Price        *float64  `db:"price"`
	CurrentValue float64   `db:"current_value"`
	Invested     *float64  `db:"invested"`
	Category     string    `db:"category"`
	SnapshotDate time.Time `db:"snapshot_date"`
}
