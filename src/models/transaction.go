package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a canonical normalized ledger record. Amount is signed,
// positive for credits. Only Category and Subcategory may change after
// commit.
type Transaction struct {
	ID          int       `db:"id"`
	PortfolioID string    `db:"portfolio_id"`
	ImportID    uuid.UUID `db:"import_id"`
	TxDate      time.Time `db:"tx_date"`
	Description string    `db:"description"`
	Amount      float64   `db:"amount"`
	Currency    string    `db:"currency"`
	Institution string    `db:"institution"`
	Category    string    `db:"category"`
	Subcategory string    `db:"subcategory"`
}
