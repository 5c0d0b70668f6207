package schemas

import (
	"time"

	"github.com/google/uuid"
)

// PercentUndefined is reported when a budget has a zero amount, where the
// spent percentage has no meaningful value.
const PercentUndefined = -1.0

// BudgetStatus is the derived state of one budget for one month.
type BudgetStatus struct {
	Category  string  `json:"category"`
	Month     string  `json:"month"`
	Amount    float64 `json:"amount"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// MonthlyNet sums a month's inflows and outflows separately.
type MonthlyNet struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// CategoryTotal is the spend total of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ImportSummary is the per-import worth shown without re-deriving from raw
// files.
type ImportSummary struct {
	ImportID          uuid.UUID `json:"importId"`
	SourceInstitution string    `json:"sourceInstitution"`
	CommittedAt       time.Time `json:"committedAt"`
	RowCount          int       `json:"rowCount"`
	TotalAmount       float64   `json:"totalAmount"`
	TotalValue        float64   `json:"totalValue"`
	TotalInvested     float64   `json:"totalInvested"`
}

// PricedHolding is a holding entry enriched with a live quote when the
// pricing client can supply one.
type PricedHolding struct {
	ID           int       `json:"id"`
	Holder       string    `json:"holder"`
	Shares       *float64  `json:"shares,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	CurrentValue float64   `json:"currentValue"`
	Invested     *float64  `json:"invested,omitempty"`
	Category     string    `json:"category"`
	SnapshotDate time.Time `json:"snapshotDate"`
	LivePrice    *float64  `json:"livePrice,omitempty"`
	LiveValue    *float64  `json:"liveValue,omitempty"`
	ImportID     uuid.UUID `json:"importId"`
}
