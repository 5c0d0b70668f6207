package models

// Budget is a monthly spending target for one category. Unique per
// (portfolio, category, month). Spent/remaining/percent are derived by the
// aggregation service, never stored.
type Budget struct {
	ID          int     `db:"id"`
	PortfolioID string  `db:"portfolio_id"`
	Category    string  `db:"category"`
	Month       string  `db:"month"`
	Amount      float64 `db:"amount"`
}
