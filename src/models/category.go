package models

// Category is one label of a portfolio's taxonomy. Labels are unique per
// portfolio ignoring case; Position preserves insertion order for display.
type Category struct {
	PortfolioID     string `db:"portfolio_id"`
	Label           string `db:"label"`
	LabelNormalized string `db:"label_normalized"`
	Position        int    `db:"position"`
}
