package pricing

// QuoteResponse is the provider's payload for a single instrument quote.
type QuoteResponse struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	AsOf     string  `json:"asOf"`
}
