package request

// CreateTransactionRequest is the payload for creating a transaction.
type CreateTransactionRequest struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name,omitempty"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Type   string  `json:"type"` // buy or sell
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
}

// UpdateTransactionRequest is the payload for updating a transaction.
// All fields are optional; only provided fields are applied.
type UpdateTransactionRequest struct {
	Ticker *string  `json:"ticker,omitempty"`
	Name   *string  `json:"name,omitempty"`
	Date   *string  `json:"date,omitempty"`
	Type   *string  `json:"type,omitempty"`
	Shares *float64 `json:"shares,omitempty"`
	Price  *float64 `json:"price,omitempty"`
}
