package model

import (
	"strings"
	"time"
)

// Transaction type values as stored in the database.
const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// Transaction represents a single buy or sell of a stock.
// It is the immutable input record for ledger consolidation.
type Transaction struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name,omitempty"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Shares    float64   `json:"shares"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// NormalizeTicker canonicalizes a ticker symbol: trimmed and uppercased.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
