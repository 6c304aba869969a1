package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test ledger rows.
//
// Example usage:
//
//	// Simple creation with defaults
//	transaction := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	transaction := testutil.NewTransaction().
//	    WithTicker("MSFT").
//	    WithDate("2024-03-15").
//	    Sell().
//	    WithShares(5).
//	    WithPrice(410.50).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Ticker    string
	Name      string
	Date      time.Time
	Type      string
	Shares    float64
	Price     float64
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Ticker:    "AAPL",
		Name:      "Apple Inc.",
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:      model.TransactionTypeBuy,
		Shares:    10,
		Price:     100,
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithTicker sets a custom ticker.
func (b *TransactionBuilder) WithTicker(ticker string) *TransactionBuilder {
	b.Ticker = ticker
	return b
}

// WithName sets a custom display name.
func (b *TransactionBuilder) WithName(name string) *TransactionBuilder {
	b.Name = name
	return b
}

// WithDate sets the trade date from a YYYY-MM-DD string.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: invalid date in TransactionBuilder: " + date)
	}
	b.Date = parsed
	return b
}

// WithCreatedAt sets the insertion timestamp, which breaks same-date ordering ties.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Buy marks the transaction as a buy.
func (b *TransactionBuilder) Buy() *TransactionBuilder {
	b.Type = model.TransactionTypeBuy
	return b
}

// Sell marks the transaction as a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionTypeSell
	return b
}

// WithShares sets the share count.
func (b *TransactionBuilder) WithShares(shares float64) *TransactionBuilder {
	b.Shares = shares
	return b
}

// WithPrice sets the per-share price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO stock_transaction (id, ticker, name, date, type, shares, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Ticker,
		b.Name,
		b.Date.Format("2006-01-02"),
		b.Type,
		b.Shares,
		b.Price,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Ticker:    b.Ticker,
		Name:      b.Name,
		Date:      b.Date,
		Type:      b.Type,
		Shares:    b.Shares,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
	}
}

// Convenience functions

// CreateBuy inserts a buy row for the given ticker.
//
// Example usage:
//
//	testutil.CreateBuy(t, db, "AAPL", "2024-01-15", 10, 100)
func CreateBuy(t *testing.T, db *sql.DB, ticker, date string, shares, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithTicker(ticker).WithDate(date).Buy().WithShares(shares).WithPrice(price).Build(t, db)
}

// CreateSell inserts a sell row for the given ticker.
func CreateSell(t *testing.T, db *sql.DB, ticker, date string, shares, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithTicker(ticker).WithDate(date).Sell().WithShares(shares).WithPrice(price).Build(t, db)
}
