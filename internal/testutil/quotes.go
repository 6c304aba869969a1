package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// StaticQuotes is a quote provider backed by a fixed map, for tests that run
// the portfolio pipeline without network access. Tickers absent from the map
// fail their fetch, which is how quote outages are simulated.
//
// Example usage:
//
//	quotes := testutil.NewStaticQuotes(
//	    model.Quote{Ticker: "AAPL", Price: 180, Name: "Apple Inc.", Sector: "Technology"},
//	)
//	svc := testutil.NewTestPortfolioService(t, db, quotes)
type StaticQuotes struct {
	mu     sync.Mutex
	quotes map[string]model.Quote
	calls  []string
}

// NewStaticQuotes creates a StaticQuotes provider serving the given quotes.
func NewStaticQuotes(quotes ...model.Quote) *StaticQuotes {
	m := make(map[string]model.Quote, len(quotes))
	for _, q := range quotes {
		m[q.Ticker] = q
	}
	return &StaticQuotes{quotes: m}
}

// Fetch returns the configured quote for ticker, or an error if none exists.
func (s *StaticQuotes) Fetch(_ context.Context, ticker string) (model.Quote, error) {
	s.mu.Lock()
	s.calls = append(s.calls, ticker)
	q, ok := s.quotes[ticker]
	s.mu.Unlock()

	if !ok {
		return model.Quote{}, fmt.Errorf("no quote configured for %s", ticker)
	}
	return q, nil
}

// Calls returns the tickers fetched so far, in call order.
func (s *StaticQuotes) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
