package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/service"
)

// TestFernetKey is a fixed fernet key used by tests that exercise encrypted
// settings. Never use it outside tests.
const TestFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
	)
}

// NewTestPortfolioService wires a PortfolioService against the test database
// and the given quote provider. Use StaticQuotes to avoid network access.
func NewTestPortfolioService(t *testing.T, db *sql.DB, quotes service.QuoteProvider) *service.PortfolioService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	valuationRepo := repository.NewValuationRepository(db)

	return service.NewPortfolioService(
		transactionRepo,
		holdingRepo,
		valuationRepo,
		quotes,
		2,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	settingsRepo, err := repository.NewSettingsRepository(db, TestFernetKey)
	if err != nil {
		t.Fatalf("Failed to create settings repository: %v", err)
	}

	return service.NewSystemService(db, settingsRepo)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
