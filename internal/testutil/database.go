package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Transaction ledger table
		CREATE TABLE stock_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL,
			name VARCHAR(100),
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL,
			shares REAL NOT NULL,
			price REAL NOT NULL,
			created_at TIMESTAMP NOT NULL
		);

		-- Consolidated holding table
		CREATE TABLE holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL UNIQUE,
			name VARCHAR(100),
			shares REAL NOT NULL,
			avg_cost REAL NOT NULL,
			realized_gain_loss REAL NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL
		);

		-- Position valuation table
		CREATE TABLE position_valuation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL UNIQUE,
			name VARCHAR(100),
			sector VARCHAR(50),
			industry VARCHAR(80),
			shares REAL NOT NULL,
			avg_cost REAL NOT NULL,
			current_price REAL NOT NULL,
			market_value REAL NOT NULL,
			cost_basis REAL NOT NULL,
			unrealized_gain_loss REAL NOT NULL,
			unrealized_gain_loss_pct REAL NOT NULL,
			realized_gain_loss REAL NOT NULL,
			total_gain_loss REAL NOT NULL,
			day_change_pct REAL NOT NULL,
			day_gain_loss REAL NOT NULL,
			allocation_pct REAL NOT NULL,
			annual_dividend REAL NOT NULL,
			dividend_yield REAL NOT NULL,
			annual_income REAL NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		-- Portfolio snapshot table
		CREATE TABLE portfolio_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			total_positions INTEGER NOT NULL,
			total_market_value REAL NOT NULL,
			total_cost_basis REAL NOT NULL,
			total_unrealized_gain_loss REAL NOT NULL,
			total_realized_gain_loss REAL NOT NULL,
			total_gain_loss REAL NOT NULL,
			total_gain_loss_pct REAL NOT NULL,
			total_day_gain_loss REAL NOT NULL,
			total_annual_income REAL NOT NULL,
			portfolio_yield REAL NOT NULL,
			best_ticker VARCHAR(10),
			best_gain_loss_pct REAL,
			worst_ticker VARCHAR(10),
			worst_gain_loss_pct REAL,
			created_at TIMESTAMP NOT NULL
		);

		-- System setting table
		CREATE TABLE system_setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			is_encrypted BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMP NOT NULL
		);

		-- Indexes for performance
		CREATE INDEX idx_stock_transaction_ticker ON stock_transaction (ticker);
		CREATE INDEX idx_stock_transaction_date ON stock_transaction (date);
		CREATE INDEX idx_portfolio_snapshot_created_at ON portfolio_snapshot (created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"stock_transaction",
		"holding",
		"position_valuation",
		"portfolio_snapshot",
		"system_setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
