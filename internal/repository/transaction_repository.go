package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the stock_transaction
// table. Reads return rows in ledger order (date, then insertion order), which
// the consolidation engine depends on.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = "id, ticker, name, date, type, shares, price, created_at"

// GetTransactions retrieves the full transaction ledger in ledger order.
// An optional ticker filter narrows the result to one symbol.
func (r *TransactionRepository) GetTransactions(ticker string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM stock_transaction
		ORDER BY date ASC, created_at ASC, rowid ASC
	`
	args := []any{}
	if ticker != "" {
		query = `
			SELECT ` + transactionColumns + `
			FROM stock_transaction
			WHERE ticker = ?
			ORDER BY date ASC, created_at ASC, rowid ASC
		`
		args = append(args, ticker)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM stock_transaction
		WHERE id = ?
	`, id)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// InsertTransaction writes a new transaction row.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_transaction (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID,
		t.Ticker,
		t.Name,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Shares,
		t.Price,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction rewrites an existing transaction row.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE stock_transaction
		SET ticker = ?, name = ?, date = ?, type = ?, shares = ?, price = ?
		WHERE id = ?
	`,
		t.Ticker,
		t.Name,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Shares,
		t.Price,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row by ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var name sql.NullString
	var dateStr, createdAtStr string

	err := row.Scan(
		&t.ID,
		&t.Ticker,
		&name,
		&dateStr,
		&t.Type,
		&t.Shares,
		&t.Price,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan stock_transaction row: %w", err)
	}

	t.Name = name.String

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
