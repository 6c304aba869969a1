package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// HoldingRepository persists consolidated positions keyed by ticker.
// Writes follow upsert semantics: an existing ticker row is updated in place,
// a new ticker is appended.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// UpsertHoldings writes the holdings list inside one transaction, matching
// rows by ticker.
func (r *HoldingRepository) UpsertHoldings(ctx context.Context, holdings []model.Holding) error {
	if len(holdings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin holding upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	for _, h := range holdings {
		result, err := tx.ExecContext(ctx, `
			UPDATE holding
			SET name = ?, shares = ?, avg_cost = ?, realized_gain_loss = ?, updated_at = ?
			WHERE ticker = ?
		`, h.Name, h.Shares, h.AvgCost, h.RealizedGainLoss, now, h.Ticker)
		if err != nil {
			return fmt.Errorf("failed to update holding %s: %w", h.Ticker, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read holding update result: %w", err)
		}
		if affected == 0 {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO holding (id, ticker, name, shares, avg_cost, realized_gain_loss, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, uuid.New().String(), h.Ticker, h.Name, h.Shares, h.AvgCost, h.RealizedGainLoss, now)
			if err != nil {
				return fmt.Errorf("failed to insert holding %s: %w", h.Ticker, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit holding upsert: %w", err)
	}
	return nil
}

// GetHoldings retrieves all persisted holdings sorted by ticker.
func (r *HoldingRepository) GetHoldings() ([]model.Holding, error) {
	rows, err := r.db.Query(`
		SELECT ticker, name, shares, avg_cost, realized_gain_loss
		FROM holding
		ORDER BY ticker ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		var h model.Holding
		var name sql.NullString
		if err := rows.Scan(&h.Ticker, &name, &h.Shares, &h.AvgCost, &h.RealizedGainLoss); err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		h.Name = name.String
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}
