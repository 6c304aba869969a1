package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// ValuationRepository persists per-ticker valuation results and portfolio
// snapshots. Valuations follow upsert-by-ticker semantics; snapshots append
// one row per sync run.
type ValuationRepository struct {
	db *sql.DB
}

// NewValuationRepository creates a new ValuationRepository with the provided database connection.
func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

// UpsertValuations writes the valued-position batch inside one transaction,
// matching rows by ticker.
func (r *ValuationRepository) UpsertValuations(ctx context.Context, positions []model.ValuedPosition) error {
	if len(positions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin valuation upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	for _, p := range positions {
		result, err := tx.ExecContext(ctx, `
			UPDATE position_valuation
			SET name = ?, sector = ?, industry = ?, shares = ?, avg_cost = ?,
			    current_price = ?, market_value = ?, cost_basis = ?,
			    unrealized_gain_loss = ?, unrealized_gain_loss_pct = ?,
			    realized_gain_loss = ?, total_gain_loss = ?,
			    day_change_pct = ?, day_gain_loss = ?, allocation_pct = ?,
			    annual_dividend = ?, dividend_yield = ?, annual_income = ?,
			    updated_at = ?
			WHERE ticker = ?
		`,
			p.Name, p.Sector, p.Industry, p.Shares, p.AvgCost,
			p.CurrentPrice, p.MarketValue, p.CostBasis,
			p.UnrealizedGainLoss, p.UnrealizedGainLossPct,
			p.RealizedGainLoss, p.TotalGainLoss,
			p.DayChangePct, p.DayGainLoss, p.Allocation,
			p.AnnualDividend, p.DividendYield, p.AnnualIncome,
			now, p.Ticker,
		)
		if err != nil {
			return fmt.Errorf("failed to update valuation %s: %w", p.Ticker, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read valuation update result: %w", err)
		}
		if affected == 0 {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO position_valuation (
					id, ticker, name, sector, industry, shares, avg_cost,
					current_price, market_value, cost_basis,
					unrealized_gain_loss, unrealized_gain_loss_pct,
					realized_gain_loss, total_gain_loss,
					day_change_pct, day_gain_loss, allocation_pct,
					annual_dividend, dividend_yield, annual_income, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				uuid.New().String(), p.Ticker, p.Name, p.Sector, p.Industry, p.Shares, p.AvgCost,
				p.CurrentPrice, p.MarketValue, p.CostBasis,
				p.UnrealizedGainLoss, p.UnrealizedGainLossPct,
				p.RealizedGainLoss, p.TotalGainLoss,
				p.DayChangePct, p.DayGainLoss, p.Allocation,
				p.AnnualDividend, p.DividendYield, p.AnnualIncome, now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert valuation %s: %w", p.Ticker, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit valuation upsert: %w", err)
	}
	return nil
}

// GetValuations retrieves all persisted valuations sorted by ticker.
func (r *ValuationRepository) GetValuations() ([]model.ValuedPosition, error) {
	rows, err := r.db.Query(`
		SELECT ticker, name, sector, industry, shares, avg_cost,
		       current_price, market_value, cost_basis,
		       unrealized_gain_loss, unrealized_gain_loss_pct,
		       realized_gain_loss, total_gain_loss,
		       day_change_pct, day_gain_loss, allocation_pct,
		       annual_dividend, dividend_yield, annual_income, updated_at
		FROM position_valuation
		ORDER BY ticker ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query position_valuation table: %w", err)
	}
	defer rows.Close()

	positions := []model.ValuedPosition{}
	for rows.Next() {
		var p model.ValuedPosition
		var name, sector, industry sql.NullString
		var updatedAtStr string

		err := rows.Scan(
			&p.Ticker, &name, &sector, &industry, &p.Shares, &p.AvgCost,
			&p.CurrentPrice, &p.MarketValue, &p.CostBasis,
			&p.UnrealizedGainLoss, &p.UnrealizedGainLossPct,
			&p.RealizedGainLoss, &p.TotalGainLoss,
			&p.DayChangePct, &p.DayGainLoss, &p.Allocation,
			&p.AnnualDividend, &p.DividendYield, &p.AnnualIncome, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position_valuation row: %w", err)
		}

		p.Name = name.String
		p.Sector = sector.String
		p.Industry = industry.String

		p.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, err
		}

		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position_valuation table: %w", err)
	}

	return positions, nil
}

// InsertSnapshot appends a portfolio-summary row for one sync run.
func (r *ValuationRepository) InsertSnapshot(ctx context.Context, summary model.PortfolioSummary) error {
	var bestTicker, worstTicker sql.NullString
	var bestPct, worstPct sql.NullFloat64
	if summary.BestPerformer != nil {
		bestTicker = sql.NullString{String: summary.BestPerformer.Ticker, Valid: true}
		bestPct = sql.NullFloat64{Float64: summary.BestPerformer.UnrealizedGainLossPct, Valid: true}
	}
	if summary.WorstPerformer != nil {
		worstTicker = sql.NullString{String: summary.WorstPerformer.Ticker, Valid: true}
		worstPct = sql.NullFloat64{Float64: summary.WorstPerformer.UnrealizedGainLossPct, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portfolio_snapshot (
			id, total_positions, total_market_value, total_cost_basis,
			total_unrealized_gain_loss, total_realized_gain_loss,
			total_gain_loss, total_gain_loss_pct, total_day_gain_loss,
			total_annual_income, portfolio_yield,
			best_ticker, best_gain_loss_pct, worst_ticker, worst_gain_loss_pct,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.New().String(), summary.TotalPositions, summary.TotalMarketValue, summary.TotalCostBasis,
		summary.TotalUnrealizedGainLoss, summary.TotalRealizedGainLoss,
		summary.TotalGainLoss, summary.TotalGainLossPct, summary.TotalDayGainLoss,
		summary.TotalAnnualIncome, summary.PortfolioYield,
		bestTicker, bestPct, worstTicker, worstPct,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio snapshot: %w", err)
	}
	return nil
}

// GetLatestSnapshot retrieves the most recent portfolio summary. Best and
// worst performers are restored as ticker and percent only.
func (r *ValuationRepository) GetLatestSnapshot() (model.PortfolioSummary, error) {
	row := r.db.QueryRow(`
		SELECT total_positions, total_market_value, total_cost_basis,
		       total_unrealized_gain_loss, total_realized_gain_loss,
		       total_gain_loss, total_gain_loss_pct, total_day_gain_loss,
		       total_annual_income, portfolio_yield,
		       best_ticker, best_gain_loss_pct, worst_ticker, worst_gain_loss_pct,
		       created_at
		FROM portfolio_snapshot
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)

	var summary model.PortfolioSummary
	var bestTicker, worstTicker sql.NullString
	var bestPct, worstPct sql.NullFloat64
	var createdAtStr string

	err := row.Scan(
		&summary.TotalPositions, &summary.TotalMarketValue, &summary.TotalCostBasis,
		&summary.TotalUnrealizedGainLoss, &summary.TotalRealizedGainLoss,
		&summary.TotalGainLoss, &summary.TotalGainLossPct, &summary.TotalDayGainLoss,
		&summary.TotalAnnualIncome, &summary.PortfolioYield,
		&bestTicker, &bestPct, &worstTicker, &worstPct,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.PortfolioSummary{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("failed to scan portfolio_snapshot row: %w", err)
	}

	if bestTicker.Valid {
		summary.BestPerformer = &model.ValuedPosition{
			Ticker:                bestTicker.String,
			UnrealizedGainLossPct: bestPct.Float64,
		}
	}
	if worstTicker.Valid {
		summary.WorstPerformer = &model.ValuedPosition{
			Ticker:                worstTicker.String,
			UnrealizedGainLossPct: worstPct.Float64,
		}
	}

	summary.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	return summary, nil
}
