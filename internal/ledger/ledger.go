// Package ledger consolidates buy/sell stock transactions into per-ticker
// positions using weighted-average cost accounting.
//
// Consolidation is strictly order-dependent: each sell is priced against the
// average cost accumulated from all prior transactions of the same ticker, so
// callers must pass transactions in ledger order (date, then insertion order).
package ledger

import (
	"log"
	"sort"
	"strings"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// Result holds the two views produced by Consolidate.
//
// Active contains only positions with shares remaining. All contains every
// ticker touched by the input, including fully sold positions that keep their
// accumulated realized gain/loss.
type Result struct {
	Active map[string]*model.Position
	All    map[string]*model.Position
}

// Consolidate processes transactions in input order and builds average-cost
// positions.
//
// Rows with an empty ticker, non-positive shares, or non-positive price are
// skipped with a warning. Unrecognized transaction types are treated as buys.
// A sell of more shares than held clamps the position to zero shares and zero
// cost; realized gain/loss up to that sell is preserved as computed and the
// excess quantity is absorbed, not tracked as a short position.
func Consolidate(transactions []model.Transaction) Result {
	all := make(map[string]*model.Position)

	for _, txn := range transactions {
		ticker := model.NormalizeTicker(txn.Ticker)
		if ticker == "" {
			log.Printf("ledger: skipping transaction %s: no ticker", txn.ID)
			continue
		}
		if txn.Shares <= 0 || txn.Price <= 0 {
			log.Printf("ledger: skipping %s: invalid shares or price", ticker)
			continue
		}

		pos, ok := all[ticker]
		if !ok {
			pos = &model.Position{Ticker: ticker, Name: txn.Name}
			all[ticker] = pos
		}
		if pos.Name == "" && txn.Name != "" {
			pos.Name = txn.Name
		}

		txnType := strings.ToLower(strings.TrimSpace(txn.Type))
		switch txnType {
		case model.TransactionTypeSell:
			applySell(pos, txn)
		case model.TransactionTypeBuy:
			applyBuy(pos, txn)
		default:
			log.Printf("ledger: %s: unknown transaction type %q, treating as buy", ticker, txn.Type)
			applyBuy(pos, txn)
		}
	}

	active := make(map[string]*model.Position)
	for ticker, pos := range all {
		if pos.TotalShares > 0 && pos.TotalCost > 0 {
			pos.AvgCost = pos.TotalCost / pos.TotalShares
		} else {
			pos.AvgCost = 0
		}
		if pos.TotalShares > 0 {
			active[ticker] = pos
		}
	}

	return Result{Active: active, All: all}
}

func applyBuy(pos *model.Position, txn model.Transaction) {
	pos.TotalShares += txn.Shares
	pos.TotalCost += txn.Shares * txn.Price
	pos.Buys = append(pos.Buys, txn)
}

// applySell realizes gain/loss against the pre-sell average cost and reduces
// the position. A sell against a position with no shares (or no cost) is
// recorded but realizes nothing.
func applySell(pos *model.Position, txn model.Transaction) {
	if pos.TotalShares > 0 && pos.TotalCost > 0 {
		avgCost := pos.TotalCost / pos.TotalShares
		pos.RealizedGainLoss += (txn.Price - avgCost) * txn.Shares

		pos.TotalShares -= txn.Shares
		pos.TotalCost -= avgCost * txn.Shares

		if pos.TotalShares < 0 {
			log.Printf("ledger: %s: sold more shares than owned, clamping position to zero", pos.Ticker)
			pos.TotalShares = 0
			pos.TotalCost = 0
		}
	}
	pos.Sells = append(pos.Sells, txn)
}

// Holdings flattens active positions into a ticker-sorted list for the store
// adapter and the valuator.
func Holdings(active map[string]*model.Position) []model.Holding {
	holdings := make([]model.Holding, 0, len(active))
	for _, pos := range active {
		if pos.TotalShares <= 0 {
			continue
		}
		holdings = append(holdings, model.Holding{
			Ticker:           pos.Ticker,
			Name:             pos.Name,
			Shares:           pos.TotalShares,
			AvgCost:          pos.AvgCost,
			RealizedGainLoss: pos.RealizedGainLoss,
		})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Ticker < holdings[j].Ticker })
	return holdings
}

// Stats aggregates transaction counts and realized results across the full
// history view. Closed positions are fully sold tickers that realized a
// non-zero gain or loss.
func Stats(all map[string]*model.Position) model.LedgerStats {
	var stats model.LedgerStats
	for _, pos := range all {
		stats.BuyTransactions += len(pos.Buys)
		stats.SellTransactions += len(pos.Sells)
		stats.TotalRealizedGainLoss += pos.RealizedGainLoss
		switch {
		case pos.TotalShares > 0:
			stats.ActivePositions++
		case pos.RealizedGainLoss != 0:
			stats.ClosedPositions++
		}
	}
	return stats
}
