package model

// Position is the per-ticker accumulator built during ledger consolidation.
// It tracks the running share count, cost basis under weighted-average cost
// accounting, and the realized gain/loss locked in by sells. A fully sold
// ticker keeps its Position (TotalShares == 0) so realized results survive in
// the full-history view.
type Position struct {
	Ticker           string        `json:"ticker"`
	Name             string        `json:"name"`
	TotalShares      float64       `json:"totalShares"`
	TotalCost        float64       `json:"totalCost"`
	AvgCost          float64       `json:"avgCost"`
	RealizedGainLoss float64       `json:"realizedGainLoss"`
	Buys             []Transaction `json:"-"`
	Sells            []Transaction `json:"-"`
}

// Holding is the flattened view of an active position handed to the store
// adapter and the valuator.
type Holding struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	Shares           float64 `json:"shares"`
	AvgCost          float64 `json:"avgCost"`
	RealizedGainLoss float64 `json:"realizedGainLoss"`
}

// LedgerStats aggregates transaction counts and realized results across the
// full consolidation history.
type LedgerStats struct {
	BuyTransactions       int     `json:"buyTransactions"`
	SellTransactions      int     `json:"sellTransactions"`
	ActivePositions       int     `json:"activePositions"`
	ClosedPositions       int     `json:"closedPositions"`
	TotalRealizedGainLoss float64 `json:"totalRealizedGainLoss"`
}
