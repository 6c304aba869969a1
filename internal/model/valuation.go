package model

import "time"

// ValuedPosition joins a holding with a market quote. All monetary fields are
// in the same currency unit as the transaction prices. Allocation is zero
// until the full batch has been summarized.
type ValuedPosition struct {
	Ticker                string    `json:"ticker"`
	Name                  string    `json:"name"`
	Sector                string    `json:"sector"`
	Industry              string    `json:"industry"`
	Shares                float64   `json:"shares"`
	AvgCost               float64   `json:"avgCost"`
	CurrentPrice          float64   `json:"currentPrice"`
	MarketValue           float64   `json:"marketValue"`
	CostBasis             float64   `json:"costBasis"`
	UnrealizedGainLoss    float64   `json:"unrealizedGainLoss"`
	UnrealizedGainLossPct float64   `json:"unrealizedGainLossPct"`
	RealizedGainLoss      float64   `json:"realizedGainLoss"`
	TotalGainLoss         float64   `json:"totalGainLoss"`
	DayChangePct          float64   `json:"dayChangePct"`
	DayGainLoss           float64   `json:"dayGainLoss"`
	AnnualDividend        float64   `json:"annualDividend"`
	DividendYield         float64   `json:"dividendYield"`
	AnnualIncome          float64   `json:"annualIncome"`
	Allocation            float64   `json:"allocation"`
	UpdatedAt             time.Time `json:"updatedAt,omitempty"`
}

// PortfolioSummary holds portfolio-level totals over one batch of valued
// positions. BestPerformer and WorstPerformer are ranked by unrealized
// gain/loss percent and are nil for an empty batch.
type PortfolioSummary struct {
	TotalPositions          int             `json:"totalPositions"`
	TotalMarketValue        float64         `json:"totalMarketValue"`
	TotalCostBasis          float64         `json:"totalCostBasis"`
	TotalUnrealizedGainLoss float64         `json:"totalUnrealizedGainLoss"`
	TotalRealizedGainLoss   float64         `json:"totalRealizedGainLoss"`
	TotalGainLoss           float64         `json:"totalGainLoss"`
	TotalGainLossPct        float64         `json:"totalGainLossPct"`
	TotalDayGainLoss        float64         `json:"totalDayGainLoss"`
	TotalAnnualIncome       float64         `json:"totalAnnualIncome"`
	PortfolioYield          float64         `json:"portfolioYield"`
	BestPerformer           *ValuedPosition `json:"bestPerformer,omitempty"`
	WorstPerformer          *ValuedPosition `json:"worstPerformer,omitempty"`
	CreatedAt               time.Time       `json:"createdAt,omitempty"`
}

// SectorAllocation groups valued positions by sector.
type SectorAllocation struct {
	Sector        string   `json:"sector"`
	MarketValue   float64  `json:"marketValue"`
	CostBasis     float64  `json:"costBasis"`
	GainLoss      float64  `json:"gainLoss"`
	GainLossPct   float64  `json:"gainLossPct"`
	AllocationPct float64  `json:"allocationPct"`
	Positions     int      `json:"positions"`
	Tickers       []string `json:"tickers"`
}
