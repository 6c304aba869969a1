// Package valuation derives market value, performance, and dividend metrics
// from consolidated holdings and live quotes, and aggregates them into
// portfolio-level totals.
package valuation

import (
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// Value computes all metrics for a single holding against a quote.
//
// Returns false when there is no quote or no shares to value. Allocation is
// left at zero; it is only meaningful after Summarize has seen the full batch.
func Value(holding model.Holding, quote *model.Quote) (model.ValuedPosition, bool) {
	if quote == nil || holding.Shares <= 0 {
		return model.ValuedPosition{}, false
	}

	costBasis := holding.Shares * holding.AvgCost
	marketValue := holding.Shares * quote.Price

	unrealized := marketValue - costBasis
	unrealizedPct := 0.0
	if costBasis > 0 {
		unrealizedPct = unrealized / costBasis * 100
	}

	// A day change of exactly -100% would zero the previous price; treat the
	// day movement as unknown rather than dividing by zero.
	dayGainLoss := 0.0
	if quote.DayChangePct != -100 {
		prevPrice := quote.Price / (1 + quote.DayChangePct/100)
		dayGainLoss = holding.Shares * (quote.Price - prevPrice)
	}

	name := holding.Name
	if quote.Name != "" {
		name = quote.Name
	}

	return model.ValuedPosition{
		Ticker:                holding.Ticker,
		Name:                  name,
		Sector:                quote.Sector,
		Industry:              quote.Industry,
		Shares:                holding.Shares,
		AvgCost:               holding.AvgCost,
		CurrentPrice:          quote.Price,
		MarketValue:           marketValue,
		CostBasis:             costBasis,
		UnrealizedGainLoss:    unrealized,
		UnrealizedGainLossPct: unrealizedPct,
		RealizedGainLoss:      holding.RealizedGainLoss,
		TotalGainLoss:         unrealized + holding.RealizedGainLoss,
		DayChangePct:          quote.DayChangePct,
		DayGainLoss:           dayGainLoss,
		AnnualDividend:        quote.AnnualDividend,
		DividendYield:         quote.DividendYield,
		AnnualIncome:          holding.Shares * quote.AnnualDividend,
	}, true
}
