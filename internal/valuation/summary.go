package valuation

import (
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// Summarize reduces a batch of valued positions into portfolio totals and
// returns a copy of the batch with each position's allocation percentage
// populated. The input slice is not mutated.
//
// Best and worst performers are ranked by unrealized gain/loss percent; ties
// keep the first position encountered. An empty batch returns zero totals and
// nil performers.
func Summarize(positions []model.ValuedPosition) (model.PortfolioSummary, []model.ValuedPosition) {
	summary := model.PortfolioSummary{TotalPositions: len(positions)}

	for _, pos := range positions {
		summary.TotalMarketValue += pos.MarketValue
		summary.TotalCostBasis += pos.CostBasis
		summary.TotalUnrealizedGainLoss += pos.UnrealizedGainLoss
		summary.TotalRealizedGainLoss += pos.RealizedGainLoss
		summary.TotalDayGainLoss += pos.DayGainLoss
		summary.TotalAnnualIncome += pos.AnnualIncome
	}

	summary.TotalGainLoss = summary.TotalUnrealizedGainLoss + summary.TotalRealizedGainLoss
	if summary.TotalCostBasis > 0 {
		summary.TotalGainLossPct = summary.TotalUnrealizedGainLoss / summary.TotalCostBasis * 100
	}
	if summary.TotalMarketValue > 0 {
		summary.PortfolioYield = summary.TotalAnnualIncome / summary.TotalMarketValue * 100
	}

	allocated := make([]model.ValuedPosition, len(positions))
	copy(allocated, positions)
	for i := range allocated {
		if summary.TotalMarketValue > 0 {
			allocated[i].Allocation = allocated[i].MarketValue / summary.TotalMarketValue * 100
		} else {
			allocated[i].Allocation = 0
		}
	}

	if len(allocated) > 0 {
		bestIdx, worstIdx := 0, 0
		for i, pos := range allocated {
			if pos.UnrealizedGainLossPct > allocated[bestIdx].UnrealizedGainLossPct {
				bestIdx = i
			}
			if pos.UnrealizedGainLossPct < allocated[worstIdx].UnrealizedGainLossPct {
				worstIdx = i
			}
		}
		best := allocated[bestIdx]
		worst := allocated[worstIdx]
		summary.BestPerformer = &best
		summary.WorstPerformer = &worst
	}

	return summary, allocated
}
