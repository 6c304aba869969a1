package valuation

import (
	"sort"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

// SectorBreakdown groups valued positions by sector and computes each
// sector's share of total portfolio value. Positions without a sector fall
// under "Unknown". Sectors are returned in descending order of allocation.
func SectorBreakdown(positions []model.ValuedPosition) []model.SectorAllocation {
	totalValue := 0.0
	for _, pos := range positions {
		totalValue += pos.MarketValue
	}

	bySector := make(map[string]*model.SectorAllocation)
	order := make([]string, 0)

	for _, pos := range positions {
		sector := pos.Sector
		if sector == "" {
			sector = "Unknown"
		}

		alloc, ok := bySector[sector]
		if !ok {
			alloc = &model.SectorAllocation{Sector: sector}
			bySector[sector] = alloc
			order = append(order, sector)
		}

		alloc.MarketValue += pos.MarketValue
		alloc.CostBasis += pos.CostBasis
		alloc.GainLoss += pos.UnrealizedGainLoss
		alloc.Positions++
		alloc.Tickers = append(alloc.Tickers, pos.Ticker)
	}

	sectors := make([]model.SectorAllocation, 0, len(bySector))
	for _, sector := range order {
		alloc := bySector[sector]
		if totalValue > 0 {
			alloc.AllocationPct = alloc.MarketValue / totalValue * 100
		}
		if alloc.CostBasis > 0 {
			alloc.GainLossPct = alloc.GainLoss / alloc.CostBasis * 100
		}
		sectors = append(sectors, *alloc)
	}

	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].AllocationPct > sectors[j].AllocationPct
	})

	return sectors
}
