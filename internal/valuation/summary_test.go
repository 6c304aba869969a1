package valuation_test

import (
	"math"
	"testing"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/valuation"
)

func valued(ticker string, marketValue, costBasis, dayGL, realized, income float64) model.ValuedPosition {
	pct := 0.0
	if costBasis > 0 {
		pct = (marketValue - costBasis) / costBasis * 100
	}
	return model.ValuedPosition{
		Ticker:                ticker,
		MarketValue:           marketValue,
		CostBasis:             costBasis,
		UnrealizedGainLoss:    marketValue - costBasis,
		UnrealizedGainLossPct: pct,
		RealizedGainLoss:      realized,
		TotalGainLoss:         marketValue - costBasis + realized,
		DayGainLoss:           dayGL,
		AnnualIncome:          income,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("totals and allocation", func(t *testing.T) {
		batch := []model.ValuedPosition{
			valued("AAPL", 1500, 1000, 30, 100, 10),
			valued("MSFT", 500, 600, -5, 0, 6),
		}

		summary, allocated := valuation.Summarize(batch)

		if summary.TotalPositions != 2 {
			t.Errorf("TotalPositions = %d, want 2", summary.TotalPositions)
		}
		if !approx(summary.TotalMarketValue, 2000) {
			t.Errorf("TotalMarketValue = %v, want 2000", summary.TotalMarketValue)
		}
		if !approx(summary.TotalCostBasis, 1600) {
			t.Errorf("TotalCostBasis = %v, want 1600", summary.TotalCostBasis)
		}
		if !approx(summary.TotalUnrealizedGainLoss, 400) {
			t.Errorf("TotalUnrealizedGainLoss = %v, want 400", summary.TotalUnrealizedGainLoss)
		}
		if !approx(summary.TotalRealizedGainLoss, 100) {
			t.Errorf("TotalRealizedGainLoss = %v, want 100", summary.TotalRealizedGainLoss)
		}
		if !approx(summary.TotalGainLoss, 500) {
			t.Errorf("TotalGainLoss = %v, want 500", summary.TotalGainLoss)
		}
		if !approx(summary.TotalGainLossPct, 400.0/1600*100) {
			t.Errorf("TotalGainLossPct = %v, want 25", summary.TotalGainLossPct)
		}
		if !approx(summary.TotalDayGainLoss, 25) {
			t.Errorf("TotalDayGainLoss = %v, want 25", summary.TotalDayGainLoss)
		}
		if !approx(summary.PortfolioYield, 16.0/2000*100) {
			t.Errorf("PortfolioYield = %v", summary.PortfolioYield)
		}

		if !approx(allocated[0].Allocation, 75) {
			t.Errorf("AAPL allocation = %v, want 75", allocated[0].Allocation)
		}
		if !approx(allocated[1].Allocation, 25) {
			t.Errorf("MSFT allocation = %v, want 25", allocated[1].Allocation)
		}

		// Input batch must not be mutated.
		if batch[0].Allocation != 0 {
			t.Error("Summarize must not mutate its input")
		}
	})

	t.Run("allocations sum to 100", func(t *testing.T) {
		batch := []model.ValuedPosition{
			valued("A", 333, 300, 0, 0, 0),
			valued("B", 333, 300, 0, 0, 0),
			valued("C", 334, 300, 0, 0, 0),
		}

		_, allocated := valuation.Summarize(batch)
		sum := 0.0
		for _, pos := range allocated {
			sum += pos.Allocation
		}
		if math.Abs(sum-100) > 1e-6 {
			t.Errorf("allocations sum to %v, want 100", sum)
		}
	})

	t.Run("best and worst performers", func(t *testing.T) {
		batch := []model.ValuedPosition{
			valued("FLAT", 1000, 1000, 0, 0, 0),
			valued("UP", 1500, 1000, 0, 0, 0),
			valued("DOWN", 700, 1000, 0, 0, 0),
		}

		summary, _ := valuation.Summarize(batch)
		if summary.BestPerformer == nil || summary.BestPerformer.Ticker != "UP" {
			t.Errorf("BestPerformer = %+v, want UP", summary.BestPerformer)
		}
		if summary.WorstPerformer == nil || summary.WorstPerformer.Ticker != "DOWN" {
			t.Errorf("WorstPerformer = %+v, want DOWN", summary.WorstPerformer)
		}
	})

	t.Run("single position is both best and worst", func(t *testing.T) {
		summary, _ := valuation.Summarize([]model.ValuedPosition{
			valued("ONLY", 1200, 1000, 0, 0, 0),
		})

		if summary.BestPerformer == nil || summary.BestPerformer.Ticker != "ONLY" {
			t.Errorf("BestPerformer = %+v, want ONLY", summary.BestPerformer)
		}
		if summary.WorstPerformer == nil || summary.WorstPerformer.Ticker != "ONLY" {
			t.Errorf("WorstPerformer = %+v, want ONLY", summary.WorstPerformer)
		}
	})

	t.Run("ties keep the first position encountered", func(t *testing.T) {
		batch := []model.ValuedPosition{
			valued("FIRST", 1100, 1000, 0, 0, 0),
			valued("SECOND", 2200, 2000, 0, 0, 0),
		}

		summary, _ := valuation.Summarize(batch)
		if summary.BestPerformer.Ticker != "FIRST" {
			t.Errorf("BestPerformer = %s, want FIRST", summary.BestPerformer.Ticker)
		}
		if summary.WorstPerformer.Ticker != "FIRST" {
			t.Errorf("WorstPerformer = %s, want FIRST", summary.WorstPerformer.Ticker)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		summary, allocated := valuation.Summarize(nil)
		if summary.BestPerformer != nil || summary.WorstPerformer != nil {
			t.Error("performers must be absent for an empty batch")
		}
		if summary.TotalMarketValue != 0 || summary.TotalCostBasis != 0 || summary.TotalGainLoss != 0 {
			t.Errorf("expected zero totals, got %+v", summary)
		}
		if len(allocated) != 0 {
			t.Errorf("expected empty allocated batch, got %d", len(allocated))
		}
	})

	t.Run("zero market value gives zero allocations", func(t *testing.T) {
		summary, allocated := valuation.Summarize([]model.ValuedPosition{
			valued("ZERO", 0, 100, 0, 0, 0),
		})
		if !approx(allocated[0].Allocation, 0) {
			t.Errorf("Allocation = %v, want 0", allocated[0].Allocation)
		}
		if !approx(summary.PortfolioYield, 0) {
			t.Errorf("PortfolioYield = %v, want 0", summary.PortfolioYield)
		}
	})
}
