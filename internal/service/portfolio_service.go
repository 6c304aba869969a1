package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/ledger"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/valuation"
)

// QuoteProvider fetches market data for a single ticker. Implementations are
// expected to apply their own bounded retry; a returned error means the
// ticker could not be quoted this run.
type QuoteProvider interface {
	Fetch(ctx context.Context, ticker string) (model.Quote, error)
}

// PortfolioService runs the portfolio pipeline: consolidate the transaction
// ledger, persist holdings, fetch quotes, value positions, aggregate the
// summary, and persist the results.
type PortfolioService struct {
	transactionRepo *repository.TransactionRepository
	holdingRepo     *repository.HoldingRepository
	valuationRepo   *repository.ValuationRepository
	quotes          QuoteProvider
	fetchWorkers    int
}

// NewPortfolioService creates a new PortfolioService with the provided
// repository and quote-provider dependencies. fetchWorkers bounds the number
// of concurrent quote fetches per sync.
func NewPortfolioService(
	transactionRepo *repository.TransactionRepository,
	holdingRepo *repository.HoldingRepository,
	valuationRepo *repository.ValuationRepository,
	quotes QuoteProvider,
	fetchWorkers int,
) *PortfolioService {
	if fetchWorkers < 1 {
		fetchWorkers = 1
	}
	return &PortfolioService{
		transactionRepo: transactionRepo,
		holdingRepo:     holdingRepo,
		valuationRepo:   valuationRepo,
		quotes:          quotes,
		fetchWorkers:    fetchWorkers,
	}
}

// Sync runs the full pipeline once.
//
// A ticker whose quote fetch fails is reported in FailedTickers and excluded
// from valuation; it does not fail the run. Store errors are fatal and leave
// previously persisted data untouched.
func (s *PortfolioService) Sync(ctx context.Context) (model.SyncResult, error) {
	transactions, err := s.transactionRepo.GetTransactions("")
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("loading transaction ledger: %w", err)
	}

	result := ledger.Consolidate(transactions)
	holdings := ledger.Holdings(result.Active)
	stats := ledger.Stats(result.All)

	if err := s.holdingRepo.UpsertHoldings(ctx, holdings); err != nil {
		return model.SyncResult{}, fmt.Errorf("persisting holdings: %w", err)
	}

	quotes, failed := s.fetchQuotes(ctx, holdings)
	if err := ctx.Err(); err != nil {
		return model.SyncResult{}, err
	}

	positions := make([]model.ValuedPosition, 0, len(holdings))
	for i, holding := range holdings {
		if pos, ok := valuation.Value(holding, quotes[i]); ok {
			positions = append(positions, pos)
		}
	}

	summary, allocated := valuation.Summarize(positions)

	if err := s.valuationRepo.UpsertValuations(ctx, allocated); err != nil {
		return model.SyncResult{}, fmt.Errorf("persisting valuations: %w", err)
	}
	if err := s.valuationRepo.InsertSnapshot(ctx, summary); err != nil {
		return model.SyncResult{}, fmt.Errorf("persisting snapshot: %w", err)
	}

	return model.SyncResult{
		Summary:       summary,
		Positions:     allocated,
		FailedTickers: failed,
		Stats:         stats,
	}, nil
}

// fetchQuotes retrieves quotes for all holdings with a bounded worker pool.
// Fetches for distinct tickers are independent; results line up with the
// holdings slice by index, nil marking a failed ticker.
func (s *PortfolioService) fetchQuotes(ctx context.Context, holdings []model.Holding) ([]*model.Quote, []string) {
	quotes := make([]*model.Quote, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchWorkers)

	for i, holding := range holdings {
		i, holding := i, holding
		g.Go(func() error {
			q, err := s.quotes.Fetch(gctx, holding.Ticker)
			if err != nil {
				log.Printf("portfolio: failed to fetch quote for %s: %v", holding.Ticker, err)
				return nil
			}
			quotes[i] = &q
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	failed := []string{}
	for i, holding := range holdings {
		if quotes[i] == nil {
			failed = append(failed, holding.Ticker)
		}
	}
	return quotes, failed
}

// GetPositions returns the valuations persisted by the latest sync.
func (s *PortfolioService) GetPositions() ([]model.ValuedPosition, error) {
	return s.valuationRepo.GetValuations()
}

// GetSummary returns the portfolio summary recorded by the latest sync.
func (s *PortfolioService) GetSummary() (model.PortfolioSummary, error) {
	return s.valuationRepo.GetLatestSnapshot()
}

// GetSectorBreakdown groups the persisted valuations by sector.
func (s *PortfolioService) GetSectorBreakdown() ([]model.SectorAllocation, error) {
	positions, err := s.valuationRepo.GetValuations()
	if err != nil {
		return nil, err
	}
	return valuation.SectorBreakdown(positions), nil
}
