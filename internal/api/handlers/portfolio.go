package handlers

import (
	"errors"
	"net/http"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio valuation endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Sync handles POST requests to run the portfolio pipeline: consolidate the
// ledger, fetch quotes, value positions, and persist the results.
// Tickers whose quotes could not be fetched are reported in failedTickers
// and excluded from the valuation; they do not fail the run.
//
// Endpoint: POST /api/portfolio/sync
// Response: 200 OK with SyncResult
// Error: 500 Internal Server Error if the pipeline fails
func (h *PortfolioHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.portfolioService.Sync(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "portfolio sync failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Positions handles GET requests to retrieve the valued positions persisted
// by the latest sync.
//
// Endpoint: GET /api/portfolio/positions
// Response: 200 OK with array of ValuedPosition
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Positions(w http.ResponseWriter, _ *http.Request) {
	positions, err := h.portfolioService.GetPositions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve positions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Summary handles GET requests to retrieve the portfolio summary recorded by
// the latest sync.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 404 Not Found if no sync has run yet
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.portfolioService.GetSummary()
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolio summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Sectors handles GET requests to retrieve the sector allocation breakdown of
// the persisted valuations, sorted by allocation percentage descending.
//
// Endpoint: GET /api/portfolio/sectors
// Response: 200 OK with array of SectorAllocation
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Sectors(w http.ResponseWriter, _ *http.Request) {
	sectors, err := h.portfolioService.GetSectorBreakdown()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve sector breakdown", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sectors)
}
