package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/testutil"
)

func setupPortfolioHandler(t *testing.T, quotes *testutil.StaticQuotes) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ps := testutil.NewTestPortfolioService(t, db, quotes)
	return NewPortfolioHandler(ps), db
}

func TestPortfolioHandler_Sync(t *testing.T) {
	t.Run("runs the pipeline and returns the result", func(t *testing.T) {
		quotes := testutil.NewStaticQuotes(
			model.Quote{Ticker: "AAPL", Price: 180, Name: "Apple Inc.", Sector: "Technology"},
		)
		handler, db := setupPortfolioHandler(t, quotes)

		testutil.CreateBuy(t, db, "AAPL", "2024-01-15", 10, 100)

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/sync", nil)
		w := httptest.NewRecorder()

		handler.Sync(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result model.SyncResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if len(result.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(result.Positions))
		}
		if result.Positions[0].MarketValue != 1800 {
			t.Errorf("Expected market value 1800, got %v", result.Positions[0].MarketValue)
		}
	})

	t.Run("reports failed tickers without failing the run", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, testutil.NewStaticQuotes())

		testutil.CreateBuy(t, db, "GONE", "2024-01-15", 10, 100)

		req := httptest.NewRequest(http.MethodPost, "/api/portfolio/sync", nil)
		w := httptest.NewRecorder()

		handler.Sync(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result model.SyncResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if len(result.FailedTickers) != 1 || result.FailedTickers[0] != "GONE" {
			t.Errorf("Expected GONE in failed tickers, got %v", result.FailedTickers)
		}
	})
}

func TestPortfolioHandler_Summary(t *testing.T) {
	t.Run("returns 404 before any sync", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t, testutil.NewStaticQuotes())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns the latest snapshot after a sync", func(t *testing.T) {
		quotes := testutil.NewStaticQuotes(
			model.Quote{Ticker: "AAPL", Price: 180, Name: "Apple Inc."},
		)
		handler, db := setupPortfolioHandler(t, quotes)

		testutil.CreateBuy(t, db, "AAPL", "2024-01-15", 10, 100)

		syncReq := httptest.NewRequest(http.MethodPost, "/api/portfolio/sync", nil)
		handler.Sync(httptest.NewRecorder(), syncReq)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var summary model.PortfolioSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&summary)

		if summary.TotalMarketValue != 1800 {
			t.Errorf("Expected total market value 1800, got %v", summary.TotalMarketValue)
		}
	})
}

func TestPortfolioHandler_Positions(t *testing.T) {
	t.Run("returns persisted valuations", func(t *testing.T) {
		quotes := testutil.NewStaticQuotes(
			model.Quote{Ticker: "AAPL", Price: 180, Name: "Apple Inc."},
		)
		handler, db := setupPortfolioHandler(t, quotes)

		testutil.CreateBuy(t, db, "AAPL", "2024-01-15", 10, 100)
		handler.Sync(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/portfolio/sync", nil))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/positions", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var positions []model.ValuedPosition
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&positions)

		if len(positions) != 1 || positions[0].Ticker != "AAPL" {
			t.Errorf("Expected one AAPL position, got %+v", positions)
		}
	})

	t.Run("returns empty list before any sync", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t, testutil.NewStaticQuotes())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/positions", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var positions []model.ValuedPosition
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&positions)

		if len(positions) != 0 {
			t.Errorf("Expected no positions, got %d", len(positions))
		}
	})
}

func TestPortfolioHandler_Sectors(t *testing.T) {
	t.Run("returns the sector breakdown", func(t *testing.T) {
		quotes := testutil.NewStaticQuotes(
			model.Quote{Ticker: "AAPL", Price: 180, Name: "Apple Inc.", Sector: "Technology"},
			model.Quote{Ticker: "XOM", Price: 110, Name: "Exxon Mobil", Sector: "Energy"},
		)
		handler, db := setupPortfolioHandler(t, quotes)

		testutil.CreateBuy(t, db, "AAPL", "2024-01-15", 10, 100)
		testutil.CreateBuy(t, db, "XOM", "2024-01-20", 20, 100)
		handler.Sync(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/portfolio/sync", nil))

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/sectors", nil)
		w := httptest.NewRecorder()

		handler.Sectors(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var sectors []model.SectorAllocation
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&sectors)

		if len(sectors) != 2 {
			t.Fatalf("Expected 2 sectors, got %d", len(sectors))
		}
		if sectors[0].Sector != "Energy" {
			t.Errorf("Expected Energy to lead by allocation, got %s", sectors[0].Sector)
		}
	})
}
