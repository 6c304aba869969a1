// Package quote fetches market data from Yahoo Finance and condenses it into
// the single Quote record the valuation engine consumes: latest price, day
// change, company metadata, and dividend figures.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// FinanceClient fetches quotes from the Yahoo Finance API with bounded retry.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration
}

// NewFinanceClient creates a Yahoo Finance client. maxRetries is the total
// number of attempts per ticker; retryDelay is the pause between attempts.
func NewFinanceClient(maxRetries int, retryDelay time.Duration) *FinanceClient {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// WithBaseURL overrides the API base URL. Used by tests to point the client
// at a stub server.
func (c *FinanceClient) WithBaseURL(baseURL string) *FinanceClient {
	c.baseURL = baseURL
	return c
}

// Fetch retrieves a quote for the ticker, retrying transient failures up to
// the configured attempt count. Context cancellation stops the retry loop.
func (c *FinanceClient) Fetch(ctx context.Context, ticker string) (model.Quote, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return model.Quote{}, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		q, err := c.fetchOnce(ctx, ticker)
		if err == nil {
			return q, nil
		}
		lastErr = err
	}
	return model.Quote{}, fmt.Errorf("%w for %s: %v", apperrors.ErrQuoteFetchFailed, ticker, lastErr)
}

// fetchOnce performs one fetch: the chart endpoint for price and day change,
// then the quoteSummary endpoint for sector and dividend fields. A summary
// failure is not fatal; those fields fall back to their defaults (Unknown
// sector, zero dividend).
func (c *FinanceClient) fetchOnce(ctx context.Context, ticker string) (model.Quote, error) {
	chart, err := c.queryChart(ctx, ticker)
	if err != nil {
		return model.Quote{}, err
	}

	price, dayChangePct, err := latestPriceAndChange(chart)
	if err != nil {
		return model.Quote{}, err
	}

	name := chart.Meta.LongName
	if name == "" {
		name = chart.Meta.ShortName
	}
	if name == "" {
		name = ticker
	}

	q := model.Quote{
		Ticker:       ticker,
		Price:        price,
		DayChangePct: dayChangePct,
		Name:         name,
		Sector:       "Unknown",
		Industry:     "Unknown",
	}

	if summary, err := c.querySummary(ctx, ticker); err == nil {
		if summary.AssetProfile.Sector != "" {
			q.Sector = summary.AssetProfile.Sector
		}
		if summary.AssetProfile.Industry != "" {
			q.Industry = summary.AssetProfile.Industry
		}
		q.AnnualDividend = summary.SummaryDetail.DividendRate.Raw
		q.DividendYield = summary.SummaryDetail.DividendYield.Raw
	}

	return q, nil
}

// latestPriceAndChange extracts the most recent close and the change versus
// the prior close. With fewer than two closes the day change is zero.
func latestPriceAndChange(chart ChartResult) (price, dayChangePct float64, err error) {
	if len(chart.Indicators.Quote) == 0 {
		return 0, 0, fmt.Errorf("no quote indicators returned")
	}

	closes := make([]float64, 0, len(chart.Indicators.Quote[0].Close))
	for _, c := range chart.Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	if len(closes) == 0 {
		return 0, 0, fmt.Errorf("no close prices returned")
	}

	price = closes[len(closes)-1]
	if len(closes) >= 2 {
		prevClose := closes[len(closes)-2]
		if prevClose > 0 {
			dayChangePct = (price - prevClose) / prevClose * 100
		}
	}
	return price, dayChangePct, nil
}

func (c *FinanceClient) queryChart(ctx context.Context, ticker string) (ChartResult, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, ticker)

	var response ChartResponse
	if err := c.get(ctx, url, &response); err != nil {
		return ChartResult{}, err
	}
	if response.Chart.Error != nil {
		return ChartResult{}, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return ChartResult{}, fmt.Errorf("no results returned for symbol %s", ticker)
	}
	return response.Chart.Result[0], nil
}

func (c *FinanceClient) querySummary(ctx context.Context, ticker string) (SummaryResult, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,summaryDetail", c.baseURL, ticker)

	var response SummaryResponse
	if err := c.get(ctx, url, &response); err != nil {
		return SummaryResult{}, err
	}
	if response.QuoteSummary.Error != nil {
		return SummaryResult{}, fmt.Errorf("yahoo error: %s", *response.QuoteSummary.Error)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return SummaryResult{}, fmt.Errorf("no summary returned for symbol %s", ticker)
	}
	return response.QuoteSummary.Result[0], nil
}

// get executes a GET against the Yahoo API and unmarshals the JSON body.
// Headers mimic a browser; Yahoo blocks default Go user agents.
func (c *FinanceClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}
