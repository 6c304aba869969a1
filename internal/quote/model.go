package quote

// ChartResponse represents the raw JSON response from the Yahoo Finance
// chart API (v8). Close prices are pointers because Yahoo returns null for
// days without trading data.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *string       `json:"error"`
	} `json:"chart"`
}

// ChartResult is one result entry of a chart response.
type ChartResult struct {
	Meta       ChartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			Close  []*float64 `json:"close"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// ChartMeta holds symbol metadata from a chart response.
type ChartMeta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	ShortName        string `json:"shortName"`
}

// SummaryResponse represents the raw JSON response from the Yahoo Finance
// quoteSummary API (v10), queried with the assetProfile and summaryDetail
// modules for sector, industry, and dividend fields.
type SummaryResponse struct {
	QuoteSummary struct {
		Result []SummaryResult `json:"result"`
		Error  *string         `json:"error"`
	} `json:"quoteSummary"`
}

// SummaryResult is one result entry of a quoteSummary response.
type SummaryResult struct {
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	SummaryDetail struct {
		DividendRate  RawValue `json:"dividendRate"`
		DividendYield RawValue `json:"dividendYield"`
	} `json:"summaryDetail"`
}

// RawValue is Yahoo's number wrapper; absent fields unmarshal to a zero Raw.
type RawValue struct {
	Raw float64 `json:"raw"`
}
