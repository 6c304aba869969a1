package model

// Quote is one market-data fetch for a ticker: latest price, day movement,
// descriptive metadata, and dividend figures. DividendYield is a fraction
// (0.0052 = 0.52%), not a percentage.
type Quote struct {
	Ticker         string  `json:"ticker"`
	Price          float64 `json:"price"`
	DayChangePct   float64 `json:"dayChangePct"`
	Name           string  `json:"name"`
	Sector         string  `json:"sector"`
	Industry       string  `json:"industry"`
	AnnualDividend float64 `json:"annualDividend"`
	DividendYield  float64 `json:"dividendYield"`
}
