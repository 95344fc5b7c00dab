package marketdata

import "time"

// GlobalQuoteResponse represents the AlphaVantage GLOBAL_QUOTE response
type GlobalQuoteResponse struct {
	GlobalQuote GlobalQuote `json:"Global Quote"`
}

// GlobalQuote carries the positional field names AlphaVantage uses
type GlobalQuote struct {
	Symbol        string `json:"01. symbol"`
	Price         string `json:"05. price"`
	PreviousClose string `json:"08. previous close"`
	ChangePercent string `json:"10. change percent"`
}

// TimeSeriesDailyResponse represents the AlphaVantage TIME_SERIES_DAILY response
type TimeSeriesDailyResponse struct {
	TimeSeries map[string]DailyOHLCV `json:"Time Series (Daily)"`
}

// DailyOHLCV is one day of the daily time series
type DailyOHLCV struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// Quote is a parsed quote ready for use. Fields the provider omitted parse
// to zero rather than failing the quote.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	ChangePercent float64 `json:"change_percent"`
}

// DailyClose is one historical closing price
type DailyClose struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// IndexQuote is a market index proxy quote for the summary cards
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}
