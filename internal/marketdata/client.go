package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// AlphaVantage is a Stock and ETF API that fetches data including pricing data
// It is a subscription service, but provides free API access
// https://www.alphavantage.co/documentation/
const defaultBaseURL = "https://www.alphavantage.co/query"

// indexProxies are the ETF proxies used for the market summary cards
var indexProxies = []struct{ symbol, name string }{
	{"SPY", "S&P 500"},
	{"DIA", "Dow Jones"},
	{"QQQ", "NASDAQ"},
}

// Client is an HTTP client for the AlphaVantage API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new AlphaVantage client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetQuote fetches a real-time quote for a symbol. Fields missing from the
// provider response come back as zero values, not errors.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	resp, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var quoteResp GlobalQuoteResponse
	if err := json.Unmarshal(body, &quoteResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	price, _ := strconv.ParseFloat(quoteResp.GlobalQuote.Price, 64)
	prevClose, _ := strconv.ParseFloat(quoteResp.GlobalQuote.PreviousClose, 64)
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(quoteResp.GlobalQuote.ChangePercent, "%"), 64)

	return &Quote{
		Symbol:        symbol,
		Price:         price,
		PreviousClose: prevClose,
		ChangePercent: changePct,
	}, nil
}

// GetDailyCloses fetches historical daily closes for a symbol, oldest first
func (c *Client) GetDailyCloses(ctx context.Context, symbol string, outputSize string) ([]DailyClose, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", outputSize) // "compact" or "full"
	params.Set("apikey", c.apiKey)

	resp, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var tsResp TimeSeriesDailyResponse
	if err := json.Unmarshal(body, &tsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var closes []DailyClose
	for dateStr, ohlcv := range tsResp.TimeSeries {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		closePrice, _ := strconv.ParseFloat(ohlcv.Close, 64)
		closes = append(closes, DailyClose{Date: date, Close: closePrice})
	}
	sort.Slice(closes, func(i, j int) bool { return closes[i].Date.Before(closes[j].Date) })

	return closes, nil
}

// MarketSummary fetches quotes for the major index proxies concurrently
func (c *Client) MarketSummary(ctx context.Context) ([]IndexQuote, error) {
	summary := make([]IndexQuote, len(indexProxies))

	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range indexProxies {
		g.Go(func() error {
			quote, err := c.GetQuote(gctx, idx.symbol)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", idx.symbol, err)
			}
			summary[i] = IndexQuote{
				Symbol:        idx.symbol,
				Name:          idx.name,
				Price:         quote.Price,
				ChangePercent: quote.ChangePercent,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}
