package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// NewsAPI serves market and company news by category or query
// https://newsapi.org/docs
const defaultBaseURL = "https://newsapi.org/v2"

// Client is an HTTP client for the NewsAPI service
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new NewsAPI client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new NewsAPI client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TopBusinessHeadlines fetches general US business news
func (c *Client) TopBusinessHeadlines(ctx context.Context, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("category", "business")
	params.Set("language", "en")
	params.Set("country", "us")
	params.Set("pageSize", strconv.Itoa(limit))

	return c.fetchArticles(ctx, "/top-headlines", params)
}

// Search fetches news articles matching a free-text query, most relevant first
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(limit))

	return c.fetchArticles(ctx, "/everything", params)
}

// SymbolNews fetches the latest articles mentioning a ticker symbol
func (c *Client) SymbolNews(ctx context.Context, symbol string, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("q", symbol)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))

	return c.fetchArticles(ctx, "/everything", params)
}

func (c *Client) fetchArticles(ctx context.Context, path string, params url.Values) ([]Article, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.Status == "error" {
		return nil, fmt.Errorf("news API error %s: %s", apiResp.Code, apiResp.Message)
	}

	return apiResp.Articles, nil
}
