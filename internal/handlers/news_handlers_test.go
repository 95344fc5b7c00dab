package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bscolinos/finance-demov2/internal/marketdata"
	"github.com/bscolinos/finance-demov2/internal/news"
	"github.com/gin-gonic/gin"
)

func newNewsRouter(newsURL, avURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewNewsHandler(
		news.NewClientWithBaseURL("test-key", newsURL),
		marketdata.NewClientWithBaseURL("test-key", avURL),
	)

	router := gin.New()
	router.GET("/news", handler.List)
	router.GET("/market/summary", handler.MarketSummary)
	router.GET("/market/:symbol/history", handler.History)
	return router
}

func TestNewsListSymbolMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/everything") {
			t.Errorf("expected /everything path, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "NVDA" {
			t.Errorf("expected query NVDA, got %s", got)
		}
		if got := r.URL.Query().Get("sortBy"); got != "publishedAt" {
			t.Errorf("expected sortBy publishedAt, got %s", got)
		}
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [
				{
					"source": {"name": "Reuters"},
					"title": "NVDA beats estimates",
					"url": "https://example.com/nvda",
					"publishedAt": "2026-08-27T14:00:00Z"
				}
			]
		}`))
	}))
	defer server.Close()

	router := newNewsRouter(server.URL, server.URL)
	w := performRequest(router, http.MethodGet, "/news?symbol=NVDA", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Articles []news.Article `json:"articles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Title != "NVDA beats estimates" {
		t.Errorf("unexpected articles: %v", resp.Articles)
	}
}

func TestNewsListLimitOutOfRange(t *testing.T) {
	router := newNewsRouter("http://unused", "http://unused")

	for _, limit := range []string{"0", "-1", "51", "abc"} {
		w := performRequest(router, http.MethodGet, "/news?limit="+limit, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit %s: expected 400, got %d", limit, w.Code)
		}
	}
}

func TestMarketHistoryReturnsCloses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_DAILY" {
			t.Errorf("expected function TIME_SERIES_DAILY, got %s", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", got)
		}
		if got := r.URL.Query().Get("outputsize"); got != "compact" {
			t.Errorf("expected outputsize compact, got %s", got)
		}
		w.Write([]byte(`{
			"Time Series (Daily)": {
				"2026-08-26": {"4. close": "228.00"},
				"2026-08-27": {"4. close": "230.00"}
			}
		}`))
	}))
	defer server.Close()

	router := newNewsRouter(server.URL, server.URL)
	w := performRequest(router, http.MethodGet, "/market/AAPL/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Symbol string                  `json:"symbol"`
		Closes []marketdata.DailyClose `json:"closes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", resp.Symbol)
	}
	if len(resp.Closes) != 2 {
		t.Fatalf("expected 2 closes, got %d", len(resp.Closes))
	}
	if resp.Closes[0].Close != 228.0 || resp.Closes[1].Close != 230.0 {
		t.Errorf("expected closes oldest first, got %v", resp.Closes)
	}
}

func TestMarketHistoryBadOutputSize(t *testing.T) {
	router := newNewsRouter("http://unused", "http://unused")

	w := performRequest(router, http.MethodGet, "/market/AAPL/history?outputsize=huge", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMarketHistoryUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	router := newNewsRouter(server.URL, server.URL)
	w := performRequest(router, http.MethodGet, "/market/AAPL/history", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
