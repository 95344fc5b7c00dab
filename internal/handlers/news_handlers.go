package handlers

import (
	"net/http"
	"strconv"

	"github.com/bscolinos/finance-demov2/internal/marketdata"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/news"
	"github.com/gin-gonic/gin"
)

const (
	defaultNewsLimit = 10
	maxNewsLimit     = 50
)

// NewsHandler serves the News Tracker page data and the market summary cards
type NewsHandler struct {
	newsClient *news.Client
	avClient   *marketdata.Client
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsClient *news.Client, avClient *marketdata.Client) *NewsHandler {
	return &NewsHandler{
		newsClient: newsClient,
		avClient:   avClient,
	}
}

// List handles GET /news. With ?symbol= it returns the latest articles for a
// ticker, with ?q= it searches, otherwise it returns top business headlines.
func (h *NewsHandler) List(c *gin.Context) {
	limit := defaultNewsLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > maxNewsLimit {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "limit must be an integer between 1 and 50",
			})
			return
		}
		limit = parsed
	}

	var articles []news.Article
	var err error
	switch {
	case c.Query("symbol") != "":
		articles, err = h.newsClient.SymbolNews(c.Request.Context(), c.Query("symbol"), limit)
	case c.Query("q") != "":
		articles, err = h.newsClient.Search(c.Request.Context(), c.Query("q"), limit)
	default:
		articles, err = h.newsClient.TopBusinessHeadlines(c.Request.Context(), limit)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// History handles GET /market/:symbol/history: dated daily closes for the
// dashboard price charts
func (h *NewsHandler) History(c *gin.Context) {
	symbol := c.Param("symbol")

	outputSize := c.DefaultQuery("outputsize", "compact")
	if outputSize != "compact" && outputSize != "full" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "outputsize must be compact or full",
		})
		return
	}

	closes, err := h.avClient.GetDailyCloses(c.Request.Context(), symbol, outputSize)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "closes": closes})
}

// MarketSummary handles GET /market/summary
func (h *NewsHandler) MarketSummary(c *gin.Context) {
	summary, err := h.avClient.MarketSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"indices": summary})
}
