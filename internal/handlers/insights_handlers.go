package handlers

import (
	"errors"
	"net/http"

	"github.com/bscolinos/finance-demov2/internal/advisor"
	"github.com/bscolinos/finance-demov2/internal/llm"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/news"
	"github.com/bscolinos/finance-demov2/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// sentimentArticleLimit caps the number of articles fed to sentiment analysis
const sentimentArticleLimit = 5

// InsightsHandler serves the AI Insights page data: portfolio analysis plus
// market sentiment over current headlines
type InsightsHandler struct {
	optimizer    *advisor.Optimizer
	portfolioSvc *services.PortfolioService
	newsClient   *news.Client
	activityLog  *services.ActivityLog
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(optimizer *advisor.Optimizer, portfolioSvc *services.PortfolioService, newsClient *news.Client, activityLog *services.ActivityLog) *InsightsHandler {
	return &InsightsHandler{
		optimizer:    optimizer,
		portfolioSvc: portfolioSvc,
		newsClient:   newsClient,
		activityLog:  activityLog,
	}
}

// Get handles GET /users/:user_id/insights
func (h *InsightsHandler) Get(c *gin.Context) {
	userID := c.Param("user_id")
	ctx := c.Request.Context()

	holdings, err := h.portfolioSvc.HoldingsForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	if len(holdings) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "no portfolio exists for this user",
		})
		return
	}

	analysis, err := h.optimizer.Insights(ctx, holdings)
	if err != nil {
		h.activityLog.Record(ctx, userID, services.ActivityInsightsError, map[string]any{
			"error": err.Error(),
		})
		respondModelError(c, err)
		return
	}

	// Sentiment is additive; a news or model problem here degrades the page
	// rather than failing it.
	var sentiment *models.SentimentReport
	articles, err := h.newsClient.TopBusinessHeadlines(ctx, sentimentArticleLimit)
	if err != nil {
		log.Warnf("insights for %s: news fetch failed, omitting sentiment: %v", userID, err)
	} else if len(articles) > 0 {
		sentiment, err = h.optimizer.Sentiment(ctx, articles)
		if err != nil {
			log.Warnf("insights for %s: sentiment analysis failed: %v", userID, err)
			sentiment = nil
		}
	}

	c.JSON(http.StatusOK, models.InsightsResponse{
		UserID:    userID,
		Portfolio: analysis,
		Sentiment: sentiment,
	})
}

// respondModelError maps generative-model errors to HTTP statuses
func respondModelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrMalformedOutput):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "malformed_model_output",
			Message: "the analysis could not be generated, please try again",
		})
	case errors.Is(err, llm.ErrTransport):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: "the advisor service is unavailable, please retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
