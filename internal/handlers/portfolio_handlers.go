package handlers

import (
	"errors"
	"net/http"

	"github.com/bscolinos/finance-demov2/internal/middleware"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/services"
	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles position reads, the add-stock quick action, and
// the performance view
type PortfolioHandler struct {
	portfolioSvc   *services.PortfolioService
	performanceSvc *services.PerformanceService
	activityLog    *services.ActivityLog
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioSvc *services.PortfolioService, performanceSvc *services.PerformanceService, activityLog *services.ActivityLog) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioSvc:   portfolioSvc,
		performanceSvc: performanceSvc,
		activityLog:    activityLog,
	}
}

// AddPosition handles POST /positions
func (h *PortfolioHandler) AddPosition(c *gin.Context) {
	var req models.AddPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if req.UserID == "" {
		req.UserID, _ = middleware.UserID(c)
	}

	quantity, err := h.portfolioSvc.AddPosition(c.Request.Context(), req.UserID, req.Symbol, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.activityLog.Record(c.Request.Context(), req.UserID, services.ActivityStockAdded, map[string]any{
		"symbol":   req.Symbol,
		"quantity": req.Quantity,
	})

	c.JSON(http.StatusOK, models.AddPositionResponse{
		UserID:   req.UserID,
		Symbol:   req.Symbol,
		Quantity: quantity,
	})
}

// ListPositions handles GET /users/:user_id/positions
func (h *PortfolioHandler) ListPositions(c *gin.Context) {
	userID := c.Param("user_id")

	positions, err := h.portfolioSvc.PositionsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PositionsResponse{
		UserID:    userID,
		Positions: positions,
	})
}

// Performance handles GET /users/:user_id/performance
func (h *PortfolioHandler) Performance(c *gin.Context) {
	userID := c.Param("user_id")

	report, err := h.performanceSvc.Performance(c.Request.Context(), userID)
	if err != nil {
		// A positions-read failure is ours; only quote fetches are upstream
		if errors.Is(err, services.ErrPersistence) {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "internal_error",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
