package handlers

import (
	"errors"
	"net/http"

	"github.com/bscolinos/finance-demov2/internal/llm"
	"github.com/bscolinos/finance-demov2/internal/middleware"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/navigation"
	"github.com/bscolinos/finance-demov2/internal/services"
	"github.com/gin-gonic/gin"
)

// PlanHandler handles goal submission, rebalancing, and the page catalog
type PlanHandler struct {
	planSvc *services.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planSvc *services.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// Create handles POST /plan
func (h *PlanHandler) Create(c *gin.Context) {
	var req models.CreatePlanRequest
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

	plan, err := h.planSvc.CreatePlan(c.Request.Context(), req.UserID, req.Goals)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// Rebalance handles POST /rebalance
func (h *PlanHandler) Rebalance(c *gin.Context) {
	var req models.RebalanceRequest
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

	result, err := h.planSvc.Rebalance(c.Request.Context(), req.UserID, req.Goals)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Pages handles GET /pages: the navigation before any goals are submitted
func (h *PlanHandler) Pages(c *gin.Context) {
	c.JSON(http.StatusOK, models.PagesResponse{Pages: navigation.FixedPrefix()})
}

// respondPlanError maps the error taxonomy of the plan flows to HTTP
// statuses. Malformed model output gets an explicit user-facing message
// rather than a silent fallback.
func respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNoPortfolio):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "no portfolio exists for this user",
		})
	case errors.Is(err, llm.ErrMalformedOutput):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "malformed_model_output",
			Message: "we could not build your plan, please try again",
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
