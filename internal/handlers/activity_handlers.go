package handlers

import (
	"net/http"
	"strconv"

	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 50
)

// ActivityHandler serves the user activity feed
type ActivityHandler struct {
	activityLog *services.ActivityLog
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityLog *services.ActivityLog) *ActivityHandler {
	return &ActivityHandler{activityLog: activityLog}
}

// List handles GET /users/:user_id/activities
func (h *ActivityHandler) List(c *gin.Context) {
	userID := c.Param("user_id")

	limit := defaultActivityLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > maxActivityLimit {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "limit must be an integer between 1 and 50",
			})
			return
		}
		limit = parsed
	}

	records, err := h.activityLog.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	if records == nil {
		records = []models.ActivityRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "activities": records})
}
