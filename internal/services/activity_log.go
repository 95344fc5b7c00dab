package services

import (
	"context"
	"encoding/json"

	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/repository"
	log "github.com/sirupsen/logrus"
)

// Activity type tags recorded by the service
const (
	ActivityPlanCreated   = "plan_created"
	ActivityStockAdded    = "stock_added"
	ActivityRebalanced    = "portfolio_rebalanced"
	ActivityInsightsError = "insights_error"
)

// ActivityLog appends user actions to the activity table. Recording is
// best-effort: failures are logged and swallowed so that a logging problem
// never breaks the primary operation.
type ActivityLog struct {
	repo *repository.ActivityRepository
}

// NewActivityLog creates a new ActivityLog
func NewActivityLog(repo *repository.ActivityRepository) *ActivityLog {
	return &ActivityLog{repo: repo}
}

// Record appends one activity entry. details may be any JSON-marshalable
// payload or nil.
func (a *ActivityLog) Record(ctx context.Context, userID, activityType string, details any) {
	var payload []byte
	if details != nil {
		var err error
		payload, err = json.Marshal(details)
		if err != nil {
			log.Warnf("activity %s for %s: unmarshalable details dropped: %v", activityType, userID, err)
			payload = nil
		}
	}
	if err := a.repo.Insert(ctx, userID, activityType, payload); err != nil {
		log.Warnf("failed to record activity %s for %s: %v", activityType, userID, err)
	}
}

// Recent returns the newest activity records for a user
func (a *ActivityLog) Recent(ctx context.Context, userID string, limit int) ([]models.ActivityRecord, error) {
	if userID == "" {
		return nil, nil
	}
	return a.repo.ListRecent(ctx, userID, limit)
}
