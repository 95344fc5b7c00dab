package repository

import (
	"context"
	"fmt"

	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository handles the append-only user activity log
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Insert appends one activity record. details may be nil.
func (r *ActivityRepository) Insert(ctx context.Context, userID, activityType string, details []byte) error {
	query := `
		INSERT INTO user_activities (user_id, activity_type, details)
		VALUES ($1, $2, $3)
	`
	if _, err := r.pool.Exec(ctx, query, userID, activityType, details); err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListRecent returns the newest activity records for a user
func (r *ActivityRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.ActivityRecord, error) {
	query := `
		SELECT id, user_id, activity_type, COALESCE(details::text, ''), timestamp
		FROM user_activities
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var records []models.ActivityRecord
	for rows.Next() {
		var rec models.ActivityRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ActivityType, &rec.Details, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
