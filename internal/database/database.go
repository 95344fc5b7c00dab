package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup; both tables are created if absent, matching
// the logical schema the dashboard persists to.
const schema = `
CREATE TABLE IF NOT EXISTS optimized_portfolio (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id VARCHAR(100) NOT NULL,
	symbol VARCHAR(10) NOT NULL,
	quantity INT NOT NULL,
	target_allocation DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_optimized_portfolio_user ON optimized_portfolio (user_id);

CREATE TABLE IF NOT EXISTS user_activities (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id VARCHAR(100) NOT NULL,
	activity_type VARCHAR(50) NOT NULL,
	details JSONB,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_user_activities_user ON user_activities (user_id);
`

// DB wraps the pgx connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// New connects to PostgreSQL, verifies the connection, and ensures the schema
func New(ctx context.Context, pgURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases the connection pool
func (db *DB) Close() {
	db.Pool.Close()
}
