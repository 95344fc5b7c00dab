package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrHoldingNotFound = errors.New("holding not found")

// PortfolioRepository handles database operations for persisted holdings.
// Transaction boundaries are owned by the calling service; mutating methods
// take the transaction as a parameter.
type PortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// DeleteForUser removes all holdings for a user
func (r *PortfolioRepository) DeleteForUser(ctx context.Context, tx pgx.Tx, userID string) error {
	query := `DELETE FROM optimized_portfolio WHERE user_id = $1`
	_, err := tx.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete holdings: %w", err)
	}
	return nil
}

// InsertHoldings writes a holdings list for a user
func (r *PortfolioRepository) InsertHoldings(ctx context.Context, tx pgx.Tx, userID string, holdings []models.Holding) error {
	query := `
		INSERT INTO optimized_portfolio (user_id, symbol, quantity, target_allocation)
		VALUES ($1, $2, $3, $4)
	`
	for _, h := range holdings {
		if _, err := tx.Exec(ctx, query, userID, h.Symbol, h.Quantity, h.TargetAllocation); err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
		}
	}
	return nil
}

// IncrementQuantity adds qty to an existing holding's quantity. Returns
// ErrHoldingNotFound when the user has no row for the symbol.
func (r *PortfolioRepository) IncrementQuantity(ctx context.Context, tx pgx.Tx, userID, symbol string, qty int) (int, error) {
	query := `
		UPDATE optimized_portfolio
		SET quantity = quantity + $1
		WHERE user_id = $2 AND symbol = $3
		RETURNING quantity
	`
	var newQty int
	err := tx.QueryRow(ctx, query, qty, userID, symbol).Scan(&newQty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrHoldingNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment quantity: %w", err)
	}
	return newQty, nil
}

// GetPositions returns symbol -> aggregated quantity for a user. A user with
// no rows yields an empty map.
func (r *PortfolioRepository) GetPositions(ctx context.Context, userID string) (map[string]int, error) {
	query := `
		SELECT symbol, SUM(quantity)
		FROM optimized_portfolio
		WHERE user_id = $1
		GROUP BY symbol
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make(map[string]int)
	for rows.Next() {
		var symbol string
		var quantity int
		if err := rows.Scan(&symbol, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions[symbol] = quantity
	}
	return positions, rows.Err()
}

// GetHoldings returns the full holdings rows for a user in insertion order
func (r *PortfolioRepository) GetHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	query := `
		SELECT symbol, quantity, target_allocation
		FROM optimized_portfolio
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.Symbol, &h.Quantity, &h.TargetAllocation); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// BeginTx starts a new transaction
func (r *PortfolioRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}
