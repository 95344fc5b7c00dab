package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/repository"
)

var (
	ErrValidation  = errors.New("invalid input")
	ErrNoPortfolio = errors.New("no portfolio for user")
	ErrPersistence = errors.New("portfolio store failure")
)

// PortfolioService owns the persisted per-user portfolio state: replacing it
// wholesale when an optimization is accepted, amending single positions, and
// reading it back. All mutations for one user are serialized.
type PortfolioService struct {
	repo  *repository.PortfolioRepository
	locks *userLocks
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(repo *repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{
		repo:  repo,
		locks: newUserLocks(),
	}
}

// ReplaceForUser atomically clears all prior holdings for the user and writes
// the result's holdings. On failure the prior state is left intact.
func (s *PortfolioService) ReplaceForUser(ctx context.Context, userID string, result *models.PortfolioResult) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if result == nil {
		return fmt.Errorf("%w: portfolio result is required", ErrValidation)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.DeleteForUser(ctx, tx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.repo.InsertHoldings(ctx, tx, userID, result.Holdings); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", ErrPersistence, err)
	}
	return nil
}

// AddPosition aggregates quantity into an existing holding for the symbol, or
// inserts a new holding with zero target allocation. Returns the new
// aggregated quantity.
func (s *PortfolioService) AddPosition(ctx context.Context, userID, symbol string, quantity int) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if symbol == "" {
		return 0, fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive, got %d", ErrValidation, quantity)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %v", ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	newQty, err := s.repo.IncrementQuantity(ctx, tx, userID, symbol, quantity)
	if errors.Is(err, repository.ErrHoldingNotFound) {
		holding := models.Holding{Symbol: symbol, Quantity: quantity, TargetAllocation: 0.0}
		if err := s.repo.InsertHoldings(ctx, tx, userID, []models.Holding{holding}); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		newQty = quantity
	} else if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: failed to commit transaction: %v", ErrPersistence, err)
	}
	return newQty, nil
}

// PositionsForUser returns symbol -> aggregated quantity. An empty user id or
// a user with no rows yields an empty map; "no portfolio yet" is not an error.
func (s *PortfolioService) PositionsForUser(ctx context.Context, userID string) (map[string]int, error) {
	if userID == "" {
		return map[string]int{}, nil
	}
	positions, err := s.repo.GetPositions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get positions: %v", ErrPersistence, err)
	}
	return positions, nil
}

// HoldingsForUser returns the stored holdings rows for a user
func (s *PortfolioService) HoldingsForUser(ctx context.Context, userID string) ([]models.Holding, error) {
	if userID == "" {
		return nil, nil
	}
	holdings, err := s.repo.GetHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get holdings: %v", ErrPersistence, err)
	}
	return holdings, nil
}
