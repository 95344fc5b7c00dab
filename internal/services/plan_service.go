package services

import (
	"context"
	"fmt"

	"github.com/bscolinos/finance-demov2/internal/advisor"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/navigation"
	"golang.org/x/sync/errgroup"
)

// planStore is the slice of portfolio persistence the plan flow needs
type planStore interface {
	ReplaceForUser(ctx context.Context, userID string, result *models.PortfolioResult) error
	HoldingsForUser(ctx context.Context, userID string) ([]models.Holding, error)
}

// activityRecorder is the fire-and-forget activity seam
type activityRecorder interface {
	Record(ctx context.Context, userID, activityType string, details any)
}

// PlanService orchestrates the "submit goals" and "rebalance" flows: page-set
// resolution, portfolio optimization, and persistence of the accepted result.
type PlanService struct {
	resolver  *navigation.Resolver
	optimizer *advisor.Optimizer
	store     planStore
	activity  activityRecorder
}

// NewPlanService creates a new PlanService
func NewPlanService(resolver *navigation.Resolver, optimizer *advisor.Optimizer, store planStore, activity activityRecorder) *PlanService {
	return &PlanService{
		resolver:  resolver,
		optimizer: optimizer,
		store:     store,
		activity:  activity,
	}
}

// CreatePlan resolves the navigation pages for the goals and generates and
// persists a fresh portfolio. Page resolution and optimization have no data
// dependency and run concurrently; resolution failures degrade silently while
// optimization failures abort the plan. The portfolio is only persisted after
// the optimizer succeeds.
func (s *PlanService) CreatePlan(ctx context.Context, userID, goals string) (*models.Plan, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if goals == "" {
		return nil, fmt.Errorf("%w: investment goals are required", ErrValidation)
	}

	var pages []string
	var result *models.PortfolioResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pages = s.resolver.Resolve(gctx, goals, navigation.FixedPrefix())
		return nil
	})
	g.Go(func() error {
		var err error
		result, err = s.optimizer.Optimize(gctx, nil, goals)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.store.ReplaceForUser(ctx, userID, result); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, userID, ActivityPlanCreated, map[string]any{
		"goals":    goals,
		"pages":    pages,
		"holdings": len(result.Holdings),
	})

	return &models.Plan{
		UserID:    userID,
		Pages:     pages,
		Portfolio: *result,
	}, nil
}

// Rebalance re-optimizes the user's existing holdings toward the goals and
// replaces the stored portfolio with the revision. A user with no stored
// portfolio cannot rebalance.
func (s *PlanService) Rebalance(ctx context.Context, userID, goals string) (*models.PortfolioResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	existing, err := s.store.HoldingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: nothing to rebalance", ErrNoPortfolio)
	}

	if goals == "" {
		goals = "Maintain a balanced, diversified portfolio."
	}

	result, err := s.optimizer.Optimize(ctx, existing, goals)
	if err != nil {
		return nil, err
	}

	if err := s.store.ReplaceForUser(ctx, userID, result); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, userID, ActivityRebalanced, map[string]any{
		"goals":    goals,
		"holdings": len(result.Holdings),
	})

	return result, nil
}
