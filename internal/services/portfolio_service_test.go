package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/bscolinos/finance-demov2/internal/database"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/repository"
)

// setupPortfolioService connects to the database named by PG_URL and skips the
// test when it is unset. These tests need a real PostgreSQL instance.
func setupPortfolioService(t *testing.T) *PortfolioService {
	t.Helper()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL not set, skipping database integration test")
	}

	db, err := database.New(context.Background(), pgURL)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(db.Close)

	return NewPortfolioService(repository.NewPortfolioRepository(db.Pool))
}

func testUserID(t *testing.T) string {
	// Unique per test so runs do not interfere
	return fmt.Sprintf("test-%s-%d", t.Name(), os.Getpid())
}

func TestReplaceForUserKeepsOnlyLatest(t *testing.T) {
	svc := setupPortfolioService(t)
	ctx := context.Background()
	userID := testUserID(t)

	first := &models.PortfolioResult{Holdings: []models.Holding{
		{Symbol: "AAPL", Quantity: 10, TargetAllocation: 0.6},
		{Symbol: "MSFT", Quantity: 5, TargetAllocation: 0.4},
	}}
	if err := svc.ReplaceForUser(ctx, userID, first); err != nil {
		t.Fatalf("first replace failed: %v", err)
	}

	second := &models.PortfolioResult{Holdings: []models.Holding{
		{Symbol: "VTI", Quantity: 20, TargetAllocation: 1.0},
	}}
	if err := svc.ReplaceForUser(ctx, userID, second); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	positions, err := svc.PositionsForUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to get positions: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected only the latest holdings, got %v", positions)
	}
	if positions["VTI"] != 20 {
		t.Errorf("expected VTI quantity 20, got %d", positions["VTI"])
	}
}

func TestAddPositionAggregatesQuantity(t *testing.T) {
	svc := setupPortfolioService(t)
	ctx := context.Background()
	userID := testUserID(t)

	qty, err := svc.AddPosition(ctx, userID, "NVDA", 3)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if qty != 3 {
		t.Errorf("expected quantity 3 after first add, got %d", qty)
	}

	qty, err = svc.AddPosition(ctx, userID, "NVDA", 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if qty != 6 {
		t.Errorf("expected quantity 6 after second add, got %d", qty)
	}

	positions, err := svc.PositionsForUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to get positions: %v", err)
	}
	if positions["NVDA"] != 6 {
		t.Errorf("expected NVDA 6, got %d", positions["NVDA"])
	}
}

func TestAddPositionConcurrentAddsAllLand(t *testing.T) {
	svc := setupPortfolioService(t)
	ctx := context.Background()
	userID := testUserID(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddPosition(ctx, userID, "SPY", 2); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent add failed: %v", err)
	}

	positions, err := svc.PositionsForUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to get positions: %v", err)
	}
	if positions["SPY"] != workers*2 {
		t.Errorf("expected SPY %d, got %d", workers*2, positions["SPY"])
	}
}

func TestAddPositionValidation(t *testing.T) {
	// Validation happens before any database access
	svc := NewPortfolioService(nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		userID   string
		symbol   string
		quantity int
	}{
		{"empty user id", "", "AAPL", 1},
		{"empty symbol", "u1", "", 1},
		{"zero quantity", "u1", "AAPL", 0},
		{"negative quantity", "u1", "AAPL", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddPosition(ctx, tc.userID, tc.symbol, tc.quantity); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestPositionsForUserEmptyUserID(t *testing.T) {
	svc := NewPortfolioService(nil)

	positions, err := svc.PositionsForUser(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("expected empty positions, got %v", positions)
	}
}
