package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bscolinos/finance-demov2/internal/cache"
	"github.com/bscolinos/finance-demov2/internal/marketdata"
	"github.com/bscolinos/finance-demov2/internal/models"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentQuotes bounds the quote fan-out per request
const maxConcurrentQuotes = 4

// positionsReader is the slice of portfolio reads the performance view needs
type positionsReader interface {
	PositionsForUser(ctx context.Context, userID string) (map[string]int, error)
}

// PerformanceService enriches stored positions with live quotes to produce
// the dashboard's performance view
type PerformanceService struct {
	portfolios positionsReader
	avClient   *marketdata.Client
	memCache   *cache.MemoryCache
}

// NewPerformanceService creates a new PerformanceService
func NewPerformanceService(portfolios positionsReader, avClient *marketdata.Client, memCache *cache.MemoryCache) *PerformanceService {
	return &PerformanceService{
		portfolios: portfolios,
		avClient:   avClient,
		memCache:   memCache,
	}
}

// Performance computes per-holding value and daily change plus portfolio
// totals and a diversification score. A user with no positions gets an empty
// report, not an error.
func (s *PerformanceService) Performance(ctx context.Context, userID string) (*models.PerformanceReport, error) {
	positions, err := s.portfolios.PositionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &models.PerformanceReport{UserID: userID, Holdings: []models.HoldingPerformance{}}
	if len(positions) == 0 {
		return report, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuotes)
	for symbol, quantity := range positions {
		g.Go(func() error {
			quote, err := s.quote(gctx, symbol)
			if err != nil {
				return fmt.Errorf("failed to quote %s: %w", symbol, err)
			}
			hp := models.HoldingPerformance{
				Symbol:      symbol,
				Quantity:    quantity,
				Price:       quote.Price,
				Value:       quote.Price * float64(quantity),
				DailyChange: (quote.Price - quote.PreviousClose) * float64(quantity),
			}
			mu.Lock()
			report.Holdings = append(report.Holdings, hp)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Holdings, func(i, j int) bool {
		return report.Holdings[i].Symbol < report.Holdings[j].Symbol
	})

	for _, h := range report.Holdings {
		report.TotalValue += h.Value
		report.DailyChange += h.DailyChange
	}
	if report.TotalValue > 0 {
		report.DailyReturn = report.DailyChange / report.TotalValue

		// 1 - sum of squared weights: 0 for a single position, approaching 1
		// as the portfolio spreads out
		var sumSq float64
		for _, h := range report.Holdings {
			w := h.Value / report.TotalValue
			sumSq += w * w
		}
		report.DiversificationScore = 1 - sumSq
	}

	return report, nil
}

func (s *PerformanceService) quote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	if quote, ok := s.memCache.GetQuote(symbol); ok {
		return quote, nil
	}
	quote, err := s.avClient.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	s.memCache.SetQuote(symbol, quote)
	return quote, nil
}
