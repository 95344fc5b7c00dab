package models

import "time"

// Holding represents a single ticker position with a target allocation fraction
type Holding struct {
	Symbol           string  `json:"symbol"`
	Quantity         int     `json:"quantity"`
	TargetAllocation float64 `json:"target_allocation"`
}

// PortfolioResult is an optimizer-produced holdings list with its rationale
type PortfolioResult struct {
	Holdings  []Holding `json:"optimized_holdings"`
	Rationale string    `json:"rationale"`
}

// Plan is the outcome of a "submit goals" action: the resolved navigation
// plus the persisted portfolio
type Plan struct {
	UserID    string          `json:"user_id"`
	Pages     []string        `json:"pages"`
	Portfolio PortfolioResult `json:"portfolio"`
}

// HoldingPerformance is one position enriched with live market data
type HoldingPerformance struct {
	Symbol      string  `json:"symbol"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Value       float64 `json:"value"`
	DailyChange float64 `json:"daily_change"`
}

// PerformanceReport summarizes a user's portfolio against current quotes
type PerformanceReport struct {
	UserID               string               `json:"user_id"`
	TotalValue           float64              `json:"total_value"`
	DailyChange          float64              `json:"daily_change"`
	DailyReturn          float64              `json:"daily_return"`
	DiversificationScore float64              `json:"diversification_score"`
	Holdings             []HoldingPerformance `json:"holdings"`
}

// ActivityRecord is one append-only entry in the user activity log
type ActivityRecord struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Details      string    `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
