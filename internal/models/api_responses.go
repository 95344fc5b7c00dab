package models

// CreatePlanRequest represents the request body for submitting investment goals
type CreatePlanRequest struct {
	UserID string `json:"user_id"`
	Goals  string `json:"goals" binding:"required"`
}

// AddPositionRequest represents the "add stock" quick-action request body
type AddPositionRequest struct {
	UserID   string `json:"user_id"`
	Symbol   string `json:"symbol" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// AddPositionResponse returns the aggregated quantity after an add
type AddPositionResponse struct {
	UserID   string `json:"user_id"`
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"`
}

// RebalanceRequest represents the request body for a portfolio rebalance
type RebalanceRequest struct {
	UserID string `json:"user_id"`
	Goals  string `json:"goals"`
}

// PositionsResponse maps symbols to aggregated share counts
type PositionsResponse struct {
	UserID    string         `json:"user_id"`
	Positions map[string]int `json:"positions"`
}

// PagesResponse carries the navigation page list
type PagesResponse struct {
	Pages []string `json:"pages"`
}

// InsightsResponse combines portfolio analysis with market sentiment
type InsightsResponse struct {
	UserID    string           `json:"user_id"`
	Portfolio *InsightsReport  `json:"portfolio_analysis"`
	Sentiment *SentimentReport `json:"market_sentiment"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
