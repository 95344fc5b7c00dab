package models

// Sentiment labels produced by the market sentiment analysis
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// InsightsReport is the model-generated analysis of a portfolio
type InsightsReport struct {
	Summary         string   `json:"summary"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
}

// SentimentReport is the model-generated market sentiment read from news
type SentimentReport struct {
	OverallSentiment string   `json:"overall_sentiment"`
	Confidence       float64  `json:"confidence"`
	KeyFactors       []string `json:"key_factors"`
	MarketOutlook    string   `json:"market_outlook"`
}
