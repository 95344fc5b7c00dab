package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bscolinos/finance-demov2/internal/llm"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/news"
)

// Insights asks the model to analyze the given holdings and returns a typed
// report. Same error taxonomy as Optimize.
func (o *Optimizer) Insights(ctx context.Context, holdings []models.Holding) (*models.InsightsReport, error) {
	holdingsJSON, _ := json.MarshalIndent(holdings, "", "  ")
	prompt := fmt.Sprintf(`You are a financial advisor. Analyze this portfolio data and provide insights:
%s

Return your analysis as a JSON object with exactly these keys:
- summary: A string with overall portfolio assessment
- risks: An array of strings listing potential risks
- opportunities: An array of strings listing potential opportunities
- recommendations: An array of strings with actionable recommendations

Format your response as valid JSON only, no other text.`, string(holdingsJSON))

	raw, err := o.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var report models.InsightsReport
	if err := json.Unmarshal(extractJSONObject(raw), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	if report.Summary == "" {
		return nil, fmt.Errorf("%w: missing key summary", llm.ErrMalformedOutput)
	}
	return &report, nil
}

// Sentiment asks the model for a market sentiment read over news articles
func (o *Optimizer) Sentiment(ctx context.Context, articles []news.Article) (*models.SentimentReport, error) {
	articlesJSON, _ := json.MarshalIndent(articles, "", "  ")
	prompt := fmt.Sprintf(`You are a financial analyst. Analyze these news articles and provide market sentiment:
%s

Return your analysis as a JSON object with exactly these keys:
- overall_sentiment: A string that must be either "bullish", "bearish", or "neutral"
- confidence: A float between 0.0 and 1.0
- key_factors: An array of strings listing key market factors
- market_outlook: A string with a brief market outlook

Format your response as valid JSON only, no other text.`, string(articlesJSON))

	raw, err := o.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var report models.SentimentReport
	if err := json.Unmarshal(extractJSONObject(raw), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	switch report.OverallSentiment {
	case models.SentimentBullish, models.SentimentBearish, models.SentimentNeutral:
	default:
		return nil, fmt.Errorf("%w: unknown sentiment %q", llm.ErrMalformedOutput, report.OverallSentiment)
	}
	if report.Confidence < 0 || report.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %.4f outside [0,1]", llm.ErrMalformedOutput, report.Confidence)
	}
	return &report, nil
}

// extractJSONObject trims the reply to its outermost JSON object so that a
// model preamble or code fence does not fail the strict parse. Returns the
// input unchanged when no object is found; the caller's Unmarshal reports the
// malformed reply.
func extractJSONObject(raw string) []byte {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return bytes.TrimSpace([]byte(trimmed[start : end+1]))
	}
	return []byte(trimmed)
}
