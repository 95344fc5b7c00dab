package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/bscolinos/finance-demov2/internal/llm"
	"github.com/bscolinos/finance-demov2/internal/models"
	"github.com/bscolinos/finance-demov2/internal/news"
)

var testHoldings = []models.Holding{{Symbol: "AAPL", Quantity: 5, TargetAllocation: 1.0}}

func TestInsightsParsesReport(t *testing.T) {
	stub := &stubLLM{reply: `{"summary":"concentrated","risks":["single stock"],"opportunities":["tech upside"],"recommendations":["diversify"]}`}
	o := NewOptimizer(stub)

	report, err := o.Insights(context.Background(), testHoldings)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Summary != "concentrated" {
		t.Errorf("expected summary %q, got %q", "concentrated", report.Summary)
	}
	if len(report.Risks) != 1 || report.Risks[0] != "single stock" {
		t.Errorf("unexpected risks: %v", report.Risks)
	}
}

func TestInsightsMissingSummaryIsMalformed(t *testing.T) {
	stub := &stubLLM{reply: `{"risks":[],"opportunities":[],"recommendations":[]}`}
	o := NewOptimizer(stub)

	if _, err := o.Insights(context.Background(), testHoldings); !errors.Is(err, llm.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestSentimentParsesReport(t *testing.T) {
	stub := &stubLLM{reply: `{"overall_sentiment":"bullish","confidence":0.8,"key_factors":["earnings beats"],"market_outlook":"up"}`}
	o := NewOptimizer(stub)

	articles := []news.Article{{Title: "Stocks rally"}}
	report, err := o.Sentiment(context.Background(), articles)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.OverallSentiment != models.SentimentBullish {
		t.Errorf("expected bullish, got %q", report.OverallSentiment)
	}
}

func TestSentimentRejectsUnknownLabel(t *testing.T) {
	stub := &stubLLM{reply: `{"overall_sentiment":"euphoric","confidence":0.9,"key_factors":[],"market_outlook":"up"}`}
	o := NewOptimizer(stub)

	if _, err := o.Sentiment(context.Background(), nil); !errors.Is(err, llm.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestSentimentRejectsConfidenceOutOfRange(t *testing.T) {
	stub := &stubLLM{reply: `{"overall_sentiment":"neutral","confidence":1.5,"key_factors":[],"market_outlook":"flat"}`}
	o := NewOptimizer(stub)

	if _, err := o.Sentiment(context.Background(), nil); !errors.Is(err, llm.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"prefix {\"a\":1} suffix", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no object here", "no object here"},
	}
	for _, tc := range cases {
		if got := string(extractJSONObject(tc.in)); got != tc.want {
			t.Errorf("extractJSONObject(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
