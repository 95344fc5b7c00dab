package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bscolinos/finance-demov2/internal/llm"
	"github.com/bscolinos/finance-demov2/internal/models"
)

// Optimizer produces a suggested holdings list from free-text investment
// goals. "Optimization" here is whatever the generative model returns; the
// optimizer's job is strict parse-then-validate into a typed result.
type Optimizer struct {
	llm llm.Client
}

// NewOptimizer creates a new Optimizer
func NewOptimizer(client llm.Client) *Optimizer {
	return &Optimizer{llm: client}
}

// optimizeReply mirrors the required reply shape. Pointer fields distinguish
// a missing key from an empty value.
type optimizeReply struct {
	OptimizedHoldings *[]models.Holding `json:"optimized_holdings"`
	Rationale         *string           `json:"rationale"`
}

// Optimize generates a portfolio for the given goals. With no existing
// holdings the model originates a portfolio from scratch; otherwise it
// revises the given holdings toward the goals. Transport failures and
// malformed replies surface as distinct errors (llm.ErrTransport vs
// llm.ErrMalformedOutput); no retry is performed here.
func (o *Optimizer) Optimize(ctx context.Context, existing []models.Holding, goals string) (*models.PortfolioResult, error) {
	var prompt string
	if len(existing) == 0 {
		prompt = originationPrompt(goals)
	} else {
		prompt = revisionPrompt(existing, goals)
	}

	raw, err := o.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var reply optimizeReply
	if err := json.Unmarshal(extractJSONObject(raw), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	if reply.OptimizedHoldings == nil {
		return nil, fmt.Errorf("%w: missing key optimized_holdings", llm.ErrMalformedOutput)
	}
	if reply.Rationale == nil {
		return nil, fmt.Errorf("%w: missing key rationale", llm.ErrMalformedOutput)
	}

	holdings, err := validateHoldings(*reply.OptimizedHoldings)
	if err != nil {
		return nil, err
	}

	return &models.PortfolioResult{
		Holdings:  holdings,
		Rationale: *reply.Rationale,
	}, nil
}

func originationPrompt(goals string) string {
	return fmt.Sprintf(`You are a financial advisor. The user has not provided any current portfolio data, but has the following investment goals:
%s

Generate a custom portfolio as a JSON object with exactly these keys:
- optimized_holdings: an array of objects with keys 'symbol', 'quantity', and 'target_allocation'. Only include stock symbols and not crypto or savings accounts.
- rationale: a string explaining your recommendations

Format your response as valid JSON only, no additional text.`, goals)
}

func revisionPrompt(existing []models.Holding, goals string) string {
	holdingsJSON, _ := json.MarshalIndent(existing, "", "  ")
	return fmt.Sprintf(`You are a financial advisor and portfolio optimizer. Given the following portfolio data and the user's investment goals, optimize the portfolio to best meet the goals.
Portfolio data:
%s

User Goals:
%s

Return your optimized portfolio as a JSON object with exactly these keys:
- optimized_holdings: an array of objects with keys 'symbol', 'quantity', and 'target_allocation'
- rationale: a string explaining the changes

Format your response as valid JSON only, no additional text.`, string(holdingsJSON), goals)
}

// validateHoldings enforces the structural invariants on model-produced
// holdings. Duplicate symbols are aggregated additively: quantities sum and
// allocations sum, capped at 1.0.
func validateHoldings(in []models.Holding) ([]models.Holding, error) {
	index := make(map[string]int, len(in))
	out := make([]models.Holding, 0, len(in))
	for i, h := range in {
		if h.Symbol == "" {
			return nil, fmt.Errorf("%w: holding[%d] has empty symbol", llm.ErrMalformedOutput, i)
		}
		if h.Quantity < 0 {
			return nil, fmt.Errorf("%w: holding %s has negative quantity %d", llm.ErrMalformedOutput, h.Symbol, h.Quantity)
		}
		if h.TargetAllocation < 0 || h.TargetAllocation > 1 {
			return nil, fmt.Errorf("%w: holding %s has allocation %.4f outside [0,1]", llm.ErrMalformedOutput, h.Symbol, h.TargetAllocation)
		}
		if j, dup := index[h.Symbol]; dup {
			out[j].Quantity += h.Quantity
			out[j].TargetAllocation += h.TargetAllocation
			if out[j].TargetAllocation > 1 {
				out[j].TargetAllocation = 1
			}
			continue
		}
		index[h.Symbol] = len(out)
		out = append(out, h)
	}
	return out, nil
}
