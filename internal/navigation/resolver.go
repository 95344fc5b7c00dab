package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bscolinos/finance-demov2/internal/llm"
	log "github.com/sirupsen/logrus"
)

// Resolver classifies which optional pages are relevant to a user's stated
// goals and merges them into the current navigation. The underlying model is
// nondeterministic; any failure degrades to returning the current pages.
type Resolver struct {
	llm llm.Client
}

// NewResolver creates a new Resolver
func NewResolver(client llm.Client) *Resolver {
	return &Resolver{llm: client}
}

// Resolve returns the navigation list for the given goals. On model failure
// or unparseable output the current pages are returned unchanged; resolution
// never raises to the caller.
func (r *Resolver) Resolve(ctx context.Context, goals string, current []string) []string {
	raw, err := r.llm.Complete(ctx, buildPagePrompt(goals, current))
	if err != nil {
		log.Warnf("page resolution skipped, model call failed: %v", err)
		return current
	}

	pages, err := parsePageList(raw)
	if err != nil {
		log.Warnf("page resolution skipped, unparseable reply: %v", err)
		return current
	}

	candidate := make([]string, 0, len(current)+len(pages))
	candidate = append(candidate, current...)
	candidate = append(candidate, pages...)
	merged, dropped := Normalize(candidate)
	if len(dropped) > 0 {
		log.Warnf("page resolution dropped invalid pages: %s", strings.Join(dropped, ", "))
	}
	return merged
}

func buildPagePrompt(goals string, current []string) string {
	candidates, _ := json.Marshal(OptionalPages())
	currentJSON, _ := json.Marshal(current)
	return fmt.Sprintf(`You are a financial advisor. Based on the following investment goals and current pages, return the additional pages relevant to the goals, chosen only from this list: %s
If the goals mention college, always include "College Savings Account".
Investment Goals: %s
Current Pages: %s
Respond with only a JSON array of page name strings, for example ["page1","page2"]. No other text.`,
		string(candidates), goals, string(currentJSON))
}

// parsePageList parses a model reply as a JSON array of strings. A strict
// parse of the whole reply is tried first; if that fails, the first bracketed
// substring is tried before the reply is declared malformed.
func parsePageList(raw string) ([]string, error) {
	var pages []string
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), &pages); err == nil {
		return pages, nil
	}

	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &pages); err == nil {
			return pages, nil
		}
	}
	return nil, fmt.Errorf("%w: expected a JSON array of page names", llm.ErrMalformedOutput)
}
