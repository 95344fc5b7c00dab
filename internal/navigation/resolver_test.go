package navigation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/bscolinos/finance-demov2/internal/llm"
)

// stubLLM returns a canned reply or error and records the last prompt
type stubLLM struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestResolveAddsRelevantPage(t *testing.T) {
	stub := &stubLLM{reply: `["College Savings Account"]`}
	r := NewResolver(stub)

	got := r.Resolve(context.Background(), "saving for my kids' college", FixedPrefix())

	want := []string{PageWelcome, PageDashboard, PageNews, PageInsights, PageCollegeSavings}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveReturnsCurrentOnTransportFailure(t *testing.T) {
	stub := &stubLLM{err: fmt.Errorf("%w: connection refused", llm.ErrTransport)}
	r := NewResolver(stub)
	current := FixedPrefix()

	got := r.Resolve(context.Background(), "anything", current)

	if !reflect.DeepEqual(got, current) {
		t.Errorf("expected unchanged %v, got %v", current, got)
	}
}

func TestResolveReturnsCurrentOnUnparseableReply(t *testing.T) {
	stub := &stubLLM{reply: "not json"}
	r := NewResolver(stub)
	current := FixedPrefix()

	got := r.Resolve(context.Background(), "anything", current)

	if !reflect.DeepEqual(got, current) {
		t.Errorf("expected unchanged %v, got %v", current, got)
	}
}

func TestResolveDropsDisallowedPagesFromModel(t *testing.T) {
	stub := &stubLLM{reply: `["Mortgage Management", "Mortgage Planning"]`}
	r := NewResolver(stub)

	got := r.Resolve(context.Background(), "paying off my mortgage", FixedPrefix())

	want := []string{PageWelcome, PageDashboard, PageNews, PageInsights, PageMortgage}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveToleratesSurroundingText(t *testing.T) {
	stub := &stubLLM{reply: "Here are the pages:\n[\"Crypto Investments\"]\nLet me know if you need more."}
	r := NewResolver(stub)

	got := r.Resolve(context.Background(), "I want bitcoin exposure", FixedPrefix())

	want := []string{PageWelcome, PageDashboard, PageNews, PageInsights, PageCrypto}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveDedupesAgainstCurrent(t *testing.T) {
	stub := &stubLLM{reply: `["529 Plan"]`}
	r := NewResolver(stub)
	current := append(FixedPrefix(), Page529Plan)

	got := r.Resolve(context.Background(), "education savings", current)

	if !reflect.DeepEqual(got, current) {
		t.Errorf("expected %v, got %v", current, got)
	}
}

func TestResolvePromptOffersOnlyAllowedCandidates(t *testing.T) {
	stub := &stubLLM{reply: `[]`}
	r := NewResolver(stub)

	r.Resolve(context.Background(), "retirement", FixedPrefix())

	if strings.Contains(stub.lastPrompt, "Mortgage Management") {
		t.Error("prompt must not offer pages outside the allow-list")
	}
	for _, p := range OptionalPages() {
		if !strings.Contains(stub.lastPrompt, p) {
			t.Errorf("prompt missing candidate page %q", p)
		}
	}
}

func TestParsePageListMalformed(t *testing.T) {
	for _, raw := range []string{"", "oops", "[1, 2, 3]"} {
		if _, err := parsePageList(raw); !errors.Is(err, llm.ErrMalformedOutput) {
			t.Errorf("parsePageList(%q): expected ErrMalformedOutput, got %v", raw, err)
		}
	}
}
