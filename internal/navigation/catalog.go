package navigation

// Page names displayed by the dashboard. The four fixed pages always lead
// the navigation in this order; optional pages are added per user goals.
const (
	PageWelcome   = "Welcome"
	PageDashboard = "Portfolio Dashboard"
	PageNews      = "News Tracker"
	PageInsights  = "AI Insights"

	PageCollegeSavings = "College Savings Account"
	Page529Plan        = "529 Plan"
	PageCrypto         = "Crypto Investments"
	PageMortgage       = "Mortgage Planning"
	PageEstatePlanning = "Estate Planning"
	PageLifeInsurance  = "Life Insurance"
)

var fixedPrefix = []string{PageWelcome, PageDashboard, PageNews, PageInsights}

var optionalPages = []string{
	PageCollegeSavings,
	Page529Plan,
	PageCrypto,
	PageMortgage,
	PageEstatePlanning,
	PageLifeInsurance,
}

var allowed = buildAllowed()

func buildAllowed() map[string]struct{} {
	m := make(map[string]struct{}, len(fixedPrefix)+len(optionalPages))
	for _, p := range fixedPrefix {
		m[p] = struct{}{}
	}
	for _, p := range optionalPages {
		m[p] = struct{}{}
	}
	return m
}

// FixedPrefix returns the four always-first pages in canonical order
func FixedPrefix() []string {
	out := make([]string, len(fixedPrefix))
	copy(out, fixedPrefix)
	return out
}

// OptionalPages returns the goal-dependent pages the resolver may add
func OptionalPages() []string {
	out := make([]string, len(optionalPages))
	copy(out, optionalPages)
	return out
}

// Allowed reports whether a page name is in the closed vocabulary
func Allowed(page string) bool {
	_, ok := allowed[page]
	return ok
}

// Normalize produces a canonical navigation list from candidate page names:
// names outside the allow-list are filtered out, duplicates keep their first
// occurrence, fixed-prefix pages come first in canonical order, and the rest
// follow in first-seen order. The second return value lists the names that
// were dropped as invalid, for diagnostics.
func Normalize(candidate []string) ([]string, []string) {
	var dropped []string
	seen := make(map[string]struct{}, len(candidate))
	var merged []string
	for _, p := range candidate {
		if !Allowed(p) {
			dropped = append(dropped, p)
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}

	inPrefix := make(map[string]struct{}, len(fixedPrefix))
	out := make([]string, 0, len(merged))
	for _, p := range fixedPrefix {
		inPrefix[p] = struct{}{}
		if _, present := seen[p]; present {
			out = append(out, p)
		}
	}
	for _, p := range merged {
		if _, fixed := inPrefix[p]; !fixed {
			out = append(out, p)
		}
	}
	return out, dropped
}
