package llm

import (
	"context"
	"errors"
)

var (
	// ErrTransport marks network/auth failures reaching the model provider.
	// Retryable from the caller's point of view.
	ErrTransport = errors.New("model call failed")

	// ErrMalformedOutput marks replies that arrived but did not parse into
	// the expected shape. Not retryable without a prompt change.
	ErrMalformedOutput = errors.New("malformed model output")
)

// Client is the seam between the core and the generative-text provider.
// Implementations must wrap provider failures in ErrTransport so callers can
// distinguish transient outage from format drift with errors.Is.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
