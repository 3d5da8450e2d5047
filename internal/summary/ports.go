// Package summary turns a week's work items into a narrative text through
// an external text-generation collaborator. The collaborator is a single
// opaque capability behind the Generator port; any provider satisfying it
// is interchangeable.
package summary

import (
	"context"
	"errors"
)

// Generator produces text for a prompt. Calls have unbounded latency and
// no retry policy; callers bound them with a context deadline.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNotConfigured means no API credential is available. The summary
	// feature is disabled, not broken.
	ErrNotConfigured = errors.New("summary generator not configured")

	// ErrNoSummary means the collaborator answered without usable text.
	ErrNoSummary = errors.New("no summary generated")
)
