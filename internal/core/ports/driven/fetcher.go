package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// PreviewFetcher extracts preview metadata for the first URL found in text.
//
// Fetch is expected to always return: network, parse, and timeout failures
// are reported as a PreviewData with empty fields, never as an error.
// The timeout is owned by the implementation.
type PreviewFetcher interface {
	Fetch(ctx context.Context, text string, timeout time.Duration) domain.PreviewData
}

// PreviewFetcherFunc adapts a plain function to PreviewFetcher.
type PreviewFetcherFunc func(ctx context.Context, text string, timeout time.Duration) domain.PreviewData

// Fetch calls f.
func (f PreviewFetcherFunc) Fetch(ctx context.Context, text string, timeout time.Duration) domain.PreviewData {
	return f(ctx, text, timeout)
}
