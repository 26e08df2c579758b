package driving

import (
	"context"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// HistoryService exposes previously accepted previews.
type HistoryService interface {
	// Record stores an accepted preview for the given text.
	Record(ctx context.Context, text string, data domain.PreviewData) error

	// List returns up to limit entries, newest first.
	// A limit <= 0 uses the configured default.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
