package driven

import (
	"context"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// HistoryStore persists accepted previews.
type HistoryStore interface {
	// Save stores an entry. An entry with an existing ID is replaced.
	Save(ctx context.Context, entry domain.HistoryEntry) error

	// Get retrieves an entry by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// List returns up to limit entries, newest first.
	// A limit <= 0 returns all entries.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
