package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		entries: make(map[string]domain.HistoryEntry),
	}
}

// Save stores or replaces an entry.
func (s *HistoryStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = cloneEntry(entry)
	return nil
}

// Get retrieves an entry by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	entry = cloneEntry(entry)
	return &entry, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.HistoryEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, cloneEntry(entry))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FetchedAt.Equal(result[j].FetchedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].FetchedAt.After(result[j].FetchedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.HistoryEntry)
	return nil
}

// cloneEntry copies the image so callers cannot mutate stored data.
func cloneEntry(entry domain.HistoryEntry) domain.HistoryEntry {
	if entry.Data.Image != nil {
		img := *entry.Data.Image
		entry.Data.Image = &img
	}
	return entry
}
