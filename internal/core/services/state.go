package services

import (
	"sync/atomic"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// StateStore holds the preview currently shown by a card.
// A nil value means nothing is shown: no data yet, fetch in flight, or cleared.
//
// Only Controller writes to it; readers may load it from any goroutine.
type StateStore struct {
	data atomic.Pointer[domain.PreviewData]
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Load returns the current preview, or nil.
func (s *StateStore) Load() *domain.PreviewData {
	return s.data.Load()
}

func (s *StateStore) store(data *domain.PreviewData) {
	s.data.Store(data)
}
