package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records and lists accepted previews.
type HistoryService struct {
	store    driven.HistoryStore
	settings driving.SettingsService
	now      func() time.Time
}

// NewHistoryService creates a new history service.
// The settings parameter is optional (defaults are used when nil).
func NewHistoryService(store driven.HistoryStore, settings driving.SettingsService) *HistoryService {
	return &HistoryService{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Record stores an accepted preview. Empty previews and disabled history are skipped.
func (s *HistoryService) Record(ctx context.Context, text string, data domain.PreviewData) error {
	settings := s.currentSettings()
	if !settings.History.Enabled || data.IsEmpty() {
		return nil
	}

	entry := domain.HistoryEntry{
		ID:        uuid.New().String(),
		Text:      text,
		Data:      data,
		FetchedAt: s.now(),
	}
	if err := s.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = s.currentSettings().History.Limit
	}
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Get retrieves an entry by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// Clear removes all entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *HistoryService) currentSettings() domain.AppSettings {
	if s.settings == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		return domain.DefaultAppSettings()
	}
	return *settings
}
