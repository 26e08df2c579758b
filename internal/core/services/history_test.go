package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/linkcard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// failingHistoryStore implements driven.HistoryStore and fails every call.
type failingHistoryStore struct {
	err error
}

func (m *failingHistoryStore) Save(context.Context, domain.HistoryEntry) error { return m.err }
func (m *failingHistoryStore) Get(context.Context, string) (*domain.HistoryEntry, error) {
	return nil, m.err
}
func (m *failingHistoryStore) List(context.Context, int) ([]domain.HistoryEntry, error) {
	return nil, m.err
}
func (m *failingHistoryStore) Clear(context.Context) error { return m.err }

func TestHistoryService_Record(t *testing.T) {
	store := memory.NewHistoryStore()
	service := NewHistoryService(store, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	data := domain.PreviewData{Title: "Example", Link: "https://example.com"}
	require.NoError(t, service.Record(context.Background(), "see example.com", data))

	entries, err := service.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, "see example.com", entries[0].Text)
	assert.True(t, data.Equal(entries[0].Data))
	assert.Equal(t, fixed, entries[0].FetchedAt)
}

func TestHistoryService_Record_SkipsEmpty(t *testing.T) {
	store := memory.NewHistoryStore()
	service := NewHistoryService(store, nil)

	require.NoError(t, service.Record(context.Background(), "no link", domain.PreviewData{}))

	entries, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryService_Record_Disabled(t *testing.T) {
	store := memory.NewHistoryStore()
	settings := NewSettingsService(memory.NewConfigStoreWith(map[string]any{"history.enabled": false}))
	service := NewHistoryService(store, settings)

	require.NoError(t, service.Record(context.Background(), "x", domain.PreviewData{Title: "X"}))

	entries, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryService_Record_StoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	service := NewHistoryService(&failingHistoryStore{err: storeErr}, nil)

	err := service.Record(context.Background(), "x", domain.PreviewData{Title: "X"})

	assert.ErrorIs(t, err, storeErr)
}

func TestHistoryService_List_UsesConfiguredLimit(t *testing.T) {
	store := memory.NewHistoryStore()
	settings := NewSettingsService(memory.NewConfigStoreWith(map[string]any{"history.limit": 2}))
	service := NewHistoryService(store, settings)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		service.now = func() time.Time { return at }
		require.NoError(t, service.Record(context.Background(), "t", domain.PreviewData{Title: at.String()}))
	}

	entries, err := service.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = service.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestHistoryService_Get(t *testing.T) {
	store := memory.NewHistoryStore()
	service := NewHistoryService(store, nil)
	require.NoError(t, service.Record(context.Background(), "t", domain.PreviewData{Title: "T"}))
	entries, err := service.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, err := service.Get(context.Background(), entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Data.Title)

	_, err = service.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Clear(t *testing.T) {
	store := memory.NewHistoryStore()
	service := NewHistoryService(store, nil)
	require.NoError(t, service.Record(context.Background(), "t", domain.PreviewData{Title: "T"}))

	require.NoError(t, service.Clear(context.Background()))

	entries, err := service.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
