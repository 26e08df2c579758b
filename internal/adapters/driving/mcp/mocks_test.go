package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

// mockPreviewService is a mock implementation of driving.PreviewService.
type mockPreviewService struct {
	data    *domain.PreviewData
	err     error
	policy  domain.RenderPolicy
	lastReq domain.PreviewRequest
}

func (m *mockPreviewService) Resolve(_ context.Context, req domain.PreviewRequest) (*domain.PreviewData, error) {
	m.lastReq = req
	return m.data, m.err
}

func (m *mockPreviewService) NewController(_ driving.ControllerOptions) driving.PreviewController {
	return nil
}

func (m *mockPreviewService) Policy() domain.RenderPolicy {
	if m.policy == "" {
		return domain.PolicyStrict
	}
	return m.policy
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries   []domain.HistoryEntry
	entry     *domain.HistoryEntry
	err       error
	lastLimit int
}

func (m *mockHistoryService) Record(_ context.Context, _ string, _ domain.PreviewData) error {
	return m.err
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.lastLimit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (*domain.HistoryEntry, error) {
	return m.entry, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error        { return m.err }
func (m *mockSettingsService) SetPolicy(_ domain.RenderPolicy) error   { return m.err }
func (m *mockSettingsService) SetRequestTimeout(_ time.Duration) error { return m.err }
func (m *mockSettingsService) SetEnableAnimation(_ bool) error         { return m.err }
func (m *mockSettingsService) Validate() error                         { return m.err }
func (m *mockSettingsService) GetDefaults() domain.AppSettings         { return domain.DefaultAppSettings() }
func (m *mockSettingsService) Reload() error                           { return m.err }
