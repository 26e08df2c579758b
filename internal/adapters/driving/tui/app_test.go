package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/linkcard/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Preview:  &MockPreviewService{},
		History:  &MockHistoryService{},
		Settings: &MockSettingsService{},
	}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	app.SetDimensions(120, 30)
	return app
}

func sampleEntry() domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:   "h1",
		Text: "see https://example.com/post",
		Data: domain.PreviewData{
			Link:   "https://example.com/post",
			Title:  "Example Post",
			Domain: "example.com",
		},
		FetchedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewPreview, app.CurrentView())
	assert.False(t, app.Watching())
	assert.NotNil(t, app.PreviewView())
	assert.NotNil(t, app.HistoryView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{History: &MockHistoryService{}})

	assert.ErrorIs(t, err, ErrMissingPreviewService)
	assert.Nil(t, app)
}

func TestNewApp_WatchesConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	ports := newTestPorts()
	ports.ConfigPath = path
	app := newTestApp(t, ports)

	assert.True(t, app.Watching())
	assert.NotNil(t, app.Init())
}

func TestNewApp_UnwatchableConfigPath(t *testing.T) {
	ports := newTestPorts()
	ports.ConfigPath = filepath.Join(t.TempDir(), "missing", "config.toml")

	app := newTestApp(t, ports)

	assert.False(t, app.Watching())
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Same(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	defer app.Close()

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Same(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "linkcard")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	app.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")
	assert.Contains(t, app.View(), "quit")

	// Typing in help does not reach the input.
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, app.PreviewView().Text())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewPreview, app.CurrentView())
}

func TestApp_KeysReachPreview(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", app.PreviewView().Text())
}

func TestApp_SwitchToHistoryLoadsEntries(t *testing.T) {
	ports := newTestPorts()
	ports.History = &MockHistoryService{
		ListFunc: func(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
			return []domain.HistoryEntry{sampleEntry()}, nil
		},
	}
	app := newTestApp(t, ports)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewHistory})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewHistory, app.CurrentView())

	app.Update(cmd())

	require.Len(t, app.HistoryView().Entries(), 1)
	assert.Contains(t, app.View(), "Example Post")
}

func TestApp_HistorySelectedShowsCardWithoutFetch(t *testing.T) {
	fetched := false
	ports := newTestPorts()
	ports.Preview = &MockPreviewService{
		PolicyVal: domain.PolicyLoose,
		FetchFunc: func(_ context.Context, _ string, _ time.Duration) domain.PreviewData {
			fetched = true
			return domain.PreviewData{}
		},
	}
	app := newTestApp(t, ports)
	app.Update(messages.ViewChanged{View: messages.ViewHistory})

	entry := sampleEntry()
	_, cmd := app.Update(messages.HistorySelected{Entry: entry})

	assert.Nil(t, cmd)
	assert.False(t, fetched)
	assert.Equal(t, messages.ViewPreview, app.CurrentView())
	require.NotNil(t, app.PreviewView().State())
	assert.Equal(t, "Example Post", app.PreviewView().State().Title)
	assert.Equal(t, entry.Text, app.PreviewView().Text())
}

func TestApp_HistoryClearedReloads(t *testing.T) {
	lists := 0
	ports := newTestPorts()
	ports.History = &MockHistoryService{
		ListFunc: func(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
			lists++
			return nil, nil
		},
	}
	app := newTestApp(t, ports)
	app.Update(messages.ViewChanged{View: messages.ViewHistory})

	_, cmd := app.Update(messages.HistoryCleared{})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, lists)
}

func TestApp_ConfigChangedAppliesSettings(t *testing.T) {
	current := domain.DefaultAppSettings()
	settings := &MockSettingsService{
		GetFunc: func() (*domain.AppSettings, error) {
			s := current
			return &s, nil
		},
	}
	ports := newTestPorts()
	ports.Settings = settings
	app := newTestApp(t, ports)
	assert.Equal(t, domain.PolicyStrict, app.PreviewView().Policy())

	current.Preview.Policy = domain.PolicyLoose
	_, cmd := app.Update(messages.ConfigChanged{})

	assert.Nil(t, cmd)
	assert.Equal(t, 1, settings.Reloads)
	assert.Equal(t, domain.PolicyLoose, app.PreviewView().Policy())
	assert.NoError(t, app.Err())
}

func TestApp_ConfigChangedAnimationReplacesController(t *testing.T) {
	current := domain.DefaultAppSettings()
	preview := &MockPreviewService{}
	ports := newTestPorts()
	ports.Preview = preview
	ports.Settings = &MockSettingsService{
		GetFunc: func() (*domain.AppSettings, error) {
			s := current
			return &s, nil
		},
	}
	app := newTestApp(t, ports)
	require.Equal(t, 1, preview.Controllers)

	// Unchanged animation keeps the controller.
	app.Update(messages.ConfigChanged{})
	assert.Equal(t, 1, preview.Controllers)

	current.Preview.EnableAnimation = !current.Preview.EnableAnimation
	app.Update(messages.ConfigChanged{})
	assert.Equal(t, 2, preview.Controllers)
}

func TestApp_ConfigChangedDuringFetchRestartsIt(t *testing.T) {
	current := domain.DefaultAppSettings()
	preview := &MockPreviewService{
		FetchFunc: func(_ context.Context, _ string, _ time.Duration) domain.PreviewData {
			return domain.PreviewData{Link: "https://example.com", Title: "Example", Domain: "example.com"}
		},
	}
	ports := newTestPorts()
	ports.Preview = preview
	ports.Settings = &MockSettingsService{
		GetFunc: func() (*domain.AppSettings, error) {
			s := current
			return &s, nil
		},
	}
	app := newTestApp(t, ports)
	app.PreviewView().SetText("example.com")
	_, stale := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, stale)

	current.Preview.EnableAnimation = !current.Preview.EnableAnimation
	_, cmd := app.Update(messages.ConfigChanged{})
	require.NotNil(t, cmd)

	app.Update(stale())
	assert.Nil(t, app.PreviewView().State())

	app.Update(cmd())
	require.NotNil(t, app.PreviewView().State())
	assert.Equal(t, "Example", app.PreviewView().State().Title)
}

func TestApp_ConfigChangedReloadError(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = &MockSettingsService{
		ReloadFunc: func() error { return errors.New("bad toml") },
	}
	app := newTestApp(t, ports)

	app.Update(messages.ConfigChanged{})

	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "bad toml")
	assert.Equal(t, domain.PolicyStrict, app.PreviewView().Policy())
	assert.Equal(t, status.StateError, app.PreviewView().StatusState())
	assert.Contains(t, app.View(), "bad toml")
}

func TestApp_ConfigChangedWatchError(t *testing.T) {
	settings := &MockSettingsService{}
	ports := newTestPorts()
	ports.Settings = settings
	app := newTestApp(t, ports)

	app.Update(messages.ConfigChanged{Err: errors.New("watch failed")})

	assert.EqualError(t, app.Err(), "watch failed")
	assert.Zero(t, settings.Reloads)
	assert.Equal(t, status.StateError, app.PreviewView().StatusState())
}

func TestApp_ConfigChangedWithoutSettings(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = nil
	app := newTestApp(t, ports)

	_, cmd := app.Update(messages.ConfigChanged{})

	assert.Nil(t, cmd)
	assert.NoError(t, app.Err())
}

func TestApp_ConfigChangedRearmsWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	ports := newTestPorts()
	ports.ConfigPath = path
	app := newTestApp(t, ports)
	require.True(t, app.Watching())

	_, cmd := app.Update(messages.ConfigChanged{})

	assert.NotNil(t, cmd)
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Nil(t, cmd)
	assert.EqualError(t, app.Err(), "boom")
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	ports := newTestPorts()
	ports.ConfigPath = path
	app, err := NewApp(ports)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		app.Close()
		app.Close()
	})
}
