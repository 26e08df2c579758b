package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// previewView is the link input and card.
	previewView *preview.View

	// historyView lists accepted previews.
	historyView *history.View

	// watcher reports config edits. Nil when no config path is set.
	watcher *ConfigWatcher

	// settings is the last applied settings snapshot.
	settings *domain.AppSettings

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        help.New(),
		previewView: preview.NewView(s, km, ports.Preview, ports.Settings, ports.Opener),
		historyView: history.NewView(s, km, ports.History),
		currentView: messages.ViewPreview,
	}
	app.help.ShowAll = true

	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			app.settings = settings
		}
	}

	if ports.ConfigPath != "" {
		watcher, err := NewConfigWatcher(ports.ConfigPath)
		if err != nil {
			logger.Warn("Config changes will not be picked up: %v", err)
		} else {
			app.watcher = watcher
		}
	}

	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.previewView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("linkcard"),
		a.previewView.Init(),
	}
	if a.watcher != nil {
		cmds = append(cmds, a.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.previewView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			a.Close()
			return a, tea.Quit
		}

		if a.currentView == messages.ViewHelp {
			if key.Matches(msg, a.keymap.Back) || key.Matches(msg, a.keymap.Help) {
				a.currentView = messages.ViewPreview
			}
			return a, nil
		}
		if key.Matches(msg, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}

		switch a.currentView {
		case messages.ViewPreview:
			a.previewView, cmd = a.previewView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewHelp:
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Init()
		}
		return a, nil

	case messages.HistorySelected:
		a.previewView.Show(msg.Entry.Text, msg.Entry.Data)
		a.currentView = messages.ViewPreview
		return a, nil

	case messages.HistoryLoaded, messages.HistoryCleared:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ConfigChanged:
		var fetch tea.Cmd
		if msg.Err != nil {
			logger.Warn("%v", msg.Err)
			a.showError(msg.Err)
		} else {
			fetch = a.reloadSettings()
		}
		if a.watcher != nil {
			cmd = a.watcher.Wait()
		}
		return a, tea.Batch(fetch, cmd)

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.previewView, cmd = a.previewView.Update(msg)
		return a, cmd

	case messages.Quit:
		a.Close()
		return a, tea.Quit
	}

	// Everything else belongs to the preview view.
	a.previewView, cmd = a.previewView.Update(msg)
	return a, cmd
}

// reloadSettings re-reads settings after an external edit and hands them
// to the preview view. The returned command restarts a fetch in flight.
func (a *App) reloadSettings() tea.Cmd {
	if a.ports.Settings == nil {
		return nil
	}
	if err := a.ports.Settings.Reload(); err != nil {
		logger.Warn("Keeping previous settings: %v", err)
		a.showError(err)
		return nil
	}
	settings, err := a.ports.Settings.Get()
	if err != nil {
		a.showError(err)
		return nil
	}

	animationChanged := a.settings == nil ||
		a.settings.Preview.EnableAnimation != settings.Preview.EnableAnimation
	cmd := a.previewView.ApplySettings(settings, animationChanged)
	a.settings = settings
	a.err = nil
	logger.Debug("Applied reloaded settings (policy=%s, timeout=%s)",
		settings.Preview.Policy, settings.Preview.RequestTimeout)
	return cmd
}

// showError records err and puts it on the status bar.
func (a *App) showError(err error) {
	a.err = err
	a.previewView.Update(messages.ErrorOccurred{Err: err})
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewPreview:
		return a.previewView.View()
	default:
		return a.previewView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back")
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close releases the preview controller and the config watcher.
func (a *App) Close() {
	a.previewView.Close()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Debug("Closing config watcher: %v", err)
		}
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// PreviewView returns the preview view.
func (a *App) PreviewView() *preview.View {
	return a.previewView
}

// HistoryView returns the history view.
func (a *App) HistoryView() *history.View {
	return a.historyView
}

// Watching reports whether config edits are being watched.
func (a *App) Watching() bool {
	return a.watcher != nil
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.previewView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
