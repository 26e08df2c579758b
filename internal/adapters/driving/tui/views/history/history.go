// Package history provides the preview history view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

const timeLayout = "2006-01-02 15:04"

// View lists accepted previews, newest first.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	historyService driving.HistoryService
	ctx            context.Context

	entries  []domain.HistoryEntry
	selected int
	loading  bool
	err      error

	width  int
	height int
}

// NewView creates a new history view. A nil service shows an empty list.
func NewView(s *styles.Styles, km *keymap.KeyMap, historyService driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateHistory)

	return &View{
		styles:         s,
		keymap:         km,
		statusbar:      bar,
		historyService: historyService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	if v.historyService == nil {
		return nil
	}
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	svc, ctx := v.historyService, v.ctx
	return func() tea.Msg {
		entries, err := svc.List(ctx, 0)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

func (v *View) clear() tea.Cmd {
	svc, ctx := v.historyService, v.ctx
	return func() tea.Msg {
		return messages.HistoryCleared{Err: svc.Clear(ctx)}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.entries = msg.Entries
			v.selected = 0
		}
		v.syncStatus()
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			v.err = msg.Err
			v.syncStatus()
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back), keymap.Matches(key, v.keymap.History):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPreview}
		}

	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}

	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}

	case keymap.Matches(key, v.keymap.Select):
		if entry := v.SelectedEntry(); entry != nil {
			selected := *entry
			return v, func() tea.Msg {
				return messages.HistorySelected{Entry: selected}
			}
		}

	case keymap.Matches(key, v.keymap.Clear):
		if v.historyService != nil && len(v.entries) > 0 {
			return v, v.clear()
		}
	}

	return v, nil
}

func (v *View) syncStatus() {
	if v.err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.err.Error())
		return
	}
	v.statusbar.SetState(status.StateHistory)
	v.statusbar.SetMessage(fmt.Sprintf("%d entries", len(v.entries)))
}

// View renders the history list.
func (v *View) View() string {
	lines := []string{v.styles.Title.Render("History"), ""}

	switch {
	case v.historyService == nil:
		lines = append(lines, v.styles.Muted.Render("History is not available."))
	case v.loading:
		lines = append(lines, v.styles.Muted.Render("Loading..."))
	case len(v.entries) == 0:
		lines = append(lines, v.styles.Muted.Render("No previews yet."))
	default:
		lines = append(lines, v.renderEntries()...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	gap := v.height - lipgloss.Height(content) - 1
	if gap < 1 {
		gap = 1
	}
	return content + strings.Repeat("\n", gap) + v.statusbar.View()
}

func (v *View) renderEntries() []string {
	// Two lines per entry, leaving room for title and status bar.
	visible := (v.height - 4) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := start + visible
	if end > len(v.entries) {
		end = len(v.entries)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		e := v.entries[i]
		label := entryLabel(e)
		meta := fmt.Sprintf("   %s  %s", e.FetchedAt.Format(timeLayout), e.Data.Domain)

		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+label))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+label))
		}
		lines = append(lines, v.styles.Muted.Render(meta))
	}
	return lines
}

// entryLabel is the best single-line name for an entry.
func entryLabel(e domain.HistoryEntry) string {
	switch {
	case e.Data.Title != "":
		return e.Data.Title
	case e.Data.Link != "":
		return e.Data.Link
	default:
		return e.Text
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.entries
}

// SelectedIndex returns the cursor position.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedEntry returns the entry under the cursor, or nil.
func (v *View) SelectedEntry() *domain.HistoryEntry {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return nil
	}
	return &v.entries[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
