// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateFetching State = "fetching"
	StateShown    State = "shown"
	StateHidden   State = "hidden"
	StateOpened   State = "opened"
	StateError    State = "error"
	StateHistory  State = "history"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	policy  string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	var text string
	switch s.state {
	case StateFetching:
		text = s.styles.Muted.Render("Fetching...")
	case StateShown:
		text = s.styles.Success.Render("Preview ready")
	case StateHidden:
		text = s.styles.Muted.Render("No preview")
	case StateOpened:
		text = s.styles.Normal.Render(fmt.Sprintf("Opened %s", s.message))
	case StateHistory:
		text = s.styles.Normal.Render(s.message)
	case StateError:
		if s.message != "" {
			text = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			text = s.styles.Error.Render("Error")
		}
	default:
		text = s.styles.Muted.Render("Ready")
	}

	if s.policy != "" {
		text += s.styles.Muted.Render(fmt.Sprintf(" [%s]", s.policy))
	}
	return text
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateHistory:
		bindings = s.keymap.HistoryHelp()
	case StateReady:
		bindings = s.keymap.ShortHelp()
	default:
		bindings = s.keymap.PreviewHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPolicy sets the render policy label.
func (s *Bar) SetPolicy(policy string) {
	s.policy = policy
}

// Policy returns the render policy label.
func (s *Bar) Policy() string {
	return s.policy
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state. The policy label is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
