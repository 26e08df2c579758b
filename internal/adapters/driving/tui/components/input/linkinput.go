// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
)

// CharLimit caps how much text the input accepts.
const CharLimit = 2048

// LinkInput wraps a bubbles textinput for free-form text containing a link.
type LinkInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewLinkInput creates a new link input component.
func NewLinkInput(s *styles.Styles) *LinkInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Paste text containing a link..."
	ti.Focus()
	ti.CharLimit = CharLimit
	ti.Width = 50

	return &LinkInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (l *LinkInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. changed reports whether the value changed.
func (l *LinkInput) Update(msg tea.Msg) (li *LinkInput, cmd tea.Cmd, changed bool) {
	before := l.textinput.Value()
	l.textinput, cmd = l.textinput.Update(msg)
	return l, cmd, l.textinput.Value() != before
}

// View renders the input.
func (l *LinkInput) View() string {
	label := l.styles.Title.Render("Link: ")
	field := l.styles.InputField.Render(l.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (l *LinkInput) Value() string {
	return l.textinput.Value()
}

// SetValue sets the input value.
func (l *LinkInput) SetValue(value string) {
	l.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (l *LinkInput) Focus() tea.Cmd {
	return l.textinput.Focus()
}

// Blur removes focus from the input.
func (l *LinkInput) Blur() {
	l.textinput.Blur()
}

// Focused returns whether the input is focused.
func (l *LinkInput) Focused() bool {
	return l.textinput.Focused()
}

// SetWidth sets the width of the input.
func (l *LinkInput) SetWidth(width int) {
	l.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	l.textinput.Width = inputWidth
}

// Width returns the current width.
func (l *LinkInput) Width() int {
	return l.width
}

// Reset clears the input.
func (l *LinkInput) Reset() {
	l.textinput.Reset()
}
