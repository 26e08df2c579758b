// Package keymap defines the TUI keybindings.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding. Some keys are shared: enter fetches in the
// preview view and selects in the history view.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Preview view.
	Fetch   key.Binding
	Open    key.Binding
	Policy  key.Binding
	History key.Binding

	// History view.
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Clear  key.Binding
}

// bind creates a binding whose first key is shown in help unless label
// overrides it.
func bind(desc, label string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the default bindings. Letters are avoided in the
// preview view, where typing goes to the link input.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("quit", "", "ctrl+c"),
		Help: bind("help", "", "f1"),
		Back: bind("back", "", "esc"),

		Fetch:   bind("fetch", "", "enter"),
		Open:    bind("open link", "", "ctrl+o"),
		Policy:  bind("policy", "", "ctrl+p"),
		History: bind("history", "", "tab"),

		Up:     bind("up", "↑/k", "up", "k"),
		Down:   bind("down", "↓/j", "down", "j"),
		Select: bind("select", "", "enter"),
		Clear:  bind("clear", "", "ctrl+l"),
	}
}

// ShortHelp is shown in the status bar of every view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// PreviewHelp lists the preview view's bindings.
func (k *KeyMap) PreviewHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Open, k.Policy, k.History}
}

// HistoryHelp lists the history view's bindings.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Clear, k.Back}
}

// FullHelp groups every binding into columns for the help overlay.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fetch, k.Open, k.Policy, k.Clear},
		{k.History, k.Up, k.Down, k.Select},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, is one
// of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
