// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPreview is the link input and preview card view.
	ViewPreview ViewType = iota
	// ViewHistory lists previously accepted previews.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPreview:
		return "preview"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// InputSettled is sent once typing pauses. Seq identifies the edit it
// was scheduled for; stale ticks are ignored.
type InputSettled struct {
	Seq int
}

// PreviewFetched carries a session's fetch result back to the model.
type PreviewFetched struct {
	Session driving.PreviewSession
	Data    domain.PreviewData
}

// AnimationFrame advances the card highlight after an accepted result.
type AnimationFrame struct {
	Remaining int
}

// LinkOpened signals the card's link was handed to the opener.
type LinkOpened struct {
	Link string
}

// HistoryLoaded carries the history entries from the service.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// HistoryCleared signals the history was cleared.
type HistoryCleared struct {
	Err error
}

// HistorySelected signals a history entry should be shown as a card.
type HistorySelected struct {
	Entry domain.HistoryEntry
}

// ConfigChanged signals the config file changed on disk, or that watching
// it failed.
type ConfigChanged struct {
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// PolicyChanged signals the render policy was switched.
type PolicyChanged struct {
	Policy domain.RenderPolicy
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
