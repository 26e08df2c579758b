// Package tui provides an interactive terminal user interface for linkcard.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Preview resolves link previews.
	Preview driving.PreviewService

	// History lists accepted previews. Optional.
	History driving.HistoryService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Opener opens the card's link. Optional; without it taps do nothing.
	Opener driven.URLOpener

	// ConfigPath is watched for external edits when set.
	ConfigPath string
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	preview driving.PreviewService,
	history driving.HistoryService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Preview:  preview,
		History:  history,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Preview == nil {
		return ErrMissingPreviewService
	}
	return nil
}
