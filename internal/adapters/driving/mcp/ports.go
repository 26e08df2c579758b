package mcp

import (
	"net/http"

	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Preview resolves link previews.
	Preview driving.PreviewService

	// History exposes accepted previews. Optional.
	History driving.HistoryService

	// Settings exposes current settings. Optional.
	Settings driving.SettingsService

	// Metrics is mounted at /metrics in HTTP mode. Optional.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Preview == nil {
		return ErrMissingPreviewService
	}
	return nil
}
