package driving

import (
	"time"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetPolicy updates the render policy.
	SetPolicy(policy domain.RenderPolicy) error

	// SetRequestTimeout updates the fetch timeout.
	SetRequestTimeout(timeout time.Duration) error

	// SetEnableAnimation toggles the layout transition hint.
	SetEnableAnimation(enabled bool) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Reload re-reads settings from their backing store.
	Reload() error
}
