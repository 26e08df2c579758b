package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRequestTimeoutMS = "preview.request_timeout_ms"
	keyEnableAnimation  = "preview.enable_animation"
	keyPolicy           = "preview.policy"
	keyUserAgent        = "fetch.user_agent"
	keyMaxBodyBytes     = "fetch.max_body_bytes"
	keyRatePerSecond    = "fetch.rate_per_second"
	keyHistoryEnabled   = "history.enabled"
	keyHistoryLimit     = "history.limit"
	keyEnrichGitHub     = "enrich.github"
	keyGitHubToken      = "enrich.github_token"
	keyYouTubeAPIKey    = "enrich.youtube_api_key"
)

// minRequestTimeout rejects timeouts too short for any real request.
const minRequestTimeout = 100 * time.Millisecond

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Preview: domain.PreviewSettings{
			RequestTimeout: time.Duration(
				s.getInt(keyRequestTimeoutMS, int(defaults.Preview.RequestTimeout/time.Millisecond)),
			) * time.Millisecond,
			EnableAnimation: s.getBool(keyEnableAnimation, defaults.Preview.EnableAnimation),
			Policy:          s.getPolicy(defaults.Preview.Policy),
		},
		Fetch: domain.FetchSettings{
			UserAgent:     s.configStore.GetString(keyUserAgent), // Empty means the fetcher's default
			MaxBodyBytes:  s.getInt(keyMaxBodyBytes, defaults.Fetch.MaxBodyBytes),
			RatePerSecond: s.getInt(keyRatePerSecond, defaults.Fetch.RatePerSecond),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Limit:   s.getInt(keyHistoryLimit, defaults.History.Limit),
		},
		Enrich: domain.EnrichSettings{
			GitHub:        s.getBool(keyEnrichGitHub, defaults.Enrich.GitHub),
			GitHubToken:   s.configStore.GetString(keyGitHubToken),
			YouTubeAPIKey: s.configStore.GetString(keyYouTubeAPIKey),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save preview settings
	if err := s.configStore.Set(keyRequestTimeoutMS, int(settings.Preview.RequestTimeout/time.Millisecond)); err != nil {
		return fmt.Errorf("save request timeout: %w", err)
	}
	if err := s.configStore.Set(keyEnableAnimation, settings.Preview.EnableAnimation); err != nil {
		return fmt.Errorf("save enable animation: %w", err)
	}
	if err := s.configStore.Set(keyPolicy, settings.Preview.Policy.String()); err != nil {
		return fmt.Errorf("save policy: %w", err)
	}

	// Save fetch settings
	if settings.Fetch.UserAgent != "" {
		if err := s.configStore.Set(keyUserAgent, settings.Fetch.UserAgent); err != nil {
			return fmt.Errorf("save user agent: %w", err)
		}
	}
	if err := s.configStore.Set(keyMaxBodyBytes, settings.Fetch.MaxBodyBytes); err != nil {
		return fmt.Errorf("save max body bytes: %w", err)
	}
	if err := s.configStore.Set(keyRatePerSecond, settings.Fetch.RatePerSecond); err != nil {
		return fmt.Errorf("save rate per second: %w", err)
	}

	// Save history settings
	if err := s.configStore.Set(keyHistoryEnabled, settings.History.Enabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}
	if err := s.configStore.Set(keyHistoryLimit, settings.History.Limit); err != nil {
		return fmt.Errorf("save history limit: %w", err)
	}

	// Save enrich settings; credentials are only written when set
	if err := s.configStore.Set(keyEnrichGitHub, settings.Enrich.GitHub); err != nil {
		return fmt.Errorf("save github enrich: %w", err)
	}
	if settings.Enrich.GitHubToken != "" {
		if err := s.configStore.Set(keyGitHubToken, settings.Enrich.GitHubToken); err != nil {
			return fmt.Errorf("save github token: %w", err)
		}
	}
	if settings.Enrich.YouTubeAPIKey != "" {
		if err := s.configStore.Set(keyYouTubeAPIKey, settings.Enrich.YouTubeAPIKey); err != nil {
			return fmt.Errorf("save youtube api key: %w", err)
		}
	}

	return nil
}

// SetPolicy updates the render policy.
func (s *SettingsService) SetPolicy(policy domain.RenderPolicy) error {
	if !policy.IsValid() {
		return fmt.Errorf("invalid render policy: %s", policy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Preview.Policy = policy
	return s.Save(settings)
}

// SetRequestTimeout updates the fetch timeout.
func (s *SettingsService) SetRequestTimeout(timeout time.Duration) error {
	if timeout < minRequestTimeout {
		return fmt.Errorf("request timeout %s is below minimum %s: %w", timeout, minRequestTimeout, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Preview.RequestTimeout = timeout
	return s.Save(settings)
}

// SetEnableAnimation toggles the layout transition hint.
func (s *SettingsService) SetEnableAnimation(enabled bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Preview.EnableAnimation = enabled
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Preview.Policy.IsValid() {
		return fmt.Errorf("invalid render policy: %s", settings.Preview.Policy)
	}
	if settings.Preview.RequestTimeout < minRequestTimeout {
		return fmt.Errorf("request timeout %s is below minimum %s", settings.Preview.RequestTimeout, minRequestTimeout)
	}
	if settings.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", settings.Fetch.MaxBodyBytes)
	}
	if settings.Fetch.RatePerSecond <= 0 {
		return fmt.Errorf("fetch rate must be positive, got %d", settings.Fetch.RatePerSecond)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Reload re-reads the config store, picking up external edits.
func (s *SettingsService) Reload() error {
	if err := s.configStore.Load(); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPolicy(defaultVal domain.RenderPolicy) domain.RenderPolicy {
	val := s.configStore.GetString(keyPolicy)
	if val == "" {
		return defaultVal
	}
	policy := domain.RenderPolicy(val)
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
