package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/linkcard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/linkcard/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, 5*time.Second, settings.Preview.RequestTimeout)
	assert.False(t, settings.Preview.EnableAnimation)
	assert.Equal(t, domain.PolicyStrict, settings.Preview.Policy)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"preview.request_timeout_ms": 1500,
		"preview.enable_animation":   true,
		"preview.policy":             "loose",
		"fetch.user_agent":           "custom-agent",
		"fetch.max_body_bytes":       2048,
		"fetch.rate_per_second":      9,
		"history.enabled":            false,
		"history.limit":              7,
		"enrich.github":              false,
		"enrich.github_token":        "ghp_test",
		"enrich.youtube_api_key":     "yt-key",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, settings.Preview.RequestTimeout)
	assert.True(t, settings.Preview.EnableAnimation)
	assert.Equal(t, domain.PolicyLoose, settings.Preview.Policy)
	assert.Equal(t, "custom-agent", settings.Fetch.UserAgent)
	assert.Equal(t, 2048, settings.Fetch.MaxBodyBytes)
	assert.Equal(t, 9, settings.Fetch.RatePerSecond)
	assert.False(t, settings.History.Enabled)
	assert.Equal(t, 7, settings.History.Limit)
	assert.False(t, settings.Enrich.GitHub)
	assert.Equal(t, "ghp_test", settings.Enrich.GitHubToken)
	assert.Equal(t, "yt-key", settings.Enrich.YouTubeAPIKey)
}

func TestSettingsService_Get_InvalidPolicyReturnsDefault(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{"preview.policy": "fancy"})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.PolicyStrict, settings.Preview.Policy)
}

func TestSettingsService_GetBool_WithoutKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.True(t, service.getBool("missing", true))
	assert.False(t, service.getBool("missing", false))
}

func TestSettingsService_GetInt_WithZeroValue(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{"history.limit": 0})
	service := NewSettingsService(store)

	// Zero is treated as unset.
	assert.Equal(t, 50, service.getInt("history.limit", 50))
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Preview.RequestTimeout = 2500 * time.Millisecond
	settings.Preview.Policy = domain.PolicyLoose
	settings.Fetch.UserAgent = "agent/1.0"
	settings.History.Limit = 20

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, 2500, store.GetInt("preview.request_timeout_ms"))
	assert.Equal(t, "loose", store.GetString("preview.policy"))
	assert.Equal(t, "agent/1.0", store.GetString("fetch.user_agent"))
	assert.Equal(t, 20, store.GetInt("history.limit"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_EmptyUserAgentNotWritten(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	_, exists := store.Get("fetch.user_agent")
	assert.False(t, exists)
}

func TestSettingsService_SetPolicy(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetPolicy(domain.PolicyLoose))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyLoose, settings.Preview.Policy)
}

func TestSettingsService_SetPolicy_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.SetPolicy(domain.RenderPolicy("fancy"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid render policy")
}

func TestSettingsService_SetRequestTimeout(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetRequestTimeout(750*time.Millisecond))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, settings.Preview.RequestTimeout)
}

func TestSettingsService_SetRequestTimeout_TooShort(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	err := service.SetRequestTimeout(10 * time.Millisecond)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetEnableAnimation(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetEnableAnimation(true))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.True(t, settings.Preview.EnableAnimation)

	require.NoError(t, service.SetEnableAnimation(false))
	settings, err = service.Get()
	require.NoError(t, err)
	assert.False(t, settings.Preview.EnableAnimation)
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{name: "defaults", values: map[string]any{}},
		{name: "short timeout", values: map[string]any{"preview.request_timeout_ms": 5}, wantErr: "below minimum"},
		{name: "negative body", values: map[string]any{"fetch.max_body_bytes": -1}, wantErr: "max body bytes"},
		{name: "negative rate", values: map[string]any{"fetch.rate_per_second": -3}, wantErr: "fetch rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStoreWith(tt.values))

			err := service.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

type failingLoadStore struct {
	*memory.ConfigStore
}

func (failingLoadStore) Load() error {
	return errors.New("unreadable")
}

func TestSettingsService_Reload(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.NoError(t, service.Reload())
}

func TestSettingsService_Reload_Error(t *testing.T) {
	service := NewSettingsService(failingLoadStore{memory.NewConfigStore()})

	err := service.Reload()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload settings")
}

func TestSettingsService_Save_CredentialsOnlyWhenSet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))

	_, hasToken := store.Get("enrich.github_token")
	_, hasKey := store.Get("enrich.youtube_api_key")
	assert.False(t, hasToken)
	assert.False(t, hasKey)

	settings.Enrich.GitHubToken = "ghp_x"
	settings.Enrich.YouTubeAPIKey = "yt"
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "ghp_x", got.Enrich.GitHubToken)
	assert.Equal(t, "yt", got.Enrich.YouTubeAPIKey)
}
