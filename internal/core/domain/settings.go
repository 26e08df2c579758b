package domain

import "time"

const unknownDescription = "Unknown"

// RenderPolicy selects the visibility rule and text fallbacks used for a card.
type RenderPolicy string

// Available render policies.
const (
	// PolicyStrict shows a card only when a title or description exists,
	// and renders both as-is.
	PolicyStrict RenderPolicy = "strict"

	// PolicyLoose also shows a card when both link and domain exist,
	// falling back to link for the title and domain for the description.
	PolicyLoose RenderPolicy = "loose"
)

// IsValid returns true if the policy is recognised.
func (p RenderPolicy) IsValid() bool {
	switch p {
	case PolicyStrict, PolicyLoose:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p RenderPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p RenderPolicy) Description() string {
	switch p {
	case PolicyStrict:
		return "Strict (title or description required)"
	case PolicyLoose:
		return "Loose (falls back to link and domain)"
	default:
		return unknownDescription
	}
}

// AllRenderPolicies returns all available render policies.
func AllRenderPolicies() []RenderPolicy {
	return []RenderPolicy{PolicyStrict, PolicyLoose}
}

// PreviewSettings holds lifecycle and rendering configuration.
type PreviewSettings struct {
	// RequestTimeout bounds each fetch.
	RequestTimeout time.Duration

	// EnableAnimation triggers the layout transition hint on accepted results.
	EnableAnimation bool

	// Policy is the card visibility and text fallback rule.
	Policy RenderPolicy
}

// FetchSettings holds configuration for the HTTP fetch collaborator.
type FetchSettings struct {
	// UserAgent overrides the default User-Agent header when non-empty.
	UserAgent string

	// MaxBodyBytes caps how much of a page is read.
	MaxBodyBytes int

	// RatePerSecond caps outgoing page fetches.
	RatePerSecond int
}

// HistorySettings controls recording of accepted previews.
type HistorySettings struct {
	// Enabled indicates whether accepted previews are recorded.
	Enabled bool

	// Limit is how many entries are listed by default.
	Limit int
}

// EnrichSettings controls API lookups that refine previews of known sites.
type EnrichSettings struct {
	// GitHub replaces scraped repository metadata with GitHub API data.
	GitHub bool

	// GitHubToken authenticates GitHub API calls. Optional.
	GitHubToken string

	// YouTubeAPIKey enables YouTube Data API lookups when set.
	YouTubeAPIKey string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Preview holds lifecycle and rendering settings.
	Preview PreviewSettings

	// Fetch holds fetch collaborator settings.
	Fetch FetchSettings

	// History holds preview history settings.
	History HistorySettings

	// Enrich holds site-specific lookup settings.
	Enrich EnrichSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Preview: PreviewSettings{
			RequestTimeout:  DefaultRequestTimeout,
			EnableAnimation: false,
			Policy:          PolicyStrict,
		},
		Fetch: FetchSettings{
			MaxBodyBytes:  1 << 20,
			RatePerSecond: 4,
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   50,
		},
		Enrich: EnrichSettings{
			GitHub: true,
		},
	}
}
