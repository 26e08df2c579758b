package driven

// ConfigStore holds flat, dot-separated settings keys such as
// "preview.policy". The file adapter maps each key prefix to a TOML table.
type ConfigStore interface {
	// Get returns the raw value for key and whether it is present.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string value.
	GetString(key string) string

	// GetInt returns 0 for a missing or non-numeric value.
	GetInt(key string) int

	// GetBool returns false for a missing or non-boolean value.
	GetBool(key string) bool

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the in-memory values with what storage holds.
	// It is called again when the config file changes on disk.
	Load() error

	// Path returns the backing file, or ":memory:" for stores without one.
	Path() string
}
