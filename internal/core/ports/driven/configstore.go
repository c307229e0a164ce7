package driven

// ConfigStore persists user configuration as key-value pairs.
// The core pipeline never reads the process environment; the CLI layer
// assembles explicit settings from this store.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value ("" if unset).
	GetString(key string) string

	// GetInt retrieves an integer configuration value (0 if unset).
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value (false if unset).
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Save persists the configuration.
	Save() error

	// Load reads the configuration from disk.
	Load() error
}
