package config

import "time"

// File permission constants
const (
	dirPerm  = 0755 // rwxr-xr-x
	filePerm = 0644 // rw-r--r--
)

// Config represents the complete configuration for dockpop.
type Config struct {
	Popout  PopoutConfig  `mapstructure:"popout" toml:"popout"`
	Storage StorageConfig `mapstructure:"storage" toml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// PopoutConfig holds popout window behaviour.
type PopoutConfig struct {
	// BlockedPopoutsThrowError makes a blocked window a hard error instead
	// of a terminal Blocked state.
	BlockedPopoutsThrowError bool `mapstructure:"blocked_popouts_throw_error" toml:"blocked_popouts_throw_error" jsonschema:"default=false"`
	// PollIntervalMs is the readiness poll period of a freshly opened window.
	PollIntervalMs int `mapstructure:"poll_interval_ms" toml:"poll_interval_ms" jsonschema:"minimum=1,default=10"`
	// CloseDelayMs debounces window unload before the popout is closed.
	CloseDelayMs int `mapstructure:"close_delay_ms" toml:"close_delay_ms" jsonschema:"minimum=0,default=50"`
	// ReadinessTimeoutMs gives up on a window that never initialises.
	// 0 polls forever.
	ReadinessTimeoutMs int `mapstructure:"readiness_timeout_ms" toml:"readiness_timeout_ms" jsonschema:"minimum=0,default=30000" jsonschema_description:"Milliseconds to wait for a new window to initialise. 0 waits forever."`
	// BaseURL is the address new windows load; the handoff key is appended.
	BaseURL string `mapstructure:"base_url" toml:"base_url" jsonschema:"format=uri,default=http://localhost/"`
	// ClosePopoutsOnUnload closes every popout when the main layout goes away.
	ClosePopoutsOnUnload bool `mapstructure:"close_popouts_on_unload" toml:"close_popouts_on_unload" jsonschema:"default=true"`
	DefaultWidth         int  `mapstructure:"default_width" toml:"default_width" jsonschema:"minimum=1,default=640"`
	DefaultHeight        int  `mapstructure:"default_height" toml:"default_height" jsonschema:"minimum=1,default=480"`
}

// PollInterval returns PollIntervalMs as a duration.
func (p PopoutConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMs) * time.Millisecond
}

// CloseDelay returns CloseDelayMs as a duration.
func (p PopoutConfig) CloseDelay() time.Duration {
	return time.Duration(p.CloseDelayMs) * time.Millisecond
}

// ReadinessTimeout returns ReadinessTimeoutMs as a duration.
func (p PopoutConfig) ReadinessTimeout() time.Duration {
	return time.Duration(p.ReadinessTimeoutMs) * time.Millisecond
}

// StorageBackend selects where handoff payloads live.
type StorageBackend string

const (
	StorageBackendSQLite StorageBackend = "sqlite"
	StorageBackendMemory StorageBackend = "memory"
)

// StorageConfig holds handoff payload storage configuration.
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend" toml:"backend" jsonschema:"enum=sqlite,enum=memory,default=sqlite"`
	// Path is the sqlite database file. Empty means the XDG data directory.
	Path string `mapstructure:"path" toml:"path" jsonschema_description:"SQLite database file. Empty uses the XDG data directory."`
	// PayloadMaxAgeMinutes is the default age at which prune drops payloads.
	PayloadMaxAgeMinutes int `mapstructure:"payload_max_age_minutes" toml:"payload_max_age_minutes" jsonschema:"minimum=0,default=1440"`
}

// PayloadMaxAge returns PayloadMaxAgeMinutes as a duration.
func (s StorageConfig) PayloadMaxAge() time.Duration {
	return time.Duration(s.PayloadMaxAgeMinutes) * time.Minute
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled,default=info"`
	Format string `mapstructure:"format" toml:"format" jsonschema:"enum=console,enum=json,default=console"`
}
