package config

// Default configuration constants
const (
	// Popout defaults
	defaultPollIntervalMs     = 10
	defaultCloseDelayMs       = 50
	defaultReadinessTimeoutMs = 30000
	defaultBaseURL            = "http://localhost/"
	defaultPopoutWidth        = 640
	defaultPopoutHeight       = 480

	// Storage defaults
	defaultPayloadMaxAgeMinutes = 24 * 60 // 1 day

	// Logging defaults
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// DefaultConfig returns the default configuration values for dockpop.
func DefaultConfig() *Config {
	return &Config{
		Popout: PopoutConfig{
			BlockedPopoutsThrowError: false,
			PollIntervalMs:           defaultPollIntervalMs,
			CloseDelayMs:             defaultCloseDelayMs,
			ReadinessTimeoutMs:       defaultReadinessTimeoutMs,
			BaseURL:                  defaultBaseURL,
			ClosePopoutsOnUnload:     true,
			DefaultWidth:             defaultPopoutWidth,
			DefaultHeight:            defaultPopoutHeight,
		},
		Storage: StorageConfig{
			Backend:              StorageBackendSQLite,
			PayloadMaxAgeMinutes: defaultPayloadMaxAgeMinutes,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// New returns a new default configuration instance.
func New() *Config {
	return DefaultConfig()
}
