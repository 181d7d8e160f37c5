// Package config loads, validates and watches the dockpop TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// DOCKPOP_POPOUT_POLL_INTERVAL_MS, DOCKPOP_STORAGE_BACKEND, ...
	v.SetEnvPrefix("DOCKPOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same variables logging.NewFromEnv reads before config is loaded.
	if err := v.BindEnv("logging.level", "DOCKPOP_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKPOP_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKPOP_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKPOP_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A default file is written on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}

		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Storage.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Storage.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	switch StorageBackend(strings.ToLower(string(config.Storage.Backend))) {
	case "", StorageBackendSQLite:
		config.Storage.Backend = StorageBackendSQLite
	case StorageBackendMemory:
		config.Storage.Backend = StorageBackendMemory
	}

	config.Popout.BaseURL = strings.TrimSpace(config.Popout.BaseURL)
	if config.Popout.BaseURL == "" {
		config.Popout.BaseURL = defaultBaseURL
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save writes cfg to the config file and makes it current.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		var err error
		if configFile, err = GetConfigFile(); err != nil {
			return err
		}
	}
	if err := WriteConfigOrdered(cfg, configFile); err != nil {
		return err
	}

	configCopy := *cfg
	m.config = &configCopy
	if m.watching {
		// The write fires a change event; the in-memory config is already
		// correct.
		m.skipNextReload = true
		return nil
	}
	return m.viper.ReadInConfig()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the default file and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	paths, err := ResolvePaths()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(paths.ConfigDir, dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), paths.ConfigFile()); err != nil {
		return err
	}
	return WriteSchemaFile(paths.SchemaFile())
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setPopoutDefaults(defaults)
	m.setStorageDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setPopoutDefaults(defaults *Config) {
	m.viper.SetDefault("popout.blocked_popouts_throw_error", defaults.Popout.BlockedPopoutsThrowError)
	m.viper.SetDefault("popout.poll_interval_ms", defaults.Popout.PollIntervalMs)
	m.viper.SetDefault("popout.close_delay_ms", defaults.Popout.CloseDelayMs)
	m.viper.SetDefault("popout.readiness_timeout_ms", defaults.Popout.ReadinessTimeoutMs)
	m.viper.SetDefault("popout.base_url", defaults.Popout.BaseURL)
	m.viper.SetDefault("popout.close_popouts_on_unload", defaults.Popout.ClosePopoutsOnUnload)
	m.viper.SetDefault("popout.default_width", defaults.Popout.DefaultWidth)
	m.viper.SetDefault("popout.default_height", defaults.Popout.DefaultHeight)
}

func (m *Manager) setStorageDefaults(defaults *Config) {
	m.viper.SetDefault("storage.backend", string(defaults.Storage.Backend))
	m.viper.SetDefault("storage.path", defaults.Storage.Path)
	m.viper.SetDefault("storage.payload_max_age_minutes", defaults.Storage.PayloadMaxAgeMinutes)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
