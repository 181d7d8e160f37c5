package config

import (
	"fmt"

	"github.com/bnema/dockpop/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk. Callbacks
// registered with OnConfigChange run only when the effective settings
// changed. Calling Watch twice is a no-op.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	m.viper.OnConfigChange(m.handleFileEvent)
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange registers a callback run after a reload changed the config.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) handleFileEvent(e fsnotify.Event) {
	log := logging.NewFromEnv().With().Str("component", "config-watch").Logger()
	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file event")

	m.mu.Lock()
	var before Config
	if m.config != nil {
		before = *m.config
	}

	if m.skipNextReload {
		// Save already installed the new config; viper only needs to catch up.
		m.skipNextReload = false
		if err := m.viper.ReadInConfig(); err != nil {
			log.Warn().Err(err).Msg("failed to sync viper after save")
		}
	} else if err := m.reload(); err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config reload failed, keeping previous settings")
		return
	}

	after := *m.config
	callbacks := append(([]func(*Config))(nil), m.callbacks...)
	m.mu.Unlock()

	if after == before {
		log.Debug().Msg("config unchanged")
		return
	}
	for _, callback := range callbacks {
		c := after
		callback(&c)
	}
}

// reload rereads the file. Must be called with m.mu held for write. A file
// that fails validation leaves the previous configuration in place.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
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
