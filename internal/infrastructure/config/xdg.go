package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "dockpop"
	configFileName = "config.toml"
	schemaFileName = "config.schema.json"
	databaseName   = "dockpop.sqlite"

	// homeEnv puts config and data under a single directory, for portable
	// installs and scratch runs.
	homeEnv = "DOCKPOP_HOME"
)

// Paths are the directories dockpop reads and writes.
type Paths struct {
	ConfigDir string
	DataDir   string
}

// ResolvePaths returns where dockpop keeps its files. $DOCKPOP_HOME wins;
// otherwise the XDG base directories are used. Relative XDG values are
// ignored, as the base directory spec requires.
func ResolvePaths() (Paths, error) {
	if home := os.Getenv(homeEnv); home != "" {
		return Paths{
			ConfigDir: filepath.Join(home, "config"),
			DataDir:   filepath.Join(home, "data"),
		}, nil
	}

	configDir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return Paths{}, err
	}
	dataDir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return Paths{}, err
	}
	return Paths{ConfigDir: configDir, DataDir: dataDir}, nil
}

func xdgDir(env string, fallback ...string) (string, error) {
	if dir := os.Getenv(env); filepath.IsAbs(dir) {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", env, err)
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// ConfigFile is the TOML file the manager loads.
func (p Paths) ConfigFile() string { return filepath.Join(p.ConfigDir, configFileName) }

// SchemaFile is the JSON schema written next to the config file.
func (p Paths) SchemaFile() string { return filepath.Join(p.ConfigDir, schemaFileName) }

// DatabaseFile is the default handoff payload database.
func (p Paths) DatabaseFile() string { return filepath.Join(p.DataDir, databaseName) }

// Ensure creates the config and data directories.
func (p Paths) Ensure() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// GetConfigDir returns the config directory.
func GetConfigDir() (string, error) {
	p, err := ResolvePaths()
	return p.ConfigDir, err
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	p, err := ResolvePaths()
	if err != nil {
		return "", err
	}
	return p.ConfigFile(), nil
}

// GetDatabaseFile returns the path to the handoff payload database.
func GetDatabaseFile() (string, error) {
	p, err := ResolvePaths()
	if err != nil {
		return "", err
	}
	return p.DatabaseFile(), nil
}

// EnsureDirectories creates the directories dockpop writes to.
func EnsureDirectories() error {
	p, err := ResolvePaths()
	if err != nil {
		return err
	}
	return p.Ensure()
}
