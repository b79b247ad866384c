// Config loading for the missionsnap CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/seabed-systems/missionsnap/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDB          = "db"
	cfgKeyTargetDB    = "target_db"
	cfgKeySnapshotDir = "snapshot_dir"

	defaultBackend     = types.BackendSQLite
	defaultDBPath      = "survey.db"
	defaultSnapshotDir = "snapshots"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Missionsnap configuration

# Backend selection
backend: sqlite

# Source survey database (overridable by --db flag)
db: survey.db

# Target database for clone (overridable by --target flag)
# target_db:

# Directory for exported snapshots (overridable by --out flag)
snapshot_dir: snapshots
`

// loadConfig reads config.yaml from the config directory using Viper,
// creating the directory and a default config.yaml on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyDB, defaultDBPath)
	v.SetDefault(cfgKeySnapshotDir, defaultSnapshotDir)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		Backend:     v.GetString(cfgKeyBackend),
		DBPath:      v.GetString(cfgKeyDB),
		TargetPath:  v.GetString(cfgKeyTargetDB),
		SnapshotDir: v.GetString(cfgKeySnapshotDir),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
