// Package paths resolves the missionsnap configuration directory from flag,
// environment, or platform defaults.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDirName is the CWD-relative config directory used when no
// override is active.
const DefaultConfigDirName = ".missionsnap"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "MISSIONSNAP_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/missionsnap (fallback ~/.config/missionsnap)
// macOS:   ~/Library/Application Support/missionsnap
// Windows: %APPDATA%/missionsnap
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "missionsnap"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "missionsnap"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "missionsnap"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > MISSIONSNAP_CONFIG_DIR env > CWD-relative
// .missionsnap if it exists > platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	if _, err := os.Stat(DefaultConfigDirName); err == nil {
		return filepath.Abs(DefaultConfigDirName)
	}
	return DefaultConfigDir()
}
