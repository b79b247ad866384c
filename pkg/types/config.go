package types

import "errors"

// Config holds backend selection and store locations for the missionsnap
// commands.
type Config struct {
	Backend     string `json:"backend" yaml:"backend"`
	DBPath      string `json:"db" yaml:"db"`
	TargetPath  string `json:"target_db" yaml:"target_db,omitempty"`
	SnapshotDir string `json:"snapshot_dir" yaml:"snapshot_dir,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDBPathEmpty    = errors.New("db path must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	return nil
}
