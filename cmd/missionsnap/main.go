// Package main provides the missionsnap CLI: export a mission's complete
// row tree from a survey database into a snapshot directory, or clone it
// into a target database under fresh identifiers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seabed-systems/missionsnap/internal/paths"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var (
	// configDirFlag is set by the --config-dir flag.
	configDirFlag string

	// cfg is loaded once by PersistentPreRunE and read by all subcommands.
	cfg types.Config
)

var rootCmd = &cobra.Command{
	Use:   "missionsnap",
	Short: "Export and clone survey missions",
	Long: `Missionsnap extracts the complete row tree of one mission from a survey
database: the mission itself, its areas, tracks, tasks, special points and
every further dependent, each exactly once even when reachable through
several relationship paths. Snapshots can be written to disk or cloned into
a target database under fresh identifiers.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGlobalConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default: .missionsnap or platform config dir)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newCloneCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}

// loadGlobalConfig resolves the config directory and loads config.yaml.
// The version command runs without configuration.
func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err = loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}
