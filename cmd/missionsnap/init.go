package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/internal/sqlite"
)

func newInitCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty survey database",
		Long:  "Create the survey tables in the configured database if they do not exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.DBPath
			}

			store, err := sqlite.Open(dbPath, schema.Mission())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized survey database at %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default from config)")
	return cmd
}
