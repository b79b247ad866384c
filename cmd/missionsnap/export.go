package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seabed-systems/missionsnap/internal/export"
	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/internal/snapshot"
	"github.com/seabed-systems/missionsnap/internal/sqlite"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

func newExportCmd() *cobra.Command {
	var (
		missionID   string
		missionName string
		dbPath      string
		outDir      string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one mission's row tree to a snapshot directory",
		Long: `Export walks the survey schema in dependency order and writes one JSONL
file per entity type containing every row reachable from the mission,
plus a manifest sealing the snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if missionID == "" && missionName == "" {
				return fmt.Errorf("one of --mission-id or --mission-name is required")
			}
			if dbPath == "" {
				dbPath = cfg.DBPath
			}

			store, err := sqlite.Open(dbPath, schema.Mission())
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if missionID == "" {
				missionID, err = lookupMissionByName(ctx, store, missionName)
				if err != nil {
					return err
				}
			}
			if outDir == "" {
				outDir = filepath.Join(cfg.SnapshotDir, missionID)
			}

			w, err := snapshot.NewWriter(outDir, missionID)
			if err != nil {
				return err
			}

			exporter := export.New(schema.Mission(), store, export.Strict(strict))
			total := 0
			err = exporter.Export(ctx, missionID, func(b types.Batch) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", b.Entity, len(b.Rows))
				total += len(b.Rows)
				return w.Emit(b)
			})
			if err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", total, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&missionID, "mission-id", "", "mission id to export")
	cmd.Flags().StringVar(&missionName, "mission-name", "", "mission name to export (exact match)")
	cmd.Flags().StringVar(&dbPath, "db", "", "source database path (default from config)")
	cmd.Flags().StringVar(&outDir, "out", "", "snapshot output directory (default: <snapshot_dir>/<mission-id>)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the mission does not exist instead of writing an empty snapshot")

	return cmd
}

// lookupMissionByName resolves a mission id from its exact name.
func lookupMissionByName(ctx context.Context, store *sqlite.Store, name string) (string, error) {
	ids, err := store.FetchIDs(ctx, types.EntityMissions, types.Predicate{
		Field:  "name",
		Values: []string{name},
	})
	if err != nil {
		return "", fmt.Errorf("look up mission %q: %w", name, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("mission %q: %w", name, types.ErrMissionNotFound)
	}
	if len(ids) > 1 {
		return "", fmt.Errorf("mission name %q matches %d missions, use --mission-id", name, len(ids))
	}
	return ids[0], nil
}
