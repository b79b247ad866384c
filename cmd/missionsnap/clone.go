package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/seabed-systems/missionsnap/internal/clone"
	"github.com/seabed-systems/missionsnap/internal/export"
	"github.com/seabed-systems/missionsnap/internal/schema"
	"github.com/seabed-systems/missionsnap/internal/snapshot"
	"github.com/seabed-systems/missionsnap/internal/sqlite"
	"github.com/seabed-systems/missionsnap/pkg/types"
)

func newCloneCmd() *cobra.Command {
	var (
		missionID   string
		missionName string
		dbPath      string
		targetPath  string
		snapshotDir string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Clone one mission into a target database under fresh ids",
		Long: `Clone exports the mission's row tree (or reads a previously written
snapshot) and inserts it into the target database. Every row receives a
new id; foreign keys are remapped accordingly, and references to rows
outside the snapshot are nulled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = cfg.TargetPath
			}
			if targetPath == "" {
				return fmt.Errorf("a target database is required (--target flag or target_db config key)")
			}

			graph := schema.Mission()
			ctx := cmd.Context()

			var batches []types.Batch
			switch {
			case snapshotDir != "":
				manifest, read, err := snapshot.Read(snapshotDir)
				if err != nil {
					return err
				}
				batches = read
				fmt.Fprintf(cmd.OutOrStdout(), "Read snapshot of mission %s from %s\n", manifest.MissionID, snapshotDir)
			default:
				if missionID == "" && missionName == "" {
					return fmt.Errorf("one of --mission-id, --mission-name or --snapshot is required")
				}
				if dbPath == "" {
					dbPath = cfg.DBPath
				}
				source, err := sqlite.Open(dbPath, graph)
				if err != nil {
					return err
				}
				defer source.Close()

				if missionID == "" {
					missionID, err = lookupMissionByName(ctx, source, missionName)
					if err != nil {
						return err
					}
				}
				// Cloning an absent mission is always a fault.
				batches, err = export.New(graph, source, export.Strict(true)).ExportAll(ctx, missionID)
				if err != nil {
					return err
				}
			}

			target, err := sqlite.Open(targetPath, graph)
			if err != nil {
				return err
			}
			defer target.Close()
			if err := target.Init(); err != nil {
				return err
			}

			idMap, err := clone.New(graph, target, clone.DryRun(dryRun)).Clone(ctx, batches)
			if err != nil {
				return err
			}

			printCloneSummary(cmd, idMap)
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "Dry run: no rows were inserted.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&missionID, "mission-id", "", "mission id to clone")
	cmd.Flags().StringVar(&missionName, "mission-name", "", "mission name to clone (exact match)")
	cmd.Flags().StringVar(&dbPath, "db", "", "source database path (default from config)")
	cmd.Flags().StringVar(&targetPath, "target", "", "target database path (default from config)")
	cmd.Flags().StringVar(&snapshotDir, "snapshot", "", "clone from a snapshot directory instead of the source database")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "walk and remap without inserting")

	return cmd
}

// printCloneSummary lists mapped row counts per entity type, skipping empty
// ones.
func printCloneSummary(cmd *cobra.Command, idMap clone.IDMap) {
	entities := make([]string, 0, len(idMap))
	for entity := range idMap {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	total := 0
	for _, entity := range entities {
		n := len(idMap[entity])
		if n == 0 {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows mapped\n", entity, n)
		total += n
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cloned %d rows.\n", total)
}
