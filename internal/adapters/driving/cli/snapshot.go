package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the offline SQLite snapshot",
}

var snapshotPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Copy the lesson's documents into the offline snapshot",
	Long: `Read every term, interview and clip the lesson references from the
configured store and save them to the SQLite snapshot. Afterwards set
store.backend = "sqlite" to work offline.`,
	Args: cobra.NoArgs,
	RunE: runSnapshotPull,
}

var snapshotDir string

func init() {
	snapshotPullCmd.Flags().StringVar(&snapshotDir, "dir", "", "Snapshot directory (default store.sqlite_dir or ~/.crhp/data)")
	snapshotCmd.AddCommand(snapshotPullCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotPull(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	dir := snapshotDir
	if dir == "" {
		dir = rt.config.GetString(keySQLiteDir)
	}
	snap, err := sqlite.NewStore(dir)
	if err != nil {
		return err
	}
	defer snap.Close()

	collection := rt.resolver.Active()
	glossary := rt.config.GetString(keyGlossaryCollection)
	res, err := services.CopyLesson(ctx, rt.content, collection, glossary, rt.store, snap)
	if err != nil {
		return err
	}

	cmd.Printf("Copied %d documents (%d not in archive) to %s\n", res.Copied, res.Missing, snap.Path())

	strategy, _ := collections.Lookup(collection)
	if glossary == "" {
		glossary = collections.DefaultGlossaryCollection
	}
	for _, path := range []string{glossary, strategy.InterviewCollection} {
		n, err := snap.Count(ctx, path)
		if err != nil {
			return err
		}
		cmd.Printf("  %-22s %d\n", path, n)
	}
	return nil
}
