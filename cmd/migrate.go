package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rockbox-tools/tagcache"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <old-db-dir> <new-db-dir>",
	Short: "Copy runtime statistics from one database onto another by filename",
	Long: `migrate reads two TagCache databases, matches their entries by
filename, and copies old's play count, rating, play time, last played
and commit id onto the matching entries of new. The result is written
back over new-db-dir.

Example:
  tagcache migrate /backup/.rockbox /Volumes/IPOD/.rockbox`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(oldDir, newDir string) {
	oldDB, err := tagcache.ParseDatabase(oldDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse old database: %v\n", err)
		osExit(1)
		return
	}
	newDB, err := tagcache.ParseDatabase(newDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse new database: %v\n", err)
		osExit(1)
		return
	}

	merged, warnings := tagcache.MigrateStats(oldDB, newDB)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "migrate: duplicate filename %q in %s side, first match kept\n", w.Filename, w.Side)
	}

	if err := tagcache.WriteDatabase(merged, newDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write migrated database: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("migrated statistics onto %d entries in %s\n", len(merged.Entries), newDir)
}
