// Package cmd provides CLI commands for the tagcache tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rockbox-tools/tagcache"
	"rockbox-tools/tagcache/internal/schema"
)

var parseCmd = &cobra.Command{
	Use:   "parse <database-dir>",
	Short: "Parse an existing TagCache database and print its entries",
	Long: `parse reads an existing TagCache database directory, resolves every
TagRef back to a plain string, and prints one line per entry.

Example:
  tagcache parse /Volumes/IPOD/.rockbox`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runParse(args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(dir string) {
	db, err := tagcache.ParseDatabase(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse database: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("serial: %d\n", db.Serial)
	fmt.Printf("entries: %d\n\n", len(db.Entries))
	for i, e := range db.Entries {
		fmt.Printf("%d: %s - %s (%s)\n", i, e.Strings[schema.Artist], e.Strings[schema.Title], e.Strings[schema.Filename])
	}
}
