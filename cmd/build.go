package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rockbox-tools/tagcache"
	"rockbox-tools/tagcache/internal/appconfig"
	"rockbox-tools/tagcache/pkg/util"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a TagCache database from a music directory",
	Long: `build walks --music-root, extracts tags from every audio file found
there, and writes a fresh TagCache database to --output.

If --old-db points at an existing database directory, runtime
statistics (play count, rating, play time, last played, commit id) are
migrated onto matching entries by filename before the result is
written.

Example:
  tagcache build --music-root /Volumes/IPOD/Music --output /Volumes/IPOD/.rockbox`,
	Run: func(cmd *cobra.Command, args []string) {
		runBuild()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().String("device-prefix", "/Music/", "Device-visible path prefix for filenames")
	buildCmd.Flags().String("host-prefix", "", "Host path prefix to strip; defaults to music-root")
	buildCmd.Flags().Int("workers", 0, "Number of extraction workers (0 = number of CPUs)")
	buildCmd.Flags().String("old-db", "", "Path to a prior database directory to migrate stats from")
	buildCmd.Flags().String("genre-map", "", "Path to a JSON genre canonicalisation map")
}

func runBuild() {
	musicRoot := rootCmd.PersistentFlags().Lookup("music-root").Value.String()
	output := rootCmd.PersistentFlags().Lookup("output").Value.String()
	devicePrefix, _ := buildCmd.Flags().GetString("device-prefix")
	hostPrefix, _ := buildCmd.Flags().GetString("host-prefix")
	workers, _ := buildCmd.Flags().GetInt("workers")
	oldDBPath, _ := buildCmd.Flags().GetString("old-db")
	genreMapPath, _ := buildCmd.Flags().GetString("genre-map")

	cfg := &appconfig.Config{
		MusicRoot:    musicRoot,
		OutputDir:    output,
		DevicePrefix: devicePrefix,
		HostPrefix:   hostPrefix,
		Workers:      workers,
		OldDBPath:    oldDBPath,
		GenreMapPath: genreMapPath,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
		return
	}
	genreMap, err := appconfig.LoadGenreMap(cfg.GenreMapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
		return
	}

	logger := tagcache.DefaultLogger{}
	db, report, err := tagcache.BuildDatabase(context.Background(), cfg.MusicRoot, tagcache.BuildOptions{
		HostPrefix:   cfg.HostPrefix,
		DevicePrefix: cfg.DevicePrefix,
		GenreMap:     genreMap,
		Workers:      cfg.Workers,
		Logger:       logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: build failed: %v\n", err)
		osExit(1)
		return
	}
	for _, fail := range report.Errors {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", fail.Path, fail.Err)
	}

	if cfg.OldDBPath != "" {
		oldDB, err := tagcache.ParseDatabase(cfg.OldDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read old database for migration: %v\n", err)
			osExit(1)
			return
		}
		var warnings []tagcache.Warning
		db, warnings = tagcache.MigrateStats(oldDB, db)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "migrate: duplicate filename %q in %s side, first match kept\n", w.Filename, w.Side)
		}
	}

	if err := util.EnsureDirectoryExists(cfg.OutputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
		return
	}
	if err := tagcache.WriteDatabase(db, cfg.OutputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write database: %v\n", err)
		osExit(1)
		return
	}

	fmt.Printf("wrote %d entries to %s\n", len(db.Entries), cfg.OutputDir)
}
