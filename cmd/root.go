// Package cmd provides the CLI entry points for the tagcache tool.
// This layer is deliberately thin: it only gathers flags and calls the
// root tagcache package, carrying none of the codec or indexing logic
// itself (spec.md §1 treats thin CLI entry points as an external
// collaborator, not part of the core).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// osExit is a seam for tests, mirroring the teacher's cmd package.
var osExit = os.Exit

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tagcache",
	Short: "Build, parse and migrate Rockbox TagCache databases",
	Long: `tagcache builds the Rockbox firmware TagCache database (schema 4.0)
from a directory of audio files, parses an existing database back into
plain text, and migrates runtime statistics (play counts, ratings,
last-played times) across a rebuild.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tagcache/config.yaml)")
	rootCmd.PersistentFlags().String("music-root", "", "Root directory of the music collection")
	rootCmd.PersistentFlags().String("output", "", "Database output directory")

	_ = viper.BindPFlag("music_root", rootCmd.PersistentFlags().Lookup("music-root"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		configDir := home + "/.tagcache"
		_ = os.MkdirAll(configDir, 0o755)
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TAGCACHE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
