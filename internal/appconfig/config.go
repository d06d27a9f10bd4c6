// Package appconfig loads configuration for the CLI layer from a .env
// file, environment variables and command-line flags, in that order of
// increasing precedence — the same pattern the teacher's own
// internal/config package uses.
package appconfig

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings the build/parse/migrate subcommands need.
type Config struct {
	MusicRoot    string
	OutputDir    string
	DevicePrefix string
	HostPrefix   string
	Workers      int
	GenreMapPath string
	OldDBPath    string
}

// New loads a Config from .env (if present), environment variables and
// command-line flags.
func New(args []string) (*Config, error) {
	_ = godotenv.Load() // ignore error if .env doesn't exist

	fs := flag.NewFlagSet("tagcache", flag.ContinueOnError)
	musicRoot := fs.String("music-root", getEnv("TAGCACHE_MUSIC_ROOT", ""), "Root directory of the music collection to index")
	outputDir := fs.String("output", getEnv("TAGCACHE_OUTPUT", ""), "Directory to write the database into")
	devicePrefix := fs.String("device-prefix", getEnv("TAGCACHE_DEVICE_PREFIX", "/Music/"), "Device-visible path prefix for filenames")
	hostPrefix := fs.String("host-prefix", getEnv("TAGCACHE_HOST_PREFIX", ""), "Host path prefix to strip; defaults to music-root")
	workers := fs.Int("workers", 0, "Number of extraction workers (0 = number of CPUs)")
	genreMapPath := fs.String("genre-map", getEnv("TAGCACHE_GENRE_MAP", ""), "Path to a JSON genre canonicalisation map")
	oldDBPath := fs.String("old-db", getEnv("TAGCACHE_OLD_DB", ""), "Path to a prior database directory to migrate stats from")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		MusicRoot:    *musicRoot,
		OutputDir:    *outputDir,
		DevicePrefix: *devicePrefix,
		HostPrefix:   *hostPrefix,
		Workers:      *workers,
		GenreMapPath: *genreMapPath,
		OldDBPath:    *oldDBPath,
	}, nil
}

// Validate checks that the fields a build needs are present.
func (c *Config) Validate() error {
	if c.MusicRoot == "" {
		return fmt.Errorf("music root not provided")
	}
	if _, err := os.Stat(c.MusicRoot); err != nil {
		return fmt.Errorf("music root does not exist: %s", c.MusicRoot)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory not provided")
	}
	return nil
}

// LoadGenreMap reads the JSON object at path into a case-sensitive
// genre canonicalisation map for tagcache.BuildOptions.GenreMap. An
// empty path is not an error; it yields a nil map, meaning no
// canonicalisation.
func LoadGenreMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading genre map: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing genre map %s: %w", path, err)
	}
	return m, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
