package tagcache

import (
	"context"
	"encoding/binary"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"rockbox-tools/tagcache/internal/indexer"
	"rockbox-tools/tagcache/internal/metadata"
	"rockbox-tools/tagcache/internal/schema"
)

// BuildOptions configures a BuildDatabase run.
type BuildOptions struct {
	// HostPrefix is stripped from each discovered path before
	// DevicePrefix is prepended. Defaults to musicRoot when empty.
	HostPrefix string
	// DevicePrefix is the device-visible root prepended to every
	// filename tag, e.g. "/Music/".
	DevicePrefix string
	// GenreMap optionally canonicalises genre strings (exact,
	// case-sensitive key match; unmapped genres pass through).
	GenreMap map[string]string
	// Workers is the size of the extraction worker pool; 0 picks
	// runtime.NumCPU().
	Workers int
	// Logger receives progress messages. Defaults to DefaultLogger.
	Logger Logger
}

// BuildReport summarises a build: which files could not be read.
type BuildReport struct {
	Errors []MetadataFailure
}

// BuildDatabase walks musicRoot and assembles a fresh Database from the
// audio files found there (spec component F). Per-file metadata
// failures are collected on the returned BuildReport rather than
// aborting the walk.
func BuildDatabase(ctx context.Context, musicRoot string, opts BuildOptions) (*Database, *BuildReport, error) {
	hostPrefix := opts.HostPrefix
	if hostPrefix == "" {
		hostPrefix = musicRoot
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger{}
	}

	paths, err := indexer.Discover(musicRoot)
	if err != nil {
		return nil, nil, &IoFailure{Path: musicRoot, Err: err}
	}
	logger.Info("discovered %d files under %s", len(paths), musicRoot)

	reader := metadata.NewReader(metadata.PathRewrite{
		HostPrefix:   hostPrefix,
		DevicePrefix: opts.DevicePrefix,
	}, opts.GenreMap)

	result, err := indexer.Run(ctx, paths, reader, workers)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Errors) > 0 {
		logger.Error("%d files failed metadata extraction and were skipped", len(result.Errors))
	}

	stringTags := schema.StringTags()
	numericTags := schema.NumericTags()

	entries := make([]*Entry, len(result.Entries))
	for i, ie := range result.Entries {
		entry := NewEntry()
		for si, t := range stringTags {
			id := ie.StringIDs[si]
			if id >= 0 {
				entry.Strings[t.ID] = result.Tables[t.ID].Values[id]
			}
		}
		for ni, t := range numericTags {
			entry.Numerics[t.ID] = ie.Numerics[ni]
		}
		entries[i] = entry
	}

	report := &BuildReport{Errors: make([]MetadataFailure, 0, len(result.Errors))}
	for _, fe := range result.Errors {
		report.Errors = append(report.Errors, MetadataFailure{Path: fe.Path, Err: fe.Err})
	}

	db := &Database{Entries: entries, Serial: newSerial(paths)}
	logger.Info("built database with %d entries", len(db.Entries))
	return db, report, nil
}

// newSerial derives a build-identity serial for the header's "serial"
// field (spec.md §6: "monotonic build id, optional, 0 permitted") from
// the discovered, already-sorted paths via a version-5 (SHA-1,
// namespaced) UUID rather than a random one: the same music root must
// produce the same serial on every run, or every tag file and the
// master index would differ byte-for-byte between two builds of
// identical input, which spec.md §4.F and §8 both require not to
// happen. ParseDatabase preserves whatever serial it reads, so
// rewriting an unmodified database never goes through this path.
func newSerial(paths []string) uint32 {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(paths, "\n")))
	return binary.LittleEndian.Uint32(id[:4])
}
