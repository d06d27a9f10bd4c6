// Package indexer implements the indexing pipeline (spec component F):
// a parallel file walk and metadata extraction feeding a single,
// deterministic collector that interns strings and assembles Entries.
package indexer

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"rockbox-tools/tagcache/internal/metadata"
	"rockbox-tools/tagcache/internal/schema"
)

// FileError records a per-file extraction failure. These are non-fatal:
// the file is skipped and the walk continues (spec.md §4.F step 2).
type FileError struct {
	Path string
	Err  error
}

// InternTable is a per-tag string table: an ordered, first-seen list of
// unique values plus the lookup index that makes interning O(1).
// Ordered first-seen assignment gives I5 (uniqueness) trivially and
// makes every run with the same inputs produce the same ids.
type InternTable struct {
	Values []string
	index  map[string]int
}

func newInternTable() *InternTable {
	return &InternTable{index: make(map[string]int)}
}

// Intern returns the id for s, allocating a new one on first sight.
// The empty string is never interned — it represents "absent" and is
// encoded as id -1, which callers map to the sentinel TagRef rather
// than allocating a zero-length TagString (spec.md §8 boundary case).
func (t *InternTable) Intern(s string) int {
	if s == "" {
		return -1
	}
	if id, ok := t.index[s]; ok {
		return id
	}
	id := len(t.Values)
	t.Values = append(t.Values, s)
	t.index[s] = id
	return id
}

// Entry is one track with string fields as intern ids (-1 for absent)
// rather than resolved TagRefs. tagcache.BuildDatabase turns the ids
// back into strings; offsets are assigned at serialisation time by
// tagcache.WriteDatabase, per spec.md §9.
type Entry struct {
	StringIDs []int    // indexed like schema.StringTags()
	Numerics  []uint32 // indexed like schema.NumericTags()
}

// Result is the output of a full indexing run.
type Result struct {
	Entries []Entry
	Tables  map[schema.TagID]*InternTable
	Errors  []FileError
}

// Discover recursively enumerates regular files under root in a stable,
// deterministic walk order (spec.md §4.F step 1).
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

type outcome struct {
	seq int
	raw metadata.Raw
	err error
}

// Run extracts metadata for every path in parallel using workers
// goroutines, then performs a single-threaded, sequentially-ordered
// interning pass so output is deterministic regardless of which worker
// finished first (spec.md §5's ordering guarantee).
func Run(ctx context.Context, paths []string, reader *metadata.Reader, workers int) (*Result, error) {
	if workers < 1 {
		workers = 1
	}
	n := len(paths)
	raws := make([]*metadata.Raw, n)
	var fileErrors []FileError

	if n > 0 {
		bufSize := workers * 4
		if bufSize > n {
			bufSize = n
		}
		jobs := make(chan int, bufSize)
		outcomes := make(chan outcome, bufSize)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer close(jobs)
			for i := range paths {
				select {
				case jobs <- i:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				for {
					select {
					case i, ok := <-jobs:
						if !ok {
							return nil
						}
						raw, err := reader.Read(paths[i])
						select {
						case outcomes <- outcome{seq: i, raw: raw, err: err}:
						case <-gctx.Done():
							return gctx.Err()
						}
					case <-gctx.Done():
						return gctx.Err()
					}
				}
			})
		}
		go func() {
			_ = g.Wait()
			close(outcomes)
		}()

		for oc := range outcomes {
			if oc.err != nil {
				fileErrors = append(fileErrors, FileError{Path: paths[oc.seq], Err: oc.err})
				continue
			}
			r := oc.raw
			raws[oc.seq] = &r
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	tables := make(map[schema.TagID]*InternTable, len(schema.StringTags()))
	for _, t := range schema.StringTags() {
		tables[t.ID] = newInternTable()
	}

	entries := make([]Entry, 0, n)
	stringTags := schema.StringTags()
	numericTags := schema.NumericTags()
	for i := 0; i < n; i++ {
		raw := raws[i]
		if raw == nil {
			continue // extraction failed for this path, already recorded
		}
		e := Entry{
			StringIDs: make([]int, len(stringTags)),
			Numerics:  make([]uint32, len(numericTags)),
		}
		for si, t := range stringTags {
			e.StringIDs[si] = tables[t.ID].Intern(raw.Strings[t.ID])
		}
		for ni, t := range numericTags {
			e.Numerics[ni] = raw.Numerics[t.ID]
		}
		entries = append(entries, e)
	}

	return &Result{Entries: entries, Tables: tables, Errors: fileErrors}, nil
}
