package tagcache

import (
	"fmt"
	"os"
	"path/filepath"

	"rockbox-tools/tagcache/internal/binfmt"
	"rockbox-tools/tagcache/internal/masterindex"
	"rockbox-tools/tagcache/internal/schema"
	"rockbox-tools/tagcache/internal/tagfile"
)

// IndexFileName is the on-disk name of the master-index file, matching
// the teacher's own TagCache convention.
const IndexFileName = "database_idx.tcd"

// stringTable is the write-time intern table: first-seen order over
// the Entries being serialised, exactly the order spec.md §5 requires
// for deterministic output.
type stringTable struct {
	values  []string
	index   map[string]int
	backRef []uint32 // backRef[id] = master-index offset of first referencing entry
}

func newStringTable() *stringTable {
	return &stringTable{index: make(map[string]int)}
}

func (t *stringTable) intern(s string, entryOffset uint32) int {
	if s == "" {
		return -1
	}
	if id, ok := t.index[s]; ok {
		return id
	}
	id := len(t.values)
	t.index[s] = id
	t.values = append(t.values, s)
	t.backRef = append(t.backRef, entryOffset)
	return id
}

// WriteDatabase serialises db into dir, one file per the master index
// plus one per string tag. The caller is responsible for clearing dir
// beforehand; on a write error the directory must be treated as
// invalid (spec.md §7) since files already flushed are not rolled
// back.
func WriteDatabase(db *Database, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IoFailure{Path: dir, Err: err}
	}

	stringTags := schema.StringTags()
	numericTags := schema.NumericTags()

	tables := make(map[schema.TagID]*stringTable, len(stringTags))
	for _, t := range stringTags {
		tables[t.ID] = newStringTable()
	}

	// Pass 1: intern every string tag across Entries in final order,
	// keeping each entry's intern ids in internIDs, and build the
	// master-index entries with numerics and flags only (their TagRefs
	// are patched to real offsets once tag files are laid out).
	internIDs := make([][]int, len(db.Entries))
	entries := make([]masterindex.Entry, len(db.Entries))
	for i, src := range db.Entries {
		offset := masterindex.Offset(i)
		ids := make([]int, len(stringTags))
		for si, t := range stringTags {
			ids[si] = tables[t.ID].intern(src.Strings[t.ID], offset)
		}
		internIDs[i] = ids

		me := masterindex.NewEntry()
		for ni, t := range numericTags {
			me.Numerics[ni] = src.Numerics[t.ID]
		}
		me.Flags = src.Flags
		entries[i] = me
	}

	// Pass 2: lay out each tag file, discovering the real offset each
	// interned string landed at, then patch those offsets into the
	// entries' TagRefs.
	tagFileData := make(map[schema.TagID][]byte, len(stringTags))
	for si, t := range stringTags {
		table := tables[t.ID]
		data, offsets, err := tagfile.Write(binfmt.LittleEndian, db.Serial, table.values, table.backRef)
		if err != nil {
			return err
		}
		tagFileData[t.ID] = data

		for i := range entries {
			id := internIDs[i][si]
			if id < 0 {
				entries[i].TagRefs[si] = masterindex.SentinelRef
			} else {
				entries[i].TagRefs[si] = offsets[id]
			}
		}
	}

	indexData := masterindex.Write(binfmt.LittleEndian, db.Serial, entries)

	for _, t := range stringTags {
		path := filepath.Join(dir, fmt.Sprintf("database_%d.tcd", t.FileIndex))
		if err := os.WriteFile(path, tagFileData[t.ID], 0o644); err != nil {
			return &IoFailure{Path: path, Err: err}
		}
	}
	indexPath := filepath.Join(dir, IndexFileName)
	if err := os.WriteFile(indexPath, indexData, 0o644); err != nil {
		return &IoFailure{Path: indexPath, Err: err}
	}
	return nil
}
