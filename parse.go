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

// ParseDatabase reads an existing TagCache database directory and
// reconstructs an in-memory Database with every TagRef already
// resolved to its direct string value (spec component D's second
// pass).
func ParseDatabase(dir string) (*Database, error) {
	indexPath := filepath.Join(dir, IndexFileName)
	indexBytes, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, &IoFailure{Path: indexPath, Err: err}
	}

	hdr, rawEntries, err := masterindex.Read(indexBytes, binfmt.LittleEndian)
	if err != nil {
		return nil, err
	}

	stringTags := schema.StringTags()
	numericTags := schema.NumericTags()

	tagData := make(map[schema.TagID]map[uint32]tagfile.Record, len(stringTags))
	for _, t := range stringTags {
		path := filepath.Join(dir, fmt.Sprintf("database_%d.tcd", t.FileIndex))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &IoFailure{Path: path, Err: err}
		}
		_, records, err := tagfile.Read(data, binfmt.LittleEndian)
		if err != nil {
			return nil, err
		}
		tagData[t.ID] = records
	}

	db := &Database{
		Entries: make([]*Entry, 0, len(rawEntries)),
		Serial:  hdr.Serial,
	}
	for _, raw := range rawEntries {
		entry := NewEntry()
		for si, t := range stringTags {
			ref := raw.TagRefs[si]
			if ref == masterindex.SentinelRef {
				continue
			}
			record, ok := tagData[t.ID][ref]
			if !ok {
				return nil, ErrBrokenRef
			}
			entry.Strings[t.ID] = record.Value
		}
		for ni, t := range numericTags {
			entry.Numerics[t.ID] = raw.Numerics[ni]
		}
		entry.Flags = raw.Flags
		db.Entries = append(db.Entries, entry)
	}
	return db, nil
}
