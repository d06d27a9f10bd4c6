package tagcache

import "rockbox-tools/tagcache/internal/schema"

// Entry is one track: every string tag resolved to its direct value
// (empty string means absent — TagRefs only exist on disk) and every
// numeric tag as its stored value, plus the flags word.
type Entry struct {
	Strings  map[schema.TagID]string
	Numerics map[schema.TagID]uint32
	Flags    uint32
}

// NewEntry returns a zero-valued Entry with every tag initialised to
// its default (empty string / zero).
func NewEntry() *Entry {
	e := &Entry{
		Strings:  make(map[schema.TagID]string, len(schema.StringTags())),
		Numerics: make(map[schema.TagID]uint32, len(schema.NumericTags())),
	}
	for _, t := range schema.StringTags() {
		e.Strings[t.ID] = ""
	}
	for _, t := range schema.NumericTags() {
		e.Numerics[t.ID] = 0
	}
	return e
}

// SetString replaces tagID's value on this Entry directly. There is no
// persistent intern table to update: string tables are rebuilt from
// scratch at serialisation time, so a fresh intern on write is implicit
// rather than something this mutator has to arrange.
func (e *Entry) SetString(tagID schema.TagID, value string) {
	e.Strings[tagID] = value
}

// Database holds every Entry of a parsed or built TagCache database.
// It carries no persistent per-tag string table (spec component H):
// string tables are a derived, write-time artifact of whichever
// strings the current Entries reference, which makes the "drop
// unreferenced strings before serialisation" step automatic
// rather than a separate pass — see WriteDatabase.
type Database struct {
	Entries []*Entry
	// Serial is the build id written into every file's header.
	// BuildDatabase derives it from a hash of the discovered paths, so
	// it is stable for the same input but not monotonic across builds.
	// 0 is a valid value and is what ParseDatabase preserves when the
	// source database never set one.
	Serial uint32
}

// RewriteTag replaces every occurrence of oldString in tagID across all
// Entries with newString, for bulk operations like genre
// canonicalisation. It returns the number of Entries changed.
func (db *Database) RewriteTag(tagID schema.TagID, oldString, newString string) int {
	count := 0
	for _, e := range db.Entries {
		if e.Strings[tagID] == oldString {
			e.Strings[tagID] = newString
			count++
		}
	}
	return count
}
