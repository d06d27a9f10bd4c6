package tagcache

import (
	"rockbox-tools/tagcache/internal/migrate"
	"rockbox-tools/tagcache/internal/schema"
)

// Warning reports a duplicate-filename ambiguity that MigrateStats
// resolved by taking the first occurrence in iteration order.
type Warning = migrate.Warning

// MigrateStats copies the runtime statistics tags (playcount, rating,
// playtime, lastplayed, commitid) from old onto the entries of new that
// share the same filename (spec component G). new is mutated in place
// and returned for convenience; unmatched entries in new keep their
// existing (default zero) values, and unmatched entries in old are
// discarded.
func MigrateStats(old, new *Database) (*Database, []Warning) {
	oldRecords := toRecords(old)
	newRecords := toRecords(new)

	results, warnings := migrate.Migrate(oldRecords, newRecords)
	for i, stats := range results {
		e := new.Entries[i]
		e.Numerics[schema.PlayCount] = stats.PlayCount
		e.Numerics[schema.Rating] = stats.Rating
		e.Numerics[schema.PlayTime] = stats.PlayTime
		e.Numerics[schema.LastPlayed] = stats.LastPlayed
		e.Numerics[schema.CommitID] = stats.CommitID
	}
	return new, warnings
}

func toRecords(db *Database) []migrate.Record {
	out := make([]migrate.Record, len(db.Entries))
	for i, e := range db.Entries {
		out[i] = migrate.Record{
			Filename: e.Strings[schema.Filename],
			Stats: migrate.Stats{
				PlayCount:  e.Numerics[schema.PlayCount],
				Rating:     e.Numerics[schema.Rating],
				PlayTime:   e.Numerics[schema.PlayTime],
				LastPlayed: e.Numerics[schema.LastPlayed],
				CommitID:   e.Numerics[schema.CommitID],
			},
		}
	}
	return out
}
