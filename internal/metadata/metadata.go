// Package metadata adapts the external audio-tag reading library
// (spec component E) into the flat record the indexing pipeline
// assembles Entries from.
package metadata

import (
	"os"
	"path"
	"strings"

	"github.com/dhowden/tag"

	"rockbox-tools/tagcache/internal/schema"
)

// Raw is the partially-populated record spec.md §4.E describes: every
// string tag as a byte string (empty means absent) and every numeric
// tag zero-initialised then filled from the reader.
type Raw struct {
	Strings  map[schema.TagID]string
	Numerics map[schema.TagID]uint32
}

func newRaw() Raw {
	r := Raw{
		Strings:  make(map[schema.TagID]string, len(schema.StringTags())),
		Numerics: make(map[schema.TagID]uint32, len(schema.NumericTags())),
	}
	for _, t := range schema.StringTags() {
		r.Strings[t.ID] = ""
	}
	for _, t := range schema.NumericTags() {
		r.Numerics[t.ID] = 0
	}
	return r
}

// PathRewrite turns a host-local path into the device-visible path
// spec.md §4.E requires: strip a host prefix, prepend a device prefix,
// normalise to forward slashes.
type PathRewrite struct {
	HostPrefix   string
	DevicePrefix string
}

// Apply rewrites hostPath into its device-visible form.
func (r PathRewrite) Apply(hostPath string) string {
	rel := strings.TrimPrefix(filepathToSlash(hostPath), filepathToSlash(r.HostPrefix))
	rel = strings.TrimPrefix(rel, "/")
	return path.Join(r.DevicePrefix, rel)
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Reader reads one file's metadata and produces its Raw record.
type Reader struct {
	Rewrite  PathRewrite
	GenreMap map[string]string // exact, case-sensitive match; unmapped genres pass through
}

// NewReader constructs a Reader with the given path-rewrite rule and an
// optional genre canonicalisation map (nil is fine, meaning no remap).
func NewReader(rewrite PathRewrite, genreMap map[string]string) *Reader {
	return &Reader{Rewrite: rewrite, GenreMap: genreMap}
}

// Read opens hostPath, extracts its tags, and returns the adapted Raw
// record. The filename tag always reflects the device-visible path,
// regardless of what the underlying library reports.
func (r *Reader) Read(hostPath string) (Raw, error) {
	f, err := os.Open(hostPath)
	if err != nil {
		return Raw{}, err
	}
	defer func() { _ = f.Close() }()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Raw{}, err
	}

	raw := newRaw()
	raw.Strings[schema.Artist] = m.Artist()
	raw.Strings[schema.Album] = m.Album()
	raw.Strings[schema.Title] = m.Title()
	raw.Strings[schema.Composer] = m.Composer()
	raw.Strings[schema.AlbumArtist] = m.AlbumArtist()
	raw.Strings[schema.Genre] = r.canonicalGenre(m.Genre())
	raw.Strings[schema.Filename] = r.Rewrite.Apply(hostPath)
	if comment, ok := m.Raw()["comment"].(string); ok {
		raw.Strings[schema.Comment] = comment
	}

	if year := m.Year(); year > 0 {
		raw.Numerics[schema.Year] = uint32(year)
	}
	track, _ := m.Track()
	raw.Numerics[schema.TrackNumber] = uint32(track)
	disc, _ := m.Disc()
	raw.Numerics[schema.DiscNumber] = uint32(disc)

	// dhowden/tag has no audio-properties API; schema.Bitrate and
	// schema.Length stay at their newRaw zero default (see DESIGN.md).

	return raw, nil
}

// canonicalGenre applies the optional genre map: exact case-sensitive
// key match, unmapped genres pass through unchanged.
func (r *Reader) canonicalGenre(genre string) string {
	if r.GenreMap == nil {
		return genre
	}
	if mapped, ok := r.GenreMap[genre]; ok {
		return mapped
	}
	return genre
}
