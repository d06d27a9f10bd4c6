// Package masterindex implements the master-index codec (spec
// component D): the root file holding every Entry in walk order, with
// TagRefs pointing into the per-tag string files.
package masterindex

import (
	"rockbox-tools/tagcache/internal/binfmt"
	"rockbox-tools/tagcache/internal/schema"
)

// Magic identifies a master-index file.
const Magic uint32 = 0x54434904 // "TCI" + schema version 4

// HeaderSize is the fixed size, in bytes, of the master-index header.
const HeaderSize = 20

// SentinelRef marks a string-tag field as having no value (the Open
// Question in spec.md §3 resolved in DESIGN.md): no TagString is ever
// allocated for an empty string, so this offset can never collide with
// a real TagString header.
const SentinelRef uint32 = 0xFFFFFFFF

var stringTags = schema.StringTags()
var numericTags = schema.NumericTags()

// EntrySize is the fixed on-disk size of one Entry record.
var EntrySize = (len(stringTags) + len(numericTags) + 1) * 4

// Header is the fixed header of a master-index file.
type Header struct {
	Magic      uint32
	Version    uint32
	EntryCount uint32
	DataSize   uint32
	Serial     uint32
}

// Entry is one track record, in canonical field order: a TagRef per
// string tag (offset into that tag's file, or SentinelRef), a value
// per numeric tag, then the flags word.
type Entry struct {
	TagRefs  []uint32 // len(stringTags), indexed by schema.StringTags() order
	Numerics []uint32 // len(numericTags), indexed by schema.NumericTags() order
	Flags    uint32
}

// NewEntry returns a zero-valued Entry with every TagRef set to
// SentinelRef (I2: no non-sentinel TagRef may exist until a real
// string is assigned to it).
func NewEntry() Entry {
	e := Entry{
		TagRefs:  make([]uint32, len(stringTags)),
		Numerics: make([]uint32, len(numericTags)),
	}
	for i := range e.TagRefs {
		e.TagRefs[i] = SentinelRef
	}
	return e
}

// Write serialises entries into a master-index file body.
func Write(order binfmt.Order, serial uint32, entries []Entry) []byte {
	e := binfmt.NewEmitter(order)
	e.WriteU32(Magic)
	e.WriteU32(schema.Version)
	e.WriteU32(uint32(len(entries)))
	e.WriteU32(uint32(len(entries) * EntrySize))
	e.WriteU32(serial)

	for _, entry := range entries {
		for _, ref := range entry.TagRefs {
			e.WriteU32(ref)
		}
		for _, v := range entry.Numerics {
			e.WriteU32(v)
		}
		e.WriteU32(entry.Flags)
	}
	return e.Bytes()
}

// Read parses a master-index file. Entries are returned with TagRefs
// still as raw tag-file offsets (or SentinelRef) — resolving them
// against parsed tag files is a second pass the caller performs (spec
// component D's "Read" step).
func Read(data []byte, order binfmt.Order) (Header, []Entry, error) {
	c := binfmt.NewCursor(data, order)

	var hdr Header
	if err := c.ReadMagic(Magic); err != nil {
		return hdr, nil, err
	}
	hdr.Magic = Magic

	version, err := c.ReadU32()
	if err != nil {
		return hdr, nil, err
	}
	if err := schema.CheckVersion(version); err != nil {
		return hdr, nil, err
	}
	hdr.Version = version

	if hdr.EntryCount, err = c.ReadU32(); err != nil {
		return hdr, nil, err
	}
	if hdr.DataSize, err = c.ReadU32(); err != nil {
		return hdr, nil, err
	}
	if hdr.Serial, err = c.ReadU32(); err != nil {
		return hdr, nil, err
	}

	entries := make([]Entry, 0, hdr.EntryCount)
	for i := uint32(0); i < hdr.EntryCount; i++ {
		entry := NewEntry()
		for j := range entry.TagRefs {
			if entry.TagRefs[j], err = c.ReadU32(); err != nil {
				return hdr, nil, err
			}
		}
		for j := range entry.Numerics {
			if entry.Numerics[j], err = c.ReadU32(); err != nil {
				return hdr, nil, err
			}
		}
		if entry.Flags, err = c.ReadU32(); err != nil {
			return hdr, nil, err
		}
		entries = append(entries, entry)
	}
	return hdr, entries, nil
}

// Offset returns the absolute master-index file offset of entry index i,
// computable before the file exists since every Entry has fixed size —
// this lets the tag-file layout step (spec component F, step 4) assign
// index_file_position back-references before the master index is flushed.
func Offset(i int) uint32 {
	return uint32(HeaderSize + i*EntrySize)
}
