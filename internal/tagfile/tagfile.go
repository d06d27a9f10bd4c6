// Package tagfile implements the per-string-tag file codec (spec
// component C): the string table backing one string-valued column,
// stored as a sequence of length-prefixed, NUL-padded TagStrings.
package tagfile

import (
	"fmt"

	"rockbox-tools/tagcache/internal/binfmt"
	"rockbox-tools/tagcache/internal/schema"
)

// Magic identifies a tag-string file, in the teacher's
// prefix-plus-version-byte convention (rockbox.go's TagcacheMagic).
const Magic uint32 = 0x54434604 // "TCF" + schema version 4

// HeaderSize is the fixed size, in bytes, of a tag file's header.
const HeaderSize = 20

// Header is the fixed header every tag file begins with.
type Header struct {
	Magic      uint32
	Version    uint32
	EntryCount uint32
	DataSize   uint32
	Serial     uint32
}

// Record is one parsed TagString: its content and the back-reference to
// the Entry that first claims it (I3).
type Record struct {
	Value   string
	BackRef uint32
}

// Write serialises strings (already de-duplicated and in first-seen
// order — I5 is the caller's responsibility) into a tag file body.
// backRefs[i] is the master-index offset to record as strings[i]'s
// index_file_position. It returns the file bytes and, for each input
// string, the absolute file offset of its TagString header — callers
// patch these back into Entry TagRefs.
func Write(order binfmt.Order, serial uint32, strings []string, backRefs []uint32) ([]byte, []uint32, error) {
	if len(strings) != len(backRefs) {
		return nil, nil, fmt.Errorf("tagfile: %d strings but %d back-refs", len(strings), len(backRefs))
	}

	e := binfmt.NewEmitter(order)
	e.WriteU32(Magic)
	e.WriteU32(schema.Version)
	e.WriteU32(uint32(len(strings)))

	// DataSize and the record bytes are written into a second emitter so
	// DataSize can be computed before the header is finalised.
	body := binfmt.NewEmitter(order)
	offsets := make([]uint32, len(strings))
	for i, s := range strings {
		offsets[i] = uint32(HeaderSize + body.Offset())
		byteLen := uint32(binfmt.PaddedLen(len(s)))
		body.WriteU32(byteLen)
		body.WriteU32(backRefs[i])
		body.WriteNulPadded(s)
	}

	e.WriteU32(uint32(body.Offset()))
	e.WriteU32(serial)
	e.WriteBytes(body.Bytes())
	return e.Bytes(), offsets, nil
}

// Read parses a tag file's bytes into the set of strings it holds,
// keyed by the file offset of each TagString's header (I2's TagRef
// target).
func Read(data []byte, order binfmt.Order) (Header, map[uint32]Record, error) {
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

	out := make(map[uint32]Record, hdr.EntryCount)
	for i := uint32(0); i < hdr.EntryCount; i++ {
		if c.Remaining() == 0 {
			break
		}
		headerOffset := uint32(c.Pos())

		byteLen, err := c.ReadU32()
		if err != nil {
			return hdr, nil, err
		}
		backRef, err := c.ReadU32()
		if err != nil {
			return hdr, nil, err
		}
		value, err := c.ReadNulPadded(int(byteLen))
		if err != nil {
			return hdr, nil, err
		}
		out[headerOffset] = Record{Value: value, BackRef: backRef}
	}
	return hdr, out, nil
}
