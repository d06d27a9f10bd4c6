// Package binfmt provides the fixed-width integer and NUL-padded string
// primitives shared by every TagCache codec: a read cursor, a write
// emitter, and the byte order they both operate under.
package binfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned when a read would run past the end of the buffer.
var ErrTruncated = errors.New("binfmt: truncated read")

// ErrBadMagic is returned when a header signature does not match.
var ErrBadMagic = errors.New("binfmt: bad magic")

// Order is the byte order codecs are parameterised over. Only LittleEndian
// is exercised by this module; the field exists so an alternate-endian
// target is a configuration choice rather than a fork.
type Order = binary.ByteOrder

// LittleEndian is the only supported on-disk byte order.
var LittleEndian Order = binary.LittleEndian

// Alignment is the padding unit for TagStrings on the little-endian target.
const Alignment = 4

// Cursor reads fixed-width fields from a byte slice, tracking position.
type Cursor struct {
	buf   []byte
	pos   int
	order Order
}

// NewCursor wraps buf for sequential reads using the given byte order.
func NewCursor(buf []byte, order Order) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek repositions the cursor to an absolute offset.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return ErrTruncated
	}
	c.pos = pos
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrTruncated
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadBytes consumes and returns the next n bytes verbatim.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadU32 reads a 32-bit unsigned integer.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// ReadU16 reads a 16-bit unsigned integer.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

// ReadU8 reads a single byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU64 reads a 64-bit unsigned integer.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// ReadMagic reads 4 bytes and compares them against want, returning
// ErrBadMagic on mismatch.
func (c *Cursor) ReadMagic(want uint32) error {
	got, err := c.ReadU32()
	if err != nil {
		return err
	}
	if got != want {
		return ErrBadMagic
	}
	return nil
}

// ReadNulPadded reads a NUL-terminated, NUL-padded string of exactly n
// bytes (n is expected to be a multiple of Alignment) and returns the
// content before the first NUL.
func (c *Cursor) ReadNulPadded(n int) (string, error) {
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		return string(b[:idx]), nil
	}
	return string(b), nil
}

// Emitter writes fixed-width fields, tracking the current output offset
// for back-patching offsets computed after the fact.
type Emitter struct {
	buf   bytes.Buffer
	order Order
}

// NewEmitter creates an Emitter using the given byte order.
func NewEmitter(order Order) *Emitter {
	return &Emitter{order: order}
}

// Offset returns the number of bytes written so far.
func (e *Emitter) Offset() int { return e.buf.Len() }

// WriteU32 appends a 32-bit unsigned integer.
func (e *Emitter) WriteU32(v uint32) {
	var b [4]byte
	e.order.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// WriteU16 appends a 16-bit unsigned integer.
func (e *Emitter) WriteU16(v uint16) {
	var b [2]byte
	e.order.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

// WriteU8 appends a single byte.
func (e *Emitter) WriteU8(v uint8) {
	e.buf.WriteByte(v)
}

// WriteU64 appends a 64-bit unsigned integer.
func (e *Emitter) WriteU64(v uint64) {
	var b [8]byte
	e.order.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// WriteBytes appends raw bytes verbatim.
func (e *Emitter) WriteBytes(b []byte) {
	e.buf.Write(b)
}

// PaddedLen returns the NUL-terminated, alignment-padded length that
// PadNulString would produce for a string of byte length n.
func PaddedLen(n int) int {
	total := n + 1 // NUL terminator
	if rem := total % Alignment; rem != 0 {
		total += Alignment - rem
	}
	return total
}

// WriteNulPadded writes s followed by NUL padding out to PaddedLen(len(s))
// bytes and returns that length.
func (e *Emitter) WriteNulPadded(s string) int {
	n := PaddedLen(len(s))
	e.buf.WriteString(s)
	for i := len(s); i < n; i++ {
		e.buf.WriteByte(0)
	}
	return n
}

// Bytes returns the accumulated output.
func (e *Emitter) Bytes() []byte { return e.buf.Bytes() }
