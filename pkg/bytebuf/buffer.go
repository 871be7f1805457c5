package bytebuf

import (
	"bytes"
	"fmt"
)

// Buffer is an ordered, resizable sequence of bytes.
//
// A Buffer is a value: assigning one yields an independent copy.  Copies
// share storage only until one of them is written, and no method ever
// writes through storage another copy can see.  The zero value is an empty
// buffer.
type Buffer struct {
	// b is never modified in place once it may be shared.  Writers copy it
	// first and growth always reallocates.
	b []byte
}

// New returns an empty buffer.
func New() Buffer {
	return Buffer{b: []byte{}}
}

// Of returns a buffer holding the given bytes.
func Of(bs ...byte) Buffer {
	return FromBytes(bs)
}

// Own returns a buffer that takes ownership of b.  The caller must not use b
// afterwards.
func Own(b []byte) Buffer {
	if b == nil {
		b = []byte{}
	}
	return Buffer{b: b}
}

// Make returns a buffer of n zero bytes.  Like make, it panics if n is
// negative.
func Make(n int) Buffer {
	return Buffer{b: make([]byte, n)}
}

// Filled returns a buffer of n bytes, each set to fill.  It panics if n is
// negative.
func Filled(n int, fill byte) Buffer {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return Buffer{b: b}
}

// FromBytes returns a buffer holding a copy of b.
func FromBytes(b []byte) Buffer {
	c := make([]byte, len(b))
	copy(c, b)
	return Buffer{b: c}
}

// FromString returns a buffer with one byte per byte of s.  All 256 byte
// values are preserved.
func FromString(s string) Buffer {
	return Buffer{b: []byte(s)}
}

// Len returns the number of bytes in the buffer.
func (bb Buffer) Len() int {
	return len(bb.b)
}

// IsEmpty reports whether the buffer holds no bytes.
func (bb Buffer) IsEmpty() bool {
	return len(bb.b) == 0
}

// Bytes returns a copy of the buffer's bytes.
func (bb Buffer) Bytes() []byte {
	c := make([]byte, len(bb.b))
	copy(c, bb.b)
	return c
}

// Clone returns an exclusive copy of the buffer.
func (bb Buffer) Clone() Buffer {
	return FromBytes(bb.b)
}

// Byte returns the byte at pos without a range check beyond the one the
// runtime performs; an out-of-range pos panics.  Codec loops that have
// already validated lengths use this.
func (bb Buffer) Byte(pos int) byte {
	return bb.b[pos]
}

// Put sets the byte at pos.  Like Byte, it is unchecked.
func (bb *Buffer) Put(pos int, v byte) {
	_ = bb.b[pos]
	bb.unshare()
	bb.b[pos] = v
}

// At returns the byte at pos, or ErrRange.
func (bb Buffer) At(pos int) (byte, error) {
	if pos < 0 || pos >= len(bb.b) {
		str := fmt.Sprintf("index %d out of range for buffer of length %d",
			pos, len(bb.b))
		return 0, makeError(ErrRange, str)
	}
	return bb.b[pos], nil
}

// SetByte sets the byte at pos, or returns ErrRange.
func (bb *Buffer) SetByte(pos int, v byte) error {
	if pos < 0 || pos >= len(bb.b) {
		str := fmt.Sprintf("index %d out of range for buffer of length %d",
			pos, len(bb.b))
		return makeError(ErrRange, str)
	}
	bb.unshare()
	bb.b[pos] = v
	return nil
}

// Part returns a new buffer holding the bytes [start, start+length).
func (bb Buffer) Part(start, length int) (Buffer, error) {
	if start < 0 || length < 0 || start > len(bb.b) ||
		length > len(bb.b)-start {
		str := fmt.Sprintf("part [%d, %d+%d) exceeds buffer of length %d",
			start, start, length, len(bb.b))
		return Buffer{}, makeError(ErrRange, str)
	}
	return FromBytes(bb.b[start : start+length]), nil
}

// SetPart overwrites the bytes beginning at start with part.  The buffer is
// never grown.
func (bb *Buffer) SetPart(start int, part Buffer) error {
	if start < 0 || start > len(bb.b) || len(part.b) > len(bb.b)-start {
		str := fmt.Sprintf("part of length %d at %d exceeds buffer of "+
			"length %d", len(part.b), start, len(bb.b))
		return makeError(ErrRange, str)
	}
	if len(part.b) == 0 {
		return nil
	}
	bb.unshare()
	copy(bb.b[start:], part.b)
	return nil
}

// unshare gives bb storage of its own before an in-place write.
func (bb *Buffer) unshare() {
	c := make([]byte, len(bb.b))
	copy(c, bb.b)
	bb.b = c
}

// grow returns the bytes of bb followed by tail in new storage.
func (bb *Buffer) grow(tail []byte) []byte {
	return append(bb.b[:len(bb.b):len(bb.b)], tail...)
}

// Append appends the bytes of other to the buffer.
func (bb *Buffer) Append(other Buffer) *Buffer {
	if len(other.b) > 0 {
		bb.b = bb.grow(other.b)
	}
	return bb
}

// AppendByte appends a single byte to the buffer.
func (bb *Buffer) AppendByte(v byte) *Buffer {
	bb.b = bb.grow([]byte{v})
	return bb
}

// Concat returns a new buffer holding a followed by each of rest.
func Concat(a Buffer, rest ...Buffer) Buffer {
	n := len(a.b)
	for _, r := range rest {
		n += len(r.b)
	}
	out := make([]byte, 0, n)
	out = append(out, a.b...)
	for _, r := range rest {
		out = append(out, r.b...)
	}
	return Buffer{b: out}
}

// Resize sets the length of the buffer to n, zero-filling any new bytes.
func (bb *Buffer) Resize(n int) {
	if n <= len(bb.b) {
		bb.b = bb.b[:n]
		return
	}
	bb.b = bb.grow(make([]byte, n-len(bb.b)))
}

// Clear empties the buffer.
func (bb *Buffer) Clear() {
	bb.b = bb.b[:0]
}

// PadRight appends fill until the buffer has newLength bytes.  Padding to the
// current length is a no-op; padding to a shorter length is ErrRange.
func (bb *Buffer) PadRight(newLength int, fill byte) error {
	if newLength < len(bb.b) {
		str := fmt.Sprintf("cannot pad buffer of length %d to %d",
			len(bb.b), newLength)
		return makeError(ErrRange, str)
	}
	if newLength == len(bb.b) {
		return nil
	}
	pad := make([]byte, newLength-len(bb.b))
	for i := range pad {
		pad[i] = fill
	}
	bb.b = bb.grow(pad)
	return nil
}

// PadLeft prepends fill until the buffer has newLength bytes.  The rules
// are those of PadRight.
func (bb *Buffer) PadLeft(newLength int, fill byte) error {
	cur := len(bb.b)
	if newLength < cur {
		str := fmt.Sprintf("cannot pad buffer of length %d to %d",
			cur, newLength)
		return makeError(ErrRange, str)
	}
	if newLength == cur {
		return nil
	}
	out := make([]byte, newLength)
	delta := newLength - cur
	for i := 0; i < delta; i++ {
		out[i] = fill
	}
	copy(out[delta:], bb.b)
	bb.b = out
	return nil
}

// Truncate strips trailing zero bytes.  The result may be empty.
func (bb *Buffer) Truncate() {
	n := len(bb.b)
	for n > 0 && bb.b[n-1] == 0 {
		n--
	}
	bb.b = bb.b[:n]
}

// Equal reports whether both buffers hold the same bytes.
func (bb Buffer) Equal(other Buffer) bool {
	return bytes.Equal(bb.b, other.b)
}

// Compare compares two buffers lexicographically.
func (bb Buffer) Compare(other Buffer) int {
	return bytes.Compare(bb.b, other.b)
}

// Less reports whether bb sorts before other.
func (bb Buffer) Less(other Buffer) bool {
	return bytes.Compare(bb.b, other.b) < 0
}

// ToString returns the buffer as a string, one character per byte.
func (bb Buffer) ToString() string {
	return string(bb.b)
}

// Uint16ToBuffer returns the 2-byte big-endian encoding of v.
func Uint16ToBuffer(v uint16) Buffer {
	return Of(byte(v>>8), byte(v))
}

// Uint32ToBuffer returns the 4-byte big-endian encoding of v.
func Uint32ToBuffer(v uint32) Buffer {
	return Of(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// ToUint16 decodes a 2-byte big-endian buffer.
func (bb Buffer) ToUint16() (uint16, error) {
	if len(bb.b) != 2 {
		str := fmt.Sprintf("uint16 requires 2 bytes, got %d", len(bb.b))
		return 0, makeError(ErrFormat, str)
	}
	return uint16(bb.b[0])<<8 | uint16(bb.b[1]), nil
}

// ToUint32 decodes a 4-byte big-endian buffer.
func (bb Buffer) ToUint32() (uint32, error) {
	if len(bb.b) != 4 {
		str := fmt.Sprintf("uint32 requires 4 bytes, got %d", len(bb.b))
		return 0, makeError(ErrFormat, str)
	}
	return uint32(bb.b[0])<<24 | uint32(bb.b[1])<<16 |
		uint32(bb.b[2])<<8 | uint32(bb.b[3]), nil
}
