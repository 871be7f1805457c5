package bytebuf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// headerSize is the size of the length and count headers.
const headerSize = 4

// Serialise returns bb prefixed with its length as a big-endian uint32.
func Serialise(bb Buffer) (Buffer, error) {
	if uint64(len(bb.b)) > math.MaxUint32 {
		str := fmt.Sprintf("buffer of length %d is too big to serialise",
			len(bb.b))
		return Buffer{}, makeError(ErrRange, str)
	}
	out := make([]byte, headerSize, headerSize+len(bb.b))
	binary.BigEndian.PutUint32(out, uint32(len(bb.b)))
	out = append(out, bb.b...)
	return Own(out), nil
}

// Deserialise decodes a single length-prefixed buffer.  The input must hold
// exactly one entry.
func Deserialise(bb Buffer) (Buffer, error) {
	d := NewDecoder(bb)
	entry, err := d.Next()
	if err != nil {
		return Buffer{}, err
	}
	if d.Remaining() != 0 {
		str := fmt.Sprintf("%d trailing bytes after serialised buffer",
			d.Remaining())
		return Buffer{}, makeError(ErrFormat, str)
	}
	return entry, nil
}

// SerialiseBuffers encodes bbs as a big-endian uint32 count followed by each
// buffer in the Serialise format.
func SerialiseBuffers(bbs []Buffer) (Buffer, error) {
	if uint64(len(bbs)) > math.MaxUint32 {
		str := fmt.Sprintf("%d buffers is too many to serialise", len(bbs))
		return Buffer{}, makeError(ErrRange, str)
	}
	size := headerSize
	for _, bb := range bbs {
		size += headerSize + len(bb.b)
	}
	out := make([]byte, headerSize, size)
	binary.BigEndian.PutUint32(out, uint32(len(bbs)))
	for i, bb := range bbs {
		sbb, err := Serialise(bb)
		if err != nil {
			return Buffer{}, fmt.Errorf("buffer %d: %w", i, err)
		}
		out = append(out, sbb.b...)
	}
	return Own(out), nil
}

// DeserialiseBuffers decodes the SerialiseBuffers format.  The input must be
// consumed exactly.
func DeserialiseBuffers(bb Buffer) ([]Buffer, error) {
	d := NewDecoder(bb)
	count, err := d.uint32()
	if err != nil {
		return nil, err
	}

	// Every entry needs at least a header, which bounds a hostile count.
	if uint64(count)*headerSize > uint64(d.Remaining()) {
		str := fmt.Sprintf("declared count %d cannot be satisfied by %d "+
			"remaining bytes", count, d.Remaining())
		return nil, makeError(ErrFormat, str)
	}

	bbs := make([]Buffer, 0, count)
	for i := uint32(0); i < count; i++ {
		entry, err := d.Next()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		bbs = append(bbs, entry)
	}
	if d.Remaining() != 0 {
		str := fmt.Sprintf("%d trailing bytes after %d serialised buffers",
			d.Remaining(), count)
		return nil, makeError(ErrFormat, str)
	}
	return bbs, nil
}

// Decoder reads successive length-prefixed buffers from an input buffer.
type Decoder struct {
	in  []byte
	off int
}

// NewDecoder returns a decoder over bb.
func NewDecoder(bb Buffer) *Decoder {
	return &Decoder{in: bb.b}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.in) - d.off
}

// Next decodes the next length-prefixed buffer.
func (d *Decoder) Next() (Buffer, error) {
	n, err := d.uint32()
	if err != nil {
		return Buffer{}, err
	}
	if uint64(n) > uint64(d.Remaining()) {
		str := fmt.Sprintf("declared length %d exceeds %d remaining bytes",
			n, d.Remaining())
		return Buffer{}, makeError(ErrFormat, str)
	}
	entry := FromBytes(d.in[d.off : d.off+int(n)])
	d.off += int(n)
	return entry, nil
}

func (d *Decoder) uint32() (uint32, error) {
	if d.Remaining() < headerSize {
		str := fmt.Sprintf("need %d header bytes, have %d", headerSize,
			d.Remaining())
		return 0, makeError(ErrFormat, str)
	}
	v := binary.BigEndian.Uint32(d.in[d.off:])
	d.off += headerSize
	return v, nil
}
