package bytebuf

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// HexString is validated hex text: an even number of hex digits with no
// separators and no prefix.
type HexString struct {
	s string
}

// NewHexString validates s.
func NewHexString(s string) (HexString, error) {
	if len(s)%2 != 0 {
		str := fmt.Sprintf("hex string has odd length %d", len(s))
		return HexString{}, makeError(ErrFormat, str)
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			str := fmt.Sprintf("invalid hex character %q at offset %d", s[i], i)
			return HexString{}, makeError(ErrFormat, str)
		}
	}
	return HexString{s: s}, nil
}

// String returns the hex text.
func (h HexString) String() string {
	return h.s
}

// Len returns the number of hex digits.
func (h HexString) Len() int {
	return len(h.s)
}

// FromHexString decodes validated hex, two digits per byte, most
// significant nibble first.
func FromHexString(h HexString) Buffer {
	b, err := hex.DecodeString(h.s)
	if err != nil {
		// NewHexString already rejected everything DecodeString can fail on.
		panic(fmt.Sprintf("bytebuf: unvalidated hex string: %v", err))
	}
	return Own(b)
}

// ParseHex validates and decodes s.
func ParseHex(s string) (Buffer, error) {
	h, err := NewHexString(s)
	if err != nil {
		return Buffer{}, err
	}
	return FromHexString(h), nil
}

// MustParseHex is like ParseHex but panics on malformed input.  It is meant
// for constants.
func MustParseHex(s string) Buffer {
	bb, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return bb
}

// HexString returns the buffer as lowercase hex, two digits per byte.
func (bb Buffer) HexString() string {
	return hex.EncodeToString(bb.b)
}

// String implements fmt.Stringer with the hex form.
func (bb Buffer) String() string {
	return bb.HexString()
}

// WriteTo writes the hex form to w with no trailing whitespace.
func (bb Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, bb.HexString())
	return int64(n), err
}

// ReadHex reads a buffer from r.  Leading whitespace is skipped, then an
// even-length run of hex digits is read up to and including the terminating
// whitespace character, or to the end of input.  A non-hex character before
// the terminator, or an odd number of digits, is ErrFormat.  io.EOF is
// returned when r holds nothing but whitespace.
func ReadHex(r io.ByteReader) (Buffer, error) {
	var sb strings.Builder
	started := false
	for {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Buffer{}, err
		}
		if isSpace(c) {
			if !started {
				continue
			}
			break
		}
		started = true
		sb.WriteByte(c)
	}
	if !started {
		return Buffer{}, io.EOF
	}
	return ParseHex(sb.String())
}

// Scan implements fmt.Scanner so a buffer can be read with fmt.Fscan.  The
// token ends at the first whitespace character, which is left unread.
func (bb *Buffer) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 'v', 's', 'x':
	default:
		return makeError(ErrFormat, fmt.Sprintf("unsupported scan verb %%%c", verb))
	}
	tok, err := state.Token(true, func(r rune) bool {
		return r > 0x7f || !isSpace(byte(r))
	})
	if err != nil {
		return err
	}
	if len(tok) == 0 {
		return io.ErrUnexpectedEOF
	}
	parsed, err := ParseHex(string(tok))
	if err != nil {
		return err
	}
	*bb = parsed
	return nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isSpace matches the C locale isspace set.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isPrint(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}
