package bytebuf

import (
	"io"
	"strings"
)

// CharacterString renders the buffer as text.  Trailing NUL and whitespace
// bytes are dropped; of the rest, printable ASCII and whitespace are kept
// and every other byte becomes '?'.
func (bb Buffer) CharacterString() string {
	last := len(bb.b)
	for last > 0 && (bb.b[last-1] == 0 || isSpace(bb.b[last-1])) {
		last--
	}
	var sb strings.Builder
	sb.Grow(last)
	for _, c := range bb.b[:last] {
		if isSpace(c) || isPrint(c) {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// WriteCharacters writes CharacterString to w.
func (bb Buffer) WriteCharacters(w io.Writer) error {
	_, err := io.WriteString(w, bb.CharacterString())
	return err
}
