/*
Package bytebuf implements the byte buffer used as the common currency for
scalars, points, digests and signatures.

A Buffer is an ordered, resizable sequence of bytes with hex and character
codecs and a length-prefixed serialisation format:

	buffer:   [uint32 big-endian length][length bytes]
	sequence: [uint32 big-endian count][buffer]*count

Hex text is lowercase on output, accepts either case on input, and carries no
separators or prefix.

Errors are reported as Error values wrapping ErrFormat or ErrRange, which may
be matched with errors.Is.
*/
package bytebuf
