package ec

import (
	"github.com/smallyu/go-tpm-ec/internal/crypto/curves"
	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

// G1Point is the byte encoding of a point: the affine x coordinate followed
// by the affine y coordinate, each big-endian and left-padded to the curve's
// coordinate size.  The point at infinity uses a curve-specific sentinel,
// available from Group.Identity.
type G1Point struct {
	buf bytebuf.Buffer
}

// NewG1Point returns a G1Point holding a copy of bb.  No validation is
// performed; use Group.Decode for that.
func NewG1Point(bb bytebuf.Buffer) G1Point {
	return G1Point{buf: bb.Clone()}
}

// ParseG1Point decodes hex into an unvalidated G1Point.
func ParseG1Point(s string) (G1Point, error) {
	bb, err := bytebuf.ParseHex(s)
	if err != nil {
		return G1Point{}, err
	}
	return G1Point{buf: bb}, nil
}

// Buffer returns a copy of the encoding.
func (p G1Point) Buffer() bytebuf.Buffer {
	return p.buf.Clone()
}

// Len returns the encoded length in bytes.
func (p G1Point) Len() int {
	return p.buf.Len()
}

// Equal reports whether both encodings are byte-wise identical.
func (p G1Point) Equal(q G1Point) bool {
	return p.buf.Equal(q.buf)
}

// X returns the first half of the encoding.
func (p G1Point) X() bytebuf.Buffer {
	x, _ := p.buf.Part(0, p.buf.Len()/2)
	return x
}

// Y returns the second half of the encoding.
func (p G1Point) Y() bytebuf.Buffer {
	half := p.buf.Len() / 2
	y, _ := p.buf.Part(half, p.buf.Len()-half)
	return y
}

// String returns the hex encoding.
func (p G1Point) String() string {
	return p.buf.HexString()
}

func (p G1Point) clone() G1Point {
	return G1Point{buf: p.buf.Clone()}
}

// Point is a decoded group element bound to the Group that produced it.
type Point struct {
	g *Group
	p curves.Point
}

// Group returns the group this point belongs to.
func (p *Point) Group() *Group {
	return p.g
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.p.IsIdentity()
}

// Encode returns the G1Point encoding of p.
func (p *Point) Encode() G1Point {
	return p.g.encode(p.p)
}
