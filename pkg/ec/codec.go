package ec

import (
	"errors"
	"fmt"

	"github.com/smallyu/go-tpm-ec/internal/crypto/curves"
	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

// Encode returns the G1Point encoding of p.  It panics when p belongs to a
// different group.
func (g *Group) Encode(p *Point) G1Point {
	if p.g.Name() != g.Name() {
		panic(fmt.Sprintf("ec: encoding a %s point with a %s group",
			p.g.Name(), g.Name()))
	}
	return g.encode(p.p)
}

func (g *Group) encode(p curves.Point) G1Point {
	x, y := p.Coordinates()
	return G1Point{buf: bytebuf.Concat(bytebuf.Own(x), bytebuf.Own(y))}
}

// Decode validates pt and returns the group element it encodes.  The
// infinity sentinel is recognised before any curve check.
func (g *Group) Decode(pt G1Point) (*Point, error) {
	if err := g.checkLength(pt); err != nil {
		return nil, err
	}
	if pt.Equal(g.infinity) {
		return &Point{g: g, p: g.curve.Identity()}, nil
	}

	w := g.CoordinateSize()
	raw := pt.buf.Bytes()
	p, err := g.curve.NewPoint(raw[:w], raw[w:])
	switch {
	case errors.Is(err, curves.ErrNotCanonical):
		str := fmt.Sprintf("%s point has a coordinate outside the field",
			g.Name())
		return nil, makeError(ErrPointFormat, str)
	case err != nil:
		str := fmt.Sprintf("%s point is not on the curve", g.Name())
		return nil, makeError(ErrPointFormat, str)
	}
	return &Point{g: g, p: p}, nil
}

// IsOnCurve reports whether pt satisfies the curve equation.  The infinity
// sentinel is treated as on the curve.  Only a wrong length is an error.
func (g *Group) IsOnCurve(pt G1Point) (bool, error) {
	if err := g.checkLength(pt); err != nil {
		return false, err
	}
	if pt.Equal(g.infinity) {
		return true, nil
	}
	w := g.CoordinateSize()
	raw := pt.buf.Bytes()
	_, err := g.curve.NewPoint(raw[:w], raw[w:])
	return err == nil, nil
}

// IsAtInfinity reports whether pt is the infinity sentinel.  It does not
// check that pt is otherwise valid.
func (g *Group) IsAtInfinity(pt G1Point) bool {
	return pt.Equal(g.infinity)
}

func (g *Group) checkLength(pt G1Point) error {
	if pt.Len() != g.PointSize() {
		str := fmt.Sprintf("%s point must be %d bytes, got %d", g.Name(),
			g.PointSize(), pt.Len())
		return makeError(ErrPointFormat, str)
	}
	return nil
}
