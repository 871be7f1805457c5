package ec

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

// Add returns a + b.  The identity and doubling cases follow the group law.
func (g *Group) Add(a, b G1Point) (G1Point, error) {
	pa, err := g.Decode(a)
	if err != nil {
		return G1Point{}, fmt.Errorf("first operand: %w", err)
	}
	pb, err := g.Decode(b)
	if err != nil {
		return G1Point{}, fmt.Errorf("second operand: %w", err)
	}
	return g.encode(pa.p.Add(pb.p)), nil
}

// GeneratorMul returns k * G.  The multiplier is a big-endian unsigned
// integer of any length and is reduced modulo the group order first, so a
// multiple of the order yields the identity.
func (g *Group) GeneratorMul(multiplier bytebuf.Buffer) G1Point {
	return g.encode(g.curve.ScalarBaseMult(g.reduce(multiplier)))
}

// PointMul returns k * P, with the multiplier treated as in GeneratorMul.
//
// Reducing modulo the group order is exact for points in the prime-order
// subgroup, which covers every point of the cofactor-1 curves.  On Ed25519
// a point with a torsion component is multiplied by k mod l.
func (g *Group) PointMul(multiplier bytebuf.Buffer, pt G1Point) (G1Point, error) {
	p, err := g.Decode(pt)
	if err != nil {
		return G1Point{}, err
	}
	return g.encode(p.p.ScalarMult(g.reduce(multiplier))), nil
}

// Invert returns -P.  The inverse of the identity is the identity.
func (g *Group) Invert(pt G1Point) (G1Point, error) {
	p, err := g.Decode(pt)
	if err != nil {
		return G1Point{}, err
	}
	return g.encode(p.p.Neg()), nil
}

// reduce interprets k as a big-endian integer modulo the group order.
func (g *Group) reduce(k bytebuf.Buffer) *big.Int {
	v := new(big.Int).SetBytes(k.Bytes())
	return v.Mod(v, g.order)
}
