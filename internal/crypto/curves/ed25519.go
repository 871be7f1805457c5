package curves

import (
	"math/big"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

var (
	// l = 2^252 + 27742317777372353535851937790883648493
	ed25519Order, _ = new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

	// p = 2^255 - 19
	ed25519Modulus = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
)

// Ed25519Curve implements Curve on the twisted Edwards form of Curve25519.
// The identity is the ordinary affine point (0, 1).
type Ed25519Curve struct{}

// NewEd25519 returns the edwards25519 curve.
func NewEd25519() Curve {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string {
	return NameEd25519
}

func (c *Ed25519Curve) CoordinateSize() int {
	return 32
}

func (c *Ed25519Curve) Modulus() *big.Int {
	return new(big.Int).Set(ed25519Modulus)
}

func (c *Ed25519Curve) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *Ed25519Curve) Cofactor() *big.Int {
	return big.NewInt(8)
}

func (c *Ed25519Curve) Generator() Point {
	return &Ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) Identity() Point {
	return &Ed25519Point{p: edwards25519.NewIdentityPoint()}
}

func (c *Ed25519Curve) ScalarBaseMult(k *big.Int) Point {
	res := edwards25519.NewIdentityPoint().ScalarBaseMult(toEd25519Scalar(k))
	return &Ed25519Point{p: res}
}

func (c *Ed25519Curve) NewPoint(x, y []byte) (Point, error) {
	if len(x) != 32 || len(y) != 32 {
		return nil, ErrNotOnCurve
	}
	fx, err := canonicalElement(x)
	if err != nil {
		return nil, err
	}
	fy, err := canonicalElement(y)
	if err != nil {
		return nil, err
	}

	// Extended coordinates with Z = 1 and T = xy.
	t := new(field.Element).Multiply(fx, fy)
	p, err := new(edwards25519.Point).SetExtendedCoordinates(fx, fy, new(field.Element).One(), t)
	if err != nil {
		return nil, ErrNotOnCurve
	}
	return &Ed25519Point{p: p}, nil
}

// Ed25519Point implements Point
type Ed25519Point struct {
	p *edwards25519.Point
}

func (p *Ed25519Point) Coordinates() (x, y []byte) {
	X, Y, Z, _ := p.p.ExtendedCoordinates()
	zInv := new(field.Element).Invert(Z)
	ax := new(field.Element).Multiply(X, zInv)
	ay := new(field.Element).Multiply(Y, zInv)
	return reverse(ax.Bytes()), reverse(ay.Bytes())
}

func (p *Ed25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *Ed25519Point) Add(other Point) Point {
	o, ok := other.(*Ed25519Point)
	if !ok {
		panic("curves: type mismatch")
	}
	res := edwards25519.NewIdentityPoint().Add(p.p, o.p)
	return &Ed25519Point{p: res}
}

func (p *Ed25519Point) Neg() Point {
	return &Ed25519Point{p: new(edwards25519.Point).Negate(p.p)}
}

func (p *Ed25519Point) ScalarMult(k *big.Int) Point {
	res := edwards25519.NewIdentityPoint().ScalarMult(toEd25519Scalar(k), p.p)
	return &Ed25519Point{p: res}
}

func (p *Ed25519Point) Equal(other Point) bool {
	o, ok := other.(*Ed25519Point)
	if !ok {
		return false
	}
	return p.p.Equal(o.p) == 1
}

// toEd25519Scalar converts k in [0, l) to a scalar. edwards25519 uses
// little-endian encodings while big.Int is big-endian.
func toEd25519Scalar(k *big.Int) *edwards25519.Scalar {
	var buf [32]byte
	k.FillBytes(buf[:])
	s, err := edwards25519.NewScalar().SetCanonicalBytes(reverse(buf[:]))
	if err != nil {
		panic("curves: scalar not reduced modulo the group order")
	}
	return s
}

// canonicalElement decodes a big-endian field element, rejecting values
// that are not smaller than p.
func canonicalElement(be []byte) (*field.Element, error) {
	le := reverse(be)
	e, err := new(field.Element).SetBytes(le)
	if err != nil {
		return nil, ErrNotCanonical
	}
	// SetBytes reduces non-canonical inputs and ignores the top bit.
	if string(e.Bytes()) != string(le) {
		return nil, ErrNotCanonical
	}
	return e, nil
}

func reverse(s []byte) []byte {
	res := make([]byte, len(s))
	for i, j := 0, len(s)-1; i < len(s); i, j = i+1, j-1 {
		res[i] = s[j]
	}
	return res
}
