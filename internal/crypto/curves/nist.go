package curves

import (
	"crypto/elliptic"
	"math/big"
)

// NIST implements Curve for the NIST prime curves through crypto/elliptic.
// The affine point (0, 0) is the identity, as in crypto/elliptic.
type NIST struct {
	name  string
	curve elliptic.Curve
}

// NewP224 returns the NIST P-224 curve.
func NewP224() Curve {
	return &NIST{name: NameP224, curve: elliptic.P224()}
}

// NewP256 returns the NIST P-256 curve.
func NewP256() Curve {
	return &NIST{name: NameP256, curve: elliptic.P256()}
}

// NewP384 returns the NIST P-384 curve.
func NewP384() Curve {
	return &NIST{name: NameP384, curve: elliptic.P384()}
}

// NewP521 returns the NIST P-521 curve.
func NewP521() Curve {
	return &NIST{name: NameP521, curve: elliptic.P521()}
}

func (c *NIST) Name() string {
	return c.name
}

func (c *NIST) CoordinateSize() int {
	return (c.curve.Params().BitSize + 7) / 8
}

func (c *NIST) Modulus() *big.Int {
	return new(big.Int).Set(c.curve.Params().P)
}

func (c *NIST) Order() *big.Int {
	return new(big.Int).Set(c.curve.Params().N)
}

func (c *NIST) Cofactor() *big.Int {
	return big.NewInt(1)
}

func (c *NIST) Generator() Point {
	params := c.curve.Params()
	return c.point(params.Gx, params.Gy)
}

func (c *NIST) Identity() Point {
	return c.point(new(big.Int), new(big.Int))
}

func (c *NIST) ScalarBaseMult(k *big.Int) Point {
	if k.Sign() == 0 {
		return c.Identity()
	}
	x, y := c.curve.ScalarBaseMult(k.Bytes())
	return c.point(x, y)
}

func (c *NIST) NewPoint(x, y []byte) (Point, error) {
	size := c.CoordinateSize()
	if len(x) != size || len(y) != size {
		return nil, ErrNotOnCurve
	}
	px := new(big.Int).SetBytes(x)
	py := new(big.Int).SetBytes(y)
	p := c.curve.Params().P
	if px.Cmp(p) >= 0 || py.Cmp(p) >= 0 {
		return nil, ErrNotCanonical
	}
	if !c.curve.IsOnCurve(px, py) {
		return nil, ErrNotOnCurve
	}
	return c.point(px, py), nil
}

func (c *NIST) point(x, y *big.Int) *nistPoint {
	return &nistPoint{c: c, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// nistPoint is an affine point, with (0, 0) standing for the identity.  Only
// NewPoint, which checks the point is on the curve, and the curve's own
// operations construct one, so the crypto/elliptic Add and ScalarMult calls
// below never see an invalid point.  Those calls panic on one.
type nistPoint struct {
	c    *NIST
	x, y *big.Int
}

func (p *nistPoint) Coordinates() (x, y []byte) {
	size := p.c.CoordinateSize()
	return p.x.FillBytes(make([]byte, size)), p.y.FillBytes(make([]byte, size))
}

func (p *nistPoint) IsIdentity() bool {
	return p.x.Sign() == 0 && p.y.Sign() == 0
}

func (p *nistPoint) Add(q Point) Point {
	o, ok := q.(*nistPoint)
	if !ok || o.c.name != p.c.name {
		panic("curves: type mismatch")
	}
	x, y := p.c.curve.Add(p.x, p.y, o.x, o.y)
	return p.c.point(x, y)
}

func (p *nistPoint) Neg() Point {
	if p.IsIdentity() {
		return p.c.Identity()
	}
	y := new(big.Int).Sub(p.c.curve.Params().P, p.y)
	return p.c.point(p.x, y)
}

func (p *nistPoint) ScalarMult(k *big.Int) Point {
	if k.Sign() == 0 || p.IsIdentity() {
		return p.c.Identity()
	}
	x, y := p.c.curve.ScalarMult(p.x, p.y, k.Bytes())
	return p.c.point(x, y)
}

func (p *nistPoint) Equal(q Point) bool {
	o, ok := q.(*nistPoint)
	if !ok || o.c.name != p.c.name {
		return false
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}
