package curves

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BN254 implements Curve for the G1 group of the BN254 pairing curve
// (y^2 = x^3 + 3). gnark-crypto encodes the identity as (0, 0).
type BN254 struct{}

// NewBN254 returns the BN254 G1 group.
func NewBN254() Curve {
	return &BN254{}
}

func (c *BN254) Name() string {
	return NameBN254
}

func (c *BN254) CoordinateSize() int {
	return fp.Bytes
}

func (c *BN254) Modulus() *big.Int {
	return fp.Modulus()
}

func (c *BN254) Order() *big.Int {
	return fr.Modulus()
}

func (c *BN254) Cofactor() *big.Int {
	return big.NewInt(1)
}

func (c *BN254) Generator() Point {
	_, _, g1, _ := bn254.Generators()
	return &bn254Point{p: g1}
}

func (c *BN254) Identity() Point {
	return &bn254Point{}
}

func (c *BN254) ScalarBaseMult(k *big.Int) Point {
	_, _, g1, _ := bn254.Generators()
	return (&bn254Point{p: g1}).ScalarMult(k)
}

func (c *BN254) NewPoint(x, y []byte) (Point, error) {
	if len(x) != fp.Bytes || len(y) != fp.Bytes {
		return nil, ErrNotOnCurve
	}
	p := &bn254Point{}
	if err := p.p.X.SetBytesCanonical(x); err != nil {
		return nil, ErrNotCanonical
	}
	if err := p.p.Y.SetBytesCanonical(y); err != nil {
		return nil, ErrNotCanonical
	}
	// IsOnCurve accepts (0, 0), which callers treat as a sentinel.
	if p.p.IsInfinity() || !p.p.IsOnCurve() {
		return nil, ErrNotOnCurve
	}
	return p, nil
}

type bn254Point struct {
	p bn254.G1Affine
}

func (p *bn254Point) Coordinates() (x, y []byte) {
	xb := p.p.X.Bytes()
	yb := p.p.Y.Bytes()
	return append([]byte(nil), xb[:]...), append([]byte(nil), yb[:]...)
}

func (p *bn254Point) IsIdentity() bool {
	return p.p.IsInfinity()
}

func (p *bn254Point) Add(q Point) Point {
	o, ok := q.(*bn254Point)
	if !ok {
		panic("curves: type mismatch")
	}
	r := &bn254Point{}
	r.p.Add(&p.p, &o.p)
	return r
}

func (p *bn254Point) Neg() Point {
	r := &bn254Point{}
	r.p.Neg(&p.p)
	return r
}

func (p *bn254Point) ScalarMult(k *big.Int) Point {
	r := &bn254Point{}
	if k.Sign() == 0 || p.IsIdentity() {
		return r
	}
	r.p.ScalarMultiplication(&p.p, new(big.Int).Set(k))
	return r
}

func (p *bn254Point) Equal(q Point) bool {
	o, ok := q.(*bn254Point)
	if !ok {
		return false
	}
	return p.p.Equal(&o.p)
}
