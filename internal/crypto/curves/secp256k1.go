package curves

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 implements Curve with the decred secp256k1 Jacobian arithmetic.
type Secp256k1 struct{}

// NewSecp256k1 returns the secp256k1 curve.
func NewSecp256k1() Curve {
	return &Secp256k1{}
}

func (c *Secp256k1) Name() string {
	return NameSecp256k1
}

func (c *Secp256k1) CoordinateSize() int {
	return 32
}

func (c *Secp256k1) Modulus() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().P)
}

func (c *Secp256k1) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

func (c *Secp256k1) Cofactor() *big.Int {
	return big.NewInt(1)
}

func (c *Secp256k1) Generator() Point {
	var g secp256k1.JacobianPoint
	one := new(secp256k1.ModNScalar).SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &g)
	return newSecp256k1Point(&g)
}

func (c *Secp256k1) Identity() Point {
	return &secp256k1Point{}
}

func (c *Secp256k1) ScalarBaseMult(k *big.Int) Point {
	if k.Sign() == 0 {
		return c.Identity()
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(toModNScalar(k), &r)
	return newSecp256k1Point(&r)
}

func (c *Secp256k1) NewPoint(x, y []byte) (Point, error) {
	if len(x) != 32 || len(y) != 32 {
		return nil, ErrNotOnCurve
	}
	var fx, fy secp256k1.FieldVal
	if fx.SetByteSlice(x) || fy.SetByteSlice(y) {
		return nil, ErrNotCanonical
	}

	// y^2 = x^3 + 7
	var lhs, rhs secp256k1.FieldVal
	lhs.SquareVal(&fy).Normalize()
	rhs.SquareVal(&fx).Mul(&fx).AddInt(7).Normalize()
	if !lhs.Equals(&rhs) {
		return nil, ErrNotOnCurve
	}

	p := &secp256k1Point{}
	p.p.X.Set(&fx)
	p.p.Y.Set(&fy)
	p.p.Z.SetInt(1)
	return p, nil
}

// secp256k1Point holds an affine point (Z = 1) or the identity (all zero).
type secp256k1Point struct {
	p secp256k1.JacobianPoint
}

// newSecp256k1Point normalizes a Jacobian result to affine form.
func newSecp256k1Point(j *secp256k1.JacobianPoint) *secp256k1Point {
	if (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero() {
		return &secp256k1Point{}
	}
	p := &secp256k1Point{}
	p.p.Set(j)
	p.p.ToAffine()
	return p
}

func (p *secp256k1Point) Coordinates() (x, y []byte) {
	if p.IsIdentity() {
		return make([]byte, 32), make([]byte, 32)
	}
	xb := p.p.X.Bytes()
	yb := p.p.Y.Bytes()
	return append([]byte(nil), xb[:]...), append([]byte(nil), yb[:]...)
}

func (p *secp256k1Point) IsIdentity() bool {
	return (p.p.X.IsZero() && p.p.Y.IsZero()) || p.p.Z.IsZero()
}

func (p *secp256k1Point) Add(q Point) Point {
	o, ok := q.(*secp256k1Point)
	if !ok {
		panic("curves: type mismatch")
	}
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &r)
	return newSecp256k1Point(&r)
}

func (p *secp256k1Point) Neg() Point {
	if p.IsIdentity() {
		return &secp256k1Point{}
	}
	r := &secp256k1Point{}
	r.p.Set(&p.p)
	r.p.Y.Negate(1).Normalize()
	return r
}

func (p *secp256k1Point) ScalarMult(k *big.Int) Point {
	if k.Sign() == 0 || p.IsIdentity() {
		return &secp256k1Point{}
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(toModNScalar(k), &p.p, &r)
	return newSecp256k1Point(&r)
}

func (p *secp256k1Point) Equal(q Point) bool {
	o, ok := q.(*secp256k1Point)
	if !ok {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.p.X.Equals(&o.p.X) && p.p.Y.Equals(&o.p.Y)
}

// toModNScalar packs k, already reduced mod N, into a ModNScalar.
func toModNScalar(k *big.Int) *secp256k1.ModNScalar {
	var buf [32]byte
	k.FillBytes(buf[:])
	s := new(secp256k1.ModNScalar)
	s.SetBytes(&buf)
	return s
}
