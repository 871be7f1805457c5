package ec

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/smallyu/go-tpm-ec/internal/crypto/curves"
	"github.com/smallyu/go-tpm-ec/internal/logging"
)

// Group is the EC group context: the domain parameters of a named curve.
// A Group is immutable once constructed and may be shared between
// goroutines.
type Group struct {
	curve    curves.Curve
	order    *big.Int
	orderLen int
	infinity G1Point
}

// NewGroup resolves a curve name such as "secp256k1", "P-256"/"prime256v1",
// "P-384", "P-521", "Ed25519" or "BN254".  Names are matched
// case-insensitively.
func NewGroup(name string) (*Group, error) {
	c, ok := curves.Lookup(name)
	if !ok {
		logger().Debug().Str("curve", name).Msg("unknown curve name")
		str := fmt.Sprintf("unknown curve %q", name)
		return nil, makeError(ErrCurve, str)
	}
	g := newGroup(c)
	logger().Debug().Str("curve", g.Name()).Int("coordinate_size",
		g.CoordinateSize()).Msg("group resolved")
	return g, nil
}

// MustNewGroup is like NewGroup but panics on an unknown name.
func MustNewGroup(name string) *Group {
	g, err := NewGroup(name)
	if err != nil {
		panic(err)
	}
	return g
}

func newGroup(c curves.Curve) *Group {
	order := c.Order()
	g := &Group{
		curve:    c,
		order:    order,
		orderLen: (order.BitLen() + 7) / 8,
	}
	g.infinity = g.encode(c.Identity())
	return g
}

// SupportedCurves returns the canonical names of every supported curve.
func SupportedCurves() []string {
	return curves.Names()
}

// Name returns the canonical curve name.
func (g *Group) Name() string {
	return g.curve.Name()
}

// CoordinateSize returns the byte width of one G1Point coordinate.
func (g *Group) CoordinateSize() int {
	return g.curve.CoordinateSize()
}

// PointSize returns the byte length of an encoded G1Point.
func (g *Group) PointSize() int {
	return 2 * g.curve.CoordinateSize()
}

// ScalarSize returns the byte length of a private scalar.
func (g *Group) ScalarSize() int {
	return g.orderLen
}

// Order returns a copy of the group order.
func (g *Group) Order() *big.Int {
	return new(big.Int).Set(g.order)
}

// Modulus returns a copy of the field prime.
func (g *Group) Modulus() *big.Int {
	return g.curve.Modulus()
}

// Cofactor returns a copy of the cofactor.
func (g *Group) Cofactor() *big.Int {
	return g.curve.Cofactor()
}

// Generator returns the encoded base point.
func (g *Group) Generator() G1Point {
	return g.encode(g.curve.Generator())
}

// Identity returns the encoding of the point at infinity.
func (g *Group) Identity() G1Point {
	return g.infinity.clone()
}

// String returns the curve name.
func (g *Group) String() string {
	return g.Name()
}

func logger() *zerolog.Logger {
	return logging.Component("ec")
}

// SetLogger installs the logger used by this package and the rest of the
// library.  The default logger discards everything.
func SetLogger(l zerolog.Logger) {
	logging.Set(l)
}
