package curves

import (
	"errors"
	"math/big"
	"strings"
)

var (
	// ErrNotCanonical is returned when a coordinate is not smaller than the
	// field modulus.
	ErrNotCanonical = errors.New("curves: coordinate is not a canonical field element")

	// ErrNotOnCurve is returned when coordinates do not satisfy the curve
	// equation.
	ErrNotOnCurve = errors.New("curves: point is not on the curve")
)

// Point represents an element of a curve group in the backend's native
// representation. Points are immutable; every operation returns a new point.
type Point interface {
	// Coordinates returns the affine coordinates as big-endian byte strings,
	// each left-padded to the curve's coordinate size. The identity returns
	// the curve's sentinel coordinates.
	Coordinates() (x, y []byte)

	// IsIdentity reports whether this is the group identity.
	IsIdentity() bool

	// Add returns the group sum of this point and q.
	Add(q Point) Point

	// Neg returns the group inverse of this point.
	Neg() Point

	// ScalarMult returns k * P. k must be in [0, Order()).
	ScalarMult(k *big.Int) Point

	// Equal reports whether both points are the same group element.
	Equal(q Point) bool
}

// Curve defines the interface for the group operations the EC layer is
// built on.
type Curve interface {
	// Name returns the canonical name of the curve.
	Name() string

	// CoordinateSize returns the byte width of one encoded coordinate.
	CoordinateSize() int

	// Modulus returns the prime of the underlying field.
	Modulus() *big.Int

	// Order returns the order of the generator.
	Order() *big.Int

	// Cofactor returns the curve's cofactor.
	Cofactor() *big.Int

	// Generator returns the base point G.
	Generator() Point

	// Identity returns the group identity.
	Identity() Point

	// ScalarBaseMult computes k * G. k must be in [0, Order()).
	ScalarBaseMult(k *big.Int) Point

	// NewPoint builds a point from big-endian affine coordinates of exactly
	// CoordinateSize bytes each. The sentinel coordinates of the identity are
	// not accepted here.
	NewPoint(x, y []byte) (Point, error)
}

// Canonical curve names.
const (
	NameSecp256k1 = "secp256k1"
	NameP224      = "P-224"
	NameP256      = "P-256"
	NameP384      = "P-384"
	NameP521      = "P-521"
	NameEd25519   = "Ed25519"
	NameBN254     = "BN254"
)

var registry = map[string]func() Curve{
	"secp256k1":    NewSecp256k1,
	"p-224":        NewP224,
	"secp224r1":    NewP224,
	"p-256":        NewP256,
	"prime256v1":   NewP256,
	"secp256r1":    NewP256,
	"p-384":        NewP384,
	"secp384r1":    NewP384,
	"p-521":        NewP521,
	"secp521r1":    NewP521,
	"ed25519":      NewEd25519,
	"edwards25519": NewEd25519,
	"bn254":        NewBN254,
	"bn256":        NewBN254,
	"alt_bn128":    NewBN254,
}

// Lookup resolves a curve name or alias, ignoring case.
func Lookup(name string) (Curve, bool) {
	newFn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return newFn(), true
}

// Names returns the canonical names of every supported curve.
func Names() []string {
	return []string{NameSecp256k1, NameP224, NameP256, NameP384, NameP521,
		NameEd25519, NameBN254}
}

