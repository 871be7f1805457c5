package ec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-tpm/tpm2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

func TestNewGroupFromTPMCurve(t *testing.T) {
	tests := []struct {
		id   tpm2.EllipticCurve
		name string
	}{
		{tpm2.CurveNISTP224, "P-224"},
		{tpm2.CurveNISTP256, "P-256"},
		{tpm2.CurveNISTP384, "P-384"},
		{tpm2.CurveNISTP521, "P-521"},
	}

	for _, test := range tests {
		g, err := NewGroupFromTPMCurve(test.id)
		require.NoError(t, err)
		assert.Equal(t, test.name, g.Name())

		id, ok := g.TPMCurveID()
		require.True(t, ok)
		assert.Equal(t, test.id, id)
	}

	for _, id := range []tpm2.EllipticCurve{tpm2.CurveNISTP192, tpm2.CurveBNP256,
		tpm2.CurveBNP638, tpm2.CurveSM2P256, 0x7fff} {
		_, err := NewGroupFromTPMCurve(id)
		assert.True(t, errors.Is(err, ErrCurve), "curve 0x%04x", uint16(id))
	}

	for _, name := range []string{"secp256k1", "Ed25519", "BN254"} {
		_, ok := MustNewGroup(name).TPMCurveID()
		assert.False(t, ok, name)
	}
}

func TestTPMPointRoundTrip(t *testing.T) {
	g := MustNewGroup("P-256")
	kp, err := g.NewKeyPair()
	require.NoError(t, err)

	tp, err := g.TPMPoint(kp.Public())
	require.NoError(t, err)
	assert.Len(t, tp.XRaw, 32)
	assert.Len(t, tp.YRaw, 32)

	pt, err := g.PointFromTPM(tp)
	require.NoError(t, err)
	assert.True(t, pt.Equal(kp.Public()))

	_, err = g.TPMPoint(g.Identity())
	assert.True(t, errors.Is(err, ErrPointFormat))
}

func TestPointFromTPMStrippedZeros(t *testing.T) {
	g := MustNewGroup("P-256")

	// Find a multiple of G whose x coordinate starts with a zero byte.
	var pt G1Point
	for k := int64(1); ; k++ {
		pt = g.GeneratorMul(scalar(k))
		if pt.X().Byte(0) == 0 {
			break
		}
	}

	tp := tpm2.ECPoint{
		XRaw: new(big.Int).SetBytes(pt.X().Bytes()).Bytes(),
		YRaw: pt.Y().Bytes(),
	}
	require.Less(t, len(tp.XRaw), 32)

	got, err := g.PointFromTPM(tp)
	require.NoError(t, err)
	assert.True(t, got.Equal(pt))
}

func TestPointFromTPMErrors(t *testing.T) {
	g := MustNewGroup("P-384")

	_, err := g.PointFromTPM(tpm2.ECPoint{
		XRaw: make([]byte, 49),
		YRaw: make([]byte, 48),
	})
	assert.True(t, errors.Is(err, ErrPointFormat))

	gen := g.Generator()
	_, err = g.PointFromTPM(tpm2.ECPoint{
		XRaw: gen.X().Bytes(),
		YRaw: flipBit(gen.Y(), 0).Bytes(),
	})
	assert.True(t, errors.Is(err, ErrPointFormat))

	_, err = g.PointFromTPM(tpm2.ECPoint{
		XRaw: bytebuf.Make(48).Bytes(),
		YRaw: bytebuf.Make(48).Bytes(),
	})
	assert.True(t, errors.Is(err, ErrPointFormat))
}
