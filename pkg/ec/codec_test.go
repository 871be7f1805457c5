package ec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

func TestDecodeGenerator(t *testing.T) {
	for _, g := range allGroups(t) {
		gen := g.Generator()
		p, err := g.Decode(gen)
		require.NoError(t, err, g.Name())
		assert.False(t, p.IsIdentity())
		assert.Same(t, g, p.Group())
		assert.True(t, gen.Equal(g.Encode(p)), g.Name())
		assert.True(t, gen.Equal(p.Encode()), g.Name())

		ok, err := g.IsOnCurve(gen)
		require.NoError(t, err)
		assert.True(t, ok, g.Name())
	}
}

func TestDecodeSentinel(t *testing.T) {
	for _, g := range allGroups(t) {
		p, err := g.Decode(g.Identity())
		require.NoError(t, err, g.Name())
		assert.True(t, p.IsIdentity(), g.Name())
		assert.True(t, g.Identity().Equal(p.Encode()), g.Name())

		ok, err := g.IsOnCurve(g.Identity())
		require.NoError(t, err)
		assert.True(t, ok, g.Name())
	}
}

func TestDecodeWrongLength(t *testing.T) {
	for _, g := range allGroups(t) {
		for _, n := range []int{0, 1, g.PointSize() - 1, g.PointSize() + 1} {
			pt := NewG1Point(bytebuf.Make(n))
			_, err := g.Decode(pt)
			assert.True(t, errors.Is(err, ErrPointFormat), "%s len %d", g.Name(), n)

			_, err = g.IsOnCurve(pt)
			assert.True(t, errors.Is(err, ErrPointFormat), "%s len %d", g.Name(), n)
		}
	}
}

func TestDecodeOffCurve(t *testing.T) {
	for _, g := range allGroups(t) {
		bb := g.Generator().Buffer()
		last := bb.Len() - 1
		bb.Put(last, bb.Byte(last)^0x01)
		pt := NewG1Point(bb)

		_, err := g.Decode(pt)
		assert.True(t, errors.Is(err, ErrPointFormat), g.Name())

		ok, err := g.IsOnCurve(pt)
		require.NoError(t, err)
		assert.False(t, ok, g.Name())
	}
}

func TestDecodeNonCanonical(t *testing.T) {
	for _, g := range allGroups(t) {
		w := g.CoordinateSize()
		x := bytebuf.Own(g.Modulus().FillBytes(make([]byte, w)))
		pt := NewG1Point(bytebuf.Concat(x, g.Generator().Y()))

		_, err := g.Decode(pt)
		assert.True(t, errors.Is(err, ErrPointFormat), g.Name())

		ok, err := g.IsOnCurve(pt)
		require.NoError(t, err)
		assert.False(t, ok, g.Name())
	}
}

func TestEncodeGroupMismatch(t *testing.T) {
	k1 := MustNewGroup("secp256k1")
	p256 := MustNewGroup("P-256")
	p, err := p256.Decode(p256.Generator())
	require.NoError(t, err)
	assert.Panics(t, func() { k1.Encode(p) })
}

func TestG1Point(t *testing.T) {
	g := MustNewGroup("secp256k1")
	gen := g.Generator()
	assert.Equal(t,
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		gen.X().HexString())
	assert.Equal(t,
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		gen.Y().HexString())

	parsed, err := ParseG1Point(gen.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(gen))

	_, err = ParseG1Point("zz")
	assert.True(t, errors.Is(err, bytebuf.ErrFormat))

	// NewG1Point and Buffer copy.
	bb := gen.Buffer()
	pt := NewG1Point(bb)
	bb.Put(0, 0)
	assert.True(t, pt.Equal(gen))
}

func FuzzDecode(f *testing.F) {
	for _, name := range []string{"secp256k1", "P-256", "Ed25519", "BN254"} {
		g := MustNewGroup(name)
		f.Add(name, g.Generator().Buffer().Bytes())
		f.Add(name, g.Identity().Buffer().Bytes())
	}
	f.Add("P-256", []byte{0x01})

	f.Fuzz(func(t *testing.T, name string, raw []byte) {
		g, err := NewGroup(name)
		if err != nil {
			return
		}
		pt := NewG1Point(bytebuf.FromBytes(raw))
		p, err := g.Decode(pt)

		onCurve, lenErr := g.IsOnCurve(pt)
		if len(raw) != g.PointSize() {
			require.Error(t, err)
			require.Error(t, lenErr)
			return
		}
		require.NoError(t, lenErr)
		require.Equal(t, err == nil, onCurve)
		if err != nil {
			require.True(t, errors.Is(err, ErrPointFormat))
			return
		}
		require.True(t, pt.Equal(p.Encode()))
	})
}
