package ec

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-tpm-ec/internal/logging"
)

func allGroups(t testing.TB) []*Group {
	t.Helper()
	var groups []*Group
	for _, name := range SupportedCurves() {
		g, err := NewGroup(name)
		require.NoError(t, err, name)
		groups = append(groups, g)
	}
	return groups
}

func TestNewGroup(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		coordSize int
	}{
		{"secp256k1", "secp256k1", 32},
		{"prime256v1", "P-256", 32},
		{"secp224r1", "P-224", 28},
		{"P-384", "P-384", 48},
		{"secp521r1", "P-521", 66},
		{"ed25519", "Ed25519", 32},
		{"alt_bn128", "BN254", 32},
	}

	for _, test := range tests {
		g, err := NewGroup(test.name)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.canonical, g.Name())
		assert.Equal(t, test.canonical, g.String())
		assert.Equal(t, test.coordSize, g.CoordinateSize())
		assert.Equal(t, 2*test.coordSize, g.PointSize())
	}
}

func TestNewGroupUnknown(t *testing.T) {
	_, err := NewGroup("brainpoolP256r1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCurve))

	var ecErr Error
	require.True(t, errors.As(err, &ecErr))
	assert.Contains(t, ecErr.Description, "brainpoolP256r1")

	assert.Panics(t, func() { MustNewGroup("") })
}

func TestGroupParams(t *testing.T) {
	g := MustNewGroup("secp256k1")
	n, ok := new(big.Int).SetString(
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	require.True(t, ok)
	assert.Equal(t, 0, n.Cmp(g.Order()))
	assert.Equal(t, int64(1), g.Cofactor().Int64())
	assert.Equal(t, 32, g.ScalarSize())

	// Accessors hand out copies.
	g.Order().SetInt64(7)
	assert.Equal(t, 0, n.Cmp(g.Order()))

	ed := MustNewGroup("Ed25519")
	assert.Equal(t, int64(8), ed.Cofactor().Int64())
	assert.Equal(t, 255, ed.Modulus().BitLen())

	p521 := MustNewGroup("P-521")
	assert.Equal(t, 66, p521.ScalarSize())
}

func TestIdentitySentinel(t *testing.T) {
	for _, g := range allGroups(t) {
		id := g.Identity()
		require.Equal(t, g.PointSize(), id.Len(), g.Name())
		assert.True(t, g.IsAtInfinity(id), g.Name())

		want := make([]byte, g.PointSize())
		if g.Name() == "Ed25519" {
			want[len(want)-1] = 1
		}
		assert.Equal(t, want, id.Buffer().Bytes(), g.Name())

		assert.False(t, g.IsAtInfinity(g.Generator()), g.Name())
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	defer logging.Set(zerolog.Nop())

	_, err := NewGroup("no-such-curve")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "unknown curve name")
	assert.Contains(t, buf.String(), `"component":"ec"`)
	assert.Same(t, logger(), logger())
}
