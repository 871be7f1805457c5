package ec

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

// maxKeyGenAttempts bounds the retry loop so a broken entropy source fails
// instead of spinning.
const maxKeyGenAttempts = 64

// KeyPair is a private scalar and its public point.  It is immutable; the
// accessors return copies.
type KeyPair struct {
	private bytebuf.Buffer
	public  G1Point
}

// Private returns the private scalar, big-endian and left-padded to the
// byte length of the group order.
func (kp *KeyPair) Private() bytebuf.Buffer {
	return kp.private.Clone()
}

// Public returns the public point.
func (kp *KeyPair) Public() G1Point {
	return kp.public.clone()
}

// NewKeyPair generates a key pair using crypto/rand.
func (g *Group) NewKeyPair() (*KeyPair, error) {
	return g.NewKeyPairFromReader(rand.Reader)
}

// NewKeyPairFromReader generates a key pair with the private scalar drawn
// uniformly from [1, n-1] using r.  A zero scalar or an identity public
// point is discarded and drawn again.
func (g *Group) NewKeyPairFromReader(r io.Reader) (*KeyPair, error) {
	for attempt := 1; attempt <= maxKeyGenAttempts; attempt++ {
		k, err := rand.Int(r, g.order)
		if err != nil {
			return nil, fmt.Errorf("reading random scalar: %w", err)
		}
		if k.Sign() == 0 {
			logger().Warn().Str("curve", g.Name()).Int("attempt", attempt).
				Msg("drew a zero private scalar, retrying")
			continue
		}
		pub := g.curve.ScalarBaseMult(k)
		if pub.IsIdentity() {
			logger().Warn().Str("curve", g.Name()).Int("attempt", attempt).
				Msg("public point is the identity, retrying")
			continue
		}
		priv := bytebuf.Own(k.FillBytes(make([]byte, g.orderLen)))
		return &KeyPair{private: priv, public: g.encode(pub)}, nil
	}
	return nil, fmt.Errorf("no usable %s scalar after %d attempts",
		g.Name(), maxKeyGenAttempts)
}
