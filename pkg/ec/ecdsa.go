package ec

import (
	"crypto/subtle"
	"math/big"

	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

// VerifyECDSASignature verifies an ECDSA signature over a pre-hashed digest
// on the named curve.  See Group.VerifyECDSA.
func VerifyECDSASignature(curveName string, publicKey G1Point, digest, sigR,
	sigS bytebuf.Buffer) (bool, error) {

	g, err := NewGroup(curveName)
	if err != nil {
		return false, err
	}
	return g.VerifyECDSA(publicKey, digest, sigR, sigS)
}

// VerifyECDSA verifies the signature (r, s) of digest under publicKey.
//
// An invalid signature, including r or s outside [1, n-1] and a public key
// at infinity, yields false with a nil error.  Only a malformed public key
// is an error.  The verification equation is evaluated whatever the range
// checks say and the outcomes are combined without branching.
func (g *Group) VerifyECDSA(publicKey G1Point, digest, sigR,
	sigS bytebuf.Buffer) (bool, error) {

	q, err := g.Decode(publicKey)
	if err != nil {
		logger().Debug().Str("curve", g.Name()).Err(err).
			Msg("malformed ecdsa public key")
		return false, err
	}

	n := g.order
	r := new(big.Int).SetBytes(sigR.Bytes())
	s := new(big.Int).SetBytes(sigS.Bytes())
	rOK := inRange(r, n)
	sOK := inRange(s, n)
	qOK := 1 - boolToInt(q.IsIdentity())

	// Out-of-range values are replaced by 1 so the arithmetic below is
	// always defined.
	one := big.NewInt(1)
	rEff := selectInt(rOK, r, one)
	sEff := selectInt(sOK, s, one)

	e := hashToInt(digest.Bytes(), n)
	w := new(big.Int).ModInverse(sEff, n)

	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, n)
	u2 := new(big.Int).Mul(rEff, w)
	u2.Mod(u2, n)

	sum := g.curve.ScalarBaseMult(u1).Add(q.p.ScalarMult(u2))
	notInf := 1 - boolToInt(sum.IsIdentity())

	x, _ := sum.Coordinates()
	v := new(big.Int).SetBytes(x)
	v.Mod(v, n)

	match := subtle.ConstantTimeCompare(v.FillBytes(make([]byte, g.orderLen)),
		rEff.FillBytes(make([]byte, g.orderLen)))

	valid := rOK & sOK & qOK & notInf & match
	logger().Debug().Str("curve", g.Name()).Bool("valid", valid == 1).
		Msg("ecdsa verification complete")
	return valid == 1, nil
}

// hashToInt converts a digest to an integer, keeping the leftmost bits of
// the digest up to the bit length of the order (FIPS 186-4 section 6.4).
func hashToInt(hash []byte, n *big.Int) *big.Int {
	orderBits := n.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(hash) > orderBytes {
		hash = hash[:orderBytes]
	}
	ret := new(big.Int).SetBytes(hash)
	excess := len(hash)*8 - orderBits
	if excess > 0 {
		ret.Rsh(ret, uint(excess))
	}
	return ret
}

// inRange returns 1 if 0 < v < n and 0 otherwise.
func inRange(v, n *big.Int) int {
	return boolToInt(v.Sign() > 0) & boolToInt(v.Cmp(n) < 0)
}

func selectInt(cond int, a, b *big.Int) *big.Int {
	if cond == 1 {
		return a
	}
	return b
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
