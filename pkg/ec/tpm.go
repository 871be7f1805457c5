package ec

import (
	"fmt"

	"github.com/google/go-tpm/tpm2"

	"github.com/smallyu/go-tpm-ec/internal/crypto/curves"
	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
)

// tpmCurves maps the TPM curve identifiers this package can serve.
var tpmCurves = map[tpm2.EllipticCurve]string{
	tpm2.CurveNISTP224: curves.NameP224,
	tpm2.CurveNISTP256: curves.NameP256,
	tpm2.CurveNISTP384: curves.NameP384,
	tpm2.CurveNISTP521: curves.NameP521,
}

// NewGroupFromTPMCurve returns the group for a TPM_ECC_CURVE identifier.
// P-192, the BN curves and SM2 are not supported.
func NewGroupFromTPMCurve(id tpm2.EllipticCurve) (*Group, error) {
	name, ok := tpmCurves[id]
	if !ok {
		str := fmt.Sprintf("unsupported TPM curve 0x%04x", uint16(id))
		return nil, makeError(ErrCurve, str)
	}
	return NewGroup(name)
}

// TPMCurveID returns the TPM_ECC_CURVE identifier of the group.  The second
// return value is false for curves without a TPM_ECC_CURVE identifier.
func (g *Group) TPMCurveID() (tpm2.EllipticCurve, bool) {
	for id, name := range tpmCurves {
		if name == g.Name() {
			return id, true
		}
	}
	return 0, false
}

// TPMPoint converts a G1Point to the TPMS_ECC_POINT form used in TPM public
// areas.  The point must decode on this group and must not be the identity,
// which has no TPM representation.
func (g *Group) TPMPoint(pt G1Point) (tpm2.ECPoint, error) {
	p, err := g.Decode(pt)
	if err != nil {
		return tpm2.ECPoint{}, err
	}
	if p.IsIdentity() {
		str := fmt.Sprintf("%s point at infinity has no TPM encoding",
			g.Name())
		return tpm2.ECPoint{}, makeError(ErrPointFormat, str)
	}
	return tpm2.ECPoint{XRaw: pt.X().Bytes(), YRaw: pt.Y().Bytes()}, nil
}

// PointFromTPM converts a TPMS_ECC_POINT to a validated G1Point other than
// the identity.  TPMs may strip leading zeros from coordinates, so each one
// is left-padded to the coordinate size.
func (g *Group) PointFromTPM(tp tpm2.ECPoint) (G1Point, error) {
	w := g.CoordinateSize()
	x := bytebuf.FromBytes(tp.XRaw)
	y := bytebuf.FromBytes(tp.YRaw)
	if err := x.PadLeft(w, 0); err != nil {
		str := fmt.Sprintf("%s TPM x coordinate is %d bytes, want at most %d",
			g.Name(), len(tp.XRaw), w)
		return G1Point{}, makeError(ErrPointFormat, str)
	}
	if err := y.PadLeft(w, 0); err != nil {
		str := fmt.Sprintf("%s TPM y coordinate is %d bytes, want at most %d",
			g.Name(), len(tp.YRaw), w)
		return G1Point{}, makeError(ErrPointFormat, str)
	}
	pt := G1Point{buf: bytebuf.Concat(x, y)}
	p, err := g.Decode(pt)
	if err != nil {
		return G1Point{}, err
	}
	if p.IsIdentity() {
		str := fmt.Sprintf("%s TPM point decodes to infinity", g.Name())
		return G1Point{}, makeError(ErrPointFormat, str)
	}
	return pt, nil
}
