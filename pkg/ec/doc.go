/*
Package ec implements point arithmetic, key generation and ECDSA verification
over named elliptic curve groups.

A Group is resolved by name (see SupportedCurves) or from a TPM curve
identifier.  Points cross the API as G1Point values: the affine x and y
coordinates, big-endian, each left-padded to the coordinate size.  The point
at infinity has no affine coordinates and is represented by a fixed sentinel
returned by Group.Identity.  It is all zeros on the short Weierstrass curves
and (0, 1) on Ed25519.

Scalars are big-endian bytebuf.Buffer values of any length and are reduced
modulo the group order before use.

	g, _ := ec.NewGroup("secp256k1")
	kp, _ := g.NewKeyPair()
	ok, err := g.VerifyECDSA(kp.Public(), digest, r, s)

Errors wrap ErrCurve or ErrPointFormat and may be matched with errors.Is.  A
signature that fails to verify is not an error.

Logging goes through zerolog and is silent until SetLogger is called.
*/
package ec
