// Package bjj provides a Baby Jubjub implementation of [group.Group].
//
// Baby Jubjub is a twisted Edwards curve defined over the scalar field of
// BN254 (alt_bn128). Keys generated over it can be consumed by circuits that
// verify threshold signatures inside a SNARK.
//
// The curve is
//
//	a*x^2 + y^2 = 1 + d*x^2*y^2
//
// with a = 168700 and d = 168696 over the BN254 scalar field, and has a
// prime-order subgroup of size
//
//	2736030358979909402780800718157159386076813972158567259200215660948447373041
//
// Arithmetic is delegated to gnark-crypto. Scalars are big.Int values kept
// reduced modulo the subgroup order and encoded as 32 big-endian bytes.
//
//	g := &bjj.BJJ{}
//	d, err := dkg.New(dkg.NewSuite(g), dkg.Parameters{Threshold: 1, ShareCount: 3})
package bjj
