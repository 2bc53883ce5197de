// Package bls12381 implements [group.Group] over the G1 subgroup of the
// BLS12-381 pairing-friendly curve, using gnark-crypto.
//
// This is the default group for key generation. Keys generated over G1 can
// later be used by pairing-based threshold schemes.
//
// Scalars are elements of Fr (255 bits) encoded as 32 big-endian bytes.
// Points are encoded in the 48-byte compressed form defined by the zcash
// serialization format; the point at infinity has its own encoding.
//
//	g := bls12381.New()
//	u, _ := g.RandomScalar(rand.Reader)
//	y := g.NewPoint().ScalarMult(u, g.Generator())
package bls12381
