// Package group defines the abstract prime-order group used by the threshold
// key generation protocol.
//
// Three interfaces describe everything the protocol needs from a curve:
//
//   - [Scalar]: elements of the scalar field (integers modulo the group order)
//   - [Point]: elements of the group (points on an elliptic curve)
//   - [Group]: factory, generator, randomness and hashing for one curve
//
// # Mutable receivers
//
// Arithmetic methods set the receiver to the result and return it:
//
//	// y = u*G
//	y := g.NewPoint().ScalarMult(u, g.Generator())
//
//	// x = a + b
//	x := g.NewScalar().Add(a, b)
//
// Operations that can fail (inversion, decoding) return errors rather than
// panicking.
//
// # Implementations
//
// The repository ships four implementations:
//
//   - bls12381: G1 of BLS12-381 (gnark-crypto), the default
//   - bjj: Baby Jubjub (gnark-crypto)
//   - secp256k1: secp256k1 (decred)
//   - ed25519: the prime-order subgroup of edwards25519 (filippo.io)
//
// Implementations must reduce scalars modulo the group order, reject invalid
// encodings in SetBytes, and draw random scalars from the supplied reader.
package group
