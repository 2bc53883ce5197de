// Package ed25519 implements [group.Group] over the prime-order subgroup of
// edwards25519, using filippo.io/edwards25519.
//
// Unlike the other groups in this repository, scalars use the little-endian
// encoding of RFC 8032. Decoded points are checked for torsion so that every
// accepted point lies in the subgroup of order l.
package ed25519
