// Package secp256k1 implements [group.Group] for the secp256k1 curve using
// the decred secp256k1 package.
//
// Scalars are encoded as 32 big-endian bytes. Points use the 33-byte SEC1
// compressed form; the point at infinity, which SEC1 cannot express in
// compressed form, is encoded as 33 zero bytes.
package secp256k1
