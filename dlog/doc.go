// Package dlog implements Schnorr proofs of knowledge of a discrete
// logarithm, made non-interactive with the Fiat-Shamir transform.
//
// The challenge binds the generator, the public key and the prover's
// commitment, so a proof cannot be replayed against a different key.
package dlog
