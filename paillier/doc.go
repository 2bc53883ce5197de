// Package paillier implements the Paillier cryptosystem, an additively
// homomorphic public-key scheme.
//
// Every key generation participant owns one key pair. The public half is
// broadcast in the first round so that later protocols can send it encrypted
// values and add them without decrypting.
//
// Modular arithmetic runs on constant-time [saferith.Nat] values.
package paillier
