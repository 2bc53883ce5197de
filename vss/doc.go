// Package vss implements Feldman verifiable secret sharing over a
// [group.Group].
//
// A dealer samples a degree-t polynomial f with f(0) = secret, hands party i
// the share f(i), and publishes C_k = a_k * G for each coefficient. Party i
// accepts its share only if
//
//	f(i) * G == C_0 + i*C_1 + i^2*C_2 + ... + i^t*C_t
//
// Parties are numbered from 1; index 0 is the secret and never a share.
// Any t+1 shares recover the secret with [Reconstruct].
package vss
