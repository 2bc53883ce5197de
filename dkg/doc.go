// Package dkg implements verifiable distributed key generation for a (t, n)
// threshold scheme.
//
// Each of n parties contributes a random secret u_i. The joint public key is
// Y = sum u_i*G; no party ever learns sum u_i, but every party ends up with a
// Shamir share x_i of it, and any t+1 shares reconstruct it.
//
// # Phases
//
// Every phase consumes the complete output of the previous phase from all n
// parties. Inputs are slices indexed by party: slot k belongs to party k+1.
//
//  1. [DKG.NewKeys] samples u_i, y_i = u_i*G and a Paillier key pair.
//  2. [DKG.Phase1Broadcast] commits to y_i. Broadcasts are exchanged first,
//     decommitments only once all broadcasts are in, so no party can choose
//     its key after seeing the others.
//  3. [DKG.VerifyCommitmentsAndShare] opens all commitments and deals a
//     Feldman sharing of u_i. Share k goes privately to party k+1.
//  4. [DKG.VerifySharesAndProve] checks every received share against its
//     sender's commitments, sums them into x_i and proves knowledge of x_i.
//  5. [DKG.VerifyKnowledgeProofs] checks all n proofs.
//
// [DKG.Reconstruct] recombines t+1 shares for auditing.
//
// # Errors
//
// Batch checks are all-or-nothing. A failing batch returns a [*CulpritError]
// that wraps [ErrInvalidKey] or [ErrInvalidSS] and names every party that
// failed, so callers can both match the sentinel with errors.Is and decide
// whom to exclude. Slices of the wrong length return [ErrLengthMismatch]
// before any cryptographic check runs.
//
// The package holds no per-party state and does not communicate. See the
// session package for a phase-gated participant.
package dkg
