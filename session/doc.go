// Package session wraps the [dkg] phases in a per-party state machine that
// enforces their order and keeps secrets in one place.
//
// Every phase method takes the complete vector of the previous phase's
// messages from all n parties, so a participant cannot move on with partial
// data. In particular the decommitment is only released by Reveal, which
// requires all n phase-1 broadcasts.
//
//	p, err := session.NewParticipant(rand.Reader, suite, params, myIndex)
//	if err != nil {
//		return err
//	}
//
//	bc, _ := p.Commit(rand.Reader)
//	// broadcast bc, collect all n broadcasts
//	dc, _ := p.Reveal(broadcasts)
//	// broadcast dc, collect all n decommitments
//	out, _ := p.Distribute(rand.Reader, decommits)
//	// broadcast out.Commitments, send out.Shares[j] privately to party j
//	proof, _ := p.Aggregate(rand.Reader, &session.Round2Input{
//		Commitments: commitments,
//		Shares:      sharesForMe,
//	})
//	// broadcast proof, collect all n proofs
//	result, err := p.Finalize(proofs)
//
// # Transport Agnostic
//
// This package does not handle network communication. The wire package
// encodes every message, and internal/runner shows an in-memory run.
package session
