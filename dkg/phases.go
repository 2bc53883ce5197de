package dkg

import (
	"fmt"
	"io"

	"github.com/f3rmion/fydkg/commitment"
	"github.com/f3rmion/fydkg/dlog"
	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/vss"
)

// Phase1Broadcast commits to the party's public point. The broadcast goes
// out first; the decommitment is held back until every party's broadcast
// has arrived.
func (d *DKG) Phase1Broadcast(r io.Reader, keys *Keys) (*BroadcastMessage1, *DecommitMessage1, error) {
	blind, err := commitment.SampleBlinding(r, commitment.SecurityBits)
	if err != nil {
		return nil, nil, fmt.Errorf("dkg: sample blinding factor: %w", err)
	}
	com := commitment.Commit(d.suite.hasher, keys.public.Bytes(), blind)

	bc := &BroadcastMessage1{
		EncryptionKey: keys.EncryptionKey(),
		Commitment:    com,
	}
	dc := &DecommitMessage1{
		BlindingFactor: blind,
		PublicPoint:    keys.public,
	}
	return bc, dc, nil
}

// VerifyCommitmentsAndShare opens every party's phase-1 commitment and, if
// all n open, Feldman-shares the party's secret with threshold t.
//
// decommits[k] and broadcasts[k] belong to party k+1. Any failed opening
// rejects the whole batch with ErrInvalidKey.
func (d *DKG) VerifyCommitmentsAndShare(r io.Reader, keys *Keys, decommits []*DecommitMessage1, broadcasts []*BroadcastMessage1) (*Dealing, error) {
	n := d.params.ShareCount
	if len(decommits) != n {
		return nil, lengthError("decommitments", len(decommits), n)
	}
	if len(broadcasts) != n {
		return nil, lengthError("broadcasts", len(broadcasts), n)
	}
	if err := d.checkIndex(keys.index); err != nil {
		return nil, err
	}

	var culprits []int
	for k := 0; k < n; k++ {
		if !d.opens(broadcasts[k], decommits[k]) {
			culprits = append(culprits, k+1)
		}
	}
	if len(culprits) > 0 {
		return nil, &CulpritError{Err: ErrInvalidKey, Parties: culprits}
	}

	comms, shares, err := vss.Share(r, d.group(), d.params.Threshold, n, keys.secret)
	if err != nil {
		return nil, fmt.Errorf("dkg: share secret: %w", err)
	}
	return &Dealing{Index: keys.index, Commitments: comms, Shares: shares}, nil
}

func (d *DKG) opens(bc *BroadcastMessage1, dc *DecommitMessage1) bool {
	if bc == nil || dc == nil || dc.PublicPoint == nil || bc.EncryptionKey == nil {
		return false
	}
	return commitment.Verify(d.suite.hasher, bc.Commitment, dc.PublicPoint.Bytes(), dc.BlindingFactor)
}

// VerifySharesAndProve checks the shares this party received and aggregates
// them into the joint key.
//
// publicPoints, shares and commitments are indexed by sender: slot k holds
// the revealed y_{k+1}, the evaluation f_{k+1}(i) and party k+1's coefficient
// commitments. A sender fails if its share does not satisfy the Feldman
// equation at this party's index, if its polynomial does not have degree t,
// or if its zeroth commitment is not the point it revealed. Any failure
// rejects the whole batch with ErrInvalidSS and nothing is aggregated.
//
// On success it returns Y = sum y_j, x_i = sum f_j(i) and a proof of
// knowledge of x_i.
func (d *DKG) VerifySharesAndProve(r io.Reader, keys *Keys, publicPoints []group.Point, shares []group.Scalar, commitments []*vss.Commitments) (*SharedKeys, *dlog.Proof, error) {
	n := d.params.ShareCount
	if len(publicPoints) != n {
		return nil, nil, lengthError("public points", len(publicPoints), n)
	}
	if len(shares) != n {
		return nil, nil, lengthError("shares", len(shares), n)
	}
	if len(commitments) != n {
		return nil, nil, lengthError("commitment sets", len(commitments), n)
	}
	if err := d.checkIndex(keys.index); err != nil {
		return nil, nil, err
	}

	g := d.group()
	var culprits []int
	for k := 0; k < n; k++ {
		if !d.shareValid(publicPoints[k], shares[k], commitments[k], keys.index) {
			culprits = append(culprits, k+1)
		}
	}
	if len(culprits) > 0 {
		return nil, nil, &CulpritError{Err: ErrInvalidSS, Parties: culprits}
	}

	shared := &SharedKeys{
		PublicKey:   group.SumPoints(g, publicPoints),
		SecretShare: group.SumScalars(g, shares),
	}
	proof, err := dlog.Prove(r, g, shared.SecretShare)
	if err != nil {
		return nil, nil, fmt.Errorf("dkg: prove share: %w", err)
	}
	return shared, proof, nil
}

func (d *DKG) shareValid(y group.Point, share group.Scalar, comms *vss.Commitments, index int) bool {
	if y == nil || share == nil || comms == nil {
		return false
	}
	if comms.Degree() != d.params.Threshold {
		return false
	}
	if !comms.Secret().Equal(y) {
		return false
	}
	return comms.Validate(d.group(), share, index) == nil
}

// VerifyKnowledgeProofs checks every party's proof of knowledge of its
// aggregated share. publicPoints is only length-checked; binding the proven
// point to the expected verification share is left to callers that hold
// the coefficient commitments (see PublicShares).
func (d *DKG) VerifyKnowledgeProofs(proofs []*dlog.Proof, publicPoints []group.Point) error {
	n := d.params.ShareCount
	if len(proofs) != n {
		return lengthError("proofs", len(proofs), n)
	}
	if len(publicPoints) != n {
		return lengthError("public points", len(publicPoints), n)
	}

	var culprits []int
	for k, p := range proofs {
		if err := dlog.Verify(d.group(), p); err != nil {
			culprits = append(culprits, k+1)
		}
	}
	if len(culprits) > 0 {
		return &CulpritError{Err: ErrInvalidKey, Parties: culprits}
	}
	return nil
}

// PublicShares returns the verification share X_j = x_j*G of every party,
// computed from the n coefficient commitment sets alone.
func (d *DKG) PublicShares(commitments []*vss.Commitments) ([]group.Point, error) {
	n := d.params.ShareCount
	if len(commitments) != n {
		return nil, lengthError("commitment sets", len(commitments), n)
	}
	g := d.group()
	out := make([]group.Point, n)
	for j := 1; j <= n; j++ {
		sum := g.NewPoint()
		for k, c := range commitments {
			if c == nil {
				return nil, &CulpritError{Err: ErrInvalidSS, Parties: []int{k + 1}}
			}
			p, err := c.Evaluate(g, j)
			if err != nil {
				return nil, fmt.Errorf("dkg: evaluate commitments of party %d: %w", k+1, err)
			}
			sum = g.NewPoint().Add(sum, p)
		}
		out[j-1] = sum
	}
	return out, nil
}

// Reconstruct recovers the joint secret sum u_j from at least t+1 shares.
// indices are 1-based party indices; shares[k] is x_{indices[k]}.
//
// It exists for auditing a completed run. The live protocol never
// reconstructs the key.
func (d *DKG) Reconstruct(indices []int, shares []group.Scalar) (group.Scalar, error) {
	if len(indices) != len(shares) {
		return nil, fmt.Errorf("%w: %d indices, %d shares", ErrLengthMismatch, len(indices), len(shares))
	}
	if len(indices) < d.params.Threshold+1 {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewShares, len(indices), d.params.Threshold+1)
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if err := d.checkIndex(idx); err != nil {
			return nil, err
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, idx)
		}
		seen[idx] = true
	}
	return vss.Reconstruct(d.group(), indices, shares)
}
