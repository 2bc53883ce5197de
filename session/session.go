package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/fydkg/dkg"
	"github.com/f3rmion/fydkg/dlog"
	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/vss"
)

var (
	// ErrOutOfOrder is returned when a phase method is called before the
	// previous phase completed, or a second time.
	ErrOutOfOrder = errors.New("session: phase called out of order")

	// ErrAborted is returned by every method once a phase has failed.
	ErrAborted = errors.New("session: aborted")

	// ErrOwnMessage is returned when the input vector carries something
	// other than this participant's own message in its slot.
	ErrOwnMessage = errors.New("session: own message altered")

	// ErrMisrouted is returned for a share addressed to another party or
	// placed in the wrong sender slot.
	ErrMisrouted = errors.New("session: misrouted share")
)

type phase int

const (
	phaseNew phase = iota
	phaseCommitted
	phaseRevealed
	phaseDistributed
	phaseAggregated
	phaseFinalized
	phaseAborted
)

// String returns the phase name.
func (p phase) String() string {
	switch p {
	case phaseNew:
		return "new"
	case phaseCommitted:
		return "committed"
	case phaseRevealed:
		return "revealed"
	case phaseDistributed:
		return "distributed"
	case phaseAggregated:
		return "aggregated"
	case phaseFinalized:
		return "finalized"
	case phaseAborted:
		return "aborted"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Participant manages one party's state through a key generation run.
// Create instances using [NewParticipant].
//
// Each method consumes the complete output of the previous phase from all n
// parties and may be called once, in order:
// Commit, Reveal, Distribute, Aggregate, Finalize. A failed check aborts the
// participant for good.
//
// A Participant is not safe for concurrent use.
type Participant struct {
	dkg   *dkg.DKG
	keys  *dkg.Keys
	phase phase

	broadcast  *dkg.BroadcastMessage1
	decommit   *dkg.DecommitMessage1
	broadcasts []*dkg.BroadcastMessage1
	points     []group.Point
	dealing    *dkg.Dealing
	shared     *dkg.SharedKeys
	comms      []*vss.Commitments
	result     *Result
}

// Round2Output is what a participant sends after dealing its secret.
type Round2Output struct {
	// Commitments is broadcast to every participant.
	Commitments *vss.Commitments

	// Shares maps each recipient index (including this participant's own)
	// to its share. Each share must go only to its recipient.
	Shares map[int]*dkg.ShareMessage
}

// Round2Input is what a participant needs from all n dealers. Slot k of each
// slice holds party k+1's message.
type Round2Input struct {
	Commitments []*vss.Commitments
	Shares      []*dkg.ShareMessage
}

// Result is the output of a successful run.
type Result struct {
	// PublicKey is the joint key Y, identical at every participant.
	PublicKey group.Point

	// VerificationShares[k] is x_{k+1}*G.
	VerificationShares []group.Point

	SharedKeys *dkg.SharedKeys

	// Private holds u_i, x_i and the Paillier decryption key. Store it
	// securely.
	Private *dkg.PartyPrivate
}

// NewParticipant samples key material for party index (1 to n).
func NewParticipant(r io.Reader, suite *dkg.Suite, params dkg.Parameters, index int) (*Participant, error) {
	d, err := dkg.New(suite, params)
	if err != nil {
		return nil, err
	}
	keys, err := d.NewKeys(r, index)
	if err != nil {
		return nil, err
	}
	return &Participant{dkg: d, keys: keys}, nil
}

// Index returns this participant's 1-based index.
func (p *Participant) Index() int {
	return p.keys.Index()
}

// Keys returns the bootstrap key material.
func (p *Participant) Keys() *dkg.Keys {
	return p.keys
}

// DKG returns the protocol instance this participant runs.
func (p *Participant) DKG() *dkg.DKG {
	return p.dkg
}

// Result returns the outcome of Finalize, or nil before that.
func (p *Participant) Result() *Result {
	return p.result
}

func (p *Participant) enter(want, next phase) error {
	if p.phase == phaseAborted {
		return ErrAborted
	}
	if p.phase != want {
		return fmt.Errorf("%w: in phase %s, need %s", ErrOutOfOrder, p.phase, want)
	}
	p.phase = next
	return nil
}

// fail aborts on protocol errors. Contract errors leave the state untouched
// so the caller can retry with well-formed input.
func (p *Participant) fail(prev phase, err error) error {
	if errors.Is(err, dkg.ErrLengthMismatch) {
		p.phase = prev
		return err
	}
	p.phase = phaseAborted
	return err
}

// Commit returns the phase-1 broadcast. The matching decommitment stays
// inside the participant until Reveal.
func (p *Participant) Commit(r io.Reader) (*dkg.BroadcastMessage1, error) {
	if err := p.enter(phaseNew, phaseCommitted); err != nil {
		return nil, err
	}
	bc, dc, err := p.dkg.Phase1Broadcast(r, p.keys)
	if err != nil {
		p.phase = phaseNew
		return nil, err
	}
	p.broadcast, p.decommit = bc, dc
	return bc, nil
}

// Reveal takes every party's broadcast and returns the decommitment.
func (p *Participant) Reveal(broadcasts []*dkg.BroadcastMessage1) (*dkg.DecommitMessage1, error) {
	if err := p.enter(phaseCommitted, phaseRevealed); err != nil {
		return nil, err
	}
	n := p.dkg.Parameters().ShareCount
	if len(broadcasts) != n {
		p.phase = phaseCommitted
		return nil, fmt.Errorf("%w: %d broadcasts, want %d", dkg.ErrLengthMismatch, len(broadcasts), n)
	}
	own := broadcasts[p.Index()-1]
	if own == nil || !bytes.Equal(own.Commitment, p.broadcast.Commitment) {
		p.phase = phaseAborted
		return nil, ErrOwnMessage
	}
	p.broadcasts = append([]*dkg.BroadcastMessage1(nil), broadcasts...)
	return p.decommit, nil
}

// Distribute opens all commitments and deals this participant's secret.
func (p *Participant) Distribute(r io.Reader, decommits []*dkg.DecommitMessage1) (*Round2Output, error) {
	if err := p.enter(phaseRevealed, phaseDistributed); err != nil {
		return nil, err
	}
	dealing, err := p.dkg.VerifyCommitmentsAndShare(r, p.keys, decommits, p.broadcasts)
	if err != nil {
		return nil, p.fail(phaseRevealed, err)
	}
	p.dealing = dealing
	p.points = make([]group.Point, len(decommits))
	for k, dc := range decommits {
		p.points[k] = dc.PublicPoint
	}

	shares := make(map[int]*dkg.ShareMessage, len(dealing.Shares))
	for k, s := range dealing.Shares {
		shares[k+1] = &dkg.ShareMessage{Sender: p.Index(), Recipient: k + 1, Share: s}
	}
	return &Round2Output{Commitments: dealing.Commitments, Shares: shares}, nil
}

// Aggregate verifies the shares dealt to this participant and returns its
// proof of knowledge of the aggregated share.
func (p *Participant) Aggregate(r io.Reader, in *Round2Input) (*dlog.Proof, error) {
	if err := p.enter(phaseDistributed, phaseAggregated); err != nil {
		return nil, err
	}
	n := p.dkg.Parameters().ShareCount
	if len(in.Shares) != n || len(in.Commitments) != n {
		p.phase = phaseDistributed
		return nil, fmt.Errorf("%w: %d shares, %d commitment sets, want %d",
			dkg.ErrLengthMismatch, len(in.Shares), len(in.Commitments), n)
	}

	shares := make([]group.Scalar, n)
	var misrouted []int
	for k, m := range in.Shares {
		if m == nil || m.Sender != k+1 || m.Recipient != p.Index() {
			misrouted = append(misrouted, k+1)
			continue
		}
		shares[k] = m.Share
	}
	if len(misrouted) > 0 {
		p.phase = phaseAborted
		return nil, &dkg.CulpritError{Err: ErrMisrouted, Parties: misrouted}
	}
	if own := in.Commitments[p.Index()-1]; own == nil || !own.Equal(p.dealing.Commitments) {
		p.phase = phaseAborted
		return nil, ErrOwnMessage
	}

	shared, proof, err := p.dkg.VerifySharesAndProve(r, p.keys, p.points, shares, in.Commitments)
	if err != nil {
		return nil, p.fail(phaseDistributed, err)
	}
	p.shared = shared
	p.comms = append([]*vss.Commitments(nil), in.Commitments...)
	return proof, nil
}

// Finalize verifies every party's proof and, on success, returns the joint
// key. Beyond checking each proof, it also requires that party k+1 proved
// knowledge of exactly the verification share the commitments imply.
func (p *Participant) Finalize(proofs []*dlog.Proof) (*Result, error) {
	if err := p.enter(phaseAggregated, phaseFinalized); err != nil {
		return nil, err
	}
	if err := p.dkg.VerifyKnowledgeProofs(proofs, p.points); err != nil {
		return nil, p.fail(phaseAggregated, err)
	}

	verification, err := p.dkg.PublicShares(p.comms)
	if err != nil {
		return nil, p.fail(phaseAggregated, err)
	}
	var culprits []int
	for k, proof := range proofs {
		if !proof.PublicKey.Equal(verification[k]) {
			culprits = append(culprits, k+1)
		}
	}
	if len(culprits) > 0 {
		p.phase = phaseAborted
		return nil, &dkg.CulpritError{Err: dkg.ErrInvalidKey, Parties: culprits}
	}

	p.result = &Result{
		PublicKey:          p.shared.PublicKey,
		VerificationShares: verification,
		SharedKeys:         p.shared,
		Private:            p.keys.Private(p.shared),
	}
	return p.result, nil
}
