package dkg

import (
	"fmt"

	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/paillier"
)

// Parameters are the threshold t and share count n. Any t+1 parties can use
// the generated key; t or fewer learn nothing about it.
type Parameters struct {
	Threshold  int
	ShareCount int
}

// Validate checks 0 <= t < n.
func (p Parameters) Validate() error {
	if p.ShareCount < 1 {
		return fmt.Errorf("%w: share count %d", ErrInvalidParameters, p.ShareCount)
	}
	if p.Threshold < 0 || p.Threshold >= p.ShareCount {
		return fmt.Errorf("%w: threshold %d with %d shares", ErrInvalidParameters, p.Threshold, p.ShareCount)
	}
	return nil
}

// DKG runs the key generation phases for one (t, n) configuration. It holds
// no per-party state; every phase takes the party's [Keys] explicitly.
type DKG struct {
	suite  *Suite
	params Parameters
}

// New returns a DKG over suite with the given parameters.
func New(suite *Suite, params Parameters) (*DKG, error) {
	if suite == nil || suite.group == nil || suite.hasher == nil {
		return nil, fmt.Errorf("%w: incomplete suite", ErrInvalidParameters)
	}
	if suite.paillierBits < paillier.MinBits {
		return nil, fmt.Errorf("%w: paillier modulus of %d bits", ErrInvalidParameters, suite.paillierBits)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &DKG{suite: suite, params: params}, nil
}

// Suite returns the primitives the run is built from.
func (d *DKG) Suite() *Suite { return d.suite }

// Parameters returns (t, n).
func (d *DKG) Parameters() Parameters { return d.params }

func (d *DKG) group() group.Group {
	return d.suite.group
}

func (d *DKG) checkIndex(index int) error {
	if index < 1 || index > d.params.ShareCount {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidPartyIndex, index, d.params.ShareCount)
	}
	return nil
}
