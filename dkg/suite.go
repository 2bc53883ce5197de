package dkg

import (
	"github.com/f3rmion/fydkg/bls12381"
	"github.com/f3rmion/fydkg/commitment"
	"github.com/f3rmion/fydkg/group"
)

// DefaultPaillierBits is the modulus size of the auxiliary encryption key.
const DefaultPaillierBits = 2048

// Suite fixes the primitives a key generation run is built from: the group,
// the commitment hash and the Paillier modulus size. A Suite is immutable and
// safe to share between parties and goroutines.
type Suite struct {
	group        group.Group
	hasher       commitment.Hasher
	paillierBits int
}

// Option configures a Suite.
type Option func(*Suite)

// WithCommitmentHash selects the phase-1 commitment hash. SHA-256 is used
// when unset.
func WithCommitmentHash(h commitment.Hasher) Option {
	return func(s *Suite) {
		s.hasher = h
	}
}

// WithPaillierBits sets the Paillier modulus size.
func WithPaillierBits(bits int) Option {
	return func(s *Suite) {
		s.paillierBits = bits
	}
}

// NewSuite returns a suite over g.
func NewSuite(g group.Group, opts ...Option) *Suite {
	s := &Suite{
		group:        g,
		hasher:       commitment.SHA256Hasher{},
		paillierBits: DefaultPaillierBits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultSuite returns BLS12-381 G1 with SHA-256 commitments.
func DefaultSuite(opts ...Option) *Suite {
	return NewSuite(bls12381.New(), opts...)
}

// Group returns the group keys are generated in.
func (s *Suite) Group() group.Group { return s.group }

// Hasher returns the phase-1 commitment hash.
func (s *Suite) Hasher() commitment.Hasher { return s.hasher }

// PaillierBits returns the Paillier modulus size in bits.
func (s *Suite) PaillierBits() int { return s.paillierBits }
