package dlog

import (
	"errors"
	"io"

	"github.com/f3rmion/fydkg/group"
)

// ErrInvalidProof is returned when a proof does not verify.
var ErrInvalidProof = errors.New("dlog: invalid proof")

var domain = []byte("fydkg/dlog/v1")

// Proof is a non-interactive Schnorr proof of knowledge of x such that
// PublicKey = x * G.
type Proof struct {
	PublicKey  group.Point
	Commitment group.Point
	Response   group.Scalar
}

func challenge(g group.Group, pk, commitment group.Point) (group.Scalar, error) {
	return g.HashToScalar(domain, g.Generator().Bytes(), pk.Bytes(), commitment.Bytes())
}

// Prove returns a proof of knowledge of secret for the public key secret * G.
func Prove(r io.Reader, g group.Group, secret group.Scalar) (*Proof, error) {
	k, err := g.RandomScalar(r)
	if err != nil {
		return nil, err
	}
	pk := group.BaseMult(g, secret)
	R := group.BaseMult(g, k)

	c, err := challenge(g, pk, R)
	if err != nil {
		return nil, err
	}

	// z = k - c*x
	z := g.NewScalar().Sub(k, g.NewScalar().Mul(c, secret))

	return &Proof{PublicKey: pk, Commitment: R, Response: z}, nil
}

// Verify checks z*G + c*PK == R.
func Verify(g group.Group, p *Proof) error {
	if p == nil || p.PublicKey == nil || p.Commitment == nil || p.Response == nil {
		return ErrInvalidProof
	}
	c, err := challenge(g, p.PublicKey, p.Commitment)
	if err != nil {
		return err
	}
	lhs := g.NewPoint().Add(
		group.BaseMult(g, p.Response),
		g.NewPoint().ScalarMult(c, p.PublicKey),
	)
	if !lhs.Equal(p.Commitment) {
		return ErrInvalidProof
	}
	return nil
}
