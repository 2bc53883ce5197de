package vss

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/fydkg/group"
)

var (
	// ErrInvalidThreshold is returned when t < 0 or t >= n.
	ErrInvalidThreshold = errors.New("vss: invalid threshold")

	// ErrInvalidIndex is returned for party indices below 1. Index 0 is the
	// secret itself and is never handed out.
	ErrInvalidIndex = errors.New("vss: invalid index")

	// ErrDuplicateIndex is returned when interpolation points repeat.
	ErrDuplicateIndex = errors.New("vss: duplicate index")

	// ErrLengthMismatch is returned when index and share counts differ.
	ErrLengthMismatch = errors.New("vss: length mismatch")

	// ErrNoShares is returned when reconstructing from nothing.
	ErrNoShares = errors.New("vss: no shares")

	// ErrInvalidShare is returned when a share does not match the
	// coefficient commitments.
	ErrInvalidShare = errors.New("vss: invalid share")

	// ErrEmptyCommitments is returned for a commitment set with no points.
	ErrEmptyCommitments = errors.New("vss: empty commitments")
)

// Polynomial is a secret polynomial f(x) = a_0 + a_1 x + ... + a_t x^t.
type Polynomial struct {
	group  group.Group
	coeffs []group.Scalar
}

// NewPolynomial samples a random polynomial of the given degree whose
// constant term is secret.
func NewPolynomial(r io.Reader, g group.Group, degree int, secret group.Scalar) (*Polynomial, error) {
	if degree < 0 {
		return nil, ErrInvalidThreshold
	}
	coeffs := make([]group.Scalar, degree+1)
	coeffs[0] = g.NewScalar().Set(secret)
	for i := 1; i <= degree; i++ {
		c, err := g.RandomScalar(r)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return &Polynomial{group: g, coeffs: coeffs}, nil
}

// Degree returns t.
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// Evaluate returns f(x) using Horner's rule.
func (p *Polynomial) Evaluate(x group.Scalar) group.Scalar {
	g := p.group
	result := g.NewScalar().Set(p.coeffs[len(p.coeffs)-1])
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		result = g.NewScalar().Mul(result, x)
		result = g.NewScalar().Add(result, p.coeffs[i])
	}
	return result
}

// Commit returns C_k = a_k * G for every coefficient.
func (p *Polynomial) Commit() *Commitments {
	points := make([]group.Point, len(p.coeffs))
	for i, c := range p.coeffs {
		points[i] = group.BaseMult(p.group, c)
	}
	return &Commitments{Points: points}
}

// Commitments are the public coefficient commitments of a Feldman sharing.
// Points[0] commits to the secret.
type Commitments struct {
	Points []group.Point
}

// Degree returns the degree t of the committed polynomial.
func (c *Commitments) Degree() int {
	return len(c.Points) - 1
}

// Secret returns the commitment to the shared secret, a_0 * G.
func (c *Commitments) Secret() group.Point {
	return c.Points[0]
}

// Evaluate returns f(index) * G computed from the commitments alone:
// sum_k C_k * index^k. This is the public counterpart of the share handed
// to party index.
func (c *Commitments) Evaluate(g group.Group, index int) (group.Point, error) {
	if index < 1 {
		return nil, ErrInvalidIndex
	}
	if len(c.Points) == 0 {
		return nil, ErrEmptyCommitments
	}
	x := g.ScalarFromInt(uint64(index))
	result := g.NewPoint().Set(c.Points[len(c.Points)-1])
	for k := len(c.Points) - 2; k >= 0; k-- {
		result = g.NewPoint().ScalarMult(x, result)
		result = g.NewPoint().Add(result, c.Points[k])
	}
	return result, nil
}

// Validate checks the Feldman equation share * G == sum_k C_k * index^k.
func (c *Commitments) Validate(g group.Group, share group.Scalar, index int) error {
	expected, err := c.Evaluate(g, index)
	if err != nil {
		return err
	}
	if !group.BaseMult(g, share).Equal(expected) {
		return ErrInvalidShare
	}
	return nil
}

// Equal reports whether both commitment sets hold the same points.
func (c *Commitments) Equal(o *Commitments) bool {
	if len(c.Points) != len(o.Points) {
		return false
	}
	for i := range c.Points {
		if !c.Points[i].Equal(o.Points[i]) {
			return false
		}
	}
	return true
}

// Share splits secret into n shares with threshold t. Any t+1 shares
// reconstruct it; t or fewer reveal nothing. shares[k] belongs to party k+1.
func Share(r io.Reader, g group.Group, t, n int, secret group.Scalar) (*Commitments, []group.Scalar, error) {
	if t < 0 || t >= n {
		return nil, nil, fmt.Errorf("%w: t=%d n=%d", ErrInvalidThreshold, t, n)
	}
	poly, err := NewPolynomial(r, g, t, secret)
	if err != nil {
		return nil, nil, err
	}
	shares := make([]group.Scalar, n)
	for k := 0; k < n; k++ {
		shares[k] = poly.Evaluate(g.ScalarFromInt(uint64(k + 1)))
	}
	return poly.Commit(), shares, nil
}

// LagrangeCoefficient returns the basis polynomial for index over the set
// indices, evaluated at zero: prod_{j != index} j / (j - index).
func LagrangeCoefficient(g group.Group, index int, indices []int) (group.Scalar, error) {
	xi := g.ScalarFromInt(uint64(index))
	num := g.ScalarFromInt(1)
	den := g.ScalarFromInt(1)
	for _, j := range indices {
		if j == index {
			continue
		}
		xj := g.ScalarFromInt(uint64(j))
		num = g.NewScalar().Mul(num, xj)
		den = g.NewScalar().Mul(den, g.NewScalar().Sub(xj, xi))
	}
	denInv, err := g.NewScalar().Invert(den)
	if err != nil {
		return nil, fmt.Errorf("vss: %w", err)
	}
	return g.NewScalar().Mul(num, denInv), nil
}

// Reconstruct interpolates (indices[k], shares[k]) at zero.
//
// It uses every point it is given. With at least t+1 valid shares of a
// degree-t sharing the result is the secret; with fewer it is an unrelated
// field element.
func Reconstruct(g group.Group, indices []int, shares []group.Scalar) (group.Scalar, error) {
	if len(indices) != len(shares) {
		return nil, ErrLengthMismatch
	}
	if len(indices) == 0 {
		return nil, ErrNoShares
	}
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
		}
		if _, dup := seen[idx]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, idx)
		}
		seen[idx] = struct{}{}
	}

	secret := g.NewScalar()
	for k, idx := range indices {
		lambda, err := LagrangeCoefficient(g, idx, indices)
		if err != nil {
			return nil, err
		}
		secret = g.NewScalar().Add(secret, g.NewScalar().Mul(lambda, shares[k]))
	}
	return secret, nil
}
