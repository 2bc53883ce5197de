package bls12381

import (
	"crypto/sha512"
	"errors"
	"io"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/fydkg/group"
)

// ScalarSize and PointSize are the canonical encoding lengths.
const (
	ScalarSize = fr.Bytes
	PointSize  = curve.SizeOfG1AffineCompressed
)

var generator curve.G1Affine

func init() {
	_, _, generator, _ = curve.Generators()
}

// Scalar is an element of Fr, the BLS12-381 scalar field.
type Scalar struct {
	inner fr.Element
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	as := a.(*Scalar)
	if as.inner.IsZero() {
		return nil, errors.New("bls12381: cannot invert zero scalar")
	}
	s.inner.Inverse(&as.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes decodes a 32-byte big-endian encoding.
// Values not below the field modulus are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if err := s.inner.SetBytesCanonical(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Equal reports whether s and b are the same field element.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *Scalar) bigInt() *big.Int {
	return s.inner.BigInt(new(big.Int))
}

// Point is an element of the BLS12-381 G1 subgroup in affine form.
// The zero value is the point at infinity.
type Point struct {
	inner curve.G1Affine
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var neg curve.G1Affine
	neg.Neg(&b.(*Point).inner)
	p.inner.Add(&a.(*Point).inner, &neg)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*Point).inner, s.(*Scalar).bigInt())
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 48-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes decodes a compressed encoding. The decoder checks curve and
// subgroup membership.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != PointSize {
		return nil, errors.New("bls12381: invalid point length")
	}
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// G1 implements [group.Group] for the G1 subgroup of BLS12-381.
type G1 struct{}

// New returns the BLS12-381 G1 group.
func New() *G1 {
	return &G1{}
}

// Name returns "bls12381-g1".
func (g *G1) Name() string {
	return "bls12381-g1"
}

// NewScalar returns a new zero scalar.
func (g *G1) NewScalar() group.Scalar {
	return &Scalar{}
}

// NewPoint returns a new point at infinity.
func (g *G1) NewPoint() group.Point {
	return &Point{}
}

// Generator returns the standard G1 generator.
func (g *G1) Generator() group.Point {
	p := &Point{}
	p.inner.Set(&generator)
	return p
}

// ScalarFromInt returns n as a field element.
func (g *G1) ScalarFromInt(n uint64) group.Scalar {
	s := &Scalar{}
	s.inner.SetUint64(n)
	return s
}

// RandomScalar reads 48 bytes from r and reduces them modulo the group order.
// The extra 16 bytes keep the modular bias negligible.
func (g *G1) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [48]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := &Scalar{}
	s.inner.SetBytes(buf[:])
	return s, nil
}

// HashToScalar hashes the concatenated data with SHA-512 and reduces the
// 64-byte digest modulo the group order.
func (g *G1) HashToScalar(data ...[]byte) (group.Scalar, error) {
	h := sha512.New()
	for _, d := range data {
		h.Write(d)
	}
	s := &Scalar{}
	s.inner.SetBytes(h.Sum(nil))
	return s, nil
}

// Order returns the order of G1 as a big-endian byte slice.
func (g *G1) Order() []byte {
	return fr.Modulus().Bytes()
}
