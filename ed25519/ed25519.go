package ed25519

import (
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"io"
	"math/big"

	"filippo.io/edwards25519"

	"github.com/f3rmion/fydkg/group"
)

// Encoding lengths.
const (
	ScalarSize = 32
	PointSize  = 32
)

var (
	order    *big.Int
	minusOne *edwards25519.Scalar
)

func init() {
	// l = 2^252 + 27742317777372353535851937790883648493
	order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

	one, _ := edwards25519.NewScalar().SetCanonicalBytes(littleEndian(1))
	minusOne = edwards25519.NewScalar().Negate(one)
}

func littleEndian(n uint64) []byte {
	buf := make([]byte, ScalarSize)
	binary.LittleEndian.PutUint64(buf, n)
	return buf
}

// Scalar is an integer modulo the prime subgroup order l.
type Scalar struct {
	inner *edwards25519.Scalar
}

func newScalar() *Scalar {
	return &Scalar{inner: edwards25519.NewScalar()}
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Subtract(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Multiply(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Negate(a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	as := a.(*Scalar)
	if as.IsZero() {
		return nil, errors.New("ed25519: cannot invert zero scalar")
	}
	s.inner.Invert(as.inner)
	return s, nil
}

// Set copies a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(a.(*Scalar).inner)
	return s
}

// Bytes returns the 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.inner.Bytes()
}

// SetBytes decodes a canonical 32-byte little-endian encoding.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if _, err := s.inner.SetCanonicalBytes(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Equal reports whether s and b are equal.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(b.(*Scalar).inner) == 1
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

// Point is an element of the prime-order subgroup of edwards25519.
type Point struct {
	inner *edwards25519.Point
}

func newPoint() *Point {
	return &Point{inner: edwards25519.NewIdentityPoint()}
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	p.inner.Add(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	p.inner.Subtract(a.(*Point).inner, b.(*Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	p.inner.Negate(a.(*Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMult(s.(*Scalar).inner, q.(*Point).inner)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(a.(*Point).inner)
	return p
}

// Bytes returns the 32-byte compressed encoding of p.
func (p *Point) Bytes() []byte {
	return p.inner.Bytes()
}

// SetBytes decodes a compressed point and rejects points outside the
// prime-order subgroup.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	q, err := edwards25519.NewIdentityPoint().SetBytes(data)
	if err != nil {
		return nil, err
	}
	// l*Q = (l-1)*Q + Q must be the identity.
	check := edwards25519.NewIdentityPoint().ScalarMult(minusOne, q)
	check.Add(check, q)
	if check.Equal(edwards25519.NewIdentityPoint()) != 1 {
		return nil, errors.New("ed25519: point has a torsion component")
	}
	p.inner.Set(q)
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	return p.inner.Equal(b.(*Point).inner) == 1
}

// IsIdentity reports whether p is the identity.
func (p *Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// Curve implements [group.Group] for edwards25519.
type Curve struct{}

// New returns the edwards25519 group.
func New() *Curve {
	return &Curve{}
}

// Name returns "edwards25519".
func (g *Curve) Name() string {
	return "edwards25519"
}

// NewScalar returns a new zero scalar.
func (g *Curve) NewScalar() group.Scalar {
	return newScalar()
}

// NewPoint returns the identity.
func (g *Curve) NewPoint() group.Point {
	return newPoint()
}

// Generator returns the standard base point B.
func (g *Curve) Generator() group.Point {
	return &Point{inner: edwards25519.NewGeneratorPoint()}
}

// ScalarFromInt returns n as a scalar.
func (g *Curve) ScalarFromInt(n uint64) group.Scalar {
	s := newScalar()
	// uint64 values are always below l.
	s.inner.SetCanonicalBytes(littleEndian(n))
	return s
}

// RandomScalar reads 64 bytes from r and reduces them modulo l.
func (g *Curve) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := newScalar()
	if _, err := s.inner.SetUniformBytes(buf[:]); err != nil {
		return nil, err
	}
	return s, nil
}

// HashToScalar hashes the concatenated data with SHA-512 and reduces the
// 64-byte digest modulo l.
func (g *Curve) HashToScalar(data ...[]byte) (group.Scalar, error) {
	h := sha512.New()
	for _, d := range data {
		h.Write(d)
	}
	s := newScalar()
	if _, err := s.inner.SetUniformBytes(h.Sum(nil)); err != nil {
		return nil, err
	}
	return s, nil
}

// Order returns l as a big-endian byte slice.
func (g *Curve) Order() []byte {
	return order.Bytes()
}
