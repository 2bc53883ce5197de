package secp256k1

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/f3rmion/fydkg/group"
)

// Encoding lengths.
const (
	ScalarSize = 32
	PointSize  = secp256k1.PubKeyBytesLenCompressed
)

// Scalar is an integer modulo the secp256k1 group order N.
type Scalar struct {
	inner secp256k1.ModNScalar
}

// Add sets s to a + b and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	var negB secp256k1.ModNScalar
	negB.NegateVal(&b.(*Scalar).inner)
	s.inner.Add2(&a.(*Scalar).inner, &negB)
	return s
}

// Mul sets s to a * b and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul2(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.NegateVal(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) and returns s.
// Returns an error if a is zero.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	as := a.(*Scalar)
	if as.inner.IsZero() {
		return nil, errors.New("secp256k1: cannot invert zero scalar")
	}
	s.inner.InverseValNonConst(&as.inner)
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

// SetBytes decodes a 32-byte big-endian value below N.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != ScalarSize {
		return nil, errors.New("secp256k1: invalid scalar length")
	}
	var v secp256k1.ModNScalar
	if overflow := v.SetByteSlice(data); overflow {
		return nil, errors.New("secp256k1: scalar out of range")
	}
	s.inner.Set(&v)
	return s, nil
}

// Equal reports whether s and b are equal.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equals(&b.(*Scalar).inner)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Point is a secp256k1 point in Jacobian coordinates.
// The zero value is the point at infinity.
type Point struct {
	inner secp256k1.JacobianPoint
}

func (p *Point) isInfinity() bool {
	return (p.inner.X.IsZero() && p.inner.Y.IsZero()) || p.inner.Z.IsZero()
}

// affine returns a normalized copy of p with Z = 1.
// It must not be called on the point at infinity.
func (p *Point) affine() secp256k1.JacobianPoint {
	var a secp256k1.JacobianPoint
	a.Set(&p.inner)
	a.ToAffine()
	return a
}

// Add sets p to a + b and returns p.
func (p *Point) Add(a, b group.Point) group.Point {
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.(*Point).inner, &b.(*Point).inner, &r)
	p.inner.Set(&r)
	return p
}

// Sub sets p to a - b and returns p.
func (p *Point) Sub(a, b group.Point) group.Point {
	var negB Point
	negB.Negate(b)
	return p.Add(a, &negB)
}

// Negate sets p to -a and returns p.
func (p *Point) Negate(a group.Point) group.Point {
	ap := a.(*Point)
	if ap.isInfinity() {
		p.inner = secp256k1.JacobianPoint{}
		return p
	}
	r := ap.affine()
	r.Y.Negate(1).Normalize()
	p.inner.Set(&r)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.(*Scalar).inner, &q.(*Point).inner, &r)
	p.inner.Set(&r)
	return p
}

// Set copies a into p and returns p.
func (p *Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

// Bytes returns the 33-byte SEC1 compressed encoding of p.
// The point at infinity is encoded as 33 zero bytes.
func (p *Point) Bytes() []byte {
	if p.isInfinity() {
		return make([]byte, PointSize)
	}
	a := p.affine()
	return secp256k1.NewPublicKey(&a.X, &a.Y).SerializeCompressed()
}

// SetBytes decodes a 33-byte compressed encoding.
func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != PointSize {
		return nil, errors.New("secp256k1: invalid point length")
	}
	if isZeroBytes(data) {
		p.inner = secp256k1.JacobianPoint{}
		return p, nil
	}
	pk, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return nil, err
	}
	pk.AsJacobian(&p.inner)
	return p, nil
}

// Equal reports whether p and b are the same point.
func (p *Point) Equal(b group.Point) bool {
	bp := b.(*Point)
	if p.isInfinity() || bp.isInfinity() {
		return p.isInfinity() && bp.isInfinity()
	}
	pa, ba := p.affine(), bp.affine()
	return pa.X.Equals(&ba.X) && pa.Y.Equals(&ba.Y)
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.isInfinity()
}

func isZeroBytes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Curve implements [group.Group] for secp256k1.
type Curve struct{}

// New returns the secp256k1 group.
func New() *Curve {
	return &Curve{}
}

// Name returns "secp256k1".
func (g *Curve) Name() string {
	return "secp256k1"
}

// NewScalar returns a new zero scalar.
func (g *Curve) NewScalar() group.Scalar {
	return &Scalar{}
}

// NewPoint returns the point at infinity.
func (g *Curve) NewPoint() group.Point {
	return &Point{}
}

// Generator returns the standard base point G.
func (g *Curve) Generator() group.Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	p := &Point{}
	secp256k1.ScalarBaseMultNonConst(&one, &p.inner)
	return p
}

// ScalarFromInt returns n modulo N.
func (g *Curve) ScalarFromInt(n uint64) group.Scalar {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	s := &Scalar{}
	s.inner.SetByteSlice(buf[:])
	return s
}

// RandomScalar reads 48 bytes from r and reduces them modulo N.
func (g *Curve) RandomScalar(r io.Reader) (group.Scalar, error) {
	var buf [48]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf[:])
	v.Mod(v, secp256k1.Params().N)
	s := &Scalar{}
	s.inner.SetByteSlice(v.FillBytes(make([]byte, ScalarSize)))
	return s, nil
}

// HashToScalar hashes the concatenated data with SHA-256 and reduces the
// digest modulo N.
func (g *Curve) HashToScalar(data ...[]byte) (group.Scalar, error) {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	s := &Scalar{}
	s.inner.SetByteSlice(h.Sum(nil))
	return s, nil
}

// Order returns N as a big-endian byte slice.
func (g *Curve) Order() []byte {
	return secp256k1.Params().N.Bytes()
}
