package group

import (
	"io"
)

// Scalar is an element of the scalar field of a prime-order group.
// Secret values, polynomial coefficients and shares are all scalars.
//
// Arithmetic methods use a mutable receiver: they store the result in the
// receiver and return it, so calls can be chained.
//
// Implementations keep every value reduced into [0, order).
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// Bytes returns the canonical fixed-length encoding of the scalar.
	Bytes() []byte
	// SetBytes decodes a canonical encoding into the receiver.
	// Returns an error if the data is malformed or out of range.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
}

// Point is an element of a prime-order group, written additively.
// Public keys, polynomial commitments and proof commitments are points.
//
// Like [Scalar], arithmetic methods use a mutable receiver.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical compressed encoding of the point.
	// The identity has a well-defined encoding as well.
	Bytes() []byte
	// SetBytes decodes a canonical encoding into the receiver.
	// Returns an error if the data is not a valid group element.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
}

// Group is the capability set the key generation protocol needs from a curve:
// scalar field arithmetic, group arithmetic and deterministic serialization.
// Protocol code depends only on this interface, so curves can be swapped
// without touching it.
//
// A Group value carries no mutable state and may be shared freely between
// goroutines.
type Group interface {
	// Name returns a short identifier such as "bls12381-g1".
	Name() string
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the fixed public base point.
	Generator() Point
	// ScalarFromInt returns the scalar representing the small integer n.
	// Party indices are mapped into the field through this method.
	ScalarFromInt(n uint64) Scalar
	// RandomScalar returns a uniformly random scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// HashToScalar hashes the concatenated input to a scalar.
	HashToScalar(data ...[]byte) (Scalar, error)
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
}
