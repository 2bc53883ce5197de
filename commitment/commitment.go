package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"hash"
	"io"
	"math/big"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// SecurityBits is the width of a blinding factor.
const SecurityBits = 256

// ErrInvalidBits is returned when a blinding width is not positive.
var ErrInvalidBits = errors.New("commitment: blinding width must be positive")

// Hasher is the hash function underlying a commitment.
// Different implementations give the same binding and hiding guarantees
// under their respective hash assumptions.
type Hasher interface {
	// Name identifies the hash, e.g. "sha256".
	Name() string
	// New returns a fresh hash state.
	New() hash.Hash
}

// SHA256Hasher commits with SHA-256. It is the default.
type SHA256Hasher struct{}

// Name implements Hasher.Name.
func (SHA256Hasher) Name() string { return "sha256" }

// New implements Hasher.New.
func (SHA256Hasher) New() hash.Hash { return sha256.New() }

// Blake2bHasher commits with BLAKE2b-256.
type Blake2bHasher struct{}

// Name implements Hasher.Name.
func (Blake2bHasher) Name() string { return "blake2b" }

// New implements Hasher.New.
func (Blake2bHasher) New() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return h
}

// Blake3Hasher commits with BLAKE3 (256-bit output).
type Blake3Hasher struct{}

// Name implements Hasher.Name.
func (Blake3Hasher) Name() string { return "blake3" }

// New implements Hasher.New.
func (Blake3Hasher) New() hash.Hash { return blake3.New() }

// HasherByName returns the hasher registered under name.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case "sha256", "":
		return SHA256Hasher{}, nil
	case "blake2b":
		return Blake2bHasher{}, nil
	case "blake3":
		return Blake3Hasher{}, nil
	default:
		return nil, errors.New("commitment: unknown hasher " + name)
	}
}

// Commit returns H(len(message) || message || len(blind) || blind), where
// blind is the big-endian encoding of blinding. Lengths are 8-byte big-endian
// so that no two (message, blinding) pairs share an encoding.
func Commit(h Hasher, message []byte, blinding *big.Int) []byte {
	st := h.New()
	writeField(st, message)
	writeField(st, blinding.Bytes())
	return st.Sum(nil)
}

// Verify reports whether digest opens to (message, blinding).
// Blinding factors are non-negative; a negative one never opens, since its
// encoding would collide with its absolute value. The comparison runs in
// constant time.
func Verify(h Hasher, digest, message []byte, blinding *big.Int) bool {
	if blinding == nil || blinding.Sign() < 0 {
		return false
	}
	return subtle.ConstantTimeCompare(digest, Commit(h, message, blinding)) == 1
}

func writeField(w io.Writer, b []byte) {
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(b)))
	w.Write(l[:])
	w.Write(b)
}

// SampleBlinding returns a uniformly random integer in [0, 2^bits).
func SampleBlinding(r io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 {
		return nil, ErrInvalidBits
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return rand.Int(r, max)
}
