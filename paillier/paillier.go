package paillier

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

// MinBits is the smallest modulus GenerateKey accepts.
const MinBits = 512

var (
	// ErrKeySize is returned for modulus sizes below MinBits or odd sizes.
	ErrKeySize = errors.New("paillier: invalid key size")

	// ErrMessageRange is returned when a plaintext is outside [0, N).
	ErrMessageRange = errors.New("paillier: message out of range")

	// ErrCiphertext is returned for ciphertexts outside Z*_{N^2}.
	ErrCiphertext = errors.New("paillier: invalid ciphertext")

	// ErrPublicKey is returned when decoding a malformed modulus.
	ErrPublicKey = errors.New("paillier: invalid public key")
)

var oneNat = new(saferith.Nat).SetUint64(1)

// PublicKey is a Paillier encryption key with modulus N = p*q.
type PublicKey struct {
	n        *saferith.Modulus
	nSquared *saferith.Modulus
	nBig     *big.Int
}

// PrivateKey is the matching decryption key.
type PrivateKey struct {
	*PublicKey
	p, q *big.Int
	// phi = (p-1)(q-1)
	phi *saferith.Nat
	// phiInv = phi^{-1} mod N
	phiInv *saferith.Nat
}

func newPublicKey(n *big.Int) *PublicKey {
	nNat := new(saferith.Nat).SetBig(n, n.BitLen())
	nn := new(big.Int).Mul(n, n)
	return &PublicKey{
		n:        saferith.ModulusFromNat(nNat),
		nSquared: saferith.ModulusFromNat(new(saferith.Nat).SetBig(nn, nn.BitLen())),
		nBig:     new(big.Int).Set(n),
	}
}

// GenerateKey returns a key pair whose modulus is exactly bits long.
func GenerateKey(r io.Reader, bits int) (*PrivateKey, error) {
	if bits < MinBits || bits%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrKeySize, bits)
	}
	for {
		p, err := rand.Prime(r, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := rand.Prime(r, bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}
		phi := new(big.Int).Mul(
			new(big.Int).Sub(p, big.NewInt(1)),
			new(big.Int).Sub(q, big.NewInt(1)),
		)
		if new(big.Int).GCD(nil, nil, n, phi).Cmp(big.NewInt(1)) != 0 {
			continue
		}
		return newPrivateKey(p, q, n, phi), nil
	}
}

func newPrivateKey(p, q, n, phi *big.Int) *PrivateKey {
	pk := newPublicKey(n)
	phiNat := new(saferith.Nat).SetBig(phi, phi.BitLen())
	return &PrivateKey{
		PublicKey: pk,
		p:         p,
		q:         q,
		phi:       phiNat,
		phiInv:    new(saferith.Nat).ModInverse(phiNat, pk.n),
	}
}

// NewPublicKey decodes a big-endian modulus.
func NewPublicKey(n []byte) (*PublicKey, error) {
	nBig := new(big.Int).SetBytes(n)
	if nBig.BitLen() < MinBits || nBig.Bit(0) == 0 {
		return nil, ErrPublicKey
	}
	return newPublicKey(nBig), nil
}

// N returns a copy of the modulus.
func (pk *PublicKey) N() *big.Int {
	return new(big.Int).Set(pk.nBig)
}

// Bits returns the bit length of N.
func (pk *PublicKey) Bits() int {
	return pk.nBig.BitLen()
}

// Bytes returns the big-endian encoding of N.
func (pk *PublicKey) Bytes() []byte {
	return pk.nBig.Bytes()
}

// Equal reports whether both keys share a modulus.
func (pk *PublicKey) Equal(o *PublicKey) bool {
	return o != nil && pk.nBig.Cmp(o.nBig) == 0
}

// Encrypt returns (1+N)^m * rho^N mod N^2 for a fresh unit rho.
func (pk *PublicKey) Encrypt(r io.Reader, m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.nBig) >= 0 {
		return nil, ErrMessageRange
	}
	rho, err := pk.sampleUnit(r)
	if err != nil {
		return nil, err
	}
	return pk.encryptWithNonce(m, rho).Big(), nil
}

func (pk *PublicKey) encryptWithNonce(m *big.Int, rho *saferith.Nat) *saferith.Nat {
	size := pk.nSquared.BitLen()
	mNat := new(saferith.Nat).SetBig(m, size)
	nNat := pk.n.Nat()

	// (1+N)^m = 1 + m*N mod N^2
	gm := new(saferith.Nat).ModMul(mNat, nNat, pk.nSquared)
	gm.ModAdd(gm, oneNat, pk.nSquared)

	rhoN := new(saferith.Nat).Exp(rho, nNat, pk.nSquared)
	return gm.ModMul(gm, rhoN, pk.nSquared)
}

func (pk *PublicKey) sampleUnit(r io.Reader) (*saferith.Nat, error) {
	for {
		v, err := rand.Int(r, pk.nBig)
		if err != nil {
			return nil, err
		}
		nat := new(saferith.Nat).SetBig(v, pk.nBig.BitLen())
		if nat.IsUnit(pk.n) == 1 {
			return nat, nil
		}
	}
}

// Add returns a ciphertext of m1+m2 mod N given encryptions of m1 and m2.
func (pk *PublicKey) Add(c1, c2 *big.Int) (*big.Int, error) {
	a, err := pk.ciphertext(c1)
	if err != nil {
		return nil, err
	}
	b, err := pk.ciphertext(c2)
	if err != nil {
		return nil, err
	}
	return new(saferith.Nat).ModMul(a, b, pk.nSquared).Big(), nil
}

func (pk *PublicKey) ciphertext(c *big.Int) (*saferith.Nat, error) {
	if c == nil || c.Sign() <= 0 {
		return nil, ErrCiphertext
	}
	nat := new(saferith.Nat).SetBig(c, pk.nSquared.BitLen())
	if _, _, lt := nat.CmpMod(pk.nSquared); lt != 1 {
		return nil, ErrCiphertext
	}
	if nat.IsUnit(pk.nSquared) != 1 {
		return nil, ErrCiphertext
	}
	return nat, nil
}

// Public returns the encryption half of the key pair.
func (sk *PrivateKey) Public() *PublicKey {
	return sk.PublicKey
}

// Decrypt returns the plaintext of c.
//
// m = L(c^phi mod N^2) * phi^{-1} mod N, with L(u) = (u-1)/N.
func (sk *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	ct, err := sk.ciphertext(c)
	if err != nil {
		return nil, err
	}
	u := new(saferith.Nat).Exp(ct, sk.phi, sk.nSquared)
	u.Sub(u, oneNat, -1)
	u.Div(u, sk.n, -1)
	u.ModMul(u, sk.phiInv, sk.n)
	return u.Big(), nil
}

// Validate checks that the stored factors match the modulus.
func (sk *PrivateKey) Validate() error {
	if !sk.p.ProbablyPrime(20) || !sk.q.ProbablyPrime(20) {
		return ErrKeySize
	}
	if new(big.Int).Mul(sk.p, sk.q).Cmp(sk.nBig) != 0 {
		return ErrPublicKey
	}
	return nil
}
