package bls12381

import (
	"bytes"
	"crypto/rand"
	"crypto/sha512"
	"math/big"
	"testing"
)

func TestScalar(t *testing.T) {
	g := New()

	t.Run("AddSub", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)

		sum := g.NewScalar().Add(a, b)
		if !g.NewScalar().Sub(sum, b).Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		aInv, err := g.NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}
		if !g.NewScalar().Mul(a, aInv).Equal(g.ScalarFromInt(1)) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		if _, err := g.NewScalar().Invert(g.NewScalar()); err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		enc := a.Bytes()
		if len(enc) != ScalarSize {
			t.Fatalf("encoding length %d, want %d", len(enc), ScalarSize)
		}
		restored, err := g.NewScalar().SetBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("RejectNonCanonical", func(t *testing.T) {
		// The modulus itself is out of range.
		if _, err := g.NewScalar().SetBytes(g.Order()); err == nil {
			t.Error("expected error decoding the group order")
		}
	})
}

func TestPoint(t *testing.T) {
	g := New()

	t.Run("AddSub", func(t *testing.T) {
		s1, _ := g.RandomScalar(rand.Reader)
		s2, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s1, g.Generator())
		Q := g.NewPoint().ScalarMult(s2, g.Generator())

		sum := g.NewPoint().Add(P, Q)
		if !g.NewPoint().Sub(sum, Q).Equal(P) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())
		if !g.NewPoint().Add(P, g.NewPoint().Negate(P)).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())
		restored, err := g.NewPoint().SetBytes(P.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(P) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("IdentityRoundtrip", func(t *testing.T) {
		id := g.NewPoint()
		restored, err := g.NewPoint().SetBytes(id.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.IsIdentity() {
			t.Error("identity did not survive encoding")
		}
	})

	t.Run("RejectGarbage", func(t *testing.T) {
		if _, err := g.NewPoint().SetBytes(bytes.Repeat([]byte{0xff}, PointSize)); err == nil {
			t.Error("expected error decoding garbage")
		}
		if _, err := g.NewPoint().SetBytes([]byte{1, 2, 3}); err == nil {
			t.Error("expected error decoding short input")
		}
	})
}

func TestHashToScalarUsesWideDigest(t *testing.T) {
	g := New()
	msg := []byte("fydkg/dlog/v1")

	got, err := g.HashToScalar(msg[:5], msg[5:])
	if err != nil {
		t.Fatal(err)
	}
	digest := sha512.Sum512(msg)
	order := new(big.Int).SetBytes(g.Order())
	want := new(big.Int).Mod(new(big.Int).SetBytes(digest[:]), order)
	if got.(*Scalar).bigInt().Cmp(want) != 0 {
		t.Error("hash is not the 64-byte digest reduced modulo r")
	}
}
