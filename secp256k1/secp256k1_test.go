package secp256k1

import (
	"crypto/rand"
	"testing"
)

func TestScalar(t *testing.T) {
	g := New()

	t.Run("SubNegate", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		b, _ := g.RandomScalar(rand.Reader)
		diff := g.NewScalar().Sub(a, b)
		alt := g.NewScalar().Add(a, g.NewScalar().Negate(b))
		if !diff.Equal(alt) {
			t.Error("a-b != a+(-b)")
		}
	})

	t.Run("RejectOverflow", func(t *testing.T) {
		if _, err := g.NewScalar().SetBytes(g.Order()); err == nil {
			t.Error("expected error decoding N")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := g.RandomScalar(rand.Reader)
		restored, err := g.NewScalar().SetBytes(a.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar roundtrip failed")
		}
	})
}

func TestPoint(t *testing.T) {
	g := New()

	t.Run("InfinityEncoding", func(t *testing.T) {
		id := g.NewPoint()
		enc := id.Bytes()
		if len(enc) != PointSize {
			t.Fatalf("identity encoding length %d", len(enc))
		}
		restored, err := g.NewPoint().SetBytes(enc)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.IsIdentity() {
			t.Error("identity did not survive encoding")
		}
	})

	t.Run("NegateToIdentity", func(t *testing.T) {
		s, _ := g.RandomScalar(rand.Reader)
		P := g.NewPoint().ScalarMult(s, g.Generator())
		if !g.NewPoint().Sub(P, P).IsIdentity() {
			t.Error("P - P != identity")
		}
	})

	t.Run("Doubling", func(t *testing.T) {
		G := g.Generator()
		if !g.NewPoint().Add(G, G).Equal(g.NewPoint().ScalarMult(g.ScalarFromInt(2), G)) {
			t.Error("G+G != 2G")
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
			t.Error("point roundtrip failed")
		}
	})
}
