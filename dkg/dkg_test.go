package dkg

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/f3rmion/fydkg/bjj"
	"github.com/f3rmion/fydkg/bls12381"
	"github.com/f3rmion/fydkg/commitment"
	"github.com/f3rmion/fydkg/dlog"
	"github.com/f3rmion/fydkg/ed25519"
	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/secp256k1"
	"github.com/f3rmion/fydkg/vss"
)

const testPaillierBits = 512

func newTestDKG(t *testing.T, g group.Group, threshold, total int, opts ...Option) *DKG {
	t.Helper()
	opts = append([]Option{WithPaillierBits(testPaillierBits)}, opts...)
	d, err := New(NewSuite(g, opts...), Parameters{Threshold: threshold, ShareCount: total})
	require.NoError(t, err)
	return d
}

// transcript records every public and private value of an honest run up to
// the point where it is read.
type transcript struct {
	keys       []*Keys
	broadcasts []*BroadcastMessage1
	decommits  []*DecommitMessage1
	dealings   []*Dealing
}

func (tr *transcript) publicPoints() []group.Point {
	out := make([]group.Point, len(tr.keys))
	for k, dc := range tr.decommits {
		out[k] = dc.PublicPoint
	}
	return out
}

func (tr *transcript) commitments() []*vss.Commitments {
	out := make([]*vss.Commitments, len(tr.dealings))
	for k, dl := range tr.dealings {
		out[k] = dl.Commitments
	}
	return out
}

// sharesFor returns the share vector received by party index.
func (tr *transcript) sharesFor(index int) []group.Scalar {
	out := make([]group.Scalar, len(tr.dealings))
	for k, dl := range tr.dealings {
		out[k] = dl.Shares[index-1]
	}
	return out
}

func dealAll(t *testing.T, d *DKG) *transcript {
	t.Helper()
	n := d.Parameters().ShareCount
	tr := &transcript{
		keys:       make([]*Keys, n),
		broadcasts: make([]*BroadcastMessage1, n),
		decommits:  make([]*DecommitMessage1, n),
		dealings:   make([]*Dealing, n),
	}
	for k := 0; k < n; k++ {
		keys, err := d.NewKeys(rand.Reader, k+1)
		require.NoError(t, err)
		tr.keys[k] = keys
		tr.broadcasts[k], tr.decommits[k], err = d.Phase1Broadcast(rand.Reader, keys)
		require.NoError(t, err)
	}
	for k := 0; k < n; k++ {
		dealing, err := d.VerifyCommitmentsAndShare(rand.Reader, tr.keys[k], tr.decommits, tr.broadcasts)
		require.NoError(t, err)
		require.Equal(t, k+1, dealing.Index)
		require.Len(t, dealing.Shares, n)
		tr.dealings[k] = dealing
	}
	return tr
}

func aggregateAll(t *testing.T, d *DKG, tr *transcript) ([]*SharedKeys, []*dlog.Proof) {
	t.Helper()
	n := d.Parameters().ShareCount
	shared := make([]*SharedKeys, n)
	proofs := make([]*dlog.Proof, n)
	for k := 0; k < n; k++ {
		var err error
		shared[k], proofs[k], err = d.VerifySharesAndProve(rand.Reader, tr.keys[k], tr.publicPoints(), tr.sharesFor(k+1), tr.commitments())
		require.NoError(t, err)
	}
	return shared, proofs
}

func TestEndToEnd(t *testing.T) {
	groups := []group.Group{bls12381.New(), &bjj.BJJ{}, secp256k1.New(), ed25519.New()}
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			const threshold, total = 2, 4
			d := newTestDKG(t, g, threshold, total)
			tr := dealAll(t, d)
			shared, proofs := aggregateAll(t, d, tr)

			require.NoError(t, d.VerifyKnowledgeProofs(proofs, tr.publicPoints()))

			for k := 1; k < total; k++ {
				require.True(t, shared[0].PublicKey.Equal(shared[k].PublicKey), "party %d disagrees on Y", k+1)
			}

			// Y is the sum of bootstrap points and its discrete log is sum u_j.
			secrets := make([]group.Scalar, total)
			for k, keys := range tr.keys {
				secrets[k] = keys.SecretScalar()
			}
			sum := group.SumScalars(g, secrets)
			require.True(t, group.BaseMult(g, sum).Equal(shared[0].PublicKey))

			got, err := d.Reconstruct([]int{1, 2, 3}, []group.Scalar{
				shared[0].SecretShare, shared[1].SecretShare, shared[2].SecretShare,
			})
			require.NoError(t, err)
			require.True(t, got.Equal(sum), "reconstructed secret differs from sum of u_j")
		})
	}
}

func TestParameterGrid(t *testing.T) {
	g := bls12381.New()
	for _, cfg := range []struct{ t, n int }{{0, 2}, {1, 2}, {1, 3}, {3, 5}} {
		t.Run(fmt.Sprintf("t%d_n%d", cfg.t, cfg.n), func(t *testing.T) {
			d := newTestDKG(t, g, cfg.t, cfg.n)
			tr := dealAll(t, d)
			shared, proofs := aggregateAll(t, d, tr)
			require.NoError(t, d.VerifyKnowledgeProofs(proofs, tr.publicPoints()))

			idx := make([]int, cfg.t+1)
			sh := make([]group.Scalar, cfg.t+1)
			for k := range idx {
				idx[k] = cfg.n - k
				sh[k] = shared[cfg.n-k-1].SecretShare
			}
			x, err := d.Reconstruct(idx, sh)
			require.NoError(t, err)
			require.True(t, group.BaseMult(g, x).Equal(shared[0].PublicKey))
		})
	}
}

func TestReconstructionIndependence(t *testing.T) {
	d := newTestDKG(t, bls12381.New(), 2, 4)
	tr := dealAll(t, d)
	shared, _ := aggregateAll(t, d, tr)

	a, err := d.Reconstruct([]int{1, 2, 3}, []group.Scalar{shared[0].SecretShare, shared[1].SecretShare, shared[2].SecretShare})
	require.NoError(t, err)
	b, err := d.Reconstruct([]int{2, 3, 4}, []group.Scalar{shared[1].SecretShare, shared[2].SecretShare, shared[3].SecretShare})
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	// Order of the points does not matter.
	c, err := d.Reconstruct([]int{4, 1, 3}, []group.Scalar{shared[3].SecretShare, shared[0].SecretShare, shared[2].SecretShare})
	require.NoError(t, err)
	require.True(t, a.Equal(c))
}

func TestPublicShares(t *testing.T) {
	g := &bjj.BJJ{}
	d := newTestDKG(t, g, 1, 3)
	tr := dealAll(t, d)
	shared, proofs := aggregateAll(t, d, tr)

	verification, err := d.PublicShares(tr.commitments())
	require.NoError(t, err)
	for k := range shared {
		require.True(t, group.BaseMult(g, shared[k].SecretShare).Equal(verification[k]))
		require.True(t, proofs[k].PublicKey.Equal(verification[k]))
	}
}

func TestCommitmentBinding(t *testing.T) {
	for _, h := range []commitment.Hasher{commitment.SHA256Hasher{}, commitment.Blake2bHasher{}, commitment.Blake3Hasher{}} {
		t.Run(h.Name(), func(t *testing.T) {
			d := newTestDKG(t, bls12381.New(), 1, 3, WithCommitmentHash(h))
			tr := dealAll(t, d)

			t.Run("SwappedPoint", func(t *testing.T) {
				decommits := append([]*DecommitMessage1(nil), tr.decommits...)
				forged := *decommits[1]
				forged.PublicPoint = tr.decommits[2].PublicPoint
				decommits[1] = &forged

				_, err := d.VerifyCommitmentsAndShare(rand.Reader, tr.keys[0], decommits, tr.broadcasts)
				require.ErrorIs(t, err, ErrInvalidKey)
				require.Equal(t, []int{2}, Culprits(err))
			})

			t.Run("WrongBlinding", func(t *testing.T) {
				decommits := append([]*DecommitMessage1(nil), tr.decommits...)
				forged := *decommits[0]
				forged.BlindingFactor = tr.decommits[2].BlindingFactor
				decommits[0] = &forged

				_, err := d.VerifyCommitmentsAndShare(rand.Reader, tr.keys[1], decommits, tr.broadcasts)
				require.ErrorIs(t, err, ErrInvalidKey)
				require.Equal(t, []int{1}, Culprits(err))
			})

			t.Run("MissingMessage", func(t *testing.T) {
				broadcasts := append([]*BroadcastMessage1(nil), tr.broadcasts...)
				broadcasts[2] = nil
				_, err := d.VerifyCommitmentsAndShare(rand.Reader, tr.keys[0], tr.decommits, broadcasts)
				require.ErrorIs(t, err, ErrInvalidKey)
				require.Equal(t, []int{3}, Culprits(err))
			})
		})
	}
}

func TestShareTamper(t *testing.T) {
	g := bls12381.New()
	d := newTestDKG(t, g, 2, 4)
	tr := dealAll(t, d)
	const receiver = 3

	t.Run("BitFlip", func(t *testing.T) {
		shares := tr.sharesFor(receiver)
		raw := shares[1].Bytes()
		raw[len(raw)-1] ^= 0x01
		flipped, err := g.NewScalar().SetBytes(raw)
		require.NoError(t, err)
		shares[1] = flipped

		_, _, err = d.VerifySharesAndProve(rand.Reader, tr.keys[receiver-1], tr.publicPoints(), shares, tr.commitments())
		require.ErrorIs(t, err, ErrInvalidSS)
		require.Equal(t, []int{2}, Culprits(err))
	})

	t.Run("Swap", func(t *testing.T) {
		shares := tr.sharesFor(receiver)
		shares[0], shares[3] = shares[3], shares[0]

		_, _, err := d.VerifySharesAndProve(rand.Reader, tr.keys[receiver-1], tr.publicPoints(), shares, tr.commitments())
		require.ErrorIs(t, err, ErrInvalidSS)
		require.Equal(t, []int{1, 4}, Culprits(err))
	})

	t.Run("ShareForAnotherParty", func(t *testing.T) {
		shares := tr.sharesFor(receiver)
		shares[2] = tr.dealings[2].Shares[0]

		_, _, err := d.VerifySharesAndProve(rand.Reader, tr.keys[receiver-1], tr.publicPoints(), shares, tr.commitments())
		require.ErrorIs(t, err, ErrInvalidSS)
	})

	t.Run("ZerothCommitmentMismatch", func(t *testing.T) {
		points := tr.publicPoints()
		points[0], points[1] = points[1], points[0]

		_, _, err := d.VerifySharesAndProve(rand.Reader, tr.keys[receiver-1], points, tr.sharesFor(receiver), tr.commitments())
		require.ErrorIs(t, err, ErrInvalidSS)
		require.Equal(t, []int{1, 2}, Culprits(err))
	})

	t.Run("WrongDegree", func(t *testing.T) {
		// A degree-3 dealing lets four colluding shares fix the secret.
		comms := tr.commitments()
		shares := tr.sharesFor(receiver)
		keys := tr.keys[3]
		c, s, err := vss.Share(rand.Reader, g, 3, 4, keys.SecretScalar())
		require.NoError(t, err)
		comms[3] = c
		shares[3] = s[receiver-1]

		_, _, err = d.VerifySharesAndProve(rand.Reader, tr.keys[receiver-1], tr.publicPoints(), shares, comms)
		require.ErrorIs(t, err, ErrInvalidSS)
		require.Equal(t, []int{4}, Culprits(err))
	})
}

func TestProofSoundness(t *testing.T) {
	d := newTestDKG(t, bls12381.New(), 1, 3)
	tr := dealAll(t, d)
	_, proofs := aggregateAll(t, d, tr)

	forged := *proofs[0]
	forged.PublicKey = proofs[1].PublicKey
	bad := []*dlog.Proof{&forged, proofs[1], proofs[2]}

	err := d.VerifyKnowledgeProofs(bad, tr.publicPoints())
	require.ErrorIs(t, err, ErrInvalidKey)
	require.Equal(t, []int{1}, Culprits(err))

	bad[2] = nil
	require.Equal(t, []int{1, 3}, Culprits(d.VerifyKnowledgeProofs(bad, tr.publicPoints())))
}

func TestThresholdBoundary(t *testing.T) {
	g := bls12381.New()
	d := newTestDKG(t, g, 2, 4)
	tr := dealAll(t, d)
	shared, _ := aggregateAll(t, d, tr)

	secrets := make([]group.Scalar, len(tr.keys))
	for k, keys := range tr.keys {
		secrets[k] = keys.SecretScalar()
	}
	want := group.SumScalars(g, secrets)

	// t points interpolate to something, just not the secret.
	short, err := vss.Reconstruct(g, []int{1, 2}, []group.Scalar{shared[0].SecretShare, shared[1].SecretShare})
	require.NoError(t, err)
	require.False(t, short.Equal(want))

	_, err = d.Reconstruct([]int{1, 2}, []group.Scalar{shared[0].SecretShare, shared[1].SecretShare})
	require.ErrorIs(t, err, ErrTooFewShares)

	enough, err := d.Reconstruct([]int{1, 2, 4}, []group.Scalar{shared[0].SecretShare, shared[1].SecretShare, shared[3].SecretShare})
	require.NoError(t, err)
	require.True(t, enough.Equal(want))
}

func TestLengthContract(t *testing.T) {
	d := newTestDKG(t, bls12381.New(), 1, 3)
	keys, err := d.NewKeys(rand.Reader, 1)
	require.NoError(t, err)

	// Wrong-length slices of nil messages would fail every cryptographic
	// check; the length error must come first.
	short := 2

	_, err = d.VerifyCommitmentsAndShare(rand.Reader, keys, make([]*DecommitMessage1, short), make([]*BroadcastMessage1, 3))
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.Nil(t, Culprits(err))

	_, err = d.VerifyCommitmentsAndShare(rand.Reader, keys, make([]*DecommitMessage1, 3), make([]*BroadcastMessage1, 4))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, _, err = d.VerifySharesAndProve(rand.Reader, keys, make([]group.Point, 3), make([]group.Scalar, short), make([]*vss.Commitments, 3))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, _, err = d.VerifySharesAndProve(rand.Reader, keys, make([]group.Point, 3), make([]group.Scalar, 3), make([]*vss.Commitments, short))
	require.ErrorIs(t, err, ErrLengthMismatch)

	err = d.VerifyKnowledgeProofs(make([]*dlog.Proof, short), make([]group.Point, 3))
	require.ErrorIs(t, err, ErrLengthMismatch)

	err = d.VerifyKnowledgeProofs(make([]*dlog.Proof, 3), make([]group.Point, 4))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = d.PublicShares(make([]*vss.Commitments, short))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = d.Reconstruct([]int{1, 2}, make([]group.Scalar, 3))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestInvalidInputs(t *testing.T) {
	g := bls12381.New()

	t.Run("Parameters", func(t *testing.T) {
		for _, p := range []Parameters{{0, 0}, {-1, 3}, {3, 3}, {5, 3}} {
			_, err := New(NewSuite(g, WithPaillierBits(testPaillierBits)), p)
			require.ErrorIs(t, err, ErrInvalidParameters, "%+v", p)
		}
	})

	t.Run("Suite", func(t *testing.T) {
		params := Parameters{Threshold: 1, ShareCount: 3}
		_, err := New(nil, params)
		require.ErrorIs(t, err, ErrInvalidParameters)
		_, err = New(NewSuite(g, WithPaillierBits(128)), params)
		require.ErrorIs(t, err, ErrInvalidParameters)
		_, err = New(NewSuite(g, WithCommitmentHash(nil)), params)
		require.ErrorIs(t, err, ErrInvalidParameters)
	})

	d := newTestDKG(t, g, 1, 3)

	t.Run("KeyIndex", func(t *testing.T) {
		for _, idx := range []int{0, -1, 4} {
			_, err := d.NewKeys(rand.Reader, idx)
			require.ErrorIs(t, err, ErrInvalidPartyIndex)
		}
	})

	t.Run("ReconstructIndices", func(t *testing.T) {
		one := g.ScalarFromInt(1)
		_, err := d.Reconstruct([]int{1, 1}, []group.Scalar{one, one})
		require.ErrorIs(t, err, ErrDuplicateIndex)
		_, err = d.Reconstruct([]int{0, 1}, []group.Scalar{one, one})
		require.ErrorIs(t, err, ErrInvalidPartyIndex)
		_, err = d.Reconstruct([]int{1, 7}, []group.Scalar{one, one})
		require.ErrorIs(t, err, ErrInvalidPartyIndex)
	})
}

func TestPartyPrivate(t *testing.T) {
	d := newTestDKG(t, bls12381.New(), 1, 2)
	tr := dealAll(t, d)
	shared, _ := aggregateAll(t, d, tr)

	priv := tr.keys[0].Private(shared[0])
	require.True(t, priv.Secret.Equal(tr.keys[0].SecretScalar()))
	require.True(t, priv.SecretShare.Equal(shared[0].SecretShare))
	require.Same(t, tr.keys[0].DecryptionKey(), priv.DecryptionKey)
	require.True(t, tr.broadcasts[0].EncryptionKey.Equal(priv.DecryptionKey.Public()))
}

func TestReservedErrorsAreDistinct(t *testing.T) {
	all := []error{ErrInvalidKey, ErrInvalidSS, ErrInvalidCom, ErrInvalidSig, ErrPhase5BadSum, ErrPhase6Error}
	for i := range all {
		for j := range all {
			if i != j {
				require.NotErrorIs(t, all[i], all[j])
			}
		}
	}
}
