package runner

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/fydkg/dkg"
	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/session"
	"github.com/f3rmion/fydkg/wire"
)

var (
	// ErrRouting is returned when an envelope arrives with the wrong
	// session, sender or recipient.
	ErrRouting = errors.New("runner: misrouted envelope")

	// ErrDisagreement is returned if finalized parties hold different keys.
	ErrDisagreement = errors.New("runner: parties disagree on the joint key")

	// ErrAuditMismatch is returned when t+1 shares do not reconstruct the
	// discrete log of the joint key.
	ErrAuditMismatch = errors.New("runner: reconstructed secret does not match joint key")
)

// ShareFault names one dealt share to corrupt.
type ShareFault struct {
	Sender    int
	Recipient int
}

// Faults inject misbehaviour into a run, for tests and demonstrations.
type Faults struct {
	// TamperShare adds one to the share Sender deals to Recipient.
	TamperShare *ShareFault

	// ForgeDecommit makes the party at this index reveal a point other
	// than the one it committed to. Zero disables it.
	ForgeDecommit int
}

// Config describes one in-memory key generation run.
type Config struct {
	Suite  *dkg.Suite
	Params dkg.Parameters

	// Codec is the wire codec name. Empty selects wire.DefaultCodec.
	Codec     string
	SessionID string

	Logger  *slog.Logger
	Metrics *Metrics

	// Rand must be safe for concurrent use. Defaults to crypto/rand.
	Rand io.Reader

	Faults Faults
}

// PhaseError reports the phase and party at which a run stopped.
type PhaseError struct {
	Phase string
	Party int
	Err   error
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("runner: phase %s, party %d: %v", e.Phase, e.Party, e.Err)
}

// Unwrap returns the error the party failed with.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Outcome is the result of a successful run.
type Outcome struct {
	DKG       *dkg.DKG
	PublicKey group.Point
	Results   []*session.Result

	// Messages and Bytes count every envelope exchanged.
	Messages int64
	Bytes    int64
}

// Audit reconstructs the joint secret from the first t+1 shares and checks
// it against the joint key.
func (o *Outcome) Audit() error {
	t := o.DKG.Parameters().Threshold
	indices := make([]int, t+1)
	shares := make([]group.Scalar, t+1)
	for k := range indices {
		indices[k] = k + 1
		shares[k] = o.Results[k].Private.SecretShare
	}
	x, err := o.DKG.Reconstruct(indices, shares)
	if err != nil {
		return err
	}
	if !group.BaseMult(o.DKG.Suite().Group(), x).Equal(o.PublicKey) {
		return ErrAuditMismatch
	}
	return nil
}

type run struct {
	cfg     Config
	codec   *wire.Codec
	log     *slog.Logger
	rng     io.Reader
	parties []*session.Participant

	messages atomic.Int64
	bytes    atomic.Int64
}

// Run executes all phases for n parties in one process. Parties run
// concurrently within a phase; a phase starts only after every party has
// published its output for the previous one.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	if cfg.Suite == nil {
		return nil, fmt.Errorf("%w: no suite", dkg.ErrInvalidParameters)
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	codec, err := wire.NewCodec(cfg.Suite.Group(), cfg.Codec)
	if err != nil {
		return nil, err
	}
	r := &run{
		cfg:     cfg,
		codec:   codec,
		log:     cfg.Logger,
		rng:     cfg.Rand,
		parties: make([]*session.Participant, cfg.Params.ShareCount),
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	if r.rng == nil {
		r.rng = rand.Reader
	}
	r.log = r.log.With("session", cfg.SessionID)

	out, err := r.execute(ctx)
	cfg.Metrics.recordRun(err == nil)
	if err != nil {
		r.log.Error("key generation failed", "err", err, "culprits", dkg.Culprits(err))
		return nil, err
	}
	r.log.Info("key generation complete",
		"group", cfg.Suite.Group().Name(),
		"threshold", cfg.Params.Threshold,
		"parties", cfg.Params.ShareCount,
		"messages", out.Messages,
		"bytes", out.Bytes,
	)
	return out, nil
}

func (r *run) execute(ctx context.Context) (*Outcome, error) {
	n := r.cfg.Params.ShareCount

	err := r.phase(ctx, "keygen", func(k int) error {
		p, err := session.NewParticipant(r.rng, r.cfg.Suite, r.cfg.Params, k+1)
		r.parties[k] = p
		return err
	})
	if err != nil {
		return nil, err
	}

	broadcasts := make([][]byte, n)
	err = r.phase(ctx, "commit", func(k int) error {
		bc, err := r.parties[k].Commit(r.rng)
		if err != nil {
			return err
		}
		payload, err := r.codec.EncodeBroadcast(bc)
		broadcasts[k], err = r.seal(wire.MsgTypeBroadcast, k+1, 0, payload, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	decommits := make([][]byte, n)
	err = r.phase(ctx, "reveal", func(k int) error {
		in, err := decodeAll(r, broadcasts, wire.MsgTypeBroadcast, 0, r.codec.DecodeBroadcast)
		if err != nil {
			return err
		}
		dc, err := r.parties[k].Reveal(in)
		if err != nil {
			return err
		}
		if r.cfg.Faults.ForgeDecommit == k+1 {
			if dc, err = r.forgeDecommit(dc); err != nil {
				return err
			}
		}
		payload, err := r.codec.EncodeDecommit(dc)
		decommits[k], err = r.seal(wire.MsgTypeDecommit, k+1, 0, payload, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	commitments := make([][]byte, n)
	// shares[sender-1][recipient-1]
	shares := make([][][]byte, n)
	err = r.phase(ctx, "distribute", func(k int) error {
		in, err := decodeAll(r, decommits, wire.MsgTypeDecommit, 0, r.codec.DecodeDecommit)
		if err != nil {
			return err
		}
		out, err := r.parties[k].Distribute(r.rng, in)
		if err != nil {
			return err
		}
		payload, err := r.codec.EncodeCommitments(out.Commitments)
		if commitments[k], err = r.seal(wire.MsgTypeCommitments, k+1, 0, payload, err); err != nil {
			return err
		}
		shares[k] = make([][]byte, n)
		for j := 1; j <= n; j++ {
			msg := r.maybeTamper(out.Shares[j])
			payload, err := r.codec.EncodeShare(msg)
			if shares[k][j-1], err = r.seal(wire.MsgTypeShare, k+1, j, payload, err); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	proofs := make([][]byte, n)
	err = r.phase(ctx, "aggregate", func(k int) error {
		comms, err := decodeAll(r, commitments, wire.MsgTypeCommitments, 0, r.codec.DecodeCommitments)
		if err != nil {
			return err
		}
		column := make([][]byte, n)
		for j := range shares {
			column[j] = shares[j][k]
		}
		received, err := decodeAll(r, column, wire.MsgTypeShare, k+1, r.codec.DecodeShare)
		if err != nil {
			return err
		}
		proof, err := r.parties[k].Aggregate(r.rng, &session.Round2Input{
			Commitments: comms,
			Shares:      received,
		})
		if err != nil {
			return err
		}
		payload, err := r.codec.EncodeProof(proof)
		proofs[k], err = r.seal(wire.MsgTypeProof, k+1, 0, payload, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	results := make([]*session.Result, n)
	err = r.phase(ctx, "finalize", func(k int) error {
		in, err := decodeAll(r, proofs, wire.MsgTypeProof, 0, r.codec.DecodeProof)
		if err != nil {
			return err
		}
		results[k], err = r.parties[k].Finalize(in)
		return err
	})
	if err != nil {
		return nil, err
	}

	for k := 1; k < n; k++ {
		if !results[k].PublicKey.Equal(results[0].PublicKey) {
			return nil, ErrDisagreement
		}
	}
	return &Outcome{
		DKG:       r.parties[0].DKG(),
		PublicKey: results[0].PublicKey,
		Results:   results,
		Messages:  r.messages.Load(),
		Bytes:     r.bytes.Load(),
	}, nil
}

// phase runs fn for every party concurrently and waits for all of them.
func (r *run) phase(ctx context.Context, name string, fn func(k int) error) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for k := range r.parties {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(k); err != nil {
				return &PhaseError{Phase: name, Party: k + 1, Err: err}
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	r.cfg.Metrics.observePhase(name, elapsed)
	if err != nil {
		r.cfg.Metrics.recordFailure(name, reason(err))
		r.log.Warn("phase failed", "phase", name, "err", err)
		return err
	}
	r.log.Debug("phase complete", "phase", name, "elapsed", elapsed)
	return nil
}

func (r *run) seal(t wire.MessageType, sender, recipient int, payload []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	data, err := r.codec.Seal(r.cfg.SessionID, t, sender, recipient, payload)
	if err != nil {
		return nil, err
	}
	r.messages.Add(1)
	r.bytes.Add(int64(len(data)))
	r.cfg.Metrics.recordMessage(t.String(), len(data))
	return data, nil
}

func (r *run) open(data []byte, t wire.MessageType, sender, recipient int) ([]byte, error) {
	env, err := r.codec.Open(data, t)
	if err != nil {
		return nil, err
	}
	if env.SessionID != r.cfg.SessionID || env.Sender != sender || env.Recipient != recipient {
		return nil, fmt.Errorf("%w: %s from %d to %d", ErrRouting, t, env.Sender, env.Recipient)
	}
	return env.Payload, nil
}

// decodeAll opens raws[j] as a message of type t from party j+1 and decodes
// its payload.
func decodeAll[T any](r *run, raws [][]byte, t wire.MessageType, recipient int, decode func([]byte) (T, error)) ([]T, error) {
	out := make([]T, len(raws))
	for j, raw := range raws {
		payload, err := r.open(raw, t, j+1, recipient)
		if err != nil {
			return nil, err
		}
		if out[j], err = decode(payload); err != nil {
			return nil, fmt.Errorf("%s from party %d: %w", t, j+1, err)
		}
	}
	return out, nil
}

func (r *run) forgeDecommit(dc *dkg.DecommitMessage1) (*dkg.DecommitMessage1, error) {
	g := r.cfg.Suite.Group()
	s, err := g.RandomScalar(r.rng)
	if err != nil {
		return nil, err
	}
	return &dkg.DecommitMessage1{
		BlindingFactor: dc.BlindingFactor,
		PublicPoint:    group.BaseMult(g, s),
	}, nil
}

func (r *run) maybeTamper(m *dkg.ShareMessage) *dkg.ShareMessage {
	f := r.cfg.Faults.TamperShare
	if f == nil || f.Sender != m.Sender || f.Recipient != m.Recipient {
		return m
	}
	g := r.cfg.Suite.Group()
	return &dkg.ShareMessage{
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Share:     g.NewScalar().Add(m.Share, g.ScalarFromInt(1)),
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, dkg.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, dkg.ErrInvalidSS):
		return "invalid_share"
	case errors.Is(err, session.ErrMisrouted), errors.Is(err, ErrRouting):
		return "routing"
	case errors.Is(err, wire.ErrMalformed):
		return "malformed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
