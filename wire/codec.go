package wire

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/f3rmion/fydkg/dkg"
	"github.com/f3rmion/fydkg/dlog"
	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/paillier"
	"github.com/f3rmion/fydkg/vss"
)

// ErrMalformed is returned when a decoded message does not describe a valid
// protocol value.
var ErrMalformed = errors.New("wire: malformed message")

// ErrUnexpectedType is returned when an envelope carries a different
// message type than the one requested.
var ErrUnexpectedType = errors.New("wire: unexpected message type")

// Codec converts protocol messages to and from bytes. Group elements are
// decoded and validated against the codec's group.
type Codec struct {
	group group.Group
	ser   *Serializer

	pointLen  int
	scalarLen int
}

// NewCodec returns a codec for g using the named serializer.
func NewCodec(g group.Group, codecType string) (*Codec, error) {
	ser, err := NewSerializer(codecType)
	if err != nil {
		return nil, err
	}
	return &Codec{
		group:     g,
		ser:       ser,
		pointLen:  len(g.Generator().Bytes()),
		scalarLen: len(g.NewScalar().Bytes()),
	}, nil
}

// Name returns the serializer codec name.
func (c *Codec) Name() string {
	return c.ser.CodecType()
}

func (c *Codec) point(b []byte, what string) (group.Point, error) {
	p, err := c.group.NewPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, what, err)
	}
	return p, nil
}

func (c *Codec) scalar(b []byte, what string) (group.Scalar, error) {
	s, err := c.group.NewScalar().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, what, err)
	}
	return s, nil
}

// EncodeBroadcast serializes a phase-1 broadcast.
func (c *Codec) EncodeBroadcast(m *dkg.BroadcastMessage1) ([]byte, error) {
	return c.ser.Marshal(&BroadcastMessage{
		EncryptionKey: m.EncryptionKey.Bytes(),
		Commitment:    m.Commitment,
	})
}

// DecodeBroadcast parses a phase-1 broadcast and validates its Paillier key.
func (c *Codec) DecodeBroadcast(data []byte) (*dkg.BroadcastMessage1, error) {
	var msg BroadcastMessage
	if err := c.ser.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	ek, err := paillier.NewPublicKey(msg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key: %v", ErrMalformed, err)
	}
	if len(msg.Commitment) == 0 {
		return nil, fmt.Errorf("%w: empty commitment", ErrMalformed)
	}
	return &dkg.BroadcastMessage1{EncryptionKey: ek, Commitment: msg.Commitment}, nil
}

// EncodeDecommit serializes a phase-1 decommitment.
func (c *Codec) EncodeDecommit(m *dkg.DecommitMessage1) ([]byte, error) {
	return c.ser.Marshal(&DecommitMessage{
		BlindingFactor: m.BlindingFactor.Bytes(),
		PublicPoint:    m.PublicPoint.Bytes(),
	})
}

// DecodeDecommit parses a decommitment and decodes its point in the codec's group.
func (c *Codec) DecodeDecommit(data []byte) (*dkg.DecommitMessage1, error) {
	var msg DecommitMessage
	if err := c.ser.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	y, err := c.point(msg.PublicPoint, "public point")
	if err != nil {
		return nil, err
	}
	return &dkg.DecommitMessage1{
		BlindingFactor: new(big.Int).SetBytes(msg.BlindingFactor),
		PublicPoint:    y,
	}, nil
}

// EncodeCommitments serializes a set of coefficient commitments.
func (c *Codec) EncodeCommitments(m *vss.Commitments) ([]byte, error) {
	points := make([][]byte, len(m.Points))
	for k, p := range m.Points {
		points[k] = p.Bytes()
	}
	return c.ser.Marshal(&CommitmentsMessage{Points: points})
}

// DecodeCommitments parses coefficient commitments, rejecting an empty set.
func (c *Codec) DecodeCommitments(data []byte) (*vss.Commitments, error) {
	var msg CommitmentsMessage
	if err := c.ser.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if len(msg.Points) == 0 {
		return nil, fmt.Errorf("%w: no coefficient commitments", ErrMalformed)
	}
	points := make([]group.Point, len(msg.Points))
	for k, b := range msg.Points {
		p, err := c.point(b, fmt.Sprintf("commitment %d", k))
		if err != nil {
			return nil, err
		}
		points[k] = p
	}
	return &vss.Commitments{Points: points}, nil
}

// EncodeShare serializes a private share message.
func (c *Codec) EncodeShare(m *dkg.ShareMessage) ([]byte, error) {
	return c.ser.Marshal(&ShareMessage{
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Share:     m.Share.Bytes(),
	})
}

// DecodeShare parses a private share message.
func (c *Codec) DecodeShare(data []byte) (*dkg.ShareMessage, error) {
	var msg ShareMessage
	if err := c.ser.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	s, err := c.scalar(msg.Share, "share")
	if err != nil {
		return nil, err
	}
	return &dkg.ShareMessage{Sender: msg.Sender, Recipient: msg.Recipient, Share: s}, nil
}

// EncodeProof serializes a knowledge proof.
func (c *Codec) EncodeProof(p *dlog.Proof) ([]byte, error) {
	data := make([]byte, 0, c.pointLen+c.scalarLen)
	data = append(data, p.Commitment.Bytes()...)
	data = append(data, p.Response.Bytes()...)
	return c.ser.Marshal(&ProofMessage{
		PublicPoint: p.PublicKey.Bytes(),
		ProofData:   data,
	})
}

// DecodeProof parses a knowledge proof. Points are checked for group membership.
func (c *Codec) DecodeProof(data []byte) (*dlog.Proof, error) {
	var msg ProofMessage
	if err := c.ser.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if len(msg.ProofData) != c.pointLen+c.scalarLen {
		return nil, fmt.Errorf("%w: proof data is %d bytes, want %d", ErrMalformed, len(msg.ProofData), c.pointLen+c.scalarLen)
	}
	pk, err := c.point(msg.PublicPoint, "proof public point")
	if err != nil {
		return nil, err
	}
	commitment, err := c.point(msg.ProofData[:c.pointLen], "proof commitment")
	if err != nil {
		return nil, err
	}
	response, err := c.scalar(msg.ProofData[c.pointLen:], "proof response")
	if err != nil {
		return nil, err
	}
	return &dlog.Proof{PublicKey: pk, Commitment: commitment, Response: response}, nil
}

// Seal wraps an encoded payload in an envelope and encodes the envelope.
func (c *Codec) Seal(sessionID string, t MessageType, sender, recipient int, payload []byte) ([]byte, error) {
	return c.ser.Marshal(&Envelope{
		SessionID: sessionID,
		Type:      t,
		Sender:    sender,
		Recipient: recipient,
		Payload:   payload,
	})
}

// Open decodes an envelope and checks its type.
func (c *Codec) Open(data []byte, want MessageType) (*Envelope, error) {
	var env Envelope
	if err := c.ser.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Type != want {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedType, env.Type, want)
	}
	return &env, nil
}
