package wire

// MessageType tags the payload of an Envelope.
type MessageType uint8

const (
	MsgTypeBroadcast   MessageType = 1 // phase-1 commitment and encryption key
	MsgTypeDecommit    MessageType = 2 // phase-1 opening
	MsgTypeCommitments MessageType = 3 // Feldman coefficient commitments
	MsgTypeShare       MessageType = 4 // private share
	MsgTypeProof       MessageType = 5 // proof of knowledge of x_i
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MsgTypeBroadcast:
		return "broadcast"
	case MsgTypeDecommit:
		return "decommit"
	case MsgTypeCommitments:
		return "commitments"
	case MsgTypeShare:
		return "share"
	case MsgTypeProof:
		return "proof"
	}
	return "unknown"
}

// Envelope wraps an encoded message with routing metadata.
type Envelope struct {
	SessionID string      `json:"session_id" msgpack:"session_id" cbor:"1,keyasint"`
	Type      MessageType `json:"type" msgpack:"type" cbor:"2,keyasint"`
	Sender    int         `json:"sender" msgpack:"sender" cbor:"3,keyasint"`
	Recipient int         `json:"recipient,omitempty" msgpack:"recipient,omitempty" cbor:"4,keyasint,omitempty"`
	Payload   []byte      `json:"payload" msgpack:"payload" cbor:"5,keyasint"`
}

// BroadcastMessage is the encoded dkg.BroadcastMessage1.
type BroadcastMessage struct {
	EncryptionKey []byte `json:"encryption_key" msgpack:"encryption_key" cbor:"1,keyasint"`
	Commitment    []byte `json:"commitment" msgpack:"commitment" cbor:"2,keyasint"`
}

// DecommitMessage is the encoded dkg.DecommitMessage1.
type DecommitMessage struct {
	BlindingFactor []byte `json:"blinding_factor" msgpack:"blinding_factor" cbor:"1,keyasint"`
	PublicPoint    []byte `json:"public_point" msgpack:"public_point" cbor:"2,keyasint"`
}

// CommitmentsMessage is the encoded vss.Commitments.
type CommitmentsMessage struct {
	Points [][]byte `json:"points" msgpack:"points" cbor:"1,keyasint"`
}

// ShareMessage is the encoded dkg.ShareMessage.
type ShareMessage struct {
	Sender    int    `json:"sender" msgpack:"sender" cbor:"1,keyasint"`
	Recipient int    `json:"recipient" msgpack:"recipient" cbor:"2,keyasint"`
	Share     []byte `json:"share" msgpack:"share" cbor:"3,keyasint"`
}

// ProofMessage is the encoded dlog.Proof. ProofData is the commitment point
// followed by the response scalar.
type ProofMessage struct {
	PublicPoint []byte `json:"public_point" msgpack:"public_point" cbor:"1,keyasint"`
	ProofData   []byte `json:"proof_data" msgpack:"proof_data" cbor:"2,keyasint"`
}
