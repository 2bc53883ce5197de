package dkg

import (
	"math/big"

	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/paillier"
	"github.com/f3rmion/fydkg/vss"
)

// BroadcastMessage1 is published by every party in phase 1, before anyone
// reveals a public point.
type BroadcastMessage1 struct {
	EncryptionKey *paillier.PublicKey
	Commitment    []byte
}

// DecommitMessage1 opens a BroadcastMessage1 commitment. It is published
// only after all n broadcasts have been received.
type DecommitMessage1 struct {
	BlindingFactor *big.Int
	PublicPoint    group.Point
}

// Dealing is a party's Feldman sharing of its secret. Shares[k] must be sent
// privately to party k+1; Commitments is broadcast.
type Dealing struct {
	Index       int
	Commitments *vss.Commitments
	Shares      []group.Scalar
}

// SharedKeys is the outcome of aggregation at one party: the joint public
// key Y and this party's share x_i of its discrete log.
type SharedKeys struct {
	PublicKey   group.Point
	SecretShare group.Scalar
}

// ShareMessage carries f_Sender(Recipient) from one party to another. It
// must travel over a private, authenticated channel.
type ShareMessage struct {
	Sender    int
	Recipient int
	Share     group.Scalar
}
