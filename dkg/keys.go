package dkg

import (
	"fmt"
	"io"

	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/paillier"
)

// Keys is one party's bootstrap key material: the secret u_i, its public
// point y_i = u_i*G and a Paillier key pair.
type Keys struct {
	index  int
	secret group.Scalar
	public group.Point
	dk     *paillier.PrivateKey
}

// NewKeys samples fresh key material for the party at index (1-based).
func (d *DKG) NewKeys(r io.Reader, index int) (*Keys, error) {
	if err := d.checkIndex(index); err != nil {
		return nil, err
	}
	g := d.group()
	u, err := g.RandomScalar(r)
	if err != nil {
		return nil, fmt.Errorf("dkg: sample secret: %w", err)
	}
	dk, err := paillier.GenerateKey(r, d.suite.paillierBits)
	if err != nil {
		return nil, fmt.Errorf("dkg: generate paillier key: %w", err)
	}
	return &Keys{
		index:  index,
		secret: u,
		public: group.BaseMult(g, u),
		dk:     dk,
	}, nil
}

// Index returns the 1-based party index.
func (k *Keys) Index() int { return k.index }

// PublicPoint returns y_i = u_i*G.
func (k *Keys) PublicPoint() group.Point { return k.public }

// EncryptionKey returns the public half of the Paillier key pair.
func (k *Keys) EncryptionKey() *paillier.PublicKey { return k.dk.Public() }

// DecryptionKey returns the Paillier private key. It must never leave the party.
func (k *Keys) DecryptionKey() *paillier.PrivateKey { return k.dk }

// SecretScalar returns u_i. It must never leave the party.
func (k *Keys) SecretScalar() group.Scalar { return k.secret }

// PartyPrivate bundles everything a party keeps to itself after a
// successful run.
type PartyPrivate struct {
	Secret        group.Scalar // u_i
	SecretShare   group.Scalar // x_i
	DecryptionKey *paillier.PrivateKey
}

// Private combines the bootstrap keys with the aggregated share.
func (k *Keys) Private(shared *SharedKeys) *PartyPrivate {
	return &PartyPrivate{
		Secret:        k.secret,
		SecretShare:   shared.SecretShare,
		DecryptionKey: k.dk,
	}
}
