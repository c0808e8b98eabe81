// Package ed25519 implements the Ed25519 keys of the network on top of the
// Kyber Edwards 25519 suite.
//
// Signatures follow RFC 8032 so that they are verified by the nodes.
package ed25519

import (
	"bytes"
	"encoding/asn1"
	"fmt"

	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/sign/eddsa"
	"go.dedis.ch/kyber/v3/suites"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/xerrors"
)

const (
	// Algorithm is the name of the algorithm of the keys.
	Algorithm = "ED25519"

	// PublicKeySize is the size in bytes of the raw public key.
	PublicKeySize = 32
)

var (
	suite = suites.MustFind("Ed25519")

	// OID is the object identifier of Ed25519 in a DER encoded key.
	OID = asn1.ObjectIdentifier{1, 3, 101, 112}
)

// PublicKey is the public key adapter to the Kyber Ed25519 point.
type PublicKey struct {
	point kyber.Point
}

// NewPublicKey returns a new public key from its raw 32 bytes.
func NewPublicKey(data []byte) (PublicKey, error) {
	if len(data) != PublicKeySize {
		return PublicKey{}, xerrors.Errorf("invalid length: expected %d but got %d",
			PublicKeySize, len(data))
	}

	point := suite.Point()
	err := point.UnmarshalBinary(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("couldn't unmarshal point: %v", err)
	}

	return PublicKey{point: point}, nil
}

// NewPublicKeyFromPoint creates a new public key from an existing point.
func NewPublicKeyFromPoint(point kyber.Point) PublicKey {
	return PublicKey{point: point}
}

// GetPoint returns the kyber point.
func (pk PublicKey) GetPoint() kyber.Point {
	return pk.point
}

// MarshalBinary implements encoding.BinaryMarshaler. It produces the raw 32
// bytes of the public key.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return pk.point.MarshalBinary()
}

// Bytes returns the raw 32 bytes of the public key, or nil if the point is
// malformed.
func (pk PublicKey) Bytes() []byte {
	data, err := pk.MarshalBinary()
	if err != nil {
		return nil
	}

	return data
}

// DER returns the SubjectPublicKeyInfo encoding of the public key.
func (pk PublicKey) DER() []byte {
	var b cryptobyte.Builder

	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(OID)
		})
		b.AddASN1BitString(pk.Bytes())
	})

	return b.BytesOrPanic()
}

// ToProtobuf returns the wire message of the key.
func (pk PublicKey) ToProtobuf() *hapi.Key {
	return &hapi.Key{Key: &hapi.Key_Ed25519{Ed25519: pk.Bytes()}}
}

// Verify returns nil if the signature matches the message for this public
// key.
func (pk PublicKey) Verify(msg, sig []byte) error {
	err := eddsa.Verify(pk.point, msg, sig)
	if err != nil {
		return xerrors.Errorf("eddsa verify failed: %v", err)
	}

	return nil
}

// Equal returns true if the other public key is the same.
func (pk PublicKey) Equal(other interface{}) bool {
	pubkey, ok := other.(PublicKey)
	if !ok {
		return false
	}

	return bytes.Equal(pk.Bytes(), pubkey.Bytes())
}

// String implements fmt.Stringer. It returns the hexadecimal raw key.
func (pk PublicKey) String() string {
	return fmt.Sprintf("ed25519:%x", pk.Bytes())
}

// Signer creates RFC 8032 signatures with an Ed25519 private key.
type Signer struct {
	edDSA *eddsa.EdDSA
}

// NewSigner returns a new random signer.
func NewSigner() Signer {
	return Signer{edDSA: eddsa.NewEdDSA(suite.RandomStream())}
}

// NewSignerFromBytes returns the signer of the private key produced by
// MarshalBinary.
func NewSignerFromBytes(data []byte) (Signer, error) {
	edDSA := &eddsa.EdDSA{}

	err := edDSA.UnmarshalBinary(data)
	if err != nil {
		return Signer{}, xerrors.Errorf("couldn't unmarshal private key: %v", err)
	}

	return Signer{edDSA: edDSA}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler. It returns the seed of
// the private key followed by the public key.
func (s Signer) MarshalBinary() ([]byte, error) {
	return s.edDSA.MarshalBinary()
}

// GetPublicKey returns the public key of the signer.
func (s Signer) GetPublicKey() PublicKey {
	data, _ := s.edDSA.Public.MarshalBinary()

	// The point is decoded again so that its representation is canonical.
	pubkey, err := NewPublicKey(data)
	if err != nil {
		return NewPublicKeyFromPoint(s.edDSA.Public)
	}

	return pubkey
}

// Sign signs the message and returns the signature pair that is attached to a
// transaction. The prefix of the pair is the full public key.
func (s Signer) Sign(msg []byte) (*hapi.SignaturePair, error) {
	sig, err := s.edDSA.Sign(msg)
	if err != nil {
		return nil, xerrors.Errorf("couldn't make eddsa signature: %v", err)
	}

	pair := &hapi.SignaturePair{
		PubKeyPrefix: s.GetPublicKey().Bytes(),
		Signature:    &hapi.SignaturePair_Ed25519{Ed25519: sig},
	}

	return pair, nil
}

// Generator generates new Ed25519 private keys.
type Generator struct{}

// Generate returns the bytes of a new random private key.
func (Generator) Generate() ([]byte, error) {
	return NewSigner().MarshalBinary()
}
