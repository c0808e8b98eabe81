// Package secp256k1 implements the ECDSA secp256k1 keys of the network on top
// of the decred implementation of the curve.
//
// Messages are hashed with Keccak-256 before being signed, as the nodes do
// when they verify a signature.
package secp256k1

import (
	"bytes"
	"encoding/asn1"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"go.dedis.ch/hedera/hapi"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

const (
	// Algorithm is the name of the algorithm of the keys.
	Algorithm = "ECDSA_SECP256K1"

	// PublicKeySize is the size in bytes of the compressed public key.
	PublicKeySize = secp256k1.PubKeyBytesLenCompressed

	signatureSize = 64
)

var (
	// OID is the object identifier of the secp256k1 curve.
	OID = asn1.ObjectIdentifier{1, 3, 132, 0, 10}

	// ECPublicKeyOID is the object identifier of an elliptic curve public key
	// whose curve is given as parameter.
	ECPublicKeyOID = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

// PublicKey is the adapter of a secp256k1 public key.
type PublicKey struct {
	key *secp256k1.PublicKey
}

// NewPublicKey returns the public key of the compressed or uncompressed
// encoding.
func NewPublicKey(data []byte) (PublicKey, error) {
	key, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("couldn't parse public key: %v", err)
	}

	return PublicKey{key: key}, nil
}

// Bytes returns the compressed encoding of the public key.
func (pk PublicKey) Bytes() []byte {
	if pk.key == nil {
		return nil
	}

	return pk.key.SerializeCompressed()
}

// DER returns the SubjectPublicKeyInfo encoding of the public key with the
// curve as the algorithm.
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
	return &hapi.Key{Key: &hapi.Key_ECDSASecp256K1{ECDSASecp256K1: pk.Bytes()}}
}

// EvmAddress returns the 20 bytes of the address of the key on the EVM, that
// is the end of the Keccak-256 hash of the uncompressed point.
func (pk PublicKey) EvmAddress() []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(pk.key.SerializeUncompressed()[1:])

	return h.Sum(nil)[12:]
}

// Verify returns nil if the signature, 64 bytes made of r and s, matches the
// message for this public key.
func (pk PublicKey) Verify(msg, sig []byte) error {
	if len(sig) != signatureSize {
		return xerrors.Errorf("invalid signature length: expected %d but got %d",
			signatureSize, len(sig))
	}

	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sig[:32])
	s.SetByteSlice(sig[32:])

	if !ecdsa.NewSignature(&r, &s).Verify(keccak(msg), pk.key) {
		return xerrors.New("ecdsa verify failed")
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

// String implements fmt.Stringer. It returns the hexadecimal compressed key.
func (pk PublicKey) String() string {
	return fmt.Sprintf("secp256k1:%x", pk.Bytes())
}

// Signer signs messages with a secp256k1 private key.
type Signer struct {
	key *secp256k1.PrivateKey
}

// NewSigner returns a new random signer.
func NewSigner() (Signer, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return Signer{}, xerrors.Errorf("couldn't generate private key: %v", err)
	}

	return Signer{key: key}, nil
}

// NewSignerFromBytes returns the signer of the 32 bytes of a private key.
func NewSignerFromBytes(data []byte) (Signer, error) {
	if len(data) != secp256k1.PrivKeyBytesLen {
		return Signer{}, xerrors.Errorf("invalid private key length: expected %d but got %d",
			secp256k1.PrivKeyBytesLen, len(data))
	}

	return Signer{key: secp256k1.PrivKeyFromBytes(data)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler. It returns the 32 bytes
// of the private key.
func (s Signer) MarshalBinary() ([]byte, error) {
	return s.key.Serialize(), nil
}

// GetPublicKey returns the public key of the signer.
func (s Signer) GetPublicKey() PublicKey {
	return PublicKey{key: s.key.PubKey()}
}

// Sign signs the Keccak-256 hash of the message and returns the signature
// pair that is attached to a transaction.
func (s Signer) Sign(msg []byte) (*hapi.SignaturePair, error) {
	// The compact form is prefixed by the recovery byte which is not part of
	// the signature of the network.
	compact := ecdsa.SignCompact(s.key, keccak(msg), true)

	pair := &hapi.SignaturePair{
		PubKeyPrefix: s.GetPublicKey().Bytes(),
		Signature:    &hapi.SignaturePair_ECDSASecp256K1{ECDSASecp256K1: compact[1:]},
	}

	return pair, nil
}

// Generator generates new secp256k1 private keys.
type Generator struct{}

// Generate returns the bytes of a new random private key.
func (Generator) Generate() ([]byte, error) {
	signer, err := NewSigner()
	if err != nil {
		return nil, err
	}

	return signer.MarshalBinary()
}

func keccak(msg []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(msg)

	return h.Sum(nil)
}
