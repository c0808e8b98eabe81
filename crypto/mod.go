// Package crypto defines the keys that control the entities of the network.
//
// A key is either a public key, Ed25519 or ECDSA secp256k1, or a list of keys
// with an optional threshold. Keys are converted to and from their wire
// message, and serialized in a human-readable form through the formats
// registered for the package.
package crypto

import (
	"encoding/hex"
	"strings"

	"go.dedis.ch/hedera/crypto/ed25519"
	"go.dedis.ch/hedera/crypto/secp256k1"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"golang.org/x/xerrors"
)

var keyFormats = registry.New()

// RegisterKeyFormat registers the engine for the provided format.
func RegisterKeyFormat(format serde.Format, engine serde.FormatEngine) {
	keyFormats.Register(format, engine)
}

// Key is a public key or a list of keys.
type Key interface {
	serde.Message

	// ToProtobuf returns the wire message of the key.
	ToProtobuf() *hapi.Key
}

// KeyFac is the key of the key factory in a serde context.
type KeyFac struct{}

// publicKey is the common behaviour of the keys of each algorithm.
type publicKey interface {
	Bytes() []byte
	DER() []byte
	ToProtobuf() *hapi.Key
	Verify(msg, sig []byte) error
}

// PublicKey is an Ed25519 or an ECDSA secp256k1 public key.
//
// - implements crypto.Key
type PublicKey struct {
	key publicKey
}

// NewEd25519PublicKey returns the public key of the Ed25519 key.
func NewEd25519PublicKey(pk ed25519.PublicKey) PublicKey {
	return PublicKey{key: pk}
}

// NewSecp256k1PublicKey returns the public key of the secp256k1 key.
func NewSecp256k1PublicKey(pk secp256k1.PublicKey) PublicKey {
	return PublicKey{key: pk}
}

// ParsePublicKey parses the hexadecimal encoding of a public key, either DER
// or raw. A raw key of 32 bytes is Ed25519 and of 33 bytes is secp256k1.
func ParsePublicKey(text string) (PublicKey, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
	if err != nil {
		return PublicKey{}, xerrors.Errorf("invalid public key: %v", err)
	}

	return PublicKeyFromBytes(data)
}

// PublicKeyFromBytes returns the public key of the DER or raw encoding.
func PublicKeyFromBytes(data []byte) (PublicKey, error) {
	switch len(data) {
	case ed25519.PublicKeySize:
		return ed25519PublicKey(data)
	case secp256k1.PublicKeySize:
		return secp256k1PublicKey(data)
	}

	pk, err := parseDER(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("invalid public key: %v", err)
	}

	return pk, nil
}

func ed25519PublicKey(data []byte) (PublicKey, error) {
	pk, err := ed25519.NewPublicKey(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("invalid ed25519 key: %v", err)
	}

	return NewEd25519PublicKey(pk), nil
}

func secp256k1PublicKey(data []byte) (PublicKey, error) {
	pk, err := secp256k1.NewPublicKey(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("invalid secp256k1 key: %v", err)
	}

	return NewSecp256k1PublicKey(pk), nil
}

// IsEd25519 returns true if the key is an Ed25519 key.
func (pk PublicKey) IsEd25519() bool {
	_, ok := pk.key.(ed25519.PublicKey)
	return ok
}

// IsSecp256k1 returns true if the key is a secp256k1 key.
func (pk PublicKey) IsSecp256k1() bool {
	_, ok := pk.key.(secp256k1.PublicKey)
	return ok
}

// Algorithm returns the name of the algorithm of the key.
func (pk PublicKey) Algorithm() string {
	switch pk.key.(type) {
	case ed25519.PublicKey:
		return ed25519.Algorithm
	case secp256k1.PublicKey:
		return secp256k1.Algorithm
	default:
		return ""
	}
}

// Bytes returns the raw encoding of the key.
func (pk PublicKey) Bytes() []byte {
	if pk.key == nil {
		return nil
	}

	return pk.key.Bytes()
}

// DER returns the DER encoding of the key.
func (pk PublicKey) DER() []byte {
	if pk.key == nil {
		return nil
	}

	return pk.key.DER()
}

// Verify returns nil if the signature matches the message for the key.
func (pk PublicKey) Verify(msg, sig []byte) error {
	if pk.key == nil {
		return xerrors.New("empty public key")
	}

	return pk.key.Verify(msg, sig)
}

// ToProtobuf implements crypto.Key.
func (pk PublicKey) ToProtobuf() *hapi.Key {
	if pk.key == nil {
		return &hapi.Key{}
	}

	return pk.key.ToProtobuf()
}

// Serialize implements serde.Message.
func (pk PublicKey) Serialize(ctx serde.Context) ([]byte, error) {
	format := keyFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, pk)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode public key: %v", err)
	}

	return data, nil
}

// String implements fmt.Stringer. It returns the hexadecimal DER encoding.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk.DER())
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}

	*pk = parsed

	return nil
}

// KeyList is a list of keys. When the threshold is zero, all the keys must
// sign, otherwise at least threshold keys must.
//
// - implements crypto.Key
type KeyList struct {
	Keys      []Key
	Threshold uint32
}

// NewKeyList returns a list where every key must sign.
func NewKeyList(keys ...Key) KeyList {
	return KeyList{Keys: keys}
}

// NewThresholdKey returns a list where at least threshold keys must sign.
func NewThresholdKey(threshold uint32, keys ...Key) KeyList {
	return KeyList{Keys: keys, Threshold: threshold}
}

// ToProtobuf implements crypto.Key. It returns a key list, or a threshold key
// when the threshold is set.
func (kl KeyList) ToProtobuf() *hapi.Key {
	list := &hapi.KeyList{Keys: make([]*hapi.Key, len(kl.Keys))}
	for i, key := range kl.Keys {
		list.Keys[i] = key.ToProtobuf()
	}

	if kl.Threshold == 0 {
		return &hapi.Key{Key: &hapi.Key_KeyList{KeyList: list}}
	}

	tk := &hapi.ThresholdKey{
		Threshold: kl.Threshold,
		Keys:      list,
	}

	return &hapi.Key{Key: &hapi.Key_ThresholdKey{ThresholdKey: tk}}
}

// Serialize implements serde.Message.
func (kl KeyList) Serialize(ctx serde.Context) ([]byte, error) {
	format := keyFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, kl)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode key list: %v", err)
	}

	return data, nil
}

// KeyFromProtobuf returns the key of the wire message.
func KeyFromProtobuf(pb *hapi.Key) (Key, error) {
	if pb == nil {
		return nil, xerrors.New("empty key")
	}

	switch v := pb.Key.(type) {
	case *hapi.Key_Ed25519:
		pk, err := ed25519PublicKey(v.Ed25519)
		if err != nil {
			return nil, err
		}

		return pk, nil
	case *hapi.Key_ECDSASecp256K1:
		pk, err := secp256k1PublicKey(v.ECDSASecp256K1)
		if err != nil {
			return nil, err
		}

		return pk, nil
	case *hapi.Key_KeyList:
		keys, err := keysFromProtobuf(v.KeyList)
		if err != nil {
			return nil, err
		}

		return KeyList{Keys: keys}, nil
	case *hapi.Key_ThresholdKey:
		if v.ThresholdKey == nil {
			return KeyList{}, nil
		}

		keys, err := keysFromProtobuf(v.ThresholdKey.Keys)
		if err != nil {
			return nil, err
		}

		return KeyList{Keys: keys, Threshold: v.ThresholdKey.Threshold}, nil
	case nil:
		return nil, xerrors.New("empty key")
	default:
		return nil, xerrors.Errorf("unsupported key of type '%T'", v)
	}
}

func keysFromProtobuf(pb *hapi.KeyList) ([]Key, error) {
	if pb == nil {
		return nil, nil
	}

	keys := make([]Key, len(pb.Keys))

	for i, k := range pb.Keys {
		key, err := KeyFromProtobuf(k)
		if err != nil {
			return nil, xerrors.Errorf("key %d: %v", i, err)
		}

		keys[i] = key
	}

	return keys, nil
}

// keyFactory is a factory to deserialize keys.
//
// - implements serde.Factory
type keyFactory struct{}

// NewKeyFactory returns a new instance of the factory.
func NewKeyFactory() serde.Factory {
	return keyFactory{}
}

// Deserialize implements serde.Factory. It returns the key of the data if
// appropriate, otherwise an error.
func (f keyFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := keyFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode key: %v", err)
	}

	return msg, nil
}

// KeyOf returns the key of the data using the key factory of the context.
func KeyOf(ctx serde.Context, data []byte) (Key, error) {
	msg, err := ctx.FactoryOf(KeyFac{}, keyFactory{}).Deserialize(ctx, data)
	if err != nil {
		return nil, err
	}

	key, ok := msg.(Key)
	if !ok {
		return nil, xerrors.Errorf("invalid key of type '%T'", msg)
	}

	return key, nil
}
