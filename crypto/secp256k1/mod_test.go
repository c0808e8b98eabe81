package secp256k1

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/hapi"
)

// Public key of the private key 1, which is the generator of the curve.
const rawKey = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestPublicKey_New(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)
	require.Equal(t, rawKey, hex.EncodeToString(pk.Bytes()))

	_, err = NewPublicKey([]byte{1, 2})
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't parse public key: ")

	require.Nil(t, PublicKey{}.Bytes())
}

func TestPublicKey_DER(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	require.Equal(t, "302d300706052b8104000a032200"+rawKey, hex.EncodeToString(pk.DER()))
}

func TestPublicKey_ToProtobuf(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	expected := &hapi.Key{Key: &hapi.Key_ECDSASecp256K1{ECDSASecp256K1: mustDecode(t, rawKey)}}
	require.Equal(t, expected, pk.ToProtobuf())
}

func TestPublicKey_EvmAddress(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	require.Equal(t, "7e5f4552091a69125d5dfcb7b8c2659029395bdf", hex.EncodeToString(pk.EvmAddress()))
}

func TestPublicKey_Equal(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	signer, err := NewSignerFromBytes(one())
	require.NoError(t, err)

	require.True(t, pk.Equal(signer.GetPublicKey()))
	require.False(t, pk.Equal(rawKey))
	require.Equal(t, "secp256k1:"+rawKey, pk.String())
}

func TestSigner_Sign(t *testing.T) {
	signer, err := NewSigner()
	require.NoError(t, err)

	pair, err := signer.Sign([]byte("message"))
	require.NoError(t, err)
	require.Equal(t, signer.GetPublicKey().Bytes(), pair.PubKeyPrefix)

	sig := pair.Signature.(*hapi.SignaturePair_ECDSASecp256K1).ECDSASecp256K1
	require.Len(t, sig, 64)

	require.NoError(t, signer.GetPublicKey().Verify([]byte("message"), sig))
	require.EqualError(t, signer.GetPublicKey().Verify([]byte("another"), sig),
		"ecdsa verify failed")
	require.EqualError(t, signer.GetPublicKey().Verify([]byte("message"), sig[:10]),
		"invalid signature length: expected 64 but got 10")
}

func TestSigner_MarshalBinary(t *testing.T) {
	signer, err := NewSignerFromBytes(one())
	require.NoError(t, err)

	data, err := signer.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, one(), data)

	_, err = NewSignerFromBytes([]byte{1})
	require.EqualError(t, err, "invalid private key length: expected 32 but got 1")
}

func TestGenerator_Generate(t *testing.T) {
	data, err := Generator{}.Generate()
	require.NoError(t, err)
	require.Len(t, data, 32)
}

func one() []byte {
	data := make([]byte, 32)
	data[31] = 1

	return data
}

func mustDecode(t *testing.T, text string) []byte {
	data, err := hex.DecodeString(text)
	require.NoError(t, err)

	return data
}
