package ed25519

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/hapi"
)

const rawKey = "d1ad76ed9b057a3d3f2ea2d03b41bcd79aeafd611f941924f0f6da528ab066fd"

func TestPublicKey_New(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)
	require.Equal(t, rawKey, hex.EncodeToString(pk.Bytes()))

	_, err = NewPublicKey([]byte{1, 2})
	require.EqualError(t, err, "invalid length: expected 32 but got 2")
}

func TestPublicKey_NewFromPoint(t *testing.T) {
	point := suite.Point().Pick(suite.RandomStream())
	pk := NewPublicKeyFromPoint(point)
	require.True(t, pk.GetPoint().Equal(point))
}

func TestPublicKey_DER(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	require.Equal(t, "302a300506032b6570032100"+rawKey, hex.EncodeToString(pk.DER()))
}

func TestPublicKey_ToProtobuf(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	require.Equal(t, &hapi.Key{Key: &hapi.Key_Ed25519{Ed25519: mustDecode(t, rawKey)}},
		pk.ToProtobuf())
}

func TestPublicKey_Equal(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	other, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	require.True(t, pk.Equal(other))
	require.False(t, pk.Equal(NewSigner().GetPublicKey()))
	require.False(t, pk.Equal(rawKey))
}

func TestPublicKey_String(t *testing.T) {
	pk, err := NewPublicKey(mustDecode(t, rawKey))
	require.NoError(t, err)

	require.Equal(t, "ed25519:"+rawKey, pk.String())
}

func TestSigner_Sign(t *testing.T) {
	signer := NewSigner()

	pair, err := signer.Sign([]byte("message"))
	require.NoError(t, err)
	require.Equal(t, signer.GetPublicKey().Bytes(), pair.PubKeyPrefix)

	sig := pair.Signature.(*hapi.SignaturePair_Ed25519).Ed25519
	require.Len(t, sig, 64)

	err = signer.GetPublicKey().Verify([]byte("message"), sig)
	require.NoError(t, err)

	err = signer.GetPublicKey().Verify([]byte("another"), sig)
	require.Error(t, err)
	require.Contains(t, err.Error(), "eddsa verify failed: ")
}

func TestSigner_MarshalBinary(t *testing.T) {
	signer := NewSigner()

	data, err := signer.MarshalBinary()
	require.NoError(t, err)

	loaded, err := NewSignerFromBytes(data)
	require.NoError(t, err)
	require.True(t, signer.GetPublicKey().Equal(loaded.GetPublicKey()))

	_, err = NewSignerFromBytes([]byte{1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't unmarshal private key: ")
}

func TestGenerator_Generate(t *testing.T) {
	data, err := Generator{}.Generate()
	require.NoError(t, err)

	_, err = NewSignerFromBytes(data)
	require.NoError(t, err)
}

func mustDecode(t *testing.T, text string) []byte {
	data, err := hex.DecodeString(text)
	require.NoError(t, err)

	return data
}
