package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashFactory_New(t *testing.T) {
	h := NewHashFactory(Sha384).New()
	require.Equal(t, 48, h.Size())

	h = NewHashFactory(Keccak256).New()
	h.Write([]byte{})
	require.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(h.Sum(nil)))

	require.Panics(t, func() { NewHashFactory(HashAlgorithm(9)).New() })
}
