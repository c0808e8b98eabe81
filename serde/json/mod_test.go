package json

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/serde"
)

func TestEngine_GetFormat(t *testing.T) {
	ctx := NewContext()

	require.Equal(t, serde.FormatJSON, ctx.GetFormat())
}

func TestEngine_Marshal(t *testing.T) {
	ctx := NewContext()

	data, err := ctx.Marshal(struct {
		Memo string `json:"memo"`
	}{Memo: "abc"})
	require.NoError(t, err)
	require.Equal(t, `{"memo":"abc"}`, string(data))

	data, err = ctx.Marshal(struct {
		Memo string `json:"memo"`
	}{Memo: "<a & b>"})
	require.NoError(t, err)
	require.Equal(t, `{"memo":"<a & b>"}`, string(data))

	_, err = ctx.Marshal(make(chan int))
	require.EqualError(t, err, "json: unsupported type: chan int")
}

func TestEngine_Unmarshal(t *testing.T) {
	ctx := NewContext()

	var m struct {
		Memo string `json:"memo"`
	}

	err := ctx.Unmarshal([]byte(`{"memo":"abc"}`), &m)
	require.NoError(t, err)
	require.Equal(t, "abc", m.Memo)

	err = ctx.Unmarshal([]byte(`{`), &m)
	require.EqualError(t, err, "unexpected end of JSON input")
}
