package tracing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestGetTracer(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")

	defer func() {
		require.NoError(t, CloseAll())
	}()

	tracer, err := GetTracer("hedera-test")
	require.NoError(t, err)
	require.NotNil(t, tracer)

	again, err := GetTracer("hedera-test")
	require.NoError(t, err)
	require.Equal(t, tracer, again)
}

func TestGetTracer_BadEnv(t *testing.T) {
	t.Setenv("JAEGER_SAMPLER_PARAM", "not a number")

	_, err := GetTracer("hedera-bad")
	require.Error(t, err)
	require.Contains(t, err.Error(), "error parsing jaeger configuration from environment")
}

func TestCloseAll(t *testing.T) {
	t.Setenv("JAEGER_DISABLED", "true")

	_, err := GetTracer("hedera-close")
	require.NoError(t, err)

	require.NoError(t, CloseAll())
	require.Empty(t, tracers)
}

func TestCloseAll_Failure(t *testing.T) {
	mu.Lock()
	tracers["bad"] = entry{closer: badCloser{}}
	mu.Unlock()

	err := CloseAll()
	require.EqualError(t, err, "couldn't close tracer of 'bad': oops")
	require.Empty(t, tracers)
}

type badCloser struct{}

func (badCloser) Close() error {
	return xerrors.New("oops")
}
