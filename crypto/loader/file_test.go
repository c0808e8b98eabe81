package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/internal/testing/fake"
)

func TestFileLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operator.key")

	require.NoError(t, os.WriteFile(path, []byte("0a0b\n"), 0600))

	data, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	require.Equal(t, []byte{0xa, 0xb}, data)

	require.NoError(t, os.WriteFile(path, []byte(" 0x0a0b "), 0600))

	data, err = NewFileLoader(path).Load()
	require.NoError(t, err)
	require.Equal(t, []byte{0xa, 0xb}, data)

	require.NoError(t, os.WriteFile(path, []byte("xyz"), 0600))

	_, err = NewFileLoader(path).Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed key: ")

	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	_, err = NewFileLoader(path).Load()
	require.EqualError(t, err, "empty key")

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.key")).Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't read key file: ")
}

func TestFileLoader_LoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operator.key")

	generator := fakeGenerator{calls: fake.NewCall()}

	data, err := NewFileLoader(path).LoadOrCreate(generator)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
	require.Equal(t, 1, generator.calls.Len())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "010203", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(keyFilePerm), info.Mode().Perm())

	data, err = NewFileLoader(path).LoadOrCreate(generator)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
	require.Equal(t, 1, generator.calls.Len())
}

func TestFileLoader_LoadOrCreateFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operator.key")

	_, err := NewFileLoader(path).LoadOrCreate(fakeGenerator{calls: fake.NewCall(), err: fake.GetError()})
	require.EqualError(t, err, fake.Err("generator failed"))

	loader := NewFileLoader(path).(fileLoader)
	loader.writeFn = func(string, []byte, os.FileMode) error {
		return fake.GetError()
	}

	_, err = loader.LoadOrCreate(fakeGenerator{calls: fake.NewCall()})
	require.EqualError(t, err, fake.Err("couldn't write key file"))

	loader.readFn = func(string) ([]byte, error) {
		return nil, fake.GetError()
	}

	_, err = loader.LoadOrCreate(fakeGenerator{calls: fake.NewCall()})
	require.EqualError(t, err, fake.Err("couldn't read key file"))
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeGenerator struct {
	calls *fake.Call
	err   error
}

func (g fakeGenerator) Generate() ([]byte, error) {
	g.calls.Add("Generate")

	if g.err != nil {
		return nil, g.err
	}

	return []byte{1, 2, 3}, nil
}
