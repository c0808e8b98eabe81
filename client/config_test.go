package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testConfig = `
network: testnet
nodes:
  0.0.3: 127.0.0.1:50211
  0.0.4: 127.0.0.1:50212
mirror: 127.0.0.1:5600
operator: 0.0.1001
timeout: 3s
journal: /tmp/journal.db
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)
	require.Equal(t, "testnet", cfg.Network)
	require.Len(t, cfg.Nodes, 2)
	require.Equal(t, "127.0.0.1:50211", cfg.Nodes["0.0.3"])
	require.Equal(t, "127.0.0.1:5600", cfg.Mirror)
	require.Equal(t, "0.0.1001", cfg.Operator)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, "/tmp/journal.db", cfg.Journal)
	require.Equal(t, KeyTypeEd25519, cfg.OperatorKeyType)
	require.True(t, cfg.ValidateChecksums)
	require.Zero(t, cfg.MaxMessageSize)
}

func TestParseConfig_Env(t *testing.T) {
	t.Setenv("HEDERA_NETWORK", "mainnet")
	t.Setenv("HEDERA_VALIDATE_CHECKSUMS", "false")
	t.Setenv("HEDERA_TIMEOUT", "1m")

	cfg, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)
	require.Equal(t, "mainnet", cfg.Network)
	require.False(t, cfg.ValidateChecksums)
	require.Equal(t, time.Minute, cfg.Timeout)
	require.Equal(t, "0.0.1001", cfg.Operator)

	t.Setenv("HEDERA_TIMEOUT", "soon")

	_, err = ParseConfig([]byte(testConfig))
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't parse env: ")
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte("network: [testnet"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't unmarshal config: ")

	_, err = ParseConfig([]byte("nodes:\n  0.0.3: 127.0.0.1:50211\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config: ")
	require.Contains(t, err.Error(), "Network")

	_, err = ParseConfig([]byte("network: testnet\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Nodes")

	_, err = ParseConfig([]byte(testConfig + "operatorKeyType: rsa\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "OperatorKeyType")

	_, err = ParseConfig([]byte(testConfig + "maxMessageSize: -1\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "MaxMessageSize")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "testnet", cfg.Network)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "unknown.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't read config: ")
}
