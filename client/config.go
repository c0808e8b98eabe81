package client

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultTimeout is the maximum duration of a call when the configuration
	// does not set one.
	DefaultTimeout = 10 * time.Second

	// KeyTypeEd25519 is the key type of an Ed25519 operator key.
	KeyTypeEd25519 = "ed25519"
	// KeyTypeSecp256k1 is the key type of an ECDSA secp256k1 operator key.
	KeyTypeSecp256k1 = "secp256k1"
)

// Config is the configuration of a client. It is read from a YAML file and
// the environment variables override the values of the file.
type Config struct {
	// Network is the name of the ledger, or its identifier in hexadecimal.
	Network string `yaml:"network" env:"HEDERA_NETWORK" validate:"required"`

	// Nodes maps the account of each node to its address.
	Nodes map[string]string `yaml:"nodes" validate:"min=1,dive,keys,required,endkeys,required"`

	// Mirror is the address of the mirror node.
	Mirror string `yaml:"mirror" env:"HEDERA_MIRROR"`

	// Operator is the account that pays for the transactions.
	Operator string `yaml:"operator" env:"HEDERA_OPERATOR"`

	// OperatorKey is the path to the file holding the private key of the
	// operator in hexadecimal.
	OperatorKey string `yaml:"operatorKey" env:"HEDERA_OPERATOR_KEY"`

	OperatorKeyType string `yaml:"operatorKeyType" env:"HEDERA_OPERATOR_KEY_TYPE" validate:"oneof=ed25519 secp256k1"`

	ValidateChecksums bool `yaml:"validateChecksums" env:"HEDERA_VALIDATE_CHECKSUMS"`

	Timeout time.Duration `yaml:"timeout" env:"HEDERA_TIMEOUT" validate:"gt=0"`

	// Journal is the path to the database that records the responses. No
	// journal is kept when it is empty.
	Journal string `yaml:"journal" env:"HEDERA_JOURNAL"`

	MaxMessageSize int `yaml:"maxMessageSize" validate:"gte=0"`
}

// DefaultConfig returns the configuration with the default values.
func DefaultConfig() Config {
	return Config{
		OperatorKeyType:   KeyTypeEd25519,
		ValidateChecksums: true,
		Timeout:           DefaultTimeout,
	}
}

// LoadConfig reads the configuration of the file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, xerrors.Errorf("couldn't read config: %v", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses the YAML configuration, applies the environment
// variables and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("couldn't unmarshal config: %v", err)
	}

	err = env.Parse(&cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("couldn't parse env: %v", err)
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("invalid config: %v", err)
	}

	return cfg, nil
}
