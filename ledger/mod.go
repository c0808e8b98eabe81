// Package ledger defines the identifier of a ledger and the validation of the
// checksums of the addresses that belong to it.
//
// A checksum is the five letters appended to the textual form of an address,
// as in "0.0.123-vfmkw". It binds the address to the ledger it was issued for,
// so that an address of a test network is not mistakenly used on the main
// network. The algorithm is the one of HIP-15.
package ledger

import (
	"encoding/hex"
	"strings"

	"golang.org/x/xerrors"
)

// ID is the identifier of a ledger.
type ID []byte

var (
	// Mainnet is the identifier of the main network.
	Mainnet = ID{0x00}
	// Testnet is the identifier of the test network.
	Testnet = ID{0x01}
	// Previewnet is the identifier of the preview network.
	Previewnet = ID{0x02}
)

var names = map[string]ID{
	"mainnet":    Mainnet,
	"testnet":    Testnet,
	"previewnet": Previewnet,
}

// ParseID returns the identifier of a ledger from either its name or its
// hexadecimal representation.
func ParseID(text string) (ID, error) {
	id, ok := names[strings.ToLower(text)]
	if ok {
		return append(ID(nil), id...), nil
	}

	data, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
	if err != nil {
		return nil, xerrors.Errorf("invalid ledger id '%s': %v", text, err)
	}

	if len(data) == 0 {
		return nil, xerrors.New("empty ledger id")
	}

	return ID(data), nil
}

// IsMainnet returns true if the identifier is the one of the main network.
func (id ID) IsMainnet() bool {
	return id.Equal(Mainnet)
}

// IsTestnet returns true if the identifier is the one of the test network.
func (id ID) IsTestnet() bool {
	return id.Equal(Testnet)
}

// IsPreviewnet returns true if the identifier is the one of the preview
// network.
func (id ID) IsPreviewnet() bool {
	return id.Equal(Previewnet)
}

// Equal returns true if both identifiers are the same.
func (id ID) Equal(other ID) bool {
	return string(id) == string(other)
}

// String implements fmt.Stringer. It returns the name of a known ledger, or
// the hexadecimal representation of the identifier otherwise.
func (id ID) String() string {
	for name, known := range names {
		if id.Equal(known) {
			return name
		}
	}

	return hex.EncodeToString(id)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}
