package entity

import (
	"strconv"
	"strings"

	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// NftID is the identifier of a non-fungible token: the token it belongs to and
// its serial number.
type NftID struct {
	TokenID TokenID
	Serial  uint64
}

// ParseNftID parses either "token/serial" or "serial@token".
func ParseNftID(text string) (NftID, error) {
	var token, serial string

	if index := strings.LastIndexByte(text, '/'); index >= 0 {
		token, serial = text[:index], text[index+1:]
	} else if index := strings.IndexByte(text, '@'); index >= 0 {
		serial, token = text[:index], text[index+1:]
	} else {
		return NftID{}, xerrors.Errorf("invalid nft id: expected <token>/<serial> or "+
			"<serial>@<token> but got '%s'", text)
	}

	num, err := strconv.ParseUint(serial, 10, 64)
	if err != nil {
		return NftID{}, xerrors.Errorf("invalid nft id: invalid serial: %v", err)
	}

	tokenID, err := ParseTokenID(token)
	if err != nil {
		return NftID{}, xerrors.Errorf("invalid nft id: %v", err)
	}

	return NftID{TokenID: tokenID, Serial: num}, nil
}

// String implements fmt.Stringer. It returns the "token/serial" form.
func (id NftID) String() string {
	return id.TokenID.String() + "/" + strconv.FormatUint(id.Serial, 10)
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum of the token computed for the ledger.
func (id NftID) ToStringWithChecksum(l ledger.ID) string {
	return id.TokenID.ToStringWithChecksum(l) + "/" + strconv.FormatUint(id.Serial, 10)
}

// ValidateChecksum validates the checksum of the token.
func (id NftID) ValidateChecksum(l ledger.ID) error {
	return id.TokenID.ValidateChecksum(l)
}

// MarshalText implements encoding.TextMarshaler.
func (id NftID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NftID) UnmarshalText(text []byte) error {
	parsed, err := ParseNftID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id NftID) ToProtobuf() *hapi.NftID {
	return &hapi.NftID{
		TokenID:      id.TokenID.ToProtobuf(),
		SerialNumber: int64(id.Serial),
	}
}

// NftIDFromProtobuf returns the identifier of the wire message.
func NftIDFromProtobuf(pb *hapi.NftID) NftID {
	if pb == nil {
		return NftID{}
	}

	return NftID{
		TokenID: TokenIDFromProtobuf(pb.TokenID),
		Serial:  uint64(pb.SerialNumber),
	}
}
