package entity

import (
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// TokenID is the identifier of a token.
type TokenID struct {
	Shard    uint64
	Realm    uint64
	Num      uint64
	Checksum string
}

// ParseTokenID parses "shard.realm.num[-checksum]".
func ParseTokenID(text string) (TokenID, error) {
	shard, realm, num, checksum, err := parseNum(text)
	if err != nil {
		return TokenID{}, xerrors.Errorf("invalid token id: %v", err)
	}

	return TokenID{Shard: shard, Realm: realm, Num: num, Checksum: checksum}, nil
}

// String implements fmt.Stringer.
func (id TokenID) String() string {
	return withChecksum(address(id.Shard, id.Realm, id.Num), id.Checksum)
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum computed for the ledger.
func (id TokenID) ToStringWithChecksum(l ledger.ID) string {
	addr := address(id.Shard, id.Realm, id.Num)

	return withChecksum(addr, l.Checksum(addr))
}

// ValidateChecksum returns nil if the identifier has no checksum, or if the
// checksum belongs to the ledger.
func (id TokenID) ValidateChecksum(l ledger.ID) error {
	return validate(l, id.Shard, id.Realm, id.Num, id.Checksum)
}

// MarshalText implements encoding.TextMarshaler.
func (id TokenID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TokenID) UnmarshalText(text []byte) error {
	parsed, err := ParseTokenID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id TokenID) ToProtobuf() *hapi.TokenID {
	return &hapi.TokenID{
		ShardNum: int64(id.Shard),
		RealmNum: int64(id.Realm),
		TokenNum: int64(id.Num),
	}
}

// TokenIDFromProtobuf returns the identifier of the wire message.
func TokenIDFromProtobuf(pb *hapi.TokenID) TokenID {
	if pb == nil {
		return TokenID{}
	}

	return TokenID{
		Shard: uint64(pb.ShardNum),
		Realm: uint64(pb.RealmNum),
		Num:   uint64(pb.TokenNum),
	}
}
