package entity

import (
	"encoding/hex"
	"strconv"

	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// AccountID is the identifier of an account. The account is identified either
// by its number or by an alias when Alias is not empty.
type AccountID struct {
	Shard    uint64
	Realm    uint64
	Num      uint64
	Alias    []byte
	Checksum string
}

// ParseAccountID parses "shard.realm.num[-checksum]" or "shard.realm.alias"
// where the alias is written in hexadecimal.
func ParseAccountID(text string) (AccountID, error) {
	shard, realm, last, checksum, err := split(text)
	if err != nil {
		return AccountID{}, xerrors.Errorf("invalid account id: %v", err)
	}

	id := AccountID{Shard: shard, Realm: realm, Checksum: checksum}

	id.Num, err = strconv.ParseUint(last, 10, 64)
	if err == nil {
		return id, nil
	}

	if checksum != "" {
		return AccountID{}, xerrors.New("invalid account id: unexpected checksum for alias")
	}

	id.Alias, err = hex.DecodeString(last)
	if err != nil || len(id.Alias) == 0 {
		return AccountID{}, xerrors.Errorf("invalid account id: '%s' is neither a number nor an alias", last)
	}

	return id, nil
}

// String implements fmt.Stringer.
func (id AccountID) String() string {
	if len(id.Alias) > 0 {
		return strconv.FormatUint(id.Shard, 10) + "." + strconv.FormatUint(id.Realm, 10) +
			"." + hex.EncodeToString(id.Alias)
	}

	return withChecksum(address(id.Shard, id.Realm, id.Num), id.Checksum)
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum computed for the ledger. An alias has no checksum.
func (id AccountID) ToStringWithChecksum(l ledger.ID) string {
	if len(id.Alias) > 0 {
		return id.String()
	}

	addr := address(id.Shard, id.Realm, id.Num)

	return withChecksum(addr, l.Checksum(addr))
}

// ValidateChecksum returns nil if the identifier has no checksum, or if the
// checksum belongs to the ledger.
func (id AccountID) ValidateChecksum(l ledger.ID) error {
	if len(id.Alias) > 0 {
		return nil
	}

	return validate(l, id.Shard, id.Realm, id.Num, id.Checksum)
}

// MarshalText implements encoding.TextMarshaler.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id AccountID) ToProtobuf() *hapi.AccountID {
	pb := &hapi.AccountID{
		ShardNum: int64(id.Shard),
		RealmNum: int64(id.Realm),
	}

	if len(id.Alias) > 0 {
		pb.Account = &hapi.AccountID_Alias{Alias: id.Alias}
	} else {
		pb.Account = &hapi.AccountID_AccountNum{AccountNum: int64(id.Num)}
	}

	return pb
}

// AccountIDFromProtobuf returns the identifier of the wire message.
func AccountIDFromProtobuf(pb *hapi.AccountID) AccountID {
	if pb == nil {
		return AccountID{}
	}

	return AccountID{
		Shard: uint64(pb.ShardNum),
		Realm: uint64(pb.RealmNum),
		Num:   uint64(pb.GetAccountNum()),
		Alias: pb.GetAlias(),
	}
}
