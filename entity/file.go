package entity

import (
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// FileID is the identifier of a file.
type FileID struct {
	Shard    uint64
	Realm    uint64
	Num      uint64
	Checksum string
}

// ParseFileID parses "shard.realm.num[-checksum]".
func ParseFileID(text string) (FileID, error) {
	shard, realm, num, checksum, err := parseNum(text)
	if err != nil {
		return FileID{}, xerrors.Errorf("invalid file id: %v", err)
	}

	return FileID{Shard: shard, Realm: realm, Num: num, Checksum: checksum}, nil
}

// String implements fmt.Stringer.
func (id FileID) String() string {
	return withChecksum(address(id.Shard, id.Realm, id.Num), id.Checksum)
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum computed for the ledger.
func (id FileID) ToStringWithChecksum(l ledger.ID) string {
	addr := address(id.Shard, id.Realm, id.Num)

	return withChecksum(addr, l.Checksum(addr))
}

// ValidateChecksum returns nil if the identifier has no checksum, or if the
// checksum belongs to the ledger.
func (id FileID) ValidateChecksum(l ledger.ID) error {
	return validate(l, id.Shard, id.Realm, id.Num, id.Checksum)
}

// MarshalText implements encoding.TextMarshaler.
func (id FileID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *FileID) UnmarshalText(text []byte) error {
	parsed, err := ParseFileID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id FileID) ToProtobuf() *hapi.FileID {
	return &hapi.FileID{
		ShardNum: int64(id.Shard),
		RealmNum: int64(id.Realm),
		FileNum:  int64(id.Num),
	}
}

// FileIDFromProtobuf returns the identifier of the wire message.
func FileIDFromProtobuf(pb *hapi.FileID) FileID {
	if pb == nil {
		return FileID{}
	}

	return FileID{
		Shard: uint64(pb.ShardNum),
		Realm: uint64(pb.RealmNum),
		Num:   uint64(pb.FileNum),
	}
}
