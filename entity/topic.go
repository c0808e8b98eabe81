package entity

import (
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

// TopicID is the identifier of a consensus topic.
type TopicID struct {
	Shard    uint64
	Realm    uint64
	Num      uint64
	Checksum string
}

// ParseTopicID parses "shard.realm.num[-checksum]".
func ParseTopicID(text string) (TopicID, error) {
	shard, realm, num, checksum, err := parseNum(text)
	if err != nil {
		return TopicID{}, xerrors.Errorf("invalid topic id: %v", err)
	}

	return TopicID{Shard: shard, Realm: realm, Num: num, Checksum: checksum}, nil
}

// String implements fmt.Stringer.
func (id TopicID) String() string {
	return withChecksum(address(id.Shard, id.Realm, id.Num), id.Checksum)
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum computed for the ledger.
func (id TopicID) ToStringWithChecksum(l ledger.ID) string {
	addr := address(id.Shard, id.Realm, id.Num)

	return withChecksum(addr, l.Checksum(addr))
}

// ValidateChecksum returns nil if the identifier has no checksum, or if the
// checksum belongs to the ledger.
func (id TopicID) ValidateChecksum(l ledger.ID) error {
	return validate(l, id.Shard, id.Realm, id.Num, id.Checksum)
}

// MarshalText implements encoding.TextMarshaler.
func (id TopicID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TopicID) UnmarshalText(text []byte) error {
	parsed, err := ParseTopicID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id TopicID) ToProtobuf() *hapi.TopicID {
	return &hapi.TopicID{
		ShardNum: int64(id.Shard),
		RealmNum: int64(id.Realm),
		TopicNum: int64(id.Num),
	}
}

// TopicIDFromProtobuf returns the identifier of the wire message.
func TopicIDFromProtobuf(pb *hapi.TopicID) TopicID {
	if pb == nil {
		return TopicID{}
	}

	return TopicID{
		Shard: uint64(pb.ShardNum),
		Realm: uint64(pb.RealmNum),
		Num:   uint64(pb.TopicNum),
	}
}
