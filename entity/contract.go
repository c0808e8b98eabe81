package entity

import (
	"encoding/hex"
	"strconv"

	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"golang.org/x/xerrors"
)

const evmAddressLength = 20

// ContractID is the identifier of a smart contract. The contract is identified
// either by its number or by its EVM address when EvmAddress is not empty.
type ContractID struct {
	Shard      uint64
	Realm      uint64
	Num        uint64
	EvmAddress []byte
	Checksum   string
}

// ParseContractID parses "shard.realm.num[-checksum]" or
// "shard.realm.<40 hexadecimal digits>".
func ParseContractID(text string) (ContractID, error) {
	shard, realm, last, checksum, err := split(text)
	if err != nil {
		return ContractID{}, xerrors.Errorf("invalid contract id: %v", err)
	}

	id := ContractID{Shard: shard, Realm: realm, Checksum: checksum}

	id.Num, err = strconv.ParseUint(last, 10, 64)
	if err == nil {
		return id, nil
	}

	if checksum != "" {
		return ContractID{}, xerrors.New("invalid contract id: unexpected checksum for EVM address")
	}

	id.EvmAddress, err = hex.DecodeString(last)
	if err != nil || len(id.EvmAddress) != evmAddressLength {
		return ContractID{}, xerrors.Errorf("invalid contract id: '%s' is neither a number nor an EVM address", last)
	}

	return id, nil
}

// String implements fmt.Stringer.
func (id ContractID) String() string {
	if len(id.EvmAddress) > 0 {
		return strconv.FormatUint(id.Shard, 10) + "." + strconv.FormatUint(id.Realm, 10) +
			"." + hex.EncodeToString(id.EvmAddress)
	}

	return withChecksum(address(id.Shard, id.Realm, id.Num), id.Checksum)
}

// ToStringWithChecksum returns the textual form of the identifier with the
// checksum computed for the ledger. An EVM address has no checksum.
func (id ContractID) ToStringWithChecksum(l ledger.ID) string {
	if len(id.EvmAddress) > 0 {
		return id.String()
	}

	addr := address(id.Shard, id.Realm, id.Num)

	return withChecksum(addr, l.Checksum(addr))
}

// ValidateChecksum returns nil if the identifier has no checksum, or if the
// checksum belongs to the ledger.
func (id ContractID) ValidateChecksum(l ledger.ID) error {
	if len(id.EvmAddress) > 0 {
		return nil
	}

	return validate(l, id.Shard, id.Realm, id.Num, id.Checksum)
}

// MarshalText implements encoding.TextMarshaler.
func (id ContractID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ContractID) UnmarshalText(text []byte) error {
	parsed, err := ParseContractID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// ToProtobuf returns the wire message of the identifier.
func (id ContractID) ToProtobuf() *hapi.ContractID {
	pb := &hapi.ContractID{
		ShardNum: int64(id.Shard),
		RealmNum: int64(id.Realm),
	}

	if len(id.EvmAddress) > 0 {
		pb.Contract = &hapi.ContractID_EvmAddress{EvmAddress: id.EvmAddress}
	} else {
		pb.Contract = &hapi.ContractID_ContractNum{ContractNum: int64(id.Num)}
	}

	return pb
}

// ContractIDFromProtobuf returns the identifier of the wire message.
func ContractIDFromProtobuf(pb *hapi.ContractID) ContractID {
	if pb == nil {
		return ContractID{}
	}

	return ContractID{
		Shard:      uint64(pb.ShardNum),
		Realm:      uint64(pb.RealmNum),
		Num:        uint64(pb.GetContractNum()),
		EvmAddress: pb.GetEvmAddress(),
	}
}
