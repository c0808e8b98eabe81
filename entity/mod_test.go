package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
)

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("0.0.123")
	require.NoError(t, err)
	require.Equal(t, AccountID{Num: 123}, id)
	require.Equal(t, "0.0.123", id.String())

	id, err = ParseAccountID("1.2.123-vfmkw")
	require.NoError(t, err)
	require.Equal(t, AccountID{Shard: 1, Realm: 2, Num: 123, Checksum: "vfmkw"}, id)
	require.Equal(t, "1.2.123-vfmkw", id.String())

	id, err = ParseAccountID("0.0.0a0b0c")
	require.NoError(t, err)
	require.Equal(t, []byte{0x0a, 0x0b, 0x0c}, id.Alias)
	require.Equal(t, "0.0.0a0b0c", id.String())

	_, err = ParseAccountID("0.0")
	require.EqualError(t, err,
		"invalid account id: expected <shard>.<realm>.<num> but got '0.0'")

	_, err = ParseAccountID("a.0.1")
	require.EqualError(t, err,
		"invalid account id: invalid shard: strconv.ParseUint: parsing \"a\": invalid syntax")

	_, err = ParseAccountID("0.b.1")
	require.EqualError(t, err,
		"invalid account id: invalid realm: strconv.ParseUint: parsing \"b\": invalid syntax")

	_, err = ParseAccountID("0.0.1-abc")
	require.EqualError(t, err, "invalid account id: invalid checksum 'abc'")

	_, err = ParseAccountID("0.0.0a0b-vfmkw")
	require.EqualError(t, err, "invalid account id: unexpected checksum for alias")

	_, err = ParseAccountID("0.0.xyz")
	require.EqualError(t, err, "invalid account id: 'xyz' is neither a number nor an alias")
}

func TestAccountID_ValidateChecksum(t *testing.T) {
	id := AccountID{Num: 123}
	require.NoError(t, id.ValidateChecksum(ledger.Mainnet))

	id.Checksum = "esxsf"
	require.NoError(t, id.ValidateChecksum(ledger.Testnet))

	err := id.ValidateChecksum(ledger.Mainnet)
	require.EqualError(t, err, "checksum mismatch for 0.0.123: expected 'vfmkw' but got 'esxsf'")

	id = AccountID{Alias: []byte{1}}
	require.NoError(t, id.ValidateChecksum(ledger.Mainnet))
}

func TestAccountID_ToStringWithChecksum(t *testing.T) {
	id := AccountID{Num: 123, Checksum: "aaaaa"}
	require.Equal(t, "0.0.123-vfmkw", id.ToStringWithChecksum(ledger.Mainnet))
	require.Equal(t, "0.0.123-esxsf", id.ToStringWithChecksum(ledger.Testnet))

	id = AccountID{Alias: []byte{0xaa}}
	require.Equal(t, "0.0.aa", id.ToStringWithChecksum(ledger.Mainnet))
}

func TestAccountID_Protobuf(t *testing.T) {
	id := AccountID{Shard: 1, Realm: 2, Num: 3}

	pb := id.ToProtobuf()
	require.Equal(t, &hapi.AccountID{
		ShardNum: 1,
		RealmNum: 2,
		Account:  &hapi.AccountID_AccountNum{AccountNum: 3},
	}, pb)
	require.Equal(t, id, AccountIDFromProtobuf(pb))

	id = AccountID{Alias: []byte{1, 2}}
	require.Equal(t, id, AccountIDFromProtobuf(id.ToProtobuf()))

	require.Equal(t, AccountID{}, AccountIDFromProtobuf(nil))
}

func TestAccountID_Text(t *testing.T) {
	data, err := json.Marshal(struct {
		ID *AccountID `json:"id,omitempty"`
	}{ID: &AccountID{Num: 1001, Checksum: "eevit"}})
	require.NoError(t, err)
	require.Equal(t, `{"id":"0.0.1001-eevit"}`, string(data))

	var m struct {
		ID *AccountID `json:"id"`
	}

	err = json.Unmarshal(data, &m)
	require.NoError(t, err)
	require.Equal(t, &AccountID{Num: 1001, Checksum: "eevit"}, m.ID)

	err = json.Unmarshal([]byte(`{"id":"abc"}`), &m)
	require.EqualError(t, err,
		"invalid account id: expected <shard>.<realm>.<num> but got 'abc'")
}

func TestParseContractID(t *testing.T) {
	id, err := ParseContractID("0.0.1001-urkbk")
	require.NoError(t, err)
	require.Equal(t, ContractID{Num: 1001, Checksum: "urkbk"}, id)
	require.NoError(t, id.ValidateChecksum(ledger.Mainnet))
	require.Error(t, id.ValidateChecksum(ledger.Testnet))

	evm := "0.0.742d35cc6634c0532925a3b844bc454e4438f44e"

	id, err = ParseContractID(evm)
	require.NoError(t, err)
	require.Len(t, id.EvmAddress, 20)
	require.Equal(t, evm, id.String())
	require.Equal(t, evm, id.ToStringWithChecksum(ledger.Mainnet))
	require.NoError(t, id.ValidateChecksum(ledger.Mainnet))
	require.Equal(t, id, ContractIDFromProtobuf(id.ToProtobuf()))

	_, err = ParseContractID("0.0.0a0b")
	require.EqualError(t, err,
		"invalid contract id: '0a0b' is neither a number nor an EVM address")

	_, err = ParseContractID("0.0.742d35cc6634c0532925a3b844bc454e4438f44e-aaaaa")
	require.EqualError(t, err, "invalid contract id: unexpected checksum for EVM address")

	_, err = ParseContractID("0.1")
	require.Error(t, err)
}

func TestContractID_Protobuf(t *testing.T) {
	id := ContractID{Num: 5}

	require.Equal(t, &hapi.ContractID{
		Contract: &hapi.ContractID_ContractNum{ContractNum: 5},
	}, id.ToProtobuf())
	require.Equal(t, id, ContractIDFromProtobuf(id.ToProtobuf()))
	require.Equal(t, ContractID{}, ContractIDFromProtobuf(nil))
	require.Equal(t, "0.0.5-ktach", id.ToStringWithChecksum(ledger.Mainnet))
}

func TestFileID(t *testing.T) {
	id, err := ParseFileID("0.0.9-buaog")
	require.NoError(t, err)
	require.Equal(t, FileID{Num: 9, Checksum: "buaog"}, id)
	require.NoError(t, id.ValidateChecksum(ledger.Testnet))
	require.Equal(t, "0.0.9-sgpgx", id.ToStringWithChecksum(ledger.Mainnet))
	require.Equal(t, &hapi.FileID{FileNum: 9}, id.ToProtobuf())
	require.Equal(t, FileID{Num: 9}, FileIDFromProtobuf(id.ToProtobuf()))
	require.Equal(t, FileID{}, FileIDFromProtobuf(nil))

	var parsed FileID
	require.NoError(t, parsed.UnmarshalText([]byte("1.2.3")))
	require.Equal(t, FileID{Shard: 1, Realm: 2, Num: 3}, parsed)

	_, err = ParseFileID("0.0.abc")
	require.EqualError(t, err,
		"invalid file id: invalid num: strconv.ParseUint: parsing \"abc\": invalid syntax")
}

func TestTokenID(t *testing.T) {
	id, err := ParseTokenID("0.0.123")
	require.NoError(t, err)
	require.Equal(t, &hapi.TokenID{TokenNum: 123}, id.ToProtobuf())
	require.Equal(t, id, TokenIDFromProtobuf(id.ToProtobuf()))
	require.Equal(t, "0.0.123-ogizo", id.ToStringWithChecksum(ledger.Previewnet))

	text, err := id.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "0.0.123", string(text))

	_, err = ParseTokenID("")
	require.Error(t, err)
}

func TestTopicID(t *testing.T) {
	id, err := ParseTopicID("0.0.5-ugljq")
	require.NoError(t, err)
	require.NoError(t, id.ValidateChecksum(ledger.Testnet))
	require.Error(t, id.ValidateChecksum(ledger.Previewnet))
	require.Equal(t, &hapi.TopicID{TopicNum: 5}, id.ToProtobuf())
	require.Equal(t, TopicID{Num: 5}, TopicIDFromProtobuf(id.ToProtobuf()))

	var parsed TopicID
	require.Error(t, parsed.UnmarshalText([]byte("5")))
}

func TestParseNftID(t *testing.T) {
	expected := NftID{TokenID: TokenID{Num: 123}, Serial: 7}

	id, err := ParseNftID("0.0.123/7")
	require.NoError(t, err)
	require.Equal(t, expected, id)

	id, err = ParseNftID("7@0.0.123")
	require.NoError(t, err)
	require.Equal(t, expected, id)
	require.Equal(t, "0.0.123/7", id.String())
	require.Equal(t, "0.0.123-vfmkw/7", id.ToStringWithChecksum(ledger.Mainnet))

	id, err = ParseNftID("0.0.123-esxsf/7")
	require.NoError(t, err)
	require.NoError(t, id.ValidateChecksum(ledger.Testnet))
	require.Error(t, id.ValidateChecksum(ledger.Mainnet))

	_, err = ParseNftID("0.0.123")
	require.EqualError(t, err,
		"invalid nft id: expected <token>/<serial> or <serial>@<token> but got '0.0.123'")

	_, err = ParseNftID("0.0.123/x")
	require.EqualError(t, err,
		"invalid nft id: invalid serial: strconv.ParseUint: parsing \"x\": invalid syntax")

	_, err = ParseNftID("0.0/1")
	require.EqualError(t, err,
		"invalid nft id: invalid token id: expected <shard>.<realm>.<num> but got '0.0'")
}

func TestNftID_Protobuf(t *testing.T) {
	id := NftID{TokenID: TokenID{Num: 123}, Serial: 7}

	require.Equal(t, &hapi.NftID{TokenID: &hapi.TokenID{TokenNum: 123}, SerialNumber: 7},
		id.ToProtobuf())
	require.Equal(t, id, NftIDFromProtobuf(id.ToProtobuf()))
	require.Equal(t, NftID{}, NftIDFromProtobuf(nil))

	var parsed NftID
	require.NoError(t, parsed.UnmarshalText([]byte("0.0.123/7")))
	require.Equal(t, id, parsed)
}
