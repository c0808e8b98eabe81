package transaction

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
)

func TestNewID(t *testing.T) {
	before := time.Now()

	id := NewID(entity.AccountID{Num: 5})
	require.Equal(t, entity.AccountID{Num: 5}, id.AccountID)
	require.Equal(t, time.UTC, id.ValidStart.Location())
	require.True(t, id.ValidStart.Before(before))
	require.False(t, id.Scheduled)
	require.Equal(t, int32(0), id.Nonce)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("0.0.5@1656352251.277559886")
	require.NoError(t, err)
	require.Equal(t, makeID(), id)

	id, err = ParseID("0.0.5@1656352251.000000001?scheduled/3")
	require.NoError(t, err)
	require.Equal(t, uint64(5), id.AccountID.Num)
	require.Equal(t, 1, id.ValidStart.Nanosecond())
	require.True(t, id.Scheduled)
	require.Equal(t, int32(3), id.Nonce)

	id, err = ParseID("0.0.5-ktach@1.2")
	require.NoError(t, err)
	require.Equal(t, "ktach", id.AccountID.Checksum)

	_, err = ParseID("0.0.5")
	require.EqualError(t, err, "invalid transaction id: expected "+
		"<account>@<seconds>.<nanos> but got '0.0.5'")

	_, err = ParseID("a@1.2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid transaction id: invalid account id: ")

	_, err = ParseID("0.0.5@1.2/x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid transaction id: invalid nonce: ")

	_, err = ParseID("0.0.5@12")
	require.EqualError(t, err, "invalid transaction id: expected "+
		"<seconds>.<nanos> but got '12'")

	_, err = ParseID("0.0.5@x.2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid transaction id: invalid seconds: ")

	_, err = ParseID("0.0.5@1.x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid transaction id: invalid nanos: ")
}

func TestID_String(t *testing.T) {
	id := makeID()
	require.Equal(t, "0.0.5@1656352251.277559886", id.String())
	require.Equal(t, "0.0.5-ktach@1656352251.277559886", id.ToStringWithChecksum(ledger.Mainnet))
	require.Equal(t, "0.0.5-ugljq@1656352251.277559886", id.ToStringWithChecksum(ledger.Testnet))

	id.ValidStart = time.Unix(1, 5)
	id.Scheduled = true
	id.Nonce = 2
	require.Equal(t, "0.0.5@1.000000005?scheduled/2", id.String())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	require.Equal(t, id.String(), parsed.String())
}

func TestID_ValidateChecksum(t *testing.T) {
	require.NoError(t, makeID().ValidateChecksum(ledger.Testnet))

	id := ID{AccountID: entity.AccountID{Num: 5, Checksum: "ugljq"}}
	require.NoError(t, id.ValidateChecksum(ledger.Testnet))
	require.Error(t, id.ValidateChecksum(ledger.Mainnet))
}

func TestID_MarshalText(t *testing.T) {
	data, err := json.Marshal(makeID())
	require.NoError(t, err)
	require.Equal(t, `"0.0.5@1656352251.277559886"`, string(data))

	var id ID
	require.NoError(t, json.Unmarshal(data, &id))
	require.Equal(t, makeID(), id)

	err = json.Unmarshal([]byte(`"abc"`), &id)
	require.Error(t, err)
}

func TestID_ToProtobuf(t *testing.T) {
	pb := makeID().ToProtobuf()
	require.Equal(t, int64(1656352251), pb.TransactionValidStart.Seconds)
	require.Equal(t, int32(277559886), pb.TransactionValidStart.Nanos)
	require.Equal(t, makeID(), IDFromProtobuf(pb))

	require.Equal(t, ID{}, IDFromProtobuf(nil))

	id := IDFromProtobuf(&hapi.TransactionID{Scheduled: true, Nonce: 4})
	require.True(t, id.Scheduled)
	require.Equal(t, int32(4), id.Nonce)
}
