package system

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/internal/testing/fake"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/transaction"
)

func init() {
	RegisterUndeleteFormat(fake.GoodFormat, fake.Format{Msg: NewUndelete()})
	RegisterUndeleteFormat(fake.BadFormat, fake.NewBadFormat())
}

func TestUndelete_MutualExclusion(t *testing.T) {
	u := NewUndelete()
	require.Nil(t, u.GetFileID())
	require.Nil(t, u.GetContractID())

	u.SetContractID(entity.ContractID{Num: 5})
	require.Equal(t, entity.ContractID{Num: 5}, *u.GetContractID())
	require.Nil(t, u.GetFileID())

	u.SetFileID(entity.FileID{Num: 9})
	require.Equal(t, entity.FileID{Num: 9}, *u.GetFileID())
	require.Nil(t, u.GetContractID())

	require.Equal(t, "0a021809", hex.EncodeToString(hapi.Marshal(u.ToProtobuf())))

	u.SetContractID(entity.ContractID{Num: 5})
	require.Nil(t, u.GetFileID())
	require.Equal(t, "12021805", hex.EncodeToString(hapi.Marshal(u.ToProtobuf())))
}

func TestUndelete_ToProtobuf(t *testing.T) {
	require.Empty(t, hapi.Marshal(NewUndelete().ToProtobuf()))

	// Both cannot be set through the setters but the contract has the
	// precedence on the wire.
	u := &Undelete{
		fileID:     &entity.FileID{Num: 9},
		contractID: &entity.ContractID{Num: 5},
	}
	require.Equal(t, "12021805", hex.EncodeToString(hapi.Marshal(u.ToProtobuf())))
}

func TestUndeleteFromProtobuf(t *testing.T) {
	u := NewUndelete().SetFileID(entity.FileID{Num: 9})
	require.Equal(t, u, UndeleteFromProtobuf(u.ToProtobuf()))

	u = NewUndelete().SetContractID(entity.ContractID{Shard: 1, Realm: 2, Num: 5})
	require.Equal(t, u, UndeleteFromProtobuf(u.ToProtobuf()))

	require.Equal(t, NewUndelete(), UndeleteFromProtobuf(nil))
	require.Equal(t, NewUndelete(), UndeleteFromProtobuf(&hapi.SystemUndeleteTransactionBody{}))
}

func TestUndelete_TransactionBody(t *testing.T) {
	tx := transaction.New(NewUndelete().SetFileID(entity.FileID{Num: 9})).
		SetTransactionID(transaction.ID{
			AccountID:  entity.AccountID{Num: 5},
			ValidStart: time.Unix(1656352251, 277559886),
		}).
		SetNodeAccountID(entity.AccountID{Num: 3}).
		SetTransactionMemo("memo")

	data, err := tx.BodyBytes()
	require.NoError(t, err)
	require.Equal(t, "0a120a0c08fbdbe7950610cef4ac84011202180512021803188084af5f"+
		"2202087832046d656d6faa01040a021809", hex.EncodeToString(data))

	decoded, err := transaction.FromBytes(data)
	require.NoError(t, err)
	require.Equal(t, NewUndelete().SetFileID(entity.FileID{Num: 9}), decoded.GetData())
}

func TestUndelete_ValidateChecksums(t *testing.T) {
	require.NoError(t, NewUndelete().ValidateChecksums(ledger.Mainnet))

	u := NewUndelete().SetFileID(entity.FileID{Num: 9, Checksum: "sgpgx"})
	require.NoError(t, u.ValidateChecksums(ledger.Mainnet))

	err := u.ValidateChecksums(ledger.Testnet)
	require.EqualError(t, err,
		"file id: checksum mismatch for 0.0.9: expected 'buaog' but got 'sgpgx'")

	var csErr *ledger.ChecksumError
	require.True(t, errors.As(err, &csErr))

	u = NewUndelete().SetContractID(entity.ContractID{Num: 5, Checksum: "ugljq"})
	require.NoError(t, u.ValidateChecksums(ledger.Testnet))

	err = u.ValidateChecksums(ledger.Mainnet)
	require.EqualError(t, err,
		"contract id: checksum mismatch for 0.0.5: expected 'ktach' but got 'ugljq'")
}

func TestUndelete_Execute(t *testing.T) {
	ctx := context.Background()

	conn := fake.NewClientConn(&hapi.TransactionResponse{})
	_, err := NewUndelete().SetFileID(entity.FileID{Num: 9}).Execute(ctx, conn, &hapi.Transaction{})
	require.NoError(t, err)
	require.Equal(t, hapi.FileService_SystemUndelete_FullMethodName, conn.Method(0))

	conn = fake.NewClientConn(&hapi.TransactionResponse{})
	_, err = NewUndelete().SetContractID(entity.ContractID{Num: 5}).Execute(ctx, conn, &hapi.Transaction{})
	require.NoError(t, err)
	require.Equal(t, hapi.SmartContractService_SystemUndelete_FullMethodName, conn.Method(0))

	_, err = NewUndelete().Execute(ctx, fake.NewBadClientConn(), &hapi.Transaction{})
	require.Equal(t, fake.GetError(), err)
}

// An undelete without any target is routed to the contract service. The node
// rejects it, but the choice of the service must stay deterministic.
func TestUndelete_Execute_DefaultsToContractService(t *testing.T) {
	conn := fake.NewClientConn(&hapi.TransactionResponse{
		NodeTransactionPrecheckCode: hapi.ResponseCode_NOT_SUPPORTED,
	})

	resp, err := NewUndelete().Execute(context.Background(), conn, &hapi.Transaction{})
	require.NoError(t, err)
	require.Equal(t, hapi.ResponseCode_NOT_SUPPORTED, resp.NodeTransactionPrecheckCode)
	require.Equal(t, 1, conn.Calls.Len())
	require.Equal(t, hapi.SmartContractService_SystemUndelete_FullMethodName, conn.Method(0))
}

func TestUndelete_Serialize(t *testing.T) {
	data, err := NewUndelete().Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = NewUndelete().Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("couldn't encode system undelete"))

	msg, err := NewUndeleteFactory().Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, NewUndelete(), msg)

	_, err = NewUndeleteFactory().Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("couldn't decode system undelete"))
}
