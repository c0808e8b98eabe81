package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/internal/testing/fake"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"google.golang.org/grpc"
)

func TestQuery_ToProtobuf(t *testing.T) {
	payment := &hapi.Transaction{SignedTransactionBytes: []byte{1}}

	q := New(fakeData{}).
		SetPayment(payment).
		SetResponseType(hapi.ResponseType_COST_ANSWER)

	require.Equal(t, payment, q.GetPayment())
	require.Equal(t, hapi.ResponseType_COST_ANSWER, q.GetResponseType())
	require.Equal(t, fakeData{}, q.GetData())

	pb := q.ToProtobuf()
	header := pb.Query.(*hapi.Query_TokenGetNftInfo).TokenGetNftInfo.Header
	require.Equal(t, payment, header.Payment)
	require.Equal(t, hapi.ResponseType_COST_ANSWER, header.ResponseType)

	q = New(fakeData{})
	require.Nil(t, q.GetPayment())
	require.Equal(t, hapi.ResponseType_ANSWER_ONLY, q.GetResponseType())
}

func TestQuery_ValidateChecksums(t *testing.T) {
	require.NoError(t, New(fakeData{}).ValidateChecksums(ledger.Mainnet))

	err := New(fakeData{err: fake.GetError()}).ValidateChecksums(ledger.Mainnet)
	require.Equal(t, fake.GetError(), err)
}

func TestQuery_Execute(t *testing.T) {
	reply := nftResponse(hapi.ResponseCode_OK)
	conn := fake.NewClientConn(reply)

	resp, err := New(fakeData{}).Execute(context.Background(), conn)
	require.NoError(t, err)
	require.Equal(t, hapi.Marshal(reply), hapi.Marshal(resp))
	require.Equal(t, 1, conn.Calls.Len())
	require.Equal(t, hapi.TokenService_GetTokenNftInfo_FullMethodName, conn.Method(0))

	conn = fake.NewClientConn(nftResponse(hapi.ResponseCode_BUSY))

	resp, err = New(fakeData{}).Execute(context.Background(), conn)
	require.NoError(t, err)
	require.Equal(t, hapi.ResponseCode_BUSY, HeaderOf(resp).NodeTransactionPrecheckCode)

	_, err = New(fakeData{}).Execute(context.Background(), fake.NewBadClientConn())
	require.Equal(t, fake.GetError(), err)
}

func TestHeaderOf(t *testing.T) {
	require.Equal(t, &hapi.ResponseHeader{}, HeaderOf(nil))
	require.Equal(t, &hapi.ResponseHeader{}, HeaderOf(&hapi.Response{}))

	resp := nftResponse(hapi.ResponseCode_BUSY)
	require.Equal(t, hapi.ResponseCode_BUSY, HeaderOf(resp).NodeTransactionPrecheckCode)
}

func TestCheckPrecheck(t *testing.T) {
	require.NoError(t, CheckPrecheck(nftResponse(hapi.ResponseCode_OK)))

	err := CheckPrecheck(nftResponse(hapi.ResponseCode_INVALID_NODE_ACCOUNT))
	require.EqualError(t, err, "query failed precheck with status INVALID_NODE_ACCOUNT")

	var precheck *PrecheckError
	require.True(t, errors.As(err, &precheck))
	require.Equal(t, hapi.ResponseCode_INVALID_NODE_ACCOUNT, precheck.Status)
}

// -----------------------------------------------------------------------------
// Utility functions

func nftResponse(status hapi.ResponseCode) *hapi.Response {
	return &hapi.Response{
		Response: &hapi.Response_TokenGetNftInfo{
			TokenGetNftInfo: &hapi.TokenGetNftInfoResponse{
				Header: &hapi.ResponseHeader{NodeTransactionPrecheckCode: status},
			},
		},
	}
}

type fakeData struct {
	err error
}

func (d fakeData) Serialize(serde.Context) ([]byte, error) {
	return nil, nil
}

func (d fakeData) ToQueryProtobuf(header *hapi.QueryHeader) *hapi.Query {
	return &hapi.Query{
		Query: &hapi.Query_TokenGetNftInfo{
			TokenGetNftInfo: &hapi.TokenGetNftInfoQuery{Header: header},
		},
	}
}

func (d fakeData) ValidateChecksums(ledger.ID) error {
	return d.err
}

func (d fakeData) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	q *hapi.Query) (*hapi.Response, error) {

	return hapi.NewTokenServiceClient(conn).GetTokenNftInfo(ctx, q)
}
