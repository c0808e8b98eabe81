package client

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/crypto/ed25519"
	"go.dedis.ch/hedera/crypto/secp256k1"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/internal/testing/fake"
	"go.dedis.ch/hedera/internal/tracing"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/query"
	"go.dedis.ch/hedera/system"
	"go.dedis.ch/hedera/topic"
	"go.dedis.ch/hedera/transaction"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func init() {
	getTracer = fake.GetTracerNoop
}

func TestClient_New(t *testing.T) {
	cfg := makeConfig()
	cfg.Nodes["0.0.4"] = "127.0.0.1:50212"
	cfg.Mirror = "127.0.0.1:5600"
	cfg.MaxMessageSize = 1 << 20

	c, err := New(cfg)
	require.NoError(t, err)
	require.True(t, c.GetLedgerID().IsTestnet())
	require.Equal(t, entity.AccountID{Num: 1001}, *c.GetOperator())
	require.Equal(t, []entity.AccountID{{Num: 3}, {Num: 4}}, c.GetNodes())
	require.NotNil(t, c.mirror)
	require.Len(t, c.closers, 3)
	require.Nil(t, c.GetJournal())
	require.NoError(t, c.Close())
	require.Empty(t, c.closers)

	cfg.Journal = filepath.Join(t.TempDir(), "journal.db")

	c, err = New(cfg)
	require.NoError(t, err)
	require.NotNil(t, c.GetJournal())
	require.NoError(t, c.Close())
}

func TestClient_NewOperatorKey(t *testing.T) {
	dir := t.TempDir()

	edKey, err := ed25519.NewSigner().MarshalBinary()
	require.NoError(t, err)

	cfg := makeConfig()
	cfg.OperatorKey = writeKey(t, dir, "ed25519.key", edKey)

	c, err := New(cfg, WithNodeConn("0.0.3", fake.NewClientConn(nil)))
	require.NoError(t, err)
	require.Len(t, c.signers, 1)
	require.IsType(t, ed25519.Signer{}, c.signers[0])

	secpSigner, err := secp256k1.NewSigner()
	require.NoError(t, err)

	secpKey, err := secpSigner.MarshalBinary()
	require.NoError(t, err)

	cfg.OperatorKey = writeKey(t, dir, "secp256k1.key", secpKey)
	cfg.OperatorKeyType = KeyTypeSecp256k1

	c, err = New(cfg, WithNodeConn("0.0.3", fake.NewClientConn(nil)), WithSigner(fake.NewSigner(nil)))
	require.NoError(t, err)
	require.Len(t, c.signers, 2)
	require.IsType(t, secp256k1.Signer{}, c.signers[0])

	cfg.OperatorKeyType = "rsa"
	_, err = New(cfg)
	require.EqualError(t, err, "couldn't load operator key: unknown key type 'rsa'")

	cfg.OperatorKey = filepath.Join(dir, "missing.key")
	_, err = New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't load operator key: couldn't read key: couldn't read key file")
}

func TestClient_NewFailures(t *testing.T) {
	cfg := makeConfig()
	cfg.Network = "xyz"
	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid network: invalid ledger id 'xyz'")

	cfg = makeConfig()
	cfg.Operator = "abc"
	_, err = New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid operator: ")

	cfg = makeConfig()
	cfg.Nodes = map[string]string{"abc": "127.0.0.1:50211"}
	_, err = New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid node account 'abc': ")

	cfg = makeConfig()
	cfg.Journal = filepath.Join(t.TempDir(), "missing", "journal.db")
	_, err = New(cfg, WithNodeConn("0.0.3", fake.NewClientConn(nil)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't open journal: ")

	getTracer = fake.GetTracerWithError
	defer func() {
		getTracer = fake.GetTracerNoop
	}()

	_, err = New(makeConfig())
	require.EqualError(t, err, fake.Err("failed to get tracer"))
}

func TestClient_Execute(t *testing.T) {
	conn := fake.NewClientConn(&hapi.TransactionResponse{})
	j := fake.NewJournal()

	c := makeClient(t, WithNodeConn("0.0.3", conn), WithJournal(j), WithSigner(fake.NewSigner(nil)))

	tx := transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123}))

	resp, err := c.Execute(context.Background(), tx)
	require.NoError(t, err)
	require.NoError(t, resp.Validate())
	require.Equal(t, entity.AccountID{Num: 3}, resp.NodeAccountID)
	require.Equal(t, entity.AccountID{Num: 1001}, resp.TransactionID.AccountID)
	require.Equal(t, hapi.FileService_SystemUndelete_FullMethodName, conn.Method(0))
	require.Equal(t, 1, j.Len())

	recorded, err := c.ReadJournal(resp.TransactionID)
	require.NoError(t, err)
	require.Equal(t, resp.TransactionID.String(), recorded.TransactionID.String())
	require.Equal(t, resp.TransactionHash, recorded.TransactionHash)

	recorded, err = c.ReadJournal(transaction.NewID(entity.AccountID{Num: 2}))
	require.NoError(t, err)
	require.Nil(t, recorded)
}

func TestClient_ExecuteSpan(t *testing.T) {
	tracer := mocktracer.New()

	getTracer = fake.GetTracerMock(tracer)
	defer func() {
		getTracer = fake.GetTracerNoop
	}()

	c := makeClient(t, WithNodeConn("0.0.3", fake.NewClientConn(&hapi.TransactionResponse{})))

	tx := transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123}))

	_, err := c.Execute(context.Background(), tx)
	require.NoError(t, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "execute", spans[0].OperationName)
	require.Equal(t, "testnet", spans[0].Tag(tracing.NetworkTag))
	require.NotEmpty(t, spans[0].Tag(tracing.CorrelationTag))
}

func TestClient_ExecuteExplicitNode(t *testing.T) {
	first := fake.NewClientConn(&hapi.TransactionResponse{})
	second := fake.NewClientConn(&hapi.TransactionResponse{
		NodeTransactionPrecheckCode: hapi.ResponseCode_BUSY,
	})

	cfg := makeConfig()
	cfg.Nodes["0.0.4"] = "127.0.0.1:50212"

	c, err := New(cfg, WithNodeConn("0.0.3", first), WithNodeConn("0.0.4", second))
	require.NoError(t, err)

	tx := transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123})).
		SetNodeAccountID(entity.AccountID{Num: 4, Checksum: "abcde"}).
		SetTransactionID(transaction.NewID(entity.AccountID{Num: 5}))

	c.checksums = false

	resp, err := c.Execute(context.Background(), tx)
	require.NoError(t, err)
	require.Equal(t, hapi.ResponseCode_BUSY, resp.Status)
	require.Equal(t, entity.AccountID{Num: 5}, resp.TransactionID.AccountID)
	require.Equal(t, 0, first.Calls.Len())
	require.Equal(t, 1, second.Calls.Len())

	tx.SetNodeAccountID(entity.AccountID{Num: 9})
	_, err = c.Execute(context.Background(), tx)
	require.EqualError(t, err, "couldn't select node: unknown node 0.0.9")
}

func TestClient_ExecuteFailures(t *testing.T) {
	c := makeClient(t, WithNodeConn("0.0.3", fake.NewBadClientConn()), WithJournal(fake.NewBadJournal()))

	tx := transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123}))

	_, err := c.Execute(context.Background(), tx)
	require.EqualError(t, err, fake.Err("couldn't execute"))

	tx = transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123, Checksum: "vfmkw"}))

	_, err = c.Execute(context.Background(), tx)
	require.EqualError(t, err,
		"invalid checksum: file id: checksum mismatch for 0.0.123: expected 'esxsf' but got 'vfmkw'")

	var checksumErr *ledger.ChecksumError
	require.True(t, errors.As(err, &checksumErr))

	c.operator = nil
	_, err = c.Execute(context.Background(), transaction.New(system.NewUndelete()))
	require.EqualError(t, err, "missing transaction id and operator")

	c.nodes = nil
	_, err = c.Execute(context.Background(), tx)
	require.EqualError(t, err, "couldn't select node: no node available")
}

func TestClient_TransportStatus(t *testing.T) {
	conn := fake.NewClientConnWithError(status.Error(codes.Unavailable, "node is down"))
	c := makeClient(t, WithNodeConn("0.0.3", conn))

	tx := transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123}))

	_, err := c.Execute(context.Background(), tx)
	require.Error(t, err)
	require.Equal(t, codes.Unavailable, status.Code(err))

	q := query.New(transaction.NewReceiptQuery().SetTransactionID(transaction.NewID(entity.AccountID{Num: 5})))

	_, err = c.Query(context.Background(), q)
	require.Error(t, err)
	require.Equal(t, codes.Unavailable, status.Code(err))
}

func TestClient_ExecuteJournalFailure(t *testing.T) {
	conn := fake.NewClientConn(&hapi.TransactionResponse{})
	c := makeClient(t, WithNodeConn("0.0.3", conn), WithJournal(fake.NewBadJournal()))

	logger, check := fake.CheckLog("couldn't write journal")
	c.logger = logger

	tx := transaction.New(system.NewUndelete().SetFileID(entity.FileID{Num: 123}))

	_, err := c.Execute(context.Background(), tx)
	require.NoError(t, err)
	check(t)

	_, err = c.ReadJournal(*tx.GetTransactionID())
	require.EqualError(t, err, fake.Err("couldn't read journal"))

	c.journal = nil
	_, err = c.ReadJournal(*tx.GetTransactionID())
	require.EqualError(t, err, "no journal")
}

func TestClient_Query(t *testing.T) {
	conn := fake.NewClientConn(makeReceiptResponse(hapi.ResponseCode_OK))
	c := makeClient(t, WithNodeConn("0.0.3", conn))

	q := query.New(transaction.NewReceiptQuery().SetTransactionID(transaction.NewID(entity.AccountID{Num: 5})))

	resp, err := c.Query(context.Background(), q)
	require.NoError(t, err)

	receipt, err := transaction.ReceiptFromResponse(resp)
	require.NoError(t, err)
	require.Equal(t, hapi.ResponseCode_SUCCESS, receipt.Status)
	require.Equal(t, hapi.CryptoService_GetTransactionReceipts_FullMethodName, conn.Method(0))

	c = makeClient(t, WithNodeConn("0.0.3", fake.NewClientConn(makeReceiptResponse(hapi.ResponseCode_BUSY))))

	_, err = c.Query(context.Background(), q)
	require.EqualError(t, err, "query failed precheck with status BUSY")

	var precheck *query.PrecheckError
	require.True(t, errors.As(err, &precheck))

	c = makeClient(t, WithNodeConn("0.0.3", fake.NewBadClientConn()))

	_, err = c.Query(context.Background(), q)
	require.EqualError(t, err, fake.Err("couldn't query"))

	q = query.New(transaction.NewReceiptQuery().SetTransactionID(
		transaction.NewID(entity.AccountID{Num: 123, Checksum: "vfmkw"})))

	_, err = c.Query(context.Background(), q)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid checksum: ")

	c.nodes = nil
	_, err = c.Query(context.Background(), q)
	require.EqualError(t, err, "couldn't select node: no node available")
}

func TestClient_Subscribe(t *testing.T) {
	conn := fake.NewStreamConn(makeTopicResponse(1), makeTopicResponse(2))
	c := makeClient(t, WithNodeConn("0.0.3", fake.NewClientConn(nil)), WithMirrorConn(conn))

	q := topic.NewMessageQuery().SetTopicID(entity.TopicID{Num: 9})

	var seqs []uint64
	err := c.Subscribe(context.Background(), q, func(msg topic.Message) error {
		seqs = append(seqs, msg.SequenceNumber)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, seqs)
	require.Equal(t, hapi.ConsensusService_SubscribeTopic_FullMethodName, conn.Method(0))

	q.SetTopicID(entity.TopicID{Num: 9, Checksum: "sgpgx"})
	err = c.Subscribe(context.Background(), q, nil)
	require.EqualError(t, err,
		"invalid checksum: topic id: checksum mismatch for 0.0.9: expected 'buaog' but got 'sgpgx'")

	c.mirror = nil
	err = c.Subscribe(context.Background(), q, nil)
	require.EqualError(t, err, "no mirror node")
}

func TestClient_Close(t *testing.T) {
	c := makeClient(t, WithNodeConn("0.0.3", fake.NewClientConn(nil)), WithJournal(fake.NewJournal()))
	c.closers = append(c.closers, badCloser{})

	err := c.Close()
	require.EqualError(t, err, "couldn't close client: [fake error]")
}

func TestSplitMethod(t *testing.T) {
	service, method := splitMethod(hapi.TokenService_CreateToken_FullMethodName)
	require.Equal(t, "TokenService", service)
	require.Equal(t, "createToken", method)

	service, method = splitMethod("ping")
	require.Equal(t, "unknown", service)
	require.Equal(t, "ping", method)
}

func TestMetricsUnaryInterceptor(t *testing.T) {
	calls := 0
	invoker := func(ctx context.Context, method string, req, reply interface{},
		cc *grpc.ClientConn, opts ...grpc.CallOption) error {

		calls++
		return fake.GetError()
	}

	before := testutil.ToFloat64(promRequests.WithLabelValues("FileService", "systemUndelete", "Unknown"))

	err := metricsUnaryInterceptor(context.Background(), hapi.FileService_SystemUndelete_FullMethodName,
		nil, nil, nil, invoker)
	require.Equal(t, fake.GetError(), err)
	require.Equal(t, 1, calls)

	after := testutil.ToFloat64(promRequests.WithLabelValues("FileService", "systemUndelete", "Unknown"))
	require.Equal(t, before+1, after)
}

func TestMetricsStreamInterceptor(t *testing.T) {
	streamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn,
		method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {

		return nil, nil
	}

	before := testutil.ToFloat64(promRequests.WithLabelValues("ConsensusService", "subscribeTopic", "OK"))

	_, err := metricsStreamInterceptor(context.Background(), &grpc.StreamDesc{}, nil,
		hapi.ConsensusService_SubscribeTopic_FullMethodName, streamer)
	require.NoError(t, err)

	after := testutil.ToFloat64(promRequests.WithLabelValues("ConsensusService", "subscribeTopic", "OK"))
	require.Equal(t, before+1, after)
}

// -----------------------------------------------------------------------------
// Utility functions

func makeConfig() Config {
	cfg := DefaultConfig()
	cfg.Network = "testnet"
	cfg.Nodes = map[string]string{"0.0.3": "127.0.0.1:50211"}
	cfg.Operator = "0.0.1001"
	cfg.Timeout = time.Second

	return cfg
}

func makeClient(t *testing.T, opts ...Option) *Client {
	c, err := New(makeConfig(), opts...)
	require.NoError(t, err)

	return c
}

func writeKey(t *testing.T, dir, name string, key []byte) string {
	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0600)
	require.NoError(t, err)

	return path
}

func makeReceiptResponse(precheck hapi.ResponseCode) *hapi.Response {
	return &hapi.Response{
		Response: &hapi.Response_TransactionGetReceipt{
			TransactionGetReceipt: &hapi.TransactionGetReceiptResponse{
				Header:  &hapi.ResponseHeader{NodeTransactionPrecheckCode: precheck},
				Receipt: &hapi.TransactionReceipt{Status: hapi.ResponseCode_SUCCESS},
			},
		},
	}
}

func makeTopicResponse(seq uint64) *hapi.ConsensusTopicResponse {
	return &hapi.ConsensusTopicResponse{
		ConsensusTimestamp: hapi.NewTimestamp(time.Unix(100, int64(seq))),
		Message:            []byte("message"),
		SequenceNumber:     seq,
	}
}

type badCloser struct{}

func (badCloser) Close() error {
	return fake.GetError()
}
