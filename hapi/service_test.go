package hapi

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

func TestSmartContractServiceClient_UpdateContract(t *testing.T) {
	conn := &fakeConn{reply: &TransactionResponse{Cost: 12}}
	client := NewSmartContractServiceClient(conn)

	resp, err := client.UpdateContract(context.Background(), &Transaction{})
	require.NoError(t, err)
	require.Equal(t, uint64(12), resp.Cost)
	require.Equal(t, []string{"/proto.SmartContractService/updateContract"}, conn.methods)
	require.Equal(t, 1, conn.numOpts)

	conn.err = xerrors.New("oops")
	_, err = client.UpdateContract(context.Background(), &Transaction{})
	require.EqualError(t, err, "oops")
}

func TestSmartContractServiceClient_SystemUndelete(t *testing.T) {
	conn := &fakeConn{}
	client := NewSmartContractServiceClient(conn)

	_, err := client.SystemUndelete(context.Background(), &Transaction{})
	require.NoError(t, err)
	require.Equal(t, []string{"/proto.SmartContractService/systemUndelete"}, conn.methods)

	conn.err = xerrors.New("oops")
	_, err = client.SystemUndelete(context.Background(), &Transaction{})
	require.EqualError(t, err, "oops")
}

func TestFileServiceClient_SystemUndelete(t *testing.T) {
	conn := &fakeConn{reply: &TransactionResponse{NodeTransactionPrecheckCode: ResponseCode_BUSY}}
	client := NewFileServiceClient(conn)

	resp, err := client.SystemUndelete(context.Background(), &Transaction{}, grpc.WaitForReady(true))
	require.NoError(t, err)
	require.Equal(t, ResponseCode_BUSY, resp.NodeTransactionPrecheckCode)
	require.Equal(t, []string{"/proto.FileService/systemUndelete"}, conn.methods)
	require.Equal(t, 2, conn.numOpts)

	conn.err = xerrors.New("oops")
	_, err = client.SystemUndelete(context.Background(), &Transaction{})
	require.EqualError(t, err, "oops")
}

func TestTokenServiceClient(t *testing.T) {
	conn := &fakeConn{}
	client := NewTokenServiceClient(conn)

	_, err := client.CreateToken(context.Background(), &Transaction{})
	require.NoError(t, err)

	conn.reply = &Response{Response: &Response_TokenGetNftInfo{
		TokenGetNftInfo: &TokenGetNftInfoResponse{Nft: &TokenNftInfo{Metadata: []byte{1}}},
	}}

	resp, err := client.GetTokenNftInfo(context.Background(), &Query{})
	require.NoError(t, err)
	require.Equal(t, conn.reply, resp)

	require.Equal(t, []string{
		"/proto.TokenService/createToken",
		"/proto.TokenService/getTokenNftInfo",
	}, conn.methods)

	conn.err = xerrors.New("oops")
	_, err = client.CreateToken(context.Background(), &Transaction{})
	require.EqualError(t, err, "oops")

	_, err = client.GetTokenNftInfo(context.Background(), &Query{})
	require.EqualError(t, err, "oops")
}

func TestCryptoServiceClient_GetTransactionReceipts(t *testing.T) {
	conn := &fakeConn{}
	client := NewCryptoServiceClient(conn)

	_, err := client.GetTransactionReceipts(context.Background(), &Query{})
	require.NoError(t, err)
	require.Equal(t, []string{"/proto.CryptoService/getTransactionReceipts"}, conn.methods)

	conn.err = xerrors.New("oops")
	_, err = client.GetTransactionReceipts(context.Background(), &Query{})
	require.EqualError(t, err, "oops")
}

func TestConsensusServiceClient_SubscribeTopic(t *testing.T) {
	stream := &fakeStream{
		messages: []Message{
			&ConsensusTopicResponse{SequenceNumber: 1},
			&ConsensusTopicResponse{SequenceNumber: 2},
		},
	}

	conn := &fakeConn{stream: stream}
	client := NewConsensusServiceClient(conn)

	query := &ConsensusTopicQuery{TopicID: &TopicID{TopicNum: 5}, Limit: 2}

	sub, err := client.SubscribeTopic(context.Background(), query)
	require.NoError(t, err)
	require.Equal(t, []string{"/com.hedera.mirror.api.proto.ConsensusService/subscribeTopic"}, conn.methods)
	require.Equal(t, query, stream.sent)
	require.True(t, stream.closed)

	msg, err := sub.Recv()
	require.NoError(t, err)
	require.Equal(t, uint64(1), msg.SequenceNumber)

	msg, err = sub.Recv()
	require.NoError(t, err)
	require.Equal(t, uint64(2), msg.SequenceNumber)

	_, err = sub.Recv()
	require.Equal(t, io.EOF, err)

	conn.err = xerrors.New("oops")
	_, err = client.SubscribeTopic(context.Background(), query)
	require.EqualError(t, err, "oops")

	conn.err = nil
	stream.errSend = xerrors.New("oops")
	_, err = client.SubscribeTopic(context.Background(), query)
	require.EqualError(t, err, "oops")

	stream.errSend = nil
	stream.errClose = xerrors.New("oops")
	_, err = client.SubscribeTopic(context.Background(), query)
	require.EqualError(t, err, "oops")
}

func TestCodec(t *testing.T) {
	codec := Codec{}
	require.Equal(t, "proto", codec.Name())

	data, err := codec.Marshal(&FileID{FileNum: 9})
	require.NoError(t, err)
	require.Equal(t, []byte{0x18, 0x09}, data)

	id := new(FileID)
	err = codec.Unmarshal(data, id)
	require.NoError(t, err)
	require.Equal(t, &FileID{FileNum: 9}, id)

	_, err = codec.Marshal("abc")
	require.EqualError(t, err, "unsupported message of type 'string'")

	err = codec.Unmarshal(data, new(string))
	require.EqualError(t, err, "unsupported message of type '*string'")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeConn struct {
	methods []string
	numOpts int
	reply   Message
	stream  *fakeStream
	err     error
}

func (c *fakeConn) Invoke(ctx context.Context, method string, args, reply interface{},
	opts ...grpc.CallOption) error {

	c.methods = append(c.methods, method)
	c.numOpts = len(opts)

	if c.err != nil {
		return c.err
	}

	if c.reply != nil {
		return reply.(Message).Unmarshal(Marshal(c.reply))
	}

	return nil
}

func (c *fakeConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string,
	opts ...grpc.CallOption) (grpc.ClientStream, error) {

	c.methods = append(c.methods, method)

	if c.err != nil {
		return nil, c.err
	}

	return c.stream, nil
}

type fakeStream struct {
	grpc.ClientStream

	messages []Message
	sent     interface{}
	closed   bool
	errSend  error
	errClose error
}

func (s *fakeStream) SendMsg(m interface{}) error {
	s.sent = m
	return s.errSend
}

func (s *fakeStream) CloseSend() error {
	s.closed = true
	return s.errClose
}

func (s *fakeStream) RecvMsg(m interface{}) error {
	if len(s.messages) == 0 {
		return io.EOF
	}

	next := s.messages[0]
	s.messages = s.messages[1:]

	return m.(Message).Unmarshal(Marshal(next))
}
