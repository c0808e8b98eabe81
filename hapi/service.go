package hapi

import (
	"context"

	"google.golang.org/grpc"
)

// Full names of the remote methods.
const (
	SmartContractService_UpdateContract_FullMethodName  = "/proto.SmartContractService/updateContract"
	SmartContractService_SystemUndelete_FullMethodName  = "/proto.SmartContractService/systemUndelete"
	FileService_SystemUndelete_FullMethodName           = "/proto.FileService/systemUndelete"
	TokenService_CreateToken_FullMethodName             = "/proto.TokenService/createToken"
	TokenService_GetTokenNftInfo_FullMethodName         = "/proto.TokenService/getTokenNftInfo"
	CryptoService_GetTransactionReceipts_FullMethodName = "/proto.CryptoService/getTransactionReceipts"
	ConsensusService_SubscribeTopic_FullMethodName      = "/com.hedera.mirror.api.proto.ConsensusService/subscribeTopic"
)

func invoke(ctx context.Context, cc grpc.ClientConnInterface, method string,
	in, out Message, opts []grpc.CallOption) error {

	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)

	return cc.Invoke(ctx, method, in, out, opts...)
}

// SmartContractServiceClient is the client of the smart contract service.
type SmartContractServiceClient interface {
	UpdateContract(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*TransactionResponse, error)
	SystemUndelete(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*TransactionResponse, error)
}

type smartContractServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSmartContractServiceClient returns a client of the smart contract service
// using the connection.
func NewSmartContractServiceClient(cc grpc.ClientConnInterface) SmartContractServiceClient {
	return smartContractServiceClient{cc: cc}
}

func (c smartContractServiceClient) UpdateContract(ctx context.Context, in *Transaction,
	opts ...grpc.CallOption) (*TransactionResponse, error) {

	out := new(TransactionResponse)
	err := invoke(ctx, c.cc, SmartContractService_UpdateContract_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c smartContractServiceClient) SystemUndelete(ctx context.Context, in *Transaction,
	opts ...grpc.CallOption) (*TransactionResponse, error) {

	out := new(TransactionResponse)
	err := invoke(ctx, c.cc, SmartContractService_SystemUndelete_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FileServiceClient is the client of the file service.
type FileServiceClient interface {
	SystemUndelete(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*TransactionResponse, error)
}

type fileServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFileServiceClient returns a client of the file service using the
// connection.
func NewFileServiceClient(cc grpc.ClientConnInterface) FileServiceClient {
	return fileServiceClient{cc: cc}
}

func (c fileServiceClient) SystemUndelete(ctx context.Context, in *Transaction,
	opts ...grpc.CallOption) (*TransactionResponse, error) {

	out := new(TransactionResponse)
	err := invoke(ctx, c.cc, FileService_SystemUndelete_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// TokenServiceClient is the client of the token service.
type TokenServiceClient interface {
	CreateToken(ctx context.Context, in *Transaction, opts ...grpc.CallOption) (*TransactionResponse, error)
	GetTokenNftInfo(ctx context.Context, in *Query, opts ...grpc.CallOption) (*Response, error)
}

type tokenServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTokenServiceClient returns a client of the token service using the
// connection.
func NewTokenServiceClient(cc grpc.ClientConnInterface) TokenServiceClient {
	return tokenServiceClient{cc: cc}
}

func (c tokenServiceClient) CreateToken(ctx context.Context, in *Transaction,
	opts ...grpc.CallOption) (*TransactionResponse, error) {

	out := new(TransactionResponse)
	err := invoke(ctx, c.cc, TokenService_CreateToken_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c tokenServiceClient) GetTokenNftInfo(ctx context.Context, in *Query,
	opts ...grpc.CallOption) (*Response, error) {

	out := new(Response)
	err := invoke(ctx, c.cc, TokenService_GetTokenNftInfo_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CryptoServiceClient is the client of the crypto service. Only the receipt
// query is supported.
type CryptoServiceClient interface {
	GetTransactionReceipts(ctx context.Context, in *Query, opts ...grpc.CallOption) (*Response, error)
}

type cryptoServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCryptoServiceClient returns a client of the crypto service using the
// connection.
func NewCryptoServiceClient(cc grpc.ClientConnInterface) CryptoServiceClient {
	return cryptoServiceClient{cc: cc}
}

func (c cryptoServiceClient) GetTransactionReceipts(ctx context.Context, in *Query,
	opts ...grpc.CallOption) (*Response, error) {

	out := new(Response)
	err := invoke(ctx, c.cc, CryptoService_GetTransactionReceipts_FullMethodName, in, out, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ConsensusServiceClient is the client of the consensus service of a mirror
// node.
type ConsensusServiceClient interface {
	SubscribeTopic(ctx context.Context, in *ConsensusTopicQuery,
		opts ...grpc.CallOption) (ConsensusService_SubscribeTopicClient, error)
}

// ConsensusService_SubscribeTopicClient is the stream of the messages of a
// topic.
type ConsensusService_SubscribeTopicClient interface {
	Recv() (*ConsensusTopicResponse, error)
	grpc.ClientStream
}

var subscribeTopicStreamDesc = grpc.StreamDesc{
	StreamName:    "subscribeTopic",
	ServerStreams: true,
}

type consensusServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewConsensusServiceClient returns a client of the mirror consensus service
// using the connection.
func NewConsensusServiceClient(cc grpc.ClientConnInterface) ConsensusServiceClient {
	return consensusServiceClient{cc: cc}
}

func (c consensusServiceClient) SubscribeTopic(ctx context.Context, in *ConsensusTopicQuery,
	opts ...grpc.CallOption) (ConsensusService_SubscribeTopicClient, error) {

	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)

	stream, err := c.cc.NewStream(ctx, &subscribeTopicStreamDesc,
		ConsensusService_SubscribeTopic_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}

	err = stream.SendMsg(in)
	if err != nil {
		return nil, err
	}

	err = stream.CloseSend()
	if err != nil {
		return nil, err
	}

	return subscribeTopicClient{ClientStream: stream}, nil
}

type subscribeTopicClient struct {
	grpc.ClientStream
}

func (x subscribeTopicClient) Recv() (*ConsensusTopicResponse, error) {
	m := new(ConsensusTopicResponse)

	err := x.ClientStream.RecvMsg(m)
	if err != nil {
		return nil, err
	}

	return m, nil
}
