package transaction

import (
	"context"
	"fmt"

	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/query"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

// ReceiptQueryType is the type of the serialized receipt query.
const ReceiptQueryType = "transactionReceipt"

var (
	receiptFormats      = registry.New()
	receiptQueryFormats = registry.New()
)

// RegisterReceiptFormat registers the engine for the provided format.
func RegisterReceiptFormat(f serde.Format, e serde.FormatEngine) {
	receiptFormats.Register(f, e)
}

// RegisterReceiptQueryFormat registers the engine for the provided format.
func RegisterReceiptQueryFormat(f serde.Format, e serde.FormatEngine) {
	receiptQueryFormats.Register(f, e)
}

// StatusError is returned when a transaction reached consensus but failed.
type StatusError struct {
	Status hapi.ResponseCode
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("transaction failed with status %v", e.Status)
}

// Receipt is the outcome of a transaction reached by consensus.
//
// - implements serde.Message
type Receipt struct {
	Status                  hapi.ResponseCode
	AccountID               *entity.AccountID
	FileID                  *entity.FileID
	ContractID              *entity.ContractID
	TopicID                 *entity.TopicID
	TopicSequenceNumber     uint64
	TopicRunningHash        []byte
	TopicRunningHashVersion uint64
	TokenID                 *entity.TokenID
	TotalSupply             uint64
	SerialNumbers           []int64
	Duplicates              []Receipt
	Children                []Receipt
}

// Validate returns a *StatusError if the status is not SUCCESS.
func (r Receipt) Validate() error {
	if r.Status != hapi.ResponseCode_SUCCESS {
		return &StatusError{Status: r.Status}
	}

	return nil
}

// Serialize implements serde.Message.
func (r Receipt) Serialize(ctx serde.Context) ([]byte, error) {
	format := receiptFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, r)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode receipt: %v", err)
	}

	return data, nil
}

// ReceiptFromProtobuf returns the receipt of the wire message.
func ReceiptFromProtobuf(pb *hapi.TransactionReceipt) Receipt {
	if pb == nil {
		return Receipt{}
	}

	r := Receipt{
		Status:                  pb.Status,
		TopicSequenceNumber:     pb.TopicSequenceNumber,
		TopicRunningHash:        pb.TopicRunningHash,
		TopicRunningHashVersion: pb.TopicRunningHashVersion,
		TotalSupply:             pb.NewTotalSupply,
		SerialNumbers:           pb.SerialNumbers,
	}

	if pb.AccountID != nil {
		id := entity.AccountIDFromProtobuf(pb.AccountID)
		r.AccountID = &id
	}

	if pb.FileID != nil {
		id := entity.FileIDFromProtobuf(pb.FileID)
		r.FileID = &id
	}

	if pb.ContractID != nil {
		id := entity.ContractIDFromProtobuf(pb.ContractID)
		r.ContractID = &id
	}

	if pb.TopicID != nil {
		id := entity.TopicIDFromProtobuf(pb.TopicID)
		r.TopicID = &id
	}

	if pb.TokenID != nil {
		id := entity.TokenIDFromProtobuf(pb.TokenID)
		r.TokenID = &id
	}

	return r
}

// ReceiptFromResponse returns the receipt of the answer to a receipt query.
func ReceiptFromResponse(resp *hapi.Response) (Receipt, error) {
	if resp == nil {
		return Receipt{}, xerrors.New("empty response")
	}

	err := query.CheckPrecheck(resp)
	if err != nil {
		return Receipt{}, xerrors.Errorf("receipt query: %w", err)
	}

	v, ok := resp.Response.(*hapi.Response_TransactionGetReceipt)
	if !ok || v.TransactionGetReceipt == nil {
		return Receipt{}, xerrors.Errorf("unexpected response of type '%T'", resp.Response)
	}

	r := ReceiptFromProtobuf(v.TransactionGetReceipt.Receipt)
	r.Duplicates = receiptsFromProtobuf(v.TransactionGetReceipt.DuplicateTransactionReceipts)
	r.Children = receiptsFromProtobuf(v.TransactionGetReceipt.ChildTransactionReceipts)

	return r, nil
}

func receiptsFromProtobuf(pbs []*hapi.TransactionReceipt) []Receipt {
	if len(pbs) == 0 {
		return nil
	}

	receipts := make([]Receipt, len(pbs))
	for i, pb := range pbs {
		receipts[i] = ReceiptFromProtobuf(pb)
	}

	return receipts
}

// ReceiptQuery asks for the receipt of a transaction.
//
// - implements query.Data
type ReceiptQuery struct {
	transactionID     *ID
	includeDuplicates bool
	includeChildren   bool
}

// NewReceiptQuery returns an empty receipt query.
func NewReceiptQuery() *ReceiptQuery {
	return &ReceiptQuery{}
}

// SetTransactionID sets the identifier of the transaction.
func (q *ReceiptQuery) SetTransactionID(id ID) *ReceiptQuery {
	q.transactionID = &id
	return q
}

// GetTransactionID returns the identifier of the transaction, or nil.
func (q *ReceiptQuery) GetTransactionID() *ID {
	return q.transactionID
}

// SetIncludeDuplicates sets whether the receipts of the duplicates of the
// transaction are returned.
func (q *ReceiptQuery) SetIncludeDuplicates(include bool) *ReceiptQuery {
	q.includeDuplicates = include
	return q
}

// GetIncludeDuplicates returns whether the receipts of the duplicates are
// returned.
func (q *ReceiptQuery) GetIncludeDuplicates() bool {
	return q.includeDuplicates
}

// SetIncludeChildren sets whether the receipts of the children of the
// transaction are returned.
func (q *ReceiptQuery) SetIncludeChildren(include bool) *ReceiptQuery {
	q.includeChildren = include
	return q
}

// GetIncludeChildren returns whether the receipts of the children are
// returned.
func (q *ReceiptQuery) GetIncludeChildren() bool {
	return q.includeChildren
}

// ToQueryProtobuf implements query.Data.
func (q *ReceiptQuery) ToQueryProtobuf(header *hapi.QueryHeader) *hapi.Query {
	pb := &hapi.TransactionGetReceiptQuery{
		Header:               header,
		IncludeDuplicates:    q.includeDuplicates,
		IncludeChildReceipts: q.includeChildren,
	}

	if q.transactionID != nil {
		pb.TransactionID = q.transactionID.ToProtobuf()
	}

	return &hapi.Query{Query: &hapi.Query_TransactionGetReceipt{TransactionGetReceipt: pb}}
}

// ValidateChecksums implements query.Data.
func (q *ReceiptQuery) ValidateChecksums(id ledger.ID) error {
	if q.transactionID == nil {
		return nil
	}

	err := q.transactionID.ValidateChecksum(id)
	if err != nil {
		return xerrors.Errorf("transaction id: %w", err)
	}

	return nil
}

// Execute implements query.Data. It sends the query to the crypto service.
func (q *ReceiptQuery) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	pb *hapi.Query) (*hapi.Response, error) {

	return hapi.NewCryptoServiceClient(conn).GetTransactionReceipts(ctx, pb)
}

// Serialize implements serde.Message.
func (q *ReceiptQuery) Serialize(ctx serde.Context) ([]byte, error) {
	format := receiptQueryFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, q)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode receipt query: %v", err)
	}

	return data, nil
}

// receiptQueryFactory is the factory to deserialize receipt queries.
//
// - implements serde.Factory
type receiptQueryFactory struct{}

// NewReceiptQueryFactory returns a new instance of the receipt query factory.
func NewReceiptQueryFactory() serde.Factory {
	return receiptQueryFactory{}
}

// Deserialize implements serde.Factory.
func (f receiptQueryFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := receiptQueryFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode receipt query: %v", err)
	}

	return msg, nil
}
