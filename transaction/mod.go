// Package transaction defines the envelope of the transactions submitted to
// the nodes.
//
// A transaction is made of the data of a kind of transaction, for instance a
// contract update, and of the fields common to every transaction: its
// identifier, the node that receives it, the maximum fee, the valid duration
// and a memo. The data decides which remote method receives the transaction,
// and the packages that define the data register how their wire message is
// decoded.
package transaction

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/crypto"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

// Hbar is the number of tinybars in one hbar.
const Hbar uint64 = 100_000_000

const (
	// DefaultMaxTransactionFee is the maximum fee of a transaction when
	// neither the transaction nor its data set one.
	DefaultMaxTransactionFee = 2 * Hbar

	// DefaultValidDuration is the duration during which a transaction is
	// valid when none is set.
	DefaultValidDuration = 120 * time.Second
)

var txFormats = registry.New()

// RegisterTransactionFormat registers the engine for the provided format.
func RegisterTransactionFormat(f serde.Format, e serde.FormatEngine) {
	txFormats.Register(f, e)
}

// Data is the content of a kind of transaction.
type Data interface {
	serde.Message

	// ToTransactionBodyData returns the member of the data oneof of the
	// transaction body.
	ToTransactionBodyData() hapi.TransactionBodyData

	// ValidateChecksums returns an error if an identifier of the data has a
	// checksum that does not belong to the ledger.
	ValidateChecksums(id ledger.ID) error

	// Execute submits the transaction to the remote method that receives this
	// kind of transaction.
	Execute(ctx context.Context, conn grpc.ClientConnInterface,
		tx *hapi.Transaction) (*hapi.TransactionResponse, error)
}

// FeeDefaulter is implemented by the data of the transactions whose maximum
// fee differs from DefaultMaxTransactionFee.
type FeeDefaulter interface {
	DefaultMaxTransactionFee() uint64
}

// Signer signs the body of a transaction.
type Signer interface {
	Sign(message []byte) (*hapi.SignaturePair, error)
}

// Decoder returns the data of a member of the data oneof.
type Decoder func(hapi.TransactionBodyData) (Data, error)

var decoders = struct {
	sync.RWMutex
	byType map[reflect.Type]Decoder
}{
	byType: make(map[reflect.Type]Decoder),
}

// RegisterDecoder registers the decoder of the member of the data oneof which
// has the same type as the variant.
func RegisterDecoder(variant hapi.TransactionBodyData, dec Decoder) {
	decoders.Lock()
	decoders.byType[reflect.TypeOf(variant)] = dec
	decoders.Unlock()

	hedera.Logger.Trace().
		Str("variant", reflect.TypeOf(variant).String()).
		Msg("transaction decoder registered")
}

func decoderOf(variant hapi.TransactionBodyData) (Decoder, bool) {
	decoders.RLock()
	defer decoders.RUnlock()

	dec, ok := decoders.byType[reflect.TypeOf(variant)]

	return dec, ok
}

var dataFactories = struct {
	sync.RWMutex
	byType map[string]serde.Factory
}{
	byType: make(map[string]serde.Factory),
}

// RegisterDataFactory registers the factory of the data whose serialized form
// has the type.
func RegisterDataFactory(typ string, f serde.Factory) {
	dataFactories.Lock()
	dataFactories.byType[typ] = f
	dataFactories.Unlock()

	hedera.Logger.Trace().Str("type", typ).Msg("transaction data factory registered")
}

// DataFactoryOf returns the factory of the data of the type.
func DataFactoryOf(typ string) (serde.Factory, bool) {
	dataFactories.RLock()
	defer dataFactories.RUnlock()

	f, ok := dataFactories.byType[typ]

	return f, ok
}

// Transaction is the envelope of the data of a transaction.
//
// - implements serde.Message
type Transaction struct {
	data              Data
	transactionID     *ID
	nodeAccountID     *entity.AccountID
	maxTransactionFee *uint64
	validDuration     time.Duration
	memo              string
}

// New returns a transaction of the data with the default valid duration.
func New(data Data) *Transaction {
	return &Transaction{
		data:          data,
		validDuration: DefaultValidDuration,
	}
}

// GetData returns the data of the transaction.
func (tx *Transaction) GetData() Data {
	return tx.data
}

// SetTransactionID sets the identifier of the transaction.
func (tx *Transaction) SetTransactionID(id ID) *Transaction {
	tx.transactionID = &id
	return tx
}

// GetTransactionID returns the identifier of the transaction, or nil.
func (tx *Transaction) GetTransactionID() *ID {
	return tx.transactionID
}

// SetNodeAccountID sets the account of the node that receives the
// transaction.
func (tx *Transaction) SetNodeAccountID(id entity.AccountID) *Transaction {
	tx.nodeAccountID = &id
	return tx
}

// GetNodeAccountID returns the account of the node, or nil.
func (tx *Transaction) GetNodeAccountID() *entity.AccountID {
	return tx.nodeAccountID
}

// SetMaxTransactionFee sets the maximum fee in tinybars the payer accepts to
// pay.
func (tx *Transaction) SetMaxTransactionFee(fee uint64) *Transaction {
	tx.maxTransactionFee = &fee
	return tx
}

// GetMaxTransactionFee returns the maximum fee explicitly set, or nil.
func (tx *Transaction) GetMaxTransactionFee() *uint64 {
	return tx.maxTransactionFee
}

// EffectiveMaxTransactionFee returns the maximum fee of the transaction, that
// is the one explicitly set, or the default of the data, or
// DefaultMaxTransactionFee.
func (tx *Transaction) EffectiveMaxTransactionFee() uint64 {
	if tx.maxTransactionFee != nil {
		return *tx.maxTransactionFee
	}

	defaulter, ok := tx.data.(FeeDefaulter)
	if ok {
		return defaulter.DefaultMaxTransactionFee()
	}

	return DefaultMaxTransactionFee
}

// SetTransactionValidDuration sets the duration during which the transaction
// is valid from its valid start. It is truncated to the second.
func (tx *Transaction) SetTransactionValidDuration(d time.Duration) *Transaction {
	tx.validDuration = d
	return tx
}

// GetTransactionValidDuration returns the valid duration.
func (tx *Transaction) GetTransactionValidDuration() time.Duration {
	return tx.validDuration
}

// SetTransactionMemo sets the memo of the transaction.
func (tx *Transaction) SetTransactionMemo(memo string) *Transaction {
	tx.memo = memo
	return tx
}

// GetTransactionMemo returns the memo of the transaction.
func (tx *Transaction) GetTransactionMemo() string {
	return tx.memo
}

// ToProtobuf returns the wire body of the transaction. The transaction
// identifier and the node account must be set.
func (tx *Transaction) ToProtobuf() (*hapi.TransactionBody, error) {
	if tx.transactionID == nil {
		return nil, xerrors.New("missing transaction id")
	}

	if tx.nodeAccountID == nil {
		return nil, xerrors.New("missing node account id")
	}

	body := &hapi.TransactionBody{
		TransactionID:            tx.transactionID.ToProtobuf(),
		NodeAccountID:            tx.nodeAccountID.ToProtobuf(),
		TransactionFee:           tx.EffectiveMaxTransactionFee(),
		TransactionValidDuration: hapi.NewDuration(tx.validDuration),
		Memo:                     tx.memo,
		Data:                     tx.data.ToTransactionBodyData(),
	}

	return body, nil
}

// FromProtobuf returns the transaction of the wire body. The data is decoded
// by the decoder registered for the member of the oneof. The maximum fee of
// the body is kept as is, even when it is zero.
func FromProtobuf(pb *hapi.TransactionBody) (*Transaction, error) {
	if pb == nil {
		return nil, xerrors.New("missing transaction body")
	}

	if pb.Data == nil {
		return nil, xerrors.New("missing transaction data")
	}

	dec, ok := decoderOf(pb.Data)
	if !ok {
		return nil, xerrors.Errorf("unsupported transaction data of type '%T'", pb.Data)
	}

	data, err := dec(pb.Data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode data: %v", err)
	}

	tx := New(data).SetTransactionMemo(pb.Memo)

	if pb.TransactionID != nil {
		tx.SetTransactionID(IDFromProtobuf(pb.TransactionID))
	}

	if pb.NodeAccountID != nil {
		tx.SetNodeAccountID(entity.AccountIDFromProtobuf(pb.NodeAccountID))
	}

	// A body always carries its fee, zero included.
	tx.SetMaxTransactionFee(pb.TransactionFee)

	if pb.TransactionValidDuration != nil {
		tx.SetTransactionValidDuration(pb.TransactionValidDuration.AsDuration())
	}

	return tx, nil
}

// FromBytes returns the transaction of the wire encoding of its body.
func FromBytes(data []byte) (*Transaction, error) {
	body := new(hapi.TransactionBody)

	err := hapi.Unmarshal(data, body)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode body: %v", err)
	}

	return FromProtobuf(body)
}

// BodyBytes returns the wire encoding of the body of the transaction.
func (tx *Transaction) BodyBytes() ([]byte, error) {
	body, err := tx.ToProtobuf()
	if err != nil {
		return nil, err
	}

	return hapi.Marshal(body), nil
}

// Build returns the signed transaction and its hash. Every signer signs the
// body bytes, and the hash is the SHA-384 digest of the signed transaction.
func (tx *Transaction) Build(signers ...Signer) (*hapi.Transaction, []byte, error) {
	bodyBytes, err := tx.BodyBytes()
	if err != nil {
		return nil, nil, xerrors.Errorf("couldn't make body: %v", err)
	}

	sigMap := &hapi.SignatureMap{}

	for i, signer := range signers {
		pair, err := signer.Sign(bodyBytes)
		if err != nil {
			return nil, nil, xerrors.Errorf("couldn't sign with signer %d: %v", i, err)
		}

		sigMap.SigPair = append(sigMap.SigPair, pair)
	}

	signed := hapi.Marshal(&hapi.SignedTransaction{
		BodyBytes: bodyBytes,
		SigMap:    sigMap,
	})

	h := crypto.NewHashFactory(crypto.Sha384).New()
	h.Write(signed)

	return &hapi.Transaction{SignedTransactionBytes: signed}, h.Sum(nil), nil
}

// ValidateChecksums validates the checksums of the transaction identifier and
// of the node account, and then the ones of the data. It stops at the first
// error.
func (tx *Transaction) ValidateChecksums(id ledger.ID) error {
	if tx.transactionID != nil {
		err := tx.transactionID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("transaction id: %w", err)
		}
	}

	if tx.nodeAccountID != nil {
		err := tx.nodeAccountID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("node account id: %w", err)
		}
	}

	return tx.data.ValidateChecksums(id)
}

// Execute builds and signs the transaction, and submits it through the
// connection. Transport errors are returned as is, and the precheck status of
// the node is part of the response.
func (tx *Transaction) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	signers ...Signer) (Response, error) {

	protoTx, hash, err := tx.Build(signers...)
	if err != nil {
		return Response{}, xerrors.Errorf("couldn't build transaction: %v", err)
	}

	hedera.Logger.Debug().
		Stringer("transaction", tx.transactionID).
		Stringer("node", tx.nodeAccountID).
		Msg("submitting transaction")

	resp, err := tx.data.Execute(ctx, conn, protoTx)
	if err != nil {
		return Response{}, err
	}

	res := Response{
		NodeAccountID:   *tx.nodeAccountID,
		TransactionID:   *tx.transactionID,
		TransactionHash: hash,
		Status:          resp.NodeTransactionPrecheckCode,
	}

	if res.Status != hapi.ResponseCode_OK {
		hedera.Logger.Warn().
			Stringer("transaction", tx.transactionID).
			Stringer("status", res.Status).
			Msg("transaction failed precheck")
	}

	return res, nil
}

// Serialize implements serde.Message.
func (tx *Transaction) Serialize(ctx serde.Context) ([]byte, error) {
	format := txFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, tx)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode transaction: %v", err)
	}

	return data, nil
}

// transactionFactory is the factory to deserialize transactions.
//
// - implements serde.Factory
type transactionFactory struct{}

// NewFactory returns a new instance of the transaction factory.
func NewFactory() serde.Factory {
	return transactionFactory{}
}

// Deserialize implements serde.Factory.
func (f transactionFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := txFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode transaction: %v", err)
	}

	return msg, nil
}

// TransactionOf returns the transaction of the data.
func TransactionOf(ctx serde.Context, data []byte) (*Transaction, error) {
	msg, err := NewFactory().Deserialize(ctx, data)
	if err != nil {
		return nil, err
	}

	tx, ok := msg.(*Transaction)
	if !ok {
		return nil, xerrors.Errorf("invalid transaction of type '%T'", msg)
	}

	return tx, nil
}
