package transaction

import (
	"fmt"

	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"golang.org/x/xerrors"
)

var responseFormats = registry.New()

// RegisterResponseFormat registers the engine for the provided format.
func RegisterResponseFormat(f serde.Format, e serde.FormatEngine) {
	responseFormats.Register(f, e)
}

// PrecheckError is returned when a node refuses a transaction before it
// reaches consensus.
type PrecheckError struct {
	Status        hapi.ResponseCode
	TransactionID ID
}

// Error implements error.
func (e *PrecheckError) Error() string {
	return fmt.Sprintf("transaction %v failed precheck with status %v", e.TransactionID, e.Status)
}

// Response is the answer of a node to a submitted transaction.
//
// - implements serde.Message
type Response struct {
	NodeAccountID   entity.AccountID
	TransactionID   ID
	TransactionHash []byte
	Status          hapi.ResponseCode
}

// Validate returns a *PrecheckError if the node refused the transaction.
func (r Response) Validate() error {
	if r.Status != hapi.ResponseCode_OK {
		return &PrecheckError{Status: r.Status, TransactionID: r.TransactionID}
	}

	return nil
}

// GetReceiptQuery returns the query of the receipt of the transaction.
func (r Response) GetReceiptQuery() *ReceiptQuery {
	return NewReceiptQuery().SetTransactionID(r.TransactionID)
}

// Serialize implements serde.Message.
func (r Response) Serialize(ctx serde.Context) ([]byte, error) {
	format := responseFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, r)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode response: %v", err)
	}

	return data, nil
}

// responseFactory is the factory to deserialize responses.
//
// - implements serde.Factory
type responseFactory struct{}

// NewResponseFactory returns a new instance of the response factory.
func NewResponseFactory() serde.Factory {
	return responseFactory{}
}

// Deserialize implements serde.Factory.
func (f responseFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := responseFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode response: %v", err)
	}

	return msg, nil
}
