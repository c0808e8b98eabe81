// Package query defines the envelope of the queries sent to the nodes.
//
// A query is made of the data of a kind of query, for instance the
// information of a non-fungible token, and of the header common to every
// query: the optional payment and the type of the response. The data decides
// which remote method answers the query.
package query

import (
	"context"
	"fmt"

	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"google.golang.org/grpc"
)

// Data is the content of a kind of query.
type Data interface {
	serde.Message

	// ToQueryProtobuf returns the wire message of the query with the header.
	ToQueryProtobuf(header *hapi.QueryHeader) *hapi.Query

	// ValidateChecksums returns an error if an identifier of the query has a
	// checksum that does not belong to the ledger.
	ValidateChecksums(id ledger.ID) error

	// Execute sends the query to the remote method that answers it.
	Execute(ctx context.Context, conn grpc.ClientConnInterface, q *hapi.Query) (*hapi.Response, error)
}

// PrecheckError is returned when the header of a response has a status other
// than OK.
type PrecheckError struct {
	Status hapi.ResponseCode
}

// Error implements error.
func (e *PrecheckError) Error() string {
	return fmt.Sprintf("query failed precheck with status %v", e.Status)
}

// Query is the envelope of the data of a query.
type Query struct {
	data         Data
	payment      *hapi.Transaction
	responseType hapi.ResponseType
}

// New returns a query of the data that asks for the answer only.
func New(data Data) *Query {
	return &Query{
		data:         data,
		responseType: hapi.ResponseType_ANSWER_ONLY,
	}
}

// GetData returns the data of the query.
func (q *Query) GetData() Data {
	return q.data
}

// SetPayment sets the transaction that pays for the query.
func (q *Query) SetPayment(payment *hapi.Transaction) *Query {
	q.payment = payment
	return q
}

// GetPayment returns the transaction that pays for the query, or nil.
func (q *Query) GetPayment() *hapi.Transaction {
	return q.payment
}

// SetResponseType sets the type of the answer.
func (q *Query) SetResponseType(rt hapi.ResponseType) *Query {
	q.responseType = rt
	return q
}

// GetResponseType returns the type of the answer.
func (q *Query) GetResponseType() hapi.ResponseType {
	return q.responseType
}

// ToProtobuf returns the wire message of the query.
func (q *Query) ToProtobuf() *hapi.Query {
	header := &hapi.QueryHeader{
		Payment:      q.payment,
		ResponseType: q.responseType,
	}

	return q.data.ToQueryProtobuf(header)
}

// ValidateChecksums returns an error if an identifier of the data has a
// checksum that does not belong to the ledger.
func (q *Query) ValidateChecksums(id ledger.ID) error {
	return q.data.ValidateChecksums(id)
}

// Execute sends the query through the connection and returns the raw
// response. Transport errors are returned as is, and the precheck status is
// left to the caller.
func (q *Query) Execute(ctx context.Context, conn grpc.ClientConnInterface) (*hapi.Response, error) {
	hedera.Logger.Debug().
		Str("query", fmt.Sprintf("%T", q.data)).
		Msg("sending query")

	resp, err := q.data.Execute(ctx, conn, q.ToProtobuf())
	if err != nil {
		return nil, err
	}

	status := HeaderOf(resp).NodeTransactionPrecheckCode
	if status != hapi.ResponseCode_OK {
		hedera.Logger.Warn().
			Str("query", fmt.Sprintf("%T", q.data)).
			Stringer("status", status).
			Msg("query failed precheck")
	}

	return resp, nil
}

// HeaderOf returns the header of the response. An empty header is returned
// when the response has none.
func HeaderOf(resp *hapi.Response) *hapi.ResponseHeader {
	header := resp.GetHeader()
	if header == nil {
		return &hapi.ResponseHeader{}
	}

	return header
}

// CheckPrecheck returns a *PrecheckError if the status of the header of the
// response is not OK.
func CheckPrecheck(resp *hapi.Response) error {
	status := HeaderOf(resp).NodeTransactionPrecheckCode
	if status != hapi.ResponseCode_OK {
		return &PrecheckError{Status: status}
	}

	return nil
}
