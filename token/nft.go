package token

import (
	"context"
	"time"

	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/query"
	"go.dedis.ch/hedera/serde"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

// NftInfo is the information of a non-fungible token.
//
// - implements serde.Message
type NftInfo struct {
	NftID        entity.NftID
	AccountID    entity.AccountID
	CreationTime time.Time
	Metadata     []byte
	LedgerID     ledger.ID
	SpenderID    *entity.AccountID
}

// NftInfoFromProtobuf returns the information of the wire message.
func NftInfoFromProtobuf(pb *hapi.TokenNftInfo) NftInfo {
	if pb == nil {
		return NftInfo{}
	}

	info := NftInfo{
		NftID:     entity.NftIDFromProtobuf(pb.NftID),
		AccountID: entity.AccountIDFromProtobuf(pb.AccountID),
		Metadata:  pb.Metadata,
		LedgerID:  ledger.ID(pb.LedgerID),
	}

	if pb.CreationTime != nil {
		info.CreationTime = pb.CreationTime.AsTime()
	}

	if pb.SpenderID != nil {
		spender := entity.AccountIDFromProtobuf(pb.SpenderID)
		info.SpenderID = &spender
	}

	return info
}

// NftInfoFromResponse returns the information of the answer to a query of the
// information of a non-fungible token.
func NftInfoFromResponse(resp *hapi.Response) (NftInfo, error) {
	if resp == nil {
		return NftInfo{}, xerrors.New("empty response")
	}

	err := query.CheckPrecheck(resp)
	if err != nil {
		return NftInfo{}, xerrors.Errorf("nft info query: %w", err)
	}

	v, ok := resp.Response.(*hapi.Response_TokenGetNftInfo)
	if !ok || v.TokenGetNftInfo == nil {
		return NftInfo{}, xerrors.Errorf("unexpected response of type '%T'", resp.Response)
	}

	return NftInfoFromProtobuf(v.TokenGetNftInfo.Nft), nil
}

// Serialize implements serde.Message.
func (info NftInfo) Serialize(ctx serde.Context) ([]byte, error) {
	format := nftInfoFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, info)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode nft info: %v", err)
	}

	return data, nil
}

// NftInfoQuery asks for the information of a non-fungible token.
//
// - implements query.Data
type NftInfoQuery struct {
	nftID *entity.NftID
}

// NewNftInfoQuery returns an empty query.
func NewNftInfoQuery() *NftInfoQuery {
	return &NftInfoQuery{}
}

// SetNftID sets the non-fungible token to look up.
func (q *NftInfoQuery) SetNftID(id entity.NftID) *NftInfoQuery {
	q.nftID = &id
	return q
}

// GetNftID returns the non-fungible token to look up, or nil.
func (q *NftInfoQuery) GetNftID() *entity.NftID {
	return q.nftID
}

// ToQueryProtobuf implements query.Data.
func (q *NftInfoQuery) ToQueryProtobuf(header *hapi.QueryHeader) *hapi.Query {
	pb := &hapi.TokenGetNftInfoQuery{Header: header}

	if q.nftID != nil {
		pb.NftID = q.nftID.ToProtobuf()
	}

	return &hapi.Query{Query: &hapi.Query_TokenGetNftInfo{TokenGetNftInfo: pb}}
}

// NftInfoQueryFromProtobuf returns the query of the wire message.
func NftInfoQueryFromProtobuf(pb *hapi.TokenGetNftInfoQuery) *NftInfoQuery {
	q := NewNftInfoQuery()

	if pb != nil && pb.NftID != nil {
		q.SetNftID(entity.NftIDFromProtobuf(pb.NftID))
	}

	return q
}

// ValidateChecksums implements query.Data.
func (q *NftInfoQuery) ValidateChecksums(id ledger.ID) error {
	if q.nftID == nil {
		return nil
	}

	err := q.nftID.ValidateChecksum(id)
	if err != nil {
		return xerrors.Errorf("nft id: %w", err)
	}

	return nil
}

// Execute implements query.Data. It sends the query to the token service.
func (q *NftInfoQuery) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	pb *hapi.Query) (*hapi.Response, error) {

	return hapi.NewTokenServiceClient(conn).GetTokenNftInfo(ctx, pb)
}

// Serialize implements serde.Message.
func (q *NftInfoQuery) Serialize(ctx serde.Context) ([]byte, error) {
	format := nftInfoQueryFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, q)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode nft info query: %v", err)
	}

	return data, nil
}

// nftInfoQueryFactory is the factory to deserialize queries of the
// information of non-fungible tokens.
//
// - implements serde.Factory
type nftInfoQueryFactory struct{}

// NewNftInfoQueryFactory returns a new instance of the factory.
func NewNftInfoQueryFactory() serde.Factory {
	return nftInfoQueryFactory{}
}

// Deserialize implements serde.Factory.
func (f nftInfoQueryFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := nftInfoQueryFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode nft info query: %v", err)
	}

	return msg, nil
}
