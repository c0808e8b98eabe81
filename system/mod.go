// Package system implements the privileged transaction that restores a file
// or a smart contract removed by a system delete.
package system

import (
	"context"

	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

// UndeleteType is the type of the serialized system undelete.
const UndeleteType = "systemUndelete"

var undeleteFormats = registry.New()

func init() {
	transaction.RegisterDecoder(&hapi.TransactionBody_SystemUndelete{}, decodeUndelete)
	transaction.RegisterDataFactory(UndeleteType, NewUndeleteFactory())
}

// RegisterUndeleteFormat registers the engine for the provided format.
func RegisterUndeleteFormat(f serde.Format, e serde.FormatEngine) {
	undeleteFormats.Register(f, e)
}

// Undelete is the data of a transaction that undeletes either a file or a
// smart contract. Setting one of them clears the other.
//
// - implements transaction.Data
type Undelete struct {
	fileID     *entity.FileID
	contractID *entity.ContractID
}

// NewUndelete returns an empty system undelete.
func NewUndelete() *Undelete {
	return &Undelete{}
}

// SetFileID sets the file to undelete and clears the contract.
func (u *Undelete) SetFileID(id entity.FileID) *Undelete {
	u.fileID = &id
	u.contractID = nil
	return u
}

// GetFileID returns the file to undelete, or nil.
func (u *Undelete) GetFileID() *entity.FileID {
	return u.fileID
}

// SetContractID sets the contract to undelete and clears the file.
func (u *Undelete) SetContractID(id entity.ContractID) *Undelete {
	u.contractID = &id
	u.fileID = nil
	return u
}

// GetContractID returns the contract to undelete, or nil.
func (u *Undelete) GetContractID() *entity.ContractID {
	return u.contractID
}

// ToProtobuf returns the wire message of the undelete. The id oneof is unset
// when neither a file nor a contract is set.
func (u *Undelete) ToProtobuf() *hapi.SystemUndeleteTransactionBody {
	pb := &hapi.SystemUndeleteTransactionBody{}

	switch {
	case u.contractID != nil:
		pb.ID = &hapi.SystemUndeleteTransactionBody_ContractID{ContractID: u.contractID.ToProtobuf()}
	case u.fileID != nil:
		pb.ID = &hapi.SystemUndeleteTransactionBody_FileID{FileID: u.fileID.ToProtobuf()}
	}

	return pb
}

// ToTransactionBodyData implements transaction.Data.
func (u *Undelete) ToTransactionBodyData() hapi.TransactionBodyData {
	return &hapi.TransactionBody_SystemUndelete{SystemUndelete: u.ToProtobuf()}
}

// UndeleteFromProtobuf returns the undelete of the wire message.
func UndeleteFromProtobuf(pb *hapi.SystemUndeleteTransactionBody) *Undelete {
	u := NewUndelete()

	if pb == nil {
		return u
	}

	switch id := pb.ID.(type) {
	case *hapi.SystemUndeleteTransactionBody_FileID:
		u.SetFileID(entity.FileIDFromProtobuf(id.FileID))
	case *hapi.SystemUndeleteTransactionBody_ContractID:
		u.SetContractID(entity.ContractIDFromProtobuf(id.ContractID))
	}

	return u
}

func decodeUndelete(data hapi.TransactionBodyData) (transaction.Data, error) {
	body := data.(*hapi.TransactionBody_SystemUndelete)

	return UndeleteFromProtobuf(body.SystemUndelete), nil
}

// ValidateChecksums implements transaction.Data. It validates the contract
// and the file.
func (u *Undelete) ValidateChecksums(id ledger.ID) error {
	if u.contractID != nil {
		err := u.contractID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("contract id: %w", err)
		}
	}

	if u.fileID != nil {
		err := u.fileID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("file id: %w", err)
		}
	}

	return nil
}

// Execute implements transaction.Data. The transaction is submitted to the
// file service when a file is set, and to the smart contract service
// otherwise, including when neither is set.
func (u *Undelete) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	tx *hapi.Transaction) (*hapi.TransactionResponse, error) {

	if u.fileID != nil {
		return hapi.NewFileServiceClient(conn).SystemUndelete(ctx, tx)
	}

	if u.contractID == nil {
		hedera.Logger.Debug().Msg("system undelete without target sent to the contract service")
	}

	return hapi.NewSmartContractServiceClient(conn).SystemUndelete(ctx, tx)
}

// Serialize implements serde.Message.
func (u *Undelete) Serialize(ctx serde.Context) ([]byte, error) {
	format := undeleteFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, u)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode system undelete: %v", err)
	}

	return data, nil
}

// undeleteFactory is the factory to deserialize system undeletes.
//
// - implements serde.Factory
type undeleteFactory struct{}

// NewUndeleteFactory returns a new instance of the system undelete factory.
func NewUndeleteFactory() serde.Factory {
	return undeleteFactory{}
}

// Deserialize implements serde.Factory.
func (f undeleteFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := undeleteFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode system undelete: %v", err)
	}

	return msg, nil
}
