// Package contract implements the transaction that updates the properties of
// a smart contract.
//
// The contract can be staked either to an account or to a node. Both can be
// set on the builder but only one is sent: the node wins when both are set.
package contract

import (
	"context"
	"time"

	"go.dedis.ch/hedera/crypto"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UpdateType is the type of the serialized contract update.
const UpdateType = "contractUpdate"

var updateFormats = registry.New()

func init() {
	transaction.RegisterDecoder(&hapi.TransactionBody_ContractUpdateInstance{}, decodeUpdate)
	transaction.RegisterDataFactory(UpdateType, NewUpdateFactory())
}

// RegisterUpdateFormat registers the engine for the provided format.
func RegisterUpdateFormat(f serde.Format, e serde.FormatEngine) {
	updateFormats.Register(f, e)
}

// Update is the data of a transaction that updates a smart contract. Every
// field is optional and only the ones that are set are modified.
//
// - implements transaction.Data
type Update struct {
	contractID                    *entity.ContractID
	expirationTime                *time.Time
	adminKey                      crypto.Key
	autoRenewPeriod               *time.Duration
	contractMemo                  *string
	maxAutomaticTokenAssociations *uint32
	autoRenewAccountID            *entity.AccountID
	stakedAccountID               *entity.AccountID
	stakedNodeID                  *uint64
	declineStakingReward          *bool
}

// NewUpdate returns an empty contract update.
func NewUpdate() *Update {
	return &Update{}
}

// SetContractID sets the contract to update.
func (u *Update) SetContractID(id entity.ContractID) *Update {
	u.contractID = &id
	return u
}

// GetContractID returns the contract to update, or nil.
func (u *Update) GetContractID() *entity.ContractID {
	return u.contractID
}

// SetExpirationTime sets the new expiration time of the contract.
func (u *Update) SetExpirationTime(t time.Time) *Update {
	t = t.UTC()
	u.expirationTime = &t
	return u
}

// GetExpirationTime returns the new expiration time, or nil.
func (u *Update) GetExpirationTime() *time.Time {
	return u.expirationTime
}

// SetAdminKey sets the new admin key of the contract.
func (u *Update) SetAdminKey(key crypto.Key) *Update {
	u.adminKey = key
	return u
}

// GetAdminKey returns the new admin key, or nil.
func (u *Update) GetAdminKey() crypto.Key {
	return u.adminKey
}

// SetAutoRenewPeriod sets the new auto-renew period. It is truncated to the
// second.
func (u *Update) SetAutoRenewPeriod(d time.Duration) *Update {
	d = d.Truncate(time.Second)
	u.autoRenewPeriod = &d
	return u
}

// GetAutoRenewPeriod returns the new auto-renew period, or nil.
func (u *Update) GetAutoRenewPeriod() *time.Duration {
	return u.autoRenewPeriod
}

// SetContractMemo sets the new memo of the contract. An empty memo clears the
// memo of the contract.
func (u *Update) SetContractMemo(memo string) *Update {
	u.contractMemo = &memo
	return u
}

// GetContractMemo returns the new memo, or nil.
func (u *Update) GetContractMemo() *string {
	return u.contractMemo
}

// SetMaxAutomaticTokenAssociations sets the new maximum number of tokens the
// contract is automatically associated with.
func (u *Update) SetMaxAutomaticTokenAssociations(max uint32) *Update {
	u.maxAutomaticTokenAssociations = &max
	return u
}

// GetMaxAutomaticTokenAssociations returns the new maximum number of
// automatic associations, or nil.
func (u *Update) GetMaxAutomaticTokenAssociations() *uint32 {
	return u.maxAutomaticTokenAssociations
}

// SetAutoRenewAccountID sets the account that pays for the renewal of the
// contract.
func (u *Update) SetAutoRenewAccountID(id entity.AccountID) *Update {
	u.autoRenewAccountID = &id
	return u
}

// GetAutoRenewAccountID returns the auto-renew account, or nil.
func (u *Update) GetAutoRenewAccountID() *entity.AccountID {
	return u.autoRenewAccountID
}

// SetStakedAccountID sets the account the contract is staked to. It is
// ignored on the wire when a staked node is set.
func (u *Update) SetStakedAccountID(id entity.AccountID) *Update {
	u.stakedAccountID = &id
	return u
}

// GetStakedAccountID returns the staked account, or nil.
func (u *Update) GetStakedAccountID() *entity.AccountID {
	return u.stakedAccountID
}

// SetStakedNodeID sets the node the contract is staked to.
func (u *Update) SetStakedNodeID(id uint64) *Update {
	u.stakedNodeID = &id
	return u
}

// GetStakedNodeID returns the staked node, or nil.
func (u *Update) GetStakedNodeID() *uint64 {
	return u.stakedNodeID
}

// SetDeclineStakingReward sets whether the contract declines the staking
// rewards.
func (u *Update) SetDeclineStakingReward(decline bool) *Update {
	u.declineStakingReward = &decline
	return u
}

// GetDeclineStakingReward returns whether the rewards are declined, or nil.
func (u *Update) GetDeclineStakingReward() *bool {
	return u.declineStakingReward
}

// ToProtobuf returns the wire message of the update. The deprecated proxy
// account and file are never set.
func (u *Update) ToProtobuf() *hapi.ContractUpdateTransactionBody {
	pb := &hapi.ContractUpdateTransactionBody{}

	if u.contractID != nil {
		pb.ContractID = u.contractID.ToProtobuf()
	}

	if u.expirationTime != nil {
		pb.ExpirationTime = hapi.NewTimestamp(*u.expirationTime)
	}

	if u.adminKey != nil {
		pb.AdminKey = u.adminKey.ToProtobuf()
	}

	if u.autoRenewPeriod != nil {
		pb.AutoRenewPeriod = hapi.NewDuration(*u.autoRenewPeriod)
	}

	if u.contractMemo != nil {
		pb.MemoField = &hapi.ContractUpdateTransactionBody_MemoWrapper{
			MemoWrapper: wrapperspb.String(*u.contractMemo),
		}
	}

	if u.maxAutomaticTokenAssociations != nil {
		pb.MaxAutomaticTokenAssociations = wrapperspb.Int32(int32(*u.maxAutomaticTokenAssociations))
	}

	if u.autoRenewAccountID != nil {
		pb.AutoRenewAccountID = u.autoRenewAccountID.ToProtobuf()
	}

	switch {
	case u.stakedNodeID != nil:
		pb.StakedID = &hapi.ContractUpdateTransactionBody_StakedNodeID{
			StakedNodeID: int64(*u.stakedNodeID),
		}
	case u.stakedAccountID != nil:
		pb.StakedID = &hapi.ContractUpdateTransactionBody_StakedAccountID{
			StakedAccountID: u.stakedAccountID.ToProtobuf(),
		}
	}

	if u.declineStakingReward != nil {
		pb.DeclineReward = wrapperspb.Bool(*u.declineStakingReward)
	}

	return pb
}

// ToTransactionBodyData implements transaction.Data.
func (u *Update) ToTransactionBodyData() hapi.TransactionBodyData {
	return &hapi.TransactionBody_ContractUpdateInstance{ContractUpdateInstance: u.ToProtobuf()}
}

// UpdateFromProtobuf returns the update of the wire message. Both the
// deprecated memo and the memo wrapper populate the memo of the contract.
func UpdateFromProtobuf(pb *hapi.ContractUpdateTransactionBody) (*Update, error) {
	u := NewUpdate()

	if pb == nil {
		return u, nil
	}

	if pb.ContractID != nil {
		u.SetContractID(entity.ContractIDFromProtobuf(pb.ContractID))
	}

	if pb.ExpirationTime != nil {
		u.SetExpirationTime(pb.ExpirationTime.AsTime())
	}

	if pb.AdminKey != nil {
		key, err := crypto.KeyFromProtobuf(pb.AdminKey)
		if err != nil {
			return nil, xerrors.Errorf("invalid admin key: %v", err)
		}

		u.SetAdminKey(key)
	}

	if pb.AutoRenewPeriod != nil {
		u.SetAutoRenewPeriod(pb.AutoRenewPeriod.AsDuration())
	}

	switch memo := pb.MemoField.(type) {
	case *hapi.ContractUpdateTransactionBody_Memo:
		u.SetContractMemo(memo.Memo)
	case *hapi.ContractUpdateTransactionBody_MemoWrapper:
		u.SetContractMemo(memo.MemoWrapper.GetValue())
	}

	if pb.MaxAutomaticTokenAssociations != nil {
		u.SetMaxAutomaticTokenAssociations(uint32(pb.MaxAutomaticTokenAssociations.GetValue()))
	}

	if pb.AutoRenewAccountID != nil {
		u.SetAutoRenewAccountID(entity.AccountIDFromProtobuf(pb.AutoRenewAccountID))
	}

	switch staked := pb.StakedID.(type) {
	case *hapi.ContractUpdateTransactionBody_StakedAccountID:
		u.SetStakedAccountID(entity.AccountIDFromProtobuf(staked.StakedAccountID))
	case *hapi.ContractUpdateTransactionBody_StakedNodeID:
		u.SetStakedNodeID(uint64(staked.StakedNodeID))
	}

	if pb.DeclineReward != nil {
		u.SetDeclineStakingReward(pb.DeclineReward.GetValue())
	}

	return u, nil
}

func decodeUpdate(data hapi.TransactionBodyData) (transaction.Data, error) {
	body := data.(*hapi.TransactionBody_ContractUpdateInstance)

	return UpdateFromProtobuf(body.ContractUpdateInstance)
}

// ValidateChecksums implements transaction.Data. It validates the contract,
// the auto-renew account and the staked account.
func (u *Update) ValidateChecksums(id ledger.ID) error {
	if u.contractID != nil {
		err := u.contractID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("contract id: %w", err)
		}
	}

	if u.autoRenewAccountID != nil {
		err := u.autoRenewAccountID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("auto-renew account id: %w", err)
		}
	}

	if u.stakedAccountID != nil {
		err := u.stakedAccountID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("staked account id: %w", err)
		}
	}

	return nil
}

// Execute implements transaction.Data. It submits the transaction to the
// smart contract service.
func (u *Update) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	tx *hapi.Transaction) (*hapi.TransactionResponse, error) {

	return hapi.NewSmartContractServiceClient(conn).UpdateContract(ctx, tx)
}

// Serialize implements serde.Message.
func (u *Update) Serialize(ctx serde.Context) ([]byte, error) {
	format := updateFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, u)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode contract update: %v", err)
	}

	return data, nil
}

// updateFactory is the factory to deserialize contract updates.
//
// - implements serde.Factory
type updateFactory struct{}

// NewUpdateFactory returns a new instance of the contract update factory.
func NewUpdateFactory() serde.Factory {
	return updateFactory{}
}

// Deserialize implements serde.Factory.
func (f updateFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := updateFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode contract update: %v", err)
	}

	return msg, nil
}
