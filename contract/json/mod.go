package json

import (
	"encoding/json"
	"time"

	"go.dedis.ch/hedera/contract"
	"go.dedis.ch/hedera/crypto"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/serde"
	"golang.org/x/xerrors"
)

func init() {
	contract.RegisterUpdateFormat(serde.FormatJSON, updateFormat{})
}

// UpdateJSON is the JSON message of a contract update.
type UpdateJSON struct {
	Type                          string             `json:"$type"`
	ContractID                    *entity.ContractID `json:"contractId,omitempty"`
	ExpirationTime                *int64             `json:"expiresAt,omitempty"`
	AdminKey                      json.RawMessage    `json:"adminKey,omitempty"`
	AutoRenewPeriod               *int64             `json:"autoRenewPeriod,omitempty"`
	ContractMemo                  *string            `json:"contractMemo,omitempty"`
	MaxAutomaticTokenAssociations *uint32            `json:"maxAutomaticTokenAssociations,omitempty"`
	AutoRenewAccountID            *entity.AccountID  `json:"autoRenewAccountId,omitempty"`
	StakedAccountID               *entity.AccountID  `json:"stakedAccountId,omitempty"`
	StakedNodeID                  *uint64            `json:"stakedNodeId,omitempty"`
	DeclineStakingReward          *bool              `json:"declineStakingReward,omitempty"`
}

// updateFormat is the engine to encode and decode contract updates in JSON
// format.
//
// - implements serde.FormatEngine
type updateFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the update.
func (f updateFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	u, ok := msg.(*contract.Update)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := UpdateJSON{
		Type:                          contract.UpdateType,
		ContractID:                    u.GetContractID(),
		ContractMemo:                  u.GetContractMemo(),
		MaxAutomaticTokenAssociations: u.GetMaxAutomaticTokenAssociations(),
		AutoRenewAccountID:            u.GetAutoRenewAccountID(),
		StakedAccountID:               u.GetStakedAccountID(),
		StakedNodeID:                  u.GetStakedNodeID(),
		DeclineStakingReward:          u.GetDeclineStakingReward(),
	}

	if u.GetExpirationTime() != nil {
		ns := u.GetExpirationTime().UnixNano()
		m.ExpirationTime = &ns
	}

	if u.GetAutoRenewPeriod() != nil {
		secs := int64(*u.GetAutoRenewPeriod() / time.Second)
		m.AutoRenewPeriod = &secs
	}

	if u.GetAdminKey() != nil {
		key, err := u.GetAdminKey().Serialize(ctx)
		if err != nil {
			return nil, xerrors.Errorf("couldn't serialize admin key: %v", err)
		}

		m.AdminKey = key
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the update of the data.
func (f updateFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := UpdateJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal contract update: %v", err)
	}

	u := contract.NewUpdate()

	if m.ContractID != nil {
		u.SetContractID(*m.ContractID)
	}

	if m.ExpirationTime != nil {
		u.SetExpirationTime(time.Unix(0, *m.ExpirationTime))
	}

	if len(m.AdminKey) > 0 {
		key, err := crypto.KeyOf(ctx, m.AdminKey)
		if err != nil {
			return nil, xerrors.Errorf("couldn't deserialize admin key: %v", err)
		}

		u.SetAdminKey(key)
	}

	if m.AutoRenewPeriod != nil {
		u.SetAutoRenewPeriod(time.Duration(*m.AutoRenewPeriod) * time.Second)
	}

	if m.ContractMemo != nil {
		u.SetContractMemo(*m.ContractMemo)
	}

	if m.MaxAutomaticTokenAssociations != nil {
		u.SetMaxAutomaticTokenAssociations(*m.MaxAutomaticTokenAssociations)
	}

	if m.AutoRenewAccountID != nil {
		u.SetAutoRenewAccountID(*m.AutoRenewAccountID)
	}

	if m.StakedAccountID != nil {
		u.SetStakedAccountID(*m.StakedAccountID)
	}

	if m.StakedNodeID != nil {
		u.SetStakedNodeID(*m.StakedNodeID)
	}

	if m.DeclineStakingReward != nil {
		u.SetDeclineStakingReward(*m.DeclineStakingReward)
	}

	return u, nil
}
