package json

import (
	"encoding/json"
	"time"

	"go.dedis.ch/hedera/crypto"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/token"
	"golang.org/x/xerrors"
)

const (
	fixedFeeType      = "fixed"
	fractionalFeeType = "fractional"
	royaltyFeeType    = "royalty"
)

func init() {
	token.RegisterCreateFormat(serde.FormatJSON, createFormat{})
	token.RegisterNftInfoQueryFormat(serde.FormatJSON, nftInfoQueryFormat{})
	token.RegisterNftInfoFormat(serde.FormatJSON, nftInfoFormat{})
}

// CreateJSON is the JSON message of a token creation.
type CreateJSON struct {
	Type               string            `json:"$type"`
	Name               string            `json:"name,omitempty"`
	Symbol             string            `json:"symbol,omitempty"`
	Decimals           uint32            `json:"decimals,omitempty"`
	InitialSupply      uint64            `json:"initialSupply,omitempty"`
	TreasuryAccountID  *entity.AccountID `json:"treasuryAccountId,omitempty"`
	AdminKey           json.RawMessage   `json:"adminKey,omitempty"`
	KycKey             json.RawMessage   `json:"kycKey,omitempty"`
	FreezeKey          json.RawMessage   `json:"freezeKey,omitempty"`
	WipeKey            json.RawMessage   `json:"wipeKey,omitempty"`
	SupplyKey          json.RawMessage   `json:"supplyKey,omitempty"`
	FeeScheduleKey     json.RawMessage   `json:"feeScheduleKey,omitempty"`
	PauseKey           json.RawMessage   `json:"pauseKey,omitempty"`
	FreezeDefault      bool              `json:"freezeDefault,omitempty"`
	ExpirationTime     *int64            `json:"expirationTime,omitempty"`
	AutoRenewAccountID *entity.AccountID `json:"autoRenewAccountId,omitempty"`
	AutoRenewPeriod    *int64            `json:"autoRenewPeriod,omitempty"`
	TokenMemo          string            `json:"tokenMemo,omitempty"`
	TokenType          token.Type        `json:"tokenType"`
	SupplyType         token.SupplyType  `json:"tokenSupplyType"`
	MaxSupply          int64             `json:"maxSupply,omitempty"`
	CustomFees         []CustomFeeJSON   `json:"customFees,omitempty"`
}

// CustomFeeJSON is the JSON message of a custom fee. The type tells which of
// the fields are relevant.
type CustomFeeJSON struct {
	Type                   string            `json:"$type"`
	FeeCollectorAccountID  *entity.AccountID `json:"feeCollectorAccountId,omitempty"`
	AllCollectorsAreExempt bool              `json:"allCollectorsAreExempt,omitempty"`
	Amount                 int64             `json:"amount,omitempty"`
	DenominatingTokenID    *entity.TokenID   `json:"denominatingTokenId,omitempty"`
	Numerator              int64             `json:"numerator,omitempty"`
	Denominator            int64             `json:"denominator,omitempty"`
	MinimumAmount          int64             `json:"minimumAmount,omitempty"`
	MaximumAmount          int64             `json:"maximumAmount,omitempty"`
	NetOfTransfers         bool              `json:"netOfTransfers,omitempty"`
	FallbackFee            *CustomFeeJSON    `json:"fallbackFee,omitempty"`
}

// NftInfoQueryJSON is the JSON message of a query of the information of a
// non-fungible token.
type NftInfoQueryJSON struct {
	Type  string        `json:"$type"`
	NftID *entity.NftID `json:"nftId,omitempty"`
}

// NftInfoJSON is the JSON message of the information of a non-fungible token.
type NftInfoJSON struct {
	NftID        entity.NftID      `json:"nftId"`
	AccountID    entity.AccountID  `json:"accountId"`
	CreationTime *int64            `json:"creationTime,omitempty"`
	Metadata     []byte            `json:"metadata,omitempty"`
	LedgerID     ledger.ID         `json:"ledgerId,omitempty"`
	SpenderID    *entity.AccountID `json:"spenderId,omitempty"`
}

// keyField binds a key of the token creation to its JSON field.
type keyField struct {
	name string
	raw  *json.RawMessage
	get  func() crypto.Key
	set  func(crypto.Key) *token.Create
}

func keyFields(c *token.Create, m *CreateJSON) []keyField {
	return []keyField{
		{"admin", &m.AdminKey, c.GetAdminKey, c.SetAdminKey},
		{"kyc", &m.KycKey, c.GetKycKey, c.SetKycKey},
		{"freeze", &m.FreezeKey, c.GetFreezeKey, c.SetFreezeKey},
		{"wipe", &m.WipeKey, c.GetWipeKey, c.SetWipeKey},
		{"supply", &m.SupplyKey, c.GetSupplyKey, c.SetSupplyKey},
		{"fee schedule", &m.FeeScheduleKey, c.GetFeeScheduleKey, c.SetFeeScheduleKey},
		{"pause", &m.PauseKey, c.GetPauseKey, c.SetPauseKey},
	}
}

// createFormat is the engine to encode and decode token creations in JSON
// format.
//
// - implements serde.FormatEngine
type createFormat struct{}

// Encode implements serde.FormatEngine.
func (f createFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	c, ok := msg.(*token.Create)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := CreateJSON{
		Type:               token.CreateType,
		Name:               c.GetTokenName(),
		Symbol:             c.GetTokenSymbol(),
		Decimals:           c.GetDecimals(),
		InitialSupply:      c.GetInitialSupply(),
		TreasuryAccountID:  c.GetTreasuryAccountID(),
		FreezeDefault:      c.GetFreezeDefault(),
		AutoRenewAccountID: c.GetAutoRenewAccountID(),
		TokenMemo:          c.GetTokenMemo(),
		TokenType:          c.GetTokenType(),
		SupplyType:         c.GetSupplyType(),
		MaxSupply:          c.GetMaxSupply(),
	}

	for _, field := range keyFields(c, &m) {
		key := field.get()
		if key == nil {
			continue
		}

		data, err := key.Serialize(ctx)
		if err != nil {
			return nil, xerrors.Errorf("couldn't serialize %s key: %v", field.name, err)
		}

		*field.raw = data
	}

	if c.GetExpirationTime() != nil {
		ns := c.GetExpirationTime().UnixNano()
		m.ExpirationTime = &ns
	}

	if c.GetAutoRenewPeriod() != nil {
		secs := int64(*c.GetAutoRenewPeriod() / time.Second)
		m.AutoRenewPeriod = &secs
	}

	for _, fee := range c.GetCustomFees() {
		feeJSON, err := encodeFee(fee)
		if err != nil {
			return nil, err
		}

		m.CustomFees = append(m.CustomFees, feeJSON)
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. The expiration time clears the
// default auto-renew period unless the message also has one.
func (f createFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := CreateJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal token create: %v", err)
	}

	c := token.NewCreate().
		SetTokenName(m.Name).
		SetTokenSymbol(m.Symbol).
		SetDecimals(m.Decimals).
		SetInitialSupply(m.InitialSupply).
		SetFreezeDefault(m.FreezeDefault).
		SetTokenMemo(m.TokenMemo).
		SetTokenType(m.TokenType).
		SetSupplyType(m.SupplyType).
		SetMaxSupply(m.MaxSupply)

	if m.TreasuryAccountID != nil {
		c.SetTreasuryAccountID(*m.TreasuryAccountID)
	}

	for _, field := range keyFields(c, &m) {
		if len(*field.raw) == 0 {
			continue
		}

		key, err := crypto.KeyOf(ctx, *field.raw)
		if err != nil {
			return nil, xerrors.Errorf("couldn't deserialize %s key: %v", field.name, err)
		}

		field.set(key)
	}

	if m.ExpirationTime != nil {
		c.SetExpirationTime(time.Unix(0, *m.ExpirationTime))
	}

	if m.AutoRenewAccountID != nil {
		c.SetAutoRenewAccountID(*m.AutoRenewAccountID)
	}

	if m.AutoRenewPeriod != nil {
		c.SetAutoRenewPeriod(time.Duration(*m.AutoRenewPeriod) * time.Second)
	}

	var fees []token.CustomFee
	for i, feeJSON := range m.CustomFees {
		fee, err := decodeFee(feeJSON)
		if err != nil {
			return nil, xerrors.Errorf("custom fee %d: %v", i, err)
		}

		fees = append(fees, fee)
	}

	c.SetCustomFees(fees...)

	return c, nil
}

func encodeFee(fee token.CustomFee) (CustomFeeJSON, error) {
	switch v := fee.(type) {
	case token.FixedFee:
		return encodeFixedFee(v), nil
	case token.FractionalFee:
		return CustomFeeJSON{
			Type:                   fractionalFeeType,
			FeeCollectorAccountID:  v.FeeCollectorAccountID,
			AllCollectorsAreExempt: v.AllCollectorsAreExempt,
			Numerator:              v.Numerator,
			Denominator:            v.Denominator,
			MinimumAmount:          v.MinimumAmount,
			MaximumAmount:          v.MaximumAmount,
			NetOfTransfers:         v.NetOfTransfers,
		}, nil
	case token.RoyaltyFee:
		m := CustomFeeJSON{
			Type:                   royaltyFeeType,
			FeeCollectorAccountID:  v.FeeCollectorAccountID,
			AllCollectorsAreExempt: v.AllCollectorsAreExempt,
			Numerator:              v.Numerator,
			Denominator:            v.Denominator,
		}

		if v.FallbackFee != nil {
			fallback := encodeFixedFee(*v.FallbackFee)
			m.FallbackFee = &fallback
		}

		return m, nil
	default:
		return CustomFeeJSON{}, xerrors.Errorf("unsupported custom fee of type '%T'", fee)
	}
}

func encodeFixedFee(fee token.FixedFee) CustomFeeJSON {
	return CustomFeeJSON{
		Type:                   fixedFeeType,
		FeeCollectorAccountID:  fee.FeeCollectorAccountID,
		AllCollectorsAreExempt: fee.AllCollectorsAreExempt,
		Amount:                 fee.Amount,
		DenominatingTokenID:    fee.DenominatingTokenID,
	}
}

func decodeFee(m CustomFeeJSON) (token.CustomFee, error) {
	collector := token.FeeCollector{
		FeeCollectorAccountID:  m.FeeCollectorAccountID,
		AllCollectorsAreExempt: m.AllCollectorsAreExempt,
	}

	switch m.Type {
	case fixedFeeType:
		return decodeFixedFee(m), nil
	case fractionalFeeType:
		return token.FractionalFee{
			FeeCollector:   collector,
			Numerator:      m.Numerator,
			Denominator:    m.Denominator,
			MinimumAmount:  m.MinimumAmount,
			MaximumAmount:  m.MaximumAmount,
			NetOfTransfers: m.NetOfTransfers,
		}, nil
	case royaltyFeeType:
		fee := token.RoyaltyFee{
			FeeCollector: collector,
			Numerator:    m.Numerator,
			Denominator:  m.Denominator,
		}

		if m.FallbackFee != nil {
			fallback := decodeFixedFee(*m.FallbackFee)
			fee.FallbackFee = &fallback
		}

		return fee, nil
	default:
		return nil, xerrors.Errorf("unknown fee type '%s'", m.Type)
	}
}

func decodeFixedFee(m CustomFeeJSON) token.FixedFee {
	return token.FixedFee{
		FeeCollector: token.FeeCollector{
			FeeCollectorAccountID:  m.FeeCollectorAccountID,
			AllCollectorsAreExempt: m.AllCollectorsAreExempt,
		},
		Amount:              m.Amount,
		DenominatingTokenID: m.DenominatingTokenID,
	}
}

// nftInfoQueryFormat is the engine to encode and decode queries of the
// information of non-fungible tokens in JSON format.
//
// - implements serde.FormatEngine
type nftInfoQueryFormat struct{}

// Encode implements serde.FormatEngine.
func (f nftInfoQueryFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	q, ok := msg.(*token.NftInfoQuery)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := NftInfoQueryJSON{
		Type:  token.NftInfoQueryType,
		NftID: q.GetNftID(),
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine.
func (f nftInfoQueryFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := NftInfoQueryJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal nft info query: %v", err)
	}

	q := token.NewNftInfoQuery()

	if m.NftID != nil {
		q.SetNftID(*m.NftID)
	}

	return q, nil
}

// nftInfoFormat is the engine to encode and decode the information of
// non-fungible tokens in JSON format.
//
// - implements serde.FormatEngine
type nftInfoFormat struct{}

// Encode implements serde.FormatEngine.
func (f nftInfoFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	info, ok := msg.(token.NftInfo)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := NftInfoJSON{
		NftID:     info.NftID,
		AccountID: info.AccountID,
		Metadata:  info.Metadata,
		LedgerID:  info.LedgerID,
		SpenderID: info.SpenderID,
	}

	if !info.CreationTime.IsZero() {
		ns := info.CreationTime.UnixNano()
		m.CreationTime = &ns
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine.
func (f nftInfoFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := NftInfoJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal nft info: %v", err)
	}

	info := token.NftInfo{
		NftID:     m.NftID,
		AccountID: m.AccountID,
		Metadata:  m.Metadata,
		LedgerID:  m.LedgerID,
		SpenderID: m.SpenderID,
	}

	if m.CreationTime != nil {
		info.CreationTime = time.Unix(0, *m.CreationTime).UTC()
	}

	return info, nil
}
