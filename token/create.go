package token

import (
	"context"
	"time"

	"go.dedis.ch/hedera/crypto"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

const (
	// DefaultAutoRenewPeriod is the auto-renew period of a new token.
	DefaultAutoRenewPeriod = 90 * 24 * time.Hour

	// DefaultMaxTransactionFee is the maximum fee of a token creation when
	// the transaction does not set one.
	DefaultMaxTransactionFee = 40 * transaction.Hbar
)

func init() {
	transaction.RegisterDecoder(&hapi.TransactionBody_TokenCreation{}, decodeCreate)
	transaction.RegisterDataFactory(CreateType, NewCreateFactory())
}

// Create is the data of a transaction that creates a token.
//
// - implements transaction.Data
// - implements transaction.FeeDefaulter
type Create struct {
	name               string
	symbol             string
	decimals           uint32
	initialSupply      uint64
	treasuryAccountID  *entity.AccountID
	adminKey           crypto.Key
	kycKey             crypto.Key
	freezeKey          crypto.Key
	wipeKey            crypto.Key
	supplyKey          crypto.Key
	feeScheduleKey     crypto.Key
	pauseKey           crypto.Key
	freezeDefault      bool
	expirationTime     *time.Time
	autoRenewAccountID *entity.AccountID
	autoRenewPeriod    *time.Duration
	tokenMemo          string
	tokenType          Type
	supplyType         SupplyType
	maxSupply          int64
	customFees         []CustomFee
}

// NewCreate returns a token creation with the default auto-renew period, of
// a fungible token with an infinite supply.
func NewCreate() *Create {
	period := DefaultAutoRenewPeriod

	return &Create{
		autoRenewPeriod: &period,
		tokenType:       FungibleCommon,
		supplyType:      Infinite,
	}
}

// SetTokenName sets the name of the token.
func (c *Create) SetTokenName(name string) *Create {
	c.name = name
	return c
}

// GetTokenName returns the name of the token.
func (c *Create) GetTokenName() string {
	return c.name
}

// SetTokenSymbol sets the symbol of the token.
func (c *Create) SetTokenSymbol(symbol string) *Create {
	c.symbol = symbol
	return c
}

// GetTokenSymbol returns the symbol of the token.
func (c *Create) GetTokenSymbol() string {
	return c.symbol
}

// SetDecimals sets the number of decimal places of a unit.
func (c *Create) SetDecimals(decimals uint32) *Create {
	c.decimals = decimals
	return c
}

// GetDecimals returns the number of decimal places of a unit.
func (c *Create) GetDecimals() uint32 {
	return c.decimals
}

// SetInitialSupply sets the number of units given to the treasury.
func (c *Create) SetInitialSupply(supply uint64) *Create {
	c.initialSupply = supply
	return c
}

// GetInitialSupply returns the number of units given to the treasury.
func (c *Create) GetInitialSupply() uint64 {
	return c.initialSupply
}

// SetTreasuryAccountID sets the account that receives the initial supply.
func (c *Create) SetTreasuryAccountID(id entity.AccountID) *Create {
	c.treasuryAccountID = &id
	return c
}

// GetTreasuryAccountID returns the treasury account, or nil.
func (c *Create) GetTreasuryAccountID() *entity.AccountID {
	return c.treasuryAccountID
}

// SetAdminKey sets the key that can update or delete the token.
func (c *Create) SetAdminKey(key crypto.Key) *Create {
	c.adminKey = key
	return c
}

// GetAdminKey returns the admin key, or nil.
func (c *Create) GetAdminKey() crypto.Key {
	return c.adminKey
}

// SetKycKey sets the key that grants KYC to accounts.
func (c *Create) SetKycKey(key crypto.Key) *Create {
	c.kycKey = key
	return c
}

// GetKycKey returns the KYC key, or nil.
func (c *Create) GetKycKey() crypto.Key {
	return c.kycKey
}

// SetFreezeKey sets the key that freezes accounts.
func (c *Create) SetFreezeKey(key crypto.Key) *Create {
	c.freezeKey = key
	return c
}

// GetFreezeKey returns the freeze key, or nil.
func (c *Create) GetFreezeKey() crypto.Key {
	return c.freezeKey
}

// SetWipeKey sets the key that wipes the balance of accounts.
func (c *Create) SetWipeKey(key crypto.Key) *Create {
	c.wipeKey = key
	return c
}

// GetWipeKey returns the wipe key, or nil.
func (c *Create) GetWipeKey() crypto.Key {
	return c.wipeKey
}

// SetSupplyKey sets the key that mints and burns units.
func (c *Create) SetSupplyKey(key crypto.Key) *Create {
	c.supplyKey = key
	return c
}

// GetSupplyKey returns the supply key, or nil.
func (c *Create) GetSupplyKey() crypto.Key {
	return c.supplyKey
}

// SetFeeScheduleKey sets the key that changes the custom fees.
func (c *Create) SetFeeScheduleKey(key crypto.Key) *Create {
	c.feeScheduleKey = key
	return c
}

// GetFeeScheduleKey returns the fee schedule key, or nil.
func (c *Create) GetFeeScheduleKey() crypto.Key {
	return c.feeScheduleKey
}

// SetPauseKey sets the key that pauses the token.
func (c *Create) SetPauseKey(key crypto.Key) *Create {
	c.pauseKey = key
	return c
}

// GetPauseKey returns the pause key, or nil.
func (c *Create) GetPauseKey() crypto.Key {
	return c.pauseKey
}

// SetFreezeDefault sets whether accounts are frozen when they are associated
// with the token.
func (c *Create) SetFreezeDefault(freeze bool) *Create {
	c.freezeDefault = freeze
	return c
}

// GetFreezeDefault returns whether accounts are frozen by default.
func (c *Create) GetFreezeDefault() bool {
	return c.freezeDefault
}

// SetExpirationTime sets the expiration time of the token and clears the
// auto-renew period.
func (c *Create) SetExpirationTime(t time.Time) *Create {
	t = t.UTC()
	c.expirationTime = &t
	c.autoRenewPeriod = nil
	return c
}

// GetExpirationTime returns the expiration time, or nil.
func (c *Create) GetExpirationTime() *time.Time {
	return c.expirationTime
}

// SetAutoRenewAccountID sets the account charged for the renewals.
func (c *Create) SetAutoRenewAccountID(id entity.AccountID) *Create {
	c.autoRenewAccountID = &id
	return c
}

// GetAutoRenewAccountID returns the auto-renew account, or nil.
func (c *Create) GetAutoRenewAccountID() *entity.AccountID {
	return c.autoRenewAccountID
}

// SetAutoRenewPeriod sets the interval between two renewals.
func (c *Create) SetAutoRenewPeriod(d time.Duration) *Create {
	c.autoRenewPeriod = &d
	return c
}

// GetAutoRenewPeriod returns the auto-renew period, or nil.
func (c *Create) GetAutoRenewPeriod() *time.Duration {
	return c.autoRenewPeriod
}

// SetTokenMemo sets the memo of the token.
func (c *Create) SetTokenMemo(memo string) *Create {
	c.tokenMemo = memo
	return c
}

// GetTokenMemo returns the memo of the token.
func (c *Create) GetTokenMemo() string {
	return c.tokenMemo
}

// SetTokenType sets the type of the token.
func (c *Create) SetTokenType(t Type) *Create {
	c.tokenType = t
	return c
}

// GetTokenType returns the type of the token.
func (c *Create) GetTokenType() Type {
	return c.tokenType
}

// SetSupplyType sets the supply type of the token.
func (c *Create) SetSupplyType(t SupplyType) *Create {
	c.supplyType = t
	return c
}

// GetSupplyType returns the supply type of the token.
func (c *Create) GetSupplyType() SupplyType {
	return c.supplyType
}

// SetMaxSupply sets the maximum number of units of a token with a finite
// supply.
func (c *Create) SetMaxSupply(max int64) *Create {
	c.maxSupply = max
	return c
}

// GetMaxSupply returns the maximum number of units.
func (c *Create) GetMaxSupply() int64 {
	return c.maxSupply
}

// SetCustomFees sets the fees charged to the transfers of the token.
func (c *Create) SetCustomFees(fees ...CustomFee) *Create {
	c.customFees = fees
	return c
}

// GetCustomFees returns the custom fees.
func (c *Create) GetCustomFees() []CustomFee {
	return c.customFees
}

// DefaultMaxTransactionFee implements transaction.FeeDefaulter.
func (c *Create) DefaultMaxTransactionFee() uint64 {
	return DefaultMaxTransactionFee
}

// ToProtobuf returns the wire message of the token creation.
func (c *Create) ToProtobuf() *hapi.TokenCreateTransactionBody {
	pb := &hapi.TokenCreateTransactionBody{
		Name:           c.name,
		Symbol:         c.symbol,
		Decimals:       c.decimals,
		InitialSupply:  c.initialSupply,
		AdminKey:       keyToProtobuf(c.adminKey),
		KycKey:         keyToProtobuf(c.kycKey),
		FreezeKey:      keyToProtobuf(c.freezeKey),
		WipeKey:        keyToProtobuf(c.wipeKey),
		SupplyKey:      keyToProtobuf(c.supplyKey),
		FreezeDefault:  c.freezeDefault,
		Memo:           c.tokenMemo,
		TokenType:      c.tokenType.ToProtobuf(),
		SupplyType:     c.supplyType.ToProtobuf(),
		MaxSupply:      c.maxSupply,
		FeeScheduleKey: keyToProtobuf(c.feeScheduleKey),
		PauseKey:       keyToProtobuf(c.pauseKey),
	}

	if c.treasuryAccountID != nil {
		pb.Treasury = c.treasuryAccountID.ToProtobuf()
	}

	if c.expirationTime != nil {
		pb.Expiry = hapi.NewTimestamp(*c.expirationTime)
	}

	if c.autoRenewAccountID != nil {
		pb.AutoRenewAccount = c.autoRenewAccountID.ToProtobuf()
	}

	if c.autoRenewPeriod != nil {
		pb.AutoRenewPeriod = hapi.NewDuration(*c.autoRenewPeriod)
	}

	for _, fee := range c.customFees {
		pb.CustomFees = append(pb.CustomFees, fee.ToProtobuf())
	}

	return pb
}

// ToTransactionBodyData implements transaction.Data.
func (c *Create) ToTransactionBodyData() hapi.TransactionBodyData {
	return &hapi.TransactionBody_TokenCreation{TokenCreation: c.ToProtobuf()}
}

// CreateFromProtobuf returns the token creation of the wire message. The
// auto-renew period is unset when the message does not carry one.
func CreateFromProtobuf(pb *hapi.TokenCreateTransactionBody) (*Create, error) {
	c := NewCreate()

	if pb == nil {
		return c, nil
	}

	c.name = pb.Name
	c.symbol = pb.Symbol
	c.decimals = pb.Decimals
	c.initialSupply = pb.InitialSupply
	c.freezeDefault = pb.FreezeDefault
	c.tokenMemo = pb.Memo
	c.tokenType = TypeFromProtobuf(pb.TokenType)
	c.supplyType = SupplyTypeFromProtobuf(pb.SupplyType)
	c.maxSupply = pb.MaxSupply

	keys := []struct {
		name string
		pb   *hapi.Key
		dst  *crypto.Key
	}{
		{"admin", pb.AdminKey, &c.adminKey},
		{"kyc", pb.KycKey, &c.kycKey},
		{"freeze", pb.FreezeKey, &c.freezeKey},
		{"wipe", pb.WipeKey, &c.wipeKey},
		{"supply", pb.SupplyKey, &c.supplyKey},
		{"fee schedule", pb.FeeScheduleKey, &c.feeScheduleKey},
		{"pause", pb.PauseKey, &c.pauseKey},
	}

	for _, k := range keys {
		if k.pb == nil {
			continue
		}

		key, err := crypto.KeyFromProtobuf(k.pb)
		if err != nil {
			return nil, xerrors.Errorf("invalid %s key: %v", k.name, err)
		}

		*k.dst = key
	}

	if pb.Treasury != nil {
		c.SetTreasuryAccountID(entity.AccountIDFromProtobuf(pb.Treasury))
	}

	if pb.Expiry != nil {
		t := pb.Expiry.AsTime()
		c.expirationTime = &t
	}

	if pb.AutoRenewAccount != nil {
		c.SetAutoRenewAccountID(entity.AccountIDFromProtobuf(pb.AutoRenewAccount))
	}

	c.autoRenewPeriod = nil
	if pb.AutoRenewPeriod != nil {
		c.SetAutoRenewPeriod(pb.AutoRenewPeriod.AsDuration())
	}

	for i, feepb := range pb.CustomFees {
		fee, err := CustomFeeFromProtobuf(feepb)
		if err != nil {
			return nil, xerrors.Errorf("custom fee %d: %v", i, err)
		}

		c.customFees = append(c.customFees, fee)
	}

	return c, nil
}

func decodeCreate(data hapi.TransactionBodyData) (transaction.Data, error) {
	body := data.(*hapi.TransactionBody_TokenCreation)

	return CreateFromProtobuf(body.TokenCreation)
}

// ValidateChecksums implements transaction.Data. It validates the treasury,
// the auto-renew account and the identifiers of the custom fees.
func (c *Create) ValidateChecksums(id ledger.ID) error {
	if c.treasuryAccountID != nil {
		err := c.treasuryAccountID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("treasury account id: %w", err)
		}
	}

	if c.autoRenewAccountID != nil {
		err := c.autoRenewAccountID.ValidateChecksum(id)
		if err != nil {
			return xerrors.Errorf("auto-renew account id: %w", err)
		}
	}

	for i, fee := range c.customFees {
		err := fee.ValidateChecksums(id)
		if err != nil {
			return xerrors.Errorf("custom fee %d: %w", i, err)
		}
	}

	return nil
}

// Execute implements transaction.Data. It submits the transaction to the
// token service.
func (c *Create) Execute(ctx context.Context, conn grpc.ClientConnInterface,
	tx *hapi.Transaction) (*hapi.TransactionResponse, error) {

	return hapi.NewTokenServiceClient(conn).CreateToken(ctx, tx)
}

// Serialize implements serde.Message.
func (c *Create) Serialize(ctx serde.Context) ([]byte, error) {
	format := createFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, c)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode token create: %v", err)
	}

	return data, nil
}

// createFactory is the factory to deserialize token creations.
//
// - implements serde.Factory
type createFactory struct{}

// NewCreateFactory returns a new instance of the token creation factory.
func NewCreateFactory() serde.Factory {
	return createFactory{}
}

// Deserialize implements serde.Factory.
func (f createFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := createFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode token create: %v", err)
	}

	return msg, nil
}

func keyToProtobuf(key crypto.Key) *hapi.Key {
	if key == nil {
		return nil
	}

	return key.ToProtobuf()
}
