package hapi

// TokenType is the kind of units of a token.
type TokenType int32

const (
	// TokenType_FUNGIBLE_COMMON is the type of interchangeable units.
	TokenType_FUNGIBLE_COMMON TokenType = 0
	// TokenType_NON_FUNGIBLE_UNIQUE is the type of unique units identified by
	// a serial number.
	TokenType_NON_FUNGIBLE_UNIQUE TokenType = 1
)

// TokenSupplyType tells whether the supply of a token is bounded.
type TokenSupplyType int32

const (
	// TokenSupplyType_INFINITE is the supply type without maximum.
	TokenSupplyType_INFINITE TokenSupplyType = 0
	// TokenSupplyType_FINITE is the supply type bounded by the max supply.
	TokenSupplyType_FINITE TokenSupplyType = 1
)

// TokenCreateTransactionBody creates a new token.
type TokenCreateTransactionBody struct {
	Name             string
	Symbol           string
	Decimals         uint32
	InitialSupply    uint64
	Treasury         *AccountID
	AdminKey         *Key
	KycKey           *Key
	FreezeKey        *Key
	WipeKey          *Key
	SupplyKey        *Key
	FreezeDefault    bool
	Expiry           *Timestamp
	AutoRenewAccount *AccountID
	AutoRenewPeriod  *Duration
	Memo             string
	TokenType        TokenType
	SupplyType       TokenSupplyType
	MaxSupply        int64
	FeeScheduleKey   *Key
	CustomFees       []*CustomFee
	PauseKey         *Key
}

// MarshalAppend implements hapi.Message.
func (m *TokenCreateTransactionBody) MarshalAppend(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Symbol)
	b = appendVarint(b, 3, uint64(m.Decimals))
	b = appendVarint(b, 4, m.InitialSupply)
	b = appendMessage(b, 5, m.Treasury)
	b = appendMessage(b, 6, m.AdminKey)
	b = appendMessage(b, 7, m.KycKey)
	b = appendMessage(b, 8, m.FreezeKey)
	b = appendMessage(b, 9, m.WipeKey)
	b = appendMessage(b, 10, m.SupplyKey)
	b = appendBool(b, 11, m.FreezeDefault)
	b = appendMessage(b, 13, m.Expiry)
	b = appendMessage(b, 14, m.AutoRenewAccount)
	b = appendMessage(b, 15, m.AutoRenewPeriod)
	b = appendString(b, 16, m.Memo)
	b = appendInt32(b, 17, int32(m.TokenType))
	b = appendInt32(b, 18, int32(m.SupplyType))
	b = appendInt64(b, 19, m.MaxSupply)
	b = appendMessage(b, 20, m.FeeScheduleKey)

	for _, fee := range m.CustomFees {
		b = appendTagBytes(b, 21, messageBytes(fee))
	}

	b = appendMessage(b, 22, m.PauseKey)

	return b
}

// Unmarshal implements hapi.Message.
func (m *TokenCreateTransactionBody) Unmarshal(data []byte) error {
	*m = TokenCreateTransactionBody{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Name = d.string()
		case 2:
			m.Symbol = d.string()
		case 3:
			m.Decimals = d.uint32()
		case 4:
			m.InitialSupply = d.varint()
		case 5:
			m.Treasury = new(AccountID)
			d.message(m.Treasury)
		case 6:
			m.AdminKey = new(Key)
			d.message(m.AdminKey)
		case 7:
			m.KycKey = new(Key)
			d.message(m.KycKey)
		case 8:
			m.FreezeKey = new(Key)
			d.message(m.FreezeKey)
		case 9:
			m.WipeKey = new(Key)
			d.message(m.WipeKey)
		case 10:
			m.SupplyKey = new(Key)
			d.message(m.SupplyKey)
		case 11:
			m.FreezeDefault = d.bool()
		case 13:
			m.Expiry = new(Timestamp)
			d.message(m.Expiry)
		case 14:
			m.AutoRenewAccount = new(AccountID)
			d.message(m.AutoRenewAccount)
		case 15:
			m.AutoRenewPeriod = new(Duration)
			d.message(m.AutoRenewPeriod)
		case 16:
			m.Memo = d.string()
		case 17:
			m.TokenType = TokenType(d.int32())
		case 18:
			m.SupplyType = TokenSupplyType(d.int32())
		case 19:
			m.MaxSupply = d.int64()
		case 20:
			m.FeeScheduleKey = new(Key)
			d.message(m.FeeScheduleKey)
		case 21:
			fee := new(CustomFee)
			d.message(fee)
			m.CustomFees = append(m.CustomFees, fee)
		case 22:
			m.PauseKey = new(Key)
			d.message(m.PauseKey)
		default:
			d.skip()
		}
	}

	return d.err
}

// CustomFee is a fee charged on the transfers of a token.
type CustomFee struct {
	Fee                    isCustomFee_Fee
	FeeCollectorAccountID  *AccountID
	AllCollectorsAreExempt bool
}

type isCustomFee_Fee interface {
	isCustomFee_Fee()
}

// CustomFee_FixedFee is the fixed member of the fee oneof.
type CustomFee_FixedFee struct {
	FixedFee *FixedFee
}

// CustomFee_FractionalFee is the fractional member of the fee oneof.
type CustomFee_FractionalFee struct {
	FractionalFee *FractionalFee
}

// CustomFee_RoyaltyFee is the royalty member of the fee oneof.
type CustomFee_RoyaltyFee struct {
	RoyaltyFee *RoyaltyFee
}

func (*CustomFee_FixedFee) isCustomFee_Fee() {}

func (*CustomFee_FractionalFee) isCustomFee_Fee() {}

func (*CustomFee_RoyaltyFee) isCustomFee_Fee() {}

// MarshalAppend implements hapi.Message.
func (m *CustomFee) MarshalAppend(b []byte) []byte {
	var royalty *RoyaltyFee

	switch v := m.Fee.(type) {
	case *CustomFee_FixedFee:
		b = appendTagBytes(b, 1, messageBytes(v.FixedFee))
	case *CustomFee_FractionalFee:
		b = appendTagBytes(b, 2, messageBytes(v.FractionalFee))
	case *CustomFee_RoyaltyFee:
		royalty = v.RoyaltyFee
	}

	b = appendMessage(b, 3, m.FeeCollectorAccountID)

	if royalty != nil {
		b = appendTagBytes(b, 4, messageBytes(royalty))
	}

	b = appendBool(b, 5, m.AllCollectorsAreExempt)

	return b
}

// Unmarshal implements hapi.Message.
func (m *CustomFee) Unmarshal(data []byte) error {
	*m = CustomFee{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			fee := new(FixedFee)
			d.message(fee)
			m.Fee = &CustomFee_FixedFee{FixedFee: fee}
		case 2:
			fee := new(FractionalFee)
			d.message(fee)
			m.Fee = &CustomFee_FractionalFee{FractionalFee: fee}
		case 3:
			m.FeeCollectorAccountID = new(AccountID)
			d.message(m.FeeCollectorAccountID)
		case 4:
			fee := new(RoyaltyFee)
			d.message(fee)
			m.Fee = &CustomFee_RoyaltyFee{RoyaltyFee: fee}
		case 5:
			m.AllCollectorsAreExempt = d.bool()
		default:
			d.skip()
		}
	}

	return d.err
}

// FixedFee is a fixed amount of hbars or of units of a token.
type FixedFee struct {
	Amount              int64
	DenominatingTokenID *TokenID
}

// MarshalAppend implements hapi.Message.
func (m *FixedFee) MarshalAppend(b []byte) []byte {
	b = appendInt64(b, 1, m.Amount)
	b = appendMessage(b, 2, m.DenominatingTokenID)
	return b
}

// Unmarshal implements hapi.Message.
func (m *FixedFee) Unmarshal(data []byte) error {
	*m = FixedFee{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Amount = d.int64()
		case 2:
			m.DenominatingTokenID = new(TokenID)
			d.message(m.DenominatingTokenID)
		default:
			d.skip()
		}
	}

	return d.err
}

// Fraction is a rational number.
type Fraction struct {
	Numerator   int64
	Denominator int64
}

// MarshalAppend implements hapi.Message.
func (m *Fraction) MarshalAppend(b []byte) []byte {
	b = appendInt64(b, 1, m.Numerator)
	b = appendInt64(b, 2, m.Denominator)
	return b
}

// Unmarshal implements hapi.Message.
func (m *Fraction) Unmarshal(data []byte) error {
	*m = Fraction{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Numerator = d.int64()
		case 2:
			m.Denominator = d.int64()
		default:
			d.skip()
		}
	}

	return d.err
}

// FractionalFee is a fraction of the transferred units, within bounds.
type FractionalFee struct {
	FractionalAmount *Fraction
	MinimumAmount    int64
	MaximumAmount    int64
	NetOfTransfers   bool
}

// MarshalAppend implements hapi.Message.
func (m *FractionalFee) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.FractionalAmount)
	b = appendInt64(b, 2, m.MinimumAmount)
	b = appendInt64(b, 3, m.MaximumAmount)
	b = appendBool(b, 4, m.NetOfTransfers)
	return b
}

// Unmarshal implements hapi.Message.
func (m *FractionalFee) Unmarshal(data []byte) error {
	*m = FractionalFee{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.FractionalAmount = new(Fraction)
			d.message(m.FractionalAmount)
		case 2:
			m.MinimumAmount = d.int64()
		case 3:
			m.MaximumAmount = d.int64()
		case 4:
			m.NetOfTransfers = d.bool()
		default:
			d.skip()
		}
	}

	return d.err
}

// RoyaltyFee is a fraction of the value exchanged for a non-fungible token,
// with a fallback when nothing is exchanged.
type RoyaltyFee struct {
	ExchangeValueFraction *Fraction
	FallbackFee           *FixedFee
}

// MarshalAppend implements hapi.Message.
func (m *RoyaltyFee) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.ExchangeValueFraction)
	b = appendMessage(b, 2, m.FallbackFee)
	return b
}

// Unmarshal implements hapi.Message.
func (m *RoyaltyFee) Unmarshal(data []byte) error {
	*m = RoyaltyFee{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.ExchangeValueFraction = new(Fraction)
			d.message(m.ExchangeValueFraction)
		case 2:
			m.FallbackFee = new(FixedFee)
			d.message(m.FallbackFee)
		default:
			d.skip()
		}
	}

	return d.err
}

// TokenGetNftInfoQuery requests the information of a non-fungible token.
type TokenGetNftInfoQuery struct {
	Header *QueryHeader
	NftID  *NftID
}

// MarshalAppend implements hapi.Message.
func (m *TokenGetNftInfoQuery) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.Header)
	b = appendMessage(b, 2, m.NftID)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TokenGetNftInfoQuery) Unmarshal(data []byte) error {
	*m = TokenGetNftInfoQuery{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Header = new(QueryHeader)
			d.message(m.Header)
		case 2:
			m.NftID = new(NftID)
			d.message(m.NftID)
		default:
			d.skip()
		}
	}

	return d.err
}

// TokenGetNftInfoResponse is the answer to a TokenGetNftInfoQuery.
type TokenGetNftInfoResponse struct {
	Header *ResponseHeader
	Nft    *TokenNftInfo
}

// MarshalAppend implements hapi.Message.
func (m *TokenGetNftInfoResponse) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.Header)
	b = appendMessage(b, 2, m.Nft)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TokenGetNftInfoResponse) Unmarshal(data []byte) error {
	*m = TokenGetNftInfoResponse{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Header = new(ResponseHeader)
			d.message(m.Header)
		case 2:
			m.Nft = new(TokenNftInfo)
			d.message(m.Nft)
		default:
			d.skip()
		}
	}

	return d.err
}

// TokenNftInfo is the state of a non-fungible token.
type TokenNftInfo struct {
	NftID        *NftID
	AccountID    *AccountID
	CreationTime *Timestamp
	Metadata     []byte
	LedgerID     []byte
	SpenderID    *AccountID
}

// MarshalAppend implements hapi.Message.
func (m *TokenNftInfo) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.NftID)
	b = appendMessage(b, 2, m.AccountID)
	b = appendMessage(b, 3, m.CreationTime)
	b = appendBytes(b, 4, m.Metadata)
	b = appendBytes(b, 5, m.LedgerID)
	b = appendMessage(b, 6, m.SpenderID)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TokenNftInfo) Unmarshal(data []byte) error {
	*m = TokenNftInfo{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.NftID = new(NftID)
			d.message(m.NftID)
		case 2:
			m.AccountID = new(AccountID)
			d.message(m.AccountID)
		case 3:
			m.CreationTime = new(Timestamp)
			d.message(m.CreationTime)
		case 4:
			m.Metadata = d.bytes()
		case 5:
			m.LedgerID = d.bytes()
		case 6:
			m.SpenderID = new(AccountID)
			d.message(m.SpenderID)
		default:
			d.skip()
		}
	}

	return d.err
}
