package hapi

// AccountID identifies an account either by its number or by an alias.
type AccountID struct {
	ShardNum int64
	RealmNum int64
	Account  isAccountID_Account
}

type isAccountID_Account interface {
	isAccountID_Account()
}

// AccountID_AccountNum is the account number member of the account oneof.
type AccountID_AccountNum struct {
	AccountNum int64
}

// AccountID_Alias is the alias member of the account oneof.
type AccountID_Alias struct {
	Alias []byte
}

func (*AccountID_AccountNum) isAccountID_Account() {}

func (*AccountID_Alias) isAccountID_Account() {}

// GetAccountNum returns the account number or zero.
func (m *AccountID) GetAccountNum() int64 {
	if m == nil {
		return 0
	}

	v, ok := m.Account.(*AccountID_AccountNum)
	if !ok {
		return 0
	}

	return v.AccountNum
}

// GetAlias returns the alias or nil.
func (m *AccountID) GetAlias() []byte {
	if m == nil {
		return nil
	}

	v, ok := m.Account.(*AccountID_Alias)
	if !ok {
		return nil
	}

	return v.Alias
}

// MarshalAppend implements hapi.Message.
func (m *AccountID) MarshalAppend(b []byte) []byte {
	b = appendInt64(b, 1, m.ShardNum)
	b = appendInt64(b, 2, m.RealmNum)

	switch v := m.Account.(type) {
	case *AccountID_AccountNum:
		b = appendTagVarint(b, 3, uint64(v.AccountNum))
	case *AccountID_Alias:
		b = appendTagBytes(b, 4, v.Alias)
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *AccountID) Unmarshal(data []byte) error {
	*m = AccountID{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.ShardNum = d.int64()
		case 2:
			m.RealmNum = d.int64()
		case 3:
			m.Account = &AccountID_AccountNum{AccountNum: d.int64()}
		case 4:
			m.Account = &AccountID_Alias{Alias: d.bytes()}
		default:
			d.skip()
		}
	}

	return d.err
}

// ContractID identifies a smart contract either by its number or by its EVM
// address.
type ContractID struct {
	ShardNum int64
	RealmNum int64
	Contract isContractID_Contract
}

type isContractID_Contract interface {
	isContractID_Contract()
}

// ContractID_ContractNum is the contract number member of the contract oneof.
type ContractID_ContractNum struct {
	ContractNum int64
}

// ContractID_EvmAddress is the EVM address member of the contract oneof.
type ContractID_EvmAddress struct {
	EvmAddress []byte
}

func (*ContractID_ContractNum) isContractID_Contract() {}

func (*ContractID_EvmAddress) isContractID_Contract() {}

// GetContractNum returns the contract number or zero.
func (m *ContractID) GetContractNum() int64 {
	if m == nil {
		return 0
	}

	v, ok := m.Contract.(*ContractID_ContractNum)
	if !ok {
		return 0
	}

	return v.ContractNum
}

// GetEvmAddress returns the EVM address or nil.
func (m *ContractID) GetEvmAddress() []byte {
	if m == nil {
		return nil
	}

	v, ok := m.Contract.(*ContractID_EvmAddress)
	if !ok {
		return nil
	}

	return v.EvmAddress
}

// MarshalAppend implements hapi.Message.
func (m *ContractID) MarshalAppend(b []byte) []byte {
	b = appendInt64(b, 1, m.ShardNum)
	b = appendInt64(b, 2, m.RealmNum)

	switch v := m.Contract.(type) {
	case *ContractID_ContractNum:
		b = appendTagVarint(b, 3, uint64(v.ContractNum))
	case *ContractID_EvmAddress:
		b = appendTagBytes(b, 4, v.EvmAddress)
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *ContractID) Unmarshal(data []byte) error {
	*m = ContractID{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.ShardNum = d.int64()
		case 2:
			m.RealmNum = d.int64()
		case 3:
			m.Contract = &ContractID_ContractNum{ContractNum: d.int64()}
		case 4:
			m.Contract = &ContractID_EvmAddress{EvmAddress: d.bytes()}
		default:
			d.skip()
		}
	}

	return d.err
}

// FileID identifies a file.
type FileID struct {
	ShardNum int64
	RealmNum int64
	FileNum  int64
}

// MarshalAppend implements hapi.Message.
func (m *FileID) MarshalAppend(b []byte) []byte {
	return appendEntity(b, m.ShardNum, m.RealmNum, m.FileNum)
}

// Unmarshal implements hapi.Message.
func (m *FileID) Unmarshal(data []byte) error {
	*m = FileID{}
	return unmarshalEntity(data, &m.ShardNum, &m.RealmNum, &m.FileNum)
}

// TokenID identifies a token.
type TokenID struct {
	ShardNum int64
	RealmNum int64
	TokenNum int64
}

// MarshalAppend implements hapi.Message.
func (m *TokenID) MarshalAppend(b []byte) []byte {
	return appendEntity(b, m.ShardNum, m.RealmNum, m.TokenNum)
}

// Unmarshal implements hapi.Message.
func (m *TokenID) Unmarshal(data []byte) error {
	*m = TokenID{}
	return unmarshalEntity(data, &m.ShardNum, &m.RealmNum, &m.TokenNum)
}

// TopicID identifies a consensus topic.
type TopicID struct {
	ShardNum int64
	RealmNum int64
	TopicNum int64
}

// MarshalAppend implements hapi.Message.
func (m *TopicID) MarshalAppend(b []byte) []byte {
	return appendEntity(b, m.ShardNum, m.RealmNum, m.TopicNum)
}

// Unmarshal implements hapi.Message.
func (m *TopicID) Unmarshal(data []byte) error {
	*m = TopicID{}
	return unmarshalEntity(data, &m.ShardNum, &m.RealmNum, &m.TopicNum)
}

func appendEntity(b []byte, shard, realm, num int64) []byte {
	b = appendInt64(b, 1, shard)
	b = appendInt64(b, 2, realm)
	b = appendInt64(b, 3, num)
	return b
}

func unmarshalEntity(data []byte, shard, realm, num *int64) error {
	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			*shard = d.int64()
		case 2:
			*realm = d.int64()
		case 3:
			*num = d.int64()
		default:
			d.skip()
		}
	}

	return d.err
}

// NftID identifies a non-fungible token by its token and serial number.
type NftID struct {
	TokenID      *TokenID
	SerialNumber int64
}

// MarshalAppend implements hapi.Message.
func (m *NftID) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.TokenID)
	b = appendInt64(b, 2, m.SerialNumber)
	return b
}

// Unmarshal implements hapi.Message.
func (m *NftID) Unmarshal(data []byte) error {
	*m = NftID{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.TokenID = new(TokenID)
			d.message(m.TokenID)
		case 2:
			m.SerialNumber = d.int64()
		default:
			d.skip()
		}
	}

	return d.err
}

// TransactionID identifies a transaction by its payer and the start of its
// validity window.
type TransactionID struct {
	TransactionValidStart *Timestamp
	AccountID             *AccountID
	Scheduled             bool
	Nonce                 int32
}

// MarshalAppend implements hapi.Message.
func (m *TransactionID) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.TransactionValidStart)
	b = appendMessage(b, 2, m.AccountID)
	b = appendBool(b, 3, m.Scheduled)
	b = appendInt32(b, 4, m.Nonce)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TransactionID) Unmarshal(data []byte) error {
	*m = TransactionID{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.TransactionValidStart = new(Timestamp)
			d.message(m.TransactionValidStart)
		case 2:
			m.AccountID = new(AccountID)
			d.message(m.AccountID)
		case 3:
			m.Scheduled = d.bool()
		case 4:
			m.Nonce = d.int32()
		default:
			d.skip()
		}
	}

	return d.err
}
