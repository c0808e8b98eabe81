package hapi

import "google.golang.org/protobuf/types/known/wrapperspb"

// ContractUpdateTransactionBody modifies the properties of a smart contract.
type ContractUpdateTransactionBody struct {
	ContractID      *ContractID
	ExpirationTime  *Timestamp
	AdminKey        *Key
	ProxyAccountID  *AccountID
	AutoRenewPeriod *Duration
	FileID          *FileID
	MemoField       isContractUpdateTransactionBody_MemoField

	MaxAutomaticTokenAssociations *wrapperspb.Int32Value
	AutoRenewAccountID            *AccountID
	StakedID                      isContractUpdateTransactionBody_StakedID
	DeclineReward                 *wrapperspb.BoolValue
}

type isContractUpdateTransactionBody_MemoField interface {
	isContractUpdateTransactionBody_MemoField()
}

// ContractUpdateTransactionBody_Memo is the deprecated memo member of the
// memo oneof.
type ContractUpdateTransactionBody_Memo struct {
	Memo string
}

// ContractUpdateTransactionBody_MemoWrapper is the memo member of the memo
// oneof that can carry an empty memo.
type ContractUpdateTransactionBody_MemoWrapper struct {
	MemoWrapper *wrapperspb.StringValue
}

func (*ContractUpdateTransactionBody_Memo) isContractUpdateTransactionBody_MemoField() {}

func (*ContractUpdateTransactionBody_MemoWrapper) isContractUpdateTransactionBody_MemoField() {}

type isContractUpdateTransactionBody_StakedID interface {
	isContractUpdateTransactionBody_StakedID()
}

// ContractUpdateTransactionBody_StakedAccountID stakes the contract to an
// account.
type ContractUpdateTransactionBody_StakedAccountID struct {
	StakedAccountID *AccountID
}

// ContractUpdateTransactionBody_StakedNodeID stakes the contract to a node.
type ContractUpdateTransactionBody_StakedNodeID struct {
	StakedNodeID int64
}

func (*ContractUpdateTransactionBody_StakedAccountID) isContractUpdateTransactionBody_StakedID() {}

func (*ContractUpdateTransactionBody_StakedNodeID) isContractUpdateTransactionBody_StakedID() {}

// MarshalAppend implements hapi.Message.
func (m *ContractUpdateTransactionBody) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.ContractID)
	b = appendMessage(b, 2, m.ExpirationTime)
	b = appendMessage(b, 3, m.AdminKey)
	b = appendMessage(b, 6, m.ProxyAccountID)
	b = appendMessage(b, 7, m.AutoRenewPeriod)
	b = appendMessage(b, 8, m.FileID)

	switch v := m.MemoField.(type) {
	case *ContractUpdateTransactionBody_Memo:
		b = appendTagBytes(b, 9, []byte(v.Memo))
	case *ContractUpdateTransactionBody_MemoWrapper:
		b = appendTagBytes(b, 10, appendString(nil, 1, v.MemoWrapper.GetValue()))
	}

	b = appendInt32Value(b, 11, m.MaxAutomaticTokenAssociations)
	b = appendMessage(b, 12, m.AutoRenewAccountID)

	switch v := m.StakedID.(type) {
	case *ContractUpdateTransactionBody_StakedAccountID:
		b = appendTagBytes(b, 13, messageBytes(v.StakedAccountID))
	case *ContractUpdateTransactionBody_StakedNodeID:
		b = appendTagVarint(b, 14, uint64(v.StakedNodeID))
	}

	b = appendBoolValue(b, 15, m.DeclineReward)

	return b
}

// Unmarshal implements hapi.Message.
func (m *ContractUpdateTransactionBody) Unmarshal(data []byte) error {
	*m = ContractUpdateTransactionBody{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.ContractID = new(ContractID)
			d.message(m.ContractID)
		case 2:
			m.ExpirationTime = new(Timestamp)
			d.message(m.ExpirationTime)
		case 3:
			m.AdminKey = new(Key)
			d.message(m.AdminKey)
		case 6:
			m.ProxyAccountID = new(AccountID)
			d.message(m.ProxyAccountID)
		case 7:
			m.AutoRenewPeriod = new(Duration)
			d.message(m.AutoRenewPeriod)
		case 8:
			m.FileID = new(FileID)
			d.message(m.FileID)
		case 9:
			m.MemoField = &ContractUpdateTransactionBody_Memo{Memo: d.string()}
		case 10:
			memo := new(wrapperspb.StringValue)
			d.wrapper(memo)
			m.MemoField = &ContractUpdateTransactionBody_MemoWrapper{MemoWrapper: memo}
		case 11:
			m.MaxAutomaticTokenAssociations = new(wrapperspb.Int32Value)
			d.wrapper(m.MaxAutomaticTokenAssociations)
		case 12:
			m.AutoRenewAccountID = new(AccountID)
			d.message(m.AutoRenewAccountID)
		case 13:
			account := new(AccountID)
			d.message(account)
			m.StakedID = &ContractUpdateTransactionBody_StakedAccountID{StakedAccountID: account}
		case 14:
			m.StakedID = &ContractUpdateTransactionBody_StakedNodeID{StakedNodeID: d.int64()}
		case 15:
			m.DeclineReward = new(wrapperspb.BoolValue)
			d.wrapper(m.DeclineReward)
		default:
			d.skip()
		}
	}

	return d.err
}
