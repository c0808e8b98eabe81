package hapi

// TransactionGetReceiptQuery asks for the receipt of a transaction.
type TransactionGetReceiptQuery struct {
	Header               *QueryHeader
	TransactionID        *TransactionID
	IncludeDuplicates    bool
	IncludeChildReceipts bool
}

// MarshalAppend implements hapi.Message.
func (m *TransactionGetReceiptQuery) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.Header)
	b = appendMessage(b, 2, m.TransactionID)
	b = appendBool(b, 3, m.IncludeDuplicates)
	b = appendBool(b, 4, m.IncludeChildReceipts)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TransactionGetReceiptQuery) Unmarshal(data []byte) error {
	*m = TransactionGetReceiptQuery{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Header = new(QueryHeader)
			d.message(m.Header)
		case 2:
			m.TransactionID = new(TransactionID)
			d.message(m.TransactionID)
		case 3:
			m.IncludeDuplicates = d.bool()
		case 4:
			m.IncludeChildReceipts = d.bool()
		default:
			d.skip()
		}
	}

	return d.err
}

// TransactionGetReceiptResponse is the answer to a receipt query.
type TransactionGetReceiptResponse struct {
	Header                       *ResponseHeader
	Receipt                      *TransactionReceipt
	DuplicateTransactionReceipts []*TransactionReceipt
	ChildTransactionReceipts     []*TransactionReceipt
}

// MarshalAppend implements hapi.Message.
func (m *TransactionGetReceiptResponse) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.Header)
	b = appendMessage(b, 2, m.Receipt)

	for _, receipt := range m.DuplicateTransactionReceipts {
		b = appendTagBytes(b, 4, messageBytes(receipt))
	}

	for _, receipt := range m.ChildTransactionReceipts {
		b = appendTagBytes(b, 5, messageBytes(receipt))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *TransactionGetReceiptResponse) Unmarshal(data []byte) error {
	*m = TransactionGetReceiptResponse{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Header = new(ResponseHeader)
			d.message(m.Header)
		case 2:
			m.Receipt = new(TransactionReceipt)
			d.message(m.Receipt)
		case 4:
			receipt := new(TransactionReceipt)
			d.message(receipt)
			m.DuplicateTransactionReceipts = append(m.DuplicateTransactionReceipts, receipt)
		case 5:
			receipt := new(TransactionReceipt)
			d.message(receipt)
			m.ChildTransactionReceipts = append(m.ChildTransactionReceipts, receipt)
		default:
			d.skip()
		}
	}

	return d.err
}

// TransactionReceipt is the outcome of a transaction reached by consensus.
type TransactionReceipt struct {
	Status                  ResponseCode
	AccountID               *AccountID
	FileID                  *FileID
	ContractID              *ContractID
	TopicID                 *TopicID
	TopicSequenceNumber     uint64
	TopicRunningHash        []byte
	TopicRunningHashVersion uint64
	TokenID                 *TokenID
	NewTotalSupply          uint64
	SerialNumbers           []int64
}

// MarshalAppend implements hapi.Message.
func (m *TransactionReceipt) MarshalAppend(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.Status))
	b = appendMessage(b, 2, m.AccountID)
	b = appendMessage(b, 3, m.FileID)
	b = appendMessage(b, 4, m.ContractID)
	b = appendMessage(b, 6, m.TopicID)
	b = appendVarint(b, 7, m.TopicSequenceNumber)
	b = appendBytes(b, 8, m.TopicRunningHash)
	b = appendVarint(b, 9, m.TopicRunningHashVersion)
	b = appendMessage(b, 10, m.TokenID)
	b = appendVarint(b, 11, m.NewTotalSupply)
	b = appendPacked(b, 14, m.SerialNumbers)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TransactionReceipt) Unmarshal(data []byte) error {
	*m = TransactionReceipt{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Status = ResponseCode(d.int32())
		case 2:
			m.AccountID = new(AccountID)
			d.message(m.AccountID)
		case 3:
			m.FileID = new(FileID)
			d.message(m.FileID)
		case 4:
			m.ContractID = new(ContractID)
			d.message(m.ContractID)
		case 6:
			m.TopicID = new(TopicID)
			d.message(m.TopicID)
		case 7:
			m.TopicSequenceNumber = d.varint()
		case 8:
			m.TopicRunningHash = d.bytes()
		case 9:
			m.TopicRunningHashVersion = d.varint()
		case 10:
			m.TokenID = new(TokenID)
			d.message(m.TokenID)
		case 11:
			m.NewTotalSupply = d.varint()
		case 14:
			m.SerialNumbers = d.packed(m.SerialNumbers)
		default:
			d.skip()
		}
	}

	return d.err
}
