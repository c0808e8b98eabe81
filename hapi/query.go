package hapi

// Query is the message sent to a node to read the state of the network.
type Query struct {
	Query isQuery_Query
}

type isQuery_Query interface {
	isQuery_Query()
}

// Query_TransactionGetReceipt asks for the receipt of a transaction.
type Query_TransactionGetReceipt struct {
	TransactionGetReceipt *TransactionGetReceiptQuery
}

// Query_TokenGetNftInfo asks for the information of a non-fungible token.
type Query_TokenGetNftInfo struct {
	TokenGetNftInfo *TokenGetNftInfoQuery
}

func (*Query_TransactionGetReceipt) isQuery_Query() {}

func (*Query_TokenGetNftInfo) isQuery_Query() {}

// MarshalAppend implements hapi.Message.
func (m *Query) MarshalAppend(b []byte) []byte {
	switch v := m.Query.(type) {
	case *Query_TransactionGetReceipt:
		b = appendTagBytes(b, 14, messageBytes(v.TransactionGetReceipt))
	case *Query_TokenGetNftInfo:
		b = appendTagBytes(b, 55, messageBytes(v.TokenGetNftInfo))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *Query) Unmarshal(data []byte) error {
	*m = Query{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 14:
			query := new(TransactionGetReceiptQuery)
			d.message(query)
			m.Query = &Query_TransactionGetReceipt{TransactionGetReceipt: query}
		case 55:
			query := new(TokenGetNftInfoQuery)
			d.message(query)
			m.Query = &Query_TokenGetNftInfo{TokenGetNftInfo: query}
		default:
			d.skip()
		}
	}

	return d.err
}

// QueryHeader is the header common to every query.
type QueryHeader struct {
	Payment      *Transaction
	ResponseType ResponseType
}

// MarshalAppend implements hapi.Message.
func (m *QueryHeader) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.Payment)
	b = appendInt32(b, 2, int32(m.ResponseType))
	return b
}

// Unmarshal implements hapi.Message.
func (m *QueryHeader) Unmarshal(data []byte) error {
	*m = QueryHeader{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Payment = new(Transaction)
			d.message(m.Payment)
		case 2:
			m.ResponseType = ResponseType(d.int32())
		default:
			d.skip()
		}
	}

	return d.err
}

// Response is the answer of a node to a query.
type Response struct {
	Response isResponse_Response
}

type isResponse_Response interface {
	isResponse_Response()
}

// Response_TransactionGetReceipt is the answer to a receipt query.
type Response_TransactionGetReceipt struct {
	TransactionGetReceipt *TransactionGetReceiptResponse
}

// Response_TokenGetNftInfo is the answer to a non-fungible token query.
type Response_TokenGetNftInfo struct {
	TokenGetNftInfo *TokenGetNftInfoResponse
}

func (*Response_TransactionGetReceipt) isResponse_Response() {}

func (*Response_TokenGetNftInfo) isResponse_Response() {}

// GetHeader returns the header of the answer, or nil when the response is
// empty.
func (m *Response) GetHeader() *ResponseHeader {
	if m == nil {
		return nil
	}

	switch v := m.Response.(type) {
	case *Response_TransactionGetReceipt:
		if v.TransactionGetReceipt != nil {
			return v.TransactionGetReceipt.Header
		}
	case *Response_TokenGetNftInfo:
		if v.TokenGetNftInfo != nil {
			return v.TokenGetNftInfo.Header
		}
	}

	return nil
}

// MarshalAppend implements hapi.Message.
func (m *Response) MarshalAppend(b []byte) []byte {
	switch v := m.Response.(type) {
	case *Response_TransactionGetReceipt:
		b = appendTagBytes(b, 14, messageBytes(v.TransactionGetReceipt))
	case *Response_TokenGetNftInfo:
		b = appendTagBytes(b, 155, messageBytes(v.TokenGetNftInfo))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *Response) Unmarshal(data []byte) error {
	*m = Response{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 14:
			resp := new(TransactionGetReceiptResponse)
			d.message(resp)
			m.Response = &Response_TransactionGetReceipt{TransactionGetReceipt: resp}
		case 155:
			resp := new(TokenGetNftInfoResponse)
			d.message(resp)
			m.Response = &Response_TokenGetNftInfo{TokenGetNftInfo: resp}
		default:
			d.skip()
		}
	}

	return d.err
}

// ResponseHeader is the header common to every answer.
type ResponseHeader struct {
	NodeTransactionPrecheckCode ResponseCode
	ResponseType                ResponseType
	Cost                        uint64
	StateProof                  []byte
}

// MarshalAppend implements hapi.Message.
func (m *ResponseHeader) MarshalAppend(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.NodeTransactionPrecheckCode))
	b = appendInt32(b, 2, int32(m.ResponseType))
	b = appendVarint(b, 3, m.Cost)
	b = appendBytes(b, 4, m.StateProof)
	return b
}

// Unmarshal implements hapi.Message.
func (m *ResponseHeader) Unmarshal(data []byte) error {
	*m = ResponseHeader{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.NodeTransactionPrecheckCode = ResponseCode(d.int32())
		case 2:
			m.ResponseType = ResponseType(d.int32())
		case 3:
			m.Cost = d.varint()
		case 4:
			m.StateProof = d.bytes()
		default:
			d.skip()
		}
	}

	return d.err
}
