package hapi

// TransactionBody is the content of a transaction that is signed by the
// payer.
type TransactionBody struct {
	TransactionID            *TransactionID
	NodeAccountID            *AccountID
	TransactionFee           uint64
	TransactionValidDuration *Duration
	Memo                     string
	Data                     TransactionBodyData
}

// TransactionBodyData is implemented by the members of the data oneof of a
// transaction body. Each member is the body of one kind of transaction.
type TransactionBodyData interface {
	isTransactionBody_Data()
}

// TransactionBody_ContractUpdateInstance is the body of a contract update.
type TransactionBody_ContractUpdateInstance struct {
	ContractUpdateInstance *ContractUpdateTransactionBody
}

// TransactionBody_SystemUndelete is the body of a system undelete.
type TransactionBody_SystemUndelete struct {
	SystemUndelete *SystemUndeleteTransactionBody
}

// TransactionBody_TokenCreation is the body of a token creation.
type TransactionBody_TokenCreation struct {
	TokenCreation *TokenCreateTransactionBody
}

func (*TransactionBody_ContractUpdateInstance) isTransactionBody_Data() {}

func (*TransactionBody_SystemUndelete) isTransactionBody_Data() {}

func (*TransactionBody_TokenCreation) isTransactionBody_Data() {}

// MarshalAppend implements hapi.Message.
func (m *TransactionBody) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.TransactionID)
	b = appendMessage(b, 2, m.NodeAccountID)
	b = appendVarint(b, 3, m.TransactionFee)
	b = appendMessage(b, 4, m.TransactionValidDuration)
	b = appendString(b, 6, m.Memo)

	switch v := m.Data.(type) {
	case *TransactionBody_ContractUpdateInstance:
		b = appendTagBytes(b, 9, messageBytes(v.ContractUpdateInstance))
	case *TransactionBody_SystemUndelete:
		b = appendTagBytes(b, 21, messageBytes(v.SystemUndelete))
	case *TransactionBody_TokenCreation:
		b = appendTagBytes(b, 29, messageBytes(v.TokenCreation))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *TransactionBody) Unmarshal(data []byte) error {
	*m = TransactionBody{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.TransactionID = new(TransactionID)
			d.message(m.TransactionID)
		case 2:
			m.NodeAccountID = new(AccountID)
			d.message(m.NodeAccountID)
		case 3:
			m.TransactionFee = d.varint()
		case 4:
			m.TransactionValidDuration = new(Duration)
			d.message(m.TransactionValidDuration)
		case 6:
			m.Memo = d.string()
		case 9:
			body := new(ContractUpdateTransactionBody)
			d.message(body)
			m.Data = &TransactionBody_ContractUpdateInstance{ContractUpdateInstance: body}
		case 21:
			body := new(SystemUndeleteTransactionBody)
			d.message(body)
			m.Data = &TransactionBody_SystemUndelete{SystemUndelete: body}
		case 29:
			body := new(TokenCreateTransactionBody)
			d.message(body)
			m.Data = &TransactionBody_TokenCreation{TokenCreation: body}
		default:
			d.skip()
		}
	}

	return d.err
}

// SignedTransaction is the body bytes of a transaction with its signatures.
type SignedTransaction struct {
	BodyBytes []byte
	SigMap    *SignatureMap
}

// MarshalAppend implements hapi.Message.
func (m *SignedTransaction) MarshalAppend(b []byte) []byte {
	b = appendBytes(b, 1, m.BodyBytes)
	b = appendMessage(b, 2, m.SigMap)
	return b
}

// Unmarshal implements hapi.Message.
func (m *SignedTransaction) Unmarshal(data []byte) error {
	*m = SignedTransaction{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.BodyBytes = d.bytes()
		case 2:
			m.SigMap = new(SignatureMap)
			d.message(m.SigMap)
		default:
			d.skip()
		}
	}

	return d.err
}

// SignatureMap is the list of signatures of a transaction.
type SignatureMap struct {
	SigPair []*SignaturePair
}

// MarshalAppend implements hapi.Message.
func (m *SignatureMap) MarshalAppend(b []byte) []byte {
	for _, pair := range m.SigPair {
		b = appendTagBytes(b, 1, messageBytes(pair))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *SignatureMap) Unmarshal(data []byte) error {
	*m = SignatureMap{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			pair := new(SignaturePair)
			d.message(pair)
			m.SigPair = append(m.SigPair, pair)
		default:
			d.skip()
		}
	}

	return d.err
}

// SignaturePair is a signature with the prefix of the public key that
// produced it.
type SignaturePair struct {
	PubKeyPrefix []byte
	Signature    isSignaturePair_Signature
}

type isSignaturePair_Signature interface {
	isSignaturePair_Signature()
}

// SignaturePair_Ed25519 is an Ed25519 signature.
type SignaturePair_Ed25519 struct {
	Ed25519 []byte
}

// SignaturePair_ECDSASecp256K1 is an ECDSA secp256k1 signature.
type SignaturePair_ECDSASecp256K1 struct {
	ECDSASecp256K1 []byte
}

func (*SignaturePair_Ed25519) isSignaturePair_Signature() {}

func (*SignaturePair_ECDSASecp256K1) isSignaturePair_Signature() {}

// MarshalAppend implements hapi.Message.
func (m *SignaturePair) MarshalAppend(b []byte) []byte {
	b = appendBytes(b, 1, m.PubKeyPrefix)

	switch v := m.Signature.(type) {
	case *SignaturePair_Ed25519:
		b = appendTagBytes(b, 3, v.Ed25519)
	case *SignaturePair_ECDSASecp256K1:
		b = appendTagBytes(b, 6, v.ECDSASecp256K1)
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *SignaturePair) Unmarshal(data []byte) error {
	*m = SignaturePair{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.PubKeyPrefix = d.bytes()
		case 3:
			m.Signature = &SignaturePair_Ed25519{Ed25519: d.bytes()}
		case 6:
			m.Signature = &SignaturePair_ECDSASecp256K1{ECDSASecp256K1: d.bytes()}
		default:
			d.skip()
		}
	}

	return d.err
}

// Transaction is the message submitted to a node.
type Transaction struct {
	SignedTransactionBytes []byte
}

// MarshalAppend implements hapi.Message.
func (m *Transaction) MarshalAppend(b []byte) []byte {
	return appendBytes(b, 5, m.SignedTransactionBytes)
}

// Unmarshal implements hapi.Message.
func (m *Transaction) Unmarshal(data []byte) error {
	*m = Transaction{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 5:
			m.SignedTransactionBytes = d.bytes()
		default:
			d.skip()
		}
	}

	return d.err
}

// TransactionResponse is the answer of a node to a submitted transaction.
type TransactionResponse struct {
	NodeTransactionPrecheckCode ResponseCode
	Cost                        uint64
}

// MarshalAppend implements hapi.Message.
func (m *TransactionResponse) MarshalAppend(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.NodeTransactionPrecheckCode))
	b = appendVarint(b, 2, m.Cost)
	return b
}

// Unmarshal implements hapi.Message.
func (m *TransactionResponse) Unmarshal(data []byte) error {
	*m = TransactionResponse{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.NodeTransactionPrecheckCode = ResponseCode(d.int32())
		case 2:
			m.Cost = d.varint()
		default:
			d.skip()
		}
	}

	return d.err
}
