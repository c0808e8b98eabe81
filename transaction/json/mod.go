package json

import (
	"encoding/json"
	"time"

	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
)

func init() {
	transaction.RegisterTransactionFormat(serde.FormatJSON, txFormat{})
	transaction.RegisterResponseFormat(serde.FormatJSON, responseFormat{})
	transaction.RegisterReceiptFormat(serde.FormatJSON, receiptFormat{})
	transaction.RegisterReceiptQueryFormat(serde.FormatJSON, receiptQueryFormat{})
}

// TransactionJSON is the JSON message of a transaction.
type TransactionJSON struct {
	Data                     json.RawMessage   `json:"data"`
	TransactionID            *transaction.ID   `json:"transactionId,omitempty"`
	NodeAccountID            *entity.AccountID `json:"nodeAccountId,omitempty"`
	MaxTransactionFee        *uint64           `json:"maxTransactionFee,omitempty"`
	TransactionValidDuration *int64            `json:"transactionValidDuration,omitempty"`
	TransactionMemo          string            `json:"transactionMemo,omitempty"`
}

// TypeJSON is the header of the JSON message of the data of a transaction or
// of a query.
type TypeJSON struct {
	Type string `json:"$type"`
}

// ResponseJSON is the JSON message of the response to a transaction.
type ResponseJSON struct {
	NodeAccountID   entity.AccountID  `json:"nodeAccountId"`
	TransactionID   transaction.ID    `json:"transactionId"`
	TransactionHash []byte            `json:"transactionHash"`
	Status          hapi.ResponseCode `json:"status,omitempty"`
}

// ReceiptJSON is the JSON message of a receipt.
type ReceiptJSON struct {
	Status                  hapi.ResponseCode  `json:"status"`
	AccountID               *entity.AccountID  `json:"accountId,omitempty"`
	FileID                  *entity.FileID     `json:"fileId,omitempty"`
	ContractID              *entity.ContractID `json:"contractId,omitempty"`
	TopicID                 *entity.TopicID    `json:"topicId,omitempty"`
	TopicSequenceNumber     uint64             `json:"topicSequenceNumber,omitempty"`
	TopicRunningHash        []byte             `json:"topicRunningHash,omitempty"`
	TopicRunningHashVersion uint64             `json:"topicRunningHashVersion,omitempty"`
	TokenID                 *entity.TokenID    `json:"tokenId,omitempty"`
	TotalSupply             uint64             `json:"totalSupply,omitempty"`
	SerialNumbers           []int64            `json:"serials,omitempty"`
	Duplicates              []ReceiptJSON      `json:"duplicates,omitempty"`
	Children                []ReceiptJSON      `json:"children,omitempty"`
}

// ReceiptQueryJSON is the JSON message of a receipt query.
type ReceiptQueryJSON struct {
	Type              string          `json:"$type"`
	TransactionID     *transaction.ID `json:"transactionId,omitempty"`
	IncludeDuplicates bool            `json:"includeDuplicates,omitempty"`
	IncludeChildren   bool            `json:"includeChildren,omitempty"`
}

// txFormat is the engine to encode and decode transactions in JSON format.
//
// - implements serde.FormatEngine
type txFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the
// transaction.
func (f txFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tx, ok := msg.(*transaction.Transaction)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := tx.GetData().Serialize(ctx)
	if err != nil {
		return nil, xerrors.Errorf("couldn't serialize data: %v", err)
	}

	duration := int64(tx.GetTransactionValidDuration() / time.Second)

	m := TransactionJSON{
		Data:                     data,
		TransactionID:            tx.GetTransactionID(),
		NodeAccountID:            tx.GetNodeAccountID(),
		MaxTransactionFee:        tx.GetMaxTransactionFee(),
		TransactionValidDuration: &duration,
		TransactionMemo:          tx.GetTransactionMemo(),
	}

	data, err = ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the transaction of the
// data. The data of the transaction is decoded by the factory registered for
// its type.
func (f txFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := TransactionJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal transaction: %v", err)
	}

	if len(m.Data) == 0 {
		return nil, xerrors.New("missing data")
	}

	header := TypeJSON{}
	err = ctx.Unmarshal(m.Data, &header)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal data type: %v", err)
	}

	fac, ok := transaction.DataFactoryOf(header.Type)
	if !ok {
		return nil, xerrors.Errorf("unknown data type '%s'", header.Type)
	}

	msg, err := fac.Deserialize(ctx, m.Data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't deserialize data: %v", err)
	}

	txData, ok := msg.(transaction.Data)
	if !ok {
		return nil, xerrors.Errorf("invalid data of type '%T'", msg)
	}

	tx := transaction.New(txData).SetTransactionMemo(m.TransactionMemo)

	if m.TransactionID != nil {
		tx.SetTransactionID(*m.TransactionID)
	}

	if m.NodeAccountID != nil {
		tx.SetNodeAccountID(*m.NodeAccountID)
	}

	if m.MaxTransactionFee != nil {
		tx.SetMaxTransactionFee(*m.MaxTransactionFee)
	}

	if m.TransactionValidDuration != nil {
		tx.SetTransactionValidDuration(time.Duration(*m.TransactionValidDuration) * time.Second)
	}

	return tx, nil
}

// responseFormat is the engine to encode and decode responses in JSON format.
//
// - implements serde.FormatEngine
type responseFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the response.
func (f responseFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	resp, ok := msg.(transaction.Response)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := ResponseJSON{
		NodeAccountID:   resp.NodeAccountID,
		TransactionID:   resp.TransactionID,
		TransactionHash: resp.TransactionHash,
		Status:          resp.Status,
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the response of the
// data.
func (f responseFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := ResponseJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal response: %v", err)
	}

	resp := transaction.Response{
		NodeAccountID:   m.NodeAccountID,
		TransactionID:   m.TransactionID,
		TransactionHash: m.TransactionHash,
		Status:          m.Status,
	}

	return resp, nil
}

// receiptFormat is the engine to encode receipts in JSON format.
//
// - implements serde.FormatEngine
type receiptFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the receipt.
func (f receiptFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	receipt, ok := msg.(transaction.Receipt)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(receiptToJSON(receipt))
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the receipt of the data.
func (f receiptFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := ReceiptJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal receipt: %v", err)
	}

	return receiptFromJSON(m), nil
}

func receiptToJSON(r transaction.Receipt) ReceiptJSON {
	m := ReceiptJSON{
		Status:                  r.Status,
		AccountID:               r.AccountID,
		FileID:                  r.FileID,
		ContractID:              r.ContractID,
		TopicID:                 r.TopicID,
		TopicSequenceNumber:     r.TopicSequenceNumber,
		TopicRunningHash:        r.TopicRunningHash,
		TopicRunningHashVersion: r.TopicRunningHashVersion,
		TokenID:                 r.TokenID,
		TotalSupply:             r.TotalSupply,
		SerialNumbers:           r.SerialNumbers,
	}

	for _, dup := range r.Duplicates {
		m.Duplicates = append(m.Duplicates, receiptToJSON(dup))
	}

	for _, child := range r.Children {
		m.Children = append(m.Children, receiptToJSON(child))
	}

	return m
}

func receiptFromJSON(m ReceiptJSON) transaction.Receipt {
	r := transaction.Receipt{
		Status:                  m.Status,
		AccountID:               m.AccountID,
		FileID:                  m.FileID,
		ContractID:              m.ContractID,
		TopicID:                 m.TopicID,
		TopicSequenceNumber:     m.TopicSequenceNumber,
		TopicRunningHash:        m.TopicRunningHash,
		TopicRunningHashVersion: m.TopicRunningHashVersion,
		TokenID:                 m.TokenID,
		TotalSupply:             m.TotalSupply,
		SerialNumbers:           m.SerialNumbers,
	}

	for _, dup := range m.Duplicates {
		r.Duplicates = append(r.Duplicates, receiptFromJSON(dup))
	}

	for _, child := range m.Children {
		r.Children = append(r.Children, receiptFromJSON(child))
	}

	return r
}

// receiptQueryFormat is the engine to encode and decode receipt queries in
// JSON format.
//
// - implements serde.FormatEngine
type receiptQueryFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the query.
func (f receiptQueryFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	q, ok := msg.(*transaction.ReceiptQuery)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := ReceiptQueryJSON{
		Type:              transaction.ReceiptQueryType,
		TransactionID:     q.GetTransactionID(),
		IncludeDuplicates: q.GetIncludeDuplicates(),
		IncludeChildren:   q.GetIncludeChildren(),
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the query of the data.
func (f receiptQueryFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := ReceiptQueryJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal receipt query: %v", err)
	}

	q := transaction.NewReceiptQuery().
		SetIncludeDuplicates(m.IncludeDuplicates).
		SetIncludeChildren(m.IncludeChildren)

	if m.TransactionID != nil {
		q.SetTransactionID(*m.TransactionID)
	}

	return q, nil
}
