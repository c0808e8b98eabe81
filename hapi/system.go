package hapi

// SystemUndeleteTransactionBody restores a file or a smart contract deleted by
// a system delete transaction.
type SystemUndeleteTransactionBody struct {
	ID isSystemUndeleteTransactionBody_ID
}

type isSystemUndeleteTransactionBody_ID interface {
	isSystemUndeleteTransactionBody_ID()
}

// SystemUndeleteTransactionBody_FileID is the file member of the id oneof.
type SystemUndeleteTransactionBody_FileID struct {
	FileID *FileID
}

// SystemUndeleteTransactionBody_ContractID is the contract member of the id
// oneof.
type SystemUndeleteTransactionBody_ContractID struct {
	ContractID *ContractID
}

func (*SystemUndeleteTransactionBody_FileID) isSystemUndeleteTransactionBody_ID() {}

func (*SystemUndeleteTransactionBody_ContractID) isSystemUndeleteTransactionBody_ID() {}

// GetFileID returns the file identifier or nil.
func (m *SystemUndeleteTransactionBody) GetFileID() *FileID {
	if m == nil {
		return nil
	}

	v, ok := m.ID.(*SystemUndeleteTransactionBody_FileID)
	if !ok {
		return nil
	}

	return v.FileID
}

// GetContractID returns the contract identifier or nil.
func (m *SystemUndeleteTransactionBody) GetContractID() *ContractID {
	if m == nil {
		return nil
	}

	v, ok := m.ID.(*SystemUndeleteTransactionBody_ContractID)
	if !ok {
		return nil
	}

	return v.ContractID
}

// MarshalAppend implements hapi.Message.
func (m *SystemUndeleteTransactionBody) MarshalAppend(b []byte) []byte {
	switch v := m.ID.(type) {
	case *SystemUndeleteTransactionBody_FileID:
		b = appendTagBytes(b, 1, messageBytes(v.FileID))
	case *SystemUndeleteTransactionBody_ContractID:
		b = appendTagBytes(b, 2, messageBytes(v.ContractID))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *SystemUndeleteTransactionBody) Unmarshal(data []byte) error {
	*m = SystemUndeleteTransactionBody{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			id := new(FileID)
			d.message(id)
			m.ID = &SystemUndeleteTransactionBody_FileID{FileID: id}
		case 2:
			id := new(ContractID)
			d.message(id)
			m.ID = &SystemUndeleteTransactionBody_ContractID{ContractID: id}
		default:
			d.skip()
		}
	}

	return d.err
}
