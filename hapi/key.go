package hapi

// Key is a key, a list of keys or a threshold of keys that must sign a
// transaction.
type Key struct {
	Key isKey_Key
}

type isKey_Key interface {
	isKey_Key()
}

// Key_ContractID is a key satisfied by a call from the contract.
type Key_ContractID struct {
	ContractID *ContractID
}

// Key_Ed25519 is an Ed25519 public key of 32 bytes.
type Key_Ed25519 struct {
	Ed25519 []byte
}

// Key_RSA_3072 is a RSA-3072 public key. It is not supported by the network.
type Key_RSA_3072 struct {
	RSA_3072 []byte
}

// Key_ECDSA_384 is an ECDSA P-384 public key. It is not supported by the
// network.
type Key_ECDSA_384 struct {
	ECDSA_384 []byte
}

// Key_ThresholdKey is a threshold of keys.
type Key_ThresholdKey struct {
	ThresholdKey *ThresholdKey
}

// Key_KeyList is a list of keys that must all sign.
type Key_KeyList struct {
	KeyList *KeyList
}

// Key_ECDSASecp256K1 is a compressed secp256k1 public key of 33 bytes.
type Key_ECDSASecp256K1 struct {
	ECDSASecp256K1 []byte
}

// Key_DelegatableContractID is a key satisfied by a delegate call from the
// contract.
type Key_DelegatableContractID struct {
	DelegatableContractID *ContractID
}

func (*Key_ContractID) isKey_Key() {}

func (*Key_Ed25519) isKey_Key() {}

func (*Key_RSA_3072) isKey_Key() {}

func (*Key_ECDSA_384) isKey_Key() {}

func (*Key_ThresholdKey) isKey_Key() {}

func (*Key_KeyList) isKey_Key() {}

func (*Key_ECDSASecp256K1) isKey_Key() {}

func (*Key_DelegatableContractID) isKey_Key() {}

// MarshalAppend implements hapi.Message.
func (m *Key) MarshalAppend(b []byte) []byte {
	switch v := m.Key.(type) {
	case *Key_ContractID:
		b = appendTagBytes(b, 1, messageBytes(v.ContractID))
	case *Key_Ed25519:
		b = appendTagBytes(b, 2, v.Ed25519)
	case *Key_RSA_3072:
		b = appendTagBytes(b, 3, v.RSA_3072)
	case *Key_ECDSA_384:
		b = appendTagBytes(b, 4, v.ECDSA_384)
	case *Key_ThresholdKey:
		b = appendTagBytes(b, 5, messageBytes(v.ThresholdKey))
	case *Key_KeyList:
		b = appendTagBytes(b, 6, messageBytes(v.KeyList))
	case *Key_ECDSASecp256K1:
		b = appendTagBytes(b, 7, v.ECDSASecp256K1)
	case *Key_DelegatableContractID:
		b = appendTagBytes(b, 8, messageBytes(v.DelegatableContractID))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *Key) Unmarshal(data []byte) error {
	*m = Key{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			id := new(ContractID)
			d.message(id)
			m.Key = &Key_ContractID{ContractID: id}
		case 2:
			m.Key = &Key_Ed25519{Ed25519: d.bytes()}
		case 3:
			m.Key = &Key_RSA_3072{RSA_3072: d.bytes()}
		case 4:
			m.Key = &Key_ECDSA_384{ECDSA_384: d.bytes()}
		case 5:
			key := new(ThresholdKey)
			d.message(key)
			m.Key = &Key_ThresholdKey{ThresholdKey: key}
		case 6:
			list := new(KeyList)
			d.message(list)
			m.Key = &Key_KeyList{KeyList: list}
		case 7:
			m.Key = &Key_ECDSASecp256K1{ECDSASecp256K1: d.bytes()}
		case 8:
			id := new(ContractID)
			d.message(id)
			m.Key = &Key_DelegatableContractID{DelegatableContractID: id}
		default:
			d.skip()
		}
	}

	return d.err
}

// KeyList is a list of keys.
type KeyList struct {
	Keys []*Key
}

// MarshalAppend implements hapi.Message.
func (m *KeyList) MarshalAppend(b []byte) []byte {
	for _, key := range m.Keys {
		b = appendTagBytes(b, 1, messageBytes(key))
	}

	return b
}

// Unmarshal implements hapi.Message.
func (m *KeyList) Unmarshal(data []byte) error {
	*m = KeyList{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			key := new(Key)
			d.message(key)
			m.Keys = append(m.Keys, key)
		default:
			d.skip()
		}
	}

	return d.err
}

// ThresholdKey is a list of keys of which at least the threshold must sign.
type ThresholdKey struct {
	Threshold uint32
	Keys      *KeyList
}

// MarshalAppend implements hapi.Message.
func (m *ThresholdKey) MarshalAppend(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.Threshold))
	b = appendMessage(b, 2, m.Keys)
	return b
}

// Unmarshal implements hapi.Message.
func (m *ThresholdKey) Unmarshal(data []byte) error {
	*m = ThresholdKey{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Threshold = d.uint32()
		case 2:
			m.Keys = new(KeyList)
			d.message(m.Keys)
		default:
			d.skip()
		}
	}

	return d.err
}
