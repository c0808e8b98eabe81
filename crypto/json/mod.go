package json

import (
	"encoding/json"

	"go.dedis.ch/hedera/crypto"
	"go.dedis.ch/hedera/serde"
	"golang.org/x/xerrors"
)

func init() {
	crypto.RegisterKeyFormat(serde.FormatJSON, keyFormat{})
}

// KeyJSON is the JSON message of a key. Exactly one of the fields is set.
type KeyJSON struct {
	Single       string            `json:"single,omitempty"`
	KeyList      json.RawMessage   `json:"keyList,omitempty"`
	ThresholdKey *ThresholdKeyJSON `json:"thresholdKey,omitempty"`
}

// ThresholdKeyJSON is the JSON message of a threshold key.
type ThresholdKeyJSON struct {
	Threshold uint32            `json:"threshold"`
	Keys      []json.RawMessage `json:"keys"`
}

// keyFormat is the engine to encode and decode keys in JSON format.
//
// - implements serde.FormatEngine
type keyFormat struct{}

// Encode implements serde.FormatEngine. It returns the data of the key.
func (f keyFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	var m KeyJSON

	switch key := msg.(type) {
	case crypto.PublicKey:
		m.Single = key.String()
	case crypto.KeyList:
		keys, err := encodeKeys(ctx, key.Keys)
		if err != nil {
			return nil, err
		}

		if key.Threshold == 0 {
			m.KeyList, err = ctx.Marshal(keys)
			if err != nil {
				return nil, xerrors.Errorf("couldn't marshal key list: %v", err)
			}
		} else {
			m.ThresholdKey = &ThresholdKeyJSON{
				Threshold: key.Threshold,
				Keys:      keys,
			}
		}
	default:
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the key of the data.
func (f keyFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := KeyJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal key: %v", err)
	}

	switch {
	case m.Single != "":
		pk, err := crypto.ParsePublicKey(m.Single)
		if err != nil {
			return nil, xerrors.Errorf("couldn't parse key: %v", err)
		}

		return pk, nil
	case m.KeyList != nil:
		var raw []json.RawMessage

		err = ctx.Unmarshal(m.KeyList, &raw)
		if err != nil {
			return nil, xerrors.Errorf("couldn't unmarshal key list: %v", err)
		}

		keys, err := f.decodeKeys(ctx, raw)
		if err != nil {
			return nil, err
		}

		return crypto.KeyList{Keys: keys}, nil
	case m.ThresholdKey != nil:
		keys, err := f.decodeKeys(ctx, m.ThresholdKey.Keys)
		if err != nil {
			return nil, err
		}

		return crypto.KeyList{Keys: keys, Threshold: m.ThresholdKey.Threshold}, nil
	default:
		return nil, xerrors.New("empty key")
	}
}

func (f keyFormat) decodeKeys(ctx serde.Context, raw []json.RawMessage) ([]crypto.Key, error) {
	keys := make([]crypto.Key, len(raw))

	for i, data := range raw {
		msg, err := f.Decode(ctx, data)
		if err != nil {
			return nil, xerrors.Errorf("key %d: %v", i, err)
		}

		keys[i] = msg.(crypto.Key)
	}

	return keys, nil
}

func encodeKeys(ctx serde.Context, keys []crypto.Key) ([]json.RawMessage, error) {
	raw := make([]json.RawMessage, len(keys))

	for i, key := range keys {
		data, err := key.Serialize(ctx)
		if err != nil {
			return nil, xerrors.Errorf("couldn't serialize key %d: %v", i, err)
		}

		raw[i] = data
	}

	return raw, nil
}
