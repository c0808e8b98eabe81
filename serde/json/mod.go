// Package json implements the JSON context of the serde package. Importing it
// also registers the JSON formats of every builder of the module.
//
// The output is compact and does not escape the HTML characters, so that the
// memos of the transactions read as they were written.
package json

import (
	"bytes"
	"encoding/json"

	_ "go.dedis.ch/hedera/contract/json"
	_ "go.dedis.ch/hedera/crypto/json"
	"go.dedis.ch/hedera/serde"
	_ "go.dedis.ch/hedera/system/json"
	_ "go.dedis.ch/hedera/token/json"
	_ "go.dedis.ch/hedera/topic/json"
	_ "go.dedis.ch/hedera/transaction/json"
)

// engine is the JSON context engine.
//
// - implements serde.ContextEngine
type engine struct{}

// NewContext returns a JSON context.
func NewContext() serde.Context {
	return serde.NewContext(engine{})
}

// GetFormat implements serde.ContextEngine.
func (engine) GetFormat() serde.Format {
	return serde.FormatJSON
}

// Marshal implements serde.ContextEngine.
func (engine) Marshal(value interface{}) ([]byte, error) {
	buffer := new(bytes.Buffer)

	enc := json.NewEncoder(buffer)
	enc.SetEscapeHTML(false)

	err := enc.Encode(value)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// Unmarshal implements serde.ContextEngine.
func (engine) Unmarshal(data []byte, value interface{}) error {
	return json.Unmarshal(data, value)
}
