// Package registry maps the serialization formats to the engines that encode
// and decode a kind of message.
//
// Each builder package owns one registry per message kind and the format
// packages, like contract/json, fill it from their init functions. A lookup
// never fails: an unknown format resolves to an engine whose operations
// return an error naming the format.
package registry

import (
	"fmt"
	"sync"

	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/serde"
	"golang.org/x/xerrors"
)

// Registry stores the engine of each format of a kind of message.
type Registry interface {
	// Register sets the engine of the format, replacing any previous one.
	Register(serde.Format, serde.FormatEngine)

	// Get returns the engine of the format.
	Get(serde.Format) serde.FormatEngine
}

// Formats is a registry safe for concurrent use.
//
// - implements registry.Registry
type Formats struct {
	sync.RWMutex
	engines map[serde.Format]serde.FormatEngine
}

// New returns an empty registry.
func New() *Formats {
	return &Formats{
		engines: make(map[serde.Format]serde.FormatEngine),
	}
}

// Register implements registry.Registry.
func (r *Formats) Register(format serde.Format, engine serde.FormatEngine) {
	r.Lock()
	r.engines[format] = engine
	r.Unlock()

	hedera.Logger.Trace().
		Str("format", string(format)).
		Str("engine", fmt.Sprintf("%T", engine)).
		Msg("format registered")
}

// Get implements registry.Registry. The engine of an unknown format fails on
// every call.
func (r *Formats) Get(format serde.Format) serde.FormatEngine {
	r.RLock()
	engine, ok := r.engines[format]
	r.RUnlock()

	if !ok || engine == nil {
		return missingFormat(format)
	}

	return engine
}

// Len returns the number of registered formats.
func (r *Formats) Len() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.engines)
}

// missingFormat is the engine of a format without registration.
//
// - implements serde.FormatEngine
type missingFormat serde.Format

func (f missingFormat) err() error {
	return xerrors.Errorf("format '%s' is not implemented", string(f))
}

// Encode implements serde.FormatEngine.
func (f missingFormat) Encode(serde.Context, serde.Message) ([]byte, error) {
	return nil, f.err()
}

// Decode implements serde.FormatEngine.
func (f missingFormat) Decode(serde.Context, []byte) (serde.Message, error) {
	return nil, f.err()
}
