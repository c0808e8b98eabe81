// Package serde defines the primitives to serialize and deserialize (serde)
// the builders of the module in a human-readable form.
//
// A message is serialized through the format engine registered for the format
// of the context. The wire encoding used to talk to the network is not part
// of this package: it is owned by the hapi package.
package serde

// Format is the identifier of a serialization format.
type Format string

const (
	// FormatJSON is the identifier of the JSON format.
	FormatJSON Format = "JSON"
)

// Message is the interface a data model should implement to be serialized.
type Message interface {
	// Serialize returns the serialized data of the message according to the
	// format of the context.
	Serialize(ctx Context) ([]byte, error)
}

// Factory is the interface to implement to instantiate a message from its
// serialized data.
type Factory interface {
	// Deserialize returns the message of the data according to the format of
	// the context.
	Deserialize(ctx Context, data []byte) (Message, error)
}

// FormatEngine is the interface to implement to support a format for a
// message.
type FormatEngine interface {
	// Encode returns the data of the message in the format of the engine.
	Encode(ctx Context, message Message) ([]byte, error)

	// Decode returns the message of the data in the format of the engine.
	Decode(ctx Context, data []byte) (Message, error)
}
