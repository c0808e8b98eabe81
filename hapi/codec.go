package hapi

import "golang.org/x/xerrors"

// Codec is the gRPC codec of the wire messages. It is registered under the
// name of the protobuf codec so that the content type matches what the nodes
// expect, but it must be forced on the calls as it only supports the messages
// of this package.
//
// - implements encoding.Codec
type Codec struct{}

// Marshal implements encoding.Codec. It returns the wire encoding of the
// message.
func (Codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", v)
	}

	return m.MarshalAppend(nil), nil
}

// Unmarshal implements encoding.Codec. It populates the message from the wire
// encoding.
func (Codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(Message)
	if !ok {
		return xerrors.Errorf("unsupported message of type '%T'", v)
	}

	return m.Unmarshal(data)
}

// Name implements encoding.Codec. It returns the name of the codec.
func (Codec) Name() string {
	return "proto"
}
