package fake

import (
	"context"
	"io"

	"go.dedis.ch/hedera/hapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"golang.org/x/xerrors"
)

// ClientConn is a fake gRPC connection that records the invoked methods and
// answers with a canned reply.
//
// - implements grpc.ClientConnInterface
type ClientConn struct {
	// Calls records the full method name and the request of every call.
	Calls *Call

	reply    hapi.Message
	messages []hapi.Message
	err      error
	errRecv  error
	stream   *ClientStream
}

// NewClientConn returns a connection that answers every unary call with the
// reply. The reply can be nil, in which case the answer is empty.
func NewClientConn(reply hapi.Message) *ClientConn {
	return &ClientConn{
		Calls: &Call{},
		reply: reply,
	}
}

// NewStreamConn returns a connection whose streams produce the messages
// before the end of the stream.
func NewStreamConn(messages ...hapi.Message) *ClientConn {
	return &ClientConn{
		Calls:    &Call{},
		messages: messages,
	}
}

// NewBadClientConn returns a connection that fails every call.
func NewBadClientConn() *ClientConn {
	return &ClientConn{
		Calls: &Call{},
		err:   fakeErr,
	}
}

// NewClientConnWithError returns a connection that fails every call with the
// given error.
func NewClientConnWithError(err error) *ClientConn {
	return &ClientConn{
		Calls: &Call{},
		err:   err,
	}
}

// NewBadStreamConn returns a connection whose streams produce the messages
// and then fail.
func NewBadStreamConn(messages ...hapi.Message) *ClientConn {
	return &ClientConn{
		Calls:    &Call{},
		messages: messages,
		errRecv:  fakeErr,
	}
}

// Method returns the full method name of the nth call.
func (c *ClientConn) Method(n int) string {
	return c.Calls.Get(n, 0).(string)
}

// Request returns the request of the nth call.
func (c *ClientConn) Request(n int) interface{} {
	return c.Calls.Get(n, 1)
}

// Stream returns the last stream opened on the connection.
func (c *ClientConn) Stream() *ClientStream {
	return c.stream
}

// Invoke implements grpc.ClientConnInterface. The reply is populated with the
// wire encoding of the canned reply.
func (c *ClientConn) Invoke(ctx context.Context, method string, args, reply interface{},
	opts ...grpc.CallOption) error {

	c.Calls.Add(method, args)

	if c.err != nil {
		return c.err
	}

	if c.reply == nil {
		return nil
	}

	out, ok := reply.(hapi.Message)
	if !ok {
		return xerrors.Errorf("unsupported reply of type '%T'", reply)
	}

	return hapi.Unmarshal(hapi.Marshal(c.reply), out)
}

// NewStream implements grpc.ClientConnInterface.
func (c *ClientConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string,
	opts ...grpc.CallOption) (grpc.ClientStream, error) {

	c.Calls.Add(method, desc)

	if c.err != nil {
		return nil, c.err
	}

	c.stream = &ClientStream{
		ctx:      ctx,
		messages: c.messages,
		errRecv:  c.errRecv,
	}

	return c.stream, nil
}

// ClientStream is a fake server stream.
//
// - implements grpc.ClientStream
type ClientStream struct {
	ctx      context.Context
	messages []hapi.Message
	errRecv  error

	// Sent holds the messages sent by the client.
	Sent []interface{}
	// Closed is true when the client closed its side of the stream.
	Closed bool
}

// Header implements grpc.ClientStream.
func (s *ClientStream) Header() (metadata.MD, error) {
	return metadata.MD{}, nil
}

// Trailer implements grpc.ClientStream.
func (s *ClientStream) Trailer() metadata.MD {
	return metadata.MD{}
}

// CloseSend implements grpc.ClientStream.
func (s *ClientStream) CloseSend() error {
	s.Closed = true
	return nil
}

// Context implements grpc.ClientStream.
func (s *ClientStream) Context() context.Context {
	return s.ctx
}

// SendMsg implements grpc.ClientStream.
func (s *ClientStream) SendMsg(m interface{}) error {
	s.Sent = append(s.Sent, m)
	return nil
}

// RecvMsg implements grpc.ClientStream. It pops the next message, and returns
// io.EOF, or the configured error, when there is none left.
func (s *ClientStream) RecvMsg(m interface{}) error {
	err := s.ctx.Err()
	if err != nil {
		return err
	}

	if len(s.messages) == 0 {
		if s.errRecv != nil {
			return s.errRecv
		}

		return io.EOF
	}

	next := s.messages[0]
	s.messages = s.messages[1:]

	out, ok := m.(hapi.Message)
	if !ok {
		return xerrors.Errorf("unsupported message of type '%T'", m)
	}

	return hapi.Unmarshal(hapi.Marshal(next), out)
}
