// Package topic implements the subscription to the messages of a consensus
// topic through a mirror node.
//
// The mirror node streams the messages of the topic in consensus order. The
// subscription lasts until the end of the stream, the first error of the
// handler, or the cancellation of the context.
package topic

import (
	"context"
	"io"
	"time"

	"go.dedis.ch/hedera"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/serde/registry"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
	"google.golang.org/grpc"
)

// MessageQueryType is the type of the serialized query.
const MessageQueryType = "topicMessage"

var (
	queryFormats   = registry.New()
	messageFormats = registry.New()
)

// RegisterMessageQueryFormat registers the engine for the provided format.
func RegisterMessageQueryFormat(f serde.Format, e serde.FormatEngine) {
	queryFormats.Register(f, e)
}

// RegisterMessageFormat registers the engine for the provided format.
func RegisterMessageFormat(f serde.Format, e serde.FormatEngine) {
	messageFormats.Register(f, e)
}

// Handler is called for every message of the subscription. An error stops the
// subscription.
type Handler func(Message) error

// ChunkInfo tells which part of a larger message a message is.
type ChunkInfo struct {
	InitialTransactionID transaction.ID
	Total                int32
	Number               int32
}

// Message is a message of a topic.
//
// - implements serde.Message
type Message struct {
	ConsensusTimestamp time.Time
	Contents           []byte
	RunningHash        []byte
	RunningHashVersion uint64
	SequenceNumber     uint64
	Chunk              *ChunkInfo
}

// MessageFromProtobuf returns the message of the wire message.
func MessageFromProtobuf(pb *hapi.ConsensusTopicResponse) Message {
	if pb == nil {
		return Message{}
	}

	msg := Message{
		Contents:           pb.Message,
		RunningHash:        pb.RunningHash,
		RunningHashVersion: pb.RunningHashVersion,
		SequenceNumber:     pb.SequenceNumber,
	}

	if pb.ConsensusTimestamp != nil {
		msg.ConsensusTimestamp = pb.ConsensusTimestamp.AsTime()
	}

	if pb.ChunkInfo != nil {
		msg.Chunk = &ChunkInfo{
			InitialTransactionID: transaction.IDFromProtobuf(pb.ChunkInfo.InitialTransactionID),
			Total:                pb.ChunkInfo.Total,
			Number:               pb.ChunkInfo.Number,
		}
	}

	return msg
}

// Serialize implements serde.Message.
func (m Message) Serialize(ctx serde.Context) ([]byte, error) {
	format := messageFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode topic message: %v", err)
	}

	return data, nil
}

// MessageQuery is the query of the messages of a topic within a time range.
//
// - implements serde.Message
type MessageQuery struct {
	topicID   *entity.TopicID
	startTime *time.Time
	endTime   *time.Time
	limit     uint64
}

// NewMessageQuery returns a query without limit that starts at the time the
// mirror node receives it.
func NewMessageQuery() *MessageQuery {
	return &MessageQuery{}
}

// SetTopicID sets the topic of the messages.
func (q *MessageQuery) SetTopicID(id entity.TopicID) *MessageQuery {
	q.topicID = &id
	return q
}

// GetTopicID returns the topic of the messages, or nil.
func (q *MessageQuery) GetTopicID() *entity.TopicID {
	return q.topicID
}

// SetStartTime sets the consensus time of the first message, inclusive.
func (q *MessageQuery) SetStartTime(t time.Time) *MessageQuery {
	t = t.UTC()
	q.startTime = &t
	return q
}

// GetStartTime returns the start of the range, or nil.
func (q *MessageQuery) GetStartTime() *time.Time {
	return q.startTime
}

// SetEndTime sets the consensus time of the end of the range, exclusive.
func (q *MessageQuery) SetEndTime(t time.Time) *MessageQuery {
	t = t.UTC()
	q.endTime = &t
	return q
}

// GetEndTime returns the end of the range, or nil.
func (q *MessageQuery) GetEndTime() *time.Time {
	return q.endTime
}

// SetLimit sets the maximum number of messages. Zero means no limit.
func (q *MessageQuery) SetLimit(limit uint64) *MessageQuery {
	q.limit = limit
	return q
}

// GetLimit returns the maximum number of messages.
func (q *MessageQuery) GetLimit() uint64 {
	return q.limit
}

// ToProtobuf returns the wire message of the query.
func (q *MessageQuery) ToProtobuf() *hapi.ConsensusTopicQuery {
	pb := &hapi.ConsensusTopicQuery{Limit: q.limit}

	if q.topicID != nil {
		pb.TopicID = q.topicID.ToProtobuf()
	}

	if q.startTime != nil {
		pb.ConsensusStartTime = hapi.NewTimestamp(*q.startTime)
	}

	if q.endTime != nil {
		pb.ConsensusEndTime = hapi.NewTimestamp(*q.endTime)
	}

	return pb
}

// MessageQueryFromProtobuf returns the query of the wire message.
func MessageQueryFromProtobuf(pb *hapi.ConsensusTopicQuery) *MessageQuery {
	q := NewMessageQuery()

	if pb == nil {
		return q
	}

	q.SetLimit(pb.Limit)

	if pb.TopicID != nil {
		q.SetTopicID(entity.TopicIDFromProtobuf(pb.TopicID))
	}

	if pb.ConsensusStartTime != nil {
		q.SetStartTime(pb.ConsensusStartTime.AsTime())
	}

	if pb.ConsensusEndTime != nil {
		q.SetEndTime(pb.ConsensusEndTime.AsTime())
	}

	return q
}

// ValidateChecksums returns an error if the topic has a checksum that does
// not belong to the ledger.
func (q *MessageQuery) ValidateChecksums(id ledger.ID) error {
	if q.topicID == nil {
		return nil
	}

	err := q.topicID.ValidateChecksum(id)
	if err != nil {
		return xerrors.Errorf("topic id: %w", err)
	}

	return nil
}

// Subscribe opens the stream of the messages of the topic on the mirror
// connection and calls the handler for each of them. It returns nil at the
// end of the stream, the error of the handler, or the error of the context
// when it is done.
func (q *MessageQuery) Subscribe(ctx context.Context, conn grpc.ClientConnInterface, fn Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := hapi.NewConsensusServiceClient(conn).SubscribeTopic(ctx, q.ToProtobuf())
	if err != nil {
		return xerrors.Errorf("couldn't open stream: %v", err)
	}

	count := 0
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			hedera.Logger.Debug().
				Int("messages", count).
				Msg("topic stream closed")

			return nil
		}

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return xerrors.Errorf("couldn't receive message: %v", err)
		}

		count++

		err = fn(MessageFromProtobuf(resp))
		if err != nil {
			return xerrors.Errorf("handler failed: %w", err)
		}
	}
}

// Serialize implements serde.Message.
func (q *MessageQuery) Serialize(ctx serde.Context) ([]byte, error) {
	format := queryFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, q)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode topic message query: %v", err)
	}

	return data, nil
}

// messageQueryFactory is the factory to deserialize topic message queries.
//
// - implements serde.Factory
type messageQueryFactory struct{}

// NewMessageQueryFactory returns a new instance of the factory.
func NewMessageQueryFactory() serde.Factory {
	return messageQueryFactory{}
}

// Deserialize implements serde.Factory.
func (f messageQueryFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := queryFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode topic message query: %v", err)
	}

	return msg, nil
}

// messageFactory is the factory to deserialize topic messages.
//
// - implements serde.Factory
type messageFactory struct{}

// NewMessageFactory returns a new instance of the factory.
func NewMessageFactory() serde.Factory {
	return messageFactory{}
}

// Deserialize implements serde.Factory.
func (f messageFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := messageFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode topic message: %v", err)
	}

	return msg, nil
}
