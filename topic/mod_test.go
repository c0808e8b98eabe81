package topic

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/hapi"
	"go.dedis.ch/hedera/internal/testing/fake"
	"go.dedis.ch/hedera/ledger"
	"go.dedis.ch/hedera/transaction"
)

func init() {
	RegisterMessageQueryFormat(fake.GoodFormat, fake.Format{Msg: NewMessageQuery()})
	RegisterMessageQueryFormat(fake.BadFormat, fake.NewBadFormat())
	RegisterMessageFormat(fake.GoodFormat, fake.Format{Msg: Message{}})
	RegisterMessageFormat(fake.BadFormat, fake.NewBadFormat())
}

func TestMessageQuery_Getters(t *testing.T) {
	q := NewMessageQuery()
	require.Nil(t, q.GetTopicID())
	require.Nil(t, q.GetStartTime())
	require.Nil(t, q.GetEndTime())
	require.Zero(t, q.GetLimit())

	q = makeQuery()
	require.Equal(t, entity.TopicID{Num: 9}, *q.GetTopicID())
	require.Equal(t, time.Unix(100, 0).UTC(), *q.GetStartTime())
	require.Equal(t, time.Unix(200, 0).UTC(), *q.GetEndTime())
	require.Equal(t, uint64(10), q.GetLimit())
}

func TestMessageQuery_ToProtobuf(t *testing.T) {
	pb := makeQuery().ToProtobuf()
	require.Equal(t, "0a021809120208641a0308c801200a", hex.EncodeToString(hapi.Marshal(pb)))

	require.Empty(t, hapi.Marshal(NewMessageQuery().ToProtobuf()))

	require.Equal(t, makeQuery(), MessageQueryFromProtobuf(pb))
	require.Equal(t, NewMessageQuery(), MessageQueryFromProtobuf(nil))
}

func TestMessageQuery_ValidateChecksums(t *testing.T) {
	require.NoError(t, NewMessageQuery().ValidateChecksums(ledger.Testnet))

	q := NewMessageQuery().SetTopicID(entity.TopicID{Num: 123, Checksum: "vfmkw"})
	require.NoError(t, q.ValidateChecksums(ledger.Mainnet))

	err := q.ValidateChecksums(ledger.Testnet)
	require.EqualError(t, err,
		"topic id: checksum mismatch for 0.0.123: expected 'esxsf' but got 'vfmkw'")

	var csErr *ledger.ChecksumError
	require.True(t, errors.As(err, &csErr))
}

func TestMessageQuery_Subscribe(t *testing.T) {
	conn := fake.NewStreamConn(makeResponse(1), makeResponse(2), makeResponse(3))

	var messages []Message
	err := makeQuery().Subscribe(context.Background(), conn, func(msg Message) error {
		messages = append(messages, msg)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, uint64(3), messages[2].SequenceNumber)
	require.Equal(t, []byte("message"), messages[0].Contents)

	require.Equal(t, hapi.ConsensusService_SubscribeTopic_FullMethodName, conn.Method(0))
	require.Len(t, conn.Stream().Sent, 1)
	require.Equal(t, makeQuery().ToProtobuf(), conn.Stream().Sent[0])
	require.True(t, conn.Stream().Closed)
}

func TestMessageQuery_SubscribeHandlerError(t *testing.T) {
	conn := fake.NewStreamConn(makeResponse(1), makeResponse(2))

	count := 0
	err := makeQuery().Subscribe(context.Background(), conn, func(msg Message) error {
		count++
		return fake.GetError()
	})
	require.EqualError(t, err, fake.Err("handler failed"))
	require.True(t, errors.Is(err, fake.GetError()))
	require.Equal(t, 1, count)
}

func TestMessageQuery_SubscribeContext(t *testing.T) {
	conn := fake.NewStreamConn(makeResponse(1), makeResponse(2))

	ctx, cancel := context.WithCancel(context.Background())

	count := 0
	err := makeQuery().Subscribe(ctx, conn, func(msg Message) error {
		count++
		cancel()
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, count)
}

func TestMessageQuery_SubscribeFailures(t *testing.T) {
	noop := func(Message) error { return nil }

	err := makeQuery().Subscribe(context.Background(), fake.NewBadClientConn(), noop)
	require.EqualError(t, err, fake.Err("couldn't open stream"))

	conn := fake.NewBadStreamConn(makeResponse(1))

	count := 0
	err = makeQuery().Subscribe(context.Background(), conn, func(Message) error {
		count++
		return nil
	})
	require.EqualError(t, err, fake.Err("couldn't receive message"))
	require.Equal(t, 1, count)
}

func TestMessageFromProtobuf(t *testing.T) {
	msg := MessageFromProtobuf(makeResponse(4))
	require.Equal(t, time.Unix(100, 4).UTC(), msg.ConsensusTimestamp)
	require.Equal(t, []byte("message"), msg.Contents)
	require.Equal(t, []byte{0xaa}, msg.RunningHash)
	require.Equal(t, uint64(3), msg.RunningHashVersion)
	require.Equal(t, uint64(4), msg.SequenceNumber)
	require.Nil(t, msg.Chunk)

	pb := makeResponse(5)
	pb.ChunkInfo = &hapi.ConsensusMessageChunkInfo{
		InitialTransactionID: transaction.ID{
			AccountID:  entity.AccountID{Num: 5},
			ValidStart: time.Unix(50, 0),
		}.ToProtobuf(),
		Total:  2,
		Number: 1,
	}

	msg = MessageFromProtobuf(pb)
	require.NotNil(t, msg.Chunk)
	require.Equal(t, "0.0.5@50.000000000", msg.Chunk.InitialTransactionID.String())
	require.Equal(t, int32(2), msg.Chunk.Total)
	require.Equal(t, int32(1), msg.Chunk.Number)

	require.Equal(t, Message{}, MessageFromProtobuf(nil))
}

func TestMessageQuery_Serialize(t *testing.T) {
	data, err := NewMessageQuery().Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = NewMessageQuery().Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("couldn't encode topic message query"))
}

func TestMessageQueryFactory_Deserialize(t *testing.T) {
	msg, err := NewMessageQueryFactory().Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, NewMessageQuery(), msg)

	_, err = NewMessageQueryFactory().Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("couldn't decode topic message query"))
}

func TestMessage_Serialize(t *testing.T) {
	data, err := Message{}.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = Message{}.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("couldn't encode topic message"))
}

func TestMessageFactory_Deserialize(t *testing.T) {
	msg, err := NewMessageFactory().Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, Message{}, msg)

	_, err = NewMessageFactory().Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("couldn't decode topic message"))
}

// -----------------------------------------------------------------------------
// Utility functions

func makeQuery() *MessageQuery {
	return NewMessageQuery().
		SetTopicID(entity.TopicID{Num: 9}).
		SetStartTime(time.Unix(100, 0)).
		SetEndTime(time.Unix(200, 0)).
		SetLimit(10)
}

func makeResponse(seq uint64) *hapi.ConsensusTopicResponse {
	return &hapi.ConsensusTopicResponse{
		ConsensusTimestamp: hapi.NewTimestamp(time.Unix(100, int64(seq))),
		Message:            []byte("message"),
		RunningHash:        []byte{0xaa},
		SequenceNumber:     seq,
		RunningHashVersion: 3,
	}
}
