package json

import (
	"time"

	"go.dedis.ch/hedera/entity"
	"go.dedis.ch/hedera/serde"
	"go.dedis.ch/hedera/topic"
	"go.dedis.ch/hedera/transaction"
	"golang.org/x/xerrors"
)

func init() {
	topic.RegisterMessageQueryFormat(serde.FormatJSON, queryFormat{})
	topic.RegisterMessageFormat(serde.FormatJSON, messageFormat{})
}

// MessageQueryJSON is the JSON message of a topic message query. Times are in
// nanoseconds since the epoch.
type MessageQueryJSON struct {
	Type      string          `json:"$type"`
	TopicID   *entity.TopicID `json:"topicId,omitempty"`
	StartTime *int64          `json:"startTime,omitempty"`
	EndTime   *int64          `json:"endTime,omitempty"`
	Limit     uint64          `json:"limit,omitempty"`
}

// ChunkInfoJSON is the JSON message of the chunk information of a message.
type ChunkInfoJSON struct {
	InitialTransactionID transaction.ID `json:"initialTransactionId"`
	Total                int32          `json:"total"`
	Number               int32          `json:"number"`
}

// MessageJSON is the JSON message of a topic message.
type MessageJSON struct {
	ConsensusTimestamp int64          `json:"consensusTimestamp"`
	Contents           []byte         `json:"contents,omitempty"`
	RunningHash        []byte         `json:"runningHash,omitempty"`
	RunningHashVersion uint64         `json:"runningHashVersion,omitempty"`
	SequenceNumber     uint64         `json:"sequenceNumber"`
	Chunk              *ChunkInfoJSON `json:"chunk,omitempty"`
}

// queryFormat is the engine to encode and decode topic message queries in
// JSON format.
//
// - implements serde.FormatEngine
type queryFormat struct{}

// Encode implements serde.FormatEngine.
func (f queryFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	q, ok := msg.(*topic.MessageQuery)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := MessageQueryJSON{
		Type:    topic.MessageQueryType,
		TopicID: q.GetTopicID(),
		Limit:   q.GetLimit(),
	}

	if q.GetStartTime() != nil {
		ns := q.GetStartTime().UnixNano()
		m.StartTime = &ns
	}

	if q.GetEndTime() != nil {
		ns := q.GetEndTime().UnixNano()
		m.EndTime = &ns
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine.
func (f queryFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := MessageQueryJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal topic message query: %v", err)
	}

	q := topic.NewMessageQuery().SetLimit(m.Limit)

	if m.TopicID != nil {
		q.SetTopicID(*m.TopicID)
	}

	if m.StartTime != nil {
		q.SetStartTime(time.Unix(0, *m.StartTime))
	}

	if m.EndTime != nil {
		q.SetEndTime(time.Unix(0, *m.EndTime))
	}

	return q, nil
}

// messageFormat is the engine to encode and decode topic messages in JSON
// format.
//
// - implements serde.FormatEngine
type messageFormat struct{}

// Encode implements serde.FormatEngine.
func (f messageFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tm, ok := msg.(topic.Message)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	m := MessageJSON{
		Contents:           tm.Contents,
		RunningHash:        tm.RunningHash,
		RunningHashVersion: tm.RunningHashVersion,
		SequenceNumber:     tm.SequenceNumber,
	}

	if !tm.ConsensusTimestamp.IsZero() {
		m.ConsensusTimestamp = tm.ConsensusTimestamp.UnixNano()
	}

	if tm.Chunk != nil {
		m.Chunk = &ChunkInfoJSON{
			InitialTransactionID: tm.Chunk.InitialTransactionID,
			Total:                tm.Chunk.Total,
			Number:               tm.Chunk.Number,
		}
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine.
func (f messageFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := MessageJSON{}
	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal topic message: %v", err)
	}

	tm := topic.Message{
		Contents:           m.Contents,
		RunningHash:        m.RunningHash,
		RunningHashVersion: m.RunningHashVersion,
		SequenceNumber:     m.SequenceNumber,
	}

	if m.ConsensusTimestamp != 0 {
		tm.ConsensusTimestamp = time.Unix(0, m.ConsensusTimestamp).UTC()
	}

	if m.Chunk != nil {
		tm.Chunk = &topic.ChunkInfo{
			InitialTransactionID: m.Chunk.InitialTransactionID,
			Total:                m.Chunk.Total,
			Number:               m.Chunk.Number,
		}
	}

	return tm, nil
}
