package hapi

// ConsensusTopicQuery subscribes to the messages of a topic on a mirror node.
type ConsensusTopicQuery struct {
	TopicID            *TopicID
	ConsensusStartTime *Timestamp
	ConsensusEndTime   *Timestamp
	Limit              uint64
}

// MarshalAppend implements hapi.Message.
func (m *ConsensusTopicQuery) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.TopicID)
	b = appendMessage(b, 2, m.ConsensusStartTime)
	b = appendMessage(b, 3, m.ConsensusEndTime)
	b = appendVarint(b, 4, m.Limit)
	return b
}

// Unmarshal implements hapi.Message.
func (m *ConsensusTopicQuery) Unmarshal(data []byte) error {
	*m = ConsensusTopicQuery{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.TopicID = new(TopicID)
			d.message(m.TopicID)
		case 2:
			m.ConsensusStartTime = new(Timestamp)
			d.message(m.ConsensusStartTime)
		case 3:
			m.ConsensusEndTime = new(Timestamp)
			d.message(m.ConsensusEndTime)
		case 4:
			m.Limit = d.varint()
		default:
			d.skip()
		}
	}

	return d.err
}

// ConsensusTopicResponse is a message of a topic streamed by a mirror node.
type ConsensusTopicResponse struct {
	ConsensusTimestamp *Timestamp
	Message            []byte
	RunningHash        []byte
	SequenceNumber     uint64
	RunningHashVersion uint64
	ChunkInfo          *ConsensusMessageChunkInfo
}

// MarshalAppend implements hapi.Message.
func (m *ConsensusTopicResponse) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.ConsensusTimestamp)
	b = appendBytes(b, 2, m.Message)
	b = appendBytes(b, 3, m.RunningHash)
	b = appendVarint(b, 4, m.SequenceNumber)
	b = appendVarint(b, 5, m.RunningHashVersion)
	b = appendMessage(b, 6, m.ChunkInfo)
	return b
}

// Unmarshal implements hapi.Message.
func (m *ConsensusTopicResponse) Unmarshal(data []byte) error {
	*m = ConsensusTopicResponse{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.ConsensusTimestamp = new(Timestamp)
			d.message(m.ConsensusTimestamp)
		case 2:
			m.Message = d.bytes()
		case 3:
			m.RunningHash = d.bytes()
		case 4:
			m.SequenceNumber = d.varint()
		case 5:
			m.RunningHashVersion = d.varint()
		case 6:
			m.ChunkInfo = new(ConsensusMessageChunkInfo)
			d.message(m.ChunkInfo)
		default:
			d.skip()
		}
	}

	return d.err
}

// ConsensusMessageChunkInfo locates a message in a sequence of chunks.
type ConsensusMessageChunkInfo struct {
	InitialTransactionID *TransactionID
	Total                int32
	Number               int32
}

// MarshalAppend implements hapi.Message.
func (m *ConsensusMessageChunkInfo) MarshalAppend(b []byte) []byte {
	b = appendMessage(b, 1, m.InitialTransactionID)
	b = appendInt32(b, 2, m.Total)
	b = appendInt32(b, 3, m.Number)
	return b
}

// Unmarshal implements hapi.Message.
func (m *ConsensusMessageChunkInfo) Unmarshal(data []byte) error {
	*m = ConsensusMessageChunkInfo{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.InitialTransactionID = new(TransactionID)
			d.message(m.InitialTransactionID)
		case 2:
			m.Total = d.int32()
		case 3:
			m.Number = d.int32()
		default:
			d.skip()
		}
	}

	return d.err
}
