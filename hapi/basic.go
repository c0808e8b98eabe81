package hapi

import "time"

// Timestamp is an instant in time as seconds and nanoseconds since the epoch.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// NewTimestamp returns the wire timestamp of the time.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()),
	}
}

// AsTime returns the time of the timestamp in UTC.
func (m *Timestamp) AsTime() time.Time {
	if m == nil {
		return time.Unix(0, 0).UTC()
	}

	return time.Unix(m.Seconds, int64(m.Nanos)).UTC()
}

// MarshalAppend implements hapi.Message.
func (m *Timestamp) MarshalAppend(b []byte) []byte {
	b = appendInt64(b, 1, m.Seconds)
	b = appendInt32(b, 2, m.Nanos)
	return b
}

// Unmarshal implements hapi.Message.
func (m *Timestamp) Unmarshal(data []byte) error {
	*m = Timestamp{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Seconds = d.int64()
		case 2:
			m.Nanos = d.int32()
		default:
			d.skip()
		}
	}

	return d.err
}

// Duration is a length of time in seconds.
type Duration struct {
	Seconds int64
}

// NewDuration returns the wire duration of d, truncated to the second.
func NewDuration(d time.Duration) *Duration {
	return &Duration{Seconds: int64(d / time.Second)}
}

// AsDuration returns the duration.
func (m *Duration) AsDuration() time.Duration {
	if m == nil {
		return 0
	}

	return time.Duration(m.Seconds) * time.Second
}

// MarshalAppend implements hapi.Message.
func (m *Duration) MarshalAppend(b []byte) []byte {
	return appendInt64(b, 1, m.Seconds)
}

// Unmarshal implements hapi.Message.
func (m *Duration) Unmarshal(data []byte) error {
	*m = Duration{}

	d := newDecoder(data)
	for d.next() {
		switch d.num {
		case 1:
			m.Seconds = d.int64()
		default:
			d.skip()
		}
	}

	return d.err
}
