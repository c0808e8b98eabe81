// Package hapi defines the wire messages of the Hedera API and the clients of
// the remote services that accept them.
//
// The messages are plain Go structures that encode themselves in the protobuf
// binary format with the field numbers of the Hedera API schema. Fields are
// written in ascending field number order and the proto3 default values are
// omitted, so that two equal messages always produce the same bytes. Unknown
// fields are skipped when decoding.
package hapi

import (
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"golang.org/x/xerrors"
)

// Message is the interface implemented by every wire message.
type Message interface {
	// MarshalAppend appends the wire encoding of the message to the buffer and
	// returns the extended buffer.
	MarshalAppend(b []byte) []byte

	// Unmarshal resets the message and populates it from the wire encoding.
	Unmarshal(data []byte) error
}

// Marshal returns the wire encoding of the message.
func Marshal(m Message) []byte {
	return m.MarshalAppend(nil)
}

// Unmarshal populates the message from its wire encoding.
func Unmarshal(data []byte, m Message) error {
	err := m.Unmarshal(data)
	if err != nil {
		return xerrors.Errorf("couldn't decode %T: %w", m, err)
	}

	return nil
}

type message[T any] interface {
	*T
	Message
}

// appendVarint appends the field unless it holds the default value.
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}

	return appendTagVarint(b, num, v)
}

// appendTagVarint always appends the field. It is used for the members of a
// oneof that must be written even when they hold the default value.
func appendTagVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	return appendVarint(b, num, uint64(v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, uint64(v))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}

	return appendTagBytes(b, num, v)
}

func appendTagBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage[T any, M message[T]](b []byte, num protowire.Number, m M) []byte {
	if m == nil {
		return b
	}

	return appendTagBytes(b, num, m.MarshalAppend(nil))
}

func appendPacked(b []byte, num protowire.Number, values []int64) []byte {
	if len(values) == 0 {
		return b
	}

	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, uint64(v))
	}

	return appendTagBytes(b, num, packed)
}

// The well-known wrappers only have a value at field 1, which is omitted when
// it is the default one.

func appendStringValue(b []byte, num protowire.Number, v *wrapperspb.StringValue) []byte {
	if v == nil {
		return b
	}

	return appendTagBytes(b, num, appendString(nil, 1, v.GetValue()))
}

func appendInt32Value(b []byte, num protowire.Number, v *wrapperspb.Int32Value) []byte {
	if v == nil {
		return b
	}

	return appendTagBytes(b, num, appendInt32(nil, 1, v.GetValue()))
}

func appendBoolValue(b []byte, num protowire.Number, v *wrapperspb.BoolValue) []byte {
	if v == nil {
		return b
	}

	return appendTagBytes(b, num, appendBool(nil, 1, v.GetValue()))
}

// decoder iterates over the fields of an encoded message. The first error
// stops the iteration and is reported by the err field.
type decoder struct {
	buf []byte
	num protowire.Number
	typ protowire.Type
	err error
}

func newDecoder(data []byte) *decoder {
	return &decoder{buf: data}
}

func (d *decoder) next() bool {
	if d.err != nil || len(d.buf) == 0 {
		return false
	}

	num, typ, n := protowire.ConsumeTag(d.buf)
	if n < 0 {
		d.err = xerrors.Errorf("invalid tag: %w", protowire.ParseError(n))
		return false
	}

	d.buf = d.buf[n:]
	d.num = num
	d.typ = typ

	return true
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = xerrors.Errorf("field %d: %w", d.num, err)
	}

	d.buf = nil
}

func (d *decoder) expect(typ protowire.Type) bool {
	if d.typ != typ {
		d.fail(xerrors.Errorf("invalid wire type %d", d.typ))
		return false
	}

	return true
}

func (d *decoder) varint() uint64 {
	if !d.expect(protowire.VarintType) {
		return 0
	}

	v, n := protowire.ConsumeVarint(d.buf)
	if n < 0 {
		d.fail(protowire.ParseError(n))
		return 0
	}

	d.buf = d.buf[n:]

	return v
}

func (d *decoder) int64() int64 {
	return int64(d.varint())
}

func (d *decoder) int32() int32 {
	return int32(d.varint())
}

func (d *decoder) uint32() uint32 {
	return uint32(d.varint())
}

func (d *decoder) bool() bool {
	return protowire.DecodeBool(d.varint())
}

// raw returns the content of a length-delimited field without copying it.
func (d *decoder) raw() []byte {
	if !d.expect(protowire.BytesType) {
		return nil
	}

	v, n := protowire.ConsumeBytes(d.buf)
	if n < 0 {
		d.fail(protowire.ParseError(n))
		return nil
	}

	d.buf = d.buf[n:]

	return v
}

func (d *decoder) bytes() []byte {
	return append([]byte(nil), d.raw()...)
}

func (d *decoder) string() string {
	v := d.raw()
	if !utf8.Valid(v) {
		d.fail(xerrors.New("invalid UTF-8"))
		return ""
	}

	return string(v)
}

func (d *decoder) message(m Message) {
	data := d.raw()
	if d.err != nil {
		return
	}

	err := m.Unmarshal(data)
	if err != nil {
		d.fail(err)
	}
}

func (d *decoder) wrapper(m proto.Message) {
	data := d.raw()
	if d.err != nil {
		return
	}

	err := proto.Unmarshal(data, m)
	if err != nil {
		d.fail(err)
	}
}

// packed reads a repeated int64 field in either the packed or the expanded
// encoding.
func (d *decoder) packed(values []int64) []int64 {
	if d.typ == protowire.VarintType {
		return append(values, d.int64())
	}

	data := d.raw()
	for len(data) > 0 && d.err == nil {
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			d.fail(protowire.ParseError(n))
			return values
		}

		values = append(values, int64(v))
		data = data[n:]
	}

	return values
}

func (d *decoder) skip() {
	n := protowire.ConsumeFieldValue(d.num, d.typ, d.buf)
	if n < 0 {
		d.fail(protowire.ParseError(n))
		return
	}

	d.buf = d.buf[n:]
}

// messageBytes returns the encoding of a message that is written even when it
// is nil, like the members of a oneof and the elements of a repeated field.
func messageBytes[T any, M message[T]](m M) []byte {
	if m == nil {
		return nil
	}

	return m.MarshalAppend(nil)
}
