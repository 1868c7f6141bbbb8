/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package jsonwriter writes JSON piecewise to an io.Writer. Unlike encoding/json, which
// marshals a fully-formed Go value, a Stream is driven token by token (object start, field,
// value, ...) which lets a caller serialize a tree it is walking without first mirroring it into
// maps and slices.
package jsonwriter

import (
	"encoding/json"
	"io"
	"reflect"
)

const streamBufSize = 512

// Stream writes JSON tokens to an io.Writer through a small buffer. Errors are sticky: once any
// write fails, later writes are discarded and Flush/Error report the first failure, so call
// sites don't need to check after every token.
type Stream struct {
	w io.Writer

	// buf batches the many tiny punctuation writes; it flushes to w when a write would overflow
	// its initial capacity.
	buf []byte

	// scratch backs strconv.Append* conversions for numbers.
	scratch [64]byte

	// fallback lazily holds an encoding/json encoder for values this writer has no native
	// encoding for.
	fallback *json.Encoder

	err error
}

// NewStream creates a Stream writing to w.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		w:   w,
		buf: make([]byte, 0, streamBufSize),
	}
}

// Error returns the first error the stream ran into, if any.
func (stream *Stream) Error() error {
	return stream.err
}

// write sends b through the buffer, spilling to the underlying writer when it would overflow.
func (stream *Stream) write(b []byte) {
	if stream.err != nil {
		return
	}

	buf := stream.buf
	used := len(buf)
	if used+len(b) < streamBufSize {
		buf = buf[:used+len(b)]
		copy(buf[used:], b)
		stream.buf = buf
		return
	}

	if used > 0 {
		_, err := stream.w.Write(buf)
		stream.buf = buf[:0]
		if err != nil {
			stream.err = err
			return
		}
	}

	if len(b) > 0 {
		if _, err := stream.w.Write(b); err != nil {
			stream.err = err
		}
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (stream *Stream) Flush() error {
	if stream.err != nil {
		return stream.err
	}

	buf := stream.buf
	if len(buf) > 0 {
		_, err := stream.w.Write(buf)
		stream.buf = buf[:0]
		if err != nil {
			stream.err = err
			return err
		}
	}
	return nil
}

// putByte and putBytes append punctuation and short literals straight into the buffer. They skip
// the overflow check: the buffer always flushes before overrunning its capacity in write, and
// append grows it if a long run of punctuation outpaces that.
func (stream *Stream) putByte(b byte) {
	stream.buf = append(stream.buf, b)
}

func (stream *Stream) putBytes(b ...byte) {
	stream.buf = append(stream.buf, b...)
}

// WriteRawString copies s to the output verbatim; the caller guarantees it is valid JSON text.
func (stream *Stream) WriteRawString(s string) {
	stream.write([]byte(s))
}

// WriteMore writes the "," between array elements or object fields.
func (stream *Stream) WriteMore() {
	stream.putByte(',')
}

// WriteArrayStart writes a "[".
func (stream *Stream) WriteArrayStart() {
	stream.putByte('[')
}

// WriteArrayEnd writes a "]".
func (stream *Stream) WriteArrayEnd() {
	stream.putByte(']')
}

// WriteEmptyArray writes "[]".
func (stream *Stream) WriteEmptyArray() {
	stream.putBytes('[', ']')
}

// WriteObjectStart writes a "{".
func (stream *Stream) WriteObjectStart() {
	stream.putByte('{')
}

// WriteObjectField writes a quoted field name followed by ":".
func (stream *Stream) WriteObjectField(field string) {
	stream.WriteString(field)
	stream.putByte(':')
}

// WriteObjectEnd writes a "}".
func (stream *Stream) WriteObjectEnd() {
	stream.putByte('}')
}

// WriteEmptyObject writes "{}".
func (stream *Stream) WriteEmptyObject() {
	stream.putBytes('{', '}')
}

// WriteBool writes "true" or "false".
func (stream *Stream) WriteBool(b bool) {
	if b {
		stream.putBytes('t', 'r', 'u', 'e')
	} else {
		stream.putBytes('f', 'a', 'l', 's', 'e')
	}
}

// WriteNil writes "null".
func (stream *Stream) WriteNil() {
	stream.putBytes('n', 'u', 'l', 'l')
}

// streamWriter adapts a Stream into the io.Writer the fallback encoder needs.
type streamWriter struct {
	stream *Stream
}

func (writer streamWriter) Write(p []byte) (n int, err error) {
	stream := writer.stream
	stream.write(p)
	if err = stream.err; err == nil {
		n = len(p)
	}
	return
}

var jsonMarshalerType = reflect.TypeOf(new(json.Marshaler)).Elem()

// WriteInterface writes an arbitrary value: natively for the JSON-primitive Go types (with
// pointers dereferenced), via MarshalJSONTo for ValueMarshaler values, and through encoding/json
// for everything else.
func (stream *Stream) WriteInterface(v interface{}) {
	if stream.err != nil {
		return
	}

	switch v := v.(type) {
	case nil:
		stream.WriteNil()
		return
	case bool:
		stream.WriteBool(v)
		return
	case string:
		stream.WriteString(v)
		return
	case int:
		stream.WriteInt(v)
		return
	case int8:
		stream.WriteInt8(v)
		return
	case int16:
		stream.WriteInt16(v)
		return
	case int32:
		stream.WriteInt32(v)
		return
	case int64:
		stream.WriteInt64(v)
		return
	case uint:
		stream.WriteUint(v)
		return
	case uint8:
		stream.WriteUint8(v)
		return
	case uint16:
		stream.WriteUint16(v)
		return
	case uint32:
		stream.WriteUint32(v)
		return
	case uint64:
		stream.WriteUint64(v)
		return
	case float32:
		stream.WriteFloat32(v)
		return
	case float64:
		stream.WriteFloat64(v)
		return
	case ValueMarshaler:
		stream.WriteValue(v)
		return
	}

	value := reflect.ValueOf(v)

	if value.Type().Implements(jsonMarshalerType) {
		// The value brings its own JSON encoding; let encoding/json drive it.
		stream.writeInterfaceFallback(v)
		return
	}

	switch value.Kind() {
	case reflect.Invalid:
		stream.WriteNil()

	case reflect.Bool:
		stream.WriteBool(value.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		stream.WriteInt64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		stream.WriteUint64(value.Uint())

	case reflect.Float32:
		stream.WriteFloat32(float32(value.Float()))
	case reflect.Float64:
		stream.WriteFloat64(value.Float())

	case reflect.String:
		stream.WriteString(value.String())

	case reflect.Ptr:
		elem := value.Elem()
		if !elem.IsValid() {
			stream.WriteNil()
		} else {
			stream.WriteInterface(elem.Interface())
		}

	default:
		stream.writeInterfaceFallback(v)
	}
}

// writeInterfaceFallback encodes v with encoding/json, routed back through the stream's buffer.
func (stream *Stream) writeInterfaceFallback(v interface{}) {
	encoder := stream.fallback
	if encoder == nil {
		encoder = json.NewEncoder(streamWriter{stream})
		stream.fallback = encoder
	}

	if err := encoder.Encode(v); err != nil && stream.err == nil {
		stream.err = err
	}
}
