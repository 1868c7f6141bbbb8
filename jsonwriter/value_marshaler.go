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

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// ValueMarshaler is implemented by types that write their own JSON encoding into a Stream. It is
// this package's analogue of json.Marshaler, with the bytes going straight to the stream instead
// of through an intermediate allocation.
type ValueMarshaler interface {
	MarshalJSONTo(stream *Stream) error
}

// WriteValue writes a ValueMarshaler's encoding into the stream. A typed nil pointer encodes as
// null, matching how encoding/json treats nil Marshaler pointers.
func (stream *Stream) WriteValue(marshaler ValueMarshaler) {
	if stream.err != nil {
		return
	}

	value := reflect.ValueOf(marshaler)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		stream.WriteNil()
		return
	}

	if err := marshaler.MarshalJSONTo(stream); err != nil && stream.err == nil {
		stream.err = &json.MarshalerError{
			Type: value.Type(),
			Err:  err,
		}
	}
}

// Marshal returns the JSON encoding of a ValueMarshaler. It is the convenient bridge for
// implementing a type's MarshalJSON on top of its MarshalJSONTo; the error comes back unwrapped
// so encoding/json can apply its own wrapping at the outer boundary.
func Marshal(v ValueMarshaler) ([]byte, error) {
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	stream := NewStream(&buf)

	if err := v.MarshalJSONTo(stream); err != nil {
		return nil, err
	}
	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
