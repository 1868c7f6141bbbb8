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

package jsonwriter_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/nabeelbukhari/graphql-jit/jsonwriter"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// written drives fn against a fresh stream and returns what it wrote.
func written(fn func(stream *jsonwriter.Stream)) string {
	var buf strings.Builder
	stream := jsonwriter.NewStream(&buf)
	fn(stream)
	Expect(stream.Flush()).Should(Succeed())
	return buf.String()
}

var _ = Describe("Stream", func() {
	It("writes punctuation and literals", func() {
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteObjectStart()
			s.WriteObjectField("a")
			s.WriteArrayStart()
			s.WriteBool(true)
			s.WriteMore()
			s.WriteBool(false)
			s.WriteMore()
			s.WriteNil()
			s.WriteArrayEnd()
			s.WriteMore()
			s.WriteObjectField("b")
			s.WriteEmptyArray()
			s.WriteMore()
			s.WriteObjectField("c")
			s.WriteEmptyObject()
			s.WriteObjectEnd()
		})).Should(Equal(`{"a":[true,false,null],"b":[],"c":{}}`))
	})

	It("writes integers of every width", func() {
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteArrayStart()
			s.WriteInt(-1)
			s.WriteMore()
			s.WriteInt8(-8)
			s.WriteMore()
			s.WriteInt16(-16)
			s.WriteMore()
			s.WriteInt32(-32)
			s.WriteMore()
			s.WriteInt64(math.MinInt64)
			s.WriteMore()
			s.WriteUint(1)
			s.WriteMore()
			s.WriteUint8(8)
			s.WriteMore()
			s.WriteUint16(16)
			s.WriteMore()
			s.WriteUint32(32)
			s.WriteMore()
			s.WriteUint64(math.MaxUint64)
			s.WriteArrayEnd()
		})).Should(Equal(`[-1,-8,-16,-32,-9223372036854775808,1,8,16,32,18446744073709551615]`))
	})

	It("formats floats the way encoding/json does", func() {
		expectFloat := func(value float64, expected string) {
			Expect(written(func(s *jsonwriter.Stream) {
				s.WriteFloat64(value)
			})).Should(Equal(expected), expected)
		}
		expectFloat(2.5, "2.5")
		expectFloat(0, "0")
		expectFloat(1e21, "1e+21")
		expectFloat(1e-7, "1e-7")
		expectFloat(-6.08e-9, "-6.08e-9")
	})

	It("rejects NaN and infinities like encoding/json", func() {
		var buf strings.Builder
		stream := jsonwriter.NewStream(&buf)
		stream.WriteFloat64(math.NaN())
		Expect(stream.Error()).Should(HaveOccurred())
		_, isUnsupported := stream.Error().(*json.UnsupportedValueError)
		Expect(isUnsupported).Should(BeTrue())
	})

	It("escapes strings per the JSON grammar", func() {
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteString("a\"b\\c\nd\re\tfg")
		})).Should(Equal(`"a\"b\\c\nd\re\tfg"`))
	})

	It("passes UTF-8 sequences through unescaped", func() {
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteString("héllø ☃")
		})).Should(Equal(`"héllø ☃"`))
	})

	It("keeps writing through its buffer boundary", func() {
		long := strings.Repeat("x", 4096)
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteString(long)
		})).Should(Equal(`"` + long + `"`))
	})

	It("encodes arbitrary values through WriteInterface", func() {
		i := 7
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteArrayStart()
			s.WriteInterface("s")
			s.WriteMore()
			s.WriteInterface(&i)
			s.WriteMore()
			s.WriteInterface(nil)
			s.WriteMore()
			s.WriteInterface(float32(1.5))
			s.WriteArrayEnd()
		})).Should(Equal(`["s",7,null,1.5]`))
	})

	It("falls back to encoding/json for composite values", func() {
		out := written(func(s *jsonwriter.Stream) {
			s.WriteInterface(map[string]int{"n": 3})
		})
		Expect(strings.TrimSpace(out)).Should(MatchJSON(`{"n":3}`))
	})
})

// pair marshals itself as a two-element array.
type pair struct {
	a, b int
	fail error
}

func (p *pair) MarshalJSONTo(stream *jsonwriter.Stream) error {
	if p.fail != nil {
		return p.fail
	}
	stream.WriteArrayStart()
	stream.WriteInt(p.a)
	stream.WriteMore()
	stream.WriteInt(p.b)
	stream.WriteArrayEnd()
	return nil
}

var _ = Describe("ValueMarshaler", func() {
	It("writes a marshaler's own encoding", func() {
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteValue(&pair{a: 1, b: 2})
		})).Should(Equal(`[1,2]`))
	})

	It("writes null for a nil marshaler pointer", func() {
		Expect(written(func(s *jsonwriter.Stream) {
			s.WriteValue((*pair)(nil))
		})).Should(Equal(`null`))
	})

	It("wraps a marshaler's error in json.MarshalerError", func() {
		var buf strings.Builder
		stream := jsonwriter.NewStream(&buf)
		stream.WriteValue(&pair{fail: errors.New("nope")})
		Expect(stream.Error()).Should(HaveOccurred())
		_, isMarshalerError := stream.Error().(*json.MarshalerError)
		Expect(isMarshalerError).Should(BeTrue())
	})

	It("marshals to bytes through Marshal", func() {
		Expect(jsonwriter.Marshal(&pair{a: 3, b: 4})).Should(Equal([]byte(`[3,4]`)))
		Expect(jsonwriter.Marshal((*pair)(nil))).Should(Equal([]byte(`null`)))
	})
})
