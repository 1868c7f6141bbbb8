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

const hexDigits = "0123456789abcdef"

// safeByte reports whether b can be copied into a JSON string literal unescaped: everything except
// the control characters, the quote character and the backslash. Bytes >= 0x80 are UTF-8
// lead/continuation bytes and are always safe to copy through as-is.
func safeByte(b byte) bool {
	return b >= 0x20 && b != '"' && b != '\\'
}

// WriteString encodes s as a double-quoted JSON string, escaping control characters, quotes and
// backslashes as required by the JSON grammar.
func (stream *Stream) WriteString(s string) {
	if stream.err != nil {
		return
	}

	stream.putByte('"')

	start := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		if safeByte(b) {
			continue
		}

		if start < i {
			stream.WriteRawString(s[start:i])
		}

		switch b {
		case '"':
			stream.putBytes('\\', '"')
		case '\\':
			stream.putBytes('\\', '\\')
		case '\n':
			stream.putBytes('\\', 'n')
		case '\r':
			stream.putBytes('\\', 'r')
		case '\t':
			stream.putBytes('\\', 't')
		default:
			// Remaining control characters (b < 0x20) are escaped as \u00XX.
			stream.WriteRawString(`\u00`)
			stream.putBytes(hexDigits[b>>4], hexDigits[b&0xf])
		}

		start = i + 1
	}

	if start < len(s) {
		stream.WriteRawString(s[start:])
	}

	stream.putByte('"')
}
