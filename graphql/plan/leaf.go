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

package plan

import "github.com/nabeelbukhari/graphql-jit/graphql"

// bindLeafSerializer selects, at compile time, the function a leaf position runs its values
// through. With leaf serialization disabled, built-in scalars and enums pass through untouched —
// the caller has asserted their values are already in wire form — while custom scalars still
// serialize, since only types the caller defined can carry that guarantee.
func (c *compiler) bindLeafSerializer(leaf graphql.LeafType) func(value interface{}) (interface{}, error) {
	if c.config.leafSerializationOff && isBuiltinLeaf(leaf) {
		return passThroughLeafValue
	}
	return leaf.CoerceResultValue
}

func passThroughLeafValue(value interface{}) (interface{}, error) {
	return value, nil
}

func isBuiltinLeaf(t graphql.LeafType) bool {
	switch t {
	case graphql.Int(), graphql.Float(), graphql.String(), graphql.Boolean(), graphql.ID():
		return true
	}
	_, isEnum := t.(*graphql.Enum)
	return isEnum
}
