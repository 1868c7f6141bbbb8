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

package graphql

import (
	"context"
)

// __typename is the one meta-field that is implicit on every Object position: it does not appear
// in any type's field map, and the plan builder special-cases its name when collecting fields
// instead of looking it up in the parent Object. __schema/__type (full introspection) are not
// implemented: introspection is schema-construction machinery, out of scope for this module.

// TypenameMetaFieldName is the name of the implicit type-name meta-field.
const TypenameMetaFieldName = "__typename"

var typenameMetaFieldType Type = MustNewNonNullOfType(String())

// typenameMetaField implements the __typename meta-field, which reports the name of the concrete
// Object type being queried at runtime.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#sec-Type-Name-Introspection
type typenameMetaField struct{}

// Name implements Field.
func (typenameMetaField) Name() string {
	return TypenameMetaFieldName
}

// Description implements Field.
func (typenameMetaField) Description() string {
	return "The name of the current Object type at runtime."
}

// Type implements Field.
func (typenameMetaField) Type() Type {
	return typenameMetaFieldType
}

// Args implements Field.
func (typenameMetaField) Args() []Argument {
	return nil
}

type typenameMetaFieldResolver struct{}

func (typenameMetaFieldResolver) Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
	return info.Object().Name(), nil
}

// Resolver implements Field.
func (typenameMetaField) Resolver() FieldResolver {
	return typenameMetaFieldResolver{}
}

// Deprecation implements Field.
func (typenameMetaField) Deprecation() *Deprecation {
	return nil
}

// TypenameMetaFieldDef returns the field descriptor used to resolve __typename.
func TypenameMetaFieldDef() Field {
	return typenameMetaField{}
}
