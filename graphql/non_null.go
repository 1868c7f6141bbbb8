/**
 * Copyright (c) 2018, The Artemis Authors.
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

import "fmt"

// nonNullTypeCreator builds a NonNull for newTypeImpl.
type nonNullTypeCreator struct {
	typeDef NonNullTypeDefinition
}

var _ typeCreator = (*nonNullTypeCreator)(nil)

// TypeDefinition implements typeCreator.
func (creator *nonNullTypeCreator) TypeDefinition() TypeDefinition {
	return creator.typeDef
}

// LoadDataAndNew implements typeCreator.
func (creator *nonNullTypeCreator) LoadDataAndNew() (Type, error) {
	return &NonNull{}, nil
}

// Finalize implements typeCreator. Double non-null ("T!!") is rejected here: the wrapped type
// must itself be nullable.
func (creator *nonNullTypeCreator) Finalize(t Type, typeDefResolver typeDefinitionResolver) error {
	elementType, err := typeDefResolver(creator.typeDef.ElementType())
	if err != nil {
		return err
	}
	if elementType == nil {
		return NewError("Must provide an non-nil element type for NonNull.")
	}
	if !IsNullableType(elementType) {
		return NewError(fmt.Sprintf("Expected a nullable type for NonNull but got an %s.", elementType.String()))
	}

	nonNull := t.(*NonNull)
	nonNull.elementType = elementType
	nonNull.notation = fmt.Sprintf("%s!", elementType.String())
	return nil
}

// nonNullTypeDefinitionOf adapts an element TypeDefinition into a NonNullTypeDefinition.
type nonNullTypeDefinitionOf struct {
	ThisIsNonNullTypeDefinition
	elementTypeDef TypeDefinition
}

var _ NonNullTypeDefinition = nonNullTypeDefinitionOf{}

// ElementType implements NonNullTypeDefinition.
func (typeDef nonNullTypeDefinitionOf) ElementType() TypeDefinition {
	return typeDef.elementTypeDef
}

// NonNullOf describes a non-null wrapping of the type given as a TypeDefinition.
func NonNullOf(elementTypeDef TypeDefinition) NonNullTypeDefinition {
	return nonNullTypeDefinitionOf{
		elementTypeDef: elementTypeDef,
	}
}

// nonNullTypeDefinitionOfType adapts an already-built element Type into a
// NonNullTypeDefinition.
type nonNullTypeDefinitionOfType struct {
	ThisIsNonNullTypeDefinition
	elementType Type
}

var _ NonNullTypeDefinition = nonNullTypeDefinitionOfType{}

// ElementType implements NonNullTypeDefinition.
func (typeDef nonNullTypeDefinitionOfType) ElementType() TypeDefinition {
	return T(typeDef.elementType)
}

// NonNullOfType describes a non-null wrapping of the given built Type.
func NonNullOfType(elementType Type) NonNullTypeDefinition {
	return nonNullTypeDefinitionOfType{
		elementType: elementType,
	}
}

// NonNull wraps a type whose values may never resolve to null: a null (or an error) at a
// position of this type propagates to the nearest nullable enclosing position instead of being
// recorded in place. The enforcement lives in the executor; the type only declares it.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Type-System.Non-Null
type NonNull struct {
	elementType Type

	// notation caches the "T!" spelling returned by String.
	notation string
}

var _ Type = (*NonNull)(nil)

// NewNonNullOfType builds a NonNull wrapping the given element Type.
func NewNonNullOfType(elementType Type) (*NonNull, error) {
	return NewNonNull(NonNullOfType(elementType))
}

// MustNewNonNullOfType is a panic-on-fail version of NewNonNullOfType.
func MustNewNonNullOfType(elementType Type) *NonNull {
	return MustNewNonNull(NonNullOfType(elementType))
}

// NewNonNullOf builds a NonNull wrapping the element type given as a TypeDefinition.
func NewNonNullOf(elementTypeDef TypeDefinition) (*NonNull, error) {
	return NewNonNull(NonNullOf(elementTypeDef))
}

// MustNewNonNullOf is a panic-on-fail version of NewNonNullOf.
func MustNewNonNullOf(elementTypeDef TypeDefinition) *NonNull {
	return MustNewNonNull(NonNullOf(elementTypeDef))
}

// NewNonNull builds a NonNull from a NonNullTypeDefinition.
func NewNonNull(typeDef NonNullTypeDefinition) (*NonNull, error) {
	t, err := newTypeImpl(&nonNullTypeCreator{
		typeDef: typeDef,
	})
	if err != nil {
		return nil, err
	}
	return t.(*NonNull), nil
}

// MustNewNonNull is a convenience function equivalent to NewNonNull but panics on failure
// instead of returning an error.
func MustNewNonNull(typeDef NonNullTypeDefinition) *NonNull {
	n, err := NewNonNull(typeDef)
	if err != nil {
		panic(err)
	}
	return n
}

// graphqlType implements Type.
func (*NonNull) graphqlType() {}

// graphqlWrappingType implements WrappingType.
func (*NonNull) graphqlWrappingType() {}

// String implements Type.
func (n *NonNull) String() string {
	return n.notation
}

// ElementType returns the wrapped (nullable) type.
func (n *NonNull) ElementType() Type {
	return n.elementType
}

// UnwrappedType implements WrappingType.
func (n *NonNull) UnwrappedType() Type {
	return n.elementType
}
