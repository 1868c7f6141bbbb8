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

// listTypeCreator builds a List for newTypeImpl.
type listTypeCreator struct {
	typeDef ListTypeDefinition
}

var _ typeCreator = (*listTypeCreator)(nil)

// TypeDefinition implements typeCreator.
func (creator *listTypeCreator) TypeDefinition() TypeDefinition {
	return creator.typeDef
}

// LoadDataAndNew implements typeCreator.
func (creator *listTypeCreator) LoadDataAndNew() (Type, error) {
	return &list{}, nil
}

// Finalize implements typeCreator: the element type resolves here, after the list instance is
// registered, so self-referential element types don't deadlock construction.
func (creator *listTypeCreator) Finalize(t Type, typeDefResolver typeDefinitionResolver) error {
	elementType, err := typeDefResolver(creator.typeDef.ElementType())
	if err != nil {
		return err
	}
	if elementType == nil {
		return NewError("Must provide an non-nil element type for List.")
	}

	t.(*list).elementType = elementType
	return nil
}

// listTypeDefinitionOf adapts an element TypeDefinition into a ListTypeDefinition.
type listTypeDefinitionOf struct {
	ThisIsListTypeDefinition
	elementTypeDef TypeDefinition
}

var _ ListTypeDefinition = listTypeDefinitionOf{}

// ElementType implements ListTypeDefinition.
func (typeDef listTypeDefinitionOf) ElementType() TypeDefinition {
	return typeDef.elementTypeDef
}

// ListOf describes a list whose element type is given as a TypeDefinition.
func ListOf(elementTypeDef TypeDefinition) ListTypeDefinition {
	return listTypeDefinitionOf{
		elementTypeDef: elementTypeDef,
	}
}

// listTypeDefinitionOfType adapts an already-built element Type into a ListTypeDefinition.
type listTypeDefinitionOfType struct {
	ThisIsListTypeDefinition
	elementType Type
}

var _ ListTypeDefinition = listTypeDefinitionOfType{}

// ElementType implements ListTypeDefinition.
func (typeDef listTypeDefinitionOfType) ElementType() TypeDefinition {
	return T(typeDef.elementType)
}

// ListOfType describes a list whose element type is given as a built Type.
func ListOfType(elementType Type) ListTypeDefinition {
	return listTypeDefinitionOfType{
		elementType: elementType,
	}
}

// list is the built-in List implementation.
type list struct {
	ThisIsListType
	elementType Type
}

var _ List = (*list)(nil)

// NewListOfType builds a List of the given element Type.
func NewListOfType(elementType Type) (List, error) {
	return NewList(ListOfType(elementType))
}

// MustNewListOfType is a panic-on-fail version of NewListOfType.
func MustNewListOfType(elementType Type) List {
	return MustNewList(ListOfType(elementType))
}

// NewListOf builds a List of the element type given as a TypeDefinition.
func NewListOf(elementTypeDef TypeDefinition) (List, error) {
	return NewList(ListOf(elementTypeDef))
}

// MustNewListOf is a panic-on-fail version of NewListOf.
func MustNewListOf(elementTypeDef TypeDefinition) List {
	return MustNewList(ListOf(elementTypeDef))
}

// NewList builds a List from a ListTypeDefinition.
func NewList(typeDef ListTypeDefinition) (List, error) {
	t, err := newTypeImpl(&listTypeCreator{
		typeDef: typeDef,
	})
	if err != nil {
		return nil, err
	}
	return t.(List), nil
}

// MustNewList is a convenience function equivalent to NewList but panics on failure instead of
// returning an error.
func MustNewList(typeDef ListTypeDefinition) List {
	l, err := NewList(typeDef)
	if err != nil {
		panic(err)
	}
	return l
}

// String implements Type.
func (l *list) String() string {
	return "[" + l.elementType.String() + "]"
}

// UnwrappedType implements WrappingType.
func (l *list) UnwrappedType() Type {
	return l.ElementType()
}

// ElementType implements List.
func (l *list) ElementType() Type {
	return l.elementType
}
