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

import "context"

// IsTypeOfFunc reports whether the given value, resolved at a position whose declared type is an
// abstract type, is an instance of the Object type defining this function. It must answer
// synchronously; abstract type resolution never suspends.
type IsTypeOfFunc func(ctx context.Context, value interface{}) bool

// ObjectConfig is the convenient way to define an Object type: it implements
// ObjectTypeDefinition over plain struct fields.
type ObjectConfig struct {
	ThisIsObjectTypeDefinition

	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Interfaces that implemented by the defining Object
	Interfaces []InterfaceTypeDefinition

	// Fields in the object
	Fields Fields

	// IsTypeOf identifies values of this type at abstract-typed positions.
	IsTypeOf IsTypeOfFunc
}

var (
	_ TypeDefinition       = (*ObjectConfig)(nil)
	_ ObjectTypeDefinition = (*ObjectConfig)(nil)
)

// TypeData implements ObjectTypeDefinition.
func (config *ObjectConfig) TypeData() ObjectTypeData {
	return ObjectTypeData{
		Name:        config.Name,
		Description: config.Description,
		Interfaces:  config.Interfaces,
		Fields:      config.Fields,
		IsTypeOf:    config.IsTypeOf,
	}
}

// objectTypeCreator builds an Object for newTypeImpl.
type objectTypeCreator struct {
	typeDef ObjectTypeDefinition
}

var _ typeCreator = (*objectTypeCreator)(nil)

// TypeDefinition implements typeCreator.
func (creator *objectTypeCreator) TypeDefinition() TypeDefinition {
	return creator.typeDef
}

// LoadDataAndNew implements typeCreator.
func (creator *objectTypeCreator) LoadDataAndNew() (Type, error) {
	data := creator.typeDef.TypeData()

	if len(data.Name) == 0 {
		return nil, NewError("Must provide name for Object.")
	}

	return &Object{
		data: data,
	}, nil
}

// Finalize implements typeCreator: fields and implemented interfaces resolve here, after the
// Object is registered, so fields may reference the Object itself.
func (*objectTypeCreator) Finalize(t Type, typeDefResolver typeDefinitionResolver) error {
	object := t.(*Object)

	fieldMap, err := BuildFieldMap(object.data.Fields, typeDefResolver)
	if err != nil {
		return err
	}
	object.fields = fieldMap

	numInterfaces := len(object.data.Interfaces)
	if numInterfaces > 0 {
		interfaces := make([]*Interface, numInterfaces)
		for i, ifaceTypeDef := range object.data.Interfaces {
			iface, err := typeDefResolver(ifaceTypeDef)
			if err != nil {
				return err
			}
			interfaces[i] = iface.(*Interface)
		}
		object.interfaces = interfaces
	}

	return nil
}

// Object is a concrete output type: a named, ordered-by-query set of typed fields. It is the
// only kind of type a response object is ever shaped from.
type Object struct {
	data       ObjectTypeData
	fields     FieldMap
	interfaces []*Interface
}

var (
	_ Type                = (*Object)(nil)
	_ TypeWithName        = (*Object)(nil)
	_ TypeWithDescription = (*Object)(nil)
)

// NewObject builds an Object from an ObjectTypeDefinition.
func NewObject(typeDef ObjectTypeDefinition) (*Object, error) {
	t, err := newTypeImpl(&objectTypeCreator{
		typeDef: typeDef,
	})
	if err != nil {
		return nil, err
	}
	return t.(*Object), nil
}

// MustNewObject is a convenience function equivalent to NewObject but panics on failure instead of
// returning an error.
func MustNewObject(typeDef ObjectTypeDefinition) *Object {
	o, err := NewObject(typeDef)
	if err != nil {
		panic(err)
	}
	return o
}

// graphqlType implements Type.
func (*Object) graphqlType() {}

// Name implements TypeWithName.
func (o *Object) Name() string {
	return o.data.Name
}

// Description implements TypeWithDescription.
func (o *Object) Description() string {
	return o.data.Description
}

// String implements Type.
func (o *Object) String() string {
	return o.Name()
}

// Fields returns the object's field map.
func (o *Object) Fields() FieldMap {
	return o.fields
}

// Interfaces returns the interfaces this object implements.
func (o *Object) Interfaces() []*Interface {
	return o.interfaces
}

// IsTypeOf returns the function identifying values of this type at abstract-typed positions, or
// nil if the type doesn't define one.
func (o *Object) IsTypeOf() IsTypeOfFunc {
	return o.data.IsTypeOf
}
