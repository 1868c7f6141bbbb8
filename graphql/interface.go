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

// InterfaceConfig is the convenient way to define an Interface type: it implements
// InterfaceTypeDefinition over plain struct fields.
type InterfaceConfig struct {
	ThisIsInterfaceTypeDefinition

	// Name of the defining Interface
	Name string

	// Description for the Interface type
	Description string

	// TypeResolver determines the concrete Object type of a value resolved at a position of this
	// interface type.
	TypeResolver TypeResolver

	// Fields every implementing type must provide
	Fields Fields
}

var (
	_ TypeDefinition          = (*InterfaceConfig)(nil)
	_ InterfaceTypeDefinition = (*InterfaceConfig)(nil)
)

// TypeData implements InterfaceTypeDefinition.
func (config *InterfaceConfig) TypeData() InterfaceTypeData {
	return InterfaceTypeData{
		Name:        config.Name,
		Description: config.Description,
		Fields:      config.Fields,
	}
}

// NewTypeResolver implements InterfaceTypeDefinition.
func (config *InterfaceConfig) NewTypeResolver(iface *Interface) (TypeResolver, error) {
	return config.TypeResolver, nil
}

// interfaceTypeCreator builds an Interface for newTypeImpl.
type interfaceTypeCreator struct {
	typeDef InterfaceTypeDefinition
}

var _ typeCreator = (*interfaceTypeCreator)(nil)

// TypeDefinition implements typeCreator.
func (creator *interfaceTypeCreator) TypeDefinition() TypeDefinition {
	return creator.typeDef
}

// LoadDataAndNew implements typeCreator.
func (creator *interfaceTypeCreator) LoadDataAndNew() (Type, error) {
	data := creator.typeDef.TypeData()

	if len(data.Name) == 0 {
		return nil, NewError("Must provide name for Interface.")
	}

	return &Interface{
		data: data,
	}, nil
}

// Finalize implements typeCreator: field types and the type resolver are wired up after the
// interface instance is registered, so fields may reference the interface itself.
func (creator *interfaceTypeCreator) Finalize(t Type, typeDefResolver typeDefinitionResolver) error {
	iface := t.(*Interface)

	typeResolver, err := creator.typeDef.NewTypeResolver(iface)
	if err != nil {
		return err
	}
	iface.typeResolver = typeResolver

	fieldMap, err := BuildFieldMap(iface.data.Fields, typeDefResolver)
	if err != nil {
		return err
	}
	iface.fields = fieldMap

	return nil
}

// Interface is the built-in Interface type implementation: a named set of fields that several
// Object types can implement, resolved to one of them at execution time.
type Interface struct {
	data         InterfaceTypeData
	typeResolver TypeResolver
	fields       FieldMap
}

var (
	_ Type                = (*Interface)(nil)
	_ AbstractType        = (*Interface)(nil)
	_ TypeWithName        = (*Interface)(nil)
	_ TypeWithDescription = (*Interface)(nil)
)

// NewInterface builds an Interface from an InterfaceTypeDefinition.
func NewInterface(typeDef InterfaceTypeDefinition) (*Interface, error) {
	t, err := newTypeImpl(&interfaceTypeCreator{
		typeDef: typeDef,
	})
	if err != nil {
		return nil, err
	}
	return t.(*Interface), nil
}

// MustNewInterface is a convenience function equivalent to NewInterface but panics on failure
// instead of returning an error.
func MustNewInterface(typeDef InterfaceTypeDefinition) *Interface {
	iface, err := NewInterface(typeDef)
	if err != nil {
		panic(err)
	}
	return iface
}

// graphqlType implements Type.
func (*Interface) graphqlType() {}

// graphqlAbstractType implements AbstractType.
func (*Interface) graphqlAbstractType() {}

// TypeResolver implements AbstractType.
func (iface *Interface) TypeResolver() TypeResolver {
	return iface.typeResolver
}

// Name implements TypeWithName.
func (iface *Interface) Name() string {
	return iface.data.Name
}

// Description implements TypeWithDescription.
func (iface *Interface) Description() string {
	return iface.data.Description
}

// String implements Type.
func (iface *Interface) String() string {
	return iface.Name()
}

// Fields returns the set of fields an implementing Object must provide.
func (iface *Interface) Fields() FieldMap {
	return iface.fields
}
