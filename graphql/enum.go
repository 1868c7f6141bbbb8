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

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// NewDefaultResultCoercionError builds the Error reported when a leaf result value cannot be
// represented by its declared type.
func NewDefaultResultCoercionError(typeName string, value interface{}, err error) error {
	return NewError(fmt.Sprintf("%s cannot represent value: %v", typeName, value), err, ErrKindCoercion)
}

// EnumResultCoercerFactory creates the EnumResultCoercer for an Enum as the enum finishes
// initialization (when its values exist but before it is published).
type EnumResultCoercerFactory interface {
	Create(enum *Enum) (EnumResultCoercer, error)
}

// CreateEnumResultCoercerFunc is an adapter to allow the use of ordinary functions as
// EnumResultCoercerFactory.
type CreateEnumResultCoercerFunc func(enum *Enum) (EnumResultCoercer, error)

// Create calls f.
func (f CreateEnumResultCoercerFunc) Create(enum *Enum) (EnumResultCoercer, error) {
	return f(enum)
}

// DefaultEnumResultCoercerLookupStrategy selects how the built-in result coercer matches a
// resolved Go value against the enum's values.
type DefaultEnumResultCoercerLookupStrategy uint

// Enumeration of DefaultEnumResultCoercerLookupStrategy.
const (
	// DefaultEnumResultCoercerLookupByName matches the resolved value (a string or string-kinded
	// value) against enum value names. The default; no lookup table needed.
	DefaultEnumResultCoercerLookupByName = iota

	// DefaultEnumResultCoercerLookupByValue matches the resolved value against the enum values'
	// internal values.
	DefaultEnumResultCoercerLookupByValue

	// DefaultEnumResultCoercerLookupByValueDeref is LookupByValue, with pointer results
	// dereferenced before matching.
	DefaultEnumResultCoercerLookupByValueDeref
)

// defaultEnumResultCoercerLookupByValueFactory builds the by-value coercers (plain and
// dereferencing).
type defaultEnumResultCoercerLookupByValueFactory struct {
	deref bool
}

// Create implements EnumResultCoercerFactory.
func (factory defaultEnumResultCoercerLookupByValueFactory) Create(enum *Enum) (EnumResultCoercer, error) {
	values := enum.Values()
	valueMap := make(map[interface{}]*EnumValue, len(values))
	for _, value := range values {
		valueMap[value.Value()] = value
	}

	return defaultEnumResultCoercerLookupByValue{
		enum:     enum,
		deref:    factory.deref,
		valueMap: valueMap,
	}, nil
}

// defaultEnumResultCoercerLookupByValue matches resolved values against internal enum values
// through a prebuilt map.
type defaultEnumResultCoercerLookupByValue struct {
	enum     *Enum
	deref    bool
	valueMap map[interface{}]*EnumValue
}

var errNoSuchEnumForValue = errors.New("no enum value matches the value")

// Coerce implements EnumResultCoercer.
func (coercer defaultEnumResultCoercerLookupByValue) Coerce(value interface{}) (*EnumValue, error) {
	if coercer.deref {
		v := reflect.ValueOf(value)
		if v.Kind() == reflect.Ptr && !v.IsNil() {
			value = v.Elem().Interface()
		}
	}

	enumValue, exists := coercer.valueMap[value]
	if !exists {
		return nil, NewDefaultResultCoercionError(coercer.enum.Name(), value, errNoSuchEnumForValue)
	}
	return enumValue, nil
}

// defaultEnumResultCoercerLookupByName matches string-like resolved values against enum value
// names.
type defaultEnumResultCoercerLookupByName struct {
	enum *Enum
}

func newDefaultEnumResultCoercerLookupByName(enum *Enum) (EnumResultCoercer, error) {
	return defaultEnumResultCoercerLookupByName{enum}, nil
}

var errNoSuchEnumForName = errors.New("no enum value matches the name")

// Coerce implements EnumResultCoercer.
func (coercer defaultEnumResultCoercerLookupByName) Coerce(value interface{}) (*EnumValue, error) {
	enum := coercer.enum

	name, ok := value.(string)
	if !ok {
		// The value may have a string-aliasing type.
		v := reflect.ValueOf(value)
		if v.Kind() != reflect.String {
			return nil, NewDefaultResultCoercionError(enum.Name(), value,
				fmt.Errorf("unexpected result type `%T`", value))
		}
		name = v.String()
	}

	if value := enum.Value(name); value != nil {
		return value, nil
	}
	return nil, NewDefaultResultCoercionError(enum.Name(), value, errNoSuchEnumForName)
}

// DefaultEnumResultCoercerFactory returns the factory for the built-in coercer using the given
// lookup strategy.
func DefaultEnumResultCoercerFactory(lookupStrategy DefaultEnumResultCoercerLookupStrategy) EnumResultCoercerFactory {
	switch lookupStrategy {
	case DefaultEnumResultCoercerLookupByName:
		return CreateEnumResultCoercerFunc(newDefaultEnumResultCoercerLookupByName)

	case DefaultEnumResultCoercerLookupByValue:
		return defaultEnumResultCoercerLookupByValueFactory{
			deref: false,
		}

	case DefaultEnumResultCoercerLookupByValueDeref:
		return defaultEnumResultCoercerLookupByValueFactory{
			deref: true,
		}
	}

	panic("unknown lookup strategy for default enum value coercer")
}

// EnumConfig is the convenient way to define an Enum type: it implements EnumTypeDefinition over
// plain struct fields.
type EnumConfig struct {
	ThisIsEnumTypeDefinition

	// Name of the enum type
	Name string

	// Description for the enum type
	Description string

	// Values defined in the enum
	Values EnumValueDefinitionMap

	// ResultCoercerFactory overrides how resolved values map onto enum values; when unset the
	// by-name default applies.
	ResultCoercerFactory EnumResultCoercerFactory
}

var (
	_ TypeDefinition     = (*EnumConfig)(nil)
	_ EnumTypeDefinition = (*EnumConfig)(nil)
)

// TypeData implements EnumTypeDefinition.
func (config *EnumConfig) TypeData() EnumTypeData {
	return EnumTypeData{
		Name:        config.Name,
		Description: config.Description,
		Values:      config.Values,
	}
}

// NewResultCoercer implements EnumTypeDefinition.
func (config *EnumConfig) NewResultCoercer(enum *Enum) (EnumResultCoercer, error) {
	factory := config.ResultCoercerFactory
	if factory == nil {
		factory = DefaultEnumResultCoercerFactory(DefaultEnumResultCoercerLookupByName)
	}
	return factory.Create(enum)
}

// enumTypeCreator builds an Enum for newTypeImpl.
type enumTypeCreator struct {
	typeDef EnumTypeDefinition
}

var _ typeCreator = (*enumTypeCreator)(nil)

// TypeDefinition implements typeCreator.
func (creator *enumTypeCreator) TypeDefinition() TypeDefinition {
	return creator.typeDef
}

// LoadDataAndNew implements typeCreator.
func (creator *enumTypeCreator) LoadDataAndNew() (Type, error) {
	data := creator.typeDef.TypeData()

	if len(data.Name) == 0 {
		return nil, NewError("Must provide name for Enum.")
	}

	// values and nameMap are built in Finalize.
	return &Enum{
		data: data,
	}, nil
}

// Finalize implements typeCreator.
func (creator *enumTypeCreator) Finalize(t Type, typeDefResolver typeDefinitionResolver) error {
	enum := t.(*Enum)
	typeDef := creator.typeDef

	valueDefMap := enum.data.Values
	values := make([]*EnumValue, len(valueDefMap))
	nameMap := make(map[string]*EnumValue, len(valueDefMap))
	i := 0
	for name, valueDef := range valueDefMap {
		value := &EnumValue{
			name: name,
			def:  valueDef,
		}
		if value.def.Value == nil {
			// A value definition without an internal value uses its name.
			value.def.Value = name
		} else if _, ok := value.def.Value.(enumNilValueType); ok {
			// NilEnumInternalValue declares the internal value to be literal nil.
			value.def.Value = nil
		}
		values[i] = value
		nameMap[name] = value
		i++
	}

	enum.values = values
	enum.nameMap = nameMap

	resultCoercer, err := typeDef.NewResultCoercer(enum)
	if err != nil {
		return NewError("Error occurred when preparing object responsible for coercing result value", err)
	}
	if resultCoercer == nil {
		resultCoercer = defaultEnumResultCoercerLookupByName{enum}
	}
	enum.resultCoercer = resultCoercer

	return nil
}

// EnumValue is one named value of an Enum type.
//
// Reference: https://facebook.github.io/graphql/June2018/#EnumValue
type EnumValue struct {
	name string
	def  EnumValueDefinition
}

// Name of the enum value.
func (value *EnumValue) Name() string {
	return value.name
}

// Description of the enum value.
func (value *EnumValue) Description() string {
	return value.def.Description
}

// Value returns the internal value this enum value reads as from input.
func (value *EnumValue) Value() interface{} {
	return value.def.Value
}

// IsDeprecated returns true if the value is deprecated.
func (value *EnumValue) IsDeprecated() bool {
	return value.def.Deprecation.Defined()
}

// Deprecation is non-nil when the value is tagged as deprecated.
func (value *EnumValue) Deprecation() *Deprecation {
	return value.def.Deprecation
}

// Enum is a leaf type over a closed set of named values. On the wire an enum is its value's
// name; internally each value may map to any Go value (the name itself when none is given).
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Enums
type Enum struct {
	data EnumTypeData

	// resultCoercer maps resolved Go values onto enum values for output.
	resultCoercer EnumResultCoercer

	// values in definition order is unspecified (they come off a map); nameMap indexes them.
	values  []*EnumValue
	nameMap map[string]*EnumValue
}

var (
	_ Type                = (*Enum)(nil)
	_ LeafType            = (*Enum)(nil)
	_ TypeWithName        = (*Enum)(nil)
	_ TypeWithDescription = (*Enum)(nil)
)

// NewEnum builds an Enum from an EnumTypeDefinition.
func NewEnum(typeDef EnumTypeDefinition) (*Enum, error) {
	t, err := newTypeImpl(&enumTypeCreator{
		typeDef: typeDef,
	})
	if err != nil {
		return nil, err
	}
	return t.(*Enum), nil
}

// MustNewEnum is a convenience function equivalent to NewEnum but panics on failure instead of
// returning an error.
func MustNewEnum(typeDef EnumTypeDefinition) *Enum {
	e, err := NewEnum(typeDef)
	if err != nil {
		panic(err)
	}
	return e
}

// graphqlType implements Type.
func (*Enum) graphqlType() {}

// graphqlLeafType implements LeafType.
func (*Enum) graphqlLeafType() {}

// Name implements TypeWithName.
func (e *Enum) Name() string {
	return e.data.Name
}

// Description implements TypeWithDescription.
func (e *Enum) Description() string {
	return e.data.Description
}

// String implements Type.
func (e *Enum) String() string {
	return e.Name()
}

// Values returns all values defined in this Enum type.
func (e *Enum) Values() []*EnumValue {
	return e.values
}

// Value finds the enum value with the given name, or nil.
func (e *Enum) Value(name string) *EnumValue {
	return e.nameMap[name]
}

// CoerceResultValue implements LeafType: a resolved value serializes as its enum value's name.
func (e *Enum) CoerceResultValue(value interface{}) (interface{}, error) {
	enumValue, err := e.resultCoercer.Coerce(value)
	if err != nil {
		return nil, err
	}
	return enumValue.Name(), nil
}

// Input-coercion failures are ordinary errors (not CoercionError) so the caller presents its own
// user-facing message rather than these internals.
var (
	errNilEnumValue      = errors.New("enum value is not provided")
	errInvalidEnumValue  = errors.New("invalid enum value")
	errEnumValueNotFound = errors.New("not a value for the type")
)

// CoerceVariableValue reads an enum from a variable value: the value names an enum value, and
// coercion yields that value's internal representation.
func (e *Enum) CoerceVariableValue(value interface{}) (interface{}, error) {
	var enumValue *EnumValue
	switch name := value.(type) {
	case string:
		enumValue = e.Value(name)

	case *string:
		if name == nil {
			return nil, errNilEnumValue
		}
		enumValue = e.Value(*name)

	default:
		// Allow string-aliasing types and pointers to them.
		nameValue := reflect.ValueOf(value)
		if nameValue.Kind() == reflect.Ptr {
			if nameValue.IsNil() {
				return nil, errNilEnumValue
			}
			nameValue = nameValue.Elem()
		}
		if nameValue.Kind() != reflect.String {
			return nil, errInvalidEnumValue
		}
		enumValue = e.Value(nameValue.String())
	}

	if enumValue == nil {
		return nil, errEnumValueNotFound
	}
	return enumValue.Value(), nil
}

// CoerceArgumentValue reads an enum from a query literal, which must be an unquoted enum-name
// token.
func (e *Enum) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(ast.EnumValue); ok {
		if enumValue := e.Value(value.Value); enumValue != nil {
			return enumValue.Value(), nil
		}
		return nil, errEnumValueNotFound
	}
	return nil, errInvalidEnumValue
}
