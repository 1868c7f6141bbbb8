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
	"context"
)

// FieldResolver produces a field's value during execution from the value its enclosing object
// resolved to.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#ResolveFieldValue()
type FieldResolver interface {
	// Resolve computes the field value. source is the enclosing object's resolved value; info
	// describes the execution state at this field.
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f.
func (f FieldResolverFunc) Resolve(
	ctx context.Context,
	source interface{},
	info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

var _ FieldResolver = FieldResolverFunc(nil)

// Fields maps field names to their configurations when defining an Object or Interface. (The
// short name is deliberate — this type appears in every schema definition; "Field" itself names
// the built descriptor below.)
type Fields map[string]FieldConfig

// FieldConfig describes one field when defining an object.
type FieldConfig struct {
	// Description of the defining field
	Description string

	// TypeDefinition for the field's output type, resolved during type initialization.
	Type TypeDefinition

	// Args the field accepts
	Args ArgumentConfigMap

	// Resolver computing the field's value during execution
	Resolver FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation *Deprecation
}

// FieldMap maps field names to built Field descriptors.
type FieldMap map[string]Field

// BuildFieldMap builds the Field descriptors for a Fields configuration, resolving each field's
// output type and argument types through typeDefResolver.
func BuildFieldMap(fieldConfigMap Fields, typeDefResolver typeDefinitionResolver) (FieldMap, error) {
	numFields := len(fieldConfigMap)
	if numFields == 0 {
		return nil, nil
	}

	fieldMap := make(FieldMap, numFields)
	for name, fieldConfig := range fieldConfigMap {
		fieldType, err := typeDefResolver(fieldConfig.Type)
		if err != nil {
			return nil, err
		}

		args, err := buildArguments(fieldConfig.Args, typeDefResolver)
		if err != nil {
			return nil, err
		}

		fieldMap[name] = &field{
			config: fieldConfig,
			name:   name,
			ttype:  fieldType,
			args:   args,
		}
	}

	return fieldMap, nil
}

// Field is one field of an Object or Interface type: a named, typed output position with its
// argument schema and (optionally) its resolver.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#sec-Objects
type Field interface {
	// Name of the field
	Name() string

	// Description of the field
	Description() string

	// Type of value yielded by the field
	Type() Type

	// Args declares the arguments this field accepts.
	Args() []Argument

	// Resolver computes the field's value from its enclosing object's value, or nil when the
	// field has none and values are read directly off the parent.
	Resolver() FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation() *Deprecation
}

// field is the built-in Field implementation.
type field struct {
	config FieldConfig
	name   string
	ttype  Type
	args   []Argument
}

var _ Field = (*field)(nil)

// Name implements Field.
func (f *field) Name() string {
	return f.name
}

// Description implements Field.
func (f *field) Description() string {
	return f.config.Description
}

// Type implements Field.
func (f *field) Type() Type {
	return f.ttype
}

// Args implements Field.
func (f *field) Args() []Argument {
	return f.args
}

// Resolver implements Field.
func (f *field) Resolver() FieldResolver {
	return f.config.Resolver
}

// Deprecation implements Field.
func (f *field) Deprecation() *Deprecation {
	return f.config.Deprecation
}

// ArgumentConfigMap maps argument names to their configurations.
type ArgumentConfigMap map[string]ArgumentConfig

// argumentNilValueType backs NilArgumentDefaultValue.
type argumentNilValueType int

// NilArgumentDefaultValue given as an ArgumentConfig.DefaultValue declares the default to be
// literal null. A plain nil DefaultValue means "no default at all"; this sentinel (whose type no
// other package can construct) is how the two are told apart.
const NilArgumentDefaultValue argumentNilValueType = 0

// ArgumentConfig describes one argument when defining a field.
type ArgumentConfig struct {
	// Description of the argument
	Description string

	// Type of value the argument accepts
	Type TypeDefinition

	// DefaultValue applies when the query supplies no value for the argument.
	DefaultValue interface{}
}

// buildArguments builds Argument descriptors from an ArgumentConfigMap.
func buildArguments(argConfigMap ArgumentConfigMap, typeDefResolver typeDefinitionResolver) ([]Argument, error) {
	numArgs := len(argConfigMap)
	if numArgs == 0 {
		return nil, nil
	}

	args := make([]Argument, numArgs)
	argIdx := 0
	for name, argConfig := range argConfigMap {
		argType, err := typeDefResolver(argConfig.Type)
		if err != nil {
			return nil, err
		}

		arg := &args[argIdx]
		arg.name = name
		arg.description = argConfig.Description
		arg.ttype = argType
		arg.defaultValue = argConfig.DefaultValue

		argIdx++
	}

	return args, nil
}

// Argument is one declared argument of a field.
//
// Reference: https://graphql.github.io/graphql-spec/June2018/#sec-Field-Arguments
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the value that can be given to the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if the argument has a default value.
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue returns the value assigned to the argument when the query provides none. The
// NilArgumentDefaultValue sentinel surfaces as nil here.
func (arg *Argument) DefaultValue() interface{} {
	if _, ok := arg.defaultValue.(argumentNilValueType); ok {
		return nil
	}
	return arg.defaultValue
}

// IsRequiredArgument returns true if execution cannot proceed without a value for arg.
func IsRequiredArgument(arg *Argument) bool {
	return IsNonNullType(arg.Type()) && !arg.HasDefaultValue()
}

// MockArgument assembles an Argument directly. Tests use it to state expected Argument values;
// schema construction never does.
func MockArgument(name string, description string, t Type, defaultValue interface{}) Argument {
	return Argument{
		name:         name,
		description:  description,
		ttype:        t,
		defaultValue: defaultValue,
	}
}
