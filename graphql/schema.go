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
	"fmt"
	"reflect"

	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// TypeMap indexes every named type reachable from the schema's roots.
type TypeMap struct {
	types map[string]Type
}

// add registers t and everything reachable from it. Only NewSchema calls this, while building
// the map.
func (typeMap TypeMap) add(t Type) error {
	stack := []Type{t}

	for len(stack) > 0 {
		t, stack = stack[len(stack)-1], stack[:len(stack)-1]

		// Both a nil Type and a typed nil wrapped in a Type can appear before validation runs.
		if t == nil || reflect.ValueOf(t).IsNil() {
			continue
		}
		if namedType, ok := t.(TypeWithName); ok {
			name := namedType.Name()
			prev, exists := typeMap.types[name]
			if !exists {
				typeMap.types[name] = t
			} else {
				if prev != t {
					return NewError(fmt.Sprintf(
						"Schema must contain unique named types but contains multiple types named %s.", name))
				}
				// Already visited.
				continue
			}
		}

		// Push everything t references.
		switch t := t.(type) {
		case Scalar:
			// Leaf; references nothing.

		case *Object:
			for _, iface := range t.Interfaces() {
				stack = append(stack, iface)
			}
			for _, field := range t.Fields() {
				stack = append(stack, field.Type())
				args := field.Args()
				for i := range args {
					stack = append(stack, args[i].Type())
				}
			}

		case *Interface:
			for _, field := range t.Fields() {
				stack = append(stack, field.Type())
				args := field.Args()
				for i := range args {
					stack = append(stack, args[i].Type())
				}
			}

		case Union:
			for possibleType := range t.PossibleTypes().types {
				stack = append(stack, possibleType)
			}

		case *Enum:
			// Leaf; references nothing.

		case List:
			stack = append(stack, t.ElementType())
		case *NonNull:
			stack = append(stack, t.ElementType())

		case nil:
			// Ignore.
		default:
			return NewError(fmt.Sprintf("Cannot add %s to schema: unsupported type %T", t, t))
		}
	}

	return nil
}

// Lookup returns the named type, or nil.
func (typeMap TypeMap) Lookup(name string) Type {
	return typeMap.types[name]
}

// SchemaConfig describes a schema to NewSchema.
type SchemaConfig struct {
	// Query, Mutation and Subscription are the schema's root operation types; only Query is
	// effectively mandatory.
	Query        *Object
	Mutation     *Object
	Subscription *Object

	// Types declares types not reachable from the roots (typically concrete types that only
	// ever appear behind an interface).
	Types []Type
}

// Schema is a service's collective type system: every named type it supports plus the root
// operation types where queries and mutations begin.
//
// A Schema is immutable once built. Everything derivable is derived once in NewSchema (the type
// map, the possible-type sets) and read thereafter, which is what makes it safe for compiled
// query plans to hold direct references into it across concurrent executions.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Schema
type Schema interface {
	// TypeMap keeps track of all named types referenced within the schema.
	TypeMap() TypeMap

	// The following provides root operation types defined in a GraphQL schema.
	//
	// Reference: https://facebook.github.io/graphql/June2018/#sec-Root-Operation-Types
	Query() *Object
	Mutation() *Object
	Subscription() *Object

	// PossibleTypes returns set of possible concrete types for the given abstract type in the schema.
	// For Interface, this contains the list of Object types that implement it. For Union, this
	// contains the list of its member types.
	PossibleTypes(t AbstractType) PossibleTypeSet

	// TypeFromAST returns a graphql.Type that applies to the ast.Type in the given schema For
	// example, if provided the parsed AST node for `[User]`, a graphql.List instance will be
	// returned, containing the type called "User" found in the schema. If a type called "User" is not
	// found in the schema, then nil will be returned.
	TypeFromAST(t ast.Type) Type
}

// schema is the Schema built by NewSchema.
type schema struct {
	query        *Object
	mutation     *Object
	subscription *Object

	// typeMap indexes every named type in the schema.
	typeMap TypeMap

	// possibleTypeSets maps each abstract type to its concrete member types.
	possibleTypeSets map[AbstractType]PossibleTypeSet
}

// NewSchema builds an immutable Schema from the given config.
func NewSchema(config *SchemaConfig) (Schema, error) {
	schema := &schema{
		query:            config.Query,
		mutation:         config.Mutation,
		subscription:     config.Subscription,
		possibleTypeSets: map[AbstractType]PossibleTypeSet{},
	}

	// Building the type map up front also surfaces schema errors (duplicate names) here rather
	// than at first use.
	typeMap := TypeMap{
		types: map[string]Type{},
	}

	// The roots seed the reachability walk.
	if err := typeMap.add(config.Query); err != nil {
		return nil, err
	}
	if err := typeMap.add(config.Mutation); err != nil {
		return nil, err
	}
	if err := typeMap.add(config.Subscription); err != nil {
		return nil, err
	}

	// Built-in scalars are always available, referenced or not.
	if err := typeMap.add(Int()); err != nil {
		return nil, err
	}
	if err := typeMap.add(Float()); err != nil {
		return nil, err
	}
	if err := typeMap.add(String()); err != nil {
		return nil, err
	}
	if err := typeMap.add(Boolean()); err != nil {
		return nil, err
	}
	if err := typeMap.add(ID()); err != nil {
		return nil, err
	}

	// Then the explicitly declared types.
	for _, t := range config.Types {
		if err := typeMap.add(t); err != nil {
			return nil, err
		}
	}

	schema.typeMap = typeMap

	// Invert the type graph for abstract dispatch: each interface's possible set is the objects
	// implementing it; each union's is its declared members.
	possibleTypeSets := schema.possibleTypeSets
	for _, t := range typeMap.types {
		switch t := t.(type) {
		case *Object:
			for _, iface := range t.Interfaces() {
				set, exists := possibleTypeSets[iface]
				if !exists {
					set = NewPossibleTypeSet()
					possibleTypeSets[iface] = set
				}
				set.Add(t)
			}

		case Union:
			possibleTypeSets[t] = t.PossibleTypes()
		}
	}

	return schema, nil
}

// TypeMap implements Schema.
func (schema *schema) TypeMap() TypeMap {
	return schema.typeMap
}

// Query implements Schema.
func (schema *schema) Query() *Object {
	return schema.query
}

// Mutation implements Schema.
func (schema *schema) Mutation() *Object {
	return schema.mutation
}

// Subscription implements Schema.
func (schema *schema) Subscription() *Object {
	return schema.subscription
}

// PossibleTypes implements Schema.
func (schema *schema) PossibleTypes(t AbstractType) PossibleTypeSet {
	return schema.possibleTypeSets[t]
}

// TypeFromAST implements Schema.
func (schema *schema) TypeFromAST(t ast.Type) Type {
	// Walk to the innermost named type, remembering the wrappers passed through.
	var (
		typeName string
		typePath []ast.Type
	)

	for len(typeName) == 0 {
		switch ttype := t.(type) {
		case ast.NamedType:
			typeName = ttype.Name.Value

		case ast.ListType:
			typePath = append(typePath, t)
			t = ttype.ItemType

		case ast.NonNullType:
			typePath = append(typePath, t)
			t = ttype.Type

		default:
			panic("unexpected AST type kind")
		}
	}

	result := schema.TypeMap().Lookup(typeName)
	if result == nil {
		return nil
	}

	// Re-apply the wrappers inside-out.
	for len(typePath) > 0 {
		t, typePath = typePath[len(typePath)-1], typePath[:len(typePath)-1]
		if _, ok := t.(ast.ListType); ok {
			result = MustNewListOfType(result)
		} else {
			result = MustNewNonNullOfType(result)
		}
	}

	return result
}
