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

// Package ast defines a minimal, parser-agnostic representation of a GraphQL query document. It is
// a consumed surface: nothing in this module builds a Document from source text; callers (or an
// external parser package) construct Document values directly against these types.
package ast

// Location gives the 1-based source line/column a node came from, for error reporting. A
// hand-built Document may leave this zeroed.
type Location struct {
	Line   uint
	Column uint
}

// Name is a GraphQL name token (identifier).
type Name struct {
	Value string
	Loc   Location
}

// Node is implemented by every AST node that carries source location information, for error
// reporting.
type Node interface {
	GetLocation() Location
}

// Document is the root node of a query document: an unordered set of operation and fragment
// definitions.
type Document struct {
	Definitions []Definition
}

// OperationByName returns the operation definition with the given name, or the sole operation if
// name is empty and there is exactly one. The second return value is false if no unambiguous match
// exists.
func (doc Document) OperationByName(name string) (*OperationDefinition, bool) {
	var (
		found   *OperationDefinition
		matches int
	)
	for _, def := range doc.Definitions {
		op, ok := def.(*OperationDefinition)
		if !ok {
			continue
		}
		if name == "" {
			matches++
			found = op
			continue
		}
		if op.Name.Value == name {
			return op, true
		}
	}
	if name == "" && matches == 1 {
		return found, true
	}
	return nil, false
}

// FragmentByName returns the fragment definition with the given name.
func (doc Document) FragmentByName(name string) (*FragmentDefinition, bool) {
	for _, def := range doc.Definitions {
		if frag, ok := def.(*FragmentDefinition); ok && frag.Name.Value == name {
			return frag, true
		}
	}
	return nil, false
}

// Definition is either an OperationDefinition or a FragmentDefinition.
type Definition interface {
	isDefinition()
}

// OperationType enumerates the three GraphQL operation kinds.
type OperationType uint8

// Enumeration of OperationType.
const (
	Query OperationType = iota
	Mutation
	Subscription
)

// String implements fmt.Stringer.
func (t OperationType) String() string {
	switch t {
	case Query:
		return "query"
	case Mutation:
		return "mutation"
	case Subscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// OperationDefinition represents a query, mutation or subscription operation.
type OperationDefinition struct {
	OperationType       OperationType
	Name                Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        SelectionSet
	Loc                 Location
}

func (*OperationDefinition) isDefinition() {}

// FragmentDefinition represents a named fragment ("fragment Foo on Bar { ... }").
type FragmentDefinition struct {
	Name          Name
	TypeCondition NamedType
	Directives    []*Directive
	SelectionSet  SelectionSet
	Loc           Location
}

func (*FragmentDefinition) isDefinition() {}

// VariableDefinition declares one operation variable ("$var: Type = default").
type VariableDefinition struct {
	Variable     Name
	Type         Type
	DefaultValue Value
	Loc          Location
}

// SelectionSet is an ordered list of selections inside braces.
type SelectionSet []Selection

// Selection is a Field, FragmentSpread or InlineFragment.
type Selection interface {
	isSelection()
	GetDirectives() []*Directive
}

// Field selects a field, optionally under an alias, with arguments and a sub-selection.
type Field struct {
	Alias        Name
	Name         Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet SelectionSet
	Loc          Location
}

func (*Field) isSelection() {}

// GetDirectives implements Selection.
func (f *Field) GetDirectives() []*Directive { return f.Directives }

// ResponseKey is the key this field occupies in the response: the alias if given, else the name.
func (f *Field) ResponseKey() string {
	if f.Alias.Value != "" {
		return f.Alias.Value
	}
	return f.Name.Value
}

// FragmentSpread references a named fragment ("...Foo").
type FragmentSpread struct {
	Name       Name
	Directives []*Directive
	Loc        Location
}

func (*FragmentSpread) isSelection() {}

// GetDirectives implements Selection.
func (f *FragmentSpread) GetDirectives() []*Directive { return f.Directives }

// InlineFragment is an inline, optionally type-conditioned fragment ("... on Bar { ... }").
type InlineFragment struct {
	TypeCondition NamedType // zero value means no type condition
	Directives    []*Directive
	SelectionSet  SelectionSet
	Loc           Location
}

func (*InlineFragment) isSelection() {}

// GetDirectives implements Selection.
func (f *InlineFragment) GetDirectives() []*Directive { return f.Directives }

// Argument is a name: value pair supplied to a field or directive.
type Argument struct {
	Name  Name
	Value Value
	Loc   Location
}

// Directive applies an "@name(args)" directive to a selection or definition.
type Directive struct {
	Name      Name
	Arguments []*Argument
	Loc       Location
}

// ArgumentByName looks up an argument by name among a slice of arguments.
func ArgumentByName(args []*Argument, name string) (*Argument, bool) {
	for _, arg := range args {
		if arg.Name.Value == name {
			return arg, true
		}
	}
	return nil, false
}

// DirectiveByName looks up a directive by name among a slice of directives.
func DirectiveByName(directives []*Directive, name string) (*Directive, bool) {
	for _, d := range directives {
		if d.Name.Value == name {
			return d, true
		}
	}
	return nil, false
}

// GetLocation implements Node.
func (f *Field) GetLocation() Location { return f.Loc }

// GetLocation implements Node.
func (f *FragmentSpread) GetLocation() Location { return f.Loc }

// GetLocation implements Node.
func (f *InlineFragment) GetLocation() Location { return f.Loc }

// GetLocation implements Node.
func (a *Argument) GetLocation() Location { return a.Loc }

// GetLocation implements Node.
func (d *Directive) GetLocation() Location { return d.Loc }

// GetLocation implements Node.
func (op *OperationDefinition) GetLocation() Location { return op.Loc }

// GetLocation implements Node.
func (f *FragmentDefinition) GetLocation() Location { return f.Loc }

// GetLocation implements Node.
func (v *VariableDefinition) GetLocation() Location { return v.Loc }

//===----------------------------------------------------------------------------------------===//
// Type references
//===----------------------------------------------------------------------------------------===//

// Type is a reference to a type by name, possibly wrapped in List/NonNull, as written in a
// variable definition.
type Type interface {
	isType()
}

// NamedType references a type by its name, e.g. "String".
type NamedType struct {
	Name Name
}

func (NamedType) isType() {}

// ListType references a list of some item type, e.g. "[String]".
type ListType struct {
	ItemType Type
}

func (ListType) isType() {}

// NonNullType references a non-null wrapping of some type, e.g. "String!".
type NonNullType struct {
	Type Type
}

func (NonNullType) isType() {}

//===----------------------------------------------------------------------------------------===//
// Values
//===----------------------------------------------------------------------------------------===//

// Value is any GraphQL input value literal or a variable reference.
type Value interface {
	isValue()
}

// Variable is a "$name" value reference, resolved against the request's variable values at
// execution time.
type Variable struct {
	Name Name
}

func (Variable) isValue() {}

// IntValue is an integer literal.
type IntValue struct {
	Value int64
}

func (IntValue) isValue() {}

// FloatValue is a floating point literal.
type FloatValue struct {
	Value float64
}

func (FloatValue) isValue() {}

// StringValue is a string literal.
type StringValue struct {
	Value string
}

func (StringValue) isValue() {}

// BooleanValue is a boolean literal.
type BooleanValue struct {
	Value bool
}

func (BooleanValue) isValue() {}

// NullValue is the literal "null".
type NullValue struct{}

func (NullValue) isValue() {}

// EnumValue is an unquoted name literal, interpreted against an Enum type.
type EnumValue struct {
	Value string
}

func (EnumValue) isValue() {}

// ListValue is a "[value, ...]" literal.
type ListValue struct {
	Values []Value
}

func (ListValue) isValue() {}

// ObjectField is one "name: value" entry of an ObjectValue.
type ObjectField struct {
	Name  Name
	Value Value
}

// ObjectValue is a "{name: value, ...}" literal.
type ObjectValue struct {
	Fields []ObjectField
}

func (ObjectValue) isValue() {}
