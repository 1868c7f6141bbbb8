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

import (
	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// node is the compiled shape of a single position in the response: what the value there must look
// like, and how to get from a raw Go value at that position to the corresponding piece of the
// response. Compile walks the query once against the schema and produces a tree of these; Run never
// looks at the schema or the query document again, only at this tree.
//
// This is a closed tagged union rather than an interface-per-kind hierarchy: every node is
// completed by the same completeValue switch in exec.go, and a flat struct with a kind tag makes
// that switch exhaustive and allocation-light (one struct per position instead of one struct plus
// one interface box).
type node struct {
	kind nodeKind

	// path locates this position in the response. Segments for list indices are pathVariable
	// entries resolved against the running frame's index slots.
	path *pathSegment

	object   *objectNode
	leaf     *leafNode
	list     *listNode
	abstract *abstractNode
}

type nodeKind uint8

const (
	kindObject nodeKind = iota
	kindLeaf
	kindList
	kindAbstract
)

// objectField is one entry of an objectNode: either a resolver site (the field has a FieldResolver
// and its value is obtained by calling it) or an inline field (the value is read synchronously from
// the parent source value, with no deferral at all).
type objectField struct {
	responseKey string
	nonNull     bool

	// condition is non-nil when the field carries @skip/@include directives whose outcome can
	// depend on query variables; it is evaluated once per run.
	condition *inclusionCondition

	// Exactly one of resolver/inline is set.
	resolver *resolverSite
	inline   *inlineField
}

// inlineField reads its value synchronously off the parent source value and continues compiling
// into sub, without ever going through the deferred-resolver machinery.
type inlineField struct {
	field      graphql.Field
	parentType *graphql.Object
	sub        *node
	nodes      []*ast.Field
}

// objectNode is the compiled shape for an Object-typed position: a fixed list of response-key
// slots, each either resolved inline or by a deferred resolver call. hasConditions is set when
// any field's inclusion depends on query variables, so the common case skips re-filtering per
// run.
type objectNode struct {
	objectType    *graphql.Object
	fields        []objectField
	hasConditions bool
}

// leafNode is the compiled shape for a Scalar- or Enum-typed position. serialize is bound at
// compile time so the run-time switch never has to re-decide whether leaf serialization is
// enabled for this type.
type leafNode struct {
	leafType  graphql.LeafType
	serialize func(value interface{}) (interface{}, error)
}

// listNode is the compiled shape for a List-typed position. depth is this list's nesting level
// among enclosing lists (0 for a top-level list, 1 for a list inside a list, ...), used to select
// which slot of a run's indices array holds the currently-iterated index when a pathVariable
// segment is resolved.
type listNode struct {
	element        *node
	elementNonNull bool
	depth          int
}

// abstractNode is the compiled shape for an Interface- or Union-typed position. branches holds one
// pre-compiled objectNode per possible concrete Object type. orderedTypes fixes the scan order for
// IsTypeOf fallback so two runs of the same plan always try candidate types in the same order.
type abstractNode struct {
	abstractType  graphql.AbstractType
	typeResolver  graphql.TypeResolver
	possibleTypes graphql.PossibleTypeSet
	branches      map[*graphql.Object]*objectNode
	typesByName   map[string]*graphql.Object
	orderedTypes  []*graphql.Object
}

// resolverSite is a deferred call: a FieldResolver invocation plus the compiled plan for whatever
// its output type turns out to need once the value comes back. Every top-level field and every
// field that declares a FieldResolver gets one of these; a field without a resolver never does,
// since its value is always available synchronously from its parent.
type resolverSite struct {
	id int

	field      graphql.Field
	parentType *graphql.Object
	resolve    graphql.FieldResolver
	args       *argumentBinding

	// sub is compiled for NullableTypeOf(field.Type()); whether a null/error at this site must
	// bubble past the enclosing slot is recorded on the slot itself when it is allocated.
	sub *node

	path  *pathSegment
	nodes []*ast.Field
}

// inclusionCondition is the compiled form of @skip/@include on a field selection. Each operand is
// either a boolean literal folded at compile time or a variable reference looked up per run.
type inclusionCondition struct {
	skip    *boolOperand
	include *boolOperand
}

type boolOperand struct {
	literal  bool
	variable string // non-empty when the directive argument was "$variable"
}

func (op *boolOperand) value(variables graphql.VariableValues) bool {
	if op.variable == "" {
		return op.literal
	}
	v, ok := variables.Lookup(op.variable)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// evaluate reports whether a field guarded by this condition is included in the response for the
// given variable values. @skip wins over @include, matching the specification.
func (cond *inclusionCondition) evaluate(variables graphql.VariableValues) bool {
	if cond == nil {
		return true
	}
	if cond.skip != nil && cond.skip.value(variables) {
		return false
	}
	if cond.include != nil && !cond.include.value(variables) {
		return false
	}
	return true
}
