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
	"io"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// ResultSerializer writes the wire encoding of a Result. The default serializer (nil) writes
// ordinary JSON; a ResultSerializerBuilder can bind a serializer specialized to the compiled
// query's shape.
type ResultSerializer interface {
	SerializeResult(w io.Writer, result *Result) error
}

// ResultSerializerBuilder constructs a ResultSerializer for a freshly compiled query. The builder
// sees the plan only through OperationPlanInfo, a read-only description of the response shape; it
// has no way to reach into or mutate the plan itself.
type ResultSerializerBuilder interface {
	BuildResultSerializer(info *OperationPlanInfo) (ResultSerializer, error)
}

// OperationPlanInfo is the read-only view of a compiled plan offered to serializer builders:
// the operation identity plus the tree of response positions with their response keys and
// schema types.
type OperationPlanInfo struct {
	query *CompiledQuery
}

// PlanInfo returns the read-only plan description for this query.
func (q *CompiledQuery) PlanInfo() *OperationPlanInfo {
	return &OperationPlanInfo{query: q}
}

// OperationName returns the compiled operation's name.
func (info *OperationPlanInfo) OperationName() string {
	return info.query.OperationName()
}

// OperationType returns the compiled operation's kind (query or mutation).
func (info *OperationPlanInfo) OperationType() ast.OperationType {
	return info.query.operation.OperationType
}

// RootType returns the schema Object type the operation executes against.
func (info *OperationPlanInfo) RootType() *graphql.Object {
	return info.query.rootType
}

// RootFields describes the operation's top-level response keys in selection order.
func (info *OperationPlanInfo) RootFields() []FieldPlanInfo {
	return fieldPlanInfos(info.query.root)
}

// FieldPlanInfo describes one response key of an object position.
type FieldPlanInfo struct {
	entry *objectField
}

func fieldPlanInfos(object *objectNode) []FieldPlanInfo {
	fields := make([]FieldPlanInfo, len(object.fields))
	for i := range object.fields {
		fields[i] = FieldPlanInfo{entry: &object.fields[i]}
	}
	return fields
}

// ResponseKey returns the key this field occupies in the response.
func (f FieldPlanInfo) ResponseKey() string {
	return f.entry.responseKey
}

// Field returns the schema field definition backing this response key.
func (f FieldPlanInfo) Field() graphql.Field {
	if f.entry.resolver != nil {
		return f.entry.resolver.field
	}
	return f.entry.inline.field
}

// Type returns the field's declared output type, wrappers included.
func (f FieldPlanInfo) Type() graphql.Type {
	return f.Field().Type()
}

// Deferred reports whether the field's value arrives through a resolver call rather than a
// synchronous property read.
func (f FieldPlanInfo) Deferred() bool {
	return f.entry.resolver != nil
}

// ConditionallyIncluded reports whether the field's presence in the response depends on query
// variables (@skip/@include). A serializer for such a query cannot hard-code this key's
// presence.
func (f FieldPlanInfo) ConditionallyIncluded() bool {
	return f.entry.condition != nil
}

func (f FieldPlanInfo) sub() *node {
	if f.entry.resolver != nil {
		return f.entry.resolver.sub
	}
	return f.entry.inline.sub
}

// ListDepths returns how many list wrappers the field's value nests through before reaching its
// terminal position (0 for a non-list field).
func (f FieldPlanInfo) ListDepths() int {
	depth := 0
	for n := f.sub(); n.kind == kindList; n = n.list.element {
		depth++
	}
	return depth
}

// SubFields describes the field's sub-selection when its terminal position is a concrete Object
// type; nil otherwise.
func (f FieldPlanInfo) SubFields() []FieldPlanInfo {
	n := terminalNode(f.sub())
	if n.kind != kindObject {
		return nil
	}
	return fieldPlanInfos(n.object)
}

// AbstractBranches describes the field's sub-selection per concrete type name when its terminal
// position is an Interface or Union; nil otherwise.
func (f FieldPlanInfo) AbstractBranches() map[string][]FieldPlanInfo {
	n := terminalNode(f.sub())
	if n.kind != kindAbstract {
		return nil
	}
	branches := make(map[string][]FieldPlanInfo, len(n.abstract.branches))
	for objectType, branch := range n.abstract.branches {
		branches[objectType.Name()] = fieldPlanInfos(branch)
	}
	return branches
}

// IsLeaf reports whether the field's terminal position is a scalar or enum.
func (f FieldPlanInfo) IsLeaf() bool {
	return terminalNode(f.sub()).kind == kindLeaf
}

func terminalNode(n *node) *node {
	for n.kind == kindList {
		n = n.list.element
	}
	return n
}
