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
	"fmt"

	"github.com/nabeelbukhari/graphql-jit/graphql"
)

// TypeNameCarrier lets a resolved Go value name its own concrete GraphQL type at an
// abstract-typed position, the way a "__typename" entry does for map values.
type TypeNameCarrier interface {
	GraphQLTypeName() string
}

// completeAbstract resolves the concrete Object type for a value at an Interface- or Union-typed
// position and dispatches to that type's precompiled branch.
func (e *ectx) completeAbstract(n *node, ref fieldRef, slot *ResultNode, value interface{}) {
	ab := n.abstract

	objectType, err := e.resolveConcreteType(ab, ref, n.path, value)
	if err != nil {
		e.record(fieldError(err, ref.nodes, n.path.resolve(e.indices)), slot)
		return
	}

	branch := ab.branches[objectType]
	if branch == nil {
		err := graphql.NewError(
			fmt.Sprintf(`Runtime Object type "%s" is not a possible type for "%s".`,
				objectType.Name(), ab.abstractType.Name()),
			locationsOf(ref.nodes), n.path.resolve(e.indices), graphql.ErrKindExecution)
		e.record(err.(*graphql.Error), slot)
		return
	}

	e.completeObject(branch, slot, value)
}

// resolveConcreteType determines the concrete type for a value: the abstract type's own resolver
// when it has one, otherwise the type name carried by the value, otherwise a scan of the possible
// types' IsTypeOf predicates in a fixed order. Every branch of this chain is synchronous; type
// resolution never suspends.
func (e *ectx) resolveConcreteType(
	ab *abstractNode,
	ref fieldRef,
	path *pathSegment,
	value interface{}) (*graphql.Object, error) {

	frame := e.frame

	if ab.typeResolver != nil {
		info := &resolveInfo{
			frame:   frame,
			ref:     ref,
			path:    path,
			indices: e.indices,
			parent:  e.parentSelection,
			args:    graphql.NoArgumentValues(),
		}
		objectType, err := safeResolveType(
			frame.ctx, ab.typeResolver, value, info, frame.query.config.panicHandler)
		if err != nil {
			return nil, err
		}
		if objectType == nil {
			return nil, e.unresolvedAbstractError(ab, ref)
		}
		return objectType, nil
	}

	if name := typeNameOf(value); name != "" {
		if objectType := ab.typesByName[name]; objectType != nil {
			return objectType, nil
		}
		return nil, graphql.NewError(
			fmt.Sprintf(`Runtime Object type "%s" is not a possible type for "%s".`,
				name, ab.abstractType.Name()),
			graphql.ErrKindExecution)
	}

	for _, objectType := range ab.orderedTypes {
		if isTypeOf := objectType.IsTypeOf(); isTypeOf != nil && isTypeOf(frame.ctx, value) {
			return objectType, nil
		}
	}

	return nil, e.unresolvedAbstractError(ab, ref)
}

func (e *ectx) unresolvedAbstractError(ab *abstractNode, ref fieldRef) error {
	return graphql.NewError(
		fmt.Sprintf("Abstract type %s must resolve to an Object type at runtime for field %s.%s.",
			ab.abstractType.Name(), ref.parentType.Name(), ref.field.Name()),
		graphql.ErrKindExecution)
}

// typeNameOf extracts the concrete type name a value carries about itself, if any.
func typeNameOf(value interface{}) string {
	switch value := value.(type) {
	case map[string]interface{}:
		if name, ok := value[graphql.TypenameMetaFieldName].(string); ok {
			return name
		}
	case TypeNameCarrier:
		return value.GraphQLTypeName()
	}
	return ""
}
