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
	"sort"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// Compile builds the specialized plan for one operation of the given (already parsed, already
// validated) document against the given schema. The returned CompiledQuery never touches the
// document again at run time; it is immutable and safe to Run concurrently.
//
// Failures to select an operation (none, unknown name, ambiguous) are reported as Errors, not
// panics; a nil schema is a programming error and panics.
func Compile(
	schema graphql.Schema,
	document ast.Document,
	operationName string,
	opts ...Option) (*CompiledQuery, graphql.Errors) {

	if schema == nil {
		panic("plan: Compile requires a schema")
	}

	operation, errs := selectOperation(document, operationName)
	if errs.HaveOccurred() {
		return nil, errs
	}

	rootType, errs := rootOperationType(schema, operation)
	if errs.HaveOccurred() {
		return nil, errs
	}

	config := newCompileConfig(opts)
	c := newCompiler(schema, document, config)

	root, err := c.compileObject(rootType, []ast.SelectionSet{operation.SelectionSet}, true, rootPath, 0)
	if err != nil {
		return nil, graphql.ErrorsOf(err)
	}

	query := &CompiledQuery{
		schema:           schema,
		document:         document,
		operation:        operation,
		fragments:        c.fragments,
		rootType:         rootType,
		root:             root,
		numResolverSites: c.nextResolverID,
		maxListDepth:     c.maxListDepth,
		config:           config,
	}

	if config.serializerBuilder != nil {
		serializer, err := config.serializerBuilder.BuildResultSerializer(query.PlanInfo())
		if err != nil {
			return nil, graphql.ErrorsOf(graphql.WrapError(err, "failed to build result serializer"))
		}
		query.serializer = serializer
	}

	return query, graphql.NoErrors()
}

// selectOperation picks the operation definition to compile: the named one when operationName is
// given, otherwise the document's sole operation.
func selectOperation(document ast.Document, operationName string) (*ast.OperationDefinition, graphql.Errors) {
	var (
		operation *ast.OperationDefinition
		count     int
	)
	for _, def := range document.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		count++
		if operationName == "" {
			operation = op
		} else if op.Name.Value == operationName {
			return op, graphql.NoErrors()
		}
	}

	if operationName != "" {
		return nil, graphql.ErrorsOf(fmt.Sprintf(`Unknown operation named "%s".`, operationName))
	}
	switch count {
	case 0:
		return nil, graphql.ErrorsOf("Must provide an operation.")
	case 1:
		return operation, graphql.NoErrors()
	default:
		return nil, graphql.ErrorsOf("Must provide operation name if query contains multiple operations.")
	}
}

func rootOperationType(schema graphql.Schema, operation *ast.OperationDefinition) (*graphql.Object, graphql.Errors) {
	switch operation.OperationType {
	case ast.Query:
		if schema.Query() == nil {
			return nil, graphql.ErrorsOf("Schema is not configured for queries.")
		}
		return schema.Query(), graphql.NoErrors()

	case ast.Mutation:
		if schema.Mutation() == nil {
			return nil, graphql.ErrorsOf("Schema is not configured for mutations.")
		}
		return schema.Mutation(), graphql.NoErrors()

	default:
		return nil, graphql.ErrorsOf("Subscription operations are not supported.")
	}
}

//===----------------------------------------------------------------------------------------===//
// Field collection
//===----------------------------------------------------------------------------------------===//

// collectedField is one response key in a selection set after fragment expansion: every ast.Field
// that contributes to the key, in source order, plus the schema Field they refer to.
type collectedField struct {
	responseKey string
	field       graphql.Field
	condition   *inclusionCondition
	nodes       []*ast.Field
}

// collectFields expands the given selection sets against a concrete runtime type, merging
// selections that share a response key. Fragment spreads and inline fragments whose type
// condition does not cover runtimeType contribute nothing.
func (c *compiler) collectFields(
	runtimeType *graphql.Object,
	selectionSets []ast.SelectionSet) []*collectedField {

	var (
		collected []*collectedField
		byKey     = map[string]*collectedField{}
		visited   = map[string]bool{}
	)

	var walk func(selectionSet ast.SelectionSet)
	walk = func(selectionSet ast.SelectionSet) {
		for _, selection := range selectionSet {
			switch selection := selection.(type) {
			case *ast.Field:
				condition, excluded := compileInclusion(selection.Directives)
				if excluded {
					continue
				}

				key := selection.ResponseKey()
				if existing := byKey[key]; existing != nil {
					// Same response key selected again; coalesce their selection sets.
					existing.nodes = append(existing.nodes, selection)
					continue
				}

				cf := &collectedField{
					responseKey: key,
					field:       c.findFieldDef(runtimeType, selection.Name.Value),
					condition:   condition,
					nodes:       []*ast.Field{selection},
				}
				byKey[key] = cf
				collected = append(collected, cf)

			case *ast.InlineFragment:
				if _, excluded := compileInclusion(selection.Directives); excluded {
					continue
				}
				if selection.TypeCondition.Name.Value != "" &&
					!c.typeConditionCovers(selection.TypeCondition, runtimeType) {
					continue
				}
				walk(selection.SelectionSet)

			case *ast.FragmentSpread:
				if _, excluded := compileInclusion(selection.Directives); excluded {
					continue
				}
				name := selection.Name.Value
				if visited[name] {
					continue
				}
				visited[name] = true

				fragment := c.fragments[name]
				if fragment == nil {
					continue
				}
				if !c.typeConditionCovers(fragment.TypeCondition, runtimeType) {
					continue
				}
				walk(fragment.SelectionSet)
			}
		}
	}

	for _, selectionSet := range selectionSets {
		walk(selectionSet)
	}
	return collected
}

// findFieldDef looks up a field on an Object type, special-casing __typename which can be queried
// on any Object (including members of a Union) without appearing in the type's field map. An
// unknown name returns nil and the caller skips the selection, matching the specification's
// "unknown fields do not fail execution" stance.
func (c *compiler) findFieldDef(parentType *graphql.Object, fieldName string) graphql.Field {
	if fieldName == graphql.TypenameMetaFieldName {
		return graphql.TypenameMetaFieldDef()
	}
	return parentType.Fields()[fieldName]
}

// typeConditionCovers reports whether a fragment with the given type condition applies to values
// of the given concrete runtime type.
func (c *compiler) typeConditionCovers(condition ast.NamedType, runtimeType *graphql.Object) bool {
	conditionType := c.schema.TypeFromAST(condition)
	if conditionType == nil {
		return false
	}
	if conditionType == graphql.Type(runtimeType) {
		return true
	}
	if abstractType, ok := conditionType.(graphql.AbstractType); ok {
		return c.schema.PossibleTypes(abstractType).Contains(runtimeType)
	}
	return false
}

// compileInclusion folds a selection's @skip/@include directives. Boolean literals are decided
// here: a selection that is statically excluded reports excluded=true and never reaches the plan.
// Variable-valued arguments produce a runtime condition evaluated once per run.
func compileInclusion(directives []*ast.Directive) (*inclusionCondition, bool) {
	if len(directives) == 0 {
		return nil, false
	}

	var condition *inclusionCondition

	if d, ok := ast.DirectiveByName(directives, "skip"); ok {
		switch op := compileBoolOperand(d); {
		case op == nil:
			// Malformed argument; let validation's verdict stand and include the selection.
		case op.variable == "" && op.literal:
			return nil, true
		case op.variable != "":
			condition = &inclusionCondition{skip: op}
		}
	}

	if d, ok := ast.DirectiveByName(directives, "include"); ok {
		switch op := compileBoolOperand(d); {
		case op == nil:
		case op.variable == "" && !op.literal:
			return nil, true
		case op.variable != "":
			if condition == nil {
				condition = &inclusionCondition{}
			}
			condition.include = op
		}
	}

	return condition, false
}

func compileBoolOperand(directive *ast.Directive) *boolOperand {
	arg, ok := ast.ArgumentByName(directive.Arguments, "if")
	if !ok {
		return nil
	}
	switch value := arg.Value.(type) {
	case ast.BooleanValue:
		return &boolOperand{literal: value.Value}
	case ast.Variable:
		return &boolOperand{variable: value.Name.Value}
	default:
		return nil
	}
}

//===----------------------------------------------------------------------------------------===//
// Type-directed compilation
//===----------------------------------------------------------------------------------------===//

// compileObject builds the objectNode for an Object-typed position. topLevel forces every field
// of the operation root into a resolver site even without a declared resolver, which gives
// uniform handling of null root values and consistent top-level error framing (and is what lets
// mutations serialize their root fields).
func (c *compiler) compileObject(
	objectType *graphql.Object,
	selectionSets []ast.SelectionSet,
	topLevel bool,
	path *pathSegment,
	depth int) (*objectNode, error) {

	collected := c.collectFields(objectType, selectionSets)

	result := &objectNode{objectType: objectType}
	for _, cf := range collected {
		if cf.field == nil {
			// Unknown field; validation is presumed to have rejected this already.
			continue
		}

		fieldPath := literalPath(path, cf.responseKey)
		fieldType := cf.field.Type()

		sub, err := c.compileType(graphql.NullableTypeOf(fieldType), cf.nodes, fieldPath, depth)
		if err != nil {
			return nil, err
		}

		entry := objectField{
			responseKey: cf.responseKey,
			nonNull:     graphql.IsNonNullType(fieldType),
			condition:   cf.condition,
		}

		resolver := cf.field.Resolver()
		if resolver == nil && topLevel {
			resolver = c.config.defaultResolver
		}
		if resolver != nil {
			entry.resolver = &resolverSite{
				id:         c.allocResolverID(),
				field:      cf.field,
				parentType: objectType,
				resolve:    resolver,
				args:       compileArguments(cf.field, cf.nodes[0].Arguments),
				sub:        sub,
				path:       fieldPath,
				nodes:      cf.nodes,
			}
		} else {
			entry.inline = &inlineField{
				field:      cf.field,
				parentType: objectType,
				sub:        sub,
				nodes:      cf.nodes,
			}
		}

		if entry.condition != nil {
			result.hasConditions = true
		}
		result.fields = append(result.fields, entry)
	}

	return result, nil
}

// compileType builds the node for one output-typed position. The type passed in is already
// stripped of its outermost Non-Null, if any; non-nullness lives on the enclosing slot, not in
// the node tree.
func (c *compiler) compileType(
	t graphql.Type,
	nodes []*ast.Field,
	path *pathSegment,
	depth int) (*node, error) {

	switch t := t.(type) {
	case graphql.LeafType:
		return &node{
			kind: kindLeaf,
			path: path,
			leaf: &leafNode{leafType: t, serialize: c.bindLeafSerializer(t)},
		}, nil

	case *graphql.Object:
		object, err := c.compileObject(t, selectionSetsOf(nodes), false, path, depth)
		if err != nil {
			return nil, err
		}
		return &node{kind: kindObject, path: path, object: object}, nil

	case graphql.AbstractType:
		return c.compileAbstract(t, nodes, path, depth)

	case graphql.List:
		elementType := t.ElementType()
		if depth+1 > c.maxListDepth {
			c.maxListDepth = depth + 1
		}
		element, err := c.compileType(
			graphql.NullableTypeOf(elementType), nodes, variablePath(path, depth), depth+1)
		if err != nil {
			return nil, err
		}
		return &node{
			kind: kindList,
			path: path,
			list: &listNode{
				element:        element,
				elementNonNull: graphql.IsNonNullType(elementType),
				depth:          depth,
			},
		}, nil

	default:
		return nil, graphql.NewError(
			fmt.Sprintf(`Cannot compile plan for unexpected output type "%v".`, t),
			graphql.ErrKindInternal)
	}
}

// compileAbstract builds the abstractNode for an Interface- or Union-typed position: one
// independently compiled branch per possible concrete type, tried in a stable (name-sorted)
// order when IsTypeOf scanning has to disambiguate.
func (c *compiler) compileAbstract(
	abstractType graphql.AbstractType,
	nodes []*ast.Field,
	path *pathSegment,
	depth int) (*node, error) {

	possibleTypes := c.schema.PossibleTypes(abstractType)
	ordered := possibleTypes.Objects()
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name() < ordered[j].Name()
	})

	result := &abstractNode{
		abstractType:  abstractType,
		typeResolver:  abstractType.TypeResolver(),
		possibleTypes: possibleTypes,
		branches:      make(map[*graphql.Object]*objectNode, len(ordered)),
		typesByName:   make(map[string]*graphql.Object, len(ordered)),
		orderedTypes:  ordered,
	}

	for _, objectType := range ordered {
		branch, err := c.compileObject(objectType, selectionSetsOf(nodes), false, path, depth)
		if err != nil {
			return nil, err
		}
		result.branches[objectType] = branch
		result.typesByName[objectType.Name()] = objectType
	}

	return &node{kind: kindAbstract, path: path, abstract: result}, nil
}

func selectionSetsOf(nodes []*ast.Field) []ast.SelectionSet {
	sets := make([]ast.SelectionSet, 0, len(nodes))
	for _, n := range nodes {
		if len(n.SelectionSet) > 0 {
			sets = append(sets, n.SelectionSet)
		}
	}
	return sets
}
