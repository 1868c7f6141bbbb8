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

// resolveInfo is the execution-state descriptor handed to field resolvers and type resolvers. It
// is a thin view over the run frame plus the site being resolved; Path is realized lazily from
// the compiled segment chain since most resolvers never ask for it.
type resolveInfo struct {
	frame   *runFrame
	ref     fieldRef
	path    *pathSegment
	indices []int
	parent  graphql.FieldSelectionInfo
	args    graphql.ArgumentValues
}

var (
	_ graphql.ResolveInfo        = (*resolveInfo)(nil)
	_ graphql.FieldSelectionInfo = (*resolveInfo)(nil)
)

// Schema implements graphql.ResolveInfo.
func (info *resolveInfo) Schema() graphql.Schema {
	return info.frame.query.schema
}

// Document implements graphql.ResolveInfo.
func (info *resolveInfo) Document() ast.Document {
	return info.frame.query.document
}

// Operation implements graphql.ResolveInfo.
func (info *resolveInfo) Operation() *ast.OperationDefinition {
	return info.frame.query.operation
}

// DataLoaderManager implements graphql.ResolveInfo.
func (info *resolveInfo) DataLoaderManager() graphql.DataLoaderManager {
	return info.frame.loaders
}

// RootValue implements graphql.ResolveInfo.
func (info *resolveInfo) RootValue() interface{} {
	return info.frame.rootValue
}

// AppContext implements graphql.ResolveInfo.
func (info *resolveInfo) AppContext() interface{} {
	return info.frame.appContext
}

// VariableValues implements graphql.ResolveInfo.
func (info *resolveInfo) VariableValues() graphql.VariableValues {
	return info.frame.variables
}

// ParentFieldSelection implements graphql.ResolveInfo.
func (info *resolveInfo) ParentFieldSelection() graphql.FieldSelectionInfo {
	return info.parent
}

// Object implements graphql.ResolveInfo.
func (info *resolveInfo) Object() *graphql.Object {
	return info.ref.parentType
}

// FieldDefinitions implements graphql.ResolveInfo and graphql.FieldSelectionInfo.
func (info *resolveInfo) FieldDefinitions() []*ast.Field {
	return info.ref.nodes
}

// Field implements graphql.ResolveInfo and graphql.FieldSelectionInfo.
func (info *resolveInfo) Field() graphql.Field {
	return info.ref.field
}

// Path implements graphql.ResolveInfo. List indices reflect the positions in scope when the
// enclosing resolver was scheduled.
func (info *resolveInfo) Path() graphql.ResponsePath {
	return info.path.resolve(info.indices)
}

// Args implements graphql.ResolveInfo and graphql.FieldSelectionInfo.
func (info *resolveInfo) Args() graphql.ArgumentValues {
	return info.args
}

// Parent implements graphql.FieldSelectionInfo.
func (info *resolveInfo) Parent() graphql.FieldSelectionInfo {
	return info.parent
}
