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
	"context"
	"io"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
	"github.com/nabeelbukhari/graphql-jit/jsonwriter"
)

// CompiledQuery is the executable plan for one operation of one document against one schema. It
// is immutable after Compile returns and may be run concurrently; each run owns its own result
// tree, error lists and counters.
type CompiledQuery struct {
	schema    graphql.Schema
	document  ast.Document
	operation *ast.OperationDefinition
	fragments map[string]*ast.FragmentDefinition

	rootType *graphql.Object
	root     *objectNode

	// numResolverSites sizes the per-run "reached" flag array; maxListDepth sizes the per-run list
	// index slots.
	numResolverSites int
	maxListDepth     int

	config     *compileConfig
	serializer ResultSerializer
}

// OperationName returns the name of the compiled operation, or "" for an anonymous one.
func (q *CompiledQuery) OperationName() string {
	return q.operation.Name.Value
}

// Operation returns the compiled operation's definition.
func (q *CompiledQuery) Operation() *ast.OperationDefinition {
	return q.operation
}

// RunParams bundles the per-invocation inputs of Execute.
type RunParams struct {
	// Root is the initial value the top-level resolvers resolve against.
	Root interface{}

	// AppContext carries application-specific data (an authenticated user, request caches) to
	// resolvers via ResolveInfo.
	AppContext interface{}

	// Variables are the operation's raw variable values; they pass through the configured
	// VariableCoercer before execution.
	Variables map[string]interface{}

	// DataLoaderManager, when given, is exposed to resolvers and has its pending loaders
	// dispatched whenever execution would otherwise go idle.
	DataLoaderManager graphql.DataLoaderManager
}

// Run executes the plan against a root value and variable bindings. It is shorthand for Execute
// with only those two inputs.
func (q *CompiledQuery) Run(
	ctx context.Context,
	root interface{},
	variables map[string]interface{}) <-chan *Result {
	return q.Execute(ctx, RunParams{Root: root, Variables: variables})
}

// Execute runs the plan. The returned channel delivers exactly one Result: immediately if every
// resolver completes synchronously, otherwise once the last outstanding resolver has landed and
// non-null violations have been trimmed. When variable coercion fails the Result carries only
// errors and a nil Data.
func (q *CompiledQuery) Execute(ctx context.Context, params RunParams) <-chan *Result {
	out := make(chan *Result, 1)

	variables, errs := q.config.variableCoercer.CoerceVariableValues(
		q.schema, q.operation, params.Variables)
	if errs.HaveOccurred() {
		out <- &Result{Errors: errs}
		return out
	}

	frame := &runFrame{
		query:      q,
		ctx:        ctx,
		rootValue:  params.Root,
		appContext: params.AppContext,
		variables:  variables,
		loaders:    params.DataLoaderManager,
		wake:       make(chan struct{}, 1),
		reached:    make([]bool, q.numResolverSites),
		out:        out,
	}

	go frame.run()
	return out
}

// Stringify writes the JSON encoding of a Result produced by this query. With a serializer built
// by a ResultSerializerBuilder it delegates there; otherwise it writes ordinary JSON.
func (q *CompiledQuery) Stringify(w io.Writer, result *Result) error {
	if q.serializer != nil {
		return q.serializer.SerializeResult(w, result)
	}
	stream := jsonwriter.NewStream(w)
	stream.WriteValue(result)
	return stream.Flush()
}
