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

// compileConfig collects the functional options given to Compile.
type compileConfig struct {
	serializerBuilder    ResultSerializerBuilder
	leafSerializationOff bool
	panicHandler         graphql.PanicHandler
	logger               graphql.Logger
	variableCoercer      VariableCoercer
	defaultResolver      graphql.FieldResolver
}

func newCompileConfig(opts []Option) *compileConfig {
	cfg := &compileConfig{
		panicHandler:    graphql.DefaultPanicHandler,
		logger:          graphql.DefaultLogger(),
		variableCoercer: passThroughVariableCoercer{},
		defaultResolver: &DefaultFieldResolver{ScanMethods: true},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// compiler holds state threaded through one Compile call: the schema/document being compiled
// against, the fragments available for spreading, and the counter used to hand out resolver ids
// (each id indexes a run's per-site "reached" flag array, which numResolverSites sizes).
type compiler struct {
	schema   graphql.Schema
	document ast.Document
	config   *compileConfig

	fragments map[string]*ast.FragmentDefinition

	nextResolverID int

	// maxListDepth is the deepest list nesting seen so far; it sizes the per-run index slot array.
	maxListDepth int
}

func newCompiler(schema graphql.Schema, document ast.Document, config *compileConfig) *compiler {
	c := &compiler{
		schema:    schema,
		document:  document,
		config:    config,
		fragments: make(map[string]*ast.FragmentDefinition),
	}
	for _, def := range document.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok {
			c.fragments[frag.Name.Value] = frag
		}
	}
	return c
}

func (c *compiler) allocResolverID() int {
	id := c.nextResolverID
	c.nextResolverID++
	return id
}
