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

// Option configures a Compile call.
type Option func(*compileConfig)

// WithResultSerializerBuilder arranges for the compiled query's Stringify to be backed by a
// serializer specialized to this query's shape. The builder receives a read-only description of
// the compiled plan (see OperationPlanInfo) and returns the serializer to bind. Without this
// option, Stringify writes ordinary JSON.
func WithResultSerializerBuilder(builder ResultSerializerBuilder) Option {
	return func(cfg *compileConfig) {
		cfg.serializerBuilder = builder
	}
}

// WithLeafSerializationDisabled makes built-in scalar and enum values pass through to the result
// tree untouched; the caller guarantees they are already in wire form. Serializers of custom
// scalars still run, since only the caller's own types can make that guarantee.
func WithLeafSerializationDisabled() Option {
	return func(cfg *compileConfig) {
		cfg.leafSerializationOff = true
	}
}

// WithPanicHandler replaces the handler that converts panics recovered from resolver and type
// resolver calls into field errors.
func WithPanicHandler(handler graphql.PanicHandler) Option {
	return func(cfg *compileConfig) {
		cfg.panicHandler = handler
	}
}

// WithLogger replaces the Logger that receives diagnostics (recovered panics, values of
// unexpected shape) during execution.
func WithLogger(logger graphql.Logger) Option {
	return func(cfg *compileConfig) {
		cfg.logger = logger
	}
}

// WithVariableCoercer installs the function that coerces raw variable values against the
// operation's variable definitions before each run. The default coercer passes values through
// untouched, preserving presence/absence of each variable key.
func WithVariableCoercer(coercer VariableCoercer) Option {
	return func(cfg *compileConfig) {
		cfg.variableCoercer = coercer
	}
}

// WithDefaultFieldResolver replaces the resolver used for top-level fields whose Field does not
// declare one.
func WithDefaultFieldResolver(resolver graphql.FieldResolver) Option {
	return func(cfg *compileConfig) {
		cfg.defaultResolver = resolver
	}
}

// VariableCoercer validates and coerces the raw variable values supplied to a run against the
// operation's variable definitions. Coercion is deliberately external to the compiler: callers
// that parse and validate documents elsewhere usually already have a coercion routine to match.
type VariableCoercer interface {
	CoerceVariableValues(
		schema graphql.Schema,
		operation *ast.OperationDefinition,
		values map[string]interface{}) (graphql.VariableValues, graphql.Errors)
}

// VariableCoercerFunc is an adapter to allow the use of ordinary functions as VariableCoercer.
type VariableCoercerFunc func(
	schema graphql.Schema,
	operation *ast.OperationDefinition,
	values map[string]interface{}) (graphql.VariableValues, graphql.Errors)

// CoerceVariableValues calls f.
func (f VariableCoercerFunc) CoerceVariableValues(
	schema graphql.Schema,
	operation *ast.OperationDefinition,
	values map[string]interface{}) (graphql.VariableValues, graphql.Errors) {
	return f(schema, operation, values)
}

// passThroughVariableCoercer hands the raw values to execution unchanged. A variable key that is
// absent from the input map stays absent, which is what argument binding keys off of.
type passThroughVariableCoercer struct{}

func (passThroughVariableCoercer) CoerceVariableValues(
	schema graphql.Schema,
	operation *ast.OperationDefinition,
	values map[string]interface{}) (graphql.VariableValues, graphql.Errors) {
	return graphql.NewVariableValues(values), graphql.NoErrors()
}
