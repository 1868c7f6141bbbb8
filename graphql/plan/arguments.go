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
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// argumentBinding is the compiled form of a field's argument list: one entry per argument declared
// on the field in the schema, each holding enough of the query's literal (which may itself
// reference variables at any depth) to produce a value at run time without re-walking the AST.
type argumentBinding struct {
	entries []argumentEntry
}

type argumentEntry struct {
	name string

	// template is the literal supplied in the query for this argument, or nil if the argument wasn't
	// given at all. It may contain ast.Variable nodes at any depth (directly, or nested inside a
	// ListValue/ObjectValue).
	template ast.Value

	hasDefault bool
	defValue   interface{}
}

// compileArguments binds each of field's declared arguments against the literal (if any) supplied
// for it in astArgs.
func compileArguments(field graphql.Field, astArgs []*ast.Argument) *argumentBinding {
	declared := field.Args()
	if len(declared) == 0 {
		return nil
	}

	binding := &argumentBinding{entries: make([]argumentEntry, len(declared))}
	for i, arg := range declared {
		entry := argumentEntry{
			name:       arg.Name(),
			hasDefault: arg.HasDefaultValue(),
		}
		if entry.hasDefault {
			entry.defValue = arg.DefaultValue()
		}
		if astArg, ok := ast.ArgumentByName(astArgs, entry.name); ok {
			entry.template = astArg.Value
		}
		binding.entries[i] = entry
	}
	return binding
}

// bind produces the ArgumentValues to pass to a resolver, given the variables available for this
// run. An argument is included if its literal resolves to a value (every variable it references,
// directly or nested, is present in variables) or if it has a schema default; otherwise it is
// omitted entirely, matching GraphQL's CoerceArgumentValues algorithm.
func (b *argumentBinding) bind(variables graphql.VariableValues) graphql.ArgumentValues {
	if b == nil || len(b.entries) == 0 {
		return graphql.NoArgumentValues()
	}

	values := make(map[string]interface{}, len(b.entries))
	for _, entry := range b.entries {
		if entry.template != nil {
			if v, ok := realizeLiteral(entry.template, variables); ok {
				values[entry.name] = v
				continue
			}
		}
		if entry.hasDefault {
			values[entry.name] = entry.defValue
		}
	}
	return graphql.NewArgumentValues(values)
}

// realizeLiteral walks a query-literal value tree, substituting variable references from
// variables. ok is false if v is (or nests) a Variable whose name is absent from variables, meaning
// the caller should fall back to whatever else applies (the field's default, or omission).
func realizeLiteral(v ast.Value, variables graphql.VariableValues) (interface{}, bool) {
	switch v := v.(type) {
	case ast.Variable:
		return variables.Lookup(v.Name.Value)

	case ast.NullValue:
		return nil, true
	case ast.IntValue:
		return v.Value, true
	case ast.FloatValue:
		return v.Value, true
	case ast.StringValue:
		return v.Value, true
	case ast.BooleanValue:
		return v.Value, true
	case ast.EnumValue:
		return v.Value, true

	case ast.ListValue:
		result := make([]interface{}, len(v.Values))
		for i, elem := range v.Values {
			ev, ok := realizeLiteral(elem, variables)
			if !ok {
				return nil, false
			}
			result[i] = ev
		}
		return result, true

	case ast.ObjectValue:
		result := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			fv, ok := realizeLiteral(f.Value, variables)
			if !ok {
				return nil, false
			}
			result[f.Name.Value] = fv
		}
		return result, true

	default:
		panic(fmt.Sprintf("plan: unsupported argument value literal %T", v))
	}
}
