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

package plan_test

import (
	"context"
	"fmt"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Run: argument binding", func() {
	echoSchema := func(argType graphql.TypeDefinition) graphql.Schema {
		return querySchema(graphql.Fields{
			"echo": {
				Type: graphql.T(graphql.String()),
				Args: graphql.ArgumentConfigMap{
					"v": {Type: argType},
				},
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					value, ok := info.Args().Lookup("v")
					if !ok {
						return "absent", nil
					}
					return fmt.Sprintf("%v", value), nil
				}),
			},
		})
	}

	It("binds literal arguments at compile time", func() {
		schema := echoSchema(graphql.T(graphql.Int()))
		document := queryDoc(argField("echo", []*ast.Argument{
			arg("v", ast.IntValue{Value: 42}),
		}))
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "echo": "42" }
		}`))
	})

	It("omits an argument whose variable is absent and has no default", func() {
		schema := echoSchema(graphql.T(graphql.String()))
		document := queryDoc(argField("echo", []*ast.Argument{
			arg("v", ast.Variable{Name: ast.Name{Value: "x"}}),
		}))
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, map[string]interface{}{})).Should(MatchResultInJSON(`{
			"data": { "echo": "absent" }
		}`))
		Expect(runQuery(query, nil, map[string]interface{}{"x": "here"})).Should(MatchResultInJSON(`{
			"data": { "echo": "here" }
		}`))
	})

	It("realizes variables nested inside list literals", func() {
		schema := echoSchema(graphql.ListOf(graphql.T(graphql.Int())))
		document := queryDoc(argField("echo", []*ast.Argument{
			arg("v", ast.ListValue{Values: []ast.Value{
				ast.IntValue{Value: 1},
				ast.Variable{Name: ast.Name{Value: "x"}},
			}}),
		}))
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, map[string]interface{}{"x": 2})).Should(MatchResultInJSON(`{
			"data": { "echo": "[1 2]" }
		}`))
		// A nested missing variable withholds the whole argument.
		Expect(runQuery(query, nil, map[string]interface{}{})).Should(MatchResultInJSON(`{
			"data": { "echo": "absent" }
		}`))
	})

	It("keeps static argument values stable across runs", func() {
		schema := echoSchema(graphql.T(graphql.Float()))
		document := queryDoc(argField("echo", []*ast.Argument{
			arg("v", ast.FloatValue{Value: 2.5}),
		}))
		query := mustCompile(schema, document, "")

		for i := 0; i < 3; i++ {
			Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
				"data": { "echo": "2.5" }
			}`))
		}
	})
})
