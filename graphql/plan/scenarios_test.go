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
	"errors"
	"sync"
	"time"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Run: basic response shaping", func() {
	It("resolves a single leaf field", func() {
		schema := querySchema(graphql.Fields{
			"hello": {
				Type:     graphql.T(graphql.String()),
				Resolver: constResolver("world"),
			},
		})
		query := mustCompile(schema, queryDoc(field("hello")), "")

		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "hello": "world" }
		}`))
	})
})

var _ = Describe("Run: non-null error bubbling", func() {
	It("nulls the nearest nullable ancestor of a non-null violation", func() {
		typeA := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "A",
			Fields: graphql.Fields{
				"b": {
					Type:     graphql.NonNullOfType(graphql.String()),
					Resolver: constResolver(nil),
				},
			},
		})
		schema := querySchema(graphql.Fields{
			"a": {
				Type:     graphql.NonNullOf(graphql.T(typeA)),
				Resolver: constResolver(struct{}{}),
			},
		})
		query := mustCompile(schema, queryDoc(field("a", field("b"))), "")

		result := runQuery(query, nil, nil)
		Expect(result.Data).ShouldNot(BeNil())
		Expect(result.Data.IsNil()).Should(BeTrue())
		Expect(result.Errors.Errors).Should(HaveLen(1))

		err := result.Errors.Errors[0]
		Expect(err.Message).Should(ContainSubstring("Cannot return null for non-nullable field A.b"))
		Expect(err.Path.String()).Should(Equal("a.b"))
	})
})

var _ = Describe("Run: list element errors", func() {
	It("keeps sibling elements when one element is an error value", func() {
		schema := querySchema(graphql.Fields{
			"xs": {
				Type:     graphql.ListOf(graphql.T(graphql.Int())),
				Resolver: constResolver([]interface{}{1, errors.New("boom"), 3}),
			},
		})
		query := mustCompile(schema, queryDoc(field("xs")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "xs": [1, null, 3] }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))

		err := result.Errors.Errors[0]
		Expect(err.Message).Should(ContainSubstring("boom"))
		Expect(err.Path.String()).Should(Equal("xs[1]"))
	})
})

var _ = Describe("Run: abstract type dispatch", func() {
	It("dispatches a union value through its __typename", func() {
		catConfig := &graphql.ObjectConfig{
			Name: "Cat",
			Fields: graphql.Fields{
				"meow": {Type: graphql.T(graphql.String())},
			},
		}
		dogConfig := &graphql.ObjectConfig{
			Name: "Dog",
			Fields: graphql.Fields{
				"bark": {Type: graphql.T(graphql.String())},
			},
		}
		petUnion := graphql.MustNewUnion(&graphql.UnionConfig{
			Name:          "U",
			PossibleTypes: []graphql.ObjectTypeDefinition{catConfig, dogConfig},
		})
		schema := querySchema(graphql.Fields{
			"pet": {
				Type: graphql.T(petUnion),
				Resolver: constResolver(map[string]interface{}{
					"__typename": "Dog",
					"bark":       "woof",
					"meow":       "ignored",
				}),
			},
		})

		document := queryDoc(field("pet",
			&ast.InlineFragment{
				TypeCondition: ast.NamedType{Name: ast.Name{Value: "Cat"}},
				SelectionSet:  ast.SelectionSet{field("meow")},
			},
			&ast.InlineFragment{
				TypeCondition: ast.NamedType{Name: ast.Name{Value: "Dog"}},
				SelectionSet:  ast.SelectionSet{field("bark")},
			},
		))
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "pet": { "bark": "woof" } }
		}`))
	})
})

var _ = Describe("Run: serial mutation ordering", func() {
	It("executes top-level mutation fields strictly in declaration order", func() {
		var (
			mu      sync.Mutex
			counter int
		)

		schema := mutationSchema(graphql.Fields{
			"inc": {
				Type: graphql.T(graphql.Int()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return deferredValue(10*time.Millisecond, func() (interface{}, error) {
						mu.Lock()
						defer mu.Unlock()
						counter++
						return counter, nil
					}), nil
				}),
			},
			"snap": {
				Type: graphql.T(graphql.Int()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					mu.Lock()
					defer mu.Unlock()
					return counter, nil
				}),
			},
		})

		document := mutationDoc(
			aliasField("a", "inc"),
			aliasField("b", "snap"),
			aliasField("c", "inc"),
			aliasField("d", "snap"),
		)
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "a": 1, "b": 1, "c": 2, "d": 2 }
		}`))
	})
})

var _ = Describe("Run: variable binding", func() {
	greetSchema := func() graphql.Schema {
		return querySchema(graphql.Fields{
			"greet": {
				Type: graphql.T(graphql.String()),
				Args: graphql.ArgumentConfigMap{
					"name": {
						Type:         graphql.T(graphql.String()),
						DefaultValue: "anon",
					},
				},
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return info.Args().Get("name"), nil
				}),
			},
		})
	}

	document := queryDoc(argField("greet", []*ast.Argument{
		arg("name", ast.Variable{Name: ast.Name{Value: "n"}}),
	}))

	It("applies the argument default when the variable is absent", func() {
		query := mustCompile(greetSchema(), document, "")
		Expect(runQuery(query, nil, map[string]interface{}{})).Should(MatchResultInJSON(`{
			"data": { "greet": "anon" }
		}`))
	})

	It("binds the variable value when present", func() {
		query := mustCompile(greetSchema(), document, "")
		Expect(runQuery(query, nil, map[string]interface{}{"n": "hi"})).Should(MatchResultInJSON(`{
			"data": { "greet": "hi" }
		}`))
	})
})
