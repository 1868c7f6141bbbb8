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
	"sync"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
	"github.com/nabeelbukhari/graphql-jit/graphql/plan"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func simpleSchema() graphql.Schema {
	return querySchema(graphql.Fields{
		"hello": {
			Type:     graphql.T(graphql.String()),
			Resolver: constResolver("world"),
		},
		"answer": {
			Type:     graphql.T(graphql.Int()),
			Resolver: constResolver(42),
		},
	})
}

var _ = Describe("Compile: operation selection", func() {
	It("fails when the document has no operation", func() {
		_, errs := plan.Compile(simpleSchema(), ast.Document{}, "")
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors[0].Message).Should(Equal("Must provide an operation."))
	})

	It("fails when the document is ambiguous and no name is given", func() {
		document := ast.Document{
			Definitions: []ast.Definition{
				&ast.OperationDefinition{
					Name:         ast.Name{Value: "first"},
					SelectionSet: ast.SelectionSet{field("hello")},
				},
				&ast.OperationDefinition{
					Name:         ast.Name{Value: "second"},
					SelectionSet: ast.SelectionSet{field("hello")},
				},
			},
		}
		_, errs := plan.Compile(simpleSchema(), document, "")
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors[0].Message).Should(
			Equal("Must provide operation name if query contains multiple operations."))
	})

	It("fails on an unknown operation name", func() {
		_, errs := plan.Compile(simpleSchema(), queryDoc(field("hello")), "nope")
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors[0].Message).Should(Equal(`Unknown operation named "nope".`))
	})

	It("selects an operation by name", func() {
		document := ast.Document{
			Definitions: []ast.Definition{
				&ast.OperationDefinition{
					Name:         ast.Name{Value: "first"},
					SelectionSet: ast.SelectionSet{field("hello")},
				},
				&ast.OperationDefinition{
					Name:         ast.Name{Value: "second"},
					SelectionSet: ast.SelectionSet{field("answer")},
				},
			},
		}
		query := mustCompile(simpleSchema(), document, "second")
		Expect(query.OperationName()).Should(Equal("second"))
		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "answer": 42 }
		}`))
	})

	It("fails a mutation against a schema without a mutation root", func() {
		_, errs := plan.Compile(simpleSchema(), mutationDoc(field("hello")), "")
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors[0].Message).Should(Equal("Schema is not configured for mutations."))
	})

	It("rejects subscription operations", func() {
		document := ast.Document{
			Definitions: []ast.Definition{
				&ast.OperationDefinition{
					OperationType: ast.Subscription,
					SelectionSet:  ast.SelectionSet{field("hello")},
				},
			},
		}
		_, errs := plan.Compile(simpleSchema(), document, "")
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs.Errors[0].Message).Should(Equal("Subscription operations are not supported."))
	})
})

var _ = Describe("Compile: field collection", func() {
	It("silently skips unknown fields", func() {
		query := mustCompile(simpleSchema(), queryDoc(field("hello"), field("missing")), "")
		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "hello": "world" }
		}`))
	})

	It("respects aliases and keeps selection order", func() {
		query := mustCompile(simpleSchema(),
			queryDoc(aliasField("b", "answer"), aliasField("a", "hello")), "")

		result := runQuery(query, nil, nil)
		encoded, err := result.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(encoded)).Should(Equal(`{"data":{"b":42,"a":"world"}}`))
	})

	It("merges selections sharing a response key", func() {
		userType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "User",
			Fields: graphql.Fields{
				"name": {Type: graphql.T(graphql.String())},
				"age":  {Type: graphql.T(graphql.Int())},
			},
		})
		schema := querySchema(graphql.Fields{
			"me": {
				Type: graphql.T(userType),
				Resolver: constResolver(map[string]interface{}{
					"name": "ada",
					"age":  36,
				}),
			},
		})

		document := queryDoc(
			field("me", field("name")),
			field("me", field("age")),
		)
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "me": { "name": "ada", "age": 36 } }
		}`))
	})

	It("expands named fragments once, honoring type conditions", func() {
		document := ast.Document{
			Definitions: []ast.Definition{
				&ast.OperationDefinition{
					SelectionSet: ast.SelectionSet{
						&ast.FragmentSpread{Name: ast.Name{Value: "Base"}},
						&ast.FragmentSpread{Name: ast.Name{Value: "Base"}},
					},
				},
				&ast.FragmentDefinition{
					Name:          ast.Name{Value: "Base"},
					TypeCondition: ast.NamedType{Name: ast.Name{Value: "Query"}},
					SelectionSet:  ast.SelectionSet{field("hello")},
				},
			},
		}
		query := mustCompile(simpleSchema(), document, "")
		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "hello": "world" }
		}`))
	})

	It("resolves __typename without a user resolver", func() {
		query := mustCompile(simpleSchema(), queryDoc(field("__typename"), field("hello")), "")
		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "__typename": "Query", "hello": "world" }
		}`))
	})
})

var _ = Describe("Compile: @skip and @include", func() {
	withIf := func(name string, value ast.Value) *ast.Directive {
		return &ast.Directive{
			Name:      ast.Name{Value: name},
			Arguments: []*ast.Argument{arg("if", value)},
		}
	}

	It("drops selections excluded by literal directives at compile time", func() {
		skipped := field("hello")
		skipped.Directives = []*ast.Directive{withIf("skip", ast.BooleanValue{Value: true})}

		query := mustCompile(simpleSchema(), queryDoc(skipped, field("answer")), "")
		Expect(runQuery(query, nil, nil)).Should(MatchResultInJSON(`{
			"data": { "answer": 42 }
		}`))
	})

	It("decides variable-valued directives per run", func() {
		conditional := field("hello")
		conditional.Directives = []*ast.Directive{
			withIf("include", ast.Variable{Name: ast.Name{Value: "yes"}}),
		}

		query := mustCompile(simpleSchema(), queryDoc(conditional, field("answer")), "")

		Expect(runQuery(query, nil, map[string]interface{}{"yes": true})).Should(MatchResultInJSON(`{
			"data": { "hello": "world", "answer": 42 }
		}`))
		Expect(runQuery(query, nil, map[string]interface{}{"yes": false})).Should(MatchResultInJSON(`{
			"data": { "answer": 42 }
		}`))
	})
})

var _ = Describe("Compile: plan reuse", func() {
	It("yields equal results when the same inputs are compiled and run twice", func() {
		document := queryDoc(field("hello"), field("answer"))

		first := mustCompile(simpleSchema(), document, "")
		second := mustCompile(simpleSchema(), document, "")

		expected := `{ "data": { "hello": "world", "answer": 42 } }`
		Expect(runQuery(first, nil, nil)).Should(MatchResultInJSON(expected))
		Expect(runQuery(second, nil, nil)).Should(MatchResultInJSON(expected))
	})

	It("supports concurrent runs of one compiled plan with disjoint inputs", func() {
		schema := querySchema(graphql.Fields{
			"echo": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return info.RootValue(), nil
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("echo")), "")

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func(i int, root string) {
				defer wg.Done()
				defer GinkgoRecover()
				var result *plan.Result
				Eventually(query.Run(context.Background(), root, nil)).Should(Receive(&result))
				encoded, err := result.MarshalJSON()
				Expect(err).ShouldNot(HaveOccurred())
				results[i] = string(encoded)
			}(i, string(rune('a'+i)))
		}
		wg.Wait()

		for i, got := range results {
			Expect(got).Should(MatchJSON(`{"data":{"echo":"` + string(rune('a'+i)) + `"}}`))
		}
	})
})
