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
	"time"

	"github.com/nabeelbukhari/graphql-jit/graphql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Run: list handling", func() {
	It("rejects a non-iterable value at a list position", func() {
		schema := querySchema(graphql.Fields{
			"xs": {
				Type:     graphql.ListOf(graphql.T(graphql.Int())),
				Resolver: constResolver(42),
			},
		})
		query := mustCompile(schema, queryDoc(field("xs")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "xs": null }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Message).Should(
			ContainSubstring("Expected Iterable, but did not find one for field Query.xs."))
	})

	It("rejects a string at a list position", func() {
		schema := querySchema(graphql.Fields{
			"xs": {
				Type:     graphql.ListOf(graphql.T(graphql.String())),
				Resolver: constResolver("not a list"),
			},
		})
		query := mustCompile(schema, queryDoc(field("xs")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "xs": null }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
	})

	It("tracks indices independently across nesting levels", func() {
		schema := querySchema(graphql.Fields{
			"grid": {
				Type: graphql.ListOf(graphql.ListOf(graphql.T(graphql.Int()))),
				Resolver: constResolver([]interface{}{
					[]interface{}{1, 2},
					[]interface{}{3, errors.New("bad cell")},
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("grid")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "grid": [[1, 2], [3, null]] }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Path.String()).Should(Equal("grid[1][1]"))
	})

	It("treats a panic in an element's resolver as an in-band element error", func() {
		itemType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Item",
			Fields: graphql.Fields{
				"v": {
					Type: graphql.T(graphql.Int()),
					Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						n := source.(map[string]interface{})["n"].(int)
						if n == 1 {
							panic("element resolver blew up")
						}
						return n, nil
					}),
				},
			},
		})
		schema := querySchema(graphql.Fields{
			"items": {
				Type: graphql.ListOf(graphql.T(itemType)),
				Resolver: constResolver([]interface{}{
					map[string]interface{}{"n": 0},
					map[string]interface{}{"n": 1},
					map[string]interface{}{"n": 2},
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("items", field("v"))), "", withQuietLogger())

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{
			"items": [{ "v": 0 }, { "v": null }, { "v": 2 }]
		}`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Path.String()).Should(Equal("items[1].v"))
	})

	It("awaits futures among list elements, catching rejections in-band", func() {
		schema := querySchema(graphql.Fields{
			"xs": {
				Type: graphql.ListOf(graphql.T(graphql.Int())),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return []interface{}{
						1,
						deferredValue(2*time.Millisecond, func() (interface{}, error) { return 2, nil }),
						deferredValue(time.Millisecond, func() (interface{}, error) { return nil, errors.New("late boom") }),
					}, nil
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("xs")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "xs": [1, 2, null] }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Message).Should(ContainSubstring("late boom"))
		Expect(result.Errors.Errors[0].Path.String()).Should(Equal("xs[2]"))
	})

	It("bubbles a non-null element failure to the list itself", func() {
		schema := querySchema(graphql.Fields{
			"xs": {
				Type:     graphql.ListOf(graphql.NonNullOf(graphql.T(graphql.Int()))),
				Resolver: constResolver([]interface{}{1, nil, 3}),
			},
		})
		query := mustCompile(schema, queryDoc(field("xs")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "xs": null }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Path.String()).Should(Equal("xs[1]"))
	})
})
