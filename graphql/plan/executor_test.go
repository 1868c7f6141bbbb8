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
	"github.com/nabeelbukhari/graphql-jit/graphql/plan"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// withPanicHandler and withQuietLogger keep the option wiring in one place for tests.
func withPanicHandler(handler func(recovered interface{}) error) plan.Option {
	return plan.WithPanicHandler(graphql.PanicHandler(handler))
}

type quietLogger struct{}

func (quietLogger) WithFields(fields graphql.LogFields) graphql.Logger { return quietLogger{} }
func (quietLogger) Error(args ...interface{})                          {}
func (quietLogger) Warn(args ...interface{})                           {}

func withQuietLogger() plan.Option {
	return plan.WithLogger(quietLogger{})
}

var _ = Describe("Run: asynchronous resolvers", func() {
	It("awaits futures returned by resolvers and preserves key order", func() {
		schema := querySchema(graphql.Fields{
			"fast": {
				Type:     graphql.T(graphql.String()),
				Resolver: constResolver("sync"),
			},
			"slow": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return deferredValue(5*time.Millisecond, func() (interface{}, error) {
						return "async", nil
					}), nil
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("slow"), field("fast")), "")

		result := runQuery(query, nil, nil)
		encoded, err := result.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		// Key order mirrors selection order even though "slow" lands last.
		Expect(string(encoded)).Should(Equal(`{"data":{"slow":"async","fast":"sync"}}`))
	})

	It("materializes a future's rejection as a field error", func() {
		schema := querySchema(graphql.Fields{
			"x": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return deferredValue(time.Millisecond, func() (interface{}, error) {
						return nil, errors.New("rejected")
					}), nil
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("x")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{ "x": null }`))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Message).Should(ContainSubstring("rejected"))
		Expect(result.Errors.Errors[0].Path.String()).Should(Equal("x"))
	})

	It("treats a returned error value and a panic alike", func() {
		schema := querySchema(graphql.Fields{
			"returned": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return nil, errors.New("returned error")
				}),
			},
			"panicked": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					panic("panicked error")
				}),
			},
			"fine": {
				Type:     graphql.T(graphql.String()),
				Resolver: constResolver("still here"),
			},
		})
		query := mustCompile(schema,
			queryDoc(field("returned"), field("panicked"), field("fine")), "")

		result := runQuery(query, nil, nil)
		Expect(result).Should(MatchDataInJSON(`{
			"returned": null,
			"panicked": null,
			"fine": "still here"
		}`))
		Expect(result.Errors.Errors).Should(HaveLen(2))

		messages := []string{result.Errors.Errors[0].Message, result.Errors.Errors[1].Message}
		Expect(messages).Should(ContainElement(ContainSubstring("returned error")))
		Expect(messages).Should(ContainElement(ContainSubstring("panic while resolving field")))
	})

	It("routes recovered panics through a custom panic handler", func() {
		schema := querySchema(graphql.Fields{
			"x": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					panic("kaboom")
				}),
			},
		})

		var recovered interface{}
		query := mustCompile(schema, queryDoc(field("x")), "",
			withQuietLogger(),
			withPanicHandler(func(r interface{}) error {
				recovered = r
				return graphql.NewError("handled panic")
			}))

		result := runQuery(query, nil, nil)
		Expect(recovered).Should(Equal("kaboom"))
		Expect(result.Errors.Errors).Should(HaveLen(1))
		Expect(result.Errors.Errors[0].Message).Should(Equal("handled panic"))
	})

	It("folds a cancelled context into the result", func() {
		ctx, cancel := context.WithCancel(context.Background())

		schema := querySchema(graphql.Fields{
			"never": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(rctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return &testFuture{}, nil // never resolves
				}),
			},
		})
		query := mustCompile(schema, queryDoc(field("never")), "")

		out := query.Run(ctx, nil, nil)
		time.AfterFunc(5*time.Millisecond, cancel)

		var result *plan.Result
		Eventually(out, time.Second).Should(Receive(&result))
		Expect(result.Errors.HaveOccurred()).Should(BeTrue())
		Expect(result.Errors.Errors[0].Message).Should(ContainSubstring("cancelled"))
	})
})

var _ = Describe("Run: mutation subtree draining", func() {
	It("does not start the next top-level resolver until the previous subtree drains", func() {
		var (
			mu    sync.Mutex
			trace []string
		)
		record := func(name string) {
			mu.Lock()
			trace = append(trace, name)
			mu.Unlock()
		}

		itemType := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Item",
			Fields: graphql.Fields{
				"slow": {
					Type: graphql.T(graphql.String()),
					Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
						return deferredValue(10*time.Millisecond, func() (interface{}, error) {
							record("first.slow")
							return "done", nil
						}), nil
					}),
				},
			},
		})

		schema := mutationSchema(graphql.Fields{
			"first": {
				Type: graphql.T(itemType),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					record("first")
					return struct{}{}, nil
				}),
			},
			"second": {
				Type: graphql.T(graphql.String()),
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					record("second")
					return "ok", nil
				}),
			},
		})

		document := mutationDoc(
			field("first", field("slow")),
			field("second"),
		)
		query := mustCompile(schema, document, "")

		Expect(runQuery(query, nil, nil)).Should(MatchDataInJSON(`{
			"first": { "slow": "done" },
			"second": "ok"
		}`))

		mu.Lock()
		defer mu.Unlock()
		Expect(trace).Should(Equal([]string{"first", "first.slow", "second"}))
	})
})
