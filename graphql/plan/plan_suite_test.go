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
	"testing"
	"time"

	"github.com/nabeelbukhari/graphql-jit/concurrent/future"
	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
	"github.com/nabeelbukhari/graphql-jit/graphql/plan"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

func TestGraphQLPlan(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "GraphQL Plan Suite")
}

// MatchResultInJSON matches a *plan.Result against its expected JSON encoding.
func MatchResultInJSON(resultJSON string) types.GomegaMatcher {
	return WithTransform(func(result *plan.Result) []byte {
		encoded, err := result.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		return encoded
	}, MatchJSON(resultJSON))
}

// MatchDataInJSON matches only the data tree of a *plan.Result.
func MatchDataInJSON(dataJSON string) types.GomegaMatcher {
	return WithTransform(func(result *plan.Result) []byte {
		Expect(result.Data).ShouldNot(BeNil())
		encoded, err := result.Data.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		return encoded
	}, MatchJSON(dataJSON))
}

//===----------------------------------------------------------------------------------------===//
// Schema and document construction helpers
//===----------------------------------------------------------------------------------------===//

func resolver(
	fn func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error)) graphql.FieldResolver {
	return graphql.FieldResolverFunc(fn)
}

func constResolver(value interface{}) graphql.FieldResolver {
	return graphql.FieldResolverFunc(
		func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			return value, nil
		})
}

func querySchema(fields graphql.Fields) graphql.Schema {
	schema, err := graphql.NewSchema(&graphql.SchemaConfig{
		Query: graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Query",
			Fields: fields,
		}),
	})
	Expect(err).ShouldNot(HaveOccurred())
	return schema
}

func mutationSchema(fields graphql.Fields) graphql.Schema {
	schema, err := graphql.NewSchema(&graphql.SchemaConfig{
		Query: graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"ok": {Type: graphql.T(graphql.Boolean())},
			},
		}),
		Mutation: graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: fields,
		}),
	})
	Expect(err).ShouldNot(HaveOccurred())
	return schema
}

func field(name string, selections ...ast.Selection) *ast.Field {
	return &ast.Field{
		Name:         ast.Name{Value: name},
		SelectionSet: selections,
	}
}

func aliasField(alias, name string, selections ...ast.Selection) *ast.Field {
	return &ast.Field{
		Alias:        ast.Name{Value: alias},
		Name:         ast.Name{Value: name},
		SelectionSet: selections,
	}
}

func argField(name string, args []*ast.Argument, selections ...ast.Selection) *ast.Field {
	return &ast.Field{
		Name:         ast.Name{Value: name},
		Arguments:    args,
		SelectionSet: selections,
	}
}

func arg(name string, value ast.Value) *ast.Argument {
	return &ast.Argument{
		Name:  ast.Name{Value: name},
		Value: value,
	}
}

func queryDoc(selections ...ast.Selection) ast.Document {
	return ast.Document{
		Definitions: []ast.Definition{
			&ast.OperationDefinition{
				OperationType: ast.Query,
				SelectionSet:  selections,
			},
		},
	}
}

func mutationDoc(selections ...ast.Selection) ast.Document {
	return ast.Document{
		Definitions: []ast.Definition{
			&ast.OperationDefinition{
				OperationType: ast.Mutation,
				SelectionSet:  selections,
			},
		},
	}
}

func mustCompile(
	schema graphql.Schema,
	document ast.Document,
	operationName string,
	opts ...plan.Option) *plan.CompiledQuery {
	query, errs := plan.Compile(schema, document, operationName, opts...)
	Expect(errs.HaveOccurred()).Should(BeFalse(), "compile errors: %v", errs.Errors)
	return query
}

func runQuery(
	query *plan.CompiledQuery,
	root interface{},
	variables map[string]interface{}) *plan.Result {
	var result *plan.Result
	Eventually(query.Run(context.Background(), root, variables)).Should(Receive(&result))
	return result
}

//===----------------------------------------------------------------------------------------===//
// Test futures
//===----------------------------------------------------------------------------------------===//

// testFuture resolves when its complete method is called, waking the most recent poller.
type testFuture struct {
	mu    sync.Mutex
	done  bool
	value interface{}
	err   error
	waker future.Waker
}

var _ future.Future = (*testFuture)(nil)

// Poll implements future.Future.
func (f *testFuture) Poll(waker future.Waker) (future.PollResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		if f.err != nil {
			return nil, f.err
		}
		return f.value, nil
	}
	f.waker = waker
	return future.PollResultPending, nil
}

func (f *testFuture) complete(value interface{}, err error) {
	f.mu.Lock()
	f.done = true
	f.value = value
	f.err = err
	waker := f.waker
	f.mu.Unlock()
	if waker != nil {
		_ = waker.Wake()
	}
}

// deferredValue resolves with fn's outcome after the given delay on a background timer.
func deferredValue(delay time.Duration, fn func() (interface{}, error)) future.Future {
	f := &testFuture{}
	time.AfterFunc(delay, func() {
		f.complete(fn())
	})
	return f
}
