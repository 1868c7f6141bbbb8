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

	"github.com/nabeelbukhari/graphql-jit/concurrent"
	"github.com/nabeelbukhari/graphql-jit/dataloader"
	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
	"github.com/nabeelbukhari/graphql-jit/graphql/plan"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// nameLoaderManager tracks one DataLoader and the batches its BatchLoader received.
type nameLoaderManager struct {
	graphql.DataLoaderManagerBase

	loader *dataloader.DataLoader

	mu      sync.Mutex
	batches [][]string
}

func newNameLoaderManager(runner concurrent.Executor) *nameLoaderManager {
	manager := &nameLoaderManager{}

	loader, err := dataloader.New(dataloader.Config{
		Runner: runner,
		BatchLoader: dataloader.BatchLoadFunc(func(ctx context.Context, tasks *dataloader.TaskList) {
			var keys []string
			for iter, end := tasks.Begin(), tasks.End(); iter != end; iter = iter.Next() {
				task := iter.Task
				key := task.Key().(string)
				keys = append(keys, key)
				_ = task.Complete("name of " + key)
			}
			manager.mu.Lock()
			manager.batches = append(manager.batches, keys)
			manager.mu.Unlock()
		}),
	})
	Expect(err).ShouldNot(HaveOccurred())
	manager.loader = loader
	return manager
}

func (manager *nameLoaderManager) recordedBatches() [][]string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.batches
}

var _ = Describe("Run: data loader dispatch", func() {
	newQuery := func() *plan.CompiledQuery {
		schema := querySchema(graphql.Fields{
			"name": {
				Type: graphql.T(graphql.String()),
				Args: graphql.ArgumentConfigMap{
					"id": {Type: graphql.T(graphql.String())},
				},
				Resolver: resolver(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					manager := info.DataLoaderManager().(*nameLoaderManager)
					f, err := manager.LoadWith(manager.loader, info.Args().Get("id"))
					if err != nil {
						return nil, err
					}
					return f, nil
				}),
			},
		})

		fieldA := aliasField("a", "name")
		fieldA.Arguments = []*ast.Argument{arg("id", ast.StringValue{Value: "1"})}
		fieldB := aliasField("b", "name")
		fieldB.Arguments = []*ast.Argument{arg("id", ast.StringValue{Value: "2"})}

		return mustCompile(schema, queryDoc(fieldA, fieldB), "")
	}

	It("batches loads made by sibling resolvers into one dispatch", func() {
		manager := newNameLoaderManager(nil)
		query := newQuery()

		var result *plan.Result
		Eventually(query.Execute(context.Background(), plan.RunParams{
			DataLoaderManager: manager,
		})).Should(Receive(&result))

		encoded, err := result.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(encoded)).Should(MatchJSON(`{
			"data": { "a": "name of 1", "b": "name of 2" }
		}`))

		Expect(manager.recordedBatches()).Should(Equal([][]string{{"1", "2"}}))
	})

	It("batches loads when the batch function runs on a background executor", func() {
		runner := concurrent.NewGoroutineExecutor()
		defer func() {
			terminated, err := runner.Shutdown()
			Expect(err).ShouldNot(HaveOccurred())
			Eventually(terminated).Should(Receive(BeTrue()))
		}()

		manager := newNameLoaderManager(runner)
		query := newQuery()

		var result *plan.Result
		Eventually(query.Execute(context.Background(), plan.RunParams{
			DataLoaderManager: manager,
		})).Should(Receive(&result))

		Expect(manager.recordedBatches()).Should(Equal([][]string{{"1", "2"}}))
	})
})
