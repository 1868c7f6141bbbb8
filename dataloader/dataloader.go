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

// Package dataloader batches and caches loads within one unit of work. A Load call doesn't fetch
// anything: it parks a task on the loader's queue and hands back a future. When the owner of the
// loader decides nothing else can make progress (for the query executor: the moment it would go
// idle), it calls Dispatch, and every task queued so far goes to the BatchLoader as one batch.
// Caching is per loader instance: two loads of one key share one task, so a key is fetched once
// for as long as its task stays cached. Clear and ClearAll drop cached tasks, and a loader
// configured with NoCacheMap caches nothing.
package dataloader

import (
	"context"
	"errors"
	"sync"

	"github.com/nabeelbukhari/graphql-jit/concurrent/future"
	"github.com/nabeelbukhari/graphql-jit/iterator"
)

// Key identifies one value a DataLoader can load (an id column value, a name, ...).
type Key interface{}

// Keys is an iterable collection of Key's.
type Keys interface {
	Iterator() KeyIterator
}

// KeysWithSize is a Keys whose size is known up front, letting LoadMany pre-allocate.
type KeysWithSize interface {
	Keys
	Size() int
}

// KeyIterator iterates a Keys collection, returning iterator.Done after the last key.
type KeyIterator interface {
	Next() (Key, error)
}

// keysArray adapts a slice of keys to KeysWithSize.
type keysArray struct {
	keys []Key
}

type keysArrayIterator struct {
	keys []Key
	next int
}

// Iterator implements Keys.
func (a keysArray) Iterator() KeyIterator {
	return &keysArrayIterator{keys: a.keys}
}

// Size implements KeysWithSize.
func (a keysArray) Size() int {
	return len(a.keys)
}

// Next implements KeyIterator.
func (iter *keysArrayIterator) Next() (Key, error) {
	if iter.next == len(iter.keys) {
		return nil, iterator.Done
	}
	key := iter.keys[iter.next]
	iter.next++
	return key, nil
}

// KeysFromArray wraps the given keys as a KeysWithSize.
func KeysFromArray(keys ...Key) KeysWithSize {
	return keysArray{keys}
}

// taskQueue accumulates tasks between dispatches. Each dispatch detaches the whole queue and
// installs a fresh one under queueMutex, so a Load racing with the detachment enqueues onto the
// fresh queue. The dispatched flag is set on a queue when it is detached; nothing reads it.
type taskQueue struct {
	loader     *DataLoader
	dispatched bool
	tasks      TaskList
}

func newTaskQueue(loader *DataLoader) *taskQueue {
	return &taskQueue{loader: loader}
}

// Enqueue creates and queues a task for key, or returns the cached task if the key has been
// requested before. Caller holds the loader's queueMutex.
func (queue *taskQueue) Enqueue(key Key) *Task {
	task := newTask(queue, key)

	if cacheMap := queue.loader.cacheMap; cacheMap != nil {
		if cachedTask := cacheMap.Set(task); cachedTask != task {
			// Another task already loads this key; share it instead of enqueuing.
			return cachedTask
		}
	}

	queue.tasks.push(task)
	return task
}

func (queue *taskQueue) Empty() bool {
	return queue.tasks.Empty()
}

// A DataLoader queues keyed load requests and satisfies them in batches through its
// BatchLoader.
type DataLoader struct {
	config *Config

	// queueMutex guards queue.
	queueMutex sync.Mutex
	queue      *taskQueue

	// cacheMap memoizes tasks per key; nil when caching is disabled.
	cacheMap CacheMap
}

var (
	errMissingBatchLoader = errors.New("batch loader is required to construct a DataLoader")
	errMissingKey         = errors.New("must specify key to identify data to be loaded")
)

// New creates a DataLoader from the given config.
func New(config Config) (*DataLoader, error) {
	if config.BatchLoader == nil {
		return nil, errMissingBatchLoader
	}

	cacheMap := config.CacheMap
	if cacheMap == nil {
		cacheMap = &DefaultCacheMap{}
	} else if cacheMap == NoCacheMap {
		cacheMap = nil
	}

	loader := &DataLoader{
		config:   &config,
		cacheMap: cacheMap,
	}
	loader.queue = newTaskQueue(loader)

	return loader, nil
}

// BatchLoader returns the loader's configured BatchLoader.
func (loader *DataLoader) BatchLoader() BatchLoader {
	return loader.config.BatchLoader
}

// Load requests the value for key. The returned future resolves after a later Dispatch runs the
// batch containing this key — or immediately, if the key's task already completed earlier.
func (loader *DataLoader) Load(key Key) (future.Future, error) {
	if key == nil {
		return nil, errMissingKey
	}

	if cacheMap := loader.cacheMap; cacheMap != nil {
		if task := cacheMap.Get(key); task != nil {
			return task.newFuture(), nil
		}
	}

	loader.queueMutex.Lock()
	task := loader.queue.Enqueue(key)
	loader.queueMutex.Unlock()

	return task.newFuture(), nil
}

// LoadMany requests the values for a collection of keys; the returned future resolves to an
// []interface{} of the values in key order once every key's batch has run.
func (loader *DataLoader) LoadMany(keys Keys) (future.Future, error) {
	var futures []future.Future
	if keys, ok := keys.(KeysWithSize); ok {
		futures = make([]future.Future, 0, keys.Size())
	}

	keyIter := keys.Iterator()
	for {
		key, err := keyIter.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, err
		}

		f, err := loader.Load(key)
		if err != nil {
			return nil, err
		}
		futures = append(futures, f)
	}

	return future.Join(futures...), nil
}

// Dispatch batches out every task queued up to this point. Tasks queued while the dispatch runs
// land on a fresh queue for the next Dispatch.
func (loader *DataLoader) Dispatch(ctx context.Context) {
	loader.dispatchQueue(ctx, loader.queue)
}

// dispatchQueue detaches the given queue from the loader and runs its batches. Whoever wins the
// detachment under queueMutex performs the work; losers see a stale or empty queue and return.
func (loader *DataLoader) dispatchQueue(ctx context.Context, queue *taskQueue) {
	queueMutex := &loader.queueMutex
	queueMutex.Lock()

	if queue != loader.queue || queue.Empty() {
		queueMutex.Unlock()
		return
	}

	queue.dispatched = true
	loader.queue = newTaskQueue(loader)
	queueMutex.Unlock()

	maxBatchSize := loader.config.MaxBatchSize
	if maxBatchSize == 0 {
		loader.dispatchQueueBatch(ctx, queue.tasks)
		return
	}

	// Split the queue into runs of at most maxBatchSize tasks.
	var (
		tasks     = queue.tasks
		firstTask = tasks.first
		task      = firstTask
		counter   = maxBatchSize
	)

	for task != nil {
		nextTask := task.next

		counter--
		if counter == 0 {
			loader.dispatchQueueBatch(ctx, TaskList{
				first: firstTask,
				last:  task,
			})
			counter = maxBatchSize
			firstTask = nextTask
		}

		task = nextTask
	}

	// The tail batch, if the task count wasn't a multiple of maxBatchSize.
	if firstTask != nil {
		loader.dispatchQueueBatch(ctx, TaskList{
			first: firstTask,
		})
	}
}

// dispatchQueueBatch runs one batch job, inline or on the configured Runner.
func (loader *DataLoader) dispatchQueueBatch(ctx context.Context, tasks TaskList) error {
	job := &BatchLoadJob{
		ctx:   ctx,
		tasks: tasks,
	}

	runner := loader.config.Runner
	if runner == nil {
		if _, err := job.Run(); err != nil {
			return err
		}
		return nil
	}

	if _, err := runner.Submit(job); err != nil {
		return err
	}
	return nil
}

// Clear drops the cached task for key, so the next Load fetches it again.
func (loader *DataLoader) Clear(key Key) {
	if cacheMap := loader.cacheMap; cacheMap != nil {
		cacheMap.Delete(key)
	}
}

// ClearAll drops every cached task.
func (loader *DataLoader) ClearAll() {
	if cacheMap := loader.cacheMap; cacheMap != nil {
		cacheMap.Clear()
	}
}

// Prime seeds the cache with a value for key; an already-cached key is left unchanged.
func (loader *DataLoader) Prime(key Key, value interface{}) error {
	cacheMap := loader.cacheMap
	if cacheMap == nil {
		return nil
	}

	task := newTask(nil, key)
	if err := task.Complete(value); err != nil {
		return err
	}
	cacheMap.Set(task)
	return nil
}

// PrimeError seeds the cache with an error for key; an already-cached key is left unchanged.
func (loader *DataLoader) PrimeError(key Key, err error) error {
	cacheMap := loader.cacheMap
	if cacheMap == nil {
		return nil
	}

	task := newTask(nil, key)
	if err := task.SetError(err); err != nil {
		return err
	}
	cacheMap.Set(task)
	return nil
}
