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

package dataloader

import (
	"context"

	"github.com/nabeelbukhari/graphql-jit/concurrent"
)

// BatchLoader fetches the data for a batch of tasks. It must finish every task in the list —
// with Complete or SetError — before returning; a task left incomplete is failed by the
// dispatcher.
type BatchLoader interface {
	Load(ctx context.Context, tasks *TaskList)
}

// The BatchLoadFunc type is an adapter to allow the use of ordinary functions as BatchLoader.
type BatchLoadFunc func(ctx context.Context, tasks *TaskList)

// Load implements BatchLoader by calling f.
func (f BatchLoadFunc) Load(ctx context.Context, tasks *TaskList) {
	f(ctx, tasks)
}

// Config describes one DataLoader: how it fetches, how it batches, and how it caches.
type Config struct {
	// BatchLoader fetches data for batches of keys. Required.
	BatchLoader BatchLoader

	// Runner, when given, executes dispatched batch jobs instead of the dispatching goroutine.
	Runner concurrent.Executor

	// MaxBatchSize caps how many tasks a single BatchLoader call receives; 0 means unbounded,
	// 1 effectively disables batching.
	MaxBatchSize uint

	// CacheMap selects the per-key task cache: nil for DefaultCacheMap, NoCacheMap to disable
	// caching, or any custom CacheMap implementation.
	CacheMap CacheMap
}
