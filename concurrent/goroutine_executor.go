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

package concurrent

import (
	"errors"
	"sync"
	"time"
)

// GoroutineExecutor runs each submitted task on its own goroutine. It imposes no bound on
// concurrent tasks; it exists to take work off the caller's goroutine, not to ration it.
type GoroutineExecutor struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	shutdown bool
}

var _ Executor = (*GoroutineExecutor)(nil)

// ErrExecutorShutdown is returned by Submit after Shutdown has been requested.
var ErrExecutorShutdown = errors.New("executor has shut down")

// NewGoroutineExecutor creates a GoroutineExecutor.
func NewGoroutineExecutor() *GoroutineExecutor {
	return &GoroutineExecutor{}
}

// goroutineTaskHandle implements TaskHandle for tasks run by GoroutineExecutor.
type goroutineTaskHandle struct {
	done   chan struct{}
	result interface{}
	err    error
}

// Cancel implements TaskHandle. Tasks start the moment they are submitted, so there is never a
// queued task to withdraw.
func (handle *goroutineTaskHandle) Cancel() error {
	return errors.New("task has already started")
}

// AwaitResult implements TaskHandle.
func (handle *goroutineTaskHandle) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout <= 0 {
		<-handle.done
		return handle.result, handle.err
	}

	select {
	case <-handle.done:
		return handle.result, handle.err
	case <-time.After(timeout):
		return nil, ErrkAwaitTaskResultTimeout
	}
}

// Submit implements Executor.
func (executor *GoroutineExecutor) Submit(task Task) (TaskHandle, error) {
	executor.mu.Lock()
	if executor.shutdown {
		executor.mu.Unlock()
		return nil, ErrExecutorShutdown
	}
	executor.wg.Add(1)
	executor.mu.Unlock()

	handle := &goroutineTaskHandle{done: make(chan struct{})}
	go func() {
		defer executor.wg.Done()
		handle.result, handle.err = task.Run()
		close(handle.done)
	}()

	return handle, nil
}

// Shutdown implements Executor.
func (executor *GoroutineExecutor) Shutdown() (<-chan bool, error) {
	executor.mu.Lock()
	executor.shutdown = true
	executor.mu.Unlock()

	terminated := make(chan bool, 1)
	go func() {
		executor.wg.Wait()
		terminated <- true
	}()
	return terminated, nil
}
