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

// Package concurrent defines the task-execution contract shared by components that want work
// taken off their goroutine (the data loader's batch jobs, most prominently), plus a simple
// goroutine-per-task implementation.
package concurrent

import (
	"errors"
	"time"
)

// A Task is one unit of work an Executor can run. Its return value travels to the TaskHandle
// obtained when the task was submitted.
type Task interface {
	Run() (interface{}, error)
}

// The TaskFunc type is an adapter to allow the use of ordinary functions as a Task.
type TaskFunc func() (interface{}, error)

// TaskFunc implements Task.
var _ Task = (TaskFunc)(nil)

// Run implements Task by calling f.
func (f TaskFunc) Run() (interface{}, error) {
	return f()
}

// Sentinel errors returned from TaskHandle.AwaitResult.
var (
	// ErrTaskCancelled reports that the task was cancelled before it produced a result.
	ErrTaskCancelled = errors.New("task was cancelled")
	// ErrkAwaitTaskResultTimeout reports that the wait timed out before the task finished.
	ErrkAwaitTaskResultTimeout = errors.New("timeout while waiting task result")
)

// A TaskHandle follows a submitted Task: it can attempt cancellation and wait for the outcome.
type TaskHandle interface {
	// Cancel tries to withdraw the task before it runs. A task already running (or finished)
	// reports an error.
	Cancel() error

	// AwaitResult blocks until the task finishes, the task is cancelled, or timeout elapses
	// (a non-positive timeout waits indefinitely). It returns the task's own result pair, or
	// (nil, ErrTaskCancelled) / (nil, ErrkAwaitTaskResultTimeout).
	AwaitResult(timeout time.Duration) (interface{}, error)
}

// An Executor accepts tasks for execution, now or later, on goroutines of its choosing.
type Executor interface {
	// Submit hands a task to the executor. Submission only schedules the task; it may run at any
	// point afterwards.
	Submit(task Task) (TaskHandle, error)

	// Shutdown stops intake: previously submitted tasks still run, new submissions fail. The
	// returned channel receives once every remaining task has finished. Shutting down twice is a
	// no-op.
	Shutdown() (terminated <-chan bool, err error)
}
