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
	"fmt"
	"log"
	"reflect"
	"sync/atomic"
	"unsafe"

	"github.com/nabeelbukhari/graphql-jit/concurrent/future"
)

// taskResultKind tags a task's state word.
type taskResultKind int

const (
	// taskNotCompleted: the task is queued or being loaded.
	taskNotCompleted taskResultKind = iota

	// taskResultErr: loading failed.
	taskResultErr

	// taskResultValue: loading produced a value.
	taskResultValue
)

// String implements fmt.Stringer for error messages about task state.
func (kind taskResultKind) String() string {
	switch kind {
	case taskNotCompleted:
		return "an incompleted"
	case taskResultErr:
		return "an error"
	case taskResultValue:
		return "a value"
	}
	return "unknown"
}

// taskResult is a task's immutable state word. A task moves through states by swapping in a
// fresh taskResult with CAS, never by mutating one in place; that is what lets readers on other
// goroutines use it without locks.
//
// The meaning of Value depends on Kind: while not completed it holds the []future.Waker of every
// future waiting on this task (woken on completion); afterwards it holds the loaded value or the
// error.
type taskResult struct {
	Kind  taskResultKind
	Value interface{}
}

var initialTaskResult = &taskResult{
	Kind:  taskNotCompleted,
	Value: []future.Waker{},
}

// resultFuture is the future a Load call hands out: it reads its task's state word on every
// poll, and while the task is pending it parks the poller's waker in its reserved slot of the
// waker array.
type resultFuture struct {
	task *Task

	// wakerSlot is this future's index into the pending state's waker array, reserved when the
	// future was created.
	wakerSlot int
}

var _ future.Future = (*resultFuture)(nil)

// Poll implements future.Future.
func (f *resultFuture) Poll(waker future.Waker) (future.PollResult, error) {
	task := f.task

	for {
		result := task.loadResult()
		switch result.Kind {
		case taskNotCompleted:
			wakers := result.Value.([]future.Waker)
			wakerSlot := f.wakerSlot

			// DeepEqual rather than ==: wakers are commonly WakerFunc values, and comparing two
			// interfaces holding funcs with == panics.
			if !reflect.DeepEqual(wakers[wakerSlot], waker) {
				// Record the newest waker, then CAS a fresh pending state in so the update is
				// published against the current state word; losing the CAS means the state moved
				// under us and the loop re-reads it.
				wakers[wakerSlot] = waker

				swapped := atomic.CompareAndSwapPointer(
					&task.result,
					unsafe.Pointer(result),
					unsafe.Pointer(&taskResult{
						Kind:  taskNotCompleted,
						Value: wakers,
					}))
				if !swapped {
					break
				}
			}
			return future.PollResultPending, nil

		case taskResultErr:
			return nil, result.Value.(error)

		default:
			return result.Value, nil
		}
	}
}

// Task is one keyed load request: the key a BatchLoader should fetch, and the slot its result
// lands in. A task completes exactly once, through Complete or SetError.
type Task struct {
	key Key

	// parent is the queue the task was enqueued on; nil for tasks that never queue (created by
	// Prime/PrimeError).
	parent *taskQueue

	// result points at the current taskResult state word; updated only by CAS. See taskResult.
	result /* *taskResult */ unsafe.Pointer

	// next links tasks within their TaskList.
	next *Task
}

func newTask(parent *taskQueue, key Key) *Task {
	return &Task{
		key:    key,
		parent: parent,
		result: unsafe.Pointer(initialTaskResult),
	}
}

// newFuture hands out a future over this task's eventual result. For a pending task it reserves
// a fresh waker slot (via CAS, racing against completion and other newFuture calls); for a
// completed one it returns a pre-resolved future.
func (t *Task) newFuture() future.Future {
	for {
		result := t.loadResult()
		switch result.Kind {
		case taskNotCompleted:
			curWakers := result.Value.([]future.Waker)
			newWakers := make([]future.Waker, len(curWakers)+1)
			copy(newWakers, curWakers)

			// The new slot must hold a valid waker before the array is published.
			newWakerSlot := len(curWakers)
			newWakers[newWakerSlot] = future.NopWaker

			swapped := atomic.CompareAndSwapPointer(
				&t.result,
				unsafe.Pointer(result),
				unsafe.Pointer(&taskResult{
					Kind:  taskNotCompleted,
					Value: newWakers,
				}))
			if swapped {
				return &resultFuture{
					task:      t,
					wakerSlot: newWakerSlot,
				}
			}
			// State moved; reload and retry.

		case taskResultErr:
			return future.Err(result.Value.(error))

		case taskResultValue:
			return future.Ready(result.Value)

		default:
			panic("unknown task result kind")
		}
	}
}

func (t *Task) loadResult() *taskResult {
	return (*taskResult)(atomic.LoadPointer(&t.result))
}

// Key returns the key this task loads.
func (t *Task) Key() Key {
	return t.key
}

// complete moves the task from pending to newResult and wakes every future that was waiting.
// Completing twice is an error (and the second result is discarded).
func (t *Task) complete(newResult *taskResult) error {
	for {
		oldResult := t.loadResult()
		if oldResult.Kind != taskNotCompleted {
			return fmt.Errorf("task was already completed with %s (%+v) but want to accept %s (%+v)",
				oldResult.Kind, oldResult.Value, newResult.Kind, newResult.Value)
		}

		swapped := atomic.CompareAndSwapPointer(
			&t.result,
			unsafe.Pointer(oldResult),
			unsafe.Pointer(newResult),
		)
		if swapped {
			for _, waker := range oldResult.Value.([]future.Waker) {
				if err := waker.Wake(); err != nil {
					log.Printf("[WARN] Waker %T failed to wake executor that waits data keyed %+v to be "+
						"loaded by DataLoader\n", waker, t.Key())
				}
			}
			return nil
		}
	}
}

// Complete finishes the task with a loaded value.
func (t *Task) Complete(value interface{}) error {
	return t.complete(&taskResult{
		Kind:  taskResultValue,
		Value: value,
	})
}

// SetError finishes the task with an error.
func (t *Task) SetError(err error) error {
	return t.complete(&taskResult{
		Kind:  taskResultErr,
		Value: err,
	})
}

// Completed reports whether the task has finished, with either a value or an error.
func (t *Task) Completed() bool {
	return t.loadResult().Kind != taskNotCompleted
}

// TaskList is a linked list of tasks, iterated from Begin (inclusive) to End (exclusive).
type TaskList struct {
	first *Task
	last  *Task
}

// Begin returns an iterator at the first task in the list.
func (tasks *TaskList) Begin() TaskIterator {
	return TaskIterator{tasks.first}
}

// End returns the past-the-end iterator.
func (tasks *TaskList) End() TaskIterator {
	if tasks.last != nil {
		return TaskIterator{tasks.last.next}
	}
	return TaskIterator{nil}
}

// Empty reports whether the list holds no tasks.
func (tasks *TaskList) Empty() bool {
	return tasks.first == nil
}

// push appends a task; unexported so a list is immutable outside the package.
func (tasks *TaskList) push(task *Task) {
	last := tasks.last
	if last == nil {
		tasks.first = task
	} else {
		last.next = task
	}
	tasks.last = task
}

// TaskIterator walks a TaskList:
//
//	for iter, end := tasks.Begin(), tasks.End(); iter != end; iter = iter.Next() {
//		process(iter.Task)
//	}
type TaskIterator struct {
	*Task
}

// Next returns the iterator one task further along the list. Advancing an iterator that doesn't
// point into the list is undefined.
func (iter TaskIterator) Next() TaskIterator {
	return TaskIterator{iter.Task.next}
}
