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

package plan

import (
	"context"

	"github.com/nabeelbukhari/graphql-jit/concurrent/future"
	"github.com/nabeelbukhari/graphql-jit/graphql"
)

// deferredTask is one resolver call waiting to run: the compiled site, the parent value to
// resolve against, the slot its value splices into, and a snapshot of the list indices in scope
// when it was scheduled (the scheduler keeps mutating its own index slots after this).
type deferredTask struct {
	site            *resolverSite
	source          interface{}
	slot            *ResultNode
	indices         []int
	parentSelection graphql.FieldSelectionInfo
}

// driver decides when scheduled resolver calls run. The parallel driver runs them as they come;
// the serial driver queues an operation's top-level calls and linearizes them. Both count
// outstanding work and fire their idle callback exactly once when it drains.
type driver interface {
	schedule(task *deferredTask)
	// syncDone marks the end of the synchronous shape pass that scheduled onto this driver.
	syncDone()
}

//===----------------------------------------------------------------------------------------===//
// Parallel driver
//===----------------------------------------------------------------------------------------===//

// parallelDriver runs every scheduled resolver immediately and counts outstanding work; the
// synchronous phase itself is the initial unit, so idle can only fire after syncDone. Resolvers
// returning futures keep their unit outstanding until the future resolves.
type parallelDriver struct {
	frame       *runFrame
	outstanding int
	idle        func()
	idled       bool
}

func newParallelDriver(frame *runFrame, idle func()) *parallelDriver {
	return &parallelDriver{frame: frame, outstanding: 1, idle: idle}
}

// schedule implements driver.
func (d *parallelDriver) schedule(task *deferredTask) {
	d.outstanding++
	d.invoke(task)
}

// syncDone implements driver.
func (d *parallelDriver) syncDone() {
	d.workDone()
}

func (d *parallelDriver) workDone() {
	d.outstanding--
	if d.outstanding > 0 {
		return
	}
	if d.idled {
		panic("plan: executor went idle twice")
	}
	d.idled = true
	d.idle()
}

// invoke calls the task's resolver and routes its outcome through the value-or-future adapter.
func (d *parallelDriver) invoke(task *deferredTask) {
	frame := d.frame
	site := task.site

	if !frame.reached[site.id] {
		d.workDone()
		return
	}

	ref := fieldRef{parentType: site.parentType, field: site.field, nodes: site.nodes}

	if ctxErr := frame.ctx.Err(); ctxErr != nil {
		// Stop launching new resolver calls once the ambient context is cancelled.
		err := graphql.NewError("GraphQL execution was cancelled", ctxErr,
			locationsOf(site.nodes), site.path.resolve(task.indices), graphql.ErrKindExecution)
		d.recordAt(task, err.(*graphql.Error))
		d.workDone()
		return
	}

	info := &resolveInfo{
		frame:   frame,
		ref:     ref,
		path:    site.path,
		indices: task.indices,
		parent:  task.parentSelection,
		args:    site.args.bind(frame.variables),
	}

	value, err, panicked := safeResolve(frame.ctx, site.resolve, task.source, info, frame.query.config.panicHandler)
	if panicked {
		frame.query.config.logger.WithFields(graphql.LogFields{
			"field": site.field.Name(),
			"path":  site.path.resolve(task.indices).String(),
		}).Error(err)
	}
	d.deliver(task, info, value, err)
}

// deliver is the value-or-future adapter: a plain value continues synchronously, a future is
// polled until it resolves, and a list with future elements is joined into a fully materialized
// list whose failed elements become in-band error values.
func (d *parallelDriver) deliver(task *deferredTask, info *resolveInfo, value interface{}, err error) {
	if err != nil {
		d.recordAt(task, fieldError(err, task.site.nodes, task.site.path.resolve(task.indices)))
		d.workDone()
		return
	}

	if f, ok := value.(future.Future); ok {
		d.await(task, info, f)
		return
	}
	if list, ok := value.([]interface{}); ok && anyFuture(list) {
		d.await(task, info, joinListElements(list))
		return
	}

	d.complete(task, info, value)
	d.workDone()
}

// await polls the future once; if it is still pending the registered waker re-enqueues this poll
// on the run goroutine when the future makes progress, and the task's unit of work stays
// outstanding until then.
func (d *parallelDriver) await(task *deferredTask, info *resolveInfo, f future.Future) {
	result, err := f.Poll(future.WakerFunc(func() error {
		d.frame.enqueue(func() { d.await(task, info, f) })
		return nil
	}))
	if err != nil {
		d.recordAt(task, fieldError(err, task.site.nodes, task.site.path.resolve(task.indices)))
		d.workDone()
		return
	}
	if result == future.PollResultPending {
		return
	}
	d.complete(task, info, result)
	d.workDone()
}

// complete continues compiling the resolver's subplan against the resolved value, splicing into
// the reserved slot. Resolver sites below schedule onto this same driver.
func (d *parallelDriver) complete(task *deferredTask, info *resolveInfo, value interface{}) {
	site := task.site
	e := &ectx{
		frame:           d.frame,
		driver:          d,
		indices:         copyIndices(task.indices),
		parentSelection: info,
	}
	e.completeValue(site.sub, fieldRef{
		parentType: site.parentType,
		field:      site.field,
		nodes:      site.nodes,
	}, task.slot, value)
}

func (d *parallelDriver) recordAt(task *deferredTask, err *graphql.Error) {
	e := &ectx{frame: d.frame, driver: d, indices: task.indices}
	e.record(err, task.slot)
}

//===----------------------------------------------------------------------------------------===//
// Serial driver
//===----------------------------------------------------------------------------------------===//

// serialDriver linearizes an operation's top-level resolver calls: during the synchronous phase
// everything scheduled lands in a FIFO queue; once the phase ends, each queued call runs through
// a fresh parallel driver whose idle callback advances the queue, so a top-level field's entire
// subtree drains before the next top-level resolver starts.
type serialDriver struct {
	frame *runFrame
	queue []*deferredTask
	idle  func()
	idled bool
}

// schedule implements driver.
func (d *serialDriver) schedule(task *deferredTask) {
	d.queue = append(d.queue, task)
}

// syncDone implements driver.
func (d *serialDriver) syncDone() {
	d.step()
}

func (d *serialDriver) step() {
	if len(d.queue) == 0 {
		if d.idled {
			panic("plan: executor went idle twice")
		}
		d.idled = true
		d.idle()
		return
	}

	task := d.queue[0]
	d.queue = d.queue[1:]

	inner := newParallelDriver(d.frame, d.step)
	inner.invoke(task)
}

//===----------------------------------------------------------------------------------------===//
// Future plumbing
//===----------------------------------------------------------------------------------------===//

func anyFuture(list []interface{}) bool {
	for _, v := range list {
		if _, ok := v.(future.Future); ok {
			return true
		}
	}
	return false
}

// joinListElements awaits every future element of the list, materializing each rejection as an
// in-band error element so the list itself never fails; value completion then turns those error
// elements into per-element field errors.
func joinListElements(list []interface{}) future.Future {
	wrapped := make([]future.Future, len(list))
	for i, v := range list {
		if f, ok := v.(future.Future); ok {
			wrapped[i] = caughtFuture{inner: f}
		} else {
			wrapped[i] = future.Ready(v)
		}
	}
	return future.Join(wrapped...)
}

// caughtFuture converts its inner future's error outcome into a successful resolution carrying
// the error as a value.
type caughtFuture struct {
	inner future.Future
}

// Poll implements future.Future.
func (f caughtFuture) Poll(waker future.Waker) (future.PollResult, error) {
	result, err := f.inner.Poll(waker)
	if err != nil {
		return err, nil
	}
	return result, nil
}

//===----------------------------------------------------------------------------------------===//
// Resolver call boundaries
//===----------------------------------------------------------------------------------------===//

// safeResolve invokes a field resolver with a recover boundary: a panicking resolver surfaces as
// an error at its field instead of tearing down the run.
func safeResolve(
	ctx context.Context,
	resolver graphql.FieldResolver,
	source interface{},
	info graphql.ResolveInfo,
	panicHandler graphql.PanicHandler) (value interface{}, err error, panicked bool) {

	defer func() {
		if recovered := recover(); recovered != nil {
			value = nil
			err = panicHandler(recovered)
			panicked = true
		}
	}()
	value, err = resolver.Resolve(ctx, source, info)
	return
}

// safeResolveType invokes an abstract type's resolver with the same recover boundary.
func safeResolveType(
	ctx context.Context,
	resolver graphql.TypeResolver,
	value interface{},
	info graphql.ResolveInfo,
	panicHandler graphql.PanicHandler) (t *graphql.Object, err error) {

	defer func() {
		if recovered := recover(); recovered != nil {
			t = nil
			err = panicHandler(recovered)
		}
	}()
	return resolver.Resolve(ctx, value, info)
}
