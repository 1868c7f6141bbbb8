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
	"fmt"
	"reflect"
	"sync"

	"github.com/nabeelbukhari/graphql-jit/graphql"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// runFrame is the per-invocation state of one CompiledQuery run. Everything mutable lives here;
// the plan itself is never written to. All execution (shape building, continuations, error
// recording) happens on a single run goroutine; the only cross-goroutine entry point is enqueue,
// which wakers and background completions use to hand work back to that goroutine.
type runFrame struct {
	query      *CompiledQuery
	ctx        context.Context
	rootValue  interface{}
	appContext interface{}
	variables  graphql.VariableValues
	loaders    graphql.DataLoaderManager

	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	closed bool

	data       ResultNode
	errors     graphql.Errors
	nullErrors []propagatingError

	// reached[i] is set when the synchronous pass allocates the slot for resolver site i; the
	// deferred call for a site only runs if its flag is set.
	reached []bool

	finished bool
	out      chan *Result
}

// propagatingError is a non-null violation waiting for the trimmer: the error to report plus the
// result position where it occurred.
type propagatingError struct {
	err  *graphql.Error
	node *ResultNode
}

// enqueue hands a task to the run goroutine. Safe to call from any goroutine; tasks arriving
// after the run has finished are dropped.
func (f *runFrame) enqueue(task func()) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// run drives one execution to completion on the current goroutine: synchronous shape pass, then
// the task loop until the root driver goes idle.
func (f *runFrame) run() {
	query := f.query

	var root driver
	if query.operation.OperationType == ast.Mutation {
		root = &serialDriver{frame: f, idle: f.finish}
	} else {
		root = &parallelDriver{frame: f, outstanding: 1, idle: f.finish}
	}

	e := &ectx{
		frame:   f,
		driver:  root,
		indices: make([]int, query.maxListDepth),
	}
	e.completeObject(query.root, &f.data, f.rootValue)
	root.syncDone()

	f.loop()
}

// loop runs queued tasks until the run finishes. When the queue drains while work is still
// outstanding, any pending data loaders are dispatched first (this is the point the whole run
// would otherwise go idle, so every load request that can batch has already been made); only
// then does the loop park.
func (f *runFrame) loop() {
	for {
		f.mu.Lock()
		if f.finished {
			f.mu.Unlock()
			return
		}
		if len(f.tasks) > 0 {
			task := f.tasks[0]
			f.tasks = f.tasks[1:]
			f.mu.Unlock()
			task()
			continue
		}
		f.mu.Unlock()

		if f.loaders != nil && f.loaders.HasPendingDataLoaders() {
			for loader := range f.loaders.GetAndResetPendingDataLoaders() {
				loader.Dispatch(f.ctx)
			}
			continue
		}

		select {
		case <-f.wake:
		case <-f.ctx.Done():
			f.cancelled()
			return
		}
	}
}

// cancelled folds the context error into the result and finishes with whatever has been built so
// far. In-flight resolver calls are not interrupted; their completions are dropped.
func (f *runFrame) cancelled() {
	f.errors.Emplace("GraphQL execution was cancelled", f.ctx.Err(), graphql.ErrKindExecution)
	f.finish()
}

// finish fires exactly once per run: it trims non-null violations and delivers the result. A
// second call is a bug in the executor itself, not in user code, and panics.
func (f *runFrame) finish() {
	f.mu.Lock()
	if f.finished {
		f.mu.Unlock()
		panic("plan: execution completion delivered twice")
	}
	f.finished = true
	f.closed = true
	f.mu.Unlock()

	f.trim()
	f.out <- &Result{Data: &f.data, Errors: f.errors}
}

//===----------------------------------------------------------------------------------------===//
// Value completion
//===----------------------------------------------------------------------------------------===//

// fieldRef names the schema field whose value is being completed, for error messages, error
// locations and ResolveInfo. It stays constant while completion descends through list and
// non-null wrappers and changes only at object field boundaries.
type fieldRef struct {
	parentType *graphql.Object
	field      graphql.Field
	nodes      []*ast.Field
}

// ectx is the execution context of one synchronous completion pass: which frame and driver
// deferred work goes to, and the list indices currently in scope. Each deferred task gets its own
// copy of indices, so a continuation's scratch never aliases its scheduler's.
type ectx struct {
	frame   *runFrame
	driver  driver
	indices []int

	// parentSelection is the resolver selection enclosing this pass, exposed to resolvers through
	// ResolveInfo.ParentFieldSelection.
	parentSelection graphql.FieldSelectionInfo
}

// record writes an error at the given slot: the slot becomes null, and the error lands in the
// contained list or, for a Non-Null position, in the propagating list for the trimmer.
func (e *ectx) record(err *graphql.Error, slot *ResultNode) {
	slot.setNil()
	if slot.IsNonNull() {
		e.frame.nullErrors = append(e.frame.nullErrors, propagatingError{err: err, node: slot})
	} else {
		e.frame.errors.Append(err)
	}
}

// completeValue shapes one position of the response from a raw value, dispatching on the
// compiled node kind.
func (e *ectx) completeValue(n *node, ref fieldRef, slot *ResultNode, value interface{}) {
	// Resolvers can return an error value to signify failure; so can list elements.
	if err, ok := value.(error); ok && err != nil {
		e.record(fieldError(err, ref.nodes, n.path.resolve(e.indices)), slot)
		return
	}

	if isNullish(value) {
		if slot.IsNonNull() {
			err := graphql.NewError(
				fmt.Sprintf("Cannot return null for non-nullable field %s.%s.",
					ref.parentType.Name(), ref.field.Name()),
				locationsOf(ref.nodes), n.path.resolve(e.indices), graphql.ErrKindExecution)
			e.record(err.(*graphql.Error), slot)
		} else {
			slot.setNil()
		}
		return
	}

	switch n.kind {
	case kindLeaf:
		e.completeLeaf(n, ref, slot, value)
	case kindObject:
		e.completeObject(n.object, slot, value)
	case kindList:
		e.completeList(n, ref, slot, value)
	case kindAbstract:
		e.completeAbstract(n, ref, slot, value)
	}
}

func (e *ectx) completeLeaf(n *node, ref fieldRef, slot *ResultNode, value interface{}) {
	coerced, err := n.leaf.serialize(value)
	if err != nil {
		if ge, ok := err.(*graphql.Error); !ok || ge.Kind != graphql.ErrKindCoercion {
			err = graphql.NewDefaultResultCoercionError(n.leaf.leafType.Name(), value, err)
		}
		e.record(fieldError(err, ref.nodes, n.path.resolve(e.indices)), slot)
		return
	}
	slot.Kind = ResultKindLeaf
	slot.Value = coerced
}

// completeObject reserves one slot per included field in selection order, resolving inline fields
// on the spot and handing resolver sites to the driver. Slots for deferred fields stay null until
// their continuation fills them in.
func (e *ectx) completeObject(object *objectNode, slot *ResultNode, source interface{}) {
	frame := e.frame

	included := object.fields
	if object.hasConditions {
		// Some field carries a runtime @skip/@include; rebuild the included set for this run.
		included = make([]objectField, 0, len(object.fields))
		for _, entry := range object.fields {
			if entry.condition.evaluate(frame.variables) {
				included = append(included, entry)
			}
		}
	}

	result := &ObjectResult{
		Keys:   make([]string, len(included)),
		Fields: make([]ResultNode, len(included)),
	}
	slot.Kind = ResultKindObject
	slot.Value = result

	for i := range included {
		entry := &included[i]
		result.Keys[i] = entry.responseKey

		child := &result.Fields[i]
		child.Parent = slot
		child.nonNull = entry.nonNull

		if site := entry.resolver; site != nil {
			frame.reached[site.id] = true
			e.driver.schedule(&deferredTask{
				site:            site,
				source:          source,
				slot:            child,
				indices:         copyIndices(e.indices),
				parentSelection: e.parentSelection,
			})
			continue
		}

		inline := entry.inline
		value := readSourceProperty(source, inline.field.Name())
		e.completeValue(inline.sub, fieldRef{
			parentType: inline.parentType,
			field:      inline.field,
			nodes:      inline.nodes,
		}, child, value)
	}
}

// completeList iterates the value once, materializing one element slot per item in source order.
// The element subplan runs with this list's index slot set to the current position, so error
// paths and ResolveInfo paths below pick up the right index.
func (e *ectx) completeList(n *node, ref fieldRef, slot *ResultNode, value interface{}) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		err := graphql.NewError(
			fmt.Sprintf("Expected Iterable, but did not find one for field %s.%s.",
				ref.parentType.Name(), ref.field.Name()),
			locationsOf(ref.nodes), n.path.resolve(e.indices), graphql.ErrKindExecution)
		e.record(err.(*graphql.Error), slot)
		return
	}

	list := n.list
	elements := make([]ResultNode, v.Len())
	slot.Kind = ResultKindList
	slot.Value = elements

	for i := range elements {
		element := &elements[i]
		element.Parent = slot
		element.nonNull = list.elementNonNull

		e.indices[list.depth] = i
		e.completeValue(list.element, ref, element, v.Index(i).Interface())
	}
}

//===----------------------------------------------------------------------------------------===//
// Helpers
//===----------------------------------------------------------------------------------------===//

// fieldError shapes an error reported at a field position: a *graphql.Error gains the field's
// locations and path if it doesn't already carry them; anything else is wrapped.
func fieldError(err error, nodes []*ast.Field, path graphql.ResponsePath) *graphql.Error {
	locations := locationsOf(nodes)
	if ge, ok := err.(*graphql.Error); ok {
		if len(ge.Locations) == 0 {
			ge.Locations = locations
		}
		if ge.Path.Empty() {
			ge.Path = path
		}
		return ge
	}
	return graphql.NewError(err.Error(), locations, path, err, graphql.ErrKindExecution).(*graphql.Error)
}

func locationsOf(nodes []*ast.Field) []graphql.ErrorLocation {
	if len(nodes) == 0 {
		return nil
	}
	locations := make([]graphql.ErrorLocation, len(nodes))
	for i, n := range nodes {
		locations[i] = graphql.ErrorLocationOfASTNode(n)
	}
	return locations
}

// isNullish reports whether a resolved value should be treated as null: untyped nil, or a typed
// nil behind a pointer, interface, map, slice, func or channel.
func isNullish(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func copyIndices(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	snapshot := make([]int, len(indices))
	copy(snapshot, indices)
	return snapshot
}
