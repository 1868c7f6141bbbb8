/**
 * Copyright (c) 2018, The Artemis Authors.
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

package graphql

import (
	"encoding/json"
	"sync"

	"github.com/nabeelbukhari/graphql-jit/concurrent/future"
	"github.com/nabeelbukhari/graphql-jit/dataloader"
	"github.com/nabeelbukhari/graphql-jit/graphql/ast"
)

// ArgumentValues holds the argument values bound for one field invocation. Immutable once
// created.
type ArgumentValues struct {
	values map[string]interface{}
}

var noArgumentValues = ArgumentValues{
	// A non-nil empty map spares Lookup a nil check.
	values: map[string]interface{}{},
}

// NoArgumentValues is the empty argument value set.
func NoArgumentValues() ArgumentValues {
	return noArgumentValues
}

// NewArgumentValues creates an ArgumentValues over the given values.
func NewArgumentValues(values map[string]interface{}) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	return ArgumentValues{values}
}

// Lookup returns the value bound for name; ok distinguishes an absent argument from one bound to
// nil.
func (args ArgumentValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns the value bound for name, or nil when absent.
func (args ArgumentValues) Get(name string) interface{} {
	return args.values[name]
}

// MarshalJSON implements json.Marshaler. Tests use it to state expected bindings.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return json.Marshal(args.values)
}

// VariableValues holds the variable values of one execution. Immutable once created.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Language.Variables
type VariableValues struct {
	values map[string]interface{}
}

var noVariableValues = VariableValues{
	values: map[string]interface{}{},
}

// NoVariableValues is the empty variable value set.
func NoVariableValues() VariableValues {
	return noVariableValues
}

// NewVariableValues creates a VariableValues over the given values. Key absence is meaningful
// (an absent variable is not the same as one set to nil) and is preserved.
func NewVariableValues(values map[string]interface{}) VariableValues {
	return VariableValues{values}
}

// Lookup returns the value of the named variable; ok distinguishes an absent variable from one
// set to nil.
func (vars VariableValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = vars.values[name]
	return
}

// Get returns the value of the named variable, or nil when absent.
func (vars VariableValues) Get(name string) interface{} {
	return vars.values[name]
}

// MarshalJSON implements json.Marshaler. Tests use it to state expected values.
func (vars VariableValues) MarshalJSON() ([]byte, error) {
	return json.Marshal(vars.values)
}

// FieldSelectionInfo describes one field selection on the path from the resolving field up to
// the operation root, available to resolvers through ResolveInfo.ParentFieldSelection.
//
// Reference: https://facebook.github.io/graphql/June2018/#Field
type FieldSelectionInfo interface {
	// Parent links to the enclosing field selection, or nil at the root.
	Parent() FieldSelectionInfo

	// FieldDefinitions returns the AST selections merged into this field; see
	// ResolveInfo.FieldDefinitions for why there can be several.
	FieldDefinitions() []*ast.Field

	// Field is the schema field selected here.
	Field() Field

	// Args holds the argument values bound for this selection.
	Args() ArgumentValues
}

// DataLoaderManager is how execution and resolvers cooperate on batched loading: resolvers
// obtain loaders from it (and register loads), and the executor asks it which loaders have
// pending work when execution is about to go idle.
type DataLoaderManager interface {
	// HasPendingDataLoaders reports whether any loader has queued, undispatched loads.
	HasPendingDataLoaders() bool

	// GetAndResetPendingDataLoaders returns the loaders with pending loads and clears the
	// pending set.
	GetAndResetPendingDataLoaders() map[*dataloader.DataLoader]bool
}

// DataLoaderManagerBase supplies the pending-loader bookkeeping of DataLoaderManager; embed it
// and add whatever loader registry the application needs.
type DataLoaderManagerBase struct {
	mutex sync.Mutex

	// pendingLoaders tracks loaders holding queued loads.
	pendingLoaders map[*dataloader.DataLoader]bool
}

// LoadWith requests the value for key from loader and marks the loader pending so the executor
// will dispatch it.
func (manager *DataLoaderManagerBase) LoadWith(loader *dataloader.DataLoader, key dataloader.Key) (future.Future, error) {
	// The lock must span loader.Load and the pending-set update: a dispatch sweeping the pending
	// set must not slip between them.
	mutex := &manager.mutex
	mutex.Lock()
	defer mutex.Unlock()

	f, err := loader.Load(key)
	if err != nil {
		return nil, err
	}

	if manager.pendingLoaders == nil {
		manager.pendingLoaders = map[*dataloader.DataLoader]bool{}
	}
	manager.pendingLoaders[loader] = true

	return f, nil
}

// LoadManyWith requests the values for several keys from loader and marks the loader pending.
func (manager *DataLoaderManagerBase) LoadManyWith(loader *dataloader.DataLoader, keys dataloader.Keys) (future.Future, error) {
	mutex := &manager.mutex
	mutex.Lock()
	defer mutex.Unlock()

	f, err := loader.LoadMany(keys)
	if err != nil {
		return nil, err
	}

	if manager.pendingLoaders == nil {
		manager.pendingLoaders = map[*dataloader.DataLoader]bool{}
	}
	manager.pendingLoaders[loader] = true

	return f, nil
}

// HasPendingDataLoaders implements DataLoaderManager.
func (manager *DataLoaderManagerBase) HasPendingDataLoaders() bool {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	return len(manager.pendingLoaders) != 0
}

// GetAndResetPendingDataLoaders implements DataLoaderManager.
func (manager *DataLoaderManagerBase) GetAndResetPendingDataLoaders() map[*dataloader.DataLoader]bool {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	result := manager.pendingLoaders
	manager.pendingLoaders = nil
	return result
}

// ResolveInfo is the execution-state descriptor passed to every resolver call.
type ResolveInfo interface {
	// Schema of the type system being executed against.
	Schema() Schema

	// Document containing the operation's definitions.
	Document() ast.Document

	// Operation being executed.
	Operation() *ast.OperationDefinition

	// DataLoaderManager carried by this execution, or nil when the caller supplied none.
	DataLoaderManager() DataLoaderManager

	// RootValue is the value the operation's top-level resolvers resolve against.
	RootValue() interface{}

	// AppContext is the caller's application-specific data for this execution — an
	// authenticated user, request-scoped caches, and the like.
	AppContext() interface{}

	// VariableValues holds the operation's coerced variable values.
	VariableValues() VariableValues

	// ParentFieldSelection links to the selection enclosing the resolving field.
	ParentFieldSelection() FieldSelectionInfo

	// Object is the type whose field is being resolved.
	Object() *Object

	// FieldDefinitions returns the AST field selections merged into the resolving field. There
	// can be more than one: selecting the same response key twice is valid and the selections
	// coalesce, e.g.
	//
	//	{
	//	  foo { bar }
	//	  foo { bar baz }
	//	}
	//
	// resolves one "foo" whose FieldDefinitions carries both selections.
	FieldDefinitions() []*ast.Field

	// Field is the schema field being resolved.
	Field() Field

	// Path locates the resolving field in the response; it is the same path an error at this
	// field would carry. Computed on request — cache it if used repeatedly.
	Path() ResponsePath

	// Args holds the argument values bound for this field.
	Args() ArgumentValues
}
