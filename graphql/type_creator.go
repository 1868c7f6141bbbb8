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
	"sync"
)

// createdTypes memoizes the Type built for each TypeDefinition instance, process-wide.
var createdTypes sync.Map

// newTypeResult is one createdTypes entry: the type under construction, the creator finishing
// it, and a completion channel other goroutines wait on when they hit the entry mid-build.
type newTypeResult struct {
	t       Type
	creator typeCreator
	err     error
	done    chan bool
}

func (result *newTypeResult) waitForCompletion() (Type, error) {
	<-result.done
	return result.t, result.err
}

func (result *newTypeResult) complete() {
	// Drop the creator so it can be collected, then release the waiters.
	result.creator = nil
	close(result.done)
}

func (result *newTypeResult) completeWithError(err error) {
	result.t = nil
	result.creator = nil
	result.err = err
	close(result.done)
}

// typeDefinitionResolver turns TypeDefinitions into Types during finalization.
type typeDefinitionResolver func(typeDef TypeDefinition) (Type, error)

// Resolve calls the resolver; it exists so the function type reads like an object at call sites.
func (resolver typeDefinitionResolver) Resolve(typeDef TypeDefinition) (Type, error) {
	return resolver(typeDef)
}

// typeCreator is what each concrete type kind supplies to newTypeImpl. Construction is split in
// two so cyclic references work: LoadDataAndNew allocates a shell instance without touching any
// referenced types, the shell is registered, and only then does Finalize resolve references —
// which may (transitively, or directly) land back on the shell.
type typeCreator interface {
	// TypeDefinition returns the definition being built.
	TypeDefinition() TypeDefinition

	// LoadDataAndNew reads the definition's data and allocates a bare, unfinished Type. It must
	// not resolve referenced types.
	LoadDataAndNew() (Type, error)

	// Finalize completes the type allocated by LoadDataAndNew, resolving referenced types
	// through the given resolver. By this point the type is registered, so resolving a
	// reference back to the type under construction terminates.
	Finalize(t Type, typeDefResolver typeDefinitionResolver) error
}

// nilTypeCreator resolves a nil TypeDefinition to a nil Type without error; whether a nil type
// is acceptable is the caller's (or the validator's) call, not construction's.
type nilTypeCreator struct{}

var _ typeCreator = nilTypeCreator{}

// TypeDefinition implements typeCreator.
func (nilTypeCreator) TypeDefinition() TypeDefinition {
	return nil
}

// LoadDataAndNew implements typeCreator.
func (nilTypeCreator) LoadDataAndNew() (Type, error) {
	return nil, nil
}

// Finalize implements typeCreator.
func (nilTypeCreator) Finalize(t Type, typeDefResolver typeDefinitionResolver) error {
	return nil
}

func newCreatorFor(typeDef TypeDefinition) typeCreator {
	switch typeDef := typeDef.(type) {
	case ScalarTypeDefinition:
		return &scalarTypeCreator{typeDef}
	case EnumTypeDefinition:
		return &enumTypeCreator{typeDef}
	case ObjectTypeDefinition:
		return &objectTypeCreator{typeDef}
	case InterfaceTypeDefinition:
		return &interfaceTypeCreator{typeDef}
	case UnionTypeDefinition:
		return &unionTypeCreator{typeDef}
	case ListTypeDefinition:
		return &listTypeCreator{typeDef}
	case NonNullTypeDefinition:
		return &nonNullTypeCreator{typeDef}
	case nil:
		return &nilTypeCreator{}
	}
	panic("unknown type of TypeDefinition")
}

// newTypeImpl builds (or returns the already-built) Type for a creator's definition. The public
// entry points (NewType, NewScalar, NewObject, ...) all funnel through here.
func newTypeImpl(creator typeCreator) (Type, error) {
	if typeCreatedResult, ok := createdTypes.Load(creator.TypeDefinition()); ok {
		return typeCreatedResult.(*newTypeResult).waitForCompletion()
	}

	return newTypeImplInternal(creator, map[TypeDefinition]Type{})
}

// newTypeImplInternal is the recursive worker behind newTypeImpl. finalizingTypeDefs carries the
// definitions being finalized further up this call stack, mapped to their shell instances; a
// reference to one of them resolves to the shell instead of recursing into a cycle.
func newTypeImplInternal(creator typeCreator, finalizingTypeDefs map[TypeDefinition]Type) (Type, error) {
	typeDef := creator.TypeDefinition()

	// Allocate the shell first; this must not resolve any referenced definitions.
	typeInstance, err := creator.LoadDataAndNew()
	if err != nil {
		return nil, err
	}

	result := &newTypeResult{
		t:       typeInstance,
		creator: creator,
		done:    make(chan bool),
	}

	// Register the shell. Losing the race means another goroutine is building the same
	// definition; wait for theirs.
	typeCreatedResult, loaded := createdTypes.LoadOrStore(typeDef, result)
	if loaded {
		return typeCreatedResult.(*newTypeResult).waitForCompletion()
	}

	typeDefResolver := typeDefinitionResolver(func(typeDef TypeDefinition) (Type, error) {
		// The pseudo-definitions wrapping existing Types short-circuit.
		switch typeDef := typeDef.(type) {
		case typeWrapperTypeDefinition:
			return typeDef.Type(), nil

		case interfaceTypeWrapperTypeDefinition:
			return typeDef.Type(), nil
		}

		// A definition already finalizing on this stack resolves to its shell; anything else
		// would loop.
		if t, exists := finalizingTypeDefs[typeDef]; exists {
			return t, nil
		}

		if typeCreatedResult, ok := createdTypes.Load(typeDef); ok {
			return typeCreatedResult.(*newTypeResult).waitForCompletion()
		}

		return newTypeImplInternal(newCreatorFor(typeDef), finalizingTypeDefs)
	})

	finalizingTypeDefs[typeDef] = result.t
	defer delete(finalizingTypeDefs, typeDef)

	if err = creator.Finalize(result.t, typeDefResolver); err != nil {
		result.completeWithError(err)
		return nil, err
	}

	result.complete()
	return result.t, nil
}
