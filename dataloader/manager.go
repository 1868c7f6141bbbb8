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
	"fmt"
	"sync"
)

// Factory creates a DataLoader on first use of its registration key.
type Factory interface {
	Create() (*DataLoader, error)
}

// The FactoryFunc type is an adapter to allow the use of ordinary functions as Factory.
type FactoryFunc func() (*DataLoader, error)

// Create implements Factory by calling f.
func (f FactoryFunc) Create() (*DataLoader, error) {
	return f()
}

// RegisterInfo identifies one loader registration: a unique key plus the factory that builds the
// loader the first time the key is seen.
type RegisterInfo struct {
	Key     string
	Factory Factory
}

// Manager keeps a registry of loaders keyed by name so independent resolvers can share one
// loader (and therefore one batch) per key, and dispatches them together.
type Manager struct {
	loaders sync.Map

	// dispatchMutex serializes DispatchAll calls.
	dispatchMutex sync.Mutex
}

// GetOrCreate returns the loader registered under info.Key, creating it through info.Factory if
// this is the key's first use. Concurrent first uses race benignly: one created loader wins
// registration and the others are discarded.
func (manager *Manager) GetOrCreate(info *RegisterInfo) (*DataLoader, error) {
	loaders := &manager.loaders

	if loader, found := loaders.Load(info.Key); found {
		return loader.(*DataLoader), nil
	}

	if info.Factory == nil {
		return nil, fmt.Errorf(`DataLoader factory for "%s" is not provided`, info.Key)
	}

	loader, err := info.Factory.Create()
	if err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, fmt.Errorf(`DataLoader factory for "%s" returns a nil instance which is not `+
			`valid for registration`, info.Key)
	}

	if registered, raced := loaders.LoadOrStore(info.Key, loader); raced {
		return registered.(*DataLoader), nil
	}
	return loader, nil
}

// DispatchAll dispatches every registered loader's queued work.
func (manager *Manager) DispatchAll(ctx context.Context) {
	manager.dispatchMutex.Lock()
	defer manager.dispatchMutex.Unlock()

	manager.loaders.Range(func(key, value interface{}) bool {
		value.(*DataLoader).Dispatch(ctx)
		return true
	})
}
