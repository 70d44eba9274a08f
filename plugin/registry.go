// Copyright 2024-2026 The cpp-textmate-grammar Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a generic, thread-safe registry for storing and retrieving
// items by name.
type Registry[T any] interface {
	Register(name string, item T) error
	Get(name string) (T, bool)
	List() []string
	All() []T
	Remove(name string)
	Clear()
}

type registry[T any] struct {
	mu    sync.RWMutex
	names []string // registration order
	items map[string]T
}

// NewRegistry creates an empty Registry.
func NewRegistry[T any]() Registry[T] {
	return &registry[T]{items: make(map[string]T)}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return fmt.Errorf("registry name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[name]; exists {
		return fmt.Errorf("item %q is already registered", name)
	}
	r.items[name] = item
	r.names = append(r.names, name)
	return nil
}

func (r *registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	return item, ok
}

// List returns all registered names in sorted order.
func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered item in registration order.
func (r *registry[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]T, 0, len(r.names))
	for _, name := range r.names {
		items = append(items, r.items[name])
	}
	return items
}

func (r *registry[T]) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

func (r *registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]T)
	r.names = nil
}

// MustRegister registers an item and panics if registration fails. Useful in
// init functions, where a duplicate name is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
