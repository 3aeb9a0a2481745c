// Copyright 2026 The sdjson Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package construct is the Value Constructor: it allocates the map/array
// containers the state machine descends into, coerces scalar lexemes into
// the precise subtype an expected type demands, and freezes values whose
// declaring ET was readonly.
package construct

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is a record/map output container. Field insertion order mirrors
// document order, backed by the same ordered-map type schema.Fields uses
// for declared fields.
type Map struct {
	om     *orderedmap.OrderedMap[string, any]
	frozen bool
}

func NewMap() *Map {
	return &Map{om: orderedmap.New[string, any]()}
}

// Set places v under key. It panics if the map has been frozen by
// FreezeReadOnly; the state machine never calls Set after finalisation, so
// this would only fire on a caller bug.
func (m *Map) Set(key string, v any) {
	if m.frozen {
		panic("construct: write to frozen map")
	}
	m.om.Set(key, v)
}

func (m *Map) Get(key string) (any, bool) { return m.om.Get(key) }

func (m *Map) Len() int { return m.om.Len() }

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.om.Len())
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (m *Map) Frozen() bool { return m.frozen }

// Array is a sequence/tuple output container.
type Array struct {
	items  []any
	frozen bool
}

func NewArray(capacityHint int) *Array {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Array{items: make([]any, 0, capacityHint)}
}

func (a *Array) Append(v any) {
	if a.frozen {
		panic("construct: write to frozen array")
	}
	a.items = append(a.items, v)
}

// Set assigns v at index i, growing the backing slice with nils as needed.
// Used by tuple/array construction where the index is driven by the
// document rather than purely sequential appends.
func (a *Array) Set(i int, v any) {
	if a.frozen {
		panic("construct: write to frozen array")
	}
	for len(a.items) <= i {
		a.items = append(a.items, nil)
	}
	a.items[i] = v
}

func (a *Array) Len() int { return len(a.items) }

func (a *Array) Items() []any { return a.items }

func (a *Array) Frozen() bool { return a.frozen }

// Freeze recursively marks v (and any Map/Array reachable from it)
// read-only. Further Set/Append calls on a frozen container panic.
func Freeze(v any) any {
	switch t := v.(type) {
	case *Map:
		for pair := t.om.Oldest(); pair != nil; pair = pair.Next() {
			Freeze(pair.Value)
		}
		t.frozen = true
		return t
	case *Array:
		for _, item := range t.items {
			Freeze(item)
		}
		t.frozen = true
		return t
	default:
		return v
	}
}
