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

package sdjson

import "github.com/cuedata-labs/sdjson/internal/construct"

// Map is a decoded record or map value. Keys are exposed in the order the
// Value Constructor inserted them: fields in document order (under their
// declared names), followed by any missing declared fields that were set
// to nil at the closing brace, in declaration order.
type Map struct {
	inner *construct.Map
}

func (m Map) Get(key string) (any, bool) {
	v, ok := m.inner.Get(key)
	if !ok {
		return nil, false
	}
	return wrap(v), true
}

func (m Map) Len() int       { return m.inner.Len() }
func (m Map) Keys() []string { return m.inner.Keys() }
func (m Map) ReadOnly() bool { return m.inner.Frozen() }

// Array is a decoded array or tuple value.
type Array struct {
	inner *construct.Array
}

func (a Array) Len() int       { return a.inner.Len() }
func (a Array) Items() []any   { return wrapAll(a.inner.Items()) }
func (a Array) ReadOnly() bool { return a.inner.Frozen() }

// wrap converts the internal construct representation a Parse call
// produces into the public Map/Array view. Only v itself is wrapped;
// children are wrapped when they are read through Map.Get or Array.Items.
// Scalars (nil, bool, string, int64, uint64, float64, *apd.Decimal) pass
// through unchanged.
func wrap(v any) any {
	switch t := v.(type) {
	case *construct.Map:
		return Map{inner: t}
	case *construct.Array:
		return Array{inner: t}
	default:
		return v
	}
}

func wrapAll(items []any) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = wrap(it)
	}
	return out
}
