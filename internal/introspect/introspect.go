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

// Package introspect classifies expected-type (ET) descriptors into the
// parser's dispatch categories and enumerates record fields. It is the
// leaf component: it never mutates parser state, only reads schema.Type
// values.
package introspect

import (
	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// Classify reduces t to one of the parser's dispatch categories,
// transparently dereferencing schema.CategoryReference and unwrapping any
// schema.CategoryIntersection to its effective type, rejecting the
// intersection if that effective type is not ReadOnly. The returned Type
// carries ReadOnly so the caller (internal/scan, via construct.Freeze)
// knows to freeze the finished value.
func Classify(t schema.Type) (schema.Category, schema.Type, error) {
	for {
		switch t.Category {
		case schema.CategoryReference:
			if t.Ref == nil {
				return 0, t, sdjsonerr.NewUnsupportedType("nil reference target")
			}
			t = *t.Ref
		case schema.CategoryIntersection:
			if t.Effective == nil || !t.Effective.ReadOnly {
				return 0, t, sdjsonerr.NewUnsupportedType("intersection effective type is not readonly")
			}
			t = *t.Effective
		default:
			return t.Category, t, nil
		}
	}
}

// FieldsOf returns the declared fields of a record ET, keyed by wire name,
// in declaration order. The caller owns neither key order guarantee beyond
// what schema.Fields (an ordered map) already provides.
func FieldsOf(t schema.Type) *schema.Fields {
	return t.Fields
}

// RestOf returns the ET governing undeclared keys of a record, or nil if
// the record forbids them.
func RestOf(t schema.Type) *schema.Type {
	return t.Rest
}

// ElementOf returns the element ET of an array (open or closed).
func ElementOf(t schema.Type) schema.Type {
	if t.Element == nil {
		return schema.JSONLike()
	}
	return *t.Element
}

// Nth returns the ET of the i'th tuple element. ok is false if i is out of
// range, signalling the caller (the state machine) should fall back to
// projection-trim behavior rather than coerce against a declared type.
func Nth(t schema.Type, i int) (elem schema.Type, ok bool) {
	if i < 0 || i >= len(t.Elements) {
		return schema.Type{}, false
	}
	return t.Elements[i], true
}
