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

package construct

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cuedata-labs/sdjson/schema"
)

// MapFrame is one entry of the parser context stack for an in-progress
// object (record or map ET).
type MapFrame struct {
	Node *Map
	ET   schema.Type // post-classify, resolved

	// Record-only bookkeeping. Both nil when ET classifies as Map.
	Unvisited *orderedmap.OrderedMap[string, *schema.FieldSpec]
	Visited   map[string]*schema.FieldSpec
	Rest      *schema.Type

	// CurrentKey is the wire name most recently completed by FieldName,
	// valid while the machine is parsing that key's value.
	CurrentKey string
	// CurrentFieldET and CurrentNilable describe the value slot handleFieldName
	// resolved CurrentKey into: the ET to coerce/construct against, and
	// whether an explicit null is acceptable there.
	CurrentFieldET schema.Type
	CurrentNilable bool
	// CurrentKeyRepeatsDeclaredField is set when CurrentKey names a
	// declared record field already present in Visited from an earlier
	// occurrence: declared fields are first-definition-wins, so
	// AssignField must not let this occurrence overwrite the value
	// already placed under DeclaredName. Always false for rest-type/map
	// keys, which stay last-write-wins.
	CurrentKeyRepeatsDeclaredField bool
}

// ArrayFrame is one entry of the parser context stack for an in-progress
// array or tuple ET.
type ArrayFrame struct {
	Node       *Array
	ET         schema.Type
	Index      int
	ClosedSize int // -1 if open
	IsTuple    bool
}

// NewMapFrame allocates a container for et, which must classify as Record
// or Map (the caller, internal/scan, has already run introspect.Classify).
func NewMapFrame(et schema.Type) *MapFrame {
	f := &MapFrame{Node: NewMap(), ET: et}
	switch et.Category {
	case schema.CategoryRecord:
		f.Unvisited = orderedmap.New[string, *schema.FieldSpec]()
		if et.Fields != nil {
			for pair := et.Fields.Oldest(); pair != nil; pair = pair.Next() {
				f.Unvisited.Set(pair.Key, pair.Value)
			}
		}
		f.Visited = map[string]*schema.FieldSpec{}
		f.Rest = et.Rest
	case schema.CategoryMap:
		// A Map ET has no declared fields: every key is governed by the
		// same value type, modelled as an always-present rest type so
		// handleFieldName never raises UndefinedField for it.
		value := et.Value
		if value == nil {
			jl := schema.JSONLike()
			value = &jl
		}
		f.Rest = value
	}
	return f
}

// NewArrayFrame allocates a container for et, which must classify as Array
// or Tuple.
func NewArrayFrame(et schema.Type) *ArrayFrame {
	f := &ArrayFrame{ET: et, ClosedSize: -1}
	switch et.Category {
	case schema.CategoryTuple:
		f.IsTuple = true
		f.Node = NewArray(len(et.Elements))
		f.ClosedSize = len(et.Elements)
	case schema.CategoryArray:
		if et.Shape == schema.ShapeClosed {
			f.ClosedSize = et.Size
			f.Node = NewArray(et.Size)
		} else {
			f.Node = NewArray(0)
		}
	default:
		f.Node = NewArray(0)
	}
	return f
}

// AssignField places child into parent under the declared name resolved
// by handleFieldName (wireName maps to a FieldSpec) or, failing that,
// under wireName itself (rest-type or projected field). A repeat
// occurrence of an already-assigned declared field is a no-op: the first
// definition wins for declared record fields, while undeclared keys
// governed by a rest/map type stay last-write-wins.
func AssignField(parent *MapFrame, wireName string, child any) {
	if parent.CurrentKeyRepeatsDeclaredField {
		return
	}
	if spec, ok := parent.Visited[wireName]; ok {
		parent.Node.Set(spec.DeclaredName, child)
		return
	}
	parent.Node.Set(wireName, child)
}

// AppendElement places child at index into parent. For a closed frame
// (array or tuple) whose index is beyond the declared size, the element
// is silently dropped (projection-trim); the caller is responsible for
// having already failed with ArrayTooLong when projection forbids this.
func AppendElement(parent *ArrayFrame, index int, child any) (dropped bool) {
	if parent.ClosedSize >= 0 && index >= parent.ClosedSize {
		return true
	}
	parent.Node.Set(index, child)
	return false
}
