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

package schema

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestConstructorCategories(t *testing.T) {
	qt.Assert(t, qt.Equals(Null().Category, CategoryScalar))
	qt.Assert(t, qt.Equals(Null().ScalarKind, KindNull))
	qt.Assert(t, qt.Equals(Bool().ScalarKind, KindBool))
	qt.Assert(t, qt.Equals(Int(32, true).IntWidth, 32))
	qt.Assert(t, qt.Equals(JSONLike().Category, CategoryJSONLike))
}

func TestMapValueIsPointer(t *testing.T) {
	m := Map(String())
	qt.Assert(t, qt.Equals(m.Category, CategoryMap))
	qt.Assert(t, qt.IsNotNil(m.Value))
	qt.Assert(t, qt.Equals(m.Value.ScalarKind, KindString))
}

func TestReadOnlyIntersectionMarksEffective(t *testing.T) {
	et := ReadOnlyIntersection(Record(NewFields(), nil), String())
	qt.Assert(t, qt.Equals(et.Category, CategoryIntersection))
	qt.Assert(t, qt.IsTrue(et.Effective.ReadOnly))
}

func TestNewFieldsPreservesWireOrder(t *testing.T) {
	f := NewFields(
		&FieldSpec{DeclaredName: "a", WireName: "a"},
		&FieldSpec{DeclaredName: "b", WireName: "b"},
	)
	var order []string
	for pair := f.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	qt.Assert(t, qt.DeepEquals(order, []string{"a", "b"}))
}

func TestCategoryString(t *testing.T) {
	qt.Assert(t, qt.Equals(CategoryRecord.String(), "record"))
	qt.Assert(t, qt.Equals(Category(99).String(), "unknown"))
}
