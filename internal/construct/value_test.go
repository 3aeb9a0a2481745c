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
	"testing"

	"github.com/go-quicktest/qt"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("z", 1)
	m.Set("a", 2)
	qt.Assert(t, qt.DeepEquals(m.Keys(), []string{"z", "a"}))
}

func TestMapSetPanicsWhenFrozen(t *testing.T) {
	m := NewMap()
	m.Set("k", 1)
	Freeze(m)
	qt.Assert(t, qt.IsTrue(m.Frozen()))

	defer func() {
		qt.Assert(t, qt.IsNotNil(recover()))
	}()
	m.Set("k", 2)
}

func TestArraySetGrowsWithNils(t *testing.T) {
	a := NewArray(0)
	a.Set(2, "x")
	qt.Assert(t, qt.Equals(a.Len(), 3))
	qt.Assert(t, qt.IsNil(a.Items()[0]))
	qt.Assert(t, qt.IsNil(a.Items()[1]))
	qt.Assert(t, qt.Equals(a.Items()[2].(string), "x"))
}

func TestFreezeRecursesIntoChildren(t *testing.T) {
	inner := NewMap()
	inner.Set("x", 1)
	outer := NewMap()
	outer.Set("inner", inner)

	Freeze(outer)
	qt.Assert(t, qt.IsTrue(outer.Frozen()))
	qt.Assert(t, qt.IsTrue(inner.Frozen()))
}
