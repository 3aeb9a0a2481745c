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

package sdjsonerr

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestPositionString(t *testing.T) {
	qt.Assert(t, qt.Equals(Position{}.String(), "-"))
	qt.Assert(t, qt.Equals(Position{Line: 3, Column: 8}.String(), "3:8"))
}

func TestErrorCarriesKindAndPosition(t *testing.T) {
	err := NewUndefinedField(Position{Line: 2, Column: 5}, "extra")
	qt.Assert(t, qt.Equals(err.Kind(), UndefinedField))
	qt.Assert(t, qt.Equals(err.Position(), Position{Line: 2, Column: 5}))
	qt.Assert(t, qt.StringContains(err.Error(), "extra"))
}

func TestUnsupportedTypeHasNoPosition(t *testing.T) {
	err := NewUnsupportedType("bad")
	qt.Assert(t, qt.IsFalse(err.Position().IsValid()))
}

func TestListAggregates(t *testing.T) {
	var l List
	l.Add(nil)
	l.Add(NewTrailingContent(Position{Line: 1, Column: 1}))
	qt.Assert(t, qt.Equals(len(l), 1))
	qt.Assert(t, qt.IsNotNil(l.Err()))

	var empty List
	qt.Assert(t, qt.IsNil(empty.Err()))
}
