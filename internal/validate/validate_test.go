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

package validate

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/schema"
)

func TestValidateDisabledIsNoop(t *testing.T) {
	arr := construct.NewArray(0)
	arr.Append("too many")
	arr.Append("elements")
	v, err := Validate(arr, schema.ClosedArray(schema.String(), 1), false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(*construct.Array).Len(), 2))
}

func TestValidateCatchesClosedArrayOverflow(t *testing.T) {
	arr := construct.NewArray(0)
	arr.Append("a")
	arr.Append("b")
	_, err := Validate(arr, schema.ClosedArray(schema.String(), 1), true)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidateCatchesBadCharString(t *testing.T) {
	m := construct.NewMap()
	m.Set("initial", "ab")
	fields := schema.NewFields(&schema.FieldSpec{DeclaredName: "initial", WireName: "initial", Type: schema.CharString()})
	_, err := Validate(m, schema.Record(fields, nil), true)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestValidatePassesWellFormedValue(t *testing.T) {
	m := construct.NewMap()
	m.Set("initial", "a")
	fields := schema.NewFields(&schema.FieldSpec{DeclaredName: "initial", WireName: "initial", Type: schema.CharString()})
	v, err := Validate(m, schema.Record(fields, nil), true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNotNil(v))
}
