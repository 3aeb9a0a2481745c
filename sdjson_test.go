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

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/cuedata-labs/sdjson/schema"
)

func TestParseStrictRecordRoundTrip(t *testing.T) {
	fields := schema.NewFields(
		&schema.FieldSpec{DeclaredName: "name", WireName: "name", Required: true, Type: schema.String()},
		&schema.FieldSpec{DeclaredName: "age", WireName: "age", Required: true, Type: schema.Int(64, true)},
	)
	et := schema.Record(fields, nil)

	v, err := Parse(strings.NewReader(`{"name": "Ada", "age": 30}`), et, Options{})
	qt.Assert(t, qt.IsNil(err))

	m, ok := v.(Map)
	qt.Assert(t, qt.IsTrue(ok))
	name, _ := m.Get("name")
	qt.Assert(t, qt.Equals(name.(string), "Ada"))
	age, _ := m.Get("age")
	qt.Assert(t, qt.Equals(age.(int64), int64(30)))
}

func TestParseStrictRejectsExtraField(t *testing.T) {
	fields := schema.NewFields(
		&schema.FieldSpec{DeclaredName: "name", WireName: "name", Required: true, Type: schema.String()},
	)
	et := schema.Record(fields, nil)

	_, err := Parse(strings.NewReader(`{"name": "Ada", "extra": 1}`), et, Options{})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseAllowProjectionAcceptsExtraField(t *testing.T) {
	fields := schema.NewFields(
		&schema.FieldSpec{DeclaredName: "name", WireName: "name", Required: true, Type: schema.String()},
	)
	et := schema.Record(fields, nil)

	v, err := Parse(strings.NewReader(`{"name": "Ada", "extra": 1}`), et, Options{Projection: AllowProjection()})
	qt.Assert(t, qt.IsNil(err))
	m := v.(Map)
	_, ok := m.Get("extra")
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseAllowProjectionWithExplicitFlags(t *testing.T) {
	fields := schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	)
	et := schema.Record(fields, nil)

	opts := Options{Projection: AllowProjectionWith(false, false)}
	_, err := Parse(strings.NewReader(`{}`), et, opts)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseStrictRejectsClosedArrayOverflowWithValidationEnabled(t *testing.T) {
	et := schema.ClosedArray(schema.Int(64, true), 1)
	opts := Options{Projection: Strict(), EnableConstraintValidation: true}

	_, err := Parse(strings.NewReader(`[1, 2]`), et, opts)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseArrayOfMapsWraps(t *testing.T) {
	et := schema.OpenArray(schema.Map(schema.String()))

	v, err := Parse(strings.NewReader(`[{"a": "b"}, {"c": "d"}]`), et, Options{})
	qt.Assert(t, qt.IsNil(err))

	a := v.(Array)
	qt.Assert(t, qt.Equals(a.Len(), 2))
	first := a.Items()[0].(Map)
	got, _ := first.Get("a")
	qt.Assert(t, qt.Equals(got.(string), "b"))
}

func TestParseReadOnlyRecordReportsReadOnly(t *testing.T) {
	rec := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	), nil)
	et := schema.ReadOnlyIntersection(rec)

	v, err := Parse(strings.NewReader(`{"id": 1}`), et, Options{})
	qt.Assert(t, qt.IsNil(err))
	m := v.(Map)
	qt.Assert(t, qt.IsTrue(m.ReadOnly()))
}

func TestParseScalarRoot(t *testing.T) {
	v, err := Parse(strings.NewReader(`"hello"`), schema.String(), Options{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "hello"))
}

func TestParseMalformedDocumentFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"a": }`), schema.JSONLike(), Options{})
	qt.Assert(t, qt.IsNotNil(err))
}

// renderStrings flattens an Array of scalar strings into a plain []string
// so it can be compared with cmp.Diff without reaching into the wrapper.
func renderStrings(a Array) []string {
	items := a.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.(string)
	}
	return out
}

func TestParseArrayOfStringsMatchesExpectedOrder(t *testing.T) {
	et := schema.OpenArray(schema.String())

	v, err := Parse(strings.NewReader(`["c", "a", "b"]`), et, Options{})
	qt.Assert(t, qt.IsNil(err))

	got := renderStrings(v.(Array))
	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("array order mismatch (-want +got):\n%s", diff)
	}
}
