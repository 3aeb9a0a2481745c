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

package scan

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/internal/projection"
	"github.com/cuedata-labs/sdjson/internal/unionfallback"
	"github.com/cuedata-labs/sdjson/schema"
)

func parseString(t *testing.T, doc string, et schema.Type, policy projection.Policy) (any, error) {
	t.Helper()
	return Parse(strings.NewReader(doc), et, policy, unionfallback.Traverse)
}

func TestParseStrictRecordWithRename(t *testing.T) {
	fields := schema.NewFields(&schema.FieldSpec{
		DeclaredName: "identifier", WireName: "id", Required: true, Type: schema.Int(64, true),
	})
	et := schema.Record(fields, nil)

	v, err := parseString(t, `{"id": 42}`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	got, ok := m.Get("identifier")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.(int64), int64(42)))
}

func TestParseStrictRejectsUndeclaredField(t *testing.T) {
	et := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	), nil)

	_, err := parseString(t, `{"id": 1, "extra": 2}`, et, projection.Strict)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseProjectionAllowsUndeclaredField(t *testing.T) {
	et := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	), nil)

	v, err := parseString(t, `{"id": 1, "extra": "dropped semantically, kept structurally"}`, et, projection.Defaults)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	_, ok := m.Get("extra")
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseRequiredFieldMissingFailsStrict(t *testing.T) {
	et := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	), nil)

	_, err := parseString(t, `{}`, et, projection.Strict)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseRequiredFieldMissingToleratedWithAbsentAsNilable(t *testing.T) {
	et := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Nilable: true, Type: schema.Int(64, true)},
	), nil)

	v, err := parseString(t, `{}`, et, projection.Defaults)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	got, ok := m.Get("id")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNil(got))
}

func TestParseUnionFallbackPicksMatchingMember(t *testing.T) {
	et := schema.Union(schema.Int(64, true), schema.String())

	v, err := parseString(t, `42`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(int64), int64(42)))

	v, err = parseString(t, `"hello"`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "hello"))
}

func TestParseUnionFallbackIntoRecordMember(t *testing.T) {
	recordMember := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "x", WireName: "x", Required: true, Type: schema.Int(64, true)},
	), nil)
	et := schema.Union(schema.String(), recordMember)

	v, err := parseString(t, `{"x": 1}`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	got, _ := m.Get("x")
	qt.Assert(t, qt.Equals(got.(int64), int64(1)))
}

func TestParseClosedTupleOverflowTrimmedUnderProjection(t *testing.T) {
	et := schema.Tuple(schema.Int(64, true))
	v, err := parseString(t, `[1, 2, 3]`, et, projection.Defaults)
	qt.Assert(t, qt.IsNil(err))
	a := v.(*construct.Array)
	qt.Assert(t, qt.Equals(a.Len(), 1))
}

func TestParseClosedTupleOverflowRejectedStrict(t *testing.T) {
	et := schema.Tuple(schema.Int(64, true))
	_, err := parseString(t, `[1, 2, 3]`, et, projection.Strict)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseClosedArrayUnderfillAlwaysAccepted(t *testing.T) {
	et := schema.ClosedArray(schema.Int(64, true), 3)
	v, err := parseString(t, `[1]`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	a := v.(*construct.Array)
	qt.Assert(t, qt.Equals(a.Len(), 1))
}

func TestParseEscapeSequences(t *testing.T) {
	v, err := parseString(t, `"line\nbreak\ttab\"quote"`, schema.String(), projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "line\nbreak\ttab\"quote"))
}

func TestParseUnicodeEscapeBMP(t *testing.T) {
	v, err := parseString(t, `"\`+`u00e9"`, schema.String(), projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "é"))
}

func TestParseUnicodeSurrogatePairCombines(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as the surrogate pair D83D DE00.
	v, err := parseString(t, `"\`+`ud83d\`+`ude00"`, schema.String(), projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "\U0001F600"))
}

func TestParseEmptyDocumentFails(t *testing.T) {
	_, err := parseString(t, "   ", schema.String(), projection.Strict)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseTrailingContentFails(t *testing.T) {
	_, err := parseString(t, `1 2`, schema.Int(64, true), projection.Strict)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseNestedArrayOfRecords(t *testing.T) {
	elem := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "n", WireName: "n", Required: true, Type: schema.Int(64, true)},
	), nil)
	et := schema.OpenArray(elem)

	v, err := parseString(t, `[{"n": 1}, {"n": 2}]`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	a := v.(*construct.Array)
	qt.Assert(t, qt.Equals(a.Len(), 2))
	first := a.Items()[0].(*construct.Map)
	got, _ := first.Get("n")
	qt.Assert(t, qt.Equals(got.(int64), int64(1)))
}

func TestParseJSONLikeRoundTripsPlainObject(t *testing.T) {
	v, err := parseString(t, `{"a": 1, "b": [true, null, "s"]}`, schema.JSONLike(), projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	qt.Assert(t, qt.Equals(m.Len(), 2))
}

func TestParseDuplicateDeclaredFieldFirstDefinitionWins(t *testing.T) {
	et := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	), nil)

	v, err := parseString(t, `{"id": 1, "id": 2}`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	got, _ := m.Get("id")
	qt.Assert(t, qt.Equals(got.(int64), int64(1)))
}

func TestParseDuplicateMapKeyLastWriteWins(t *testing.T) {
	et := schema.Map(schema.Int(64, true))

	v, err := parseString(t, `{"k": 1, "k": 2}`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	got, _ := m.Get("k")
	qt.Assert(t, qt.Equals(got.(int64), int64(2)))
}

func TestParseReadOnlyRecordIsFrozen(t *testing.T) {
	rec := schema.Record(schema.NewFields(
		&schema.FieldSpec{DeclaredName: "id", WireName: "id", Required: true, Type: schema.Int(64, true)},
	), nil)
	et := schema.ReadOnlyIntersection(rec)

	v, err := parseString(t, `{"id": 1}`, et, projection.Strict)
	qt.Assert(t, qt.IsNil(err))
	m := v.(*construct.Map)
	qt.Assert(t, qt.IsTrue(m.Frozen()))
}
