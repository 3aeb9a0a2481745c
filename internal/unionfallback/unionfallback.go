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

// Package unionfallback is the union-fallback collaborator: at the
// boundary of every completed union subtree, the state machine
// hands it the generic JsonLike value it buffered and asks this package
// to coerce that value into one declared member of the union. It is a
// small, separate tree-walking converter; it never sees the document's
// raw characters, only the already-decoded generic tree.
package unionfallback

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/internal/introspect"
	"github.com/cuedata-labs/sdjson/internal/projection"
	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// Traverse coerces value (built generically while unionDepth > 0) into one
// member of unionET, trying members in declared order and returning the
// first that accepts the value. policy is threaded through so nested
// record members honor the same projection rules as the rest of the
// document.
func Traverse(value any, policy projection.Policy, unionET schema.Type) (any, error) {
	cat, resolved, err := introspect.Classify(unionET)
	if err != nil {
		return nil, err
	}
	if cat != schema.CategoryUnion {
		return coerceInto(value, policy, unionET)
	}
	var lastErr error
	for _, member := range resolved.Members {
		v, err := coerceInto(value, policy, member)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = sdjsonerr.NewUnsupportedType("union has no members")
	}
	return nil, lastErr
}

// coerceInto attempts to reshape value into et, recursing into nested
// unions, records, maps, arrays and tuples as needed.
func coerceInto(value any, policy projection.Policy, et schema.Type) (any, error) {
	cat, resolved, err := introspect.Classify(et)
	if err != nil {
		return nil, err
	}

	switch cat {
	case schema.CategoryJSONLike:
		return value, nil
	case schema.CategoryUnion:
		return Traverse(value, policy, resolved)
	case schema.CategoryScalar:
		v, err := coerceScalarValue(value, resolved)
		if err != nil {
			return nil, err
		}
		return v, nil
	case schema.CategoryRecord:
		m, ok := value.(*construct.Map)
		if !ok {
			return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "object", schema.CategoryRecord)
		}
		out, err := coerceRecord(m, policy, resolved)
		if err != nil {
			return nil, err
		}
		return freezeIf(resolved, out), nil
	case schema.CategoryMap:
		m, ok := value.(*construct.Map)
		if !ok {
			return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "object", schema.CategoryMap)
		}
		out := construct.NewMap()
		for _, key := range m.Keys() {
			raw, _ := m.Get(key)
			v, err := coerceInto(raw, policy, *resolved.Value)
			if err != nil {
				return nil, err
			}
			out.Set(key, v)
		}
		return freezeIf(resolved, out), nil
	case schema.CategoryArray:
		a, ok := value.(*construct.Array)
		if !ok {
			return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "array", schema.CategoryArray)
		}
		items := a.Items()
		if resolved.Shape == schema.ShapeClosed && len(items) > resolved.Size {
			if !policy.AllowDataProjection {
				return nil, sdjsonerr.NewArrayTooLong(sdjsonerr.Position{}, resolved.Size)
			}
			items = items[:resolved.Size]
		}
		out := construct.NewArray(len(items))
		for _, raw := range items {
			v, err := coerceInto(raw, policy, introspect.ElementOf(resolved))
			if err != nil {
				return nil, err
			}
			out.Append(v)
		}
		return freezeIf(resolved, out), nil
	case schema.CategoryTuple:
		a, ok := value.(*construct.Array)
		if !ok {
			return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "array", schema.CategoryTuple)
		}
		items := a.Items()
		if len(items) > len(resolved.Elements) && !policy.AllowDataProjection {
			return nil, sdjsonerr.NewArrayTooLong(sdjsonerr.Position{}, len(resolved.Elements))
		}
		out := construct.NewArray(len(resolved.Elements))
		for i, elemET := range resolved.Elements {
			if i >= len(items) {
				break
			}
			v, err := coerceInto(items[i], policy, elemET)
			if err != nil {
				return nil, err
			}
			out.Append(v)
		}
		return freezeIf(resolved, out), nil
	default:
		return nil, sdjsonerr.NewUnsupportedType("union member has unsupported category " + cat.String())
	}
}

func freezeIf(et schema.Type, v any) any {
	if et.ReadOnly {
		return construct.Freeze(v)
	}
	return v
}

func coerceRecord(m *construct.Map, policy projection.Policy, et schema.Type) (*construct.Map, error) {
	fields := introspect.FieldsOf(et)
	out := construct.NewMap()
	seen := map[string]bool{}
	for _, key := range m.Keys() {
		raw, _ := m.Get(key)
		var spec *schema.FieldSpec
		if fields != nil {
			spec, _ = fields.Get(key)
		}
		if spec == nil {
			rest := introspect.RestOf(et)
			if rest == nil {
				if err := policy.CheckUndeclaredField(sdjsonerr.Position{}, key); err != nil {
					return nil, err
				}
				out.Set(key, raw)
				continue
			}
			v, err := coerceInto(raw, policy, *rest)
			if err != nil {
				return nil, err
			}
			out.Set(key, v)
			continue
		}
		seen[spec.WireName] = true
		if raw == nil && !policy.AcceptsNullFor(spec) {
			return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "null", spec.Type.Category)
		}
		if raw == nil {
			out.Set(spec.DeclaredName, nil)
			continue
		}
		v, err := coerceInto(raw, policy, spec.Type)
		if err != nil {
			return nil, err
		}
		out.Set(spec.DeclaredName, v)
	}
	if fields != nil {
		for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
			if seen[pair.Key] {
				continue
			}
			spec := pair.Value
			if !policy.FieldIsImplicitlyNilable(spec) {
				return nil, sdjsonerr.NewRequiredFieldMissing(sdjsonerr.Position{}, spec.DeclaredName)
			}
			out.Set(spec.DeclaredName, nil)
		}
	}
	return out, nil
}

func coerceScalarValue(value any, et schema.Type) (any, error) {
	if value == nil {
		if et.ScalarKind == schema.KindNull {
			return nil, nil
		}
		return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "null", et.ScalarKind)
	}
	switch et.ScalarKind {
	case schema.KindNull:
		return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "non-null", et.ScalarKind)
	case schema.KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case schema.KindInt:
		if i, ok := value.(int64); ok {
			return boundInt(i, et)
		}
	case schema.KindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		}
	case schema.KindDecimal:
		switch v := value.(type) {
		case int64:
			d := apd.New(v, 0)
			return d, nil
		case float64:
			d, _, err := apd.NewFromString(strconv.FormatFloat(v, 'g', -1, 64))
			if err != nil {
				break
			}
			return d, nil
		}
	case schema.KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case schema.KindCharString:
		if s, ok := value.(string); ok && len([]rune(s)) == 1 {
			return s, nil
		}
	}
	return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "value", et.ScalarKind)
}

func boundInt(v int64, et schema.Type) (any, error) {
	width := et.IntWidth
	if width == 0 {
		width = 64
	}
	if !et.IntSigned && v < 0 {
		return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "negative", et.ScalarKind)
	}
	if width < 64 {
		max := int64(1) << (uint(width) - 1)
		if et.IntSigned {
			if v >= max || v < -max {
				return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "out of range", et.ScalarKind)
			}
		} else {
			if v >= int64(1)<<uint(width) {
				return nil, sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, "out of range", et.ScalarKind)
			}
		}
	}
	return v, nil
}

