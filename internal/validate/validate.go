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

// Package validate is the constraint-validator collaborator.
// Full constraint/annotation validation (min/max, regex patterns, enum
// membership) is out of scope for the parser proper; this package is the
// extension seam enableConstraintValidation hooks into, plus the handful
// of structural checks that fall directly out of the ET shapes the parser
// already knows about.
package validate

import (
	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// Validate runs the built-in structural checks against value as decoded
// against et. It is a no-op unless enabled is true. Callers that need
// richer constraint validation (patterns, numeric ranges, enums) should
// layer their own pass over the returned value; Validate only guards the
// invariants the parser itself is positioned to know about.
func Validate(value any, et schema.Type, enabled bool) (any, error) {
	if !enabled {
		return value, nil
	}
	var errs sdjsonerr.List
	walk(value, et, &errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return value, nil
}

func walk(value any, et schema.Type, errs *sdjsonerr.List) {
	switch v := value.(type) {
	case *construct.Map:
		if et.Category != schema.CategoryRecord && et.Category != schema.CategoryMap {
			return
		}
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			childET := childTypeForKey(et, key)
			walk(child, childET, errs)
		}
	case *construct.Array:
		items := v.Items()
		if et.Category == schema.CategoryArray && et.Shape == schema.ShapeClosed && len(items) > et.Size {
			errs.Add(sdjsonerr.NewArrayTooLong(sdjsonerr.Position{}, et.Size))
		}
		for i, item := range items {
			walk(item, childElementType(et, i), errs)
		}
	case string:
		if et.Category == schema.CategoryScalar && et.ScalarKind == schema.KindCharString && len([]rune(v)) != 1 {
			errs.Add(sdjsonerr.NewConversionFailure(sdjsonerr.Position{}, v, schema.KindCharString))
		}
	}
}

func childTypeForKey(et schema.Type, key string) schema.Type {
	if et.Category == schema.CategoryMap && et.Value != nil {
		return *et.Value
	}
	if et.Fields != nil {
		if spec, ok := et.Fields.Get(key); ok {
			return spec.Type
		}
	}
	if et.Rest != nil {
		return *et.Rest
	}
	return schema.JSONLike()
}

func childElementType(et schema.Type, i int) schema.Type {
	switch et.Category {
	case schema.CategoryArray:
		if et.Element != nil {
			return *et.Element
		}
	case schema.CategoryTuple:
		if i < len(et.Elements) {
			return et.Elements[i]
		}
	}
	return schema.JSONLike()
}
