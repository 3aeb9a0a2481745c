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

// Package schemaload builds schema.Type trees from external descriptor
// formats, so callers can hand sdjson an existing JSON Schema document or
// a terser YAML schema file instead of constructing schema.Type values by
// hand.
package schemaload

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/cuedata-labs/sdjson/schema"
)

// FromJSONSchema translates a JSON Schema document into a schema.Type
// tree: an object with declared properties becomes a Record (Rest set
// unless additionalProperties is false), an object with no declared
// properties becomes a Map, an array with a single items schema becomes
// an Array, an array with prefixItems becomes a Tuple,
// oneOf/anyOf becomes a Union, and a schema with no recognized type
// becomes JsonLike.
func FromJSONSchema(s *jsonschema.Schema) (schema.Type, error) {
	if s == nil {
		return schema.JSONLike(), nil
	}
	if len(s.OneOf) > 0 {
		return unionOf(s.OneOf)
	}
	if len(s.AnyOf) > 0 {
		return unionOf(s.AnyOf)
	}

	switch s.Type {
	case "object":
		return objectType(s)
	case "array":
		return arrayType(s)
	case "string":
		return schema.String(), nil
	case "integer":
		return schema.Int(64, true), nil
	case "number":
		return schema.Float(), nil
	case "boolean":
		return schema.Bool(), nil
	case "null":
		return schema.Null(), nil
	case "":
		return schema.JSONLike(), nil
	default:
		return schema.Type{}, fmt.Errorf("schemaload: unsupported JSON Schema type %q", s.Type)
	}
}

func unionOf(alts []*jsonschema.Schema) (schema.Type, error) {
	members := make([]schema.Type, 0, len(alts))
	for _, alt := range alts {
		t, err := FromJSONSchema(alt)
		if err != nil {
			return schema.Type{}, err
		}
		members = append(members, t)
	}
	return schema.Union(members...), nil
}

func objectType(s *jsonschema.Schema) (schema.Type, error) {
	if len(s.Properties) == 0 {
		return schema.Map(schema.JSONLike()), nil
	}
	required := map[string]bool{}
	for _, name := range s.Required {
		required[name] = true
	}

	specs := make([]*schema.FieldSpec, 0, len(s.Properties))
	for name, propSchema := range s.Properties {
		ft, err := FromJSONSchema(propSchema)
		if err != nil {
			return schema.Type{}, fmt.Errorf("schemaload: property %q: %w", name, err)
		}
		specs = append(specs, &schema.FieldSpec{
			DeclaredName: name,
			WireName:     name,
			Type:         ft,
			Required:     required[name],
		})
	}

	var rest *schema.Type
	if s.AdditionalProperties == nil || !isFalseSchema(s.AdditionalProperties) {
		jl := schema.JSONLike()
		rest = &jl
	}
	return schema.Record(schema.NewFields(specs...), rest), nil
}

func arrayType(s *jsonschema.Schema) (schema.Type, error) {
	if len(s.PrefixItems) > 0 {
		elems := make([]schema.Type, 0, len(s.PrefixItems))
		for i, item := range s.PrefixItems {
			t, err := FromJSONSchema(item)
			if err != nil {
				return schema.Type{}, fmt.Errorf("schemaload: items[%d]: %w", i, err)
			}
			elems = append(elems, t)
		}
		return schema.Tuple(elems...), nil
	}
	if s.Items == nil {
		return schema.OpenArray(schema.JSONLike()), nil
	}
	elem, err := FromJSONSchema(s.Items)
	if err != nil {
		return schema.Type{}, fmt.Errorf("schemaload: items: %w", err)
	}
	return schema.OpenArray(elem), nil
}

func isFalseSchema(s *jsonschema.Schema) bool {
	return s.Not != nil && len(s.Not.Properties) == 0 && s.Not.Type == "" && len(s.Not.OneOf) == 0 && len(s.Not.AnyOf) == 0
}
