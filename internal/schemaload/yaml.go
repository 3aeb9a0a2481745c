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

package schemaload

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cuedata-labs/sdjson/schema"
)

// yamlNode is the terser CLI schema-descriptor format: a `kind` tag plus
// kind-specific fields, read directly with gopkg.in/yaml.v3 rather than
// routed through full JSON Schema.
//
//	kind: record
//	fields:
//	  - name: id
//	    type: {kind: int}
//	    required: true
//	  - name: tags
//	    type: {kind: array, element: {kind: string}}
type yamlNode struct {
	Kind     string      `yaml:"kind"`
	Fields   []yamlField `yaml:"fields"`
	Rest     *yamlNode   `yaml:"rest"`
	Element  *yamlNode   `yaml:"element"`
	Elements []yamlNode  `yaml:"elements"`
	Value    *yamlNode   `yaml:"value"`
	Members  []yamlNode  `yaml:"members"`
	Size     int         `yaml:"size"`
	Width    int         `yaml:"width"`
	Signed   *bool       `yaml:"signed"`
}

type yamlField struct {
	Name     string   `yaml:"name"`
	Wire     string   `yaml:"wire"`
	Type     yamlNode `yaml:"type"`
	Required bool     `yaml:"required"`
	Nilable  bool     `yaml:"nilable"`
}

// FromYAML parses the terser schema-descriptor YAML format into a
// schema.Type tree.
func FromYAML(data []byte) (schema.Type, error) {
	var n yamlNode
	if err := yaml.Unmarshal(data, &n); err != nil {
		return schema.Type{}, fmt.Errorf("schemaload: %w", err)
	}
	return n.toType()
}

func (n yamlNode) toType() (schema.Type, error) {
	switch n.Kind {
	case "record":
		specs := make([]*schema.FieldSpec, 0, len(n.Fields))
		for _, f := range n.Fields {
			ft, err := f.Type.toType()
			if err != nil {
				return schema.Type{}, err
			}
			wire := f.Wire
			if wire == "" {
				wire = f.Name
			}
			specs = append(specs, &schema.FieldSpec{
				DeclaredName: f.Name,
				WireName:     wire,
				Type:         ft,
				Required:     f.Required,
				Nilable:      f.Nilable,
			})
		}
		var rest *schema.Type
		if n.Rest != nil {
			rt, err := n.Rest.toType()
			if err != nil {
				return schema.Type{}, err
			}
			rest = &rt
		}
		return schema.Record(schema.NewFields(specs...), rest), nil
	case "map":
		value := schema.JSONLike()
		if n.Value != nil {
			v, err := n.Value.toType()
			if err != nil {
				return schema.Type{}, err
			}
			value = v
		}
		return schema.Map(value), nil
	case "array":
		elem := schema.JSONLike()
		if n.Element != nil {
			e, err := n.Element.toType()
			if err != nil {
				return schema.Type{}, err
			}
			elem = e
		}
		if n.Size > 0 {
			return schema.ClosedArray(elem, n.Size), nil
		}
		return schema.OpenArray(elem), nil
	case "tuple":
		elems := make([]schema.Type, 0, len(n.Elements))
		for _, e := range n.Elements {
			t, err := e.toType()
			if err != nil {
				return schema.Type{}, err
			}
			elems = append(elems, t)
		}
		return schema.Tuple(elems...), nil
	case "union":
		members := make([]schema.Type, 0, len(n.Members))
		for _, m := range n.Members {
			t, err := m.toType()
			if err != nil {
				return schema.Type{}, err
			}
			members = append(members, t)
		}
		return schema.Union(members...), nil
	case "string":
		return schema.String(), nil
	case "charString":
		return schema.CharString(), nil
	case "bool":
		return schema.Bool(), nil
	case "int":
		signed := true
		if n.Signed != nil {
			signed = *n.Signed
		}
		return schema.Int(n.Width, signed), nil
	case "float":
		return schema.Float(), nil
	case "decimal":
		return schema.Decimal(), nil
	case "null":
		return schema.Null(), nil
	case "jsonLike", "":
		return schema.JSONLike(), nil
	default:
		return schema.Type{}, fmt.Errorf("schemaload: unknown kind %q", n.Kind)
	}
}
