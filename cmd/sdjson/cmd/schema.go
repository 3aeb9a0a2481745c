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

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/cuedata-labs/sdjson/internal/schemaload"
	"github.com/cuedata-labs/sdjson/schema"
)

// loadSchemaBytes dispatches on file extension: ".json" is read as a
// JSON Schema document (internal/schemaload.FromJSONSchema); ".yaml" /
// ".yml" is read as the terser schema-descriptor format
// (internal/schemaload.FromYAML).
func loadSchemaBytes(path string, data []byte) (schema.Type, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var s jsonschema.Schema
		if err := json.Unmarshal(data, &s); err != nil {
			return schema.Type{}, fmt.Errorf("parsing JSON Schema %s: %w", path, err)
		}
		return schemaload.FromJSONSchema(&s)
	case ".yaml", ".yml":
		return schemaload.FromYAML(data)
	default:
		return schema.Type{}, fmt.Errorf("unrecognized schema file extension for %s (want .json, .yaml, or .yml)", path)
	}
}
