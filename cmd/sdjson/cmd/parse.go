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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cuedata-labs/sdjson"
	sdjsonlog "github.com/cuedata-labs/sdjson/internal/log"
	"github.com/cuedata-labs/sdjson/schema"
)

func newParseCmd() *cobra.Command {
	var project bool
	parseCmd := &cobra.Command{
		Use:   "parse <schema-file> <json-file>",
		Short: "Decode a JSON file against a schema-descriptor file and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], args[1], project)
		},
	}
	parseCmd.Flags().BoolVar(&project, "project", false, "allow data projection")
	return parseCmd
}

func runParse(schemaPath, jsonPath string, project bool) error {
	et, err := loadSchemaFile(schemaPath)
	if err != nil {
		return err
	}

	f, err := os.Open(jsonPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", jsonPath, err)
	}
	defer f.Close()

	opts := sdjson.Options{
		EnableConstraintValidation: viper.GetBool("validate.enabled"),
	}
	if project {
		opts.Projection = sdjson.AllowProjectionWith(
			viper.GetBool("projection.absent-as-nilable"),
			viper.GetBool("projection.nil-as-optional"),
		)
	}

	sdjsonlog.Debug("parsing", "schema", schemaPath, "input", jsonPath, "project", project)
	v, err := sdjson.Parse(f, et, opts)
	if err != nil {
		sdjsonlog.Error("parse failed", "error", err)
		return err
	}

	out, err := json.MarshalIndent(renderValue(v), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// renderValue converts sdjson.Map/sdjson.Array into plain Go maps/slices
// so encoding/json can print them; apd.Decimal and the other scalar
// kinds already marshal the way a user expects.
func renderValue(v any) any {
	switch t := v.(type) {
	case sdjson.Map:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			out[k] = renderValue(child)
		}
		return out
	case sdjson.Array:
		items := t.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = renderValue(item)
		}
		return out
	default:
		return t
	}
}

func loadSchemaFile(path string) (schema.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Type{}, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return loadSchemaBytes(path, data)
}
