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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuedata-labs/sdjson"
	sdjsonlog "github.com/cuedata-labs/sdjson/internal/log"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema-file> <json-file>",
		Short: "Decode a JSON file with constraint validation enabled and report only errors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], args[1])
		},
	}
}

func runValidate(schemaPath, jsonPath string) error {
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
		Projection:                 sdjson.AllowProjection(),
		EnableConstraintValidation: true,
	}
	if _, err := sdjson.Parse(f, et, opts); err != nil {
		sdjsonlog.Warn("validation failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("ok")
	return nil
}
