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

// Package cmd implements the sdjson CLI: decode or validate a JSON
// document against a schema file from the command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sdjsonlog "github.com/cuedata-labs/sdjson/internal/log"
)

var verbose bool

// Execute runs the root command, searching for an sdjson.yaml config file
// in "." and "$HOME/.sdjson". Its projection.* keys set the fine-grained
// projection flags that parse uses when --project is given, and
// validate.enabled turns on constraint validation for parse; no
// command-line flag overrides these keys.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "sdjson",
		Short: "sdjson decodes JSON against a schema-directed expected type",
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parser diagnostics")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		viper.SetConfigName("sdjson")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.sdjson")
		}
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("reading config: %w", err)
			}
		}
		viper.SetDefault("projection.absent-as-nilable", true)
		viper.SetDefault("projection.nil-as-optional", true)
		viper.SetDefault("validate.enabled", false)
		viper.BindPFlags(cmd.Flags())
		sdjsonlog.Configure(os.Stderr, verbose, verbose)
		return nil
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
