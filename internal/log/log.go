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

// Package log is the CLI's logging sink. It wraps charm.land/log/v2 behind
// a small package-level logger so cmd/sdjson can configure verbosity once
// at startup; library packages never import this package, so embedding
// the decoder in another program never forces a log sink on it.
package log

import (
	"io"
	"os"

	charmlog "charm.land/log/v2"
)

var logger = charmlog.New(os.Stderr)

// Configure sets the package logger's output, level, and whether to
// report caller file/line, called once by cmd/sdjson's root command
// after flags are parsed.
func Configure(w io.Writer, verbose bool, reportCaller bool) {
	logger = charmlog.New(w)
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
	} else {
		logger.SetLevel(charmlog.InfoLevel)
	}
	logger.SetReportCaller(reportCaller)
}

// Debug logs a fine-grained CLI diagnostic, such as which files a parse
// reads. Only emitted when Configure was called with verbose.
func Debug(msg string, keyvals ...any) { logger.Debug(msg, keyvals...) }

// Warn logs a condition the CLI reports at warning level, such as a
// document that failed the validate subcommand.
func Warn(msg string, keyvals ...any) { logger.Warn(msg, keyvals...) }

// Error logs a terminal failure before it is returned to the caller as
// an sdjsonerr.Error.
func Error(msg string, keyvals ...any) { logger.Error(msg, keyvals...) }
