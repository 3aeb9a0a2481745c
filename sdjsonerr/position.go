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

// Package sdjsonerr defines the parser's error taxonomy and a
// source Position, grounded on cuelang.org/go's cue/token.Position and
// cue/errors.Error shapes.
package sdjsonerr

import "fmt"

// Position describes where in the input document an error occurred.
//
// A Position is valid if Line > 0.
type Position struct {
	Line   int // line number, starting at 1
	Column int // column number, starting at 1
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
