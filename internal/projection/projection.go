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

// Package projection implements the Projection Policy: whether absence,
// excess, or nil are tolerated or fatal at each enforcement point the
// state machine reaches.
package projection

import (
	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// Policy holds the two fine-grained knobs plus the master switch governing
// how tolerant the parser is of missing, extra, or null values.
type Policy struct {
	// AllowDataProjection is the master switch. When false the two
	// fine-grained flags below are meaningless: undeclared fields and
	// array overflow are always fatal.
	AllowDataProjection bool
	AbsentAsNilable     bool
	NilAsOptional       bool
}

// Strict is the zero-projection policy: no undeclared fields, no missing
// required fields, no implicit null.
var Strict = Policy{}

// Defaults is the policy selected by a bare "allow projection" request:
// project with both fine-grained flags on.
var Defaults = Policy{AllowDataProjection: true, AbsentAsNilable: true, NilAsOptional: true}

// CheckUndeclaredField is the enforcement point at FieldName -> EndFieldName:
// name resolved to no declared field and the record has no rest type.
func (p Policy) CheckUndeclaredField(pos sdjsonerr.Position, name string) error {
	if p.AllowDataProjection {
		return nil
	}
	return sdjsonerr.NewUndefinedField(pos, name)
}

// AcceptsNullFor decides whether an explicit null lexeme is acceptable
// for a declared field: always for a nilable field, never for a required
// non-nilable field (construct.CoerceScalar then raises ConversionFailure),
// and for an optional non-nilable field only when NilAsOptional is set.
func (p Policy) AcceptsNullFor(spec *schema.FieldSpec) bool {
	if spec.Nilable {
		return true
	}
	if spec.Required {
		return false
	}
	return p.NilAsOptional
}

// FieldIsImplicitlyNilable reports whether a missing declared field may be
// silently treated as nil at map finalisation, rather than raising
// RequiredFieldMissing.
func (p Policy) FieldIsImplicitlyNilable(spec *schema.FieldSpec) bool {
	if !spec.Required {
		return true
	}
	return p.AbsentAsNilable && spec.Nilable
}

// CheckUnvisitedFields is the enforcement point at close-brace: every
// remaining declared field must either be implicitly nilable or the close
// fails with RequiredFieldMissing. Accepted nilable fields are set to nil
// in node so the output always carries every declared key.
func (p Policy) CheckUnvisitedFields(pos sdjsonerr.Position, frame *construct.MapFrame) error {
	if frame.Unvisited == nil {
		return nil
	}
	for pair := frame.Unvisited.Oldest(); pair != nil; pair = pair.Next() {
		spec := pair.Value
		if !p.FieldIsImplicitlyNilable(spec) {
			return sdjsonerr.NewRequiredFieldMissing(pos, spec.DeclaredName)
		}
		frame.Node.Set(spec.DeclaredName, nil)
	}
	return nil
}

// CheckArrayOverflow is the enforcement point when an array/tuple element
// arrives at an index beyond the declared closed size.
func (p Policy) CheckArrayOverflow(pos sdjsonerr.Position, size int) error {
	if p.AllowDataProjection {
		return nil
	}
	return sdjsonerr.NewArrayTooLong(pos, size)
}

