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

package sdjson

import "github.com/cuedata-labs/sdjson/internal/projection"

// Options configures a Parse call. The zero value is strict: no data
// projection, no constraint validation.
type Options struct {
	// Projection selects the Projection Policy. The zero value (Strict())
	// rejects undeclared fields, missing required fields and array
	// overflow outright.
	Projection ProjectionOption

	// EnableConstraintValidation runs the built-in structural checks
	// (internal/validate) over the decoded value before Parse returns.
	EnableConstraintValidation bool
}

// ProjectionOption models the bare-bool-or-sub-object allowDataProjection
// shape: a caller can allow projection with the default fine-grained
// behavior, or tune AbsentAsNilable/NilAsOptional independently.
type ProjectionOption struct {
	allow           bool
	absentAsNilable bool
	nilAsOptional   bool
}

// Strict is the zero ProjectionOption: no projection of any kind.
func Strict() ProjectionOption { return ProjectionOption{} }

// AllowProjection enables data projection with both fine-grained flags on:
// a bare "allow projection" request means project with defaults.
func AllowProjection() ProjectionOption {
	return ProjectionOption{allow: true, absentAsNilable: true, nilAsOptional: true}
}

// AllowProjectionWith enables data projection with explicit fine-grained
// flags, for callers that want projection of excess data without treating
// every missing field as implicitly nilable (or vice versa).
func AllowProjectionWith(absentAsNilable, nilAsOptional bool) ProjectionOption {
	return ProjectionOption{allow: true, absentAsNilable: absentAsNilable, nilAsOptional: nilAsOptional}
}

func (o ProjectionOption) policy() projection.Policy {
	return projection.Policy{
		AllowDataProjection: o.allow,
		AbsentAsNilable:     o.absentAsNilable,
		NilAsOptional:       o.nilAsOptional,
	}
}
