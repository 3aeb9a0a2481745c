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

// Package sdjson is a schema-directed, streaming JSON decoder: instead of
// decoding into a fixed Go type via reflection, it consults an expected
// type (schema.Type) at every structural boundary of the document to
// decide both the output representation and the scalar coercions to
// apply, projecting, renaming and union-resolving as it goes.
package sdjson

import (
	"io"

	"github.com/cuedata-labs/sdjson/internal/scan"
	"github.com/cuedata-labs/sdjson/internal/unionfallback"
	"github.com/cuedata-labs/sdjson/internal/validate"
	"github.com/cuedata-labs/sdjson/schema"
)

// Parse decodes a single JSON document read from source against
// expectedType, applying opts. The returned value is built from
// *internal representations* (maps/arrays/scalars) that callers consume
// through the accessor methods exposed in this package's sibling files;
// see Map and Array.
//
// A *Machine is constructed fresh for this call and discarded on return;
// nothing about Parse is safe to call concurrently on a shared *io.Reader,
// but concurrent calls against independent readers and expected types
// never share state.
func Parse(source io.Reader, expectedType schema.Type, opts Options) (any, error) {
	policy := opts.Projection.policy()
	v, err := scan.Parse(source, expectedType, policy, unionfallback.Traverse)
	if err != nil {
		return nil, err
	}
	v, err = validate.Validate(v, expectedType, opts.EnableConstraintValidation)
	if err != nil {
		return nil, err
	}
	return wrap(v), nil
}
