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

package construct

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"

	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

func TestCoerceScalarInt(t *testing.T) {
	v, err := CoerceScalar("42", false, schema.Int(64, true), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(int64), int64(42)))
}

func TestCoerceScalarIntOutOfWidth(t *testing.T) {
	_, err := CoerceScalar("300", false, schema.Int(8, true), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCoerceScalarQuotedStringRejectsBool(t *testing.T) {
	_, err := CoerceScalar("true", true, schema.Bool(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCoerceScalarNullAcceptedWhenNilable(t *testing.T) {
	v, err := CoerceScalar("null", false, schema.String(), true, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(v))
}

func TestCoerceScalarNullRejectedWhenNotNilable(t *testing.T) {
	_, err := CoerceScalar("null", false, schema.String(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCoerceScalarDecimal(t *testing.T) {
	v, err := CoerceScalar("3.14", false, schema.Decimal(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	d := v.(*apd.Decimal)
	qt.Assert(t, qt.Equals(d.String(), "3.14"))
}

func TestCoerceScalarCharStringRequiresSingleRune(t *testing.T) {
	v, err := CoerceScalar("x", true, schema.CharString(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "x"))

	_, err = CoerceScalar("xy", true, schema.CharString(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestCoerceJSONLikeInfersTypes(t *testing.T) {
	v, err := CoerceScalar("42", false, schema.JSONLike(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(int64), int64(42)))

	v, err = CoerceScalar("3.5", false, schema.JSONLike(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(float64), 3.5))

	v, err = CoerceScalar("hello", true, schema.JSONLike(), false, sdjsonerr.Position{Line: 1, Column: 1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.(string), "hello"))
}
