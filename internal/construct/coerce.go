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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"

	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// CoerceScalar converts a raw lexeme into the value demanded by expected.
// nilable reports whether a null lexeme is acceptable in the field/element
// context the caller is filling, independent of expected's own scalar
// kind (a nilable Int field still accepts "null").
func CoerceScalar(lexeme string, wasQuoted bool, expected schema.Type, nilable bool, pos sdjsonerr.Position) (any, error) {
	if expected.Category == schema.CategoryJSONLike {
		return coerceJSONLike(lexeme, wasQuoted, pos)
	}
	if expected.Category != schema.CategoryScalar {
		return nil, sdjsonerr.NewConversionFailure(pos, lexeme, expected.Category)
	}

	if !wasQuoted && lexeme == "null" {
		if expected.ScalarKind == schema.KindNull || nilable {
			return nil, nil
		}
		return nil, sdjsonerr.NewConversionFailure(pos, lexeme, expected.ScalarKind)
	}

	switch expected.ScalarKind {
	case schema.KindNull:
		return nil, sdjsonerr.NewConversionFailure(pos, lexeme, expected.ScalarKind)
	case schema.KindBool:
		if wasQuoted {
			break
		}
		switch lexeme {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	case schema.KindInt:
		if wasQuoted {
			break
		}
		return coerceInt(lexeme, expected.IntWidth, expected.IntSigned, pos)
	case schema.KindFloat:
		if wasQuoted {
			break
		}
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			break
		}
		return f, nil
	case schema.KindDecimal:
		if wasQuoted {
			break
		}
		d, _, err := apd.NewFromString(lexeme)
		if err != nil {
			break
		}
		return d, nil
	case schema.KindString:
		if wasQuoted {
			return lexeme, nil
		}
	case schema.KindCharString:
		if wasQuoted && utf8.RuneCountInString(lexeme) == 1 {
			return lexeme, nil
		}
	}
	return nil, sdjsonerr.NewConversionFailure(pos, lexeme, expected.ScalarKind)
}

func coerceInt(lexeme string, width int, signed bool, pos sdjsonerr.Position) (any, error) {
	if width == 0 {
		width = 64
	}
	if signed {
		v, err := strconv.ParseInt(lexeme, 10, width)
		if err != nil {
			return nil, sdjsonerr.NewConversionFailure(pos, lexeme, schema.KindInt)
		}
		return v, nil
	}
	v, err := strconv.ParseUint(lexeme, 10, width)
	if err != nil {
		return nil, sdjsonerr.NewConversionFailure(pos, lexeme, schema.KindInt)
	}
	return v, nil
}

// coerceJSONLike infers a Go representation for a lexeme with no
// expected scalar subtype: null/bool/int-lexeme->int64/decimal-lexeme->
// float64/quoted->string.
func coerceJSONLike(lexeme string, wasQuoted bool, pos sdjsonerr.Position) (any, error) {
	if wasQuoted {
		return lexeme, nil
	}
	switch lexeme {
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if isIntLexeme(lexeme) {
		if v, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return v, nil
		}
	}
	if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
		return f, nil
	}
	return nil, sdjsonerr.NewConversionFailure(pos, lexeme, schema.CategoryJSONLike)
}

func isIntLexeme(lexeme string) bool {
	return !strings.ContainsAny(lexeme, ".eE")
}
