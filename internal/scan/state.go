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

package scan

// stateTag is the parser's state as a tagged variant rather than a class
// hierarchy: escape and hex-escape processing share one transition
// function apiece and carry the state they return to in
// Machine.returnState instead of existing as four separate subclasses
// per string context.
type stateTag int

const (
	stDocStart stateTag = iota
	stDocEnd

	stFirstFieldReady
	stNonFirstFieldReady
	stFieldName
	stEndFieldName
	stFieldValueReady
	stFieldEnd

	stStringFieldValue
	stNonStringFieldValue

	stFirstArrayElementReady
	stNonFirstArrayElementReady
	stStringArrayElement
	stNonStringArrayElement
	stArrayElementEnd

	stStringValue
	stNonStringValue

	stEscapedCharacterProcessing
	stUnicodeHexProcessing
)

func (s stateTag) String() string {
	switch s {
	case stDocStart:
		return "DocStart"
	case stDocEnd:
		return "DocEnd"
	case stFirstFieldReady:
		return "FirstFieldReady"
	case stNonFirstFieldReady:
		return "NonFirstFieldReady"
	case stFieldName:
		return "FieldName"
	case stEndFieldName:
		return "EndFieldName"
	case stFieldValueReady:
		return "FieldValueReady"
	case stFieldEnd:
		return "FieldEnd"
	case stStringFieldValue:
		return "StringFieldValue"
	case stNonStringFieldValue:
		return "NonStringFieldValue"
	case stFirstArrayElementReady:
		return "FirstArrayElementReady"
	case stNonFirstArrayElementReady:
		return "NonFirstArrayElementReady"
	case stStringArrayElement:
		return "StringArrayElement"
	case stNonStringArrayElement:
		return "NonStringArrayElement"
	case stArrayElementEnd:
		return "ArrayElementEnd"
	case stStringValue:
		return "StringValue"
	case stNonStringValue:
		return "NonStringValue"
	case stEscapedCharacterProcessing:
		return "EscapedCharacterProcessing"
	case stUnicodeHexProcessing:
		return "UnicodeHexProcessing"
	default:
		return "Unknown"
	}
}

// stringContext tags which of the four string-bearing positions a
// String/Escaped/UnicodeHex state belongs to: they differ only in the
// return state after consuming the escape.
type stringContext int

const (
	ctxFieldName stringContext = iota
	ctxFieldValue
	ctxArrayElement
	ctxTopLevel
)
