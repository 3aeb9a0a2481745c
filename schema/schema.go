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

// Package schema defines the expected-type (ET) descriptors that drive the
// sdjson parser. An ET tells the parser, at every structural boundary in the
// document, which container to build and which scalar subtype a lexeme must
// coerce into.
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Category is the parser's dispatch tag for a Type. classify in
// internal/introspect reduces a Type to one of these.
type Category int

const (
	CategoryRecord Category = iota
	CategoryMap
	CategoryArray
	CategoryTuple
	CategoryScalar
	CategoryUnion
	CategoryIntersection
	CategoryJSONLike
	CategoryReference
)

func (c Category) String() string {
	switch c {
	case CategoryRecord:
		return "record"
	case CategoryMap:
		return "map"
	case CategoryArray:
		return "array"
	case CategoryTuple:
		return "tuple"
	case CategoryScalar:
		return "scalar"
	case CategoryUnion:
		return "union"
	case CategoryIntersection:
		return "intersection"
	case CategoryJSONLike:
		return "jsonLike"
	case CategoryReference:
		return "reference"
	default:
		return "unknown"
	}
}

// ScalarKind is the subtype a Scalar ET coerces lexemes into.
type ScalarKind int

const (
	KindNull ScalarKind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindCharString
)

func (k ScalarKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindCharString:
		return "charString"
	default:
		return "unknown"
	}
}

// ArrayShape says whether an Array ET accepts any number of elements or
// is bounded to a declared size.
type ArrayShape int

const (
	ShapeOpen ArrayShape = iota
	ShapeClosed
)

// FieldSpec is one declared field of a Record.
type FieldSpec struct {
	// DeclaredName is the name used when placing the decoded value into
	// the output container.
	DeclaredName string
	// WireName is the name this field is keyed under in fieldsOf's
	// returned mapping; it differs from DeclaredName only when the field
	// carries a rename annotation.
	WireName string
	Type     Type
	Required bool
	Nilable  bool
}

// Fields is an insertion-ordered wire-name -> FieldSpec mapping. Ordering
// is preserved so fieldsOf enumerates fields in declaration order and the
// projection sweep over unvisited fields is deterministic.
type Fields = orderedmap.OrderedMap[string, *FieldSpec]

// NewFields builds a Fields map from a declaration-ordered slice, keyed by
// each field's WireName.
func NewFields(specs ...*FieldSpec) *Fields {
	f := orderedmap.New[string, *FieldSpec]()
	for _, s := range specs {
		f.Set(s.WireName, s)
	}
	return f
}

// Type is the tagged-variant Expected Type (ET). Exactly one of the
// category-specific fields is meaningful, selected by Category.
type Type struct {
	Category Category

	// CategoryRecord
	Fields *Fields
	Rest   *Type // nil if the record forbids undeclared keys

	// CategoryMap
	Value *Type

	// CategoryArray
	Element *Type
	Shape   ArrayShape
	Size    int // meaningful when Shape == ShapeClosed

	// CategoryTuple
	Elements []Type

	// CategoryScalar
	ScalarKind ScalarKind
	IntWidth   int // 8, 16, 32, 64; 0 means platform-default (64)
	IntSigned  bool

	// CategoryUnion / CategoryIntersection
	Members   []Type
	Effective *Type // CategoryIntersection only

	// Reference: when non-nil this Type is an alias that dereferences to
	// *Ref before classification.
	Ref *Type

	// ReadOnly marks that values built against this ET must be frozen
	// (deep-immutable) at finalisation. Only meaningful in combination
	// with CategoryRecord, CategoryArray, CategoryTuple, CategoryMap or
	// as the Effective member of a CategoryIntersection.
	ReadOnly bool
}

// Convenience constructors. These exist because Type is a flat struct
// rather than a set of concrete variant types; callers building ETs by
// hand (schemaload, tests) should prefer these over struct literals.

func Null() Type   { return Type{Category: CategoryScalar, ScalarKind: KindNull} }
func Bool() Type   { return Type{Category: CategoryScalar, ScalarKind: KindBool} }
func Float() Type  { return Type{Category: CategoryScalar, ScalarKind: KindFloat} }
func String() Type { return Type{Category: CategoryScalar, ScalarKind: KindString} }

func CharString() Type {
	return Type{Category: CategoryScalar, ScalarKind: KindCharString}
}

func Decimal() Type {
	return Type{Category: CategoryScalar, ScalarKind: KindDecimal}
}

func Int(width int, signed bool) Type {
	return Type{Category: CategoryScalar, ScalarKind: KindInt, IntWidth: width, IntSigned: signed}
}

func JSONLike() Type { return Type{Category: CategoryJSONLike} }

func Record(fields *Fields, rest *Type) Type {
	return Type{Category: CategoryRecord, Fields: fields, Rest: rest}
}

func Map(value Type) Type {
	return Type{Category: CategoryMap, Value: &value}
}

func OpenArray(element Type) Type {
	return Type{Category: CategoryArray, Element: &element, Shape: ShapeOpen}
}

func ClosedArray(element Type, size int) Type {
	return Type{Category: CategoryArray, Element: &element, Shape: ShapeClosed, Size: size}
}

func Tuple(elements ...Type) Type {
	return Type{Category: CategoryTuple, Elements: elements}
}

func Union(members ...Type) Type {
	return Type{Category: CategoryUnion, Members: members}
}

// ReadOnlyIntersection builds an Intersection ET whose effective type is
// the given (already readonly-capable) type. classify rejects any
// Intersection whose effective member is not itself marked ReadOnly.
func ReadOnlyIntersection(effective Type, members ...Type) Type {
	effective.ReadOnly = true
	return Type{Category: CategoryIntersection, Members: members, Effective: &effective}
}

func Reference(target Type) Type {
	return Type{Category: CategoryReference, Ref: &target}
}
