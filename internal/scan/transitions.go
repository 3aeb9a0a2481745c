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

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/internal/introspect"
	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// step dispatches the current state to its transition function. Every
// handler is responsible for advancing past whatever characters it
// consumes; the convention throughout is that on entry to a handler m.ch
// is always the next unconsumed character.
func (m *Machine) step() (done bool, err error) {
	switch m.state {
	case stDocStart:
		return false, m.stepDocStart()
	case stDocEnd:
		return m.stepDocEnd()
	case stFirstFieldReady:
		return false, m.stepFieldReady(true)
	case stNonFirstFieldReady:
		return false, m.stepFieldReady(false)
	case stFieldName, stStringFieldValue, stStringArrayElement, stStringValue:
		return false, m.stepString()
	case stEndFieldName:
		return false, m.stepEndFieldName()
	case stFieldValueReady:
		return false, m.stepFieldValueReady()
	case stFieldEnd:
		return false, m.stepFieldEnd()
	case stNonStringFieldValue:
		return false, m.stepNonString(ctxFieldValue)
	case stNonStringArrayElement:
		return false, m.stepNonString(ctxArrayElement)
	case stNonStringValue:
		return false, m.stepNonString(ctxTopLevel)
	case stFirstArrayElementReady:
		return false, m.stepArrayElementReady(true)
	case stNonFirstArrayElementReady:
		return false, m.stepArrayElementReady(false)
	case stArrayElementEnd:
		return false, m.stepArrayElementEnd()
	case stEscapedCharacterProcessing:
		return false, m.stepEscaped()
	case stUnicodeHexProcessing:
		return false, m.stepUnicodeHex()
	default:
		return false, sdjsonerr.NewUnsupportedType("unreachable parser state")
	}
}

func (m *Machine) stepDocStart() error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewEmptyDocument(m.pos())
	}
	return m.beginValue(ctxTopLevel, m.root, "$")
}

func (m *Machine) stepDocEnd() (bool, error) {
	m.skipWhitespace()
	if m.eof {
		return true, nil
	}
	return false, sdjsonerr.NewTrailingContent(m.pos())
}

func (m *Machine) stepFieldReady(first bool) error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	if first && m.ch == '}' {
		m.advance()
		return m.finalizeMapFrame()
	}
	if m.ch != '"' {
		return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
	}
	m.advance()
	m.strCtx = ctxFieldName
	m.state = stFieldName
	return nil
}

func (m *Machine) stepEndFieldName() error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	if m.ch != ':' {
		return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
	}
	m.advance()
	m.state = stFieldValueReady
	return nil
}

func (m *Machine) stepFieldValueReady() error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	frame := m.topMap()
	m.pendingNilable = frame.CurrentNilable
	return m.beginValue(ctxFieldValue, frame.CurrentFieldET, frame.CurrentKey)
}

func (m *Machine) stepFieldEnd() error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	switch m.ch {
	case ',':
		m.advance()
		m.state = stNonFirstFieldReady
		return nil
	case '}':
		m.advance()
		return m.finalizeMapFrame()
	}
	return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
}

func (m *Machine) stepArrayElementReady(first bool) error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	af := m.topArray()
	if first && m.ch == ']' {
		m.advance()
		return m.finalizeArrayFrame()
	}
	m.pendingNilable = false
	return m.beginValue(ctxArrayElement, m.elementETFor(af), indexName(af.Index))
}

func (m *Machine) stepArrayElementEnd() error {
	m.skipWhitespace()
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	af := m.topArray()
	switch m.ch {
	case ',':
		af.Index++
		m.advance()
		m.state = stNonFirstArrayElementReady
		return nil
	case ']':
		m.advance()
		return m.finalizeArrayFrame()
	}
	return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
}

// stepString accumulates a quoted lexeme (field name, field value, array
// element, or top-level string), dispatching to the matching
// EscapedCharacterProcessing state on '\\' and finishing on the closing
// quote. Looping within one call rather than bouncing through step for
// every character is a direct compression of the equivalent per-character
// states; behavior is identical.
func (m *Machine) stepString() error {
	for {
		if m.eof {
			return sdjsonerr.NewUnexpectedEOF(m.pos())
		}
		switch m.ch {
		case '"':
			m.advance()
			return m.finishString()
		case '\\':
			m.advance()
			m.returnState = m.state
			m.state = stEscapedCharacterProcessing
			return nil
		default:
			m.lexeme.WriteRune(m.ch)
			m.advance()
		}
	}
}

func (m *Machine) stepEscaped() error {
	if m.eof {
		return sdjsonerr.NewUnexpectedEOF(m.pos())
	}
	switch m.ch {
	case '"', '\\', '/':
		m.lexeme.WriteRune(m.ch)
	case 'b':
		m.lexeme.WriteRune('\b')
	case 'f':
		m.lexeme.WriteRune('\f')
	case 'n':
		m.lexeme.WriteRune('\n')
	case 'r':
		m.lexeme.WriteRune('\r')
	case 't':
		m.lexeme.WriteRune('\t')
	case 'u':
		m.advance()
		m.hexBuf.Reset()
		m.state = stUnicodeHexProcessing
		return nil
	default:
		return sdjsonerr.NewBadEscape(m.pos(), m.ch)
	}
	m.advance()
	m.state = m.returnState
	return nil
}

func (m *Machine) stepUnicodeHex() error {
	for m.hexBuf.Len() < 4 {
		if m.eof {
			return sdjsonerr.NewUnexpectedEOF(m.pos())
		}
		if !isHexDigit(m.ch) {
			return sdjsonerr.NewBadHexEscape(m.pos(), m.hexBuf.String()+string(m.ch))
		}
		m.hexBuf.WriteRune(m.ch)
		m.advance()
	}
	v, _ := strconvParseHex(m.hexBuf.String())
	m.hexBuf.Reset()
	m.emitCodeUnit(uint16(v))
	m.state = m.returnState
	return nil
}

// emitCodeUnit implements UTF-16 surrogate-pair recombination: a high
// surrogate followed immediately by a low surrogate decodes to the
// single rune they encode. A UTF-16-native host could emit the two
// adjacent code units unvalidated; Go strings are UTF-8, so recombining
// them into one rune is the faithful equivalent here. An unpaired
// surrogate is emitted as U+FFFD rather than rejected, tolerating bad
// input without corrupting the resulting UTF-8.
func (m *Machine) emitCodeUnit(cu uint16) {
	r := rune(cu)
	switch {
	case utf16.IsSurrogate(r) && cu >= 0xD800 && cu <= 0xDBFF:
		if m.haveHighSurrogate {
			m.lexeme.WriteRune(utf8.RuneError)
		}
		m.pendingHighSurrogate = cu
		m.haveHighSurrogate = true
	case utf16.IsSurrogate(r):
		if m.haveHighSurrogate {
			combined := utf16.DecodeRune(rune(m.pendingHighSurrogate), r)
			m.lexeme.WriteRune(combined)
			m.haveHighSurrogate = false
		} else {
			m.lexeme.WriteRune(utf8.RuneError)
		}
	default:
		if m.haveHighSurrogate {
			m.lexeme.WriteRune(utf8.RuneError)
			m.haveHighSurrogate = false
		}
		m.lexeme.WriteRune(r)
	}
}

func (m *Machine) stepNonString(ctx stringContext) error {
	for !m.eof && !isValueTerminator(m.ch) {
		m.lexeme.WriteRune(m.ch)
		m.advance()
	}
	if m.lexeme.Len() == 0 {
		return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
	}
	m.strCtx = ctx
	return m.finishScalar(false)
}

func isValueTerminator(r rune) bool {
	return r == ',' || r == '}' || r == ']' || isSpace(r)
}

// finishString dispatches the just-closed quoted lexeme according to
// which of the four string contexts produced it.
func (m *Machine) finishString() error {
	if m.haveHighSurrogate {
		m.lexeme.WriteRune(utf8.RuneError)
		m.haveHighSurrogate = false
	}
	if m.strCtx == ctxFieldName {
		return m.handleFieldName()
	}
	return m.finishScalar(true)
}

// handleFieldName is the projection policy enforcement point: a wire name
// resolving to no declared field and no rest type fails unless projection
// is enabled.
func (m *Machine) handleFieldName() error {
	name := m.lexeme.String()
	m.lexeme.Reset()

	frame := m.topMap()
	var spec *schema.FieldSpec
	repeat := false
	if s, ok := frame.Visited[name]; ok {
		spec = s
		repeat = true
	} else if frame.Unvisited != nil {
		if s, ok := frame.Unvisited.Get(name); ok {
			spec = s
			frame.Unvisited.Delete(name)
			frame.Visited[name] = s
		}
	}

	var fieldET schema.Type
	var nilable bool
	switch {
	case spec != nil:
		fieldET = spec.Type
		nilable = m.policy.AcceptsNullFor(spec)
	case frame.Rest != nil:
		fieldET = *frame.Rest
	default:
		if err := m.policy.CheckUndeclaredField(m.pos(), name); err != nil {
			return err
		}
		fieldET = schema.JSONLike()
	}

	frame.CurrentKey = name
	frame.CurrentFieldET = fieldET
	frame.CurrentNilable = nilable
	frame.CurrentKeyRepeatsDeclaredField = repeat
	m.state = stEndFieldName
	return nil
}

// beginValue is the shared dispatch at FieldValueReady / array-element-
// ready / DocStart: classify the declared type (resolving union
// deferral), then branch on the first character of the value.
func (m *Machine) beginValue(ctx stringContext, declared schema.Type, name string) error {
	useET, boundary, origET, err := m.resolveChildET(declared)
	if err != nil {
		return err
	}
	switch m.ch {
	case '"':
		m.pendingET, m.pendingBoundary, m.pendingOrigET = useET, boundary, origET
		m.advance()
		m.strCtx = ctx
		m.state = stringStateFor(ctx)
		return nil
	case '{':
		return m.enterMap(ctx, useET, boundary, origET, name)
	case '[':
		return m.enterArray(ctx, useET, boundary, origET, name)
	default:
		m.pendingET, m.pendingBoundary, m.pendingOrigET = useET, boundary, origET
		m.state = nonStringStateFor(ctx)
		return nil
	}
}

func stringStateFor(ctx stringContext) stateTag {
	switch ctx {
	case ctxFieldValue:
		return stStringFieldValue
	case ctxArrayElement:
		return stStringArrayElement
	default:
		return stStringValue
	}
}

func nonStringStateFor(ctx stringContext) stateTag {
	switch ctx {
	case ctxFieldValue:
		return stNonStringFieldValue
	case ctxArrayElement:
		return stNonStringArrayElement
	default:
		return stNonStringValue
	}
}

// resolveChildET folds union deferral into the ET the machine actually
// constructs against: while already inside a union subtree everything is
// JsonLike; entering a freshly-declared union opens a new deferral.
func (m *Machine) resolveChildET(declared schema.Type) (useET schema.Type, boundary bool, origET schema.Type, err error) {
	if m.unionDepth > 0 {
		return schema.JSONLike(), false, schema.Type{}, nil
	}
	cat, resolved, err := introspect.Classify(declared)
	if err != nil {
		return schema.Type{}, false, schema.Type{}, err
	}
	if cat == schema.CategoryUnion {
		m.unionDepth++
		return schema.JSONLike(), true, resolved, nil
	}
	return resolved, false, schema.Type{}, nil
}

func (m *Machine) enterMap(ctx stringContext, useET schema.Type, boundary bool, origET schema.Type, name string) error {
	cat, resolved, err := introspect.Classify(useET)
	if err != nil {
		return err
	}
	var containerET schema.Type
	switch cat {
	case schema.CategoryRecord, schema.CategoryMap:
		containerET = resolved
	case schema.CategoryJSONLike:
		containerET = schema.Map(schema.JSONLike())
	default:
		return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
	}
	frame := construct.NewMapFrame(containerET)
	m.stack = append(m.stack, &stackEntry{name: name, et: containerET, mapFrame: frame, unionRoot: boundary, originalET: origET})
	m.advance()
	m.state = stFirstFieldReady
	return nil
}

func (m *Machine) enterArray(ctx stringContext, useET schema.Type, boundary bool, origET schema.Type, name string) error {
	cat, resolved, err := introspect.Classify(useET)
	if err != nil {
		return err
	}
	var containerET schema.Type
	switch cat {
	case schema.CategoryArray, schema.CategoryTuple:
		containerET = resolved
	case schema.CategoryJSONLike:
		containerET = schema.OpenArray(schema.JSONLike())
	default:
		return sdjsonerr.NewUnexpectedChar(m.pos(), m.state.String(), m.ch)
	}
	frame := construct.NewArrayFrame(containerET)
	m.stack = append(m.stack, &stackEntry{name: name, et: containerET, arrFrame: frame, unionRoot: boundary, originalET: origET})
	m.advance()
	m.state = stFirstArrayElementReady
	return nil
}

func (m *Machine) elementETFor(af *construct.ArrayFrame) schema.Type {
	if af.IsTuple {
		if et, ok := introspect.Nth(af.ET, af.Index); ok {
			return et
		}
		return schema.JSONLike()
	}
	return introspect.ElementOf(af.ET)
}

// finishScalar coerces the accumulated lexeme, resolves any pending
// union-fallback, and splices the result into the enclosing frame (or
// sets the root result).
func (m *Machine) finishScalar(wasQuoted bool) error {
	lexeme := m.lexeme.String()
	m.lexeme.Reset()
	v, err := construct.CoerceScalar(lexeme, wasQuoted, m.pendingET, m.pendingNilable, m.pos())
	if err != nil {
		return err
	}
	if m.pendingBoundary {
		v, err = m.fallback(v, m.policy, m.pendingOrigET)
		if err != nil {
			return err
		}
		m.unionDepth--
	}
	return m.placeValue(v)
}

func (m *Machine) finalizeMapFrame() error {
	entry := m.popStack()
	mf := entry.mapFrame
	if err := m.policy.CheckUnvisitedFields(m.pos(), mf); err != nil {
		return err
	}
	var v any = mf.Node
	if mf.ET.ReadOnly {
		v = construct.Freeze(v)
	}
	if entry.unionRoot {
		nv, err := m.fallback(v, m.policy, entry.originalET)
		if err != nil {
			return err
		}
		v = nv
		m.unionDepth--
	}
	return m.placeValue(v)
}

func (m *Machine) finalizeArrayFrame() error {
	entry := m.popStack()
	af := entry.arrFrame
	var v any = af.Node
	if af.ET.ReadOnly {
		v = construct.Freeze(v)
	}
	if entry.unionRoot {
		nv, err := m.fallback(v, m.policy, entry.originalET)
		if err != nil {
			return err
		}
		v = nv
		m.unionDepth--
	}
	return m.placeValue(v)
}

// placeValue splices v into whatever now sits on top of the stack (the
// frame was already popped by the caller for container values, or there
// never was one for a scalar), or sets the root result if the stack is
// empty.
func (m *Machine) placeValue(v any) error {
	if len(m.stack) == 0 {
		m.result = v
		m.state = stDocEnd
		return nil
	}
	parent := m.stack[len(m.stack)-1]
	if parent.mapFrame != nil {
		construct.AssignField(parent.mapFrame, parent.mapFrame.CurrentKey, v)
		m.state = stFieldEnd
		return nil
	}
	return m.placeArrayValue(parent.arrFrame, v)
}

func (m *Machine) placeArrayValue(af *construct.ArrayFrame, v any) error {
	idx := af.Index
	if af.ClosedSize >= 0 && idx >= af.ClosedSize {
		if err := m.policy.CheckArrayOverflow(m.pos(), af.ClosedSize); err != nil {
			return err
		}
	}
	construct.AppendElement(af, idx, v)
	m.state = stArrayElementEnd
	return nil
}

func (m *Machine) popStack() *stackEntry {
	entry := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return entry
}

func (m *Machine) topMap() *construct.MapFrame {
	return m.stack[len(m.stack)-1].mapFrame
}

func (m *Machine) topArray() *construct.ArrayFrame {
	return m.stack[len(m.stack)-1].arrFrame
}

func indexName(i int) string {
	return "[" + itoa(i) + "]"
}
