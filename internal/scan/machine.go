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

// Package scan is the state machine: a character-by-character
// driver over a CharSource that maintains the parser context stack, the
// expected-type stack (folded into each stack entry), the lexeme buffer,
// and the union-depth counter, dispatching to the Type Introspector, the
// Value Constructor and the Projection Policy at every structural event.
package scan

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/cuedata-labs/sdjson/internal/construct"
	"github.com/cuedata-labs/sdjson/internal/projection"
	"github.com/cuedata-labs/sdjson/schema"
	"github.com/cuedata-labs/sdjson/sdjsonerr"
)

// UnionFallback is the union-fallback collaborator: invoked at the
// boundary of every completed union subtree with the generic value
// the machine buffered while unionDepth was positive.
type UnionFallback func(value any, policy projection.Policy, unionET schema.Type) (any, error)

// stackEntry is one frame of the parser context stack. The expected-type
// stack and the field-name hierarchy are not separate slices: both are
// folded into this struct (et, name) because every push/pop of a frame
// pushes/pops them in the same breath, which is what the parser's depth-
// parity invariant actually requires: keeping three independently
// managed slices in lockstep by convention is strictly more error-prone
// than making the lockstep structural.
type stackEntry struct {
	name string
	et   schema.Type

	mapFrame *construct.MapFrame
	arrFrame *construct.ArrayFrame

	// unionRoot marks that et was classified from a Union at the point
	// this frame was pushed; originalET is that Union, passed to
	// UnionFallback when the frame finalises.
	unionRoot  bool
	originalET schema.Type
}

// Machine is the character-driven parser. It is built fresh per parse by
// Parse; nothing about it is safe for concurrent use.
type Machine struct {
	r *bufio.Reader

	ch   rune
	eof  bool
	line int
	col  int

	state       stateTag
	returnState stateTag
	strCtx      stringContext

	lexeme strings.Builder
	hexBuf strings.Builder

	pendingHighSurrogate uint16
	haveHighSurrogate    bool

	stack      []*stackEntry
	unionDepth int

	policy   projection.Policy
	fallback UnionFallback

	pendingET       schema.Type
	pendingBoundary bool
	pendingOrigET   schema.Type
	pendingNilable  bool

	root   schema.Type
	result any
}

// Parse runs the state machine to completion and returns the decoded
// root value, or the first terminal error encountered: all errors are
// terminal, none locally recovered.
func Parse(src CharSource, root schema.Type, policy projection.Policy, fallback UnionFallback) (any, error) {
	m := &Machine{
		r:        bufio.NewReaderSize(src, bufferSize),
		line:     1,
		policy:   policy,
		fallback: fallback,
		root:     root,
		state:    stDocStart,
	}
	m.advance()
	for {
		done, err := m.step()
		if err != nil {
			return nil, err
		}
		if done {
			return m.result, nil
		}
	}
}

// advance reads the next rune from the underlying reader, tracking line
// and column; positions are 1-based line/column pairs. EOF is modelled
// as m.eof = true rather than surfaced as an error here; every caller
// that cares checks m.eof explicitly at the point it needs a character,
// keeping to a strict read-ahead-by-one discipline.
func (m *Machine) advance() {
	if m.ch == '\n' {
		m.line++
		m.col = 0
	}
	r, _, err := m.r.ReadRune()
	if err != nil {
		m.eof = true
		m.ch = 0
		return
	}
	m.ch = r
	m.col++
}

func (m *Machine) pos() sdjsonerr.Position {
	return sdjsonerr.Position{Line: m.line, Column: m.col}
}

func (m *Machine) skipWhitespace() {
	for !m.eof && isSpace(m.ch) {
		m.advance()
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func strconvParseHex(s string) (uint64, error) {
	return strconv.ParseUint(s, 16, 32)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
