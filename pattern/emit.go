// Copyright 2024-2026 The cpp-textmate-grammar Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pattern

import "regexp"

// emitter accumulates regex text during the emission pass. Unit and chain
// marks are stacks of offsets into buf: the traversal pushes and pops them
// symmetrically, so the top always describes the innermost open unit and the
// start of the chain currently being emitted.
type emitter struct {
	buf        []byte
	unitMarks  []int
	chainMarks []int
	dialect    dialect
}

func (e *emitter) write(s string) { e.buf = append(e.buf, s...) }

// Evaluate produces the regex source for this node and everything reachable
// from it, numbering groups and resolving named back-reference and
// subroutine placeholders to their numeric forms.
func (p *Pattern) Evaluate() (string, error) {
	groups := p.CollectGroups(p.startNumber())
	return p.evaluateWith(groups, dialectOniguruma)
}

// evaluateWith is the nested-call form of evaluation: the group table is the
// caller's, and reference resolution runs over the finished text exactly
// once, here at the top. The emission pass and CollectGroups both derive
// from the same visit primitive, so the parentheses this writes and the
// numbers the table assigns always line up.
func (p *Pattern) evaluateWith(groups []GroupInfo, d dialect) (string, error) {
	e := &emitter{dialect: d}
	e.chainMarks = append(e.chainMarks, 0)
	err := visit(p, e.enter, e.exit)
	if err != nil {
		return "", err
	}
	return resolveReferences(string(e.buf), groups)
}

func (e *emitter) enter(n *Pattern) error {
	e.unitMarks = append(e.unitMarks, len(e.buf))
	switch n.mkind {
	case matcherLiteral:
		e.write(regexp.QuoteMeta(n.text))
	case matcherRaw:
		e.write(n.text)
	case matcherNested:
		// The nested chain starts here; its own alternatives must not
		// reach back past this point.
		e.chainMarks = append(e.chainMarks, len(e.buf))
	}
	return nil
}

func (e *emitter) exit(n *Pattern) error {
	if n.mkind == matcherNested {
		e.chainMarks = e.chainMarks[:len(e.chainMarks)-1]
	}
	mark := e.unitMarks[len(e.unitMarks)-1]
	e.unitMarks = e.unitMarks[:len(e.unitMarks)-1]

	unit, err := n.renderUnit(string(e.buf[mark:]), e.dialect)
	if err != nil {
		return err
	}
	if n.kind == KindOr {
		chainStart := e.chainMarks[len(e.chainMarks)-1]
		if before := string(e.buf[chainStart:mark]); before != "" {
			e.buf = append(e.buf[:chainStart], "(?:"+before+"|"+unit+")"...)
			return nil
		}
	}
	e.buf = append(e.buf[:mark], unit...)
	return nil
}

// renderUnit finishes one node's text: the kind's wrapper, the repetition
// options, the word guard, and finally the capture group when the node needs
// one. The capture parenthesis therefore encloses everything the node
// contributes, which keeps its string position consistent with the pre-order
// group number the node was assigned.
func (p *Pattern) renderUnit(unit string, d dialect) (string, error) {
	switch p.kind {
	case KindLookAhead:
		unit = "(?=" + unit + ")"
	case KindLookAheadNot:
		unit = "(?!" + unit + ")"
	case KindLookBehind:
		unit = "(?<=" + unit + ")"
	case KindLookBehindNot:
		unit = "(?<!" + unit + ")"
	}
	unit, err := p.quantify(unit, d)
	if err != nil {
		return "", err
	}
	if len(p.opts.WordCannotBeAnyOf) > 0 {
		unit = wordGuard(p.opts.WordCannotBeAnyOf) + unit
	}
	if p.needsCapture() {
		unit = "(" + unit + ")"
	}
	return unit, nil
}
