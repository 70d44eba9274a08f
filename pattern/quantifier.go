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

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// dialect selects the flavor of repetition syntax emitted for a tree.
type dialect uint8

const (
	// dialectOniguruma is the exported form consumed by TextMate grammar
	// engines: possessive repetition is spelled with a trailing +.
	dialectOniguruma dialect = iota
	// dialectLocal is the form handed to the local regexp2 engine, whose
	// .NET-style syntax has no possessive suffix: possessive repetition is
	// spelled as an atomic group around the quantified unit instead.
	dialectLocal
)

// bounds normalizes the node's repetition options. ok is false when no bound
// is set at all. A nil atMost means unbounded.
func (p *Pattern) bounds() (atLeast int, atMost *int, ok bool) {
	o := p.opts
	if o.Exactly != nil {
		n := *o.Exactly
		return n, &n, true
	}
	if o.AtLeast == nil && o.AtMost == nil {
		return 0, nil, false
	}
	atLeast = 1
	if o.AtLeast != nil {
		atLeast = *o.AtLeast
	}
	return atLeast, cloneBound(o.AtMost), true
}

// canonicalQuantifier maps bounds onto the shortest equivalent repetition
// syntax. The empty string means "exactly once": no quantifier at all.
func canonicalQuantifier(atLeast int, atMost *int) string {
	switch {
	case atMost == nil:
		switch atLeast {
		case 0:
			return "*"
		case 1:
			return "+"
		default:
			return fmt.Sprintf("{%d,}", atLeast)
		}
	case atLeast == *atMost:
		if atLeast == 1 {
			return ""
		}
		return fmt.Sprintf("{%d}", atLeast)
	case atLeast == 0 && *atMost == 1:
		return "?"
	default:
		return fmt.Sprintf("{%d,%d}", atLeast, *atMost)
	}
}

// quantify applies the node's repetition options to unit, the text the node
// has produced so far.
func (p *Pattern) quantify(unit string, d dialect) (string, error) {
	o := p.opts
	if o.DontBackTrack && o.AsFewAsPossible {
		return "", &QuantifierConflictError{Node: p.shortName(), Reason: "DontBackTrack and AsFewAsPossible are mutually exclusive"}
	}
	atLeast, atMost, has := p.bounds()
	var q string
	if has {
		if !p.kind.quantifiable() {
			return "", &QuantifierConflictError{Node: p.shortName(), Reason: p.kind.String() + " cannot carry repetition bounds"}
		}
		q = canonicalQuantifier(atLeast, atMost)
	}
	if q == "" {
		// Exactly once. The only flag with any effect is possessiveness,
		// which takes the bare atomic-group form.
		if o.DontBackTrack {
			return "(?>" + unit + ")", nil
		}
		return unit, nil
	}
	if !isSingleUnit(unit) {
		unit = "(?:" + unit + ")"
	}
	switch {
	case o.DontBackTrack:
		if d == dialectLocal {
			return "(?>" + unit + q + ")", nil
		}
		return unit + q + "+", nil
	case o.AsFewAsPossible:
		return unit + q + "?", nil
	default:
		return unit + q, nil
	}
}

// isSingleUnit reports whether s is already one atomic piece of regex - a
// single (possibly escaped) character, one character class, or one fully
// parenthesized group - and therefore safe to quantify without a
// non-capturing wrapper.
func isSingleUnit(s string) bool {
	if s == "" {
		// An empty unit still needs the wrapper: a bare dangling
		// quantifier is not a valid expression.
		return false
	}
	if utf8.RuneCountInString(s) == 1 {
		return true
	}
	if len(s) == 2 && s[0] == '\\' {
		return true
	}
	switch s[0] {
	case '[':
		return classSpan(s) == len(s)
	case '(':
		return groupSpan(s) == len(s)
	}
	return false
}

// classSpan returns the length of the character class starting at s[0], or
// -1 if it never closes.
func classSpan(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case ']':
			return i + 1
		}
	}
	return -1
}

// groupSpan returns the length of the group starting at s[0], or -1 if it
// never closes.
func groupSpan(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			span := classSpan(s[i:])
			if span < 0 {
				return -1
			}
			i += span - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// wordGuard builds the negative lookahead asserting that the word at the
// match position is none of the given literals.
func wordGuard(words []string) string {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return `(?!\b(?:` + strings.Join(escaped, "|") + `)\b)`
}
