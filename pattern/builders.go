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

import "fmt"

// Maybe matches its argument zero or one time.
func Maybe(matcher any, opts ...Options) (*Pattern, error) {
	return quantified(matcher, opts, Bound(0), Bound(1))
}

// ZeroOrMoreOf matches its argument any number of times, including none.
func ZeroOrMoreOf(matcher any, opts ...Options) (*Pattern, error) {
	return quantified(matcher, opts, Bound(0), nil)
}

// OneOrMoreOf matches its argument one or more times.
func OneOrMoreOf(matcher any, opts ...Options) (*Pattern, error) {
	return quantified(matcher, opts, Bound(1), nil)
}

func quantified(matcher any, opts []Options, atLeast, atMost *int) (*Pattern, error) {
	if len(opts) > 1 {
		return nil, &ConstructionError{Reason: fmt.Sprintf("expected at most one Options value, got %d", len(opts))}
	}
	var o Options
	if len(opts) == 1 {
		o = opts[0]
	}
	if o.AtLeast != nil || o.AtMost != nil || o.Exactly != nil {
		return nil, &ConstructionError{Reason: "repetition bounds are implied by this constructor and cannot be overridden"}
	}
	o.AtLeast, o.AtMost = atLeast, atMost
	return New(matcher, o)
}

// OneOf matches exactly one of the given choices, tried in order. Each
// choice may be a string, Raw, or *Pattern; choices that carry tags or
// references keep their capture groups.
func OneOf(choices ...any) (*Pattern, error) {
	if len(choices) == 0 {
		return nil, &ConstructionError{Reason: "OneOf needs at least one choice"}
	}
	chain, err := coerce(choices[0])
	if err != nil {
		return nil, err
	}
	for _, choice := range choices[1:] {
		chain, err = chain.Or(choice)
		if err != nil {
			return nil, err
		}
	}
	return New(chain)
}

func lookaround(kind Kind, matcher any, opts []Options) (*Pattern, error) {
	if len(opts) > 1 {
		return nil, &ConstructionError{Reason: fmt.Sprintf("expected at most one Options value, got %d", len(opts))}
	}
	var o Options
	if len(opts) == 1 {
		o = opts[0]
	}
	if o.AtLeast != nil || o.AtMost != nil || o.Exactly != nil {
		return nil, &QuantifierConflictError{Node: kind.String(), Reason: kind.String() + " cannot carry repetition bounds"}
	}
	p, err := New(matcher, o)
	if err != nil {
		return nil, err
	}
	p.kind = kind
	return p, nil
}

// LookAheadFor asserts that its argument matches at the current position,
// without consuming anything.
func LookAheadFor(matcher any, opts ...Options) (*Pattern, error) {
	return lookaround(KindLookAhead, matcher, opts)
}

// LookAheadToAvoid asserts that its argument does not match at the current
// position.
func LookAheadToAvoid(matcher any, opts ...Options) (*Pattern, error) {
	return lookaround(KindLookAheadNot, matcher, opts)
}

// LookBehindFor asserts that its argument matches immediately before the
// current position.
func LookBehindFor(matcher any, opts ...Options) (*Pattern, error) {
	return lookaround(KindLookBehind, matcher, opts)
}

// LookBehindToAvoid asserts that its argument does not match immediately
// before the current position.
func LookBehindToAvoid(matcher any, opts ...Options) (*Pattern, error) {
	return lookaround(KindLookBehindNot, matcher, opts)
}

// MatchResultOf matches the same text a previously matched group did: a
// named back-reference to the node declaring Reference: name. The name is
// rewritten to a numeric back-reference at the top-level evaluate, once
// group numbers are known.
func MatchResultOf(name string) *Pattern {
	return &Pattern{kind: KindMatch, mkind: matcherRaw, text: backreferencePlaceholder(name)}
}

// RecursivelyMatch re-invokes the pattern of the group declaring Reference:
// name, as a fresh sub-match (a subroutine call). Resolved alongside
// MatchResultOf at the top-level evaluate.
func RecursivelyMatch(name string) *Pattern {
	return &Pattern{kind: KindMatch, mkind: matcherRaw, text: subroutinePlaceholder(name)}
}
