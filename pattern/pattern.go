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
	"slices"
)

// Raw marks a string as an already-written regex fragment. It is emitted
// verbatim during evaluation, unlike a plain string, which is escaped. A raw
// fragment must not contain capture groups of its own; construction fails if
// it does, because unmanaged groups would desynchronize group numbering.
type Raw string

// Include is one entry of Options.Includes: a *Pattern (converted to an
// inline rule), an IncludeRef (a named rule in the enclosing grammar's
// repository, or one of the reserved Self/Base symbols), or a plain string
// addressing a foreign grammar scope (for example "source.c"), which is
// passed through verbatim and never validated here.
type Include any

// IncludeRef names a rule in the enclosing grammar's repository.
type IncludeRef string

// Reserved include symbols understood by TextMate grammar engines.
const (
	Self IncludeRef = "$self"
	Base IncludeRef = "$base"
)

// Kind identifies how a node evaluates itself and integrates with the chain
// it sits in. The set is closed: behavior differences between kinds are
// dispatched by switching on Kind, not by subtyping.
type Kind uint8

const (
	// KindMatch is an ordinary unit combined with its predecessor by
	// concatenation.
	KindMatch Kind = iota
	// KindOr merges into its predecessor's unit as an alternative instead of
	// concatenating after it.
	KindOr
	// Lookarounds assert without consuming. They cannot be quantified.
	KindLookAhead
	KindLookAheadNot
	KindLookBehind
	KindLookBehindNot
)

func (k Kind) quantifiable() bool {
	switch k {
	case KindLookAhead, KindLookAheadNot, KindLookBehind, KindLookBehindNot:
		return false
	default:
		return true
	}
}

func (k Kind) String() string {
	switch k {
	case KindMatch:
		return "match"
	case KindOr:
		return "or"
	case KindLookAhead:
		return "lookAheadFor"
	case KindLookAheadNot:
		return "lookAheadToAvoid"
	case KindLookBehind:
		return "lookBehindFor"
	case KindLookBehindNot:
		return "lookBehindToAvoid"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Options carries everything about a node other than its matcher.
//
// A node needs a capture group exactly when TagAs, Reference, or Includes is
// set. Repetition bounds use pointers so that an explicit zero lower bound
// (as in {0,1}) is distinguishable from an absent one; Bound is a shorthand
// for taking the address of a literal.
type Options struct {
	// TagAs is the semantic scope name attached to this node's capture group.
	// It may contain the placeholders $match (this node's own group number)
	// and $reference(name) (the group number of the node declaring that
	// reference); both are rewritten to $<number> when the rule is built.
	TagAs string

	// Reference names this node's capture group so that MatchResultOf and
	// RecursivelyMatch placeholders, and $reference(...) tag placeholders,
	// can point back to it.
	Reference string

	// Includes lists the sub-rules attached to this node's capture group.
	Includes []Include

	// Example strings checked by RunTests. Fully-match categories anchor the
	// node's own matcher at both ends; partially-match categories do not.
	ShouldFullyMatch        []string
	ShouldNotFullyMatch     []string
	ShouldPartiallyMatch    []string
	ShouldNotPartiallyMatch []string

	// Repetition bounds. A nil AtMost with a non-nil AtLeast means unbounded.
	// When any bound is present, an absent AtLeast defaults to 1. Exactly
	// sets both bounds to the same value and overrides the other two.
	AtLeast *int
	AtMost  *int
	Exactly *int

	// DontBackTrack makes the unit possessive: with bounds it appends + to
	// the quantifier, without bounds it wraps the unit in an atomic group.
	// Mutually exclusive with AsFewAsPossible.
	DontBackTrack bool

	// AsFewAsPossible makes a bounded quantifier lazy.
	AsFewAsPossible bool

	// WordCannotBeAnyOf prefixes the unit with a negative lookahead asserting
	// that the word at the match position is none of the listed literals.
	// Advisory only: it narrows what may match but contributes no group.
	WordCannotBeAnyOf []string

	// Extra holds options contributed by installed plugins. The core carries
	// them through clones and displays them via the plugin registry, but
	// attaches no meaning to them.
	Extra map[string]any

	// retainCapture keeps the node's capture group alive after ReTag
	// discards its tag, so re-tagging never renumbers groups.
	retainCapture bool
}

// Bound returns a pointer to n, for filling Options.AtLeast, AtMost, and
// Exactly from literals.
func Bound(n int) *int { return &n }

func (o Options) clone() Options {
	c := o
	c.AtLeast = cloneBound(o.AtLeast)
	c.AtMost = cloneBound(o.AtMost)
	c.Exactly = cloneBound(o.Exactly)
	c.ShouldFullyMatch = slices.Clone(o.ShouldFullyMatch)
	c.ShouldNotFullyMatch = slices.Clone(o.ShouldNotFullyMatch)
	c.ShouldPartiallyMatch = slices.Clone(o.ShouldPartiallyMatch)
	c.ShouldNotPartiallyMatch = slices.Clone(o.ShouldNotPartiallyMatch)
	c.WordCannotBeAnyOf = slices.Clone(o.WordCannotBeAnyOf)
	if o.Includes != nil {
		c.Includes = make([]Include, len(o.Includes))
		for i, inc := range o.Includes {
			if nested, ok := inc.(*Pattern); ok {
				c.Includes[i] = nested.deepClone()
			} else {
				c.Includes[i] = inc
			}
		}
	}
	if o.Extra != nil {
		c.Extra = make(map[string]any, len(o.Extra))
		for k, v := range o.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

func cloneBound(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

type matcherKind uint8

const (
	matcherLiteral matcherKind = iota
	matcherRaw
	matcherNested
)

// Pattern is one matching unit in a chain. The zero value is not usable;
// build Patterns with New or the convenience constructors.
//
// A Pattern exclusively owns its nested matcher and its next link. Every
// public operation that shapes a tree returns a new deep-cloned tree and
// leaves the receiver untouched.
type Pattern struct {
	kind   Kind
	mkind  matcherKind
	text   string   // literal or raw fragment source
	nested *Pattern // set when mkind == matcherNested
	next   *Pattern
	opts   Options
}

// New builds a single-node Pattern from a matcher, which must be a string
// (matched literally), a Raw fragment, or a *Pattern (cloned and nested).
// At most one Options value may be supplied.
func New(matcher any, opts ...Options) (*Pattern, error) {
	if len(opts) > 1 {
		return nil, &ConstructionError{Reason: fmt.Sprintf("expected at most one Options value, got %d", len(opts))}
	}
	var o Options
	if len(opts) == 1 {
		o = opts[0]
	}
	if o.DontBackTrack && o.AsFewAsPossible {
		return nil, &QuantifierConflictError{Reason: "DontBackTrack and AsFewAsPossible are mutually exclusive"}
	}
	p := &Pattern{kind: KindMatch, opts: o.clone()}
	switch m := matcher.(type) {
	case string:
		p.mkind = matcherLiteral
		p.text = m
	case Raw:
		if err := checkRawFragment(string(m)); err != nil {
			return nil, err
		}
		p.mkind = matcherRaw
		p.text = string(m)
	case *Pattern:
		if m == nil {
			return nil, &ConstructionError{Reason: "matcher must not be nil"}
		}
		p.mkind = matcherNested
		p.nested = m.deepClone()
	case nil:
		return nil, &ConstructionError{Reason: "matcher must not be nil"}
	default:
		return nil, &ConstructionError{Reason: fmt.Sprintf("unsupported matcher type %T (want string, Raw, or *Pattern)", matcher)}
	}
	return p, nil
}

// Must unwraps a (Pattern, error) pair, panicking on error. Construction
// errors are programmer errors, so chains built from literals conventionally
// go through Must and Then rather than threading errors.
func Must(p *Pattern, err error) *Pattern {
	if err != nil {
		panic(err)
	}
	return p
}

// coerce turns an Append/Or/Then argument into an owned single chain.
func coerce(v any) (*Pattern, error) {
	switch m := v.(type) {
	case *Pattern:
		if m == nil {
			return nil, &ConstructionError{Reason: "cannot append a nil pattern"}
		}
		return m.deepClone(), nil
	default:
		return New(v)
	}
}

// Append returns a new chain with v (coerced into a Pattern if it is a
// string or Raw) placed after the current last element. The receiver is
// unchanged.
func (p *Pattern) Append(v any) (*Pattern, error) {
	add, err := coerce(v)
	if err != nil {
		return nil, err
	}
	c := p.deepClone()
	c.last().next = add
	return c, nil
}

// Then is Append for statically-known-good arguments; it panics where Append
// would return an error.
func (p *Pattern) Then(v any) *Pattern {
	return Must(p.Append(v))
}

// Or returns a new chain extended with an alternative: the appended node
// merges into the text accumulated so far as (?:previous|v) instead of
// concatenating after it.
func (p *Pattern) Or(v any, opts ...Options) (*Pattern, error) {
	if len(opts) > 1 {
		return nil, &ConstructionError{Reason: fmt.Sprintf("expected at most one Options value, got %d", len(opts))}
	}
	alt, err := coerce(v)
	if err != nil {
		return nil, err
	}
	node := &Pattern{kind: KindOr, mkind: matcherNested, nested: alt}
	if len(opts) == 1 {
		if opts[0].DontBackTrack && opts[0].AsFewAsPossible {
			return nil, &QuantifierConflictError{Reason: "DontBackTrack and AsFewAsPossible are mutually exclusive"}
		}
		node.opts = opts[0].clone()
	}
	c := p.deepClone()
	c.last().next = node
	return c, nil
}

func (p *Pattern) last() *Pattern {
	last := p
	for last.next != nil {
		last = last.next
	}
	return last
}

// needsCapture reports whether evaluation must wrap this node's unit in a
// capture group.
func (p *Pattern) needsCapture() bool {
	return p.opts.TagAs != "" || p.opts.Reference != "" || len(p.opts.Includes) > 0 || p.opts.retainCapture
}

// startNumber is the first group number handed to CollectGroups: 0 when the
// outer-group optimization applies at this root (the node needs a capture
// and ends its chain, so its group folds into the whole-match group), else 1.
func (p *Pattern) startNumber() int {
	if p.needsCapture() && p.next == nil {
		return 0
	}
	return 1
}

// TagAs returns the node's semantic scope name, if any.
func (p *Pattern) TagAs() string { return p.opts.TagAs }

// Reference returns the name other nodes may use to point back at this
// node's capture group, if any.
func (p *Pattern) Reference() string { return p.opts.Reference }

// Includes returns the node's include entries. The returned slice must not
// be mutated.
func (p *Pattern) Includes() []Include { return p.opts.Includes }

// Next returns the following node in this chain, or nil.
func (p *Pattern) Next() *Pattern { return p.next }

// Nested returns the node's nested matcher when it is itself a Pattern.
func (p *Pattern) Nested() *Pattern { return p.nested }

// Walk invokes enter and exit over every node reachable from p in the
// canonical traversal order that group numbering, text emission, and
// reference resolution all share: enter self, descend into a nested matcher,
// exit self, then continue to the next link. Either callback may be nil.
// Nodes inside Includes are separate rules and are not visited.
func (p *Pattern) Walk(enter, exit func(*Pattern) error) error {
	return visit(p, enter, exit)
}

// visit is the one canonical-order traversal in this package. Everything
// that has to agree on group numbers derives from it.
func visit(p *Pattern, enter, exit func(*Pattern) error) error {
	for ; p != nil; p = p.next {
		if enter != nil {
			if err := enter(p); err != nil {
				return err
			}
		}
		if p.mkind == matcherNested {
			if err := visit(p.nested, enter, exit); err != nil {
				return err
			}
		}
		if exit != nil {
			if err := exit(p); err != nil {
				return err
			}
		}
	}
	return nil
}
