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

// deepClone produces a fully independent copy of the subtree: matcher,
// attributes (including patterns nested inside Includes), and the chained
// next link.
func (p *Pattern) deepClone() *Pattern {
	if p == nil {
		return nil
	}
	return &Pattern{
		kind:   p.kind,
		mkind:  p.mkind,
		text:   p.text,
		nested: p.nested.deepClone(),
		next:   p.next.deepClone(),
		opts:   p.opts.clone(),
	}
}

// Clone returns a deep copy of the tree. The copy shares nothing with the
// receiver.
func (p *Pattern) Clone() *Pattern { return p.deepClone() }

// mapAll applies fn to every node reachable via matcher nesting, chaining,
// and include entries, mutating in place. It stays private: the public
// transforms below each clone first and return the mutated clone, so no tree
// already handed to a caller is ever touched.
func (p *Pattern) mapAll(fn func(*Pattern)) {
	_ = visit(p, func(n *Pattern) error {
		fn(n)
		for _, inc := range n.opts.Includes {
			if nested, ok := inc.(*Pattern); ok {
				nested.mapAll(fn)
			}
		}
		return nil
	}, nil)
}

// TransformIncludes returns a copy of the tree with every node's include
// list rewritten through fn. Nodes without includes are untouched.
func (p *Pattern) TransformIncludes(fn func([]Include) []Include) *Pattern {
	c := p.deepClone()
	c.mapAll(func(n *Pattern) {
		if n.opts.Includes != nil {
			n.opts.Includes = fn(n.opts.Includes)
		}
	})
	return c
}

// TransformTagAs returns a copy of the tree with every non-empty TagAs
// (including those on patterns nested inside include lists) rewritten
// through fn.
func (p *Pattern) TransformTagAs(fn func(string) string) *Pattern {
	c := p.deepClone()
	c.mapAll(func(n *Pattern) {
		if n.opts.TagAs != "" {
			n.opts.TagAs = fn(n.opts.TagAs)
		}
	})
	return c
}

// StripCaptures returns a copy of the tree with TagAs and Reference removed
// from every node, so the copy evaluates to the same text with no managed
// capture groups. A node whose Includes is still non-empty would keep
// needing a group; that is an error here, because include lists have to be
// emptied (see TransformIncludes) before the captures they ride on can go.
func (p *Pattern) StripCaptures() (*Pattern, error) {
	c := p.deepClone()
	var blocked *Pattern
	c.mapAll(func(n *Pattern) {
		n.opts.TagAs = ""
		n.opts.Reference = ""
		n.opts.retainCapture = false
		if blocked == nil && n.needsCapture() {
			blocked = n
		}
	})
	if blocked != nil {
		return nil, &ConstructionError{Reason: "cannot strip captures from " + blocked.shortName() + ": its include list is not empty"}
	}
	return c, nil
}

// ReTagOptions controls ReTag. Changes is consulted first, keyed by a node's
// existing TagAs or by its Reference; KeepAll then decides the fate of tags
// the mapping does not name. Append, when set, is joined with a dot onto
// every tag that survives.
type ReTagOptions struct {
	KeepAll bool
	Append  string
	Changes map[string]string
}

// ReTag returns a copy of the tree with TagAs values selectively kept,
// replaced, or discarded according to opts. A Changes entry keyed by a
// node's Reference can attach a tag to a node that only declared a
// reference. Discarding a tag never removes the node's capture group:
// group numbering, and with it every resolved back-reference and
// $reference placeholder, is identical before and after a ReTag.
func (p *Pattern) ReTag(opts ReTagOptions) *Pattern {
	c := p.deepClone()
	c.mapAll(func(n *Pattern) {
		tag := ""
		switch {
		case n.opts.TagAs != "" && opts.Changes[n.opts.TagAs] != "":
			tag = opts.Changes[n.opts.TagAs]
		case n.opts.Reference != "" && opts.Changes[n.opts.Reference] != "":
			tag = opts.Changes[n.opts.Reference]
		case opts.KeepAll:
			tag = n.opts.TagAs
		}
		if tag != "" && opts.Append != "" {
			tag += "." + opts.Append
		}
		if tag == "" && n.opts.TagAs != "" {
			n.opts.retainCapture = true
		}
		n.opts.TagAs = tag
	})
	return c
}
