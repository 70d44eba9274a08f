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
	"strconv"
	"strings"

	"github.com/lianghongkey/cpp-textmate-grammar/plugin"
)

// shortName identifies a node in diagnostics: its tag when it has one,
// otherwise its matcher source.
func (p *Pattern) shortName() string {
	if p.opts.TagAs != "" {
		return "pattern tagged " + strconv.Quote(p.opts.TagAs)
	}
	if p.opts.Reference != "" {
		return "pattern referenced as " + strconv.Quote(p.opts.Reference)
	}
	switch p.mkind {
	case matcherNested:
		return "nested " + p.kind.String() + " pattern"
	default:
		return "pattern /" + p.text + "/"
	}
}

// OptionsMap flattens the node's options into the map form handed to plugin
// hooks: recognized option names to values, with plugin-contributed extras
// merged in. Zero-valued options are omitted.
func (p *Pattern) OptionsMap() map[string]any {
	o := p.opts
	m := make(map[string]any)
	put := func(k string, v any) {
		switch val := v.(type) {
		case string:
			if val != "" {
				m[k] = val
			}
		case []string:
			if len(val) > 0 {
				m[k] = val
			}
		case []Include:
			if len(val) > 0 {
				m[k] = val
			}
		case *int:
			if val != nil {
				m[k] = *val
			}
		case bool:
			if val {
				m[k] = val
			}
		}
	}
	put("tag_as", o.TagAs)
	put("reference", o.Reference)
	put("includes", o.Includes)
	put("should_fully_match", o.ShouldFullyMatch)
	put("should_not_fully_match", o.ShouldNotFullyMatch)
	put("should_partially_match", o.ShouldPartiallyMatch)
	put("should_not_partially_match", o.ShouldNotPartiallyMatch)
	put("at_least", o.AtLeast)
	put("at_most", o.AtMost)
	put("how_many_times", o.Exactly)
	put("dont_back_track", o.DontBackTrack)
	put("as_few_as_possible", o.AsFewAsPossible)
	put("word_cannot_be_any_of", o.WordCannotBeAnyOf)
	for k, v := range o.Extra {
		m[k] = v
	}
	return m
}

// String reproduces an approximate builder-call form of the tree, for
// debugging. Installed plugins contribute display lines for the options they
// recognize.
func (p *Pattern) String() string {
	var b strings.Builder
	for n, first := p, true; n != nil; n, first = n.next, false {
		if !first {
			if n.kind == KindOr {
				b.WriteString(".Or(")
			} else {
				b.WriteString(".Then(")
			}
			n.writeCall(&b, "    ")
			b.WriteString(")")
		} else {
			b.WriteString(constructorName(n.kind) + "(")
			n.writeCall(&b, "    ")
			b.WriteString(")")
		}
	}
	return b.String()
}

func constructorName(k Kind) string {
	switch k {
	case KindLookAhead:
		return "pattern.LookAheadFor"
	case KindLookAheadNot:
		return "pattern.LookAheadToAvoid"
	case KindLookBehind:
		return "pattern.LookBehindFor"
	case KindLookBehindNot:
		return "pattern.LookBehindToAvoid"
	default:
		return "pattern.New"
	}
}

func (p *Pattern) writeCall(b *strings.Builder, indent string) {
	switch p.mkind {
	case matcherLiteral:
		fmt.Fprintf(b, "%q", p.text)
	case matcherRaw:
		fmt.Fprintf(b, "pattern.Raw(`%s`)", p.text)
	case matcherNested:
		b.WriteString(p.nested.String())
	}
	opts := p.displayOptions(indent)
	if opts != "" {
		b.WriteString(", pattern.Options{\n")
		b.WriteString(opts)
		b.WriteString("}")
	}
}

func (p *Pattern) displayOptions(indent string) string {
	var b strings.Builder
	m := p.OptionsMap()
	for _, k := range []string{"tag_as", "reference", "at_least", "at_most", "how_many_times", "dont_back_track", "as_few_as_possible", "word_cannot_be_any_of"} {
		if v, ok := m[k]; ok {
			fmt.Fprintf(&b, "%s%s: %v,\n", indent, k, v)
		}
	}
	if _, ok := m["includes"]; ok {
		fmt.Fprintf(&b, "%sincludes: (%d entries),\n", indent, len(p.opts.Includes))
	}
	for _, pl := range plugin.Installed() {
		if extra := pl.DisplayOptions(indent, m); extra != "" {
			b.WriteString(extra)
			if !strings.HasSuffix(extra, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
