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
	"regexp"
	"strconv"
	"strings"
)

// GroupInfo records one capture group discovered during numbering: its
// assigned number and the capture-relevant attributes of the node that owns
// it.
type GroupInfo struct {
	Number    int
	TagAs     string
	Reference string
	Includes  []Include
}

// CollectGroups assigns capture-group numbers to every node in the tree that
// needs one, in the canonical traversal order, starting at startNumber.
// Emission replays the identical traversal, so the nth opening parenthesis
// it writes always belongs to the nth entry returned here.
func (p *Pattern) CollectGroups(startNumber int) []GroupInfo {
	var groups []GroupInfo
	next := startNumber
	_ = visit(p, func(n *Pattern) error {
		if n.needsCapture() {
			groups = append(groups, GroupInfo{
				Number:    next,
				TagAs:     n.opts.TagAs,
				Reference: n.opts.Reference,
				Includes:  n.opts.Includes,
			})
			next++
		}
		return nil
	}, nil)
	return groups
}

var tagReferencePlaceholder = regexp.MustCompile(`\$reference\(([^)]*)\)`)

// resolveTag rewrites the $match and $reference(name) placeholders inside a
// tag to $<number> form, using own as this group's number.
func resolveTag(tag string, own int, groups []GroupInfo) (string, error) {
	tag = strings.ReplaceAll(tag, "$match", "$"+strconv.Itoa(own))
	var rerr error
	tag = tagReferencePlaceholder.ReplaceAllStringFunc(tag, func(m string) string {
		name := tagReferencePlaceholder.FindStringSubmatch(m)[1]
		for _, g := range groups {
			if g.Reference == name {
				return "$" + strconv.Itoa(g.Number)
			}
		}
		if rerr == nil {
			rerr = &ReferenceResolutionError{Name: name}
		}
		return m
	})
	return tag, rerr
}

// toCaptures converts the numbering pass's metadata into the nested capture
// description consumed by a grammar loader: group number (as text) to the
// group's resolved name and sub-rules. Groups with neither are omitted.
func toCaptures(groups []GroupInfo) (map[string]*Rule, error) {
	captures := make(map[string]*Rule)
	for _, g := range groups {
		entry := &Rule{}
		if g.TagAs != "" {
			name, err := resolveTag(g.TagAs, g.Number, groups)
			if err != nil {
				return nil, err
			}
			entry.Name = name
		}
		if len(g.Includes) > 0 {
			patterns, err := resolveIncludes(g.Includes)
			if err != nil {
				return nil, err
			}
			entry.Patterns = patterns
		}
		if entry.Name == "" && entry.Patterns == nil {
			continue
		}
		captures[strconv.Itoa(g.Number)] = entry
	}
	if len(captures) == 0 {
		return nil, nil
	}
	return captures, nil
}

// resolveIncludes converts include entries into rule references: a *Pattern
// becomes an inline rule, an IncludeRef becomes "$self"/"$base" or a "#name"
// repository reference, and a plain string (a foreign grammar scope such as
// "source.c" or "text.html") passes through verbatim.
func resolveIncludes(includes []Include) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(includes))
	for _, inc := range includes {
		switch v := inc.(type) {
		case *Pattern:
			r, err := v.ToRule()
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		case IncludeRef:
			switch v {
			case Self, Base:
				rules = append(rules, &Rule{Include: string(v)})
			default:
				rules = append(rules, &Rule{Include: "#" + string(v)})
			}
		case string:
			rules = append(rules, &Rule{Include: v})
		default:
			return nil, &ConstructionError{Reason: "unsupported include entry type"}
		}
	}
	return rules, nil
}
