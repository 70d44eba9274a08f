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

// Rule is the shape a syntax-highlighting grammar loader consumes: one rule
// of a TextMate-style grammar, serializable to the tmLanguage JSON or YAML
// form. Empty fields are omitted entirely.
//
// ToRule fills Match, Captures, and possibly Name. The remaining fields
// exist so that hand-written rules (begin/end blocks, bare includes) can sit
// next to compiled ones inside a grammar document.
type Rule struct {
	Name          string           `json:"name,omitempty" yaml:"name,omitempty"`
	Match         string           `json:"match,omitempty" yaml:"match,omitempty"`
	Captures      map[string]*Rule `json:"captures,omitempty" yaml:"captures,omitempty"`
	Include       string           `json:"include,omitempty" yaml:"include,omitempty"`
	Begin         string           `json:"begin,omitempty" yaml:"begin,omitempty"`
	End           string           `json:"end,omitempty" yaml:"end,omitempty"`
	BeginCaptures map[string]*Rule `json:"beginCaptures,omitempty" yaml:"beginCaptures,omitempty"`
	EndCaptures   map[string]*Rule `json:"endCaptures,omitempty" yaml:"endCaptures,omitempty"`
	ContentName   string           `json:"contentName,omitempty" yaml:"contentName,omitempty"`
	Patterns      []*Rule          `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// ToRule compiles the tree into a grammar rule: the evaluated match text
// plus the capture table.
//
// When the root node needs a capture and ends its chain, the capture is
// folded into the implicit whole-match group instead of keeping a redundant
// outermost group: the synthetic wrapping parentheses are stripped from the
// match text, the group's name is lifted to the rule's top-level Name, and
// the group-0 capture entry is dropped once nothing else is left in it.
func (p *Pattern) ToRule() (*Rule, error) {
	start := p.startNumber()
	groups := p.CollectGroups(start)
	match, err := p.evaluateWith(groups, dialectOniguruma)
	if err != nil {
		return nil, err
	}
	captures, err := toCaptures(groups)
	if err != nil {
		return nil, err
	}
	rule := &Rule{Match: match, Captures: captures}
	if start == 0 {
		rule.Match = match[1 : len(match)-1]
		if entry, ok := captures["0"]; ok {
			rule.Name = entry.Name
			entry.Name = ""
			if entry.Patterns == nil {
				delete(captures, "0")
			}
			if len(captures) == 0 {
				rule.Captures = nil
			}
		}
	}
	return rule, nil
}
