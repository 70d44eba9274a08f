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

package grammar

import (
	"fmt"

	"github.com/lianghongkey/cpp-textmate-grammar/pattern"
	"github.com/lianghongkey/cpp-textmate-grammar/plugin"
	"github.com/lianghongkey/cpp-textmate-grammar/reporter"
)

// Grammar accumulates pattern trees and hand-written rules, then compiles
// them into a Document. Patterns handed in are cloned, so a caller may keep
// extending its own trees without affecting the grammar.
type Grammar struct {
	name      string
	scopeName string
	fileTypes []string
	version   string

	topLevel   []entry
	names      []string // repository insertion order, for example checking
	repository map[string]entry
}

// entry is either an uncompiled pattern tree or an already-shaped rule.
type entry struct {
	pat  *pattern.Pattern
	rule *pattern.Rule
}

// New creates an empty grammar with the given display name and root scope
// name (for example "source.c").
func New(name, scopeName string) *Grammar {
	return &Grammar{
		name:       name,
		scopeName:  scopeName,
		repository: make(map[string]entry),
	}
}

// SetFileTypes records the file extensions this grammar applies to.
func (g *Grammar) SetFileTypes(types ...string) { g.fileTypes = append([]string(nil), types...) }

// SetVersion records the grammar's version string.
func (g *Grammar) SetVersion(v string) { g.version = v }

// Add appends a top-level entry: a *pattern.Pattern (cloned and compiled at
// export), a *pattern.Rule (used as-is), or a pattern.IncludeRef (emitted as
// an include line).
func (g *Grammar) Add(v any) error {
	e, err := toEntry(v)
	if err != nil {
		return err
	}
	g.topLevel = append(g.topLevel, e)
	return nil
}

// Define stores an entry in the repository under name, making it addressable
// from include lists as pattern.IncludeRef(name). Redefining a name is an
// error.
func (g *Grammar) Define(name string, v any) error {
	if name == "" {
		return fmt.Errorf("repository rule name cannot be empty")
	}
	if _, exists := g.repository[name]; exists {
		return fmt.Errorf("repository rule %q is already defined", name)
	}
	e, err := toEntry(v)
	if err != nil {
		return err
	}
	g.repository[name] = e
	g.names = append(g.names, name)
	return nil
}

func toEntry(v any) (entry, error) {
	switch val := v.(type) {
	case *pattern.Pattern:
		if val == nil {
			return entry{}, fmt.Errorf("pattern must not be nil")
		}
		return entry{pat: val.Clone()}, nil
	case *pattern.Rule:
		if val == nil {
			return entry{}, fmt.Errorf("rule must not be nil")
		}
		return entry{rule: val}, nil
	case pattern.IncludeRef:
		inc := string(val)
		if val != pattern.Self && val != pattern.Base {
			inc = "#" + inc
		}
		return entry{rule: &pattern.Rule{Include: inc}}, nil
	default:
		return entry{}, fmt.Errorf("unsupported grammar entry type %T", v)
	}
}

// CheckExamples runs the example test runner over every pattern in the
// grammar, collecting diagnostics in h. Installed plugins implementing
// plugin.Linter are invoked first for each tree and may veto it. The result
// is true only when every tree passes.
func (g *Grammar) CheckExamples(h *reporter.Handler) bool {
	ok := true
	g.eachPattern(func(p *pattern.Pattern) {
		for _, pl := range plugin.Installed() {
			if linter, isLinter := pl.(plugin.Linter); isLinter {
				if !linter.PreLint(p, p.OptionsMap()) {
					ok = false
				}
			}
		}
		if !p.CheckExamples(h) {
			ok = false
		}
	})
	return ok
}

func (g *Grammar) eachPattern(fn func(*pattern.Pattern)) {
	for _, e := range g.topLevel {
		if e.pat != nil {
			fn(e.pat)
		}
	}
	for _, name := range g.names {
		if e := g.repository[name]; e.pat != nil {
			fn(e.pat)
		}
	}
}

// Document compiles every pattern entry and assembles the serializable
// grammar document. Compilation failures abort with the first error,
// identified by the repository name it occurred under.
func (g *Grammar) Document() (*Document, error) {
	doc := &Document{
		Name:      g.name,
		ScopeName: g.scopeName,
		FileTypes: append([]string(nil), g.fileTypes...),
		Version:   g.version,
	}
	for i, e := range g.topLevel {
		rule, err := e.compile()
		if err != nil {
			return nil, fmt.Errorf("top-level pattern %d: %w", i, err)
		}
		doc.Patterns = append(doc.Patterns, rule)
	}
	if len(g.repository) > 0 {
		doc.Repository = &Repository{}
		for name, e := range g.repository {
			rule, err := e.compile()
			if err != nil {
				return nil, fmt.Errorf("repository rule %q: %w", name, err)
			}
			doc.Repository.Set(name, rule)
		}
	}
	return doc, nil
}

func (e entry) compile() (*pattern.Rule, error) {
	if e.pat != nil {
		return e.pat.ToRule()
	}
	return e.rule, nil
}
