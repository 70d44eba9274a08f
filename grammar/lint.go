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
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/lianghongkey/cpp-textmate-grammar/pattern"
)

// LintOptions controls Document.Lint.
type LintOptions struct {
	// CompileRegexes additionally compiles every match/begin/end source with
	// the local regex engine. Grammar dialect features the local engine
	// lacks (possessive repetition, subroutine calls) are rewritten or
	// skipped before compiling, so only genuinely malformed sources are
	// flagged.
	CompileRegexes bool
}

// Lint structurally checks a loaded grammar document: every #name include
// must resolve to a repository entry, capture keys must be numeric, and
// rules must not be empty. All problems found are returned, not just the
// first.
func (d *Document) Lint(opts LintOptions) []error {
	var problems []error
	report := func(path string, format string, args ...any) {
		problems = append(problems, fmt.Errorf("%s: %s", path, fmt.Sprintf(format, args...)))
	}
	var lintRule func(path string, r *pattern.Rule)
	lintRules := func(path string, rules []*pattern.Rule) {
		for i, r := range rules {
			lintRule(fmt.Sprintf("%s.patterns[%d]", path, i), r)
		}
	}
	lintCaptures := func(path string, captures map[string]*pattern.Rule) {
		for key, capture := range captures {
			if _, err := strconv.Atoi(key); err != nil {
				report(path, "capture key %q is not a group number", key)
			}
			lintRules(fmt.Sprintf("%s[%s]", path, key), capture.Patterns)
		}
	}
	lintRule = func(path string, r *pattern.Rule) {
		if r == nil {
			report(path, "rule is null")
			return
		}
		if r.Include != "" {
			d.lintInclude(path, r.Include, report)
			return
		}
		if r.Match == "" && r.Begin == "" && len(r.Patterns) == 0 {
			report(path, "rule has no match, begin, or patterns")
		}
		if r.Match != "" && r.Begin != "" {
			report(path, "rule has both match and begin")
		}
		if opts.CompileRegexes {
			for _, src := range []struct{ field, re string }{
				{"match", r.Match}, {"begin", r.Begin}, {"end", r.End},
			} {
				if src.re == "" {
					continue
				}
				if err := compileCheck(src.re); err != nil {
					report(path, "%s does not compile: %v", src.field, err)
				}
			}
		}
		lintCaptures(path+".captures", r.Captures)
		lintCaptures(path+".beginCaptures", r.BeginCaptures)
		lintCaptures(path+".endCaptures", r.EndCaptures)
		lintRules(path, r.Patterns)
	}

	lintRules("$", d.Patterns)
	if d.Repository != nil {
		d.Repository.Scan(func(name string, rule *pattern.Rule) bool {
			lintRule("repository."+name, rule)
			return true
		})
	}
	return problems
}

func (d *Document) lintInclude(path, include string, report func(string, string, ...any)) {
	switch {
	case include == "$self" || include == "$base":
	case strings.HasPrefix(include, "#"):
		name := include[1:]
		if d.Repository == nil || !d.Repository.Has(name) {
			report(path, "include %q has no repository entry", include)
		}
	default:
		// Foreign grammar scope: opaque here, nothing to resolve.
	}
}

var possessiveQuantifier = regexp2.MustCompile(`(?:[*+?]|\{\d+(?:,\d*)?\})\+`, regexp2.None)

// compileCheck compiles src with the local engine, first rewriting the two
// grammar-dialect constructs the engine lacks: a possessive suffix drops to
// its backtracking form (same language, weaker failure behavior, irrelevant
// for a syntax check) and subroutine calls become a match-anything stub.
func compileCheck(src string) error {
	relaxed, err := possessiveQuantifier.ReplaceFunc(src, func(m regexp2.Match) string {
		s := m.String()
		return s[:len(s)-1]
	}, -1, -1)
	if err != nil {
		return err
	}
	relaxed = strings.ReplaceAll(relaxed, `\g<`, `<`)
	_, err = regexp2.Compile(relaxed, regexp2.None)
	return err
}
