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
	"os"

	"github.com/dlclark/regexp2"

	"github.com/lianghongkey/cpp-textmate-grammar/reporter"
)

// The four example categories a node may declare.
const (
	CategoryShouldFullyMatch        = "should_fully_match"
	CategoryShouldNotFullyMatch     = "should_not_fully_match"
	CategoryShouldPartiallyMatch    = "should_partially_match"
	CategoryShouldNotPartiallyMatch = "should_not_partially_match"
)

// RunTests checks every declared example string in the subtree - on this
// node, its nested matcher, everything down the chain, and every pattern
// inside include lists - and reports whether they all behaved as declared.
// Failures are printed to stderr; use CheckExamples to collect them instead.
func (p *Pattern) RunTests() bool {
	h := reporter.NewHandler(reporter.NewReporter(func(f reporter.Failure) error {
		fmt.Fprintln(os.Stderr, f)
		return nil
	}))
	return p.CheckExamples(h)
}

// CheckExamples is RunTests with caller-controlled diagnostics: every
// failure found anywhere in the subtree is handed to h, and the result is
// false if there was at least one. Failures never short-circuit the run
// unless h's reporter aborts it.
func (p *Pattern) CheckExamples(h *reporter.Handler) bool {
	ok := true
	p.mapAll(func(n *Pattern) {
		if !n.checkOwnExamples(h) {
			ok = false
		}
	})
	return ok
}

func (n *Pattern) checkOwnExamples(h *reporter.Handler) bool {
	o := n.opts
	declared := len(o.ShouldFullyMatch) + len(o.ShouldNotFullyMatch) +
		len(o.ShouldPartiallyMatch) + len(o.ShouldNotPartiallyMatch)
	if declared == 0 {
		return true
	}

	// Only this node's own matcher is under test, not the rest of its chain.
	// Numbering starts at 1: the compiled text keeps the root's parentheses,
	// so the engine counts them as a group (see ToRegex).
	solo := n.deepClone()
	solo.next = nil
	src, err := solo.evaluateWith(solo.CollectGroups(1), dialectLocal)
	if err != nil {
		return n.reportBuildFailure(h, err)
	}
	full, err := regexp2.Compile(`\A(?:`+src+`)\z`, regexp2.None)
	if err != nil {
		return n.reportBuildFailure(h, err)
	}
	partial, err := regexp2.Compile(src, regexp2.None)
	if err != nil {
		return n.reportBuildFailure(h, err)
	}

	ok := n.checkCategory(h, full, CategoryShouldFullyMatch, o.ShouldFullyMatch, true)
	ok = n.checkCategory(h, full, CategoryShouldNotFullyMatch, o.ShouldNotFullyMatch, false) && ok
	ok = n.checkCategory(h, partial, CategoryShouldPartiallyMatch, o.ShouldPartiallyMatch, true) && ok
	ok = n.checkCategory(h, partial, CategoryShouldNotPartiallyMatch, o.ShouldNotPartiallyMatch, false) && ok
	return ok
}

func (n *Pattern) checkCategory(h *reporter.Handler, re *regexp2.Regexp, category string, examples []string, wantMatch bool) bool {
	var offending []string
	for _, example := range examples {
		matched, err := re.MatchString(example)
		if err != nil || matched != wantMatch {
			offending = append(offending, example)
		}
	}
	if len(offending) == 0 {
		return true
	}
	_ = h.HandleFailure(reporter.NewFailure(n.shortName(), category, offending, nil))
	return false
}

// reportBuildFailure records a node whose own matcher could not be compiled
// for checking. All four declared categories are implicated, so the failure
// is filed once under the first non-empty one.
func (n *Pattern) reportBuildFailure(h *reporter.Handler, err error) bool {
	o := n.opts
	for _, c := range []struct {
		category string
		examples []string
	}{
		{CategoryShouldFullyMatch, o.ShouldFullyMatch},
		{CategoryShouldNotFullyMatch, o.ShouldNotFullyMatch},
		{CategoryShouldPartiallyMatch, o.ShouldPartiallyMatch},
		{CategoryShouldNotPartiallyMatch, o.ShouldNotPartiallyMatch},
	} {
		if len(c.examples) > 0 {
			_ = h.HandleFailure(reporter.NewFailure(n.shortName(), c.category, c.examples, err))
			return false
		}
	}
	return false
}
