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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectGroupsPreOrder(t *testing.T) {
	t.Parallel()
	inner := Must(New("b", Options{TagAs: "inner.b"})).Then(Must(New("c", Options{TagAs: "inner.c"})))
	root := Must(New("a", Options{TagAs: "outer.a"})).
		Then(Must(New(inner, Options{TagAs: "outer.wrapper"}))).
		Then(Must(New("d", Options{TagAs: "outer.d"})))

	groups := root.CollectGroups(1)
	var tags []string
	var numbers []int
	for _, g := range groups {
		tags = append(tags, g.TagAs)
		numbers = append(numbers, g.Number)
	}
	assert.Equal(t, []string{"outer.a", "outer.wrapper", "inner.b", "inner.c", "outer.d"}, tags)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, numbers)
}

func TestNumberingMatchesEmittedParentheses(t *testing.T) {
	t.Parallel()
	inner := Must(New("b", Options{TagAs: "b"}))
	root := Must(New("a", Options{Reference: "first"})).
		Then(Must(New(inner, Options{TagAs: "wrap"}))).
		Then(MatchResultOf("first"))

	src, err := root.Evaluate()
	require.NoError(t, err)
	// Group 1 is "a", group 2 the wrapper, group 3 the nested "b"; the
	// back-reference therefore resolves to \1.
	assert.Equal(t, `(a)((b))\1`, src)
}

func TestToRuleOuterGroupOptimization(t *testing.T) {
	t.Parallel()
	p := Must(New("if", Options{TagAs: "keyword.control"}))
	rule, err := p.ToRule()
	require.NoError(t, err)

	assert.Equal(t, "if", rule.Match, "the synthetic wrapping group must be stripped")
	assert.Equal(t, "keyword.control", rule.Name)
	assert.Nil(t, rule.Captures)

	// Evaluate alone keeps the group; only ToRule folds it into group 0.
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(if)", src)
}

func TestToRuleOuterGroupKeepsNestedCaptures(t *testing.T) {
	t.Parallel()
	inner := Must(New(Raw(`[0-9]+`), Options{TagAs: "constant.numeric"}))
	p := Must(New(Must(New("v")).Then(inner), Options{TagAs: "assignment"}))

	rule, err := p.ToRule()
	require.NoError(t, err)
	assert.Equal(t, "assignment", rule.Name)
	assert.Equal(t, `v([0-9]+)`, rule.Match)
	expected := map[string]*Rule{
		"1": {Name: "constant.numeric"},
	}
	if diff := cmp.Diff(expected, rule.Captures); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestToRuleWithoutOptimization(t *testing.T) {
	t.Parallel()
	p := Must(New("a", Options{TagAs: "first"})).Then(Must(New("b", Options{TagAs: "second"})))
	rule, err := p.ToRule()
	require.NoError(t, err)
	assert.Empty(t, rule.Name)
	assert.Equal(t, "(a)(b)", rule.Match)
	expected := map[string]*Rule{
		"1": {Name: "first"},
		"2": {Name: "second"},
	}
	if diff := cmp.Diff(expected, rule.Captures); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestTagPlaceholders(t *testing.T) {
	t.Parallel()
	p := Must(New("a", Options{TagAs: "first.$match", Reference: "alpha"})).
		Then(Must(New("b", Options{TagAs: "points.at.$reference(alpha)"})))
	rule, err := p.ToRule()
	require.NoError(t, err)
	assert.Equal(t, "first.$1", rule.Captures["1"].Name)
	assert.Equal(t, "points.at.$1", rule.Captures["2"].Name)
}

func TestTagPlaceholderUnknownReference(t *testing.T) {
	t.Parallel()
	p := Must(New("a", Options{TagAs: "points.at.$reference(missing)"}))
	_, err := p.ToRule()
	require.Error(t, err)
	var rerr *ReferenceResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "missing", rerr.Name)
}

func TestResolveIncludes(t *testing.T) {
	t.Parallel()
	nested := Must(New("x", Options{TagAs: "nested"}))
	p := Must(New("a", Options{
		TagAs: "wrapper",
		Includes: []Include{
			IncludeRef("numbers"),
			Self,
			Base,
			"source.c",
			nested,
		},
	})).Then(Must(New("b")))

	rule, err := p.ToRule()
	require.NoError(t, err)
	patterns := rule.Captures["1"].Patterns
	require.Len(t, patterns, 5)
	assert.Equal(t, "#numbers", patterns[0].Include)
	assert.Equal(t, "$self", patterns[1].Include)
	assert.Equal(t, "$base", patterns[2].Include)
	assert.Equal(t, "source.c", patterns[3].Include)
	assert.Equal(t, "x", patterns[4].Match)
	assert.Equal(t, "nested", patterns[4].Name)
}

func TestIncludesDoNotDisturbNumbering(t *testing.T) {
	t.Parallel()
	withIncludes := Must(New("a", Options{
		TagAs:    "first",
		Includes: []Include{Must(New("deep", Options{TagAs: "ignored.for.numbering"}))},
	})).Then(Must(New("b", Options{TagAs: "second"})))

	groups := withIncludes.CollectGroups(1)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Number)
	assert.Equal(t, 2, groups[1].Number)
}
