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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructionRejectsBadMatchers(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		matcher any
	}{
		{"nil", nil},
		{"int", 42},
		{"nil pattern", (*Pattern)(nil)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.matcher)
			require.Error(t, err)
			var cerr *ConstructionError
			assert.ErrorAs(t, err, &cerr)
			assert.ErrorIs(t, err, ErrConstruction)
		})
	}
}

func TestConstructionRejectsMultipleOptionSets(t *testing.T) {
	t.Parallel()
	_, err := New("a", Options{}, Options{})
	require.Error(t, err)
	var cerr *ConstructionError
	assert.ErrorAs(t, err, &cerr)
}

func TestConstructionRejectsCapturingRawFragment(t *testing.T) {
	t.Parallel()
	_, err := New(Raw(`(a)b`))
	require.Error(t, err)
	var cerr *ConstructionError
	assert.ErrorAs(t, err, &cerr)

	// Non-capturing constructs are fine.
	_, err = New(Raw(`(?:a)b`))
	assert.NoError(t, err)
	_, err = New(Raw(`(?=a)b`))
	assert.NoError(t, err)
}

func TestLiteralEscaping(t *testing.T) {
	t.Parallel()
	p, err := New("1+1=2.0 (really)")
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, `1\+1=2\.0 \(really\)`, src)
}

func TestEscapingRoundTrip(t *testing.T) {
	t.Parallel()
	const literal = "a.b+c*d?"
	p, err := New(literal, Options{
		ShouldFullyMatch:    []string{literal},
		ShouldNotFullyMatch: []string{"aXbbcd", "a.b+c*dx"},
	})
	require.NoError(t, err)
	assert.True(t, p.RunTests())
}

func TestChainConcatenation(t *testing.T) {
	t.Parallel()
	p := Must(New("if")).Then(" ").Then(Raw(`\w+`))
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, `if \w+`, src)
}

func TestAppendLeavesOriginalUnchanged(t *testing.T) {
	t.Parallel()
	orig := Must(New("a")).Then("b")
	before, err := orig.Evaluate()
	require.NoError(t, err)

	extended, err := orig.Append("c")
	require.NoError(t, err)

	after, err := orig.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, before, after, "appending must not mutate the original chain")

	extendedSrc, err := extended.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "abc", extendedSrc)
}

func TestOrMergesIntoPredecessor(t *testing.T) {
	t.Parallel()
	p, err := Must(New("true")).Or("false")
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(?:true|false)", src)

	again, err := p.Or("null")
	require.NoError(t, err)
	src, err = again.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(?:(?:true|false)|null)", src)
}

func TestOneOf(t *testing.T) {
	t.Parallel()
	p, err := OneOf("if", "while", "for")
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(?:(?:if|while)|for)", src)
}

func TestLookarounds(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		build    func() (*Pattern, error)
		expected string
	}{
		{"look ahead for", func() (*Pattern, error) { return LookAheadFor("=") }, "(?==)"},
		{"look ahead to avoid", func() (*Pattern, error) { return LookAheadToAvoid(Raw(`\d`)) }, `(?!\d)`},
		{"look behind for", func() (*Pattern, error) { return LookBehindFor(":") }, "(?<=:)"},
		{"look behind to avoid", func() (*Pattern, error) { return LookBehindToAvoid(Raw(`\w`)) }, `(?<!\w)`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.build()
			require.NoError(t, err)
			src, err := p.Evaluate()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, src)
		})
	}
}

func TestNestedPatternIsOwnedCopy(t *testing.T) {
	t.Parallel()
	inner := Must(New("x"))
	outer, err := New(inner, Options{AtLeast: Bound(0)})
	require.NoError(t, err)

	// Extending the inner chain afterwards must not leak into outer.
	_, err = inner.Append("y")
	require.NoError(t, err)
	src, err := outer.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "x*", src)
}

func TestMaybeAndFriends(t *testing.T) {
	t.Parallel()
	maybe, err := Maybe("ab")
	require.NoError(t, err)
	src, err := maybe.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(?:ab)?", src)

	zeroPlus, err := ZeroOrMoreOf(Raw(`[0-9]`))
	require.NoError(t, err)
	src, err = zeroPlus.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "[0-9]*", src)

	onePlus, err := OneOrMoreOf(Raw(`[0-9]`))
	require.NoError(t, err)
	src, err = onePlus.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "[0-9]+", src)

	_, err = Maybe("ab", Options{AtLeast: Bound(2)})
	assert.Error(t, err, "explicit bounds conflict with the implied ones")
}

func TestWalkVisitsCanonicalOrder(t *testing.T) {
	t.Parallel()
	b := Must(New("b", Options{TagAs: "b"}))
	c := Must(New("c", Options{TagAs: "c"}))
	middle := Must(New(b.Then(c), Options{TagAs: "middle"}))
	root := Must(New("a", Options{TagAs: "a"})).Then(middle).Then(Must(New("d", Options{TagAs: "d"})))

	var entered, exited []string
	require.NoError(t, root.Walk(
		func(n *Pattern) error {
			if n.TagAs() != "" {
				entered = append(entered, n.TagAs())
			}
			return nil
		},
		func(n *Pattern) error {
			if n.TagAs() != "" {
				exited = append(exited, n.TagAs())
			}
			return nil
		},
	))
	assert.Equal(t, []string{"a", "middle", "b", "c", "d"}, entered)
	assert.Equal(t, []string{"a", "b", "c", "middle", "d"}, exited)
}
