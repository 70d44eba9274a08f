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

func TestQuantifierCanonicalization(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		opts     Options
		expected string
	}{
		{"zero or one", Options{AtLeast: Bound(0), AtMost: Bound(1)}, "(?:abc)?"},
		{"zero or more", Options{AtLeast: Bound(0)}, "(?:abc)*"},
		{"one or more", Options{AtLeast: Bound(1)}, "(?:abc)+"},
		{"exactly two", Options{AtLeast: Bound(2), AtMost: Bound(2)}, "(?:abc){2}"},
		{"exactly two via Exactly", Options{Exactly: Bound(2)}, "(?:abc){2}"},
		{"two to five", Options{AtLeast: Bound(2), AtMost: Bound(5)}, "(?:abc){2,5}"},
		{"two or more", Options{AtLeast: Bound(2)}, "(?:abc){2,}"},
		{"upper bound only defaults lower to one", Options{AtMost: Bound(4)}, "(?:abc){1,4}"},
		{"one to one is no quantifier", Options{AtLeast: Bound(1), AtMost: Bound(1)}, "abc"},
		{"no bounds", Options{}, "abc"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New("abc", tc.opts)
			require.NoError(t, err)
			src, err := p.Evaluate()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, src)
		})
	}
}

func TestQuantifierPossessiveSuffix(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		opts     Options
		expected string
	}{
		{"zero or one", Options{AtLeast: Bound(0), AtMost: Bound(1), DontBackTrack: true}, "(?:abc)?+"},
		{"zero or more", Options{AtLeast: Bound(0), DontBackTrack: true}, "(?:abc)*+"},
		{"one or more", Options{AtLeast: Bound(1), DontBackTrack: true}, "(?:abc)++"},
		{"exactly two", Options{Exactly: Bound(2), DontBackTrack: true}, "(?:abc){2}+"},
		{"two to five", Options{AtLeast: Bound(2), AtMost: Bound(5), DontBackTrack: true}, "(?:abc){2,5}+"},
		{"no bounds takes the atomic group form", Options{DontBackTrack: true}, "(?>abc)"},
		{"one to one takes the atomic group form", Options{Exactly: Bound(1), DontBackTrack: true}, "(?>abc)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New("abc", tc.opts)
			require.NoError(t, err)
			src, err := p.Evaluate()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, src)
		})
	}
}

func TestQuantifierLazySuffix(t *testing.T) {
	t.Parallel()
	p, err := New("abc", Options{AtLeast: Bound(0), AsFewAsPossible: true})
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(?:abc)*?", src)
}

func TestQuantifierConflictingFlags(t *testing.T) {
	t.Parallel()
	_, err := New("abc", Options{AtLeast: Bound(1), DontBackTrack: true, AsFewAsPossible: true})
	require.Error(t, err)
	var conflict *QuantifierConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestQuantifierSingleUnitsAreNotWrapped(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		matcher  any
		expected string
	}{
		{"single character", "a", "a*"},
		{"escaped character", Raw(`\d`), `\d*`},
		{"character class", Raw(`[a-z]`), `[a-z]*`},
		{"existing group", Raw(`(?:ab)`), `(?:ab)*`},
		{"multi character literal is wrapped", "ab", "(?:ab)*"},
		{"class plus tail is wrapped", Raw(`[a-z]x`), `(?:[a-z]x)*`},
		{"two adjacent groups are wrapped", Raw(`(?:a)(?:b)`), `(?:(?:a)(?:b))*`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.matcher, Options{AtLeast: Bound(0)})
			require.NoError(t, err)
			src, err := p.Evaluate()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, src)
		})
	}
}

func TestQuantifierOnEmptyUnit(t *testing.T) {
	t.Parallel()
	// An empty literal with bounds must not leave a dangling quantifier.
	p, err := New("", Options{AtLeast: Bound(0), AtMost: Bound(1)})
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "(?:)?", src)

	// With equal bounds there is no quantifier and nothing to wrap.
	p, err = New("", Options{AtMost: Bound(1)})
	require.NoError(t, err)
	src, err = p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "", src)
}

func TestBoundedAtomicScenario(t *testing.T) {
	t.Parallel()
	// A bounded quantity requires explicit repetition syntax; the bare
	// atomic-group shortcut is reserved for the no-bounds case.
	p, err := New(Raw(`[a-z]+`), Options{AtLeast: Bound(1), AtMost: Bound(3), DontBackTrack: true})
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, `(?:[a-z]+){1,3}+`, src)
}

func TestQuantifierOnLookaroundRejected(t *testing.T) {
	t.Parallel()
	_, err := LookAheadFor("=", Options{AtLeast: Bound(2)})
	require.Error(t, err)
	var conflict *QuantifierConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestWordGuard(t *testing.T) {
	t.Parallel()
	p, err := New(Raw(`[a-z]+`), Options{WordCannotBeAnyOf: []string{"for", "c++"}})
	require.NoError(t, err)
	src, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, `(?!\b(?:for|c\+\+)\b)[a-z]+`, src)
}
