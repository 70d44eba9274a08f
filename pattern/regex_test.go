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

func TestToRegexMatches(t *testing.T) {
	t.Parallel()
	p := Must(New(Raw(`\d`), Options{
		Reference: "digit",
		AtLeast:   Bound(1),
	})).Then(Must(New("-"))).Then(MatchResultOf("digit"))

	re, err := p.ToRegex()
	require.NoError(t, err)
	ok, err := re.MatchString("12-12")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = re.MatchString("12-34")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToRegexPossessiveSpelling(t *testing.T) {
	t.Parallel()
	p := Must(New(Raw(`[a-z]`), Options{
		AtLeast:       Bound(1),
		DontBackTrack: true,
	})).Then(Must(New("s")))

	re, err := p.ToRegex()
	require.NoError(t, err)
	// Atomic repetition consumes all the letters it can and never gives one
	// back, so the trailing "s" can only come from outside the group.
	ok, err := re.MatchString("cats!")
	require.NoError(t, err)
	assert.False(t, ok, "the atomic group swallows the final s")
	ok, err = re.MatchString("cat s")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToRegexWithCapturingRoot(t *testing.T) {
	t.Parallel()
	// The root's own group would fold into the whole match in ToRule; the
	// compiled pattern still contains its parentheses, so the inner
	// back-reference must account for them.
	inner := Must(New("a", Options{Reference: "r"})).Then(MatchResultOf("r"))
	p := Must(New(inner, Options{TagAs: "pair"}))

	re, err := p.ToRegex()
	require.NoError(t, err)
	ok, err := re.MatchString("aa")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = re.MatchString("ab")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToRegexRejectsSubroutines(t *testing.T) {
	t.Parallel()
	p := Must(New(Raw(`\(`), Options{Reference: "parens"})).Then(RecursivelyMatch("parens"))
	_, err := p.ToRegex()
	assert.Error(t, err, "the local engine has no subroutine construct")
}
