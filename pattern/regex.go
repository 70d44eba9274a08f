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

	"github.com/dlclark/regexp2"
)

// checkRawFragment rejects raw fragments that carry their own capture
// groups. The probe appends a back-reference to the wrapped fragment: the
// engine only accepts \1 when a first group exists, so a successful compile
// means the fragment captures.
func checkRawFragment(fragment string) error {
	if _, err := regexp2.Compile(`(?:`+fragment+`)\1`, regexp2.None); err == nil {
		return &ConstructionError{Reason: fmt.Sprintf("raw fragment %q must not contain its own capture group; use a nested Pattern with a Reference instead", fragment)}
	}
	return nil
}

// ToRegex compiles the tree's pattern with the local regex engine, for
// matching here rather than inside a grammar consumer. Possessive repetition
// is rendered in the engine's atomic-group spelling, which matches the same
// strings; trees containing RecursivelyMatch cannot be compiled locally,
// because the engine has no subroutine construct, and return the engine's
// error.
//
// Numbering starts at 1 unconditionally: the whole-match fold ToRule applies
// exists only so a root group can be lifted to a rule name, and the engine
// sees the root's parentheses as a real group.
func (p *Pattern) ToRegex() (*regexp2.Regexp, error) {
	groups := p.CollectGroups(1)
	src, err := p.evaluateWith(groups, dialectLocal)
	if err != nil {
		return nil, err
	}
	return regexp2.Compile(src, regexp2.None)
}
