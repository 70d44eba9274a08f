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

// Package walk provides the canonical traversal over pattern trees for
// external consumers such as lint plugins. The order is the one every
// number-sensitive pass inside the pattern package shares: a node first,
// then its nested matcher, then its next link.
package walk

import "github.com/lianghongkey/cpp-textmate-grammar/pattern"

// Patterns walks the tree rooted at root, invoking fn for each node in
// canonical order. If fn returns a non-nil error, the walk stops and that
// error is returned.
func Patterns(root *pattern.Pattern, fn func(*pattern.Pattern) error) error {
	return root.Walk(fn, nil)
}

// PatternsEnterAndExit walks the tree rooted at root, invoking enter when a
// node is reached and exit after its nested matcher (if any) has been
// walked. Either callback may be nil.
func PatternsEnterAndExit(root *pattern.Pattern, enter, exit func(*pattern.Pattern) error) error {
	return root.Walk(enter, exit)
}

// AllPatterns walks the tree rooted at root like Patterns, and additionally
// descends into patterns nested inside include lists. Include-nested
// patterns are separate rules with their own numbering, so this traversal
// is for whole-subtree inspection (linting, statistics), never for anything
// group-number sensitive.
func AllPatterns(root *pattern.Pattern, fn func(*pattern.Pattern) error) error {
	return root.Walk(func(n *pattern.Pattern) error {
		if err := fn(n); err != nil {
			return err
		}
		for _, inc := range n.Includes() {
			if nested, ok := inc.(*pattern.Pattern); ok {
				if err := AllPatterns(nested, fn); err != nil {
					return err
				}
			}
		}
		return nil
	}, nil)
}
