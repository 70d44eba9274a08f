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

// Package pattern implements a composable model for building regular
// expression sources with managed capture groups, for use in TextMate-style
// syntax-highlighting grammars.
//
// A Pattern is one matching unit in a chain. Its matcher is either a literal
// string (escaped during evaluation), a Raw fragment (emitted verbatim), or a
// nested Pattern. Chains are built with Append or Then, producing a new,
// fully independent tree each time; a Pattern that has been returned to a
// caller is never mutated again and may be shared freely for concurrent
// read-only use.
//
// Evaluate produces the regex source for a whole tree. Capture groups are
// numbered by one fixed pre-order traversal (self, then the nested matcher,
// then the next link), and every other consumer of group numbers - the
// capture table built by ToRule, and the resolution of named back-references
// and subroutine calls - replays that same traversal, so numbering and text
// can never drift apart.
//
// The produced source targets the Oniguruma dialect used by TextMate grammar
// engines. ToRegex compiles a regexp2-compatible rendering of the same tree
// for local matching, which is what the example test runner uses.
package pattern
