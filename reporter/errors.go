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

package reporter

import (
	"fmt"
	"strings"
)

// Failure describes one failed expectation found while checking a pattern's
// declared examples: which node, which example category, and the examples
// that behaved contrary to the declaration.
//
// The value of Error() includes all three. Failures are diagnostics, not
// control flow: the runner keeps going after recording one.
type Failure interface {
	error
	// Node is a short display form of the node whose examples failed.
	Node() string
	// Category names the failed example category, e.g. "should_fully_match".
	Category() string
	// Examples lists the offending example strings.
	Examples() []string
}

// NewFailure builds a Failure from its parts. cause may be nil; when set
// (for instance a compile error from the local regex engine) it is included
// in the message and exposed via Unwrap.
func NewFailure(node, category string, examples []string, cause error) Failure {
	return failure{node: node, category: category, examples: examples, cause: cause}
}

type failure struct {
	node     string
	category string
	examples []string
	cause    error
}

func (f failure) Error() string {
	msg := fmt.Sprintf("%s: %s failed for [%s]", f.node, f.category, strings.Join(f.examples, ", "))
	if f.cause != nil {
		msg += ": " + f.cause.Error()
	}
	return msg
}

func (f failure) Node() string       { return f.node }
func (f failure) Category() string   { return f.category }
func (f failure) Examples() []string { return f.examples }
func (f failure) Unwrap() error      { return f.cause }

var _ Failure = failure{}
