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
	"errors"
	"fmt"
)

// ErrConstruction is a sentinel wrapped by every error produced while
// building a Pattern, so callers can detect the whole class with errors.Is
// without enumerating the concrete types.
var ErrConstruction = errors.New("invalid pattern construction")

// ConstructionError indicates that a Pattern could not be built: the matcher
// had an unsupported type, more than one Options value was supplied, a raw
// fragment carried its own capture group, or a transform would leave a node
// in an unrepresentable state.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return "invalid pattern construction: " + e.Reason
}

func (e *ConstructionError) Unwrap() error { return ErrConstruction }

// QuantifierConflictError indicates an impossible repetition request:
// DontBackTrack combined with AsFewAsPossible, or repetition bounds supplied
// on a node kind that cannot be quantified.
type QuantifierConflictError struct {
	// Node is a short display form of the offending node.
	Node   string
	Reason string
}

func (e *QuantifierConflictError) Error() string {
	if e.Node == "" {
		return "quantifier conflict: " + e.Reason
	}
	return fmt.Sprintf("quantifier conflict on %s: %s", e.Node, e.Reason)
}

func (e *QuantifierConflictError) Unwrap() error { return ErrConstruction }

// ReferenceResolutionError indicates that a named back-reference or
// subroutine placeholder, or a $reference(...) tag placeholder, names a
// reference that no node in the numbered tree declares.
type ReferenceResolutionError struct {
	Name string
	// Subroutine is true when the failed placeholder was a subroutine
	// (recursion) request rather than a back-reference.
	Subroutine bool
}

func (e *ReferenceResolutionError) Error() string {
	kind := "back-reference"
	if e.Subroutine {
		kind = "subroutine"
	}
	return fmt.Sprintf("cannot resolve %s to %q: no pattern declares that reference", kind, e.Name)
}
