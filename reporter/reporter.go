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

// Package reporter contains the diagnostics plumbing for the example test
// runner: failed expectations are reported and collected here instead of
// being raised as errors, so one run over a tree surfaces every failure it
// contains and a caller can batch-validate many trees without aborting.
package reporter

import (
	"errors"
	"sync"
)

// ErrFailedExamples is a sentinel returned by Handler.Err when failures were
// reported but no reporter callback supplied a more specific error.
var ErrFailedExamples = errors.New("example check failed: declared examples do not match")

// FailureReporter is responsible for reporting the given failure. If it
// returns a non-nil error, the check run aborts with that error. If it
// returns nil, checking continues, allowing the runner to report as many
// failures as it can find.
type FailureReporter func(f Failure) error

type Reporter interface {
	Failure(Failure) error
}

func NewReporter(failures FailureReporter) Reporter {
	return reporterFunc{failures: failures}
}

type reporterFunc struct {
	failures FailureReporter
}

func (r reporterFunc) Failure(f Failure) error {
	if r.failures == nil {
		return nil
	}
	return r.failures(f)
}

// Handler wraps a Reporter and tracks whether any failures were reported,
// collecting them for inspection after the run.
type Handler struct {
	reporter Reporter

	mu       sync.Mutex
	failures []Failure
	err      error
}

func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil)
	}
	return &Handler{reporter: rep}
}

// HandleFailure records one failure and forwards it to the reporter. The
// returned error is non-nil only when the reporter chose to abort the run.
func (h *Handler) HandleFailure(f Failure) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	h.failures = append(h.failures, f)
	h.err = h.reporter.Failure(f)
	return h.err
}

// Failures returns every failure reported so far.
func (h *Handler) Failures() []Failure {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Failure, len(h.failures))
	copy(out, h.failures)
	return out
}

// FailuresReported reports whether any failure has been handled.
func (h *Handler) FailuresReported() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.failures) > 0
}

// Err returns the error state of the run: nil when no failures were
// reported, the reporter's abort error if it supplied one, and
// ErrFailedExamples otherwise.
func (h *Handler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if len(h.failures) > 0 {
		return ErrFailedExamples
	}
	return nil
}
