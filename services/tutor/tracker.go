// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tutor implements stepwise problem disclosure over a generative
// LLM backend: a progress tracker holding the problem and every step
// revealed so far, and a controller that discloses exactly one step per
// call while serving clarifying questions out of band.
package tutor

import (
	"fmt"
	"strings"
)

// ProgressTracker holds a problem statement and the ordered history of
// disclosed steps.
//
// Invariants: the zeroth step always equals the problem statement, and
// the current index advances by exactly one per appended step. Only
// Reset moves the index backwards. The tracker is not safe for
// concurrent use; the owning controller serializes access.
type ProgressTracker struct {
	problem      string
	steps        []string
	currentIndex int
}

// NewTracker creates a tracker seeded with the problem statement as step
// zero. A problem that is empty or whitespace-only returns
// ErrEmptyProblem.
func NewTracker(problem string) (*ProgressTracker, error) {
	if strings.TrimSpace(problem) == "" {
		return nil, ErrEmptyProblem
	}
	return &ProgressTracker{
		problem: problem,
		steps:   []string{problem},
	}, nil
}

// Problem returns the problem statement bound at creation.
func (t *ProgressTracker) Problem() string { return t.problem }

// AppendStep records one newly disclosed step and advances the index.
func (t *ProgressTracker) AppendStep(step string) {
	t.steps = append(t.steps, step)
	t.currentIndex++
}

// CurrentStep returns the last disclosed step. The problem statement
// counts as step zero, so this is well defined on a freshly created or
// freshly reset tracker.
func (t *ProgressTracker) CurrentStep() string {
	return t.steps[t.currentIndex]
}

// CurrentIndex returns the index of the last disclosed step.
func (t *ProgressTracker) CurrentIndex() int { return t.currentIndex }

// Steps returns a copy of the disclosed step history, problem first.
func (t *ProgressTracker) Steps() []string {
	out := make([]string, len(t.steps))
	copy(out, t.steps)
	return out
}

// Context renders the tracker state into the exact payload sent to the
// backend. The format is a contract the controller's prompts depend on:
//
//	Problem: <problem>
//
//	Steps so far:
//	1. <step zero, the problem>
//	2. <first disclosed step>
//	...
//
// Equal tracker states always render identical strings.
func (t *ProgressTracker) Context() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %s\n\n", t.problem)
	b.WriteString("Steps so far:\n")
	for i, step := range t.steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

// Reset discards all recorded progress, returning the tracker to the
// exact state produced by NewTracker with the same problem. Irreversible.
func (t *ProgressTracker) Reset() {
	t.steps = t.steps[:1]
	t.currentIndex = 0
}
