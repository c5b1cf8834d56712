// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tutor

// DoneSentinel is the exact text the backend emits to signal that no
// further steps remain. The controller compares against it exactly after
// trimming surrounding whitespace, so any system instruction that
// replaces DefaultStepInstruction must quote it verbatim.
const DoneSentinel = "PROBLEM DONE"

// Default token ceilings for the two prompt paths. Steps are short by
// construction; answers may carry worked examples.
const (
	DefaultMaxStepTokens   = 1024
	DefaultMaxAnswerTokens = 2048
)

// DefaultStepInstruction is the system instruction for the reveal path.
const DefaultStepInstruction = `You are a patient tutor guiding a student through a problem one step at a time.
You will be shown the problem and every step revealed so far.
Respond with the single next step only. Never solve more than one step ahead.
If the problem is fully solved and no steps remain, respond with exactly "PROBLEM DONE" and nothing else.`

// DefaultQuestionInstruction is the base system instruction for the
// question side channel. The controller appends the problem, the full
// rendered context, and the step the student is currently looking at.
const DefaultQuestionInstruction = `You are a patient tutor answering a clarifying question about one step of a worked problem.
Answer the question without advancing the solution or revealing future steps.
Prefer fresh examples over ones already present in the conversation.`
