// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/AleutianTutor/services/llm"
	"github.com/AleutianAI/AleutianTutor/services/tutor/datatypes"
)

var tracer = otel.Tracer("tutor.controller") // Specific tracer name

// =============================================================================
// Controller States
// =============================================================================

// State enumerates the controller lifecycle.
//
// A controller starts Uninitialized, becomes Active once a problem is
// bound, and becomes Complete when the backend emits DoneSentinel.
// Complete is terminal for the reveal path but questions stay available.
type State int

const (
	// StateUninitialized means no problem is bound yet.
	StateUninitialized State = iota

	// StateActive means a problem is bound and more steps are expected.
	StateActive

	// StateComplete means the backend has signaled no further steps.
	StateComplete
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateActive:
		return "ACTIVE"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// =============================================================================
// Session Configuration
// =============================================================================

// SessionConfig carries the explicit per-session configuration. System
// instructions are plain values here rather than shared package state,
// so two sessions can never observe each other's prompt changes.
//
// A zero SessionConfig is valid; defaults from prompts.go are applied.
type SessionConfig struct {
	// StepInstruction is the system instruction for the reveal path.
	// Replacements must instruct the backend to emit DoneSentinel
	// verbatim when no steps remain.
	StepInstruction string

	// QuestionInstruction is the base system instruction for the
	// question side channel.
	QuestionInstruction string

	// MaxStepTokens caps generation on the reveal path.
	MaxStepTokens int

	// MaxAnswerTokens caps generation on the question path.
	MaxAnswerTokens int
}

func (c *SessionConfig) applyDefaults() {
	if c.StepInstruction == "" {
		c.StepInstruction = DefaultStepInstruction
	}
	if c.QuestionInstruction == "" {
		c.QuestionInstruction = DefaultQuestionInstruction
	}
	if c.MaxStepTokens <= 0 {
		c.MaxStepTokens = DefaultMaxStepTokens
	}
	if c.MaxAnswerTokens <= 0 {
		c.MaxAnswerTokens = DefaultMaxAnswerTokens
	}
}

// =============================================================================
// Step Disclosure Controller
// =============================================================================

// Controller mediates between a ProgressTracker and a generative
// backend, enforcing exactly one disclosed step per reveal call and
// keeping the question side channel from perturbing progression.
//
// The interaction model is single-threaded and synchronous: every
// backend invocation blocks until a response or failure. A mutex
// serializes access so accidental cross-goroutine use cannot corrupt
// tracker state, but the design assumes one logical caller.
type Controller struct {
	mu        sync.Mutex
	sessionID string
	client    llm.ChatClient
	config    SessionConfig
	tracker   *ProgressTracker
	state     State
	questions []datatypes.QARecord
}

// NewSession is the session entry point: it returns a controller bound
// to the given backend client with the problem already initialized, in
// StateActive.
//
// The client is a long-lived, shared-read capability; the controller
// never mutates it. Returns ErrEmptyProblem for an empty or
// whitespace-only problem, and a validation error when the problem
// exceeds datatypes.MaxProblemBytes.
func NewSession(client llm.ChatClient, problem string, config SessionConfig) (*Controller, error) {
	if client == nil {
		return nil, fmt.Errorf("nil chat client")
	}
	c := &Controller{
		client: client,
		config: config,
		state:  StateUninitialized,
	}
	c.config.applyDefaults()
	if err := c.Initialize(problem); err != nil {
		return nil, err
	}
	return c, nil
}

// Initialize binds a fresh tracker to the problem and moves the
// controller to StateActive. It is only legal from StateUninitialized.
func (c *Controller) Initialize(problem string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUninitialized {
		return ErrAlreadyInitialized
	}

	if strings.TrimSpace(problem) == "" {
		return ErrEmptyProblem
	}
	req := datatypes.SessionRequest{Problem: problem}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid problem: %w", err)
	}

	tracker, err := NewTracker(problem)
	if err != nil {
		return err
	}

	c.sessionID = uuid.NewString()
	c.tracker = tracker
	c.state = StateActive
	slog.Info("Tutor session started", "session_id", c.sessionID)
	return nil
}

// RevealNextStep asks the backend for exactly one more step.
//
// In StateActive the trimmed step text is appended to the tracker and
// returned; when the backend responds with DoneSentinel the controller
// moves to StateComplete and the tracker is left untouched. In
// StateComplete the sentinel is re-returned without invoking the backend
// again. Returns ErrNotInitialized before Initialize, ErrEmptyResponse
// when the backend produced no usable text, and wrapped backend faults
// otherwise; a failed call has no effect on stored state.
func (c *Controller) RevealNextStep(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateUninitialized:
		return "", ErrNotInitialized
	case StateComplete:
		// Terminal idempotence: a naive re-invocation would ask the
		// backend to continue past completion, so guard it here.
		return DoneSentinel, nil
	}

	ctx, span := tracer.Start(ctx, "Controller.RevealNextStep")
	defer span.End()
	span.SetAttributes(
		attribute.String("tutor.session_id", c.sessionID),
		attribute.Int("tutor.step_index", c.tracker.CurrentIndex()),
	)

	messages := []llm.Message{
		{Role: "system", Content: c.config.StepInstruction},
		{Role: "user", Content: c.tracker.Context()},
	}
	maxTokens := c.config.MaxStepTokens
	raw, err := c.client.Chat(ctx, messages, llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("reveal next step: %w", err)
	}

	step := strings.TrimSpace(raw)
	if step == "" {
		return "", ErrEmptyResponse
	}

	if step == DoneSentinel {
		c.state = StateComplete
		slog.Info("Problem complete",
			"session_id", c.sessionID,
			"steps_revealed", c.tracker.CurrentIndex(),
		)
		return DoneSentinel, nil
	}

	c.tracker.AppendStep(step)
	slog.Debug("Step revealed", "session_id", c.sessionID, "step_index", c.tracker.CurrentIndex())
	return step, nil
}

// AskQuestion answers a clarifying question about the step the user is
// currently looking at, without advancing progress.
//
// The current step is snapshotted once, at call time, and embedded in
// the system instruction together with the problem and the full rendered
// context. The user message replays the question log so the backend can
// avoid repeating examples. On success the (question, answer) pair is
// appended to the log; tracker state is never touched. Available in
// StateActive and StateComplete.
func (c *Controller) AskQuestion(ctx context.Context, question string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateUninitialized {
		return "", ErrNotInitialized
	}

	req := datatypes.QuestionRequest{Question: question}
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("invalid question: %w", err)
	}

	ctx, span := tracer.Start(ctx, "Controller.AskQuestion")
	defer span.End()
	span.SetAttributes(
		attribute.String("tutor.session_id", c.sessionID),
		attribute.Int("tutor.question_index", len(c.questions)),
	)

	currentStep := c.tracker.CurrentStep()

	var system strings.Builder
	system.WriteString(c.config.QuestionInstruction)
	system.WriteString("\n\nThe problem:\n")
	system.WriteString(c.tracker.Problem())
	system.WriteString("\n\n")
	system.WriteString(c.tracker.Context())
	system.WriteString("\nThe step the student is asking about:\n")
	system.WriteString(currentStep)

	var user strings.Builder
	for _, qa := range c.questions {
		fmt.Fprintf(&user, "Previous question: %s\nPrevious answer: %s\n\n", qa.Question, qa.Answer)
	}
	fmt.Fprintf(&user, "New question: %s\n\n", question)
	user.WriteString("Answer the question only. Do not reveal or advance to the next step. Prefer examples not already used above.")

	messages := []llm.Message{
		{Role: "system", Content: system.String()},
		{Role: "user", Content: user.String()},
	}
	maxTokens := c.config.MaxAnswerTokens
	raw, err := c.client.Chat(ctx, messages, llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("ask question: %w", err)
	}

	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", ErrEmptyResponse
	}

	c.questions = append(c.questions, datatypes.QARecord{Question: question, Answer: answer})
	slog.Debug("Question answered", "session_id", c.sessionID, "questions_logged", len(c.questions))
	return answer, nil
}

// Reset discards all recorded progress and reopens the session: the
// tracker returns to its freshly created state and the controller moves
// back to StateActive, even from StateComplete. The question log is kept
// (it is scoped to the controller instance, not to progress).
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateUninitialized {
		return ErrNotInitialized
	}
	c.tracker.Reset()
	c.state = StateActive
	slog.Info("Session progress reset", "session_id", c.sessionID)
	return nil
}

// =============================================================================
// Read-Only Accessors
// =============================================================================

// SessionID returns the identifier assigned at initialization, used for
// log and trace correlation.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Problem returns the bound problem statement, or "" before Initialize.
func (c *Controller) Problem() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tracker == nil {
		return ""
	}
	return c.tracker.Problem()
}

// CurrentStep returns the last disclosed step (the problem statement
// until a step has been revealed).
func (c *Controller) CurrentStep() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUninitialized {
		return "", ErrNotInitialized
	}
	return c.tracker.CurrentStep(), nil
}

// Steps returns a copy of the disclosed step history, problem first.
func (c *Controller) Steps() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tracker == nil {
		return nil
	}
	return c.tracker.Steps()
}

// QuestionLog returns a copy of the (question, answer) pairs recorded so
// far, in ask order.
func (c *Controller) QuestionLog() []datatypes.QARecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]datatypes.QARecord, len(c.questions))
	copy(out, c.questions)
	return out
}
