// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"io"
	"testing"

	"github.com/AleutianAI/AleutianTutor/pkg/ux"
	"github.com/AleutianAI/AleutianTutor/services/llm"
	"github.com/AleutianAI/AleutianTutor/services/tutor"
)

// =============================================================================
// Test Doubles
// =============================================================================

// MockInputReader returns predetermined inputs, then io.EOF.
type MockInputReader struct {
	inputs []string
	index  int
}

func NewMockInputReader(inputs []string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

func (m *MockInputReader) ReadLine() (string, error) {
	if m.index >= len(m.inputs) {
		return "", io.EOF
	}
	line := m.inputs[m.index]
	m.index++
	return line, nil
}

// scriptedClient returns canned responses in order.
type scriptedClient struct {
	responses []string
	calls     int
}

func (c *scriptedClient) Chat(ctx context.Context, messages []llm.Message, params llm.GenerationParams) (string, error) {
	if c.calls >= len(c.responses) {
		return "", io.ErrUnexpectedEOF
	}
	resp := c.responses[c.calls]
	c.calls++
	return resp, nil
}

func (c *scriptedClient) Generate(ctx context.Context, prompt string, params llm.GenerationParams) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, params)
}

// quietUX forces machine personality for the test's duration so loop
// output stays out of the test log.
func quietUX(t *testing.T) {
	t.Helper()
	orig := ux.GetPersonality()
	t.Cleanup(func() { ux.SetPersonality(orig) })
	ux.SetPersonalityLevel(ux.PersonalityMachine)
}

func newTestSession(t *testing.T, client llm.ChatClient) *tutor.Controller {
	t.Helper()
	session, err := tutor.NewSession(client, "Solve 2x + 4 = 10", tutor.SessionConfig{})
	if err != nil {
		t.Fatalf("NewSession: unexpected error: %v", err)
	}
	return session
}

// =============================================================================
// MockInputReader Tests
// =============================================================================

func TestMockInputReader_ReadLine_ReturnsInputsInOrder(t *testing.T) {
	inputs := []string{"first", "second", "third"}
	reader := NewMockInputReader(inputs)

	for i, expected := range inputs {
		got, err := reader.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine() %d: unexpected error: %v", i, err)
		}
		if got != expected {
			t.Errorf("ReadLine() %d: got %q, want %q", i, got, expected)
		}
	}
}

func TestMockInputReader_ReadLine_ReturnsEOFWhenExhausted(t *testing.T) {
	reader := NewMockInputReader([]string{"only"})

	if _, err := reader.ReadLine(); err != nil {
		t.Fatalf("first ReadLine(): unexpected error: %v", err)
	}
	if _, err := reader.ReadLine(); err != io.EOF {
		t.Errorf("second ReadLine(): got error %v, want io.EOF", err)
	}
}

// =============================================================================
// splitCommand Tests
// =============================================================================

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		line     string
		command  string
		argument string
	}{
		{"next", "next", ""},
		{"NEXT", "next", ""},
		{"ask why divide by two", "ask", "why divide by two"},
		{"ask   padded", "ask", "padded"},
		{"exit", "exit", ""},
	}

	for _, tc := range tests {
		command, argument := splitCommand(tc.line)
		if command != tc.command || argument != tc.argument {
			t.Errorf("splitCommand(%q) = (%q, %q), want (%q, %q)",
				tc.line, command, argument, tc.command, tc.argument)
		}
	}
}

// =============================================================================
// SessionRunner Tests
// =============================================================================

func TestSessionRunner_Run_ExitImmediately(t *testing.T) {
	quietUX(t)
	session := newTestSession(t, &scriptedClient{})
	runner := NewSessionRunner(session, NewMockInputReader([]string{"exit"}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
}

func TestSessionRunner_Run_EOFExitsCleanly(t *testing.T) {
	quietUX(t)
	session := newTestSession(t, &scriptedClient{})
	runner := NewSessionRunner(session, NewMockInputReader(nil))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error on EOF: %v", err)
	}
}

func TestSessionRunner_Run_NextRevealsSteps(t *testing.T) {
	quietUX(t)
	client := &scriptedClient{responses: []string{
		"Subtract 4 from both sides",
		"Divide both sides by 2",
	}}
	session := newTestSession(t, client)
	runner := NewSessionRunner(session, NewMockInputReader([]string{"next", "next", "exit"}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	steps := session.Steps()
	if len(steps) != 3 { // problem + 2 revealed steps
		t.Fatalf("expected 3 entries in step history, got %d", len(steps))
	}
	if steps[1] != "Subtract 4 from both sides" {
		t.Errorf("unexpected first step: %q", steps[1])
	}
	if session.State() != tutor.StateActive {
		t.Errorf("expected active state, got %v", session.State())
	}
}

func TestSessionRunner_Run_CompletionSentinel(t *testing.T) {
	quietUX(t)
	client := &scriptedClient{responses: []string{
		"x = 3",
		"PROBLEM DONE",
	}}
	session := newTestSession(t, client)
	runner := NewSessionRunner(session, NewMockInputReader([]string{"next", "next", "exit"}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	if session.State() != tutor.StateComplete {
		t.Fatalf("expected complete state, got %v", session.State())
	}
	if got := disclosedCount(session); got != 1 {
		t.Errorf("expected 1 disclosed step, got %d", got)
	}
}

func TestSessionRunner_Run_AskRecordsQuestion(t *testing.T) {
	quietUX(t)
	client := &scriptedClient{responses: []string{
		"Subtract 4 from both sides",
		"Because addition is undone by subtraction.",
	}}
	session := newTestSession(t, client)
	runner := NewSessionRunner(session, NewMockInputReader([]string{
		"next",
		"ask why subtract?",
		"exit",
	}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	log := session.QuestionLog()
	if len(log) != 1 {
		t.Fatalf("expected 1 question record, got %d", len(log))
	}
	if log[0].Question != "why subtract?" {
		t.Errorf("unexpected recorded question: %q", log[0].Question)
	}
	// Asking must not advance progress
	if got := disclosedCount(session); got != 1 {
		t.Errorf("expected 1 disclosed step after ask, got %d", got)
	}
}

func TestSessionRunner_Run_AskWithoutTextWarns(t *testing.T) {
	quietUX(t)
	client := &scriptedClient{}
	session := newTestSession(t, client)
	runner := NewSessionRunner(session, NewMockInputReader([]string{"ask", "exit"}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no backend calls for empty question, got %d", client.calls)
	}
}

func TestSessionRunner_Run_BackendFaultKeepsLoopAlive(t *testing.T) {
	quietUX(t)
	// Empty script: first "next" hits io.ErrUnexpectedEOF
	session := newTestSession(t, &scriptedClient{})
	runner := NewSessionRunner(session, NewMockInputReader([]string{"next", "exit"}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: backend fault should not end the loop, got: %v", err)
	}
	if got := disclosedCount(session); got != 0 {
		t.Errorf("expected no disclosed steps after fault, got %d", got)
	}
}

func TestSessionRunner_Run_ResetReopensSession(t *testing.T) {
	quietUX(t)
	client := &scriptedClient{responses: []string{
		"PROBLEM DONE",
		"Subtract 4 from both sides",
	}}
	session := newTestSession(t, client)
	runner := NewSessionRunner(session, NewMockInputReader([]string{
		"next",  // completes immediately
		"reset", // reopen
		"next",  // first step of the rerun
		"exit",
	}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	if session.State() != tutor.StateActive {
		t.Errorf("expected active state after reset, got %v", session.State())
	}
	if got := disclosedCount(session); got != 1 {
		t.Errorf("expected 1 disclosed step after rerun, got %d", got)
	}
}

func TestSessionRunner_Run_ContextCancellation(t *testing.T) {
	quietUX(t)
	session := newTestSession(t, &scriptedClient{})
	runner := NewSessionRunner(session, NewMockInputReader([]string{"next"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.Run(ctx); err != context.Canceled {
		t.Errorf("Run: got error %v, want context.Canceled", err)
	}
}

func TestSessionRunner_Run_UnknownCommandIgnored(t *testing.T) {
	quietUX(t)
	client := &scriptedClient{}
	session := newTestSession(t, client)
	runner := NewSessionRunner(session, NewMockInputReader([]string{"bogus", "", "exit"}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no backend calls, got %d", client.calls)
	}
}
