// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package main contains the tutor CLI interactive session loop.
//
// This file defines the SessionRunner that drives a tutoring session,
// plus the InputReader abstraction that makes the loop testable without
// a terminal.
//
// Architecture:
//
//	cmd_solve.go → SessionRunner → tutor.Controller (session state)
//	                               InputReader (stdin abstraction)
//	                               pkg/ux (output rendering)
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AleutianAI/AleutianTutor/pkg/ux"
	"github.com/AleutianAI/AleutianTutor/services/tutor"
)

// =============================================================================
// InputReader Interface
// =============================================================================

// InputReader abstracts user input reading for testability.
//
// # Description
//
// InputReader enables mocking of stdin in unit tests. Production
// implementation wraps bufio.Reader; test implementation returns
// predetermined inputs.
//
// # Outputs
//
// ReadLine returns the line read (trimmed) and any error.
// Returns io.EOF when input is exhausted.
//
// # Limitations
//
//   - Does not support multi-line input
//   - No line editing support (no readline/linenoise)
//
// # Assumptions
//
//   - Input source is line-oriented and newline-terminated
type InputReader interface {
	// ReadLine reads a single line of input, trimmed of surrounding
	// whitespace. Blocks until input is available.
	ReadLine() (string, error)
}

// =============================================================================
// StdinReader Implementation
// =============================================================================

// StdinReader implements InputReader for production stdin reading.
//
// # Description
//
// StdinReader wraps bufio.Reader to read lines from os.Stdin.
// This is the production implementation; tests use MockInputReader.
//
// # Thread Safety
//
// Not thread-safe. Single reader per stdin. Do not share across goroutines.
//
// # Limitations
//
//   - Blocks until input available
//   - Cannot be cancelled mid-read (stdin blocking is OS-level)
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader wrapping os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadLine reads a single line from stdin.
//
// Reads until newline character and returns the trimmed result.
// Returns io.EOF when stdin is closed.
func (r *StdinReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// =============================================================================
// SessionRunner
// =============================================================================

// SessionRunner drives an interactive tutoring session.
//
// # Description
//
// SessionRunner owns the read-eval-print loop for one tutoring session.
// It parses session commands from the InputReader, delegates to the
// tutor.Controller, and renders results through pkg/ux.
//
// Session commands:
//
//	next          Reveal the next solution step
//	ask <text>    Ask a question about the current step
//	steps         Show the problem and all disclosed steps
//	reset         Clear disclosed steps and start over
//	help          Show command reference
//	exit, quit    Leave the session
//
// # Thread Safety
//
// Not thread-safe. One runner per session, driven from one goroutine.
//
// # Assumptions
//
//   - The session is initialized before Run is called
type SessionRunner struct {
	session *tutor.Controller
	input   InputReader
}

// NewSessionRunner creates a runner for an initialized session.
func NewSessionRunner(session *tutor.Controller, input InputReader) *SessionRunner {
	return &SessionRunner{
		session: session,
		input:   input,
	}
}

// Run executes the interactive loop until exit, EOF, or context
// cancellation.
//
// # Description
//
// Prints the problem banner, then reads commands until the user exits.
// Backend faults are reported and the loop continues, so a transient
// network error never loses session progress.
//
// # Inputs
//
//   - ctx: Cancelling the context stops the loop before the next read.
//
// # Outputs
//
//   - error: nil on normal exit ("exit", "quit", or EOF),
//     ctx.Err() on cancellation.
func (r *SessionRunner) Run(ctx context.Context) error {
	ux.Title("Tutor session")
	ux.Info("Problem: %s", r.session.Problem())
	r.printHints()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ux.IsInteractive() {
			fmt.Print("tutor> ")
		}
		line, err := r.input.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			continue
		}

		command, rest := splitCommand(line)
		switch command {
		case "exit", "quit":
			return nil
		case "next", "n":
			r.handleNext(ctx)
		case "ask", "a":
			r.handleAsk(ctx, rest)
		case "steps", "s":
			r.handleSteps()
		case "reset":
			r.handleReset()
		case "help", "h", "?":
			r.printHelp()
		default:
			ux.Warning("unknown command %q (type 'help' for commands)", command)
		}
	}
}

// handleNext reveals the next step or reports completion.
func (r *SessionRunner) handleNext(ctx context.Context) {
	step, err := r.session.RevealNextStep(ctx)
	if err != nil {
		if errors.Is(err, tutor.ErrEmptyResponse) {
			ux.Warning("the backend returned an empty step, try again")
			return
		}
		ux.Error("could not reveal step: %v", err)
		return
	}
	if r.session.State() == tutor.StateComplete {
		ux.Done(disclosedCount(r.session))
		ux.Muted("type 'reset' to start over or 'exit' to leave")
		return
	}
	ux.Step(disclosedCount(r.session), step)
}

// handleAsk routes a side-channel question about the current step.
func (r *SessionRunner) handleAsk(ctx context.Context, question string) {
	if strings.TrimSpace(question) == "" {
		ux.Warning("usage: ask <question>")
		return
	}
	answer, err := r.session.AskQuestion(ctx, question)
	if err != nil {
		ux.Error("could not answer question: %v", err)
		return
	}
	ux.Answer(answer)
}

// handleSteps shows the problem and the disclosed step history.
func (r *SessionRunner) handleSteps() {
	steps := r.session.Steps()
	if len(steps) <= 1 {
		ux.Info("no steps revealed yet (type 'next' for the first one)")
		return
	}
	ux.StepList(r.session.Problem(), steps[1:])
}

// handleReset clears progress and reopens the session.
func (r *SessionRunner) handleReset() {
	if err := r.session.Reset(); err != nil {
		ux.Error("could not reset session: %v", err)
		return
	}
	slog.Info("session reset", "session_id", r.session.SessionID())
	ux.Success("session reset, type 'next' for the first step")
}

func (r *SessionRunner) printHints() {
	if !ux.GetPersonality().ShowHints {
		return
	}
	ux.Muted("type 'next' for the next step, 'ask <question>' to ask about it, 'help' for more")
}

func (r *SessionRunner) printHelp() {
	ux.Box(strings.Join([]string{
		"next          reveal the next solution step",
		"ask <text>    ask about the current step (does not advance)",
		"steps         show the problem and revealed steps",
		"reset         clear revealed steps and start over",
		"exit, quit    leave the session",
	}, "\n"))
}

// splitCommand separates the command word from its argument text.
func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	command := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return command, ""
	}
	return command, strings.TrimSpace(parts[1])
}

// disclosedCount reports how many steps have been revealed so far.
// The step history is problem-first, so the problem itself is excluded.
func disclosedCount(session *tutor.Controller) int {
	steps := session.Steps()
	if len(steps) == 0 {
		return 0
	}
	return len(steps) - 1
}
