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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AleutianAI/AleutianTutor/pkg/logging"
	"github.com/AleutianAI/AleutianTutor/pkg/ux"
	"github.com/AleutianAI/AleutianTutor/services/llm"
	"github.com/AleutianAI/AleutianTutor/services/tutor"
	"github.com/spf13/cobra"
)

// runSolveCommand starts an interactive tutoring session.
//
// # Description
//
// Resolves configuration (flags win over tutor.yaml), builds the LLM
// backend client, creates a tutoring session for the problem, and hands
// control to the interactive loop. The problem comes from the command
// line arguments; if none are given the user is prompted for one.
//
// # Inputs
//
//   - cmd: The cobra command (unused beyond the signature)
//   - args: Problem statement words, joined with spaces
//
// # Outputs
//
//   - error: Non-nil when the session could not be started or ended
//     with an unrecoverable error. Normal exit returns nil.
//
// # Limitations
//
//   - Blocks until the user exits or input is exhausted
//
// # Assumptions
//
//   - Backend credentials are available via env or /run/secrets
func runSolveCommand(cmd *cobra.Command, args []string) error {
	logger := buildLogger()
	defer logger.Close()
	logger.SetGlobal()

	backend := backendType
	if backend == "" {
		backend = config.Backend
	}
	client, err := llm.NewChatClient(backend)
	if err != nil {
		ux.Error("could not create LLM client: %v", err)
		return err
	}

	reader := NewStdinReader()

	problem := strings.TrimSpace(strings.Join(args, " "))
	if problem == "" {
		fmt.Print("Problem to solve: ")
		problem, err = reader.ReadLine()
		if err != nil {
			return fmt.Errorf("reading problem: %w", err)
		}
	}

	session, err := tutor.NewSession(client, problem, sessionConfig())
	if err != nil {
		if errors.Is(err, tutor.ErrEmptyProblem) {
			ux.Error("the problem statement is empty")
			return err
		}
		ux.Error("could not start session: %v", err)
		return err
	}
	logger.Info("session started", "session_id", session.SessionID(), "backend", backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewSessionRunner(session, reader)
	if err := runner.Run(ctx); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildLogger assembles the session logger from flags and config.
func buildLogger() *logging.Logger {
	level := logLevel
	if level == "" {
		level = config.Logging.Level
	}
	dir := logDir
	if dir == "" {
		dir = config.Logging.Dir
	}
	return logging.New(logging.Config{
		Level:   logging.ParseLevel(level),
		LogDir:  dir,
		Service: "tutor",
		Quiet:   ux.GetPersonality().Level == ux.PersonalityMachine,
	})
}

// sessionConfig merges token ceilings from flags and config.
func sessionConfig() tutor.SessionConfig {
	cfg := tutor.SessionConfig{
		MaxStepTokens:   maxStepTokens,
		MaxAnswerTokens: maxAnswerTokens,
	}
	if cfg.MaxStepTokens == 0 {
		cfg.MaxStepTokens = config.Tokens.Step
	}
	if cfg.MaxAnswerTokens == 0 {
		cfg.MaxAnswerTokens = config.Tokens.Answer
	}
	return cfg
}
