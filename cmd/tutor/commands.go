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
	"github.com/AleutianAI/AleutianTutor/pkg/ux"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	backendType      string
	logDir           string
	logLevel         string
	maxStepTokens    int
	maxAnswerTokens  int
	personalityLevel string // UX personality level (standard/minimal/machine)

	rootCmd = &cobra.Command{
		Use:   "tutor",
		Short: "A cli for step-at-a-time problem tutoring backed by an LLM",
		Long: `Tutor walks you through solving a problem one step at a time.
				It never dumps the full solution: each step is revealed only
				when you ask for it, and you can ask clarifying questions
				about the current step without advancing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			// Initialize UX personality from flag, config, or environment
			switch {
			case personalityLevel != "":
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			case config.Personality != "":
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(config.Personality))
			default:
				ux.InitPersonality()
			}
			return nil
		},
	}

	// --- Solve ---
	solveCmd = &cobra.Command{
		Use:   "solve [problem]",
		Short: "Start an interactive tutoring session for a problem",
		Long: `Starts a tutoring session for the given problem statement.
				If no problem is passed on the command line you are prompted
				for one. Inside the session type 'next' to reveal the next
				step, 'ask <question>' to ask about the current step, and
				'exit' to leave.`,
		RunE: runSolveCommand, // Defined in cmd_solve.go
	}
)

// init runs when the Go program starts
func init() {
	// Global UX personality flag
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: standard (default), minimal, or machine (scripting)")

	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&backendType, "backend", "",
		"LLM backend (anthropic, openai, ollama). Defaults to TUTOR_BACKEND or anthropic.")
	solveCmd.Flags().StringVar(&logDir, "log-dir", "",
		"Directory for log files. Empty disables file logging.")
	solveCmd.Flags().StringVar(&logLevel, "log-level", "",
		"Minimum log level (debug, info, warning, error)")
	solveCmd.Flags().IntVar(&maxStepTokens, "max-step-tokens", 0,
		"Token ceiling for each revealed step (0 uses the default)")
	solveCmd.Flags().IntVar(&maxAnswerTokens, "max-answer-tokens", 0,
		"Token ceiling for question answers (0 uses the default)")
}
