// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides data structures for the tutor service.
//
// This file contains the request types crossing the CLI/controller
// boundary and the question-log record type.
package datatypes

import (
	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Input Size Ceilings
// =============================================================================

const (
	// MaxProblemBytes is the maximum size of a problem statement.
	// Checked as byte length (not rune count) so oversized pastes are
	// rejected before they reach a backend prompt.
	MaxProblemBytes = 16 * 1024 // 16KB

	// MaxQuestionBytes is the maximum size of a single side-channel
	// question.
	MaxQuestionBytes = 8 * 1024 // 8KB
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// sessionValidate is the validator instance for tutor datatypes.
// Initialized in init() with custom validators.
var sessionValidate *validator.Validate

func init() {
	sessionValidate = validator.New()

	_ = sessionValidate.RegisterValidation("problembytes", validateProblemBytes)
	_ = sessionValidate.RegisterValidation("questionbytes", validateQuestionBytes)
}

// validateProblemBytes enforces MaxProblemBytes on a string field.
func validateProblemBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxProblemBytes
}

// validateQuestionBytes enforces MaxQuestionBytes on a string field.
func validateQuestionBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxQuestionBytes
}

// =============================================================================
// Request Types
// =============================================================================

// SessionRequest carries the problem statement that seeds a tutoring
// session.
//
// # Description
//
// SessionRequest is validated at the session factory before any tracker
// state exists. The Problem field is required and limited to
// MaxProblemBytes.
//
// # Validation
//
// Uses go-playground/validator:
//   - Problem: required, max 16384 bytes
//
// # Examples
//
//	req := SessionRequest{Problem: "Solve 2x + 6 = 20 for x"}
//	if err := req.Validate(); err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
type SessionRequest struct {
	Problem string `json:"problem" validate:"required,problembytes"`
}

// Validate validates the SessionRequest fields.
func (r *SessionRequest) Validate() error {
	return sessionValidate.Struct(r)
}

// QuestionRequest carries one side-channel question about the step the
// user is currently looking at.
//
// # Description
//
// Questions never advance the session; they are validated here and
// answered through an independent one-shot prompt. The Question field is
// required and limited to MaxQuestionBytes.
//
// # Validation
//
// Uses go-playground/validator:
//   - Question: required, max 8192 bytes
type QuestionRequest struct {
	Question string `json:"question" validate:"required,questionbytes"`
}

// Validate validates the QuestionRequest fields.
func (r *QuestionRequest) Validate() error {
	return sessionValidate.Struct(r)
}

// =============================================================================
// Question Log
// =============================================================================

// QARecord is one (question, answer) pair in a session's question log.
//
// The log is append-only and scoped to a single controller instance;
// it is never merged into the disclosed step history.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
