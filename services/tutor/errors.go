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

import "errors"

// Sentinel errors for the tutor package.
var (
	// ErrEmptyProblem indicates a session was requested with an empty
	// problem statement.
	ErrEmptyProblem = errors.New("empty problem")

	// ErrNotInitialized indicates a reveal or question call before a
	// problem was bound.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrAlreadyInitialized indicates Initialize was called on a
	// controller that already has a problem bound.
	ErrAlreadyInitialized = errors.New("session already initialized")

	// ErrEmptyResponse indicates the backend returned no usable text.
	ErrEmptyResponse = errors.New("empty backend response")
)
