// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message: the command has already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Exit codes by error category.
const (
	ExitInternal   = 1
	ExitValidation = 2
	ExitNotFound   = 3
)

// ExitCode maps an error returned by Execute to the process exit code
// and reports whether the error message should be printed.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, false
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		switch toolError.Category {
		case CategoryValidation:
			return ExitValidation, true
		case CategoryNotFound:
			return ExitNotFound, true
		}
	}
	return ExitInternal, true
}
