package errors

import (
	"fmt"
)

// CommandError carries an exit code from a command implementation up to
// main, alongside the underlying error message.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError wrapping err with an exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}

// NewDiagnosticsFoundError signals that a check run finished normally but
// found issues. Editor integrations key off the non-zero exit status.
func NewDiagnosticsFoundError(count int) *CommandError {
	return &CommandError{
		ExitCode:    1,
		CommonError: fmt.Sprintf("found %d issue(s)", count),
	}
}
