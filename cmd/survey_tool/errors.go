package main

import (
	"errors"
	"fmt"
)

// ExitCoder is implemented by errors that map to a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// FindingsError signals that a check completed and reported failures.
// The report has already been printed when it is returned.
type FindingsError struct {
	Errors int
}

func (e *FindingsError) Error() string {
	return fmt.Sprintf("%d errors found", e.Errors)
}

// ExitCode returns 2 so callers can tell findings apart from fatal errors.
func (e *FindingsError) ExitCode() int {
	return 2
}

// ExitCodeFromError maps err to a process exit code: 0 for nil, the code of
// an ExitCoder, and 1 for any other error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// reported reports whether err was already presented to the user.
func reported(err error) bool {
	var findings *FindingsError
	return errors.As(err, &findings)
}
