package cmd

import "fmt"

// ExitCodeError carries a specific process exit code through cobra so
// the wrapped command's exit status can be passed to the shell unchanged.
type ExitCodeError struct {
	// Code is the exit code for the process.
	Code int

	// Message is printed to stderr when non-empty. Plain exit-code
	// pass-through leaves it empty: the command's own stderr has
	// already been written.
	Message string
}

func (e *ExitCodeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Message
}
