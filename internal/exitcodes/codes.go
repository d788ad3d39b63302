package exitcodes

import (
	"fmt"
	"os"
)

// Standard exit codes for appman
const (
	// Success indicates successful command completion
	Success = 0

	// GeneralError indicates a general/unknown error
	GeneralError = 1

	// InvalidArgs indicates invalid command-line arguments or flags
	InvalidArgs = 2

	// PreconditionFailed indicates a precondition was not met
	// (e.g., no registry, unknown app name)
	PreconditionFailed = 3

	// NetworkError indicates network/connectivity failure
	// (e.g., release API unreachable, timeout)
	NetworkError = 4

	// UpdateError indicates a download or install failure
	UpdateError = 5

	// UpdatesAvailable signals `check` found pending updates, for scripting
	UpdatesAvailable = 10
)

// Exit terminates the program with the given code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError prints error message to stderr and exits with the given code
func ExitWithError(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// CodeForError returns the appropriate exit code for an error.
// Unwraps ErrorWithCode for explicit codes, otherwise returns GeneralError.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}
	if ec, ok := err.(*ErrorWithCode); ok {
		return ec.Code
	}
	return GeneralError
}
