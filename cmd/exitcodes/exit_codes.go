package exitcodes

import (
	"errors"

	"github.com/single-pyo3/single-pyo3/compilation/types"
)

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1
)

// ExitCodeForError returns the exit code the application should exit with for err. A failed toolchain build exits
// with the toolchain's own exit code. Every other error, including a toolchain that could not be started, exits with
// ExitCodeGeneralError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var buildErr *types.BuildError
	if errors.As(err, &buildErr) && buildErr.Launched() && buildErr.ExitCode > 0 {
		return buildErr.ExitCode
	}
	return ExitCodeGeneralError
}
