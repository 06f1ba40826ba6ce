package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the aetosup CLI.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-correctable precondition failure
	// (missing toolchain, missing privileges, invalid flags).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, process
	// execution, permissions).
	ExitSystem = 2

	// ExitNotInstalled indicates update or uninstall was invoked on a
	// machine with no recorded installation.
	ExitNotInstalled = 3
)

// Sentinel errors for the installer's failure taxonomy.
var (
	// ErrToolchainUnavailable indicates the build toolchain is absent
	// even after an install attempt. Fatal for every operation.
	ErrToolchainUnavailable = errors.New("build toolchain unavailable")

	// ErrNoPackageManager indicates no supported system package manager
	// was detected. Non-fatal: system packages only serve the optional
	// editor target.
	ErrNoPackageManager = errors.New("no supported package manager detected")

	// ErrBuildFailed indicates the build provider returned a failure.
	// Fatal for the required target, a downgrade for optional ones.
	ErrBuildFailed = errors.New("build failed")

	// ErrArtifactMissing indicates a planned artifact is not on disk.
	// Always fatal: it means the builder and planner disagree.
	ErrArtifactMissing = errors.New("build artifact missing")

	// ErrIntegrationUnsupported indicates an integration entry has no
	// application routine on this OS. Never fatal.
	ErrIntegrationUnsupported = errors.New("integration not supported on this OS")

	// ErrProfileUnwritable indicates the shell profile could not be
	// modified. Non-fatal: manual instructions are printed instead.
	ErrProfileUnwritable = errors.New("profile file not writable")

	// ErrNotInstalled indicates update/uninstall found no recorded
	// installation state.
	ErrNotInstalled = errors.New("aetos is not installed")

	// ErrElevationRequired indicates the operation needs elevated
	// privileges on this OS. Fatal on Windows before any mutation.
	ErrElevationRequired = errors.New("elevated privileges required")

	// ErrLocked indicates another aetosup process holds the lock on the
	// installation root.
	ErrLocked = errors.New("installation root is locked by another process")
)

// ExitError wraps an error with an exit code and optional suggestion for
// the CLI. It implements the error interface and supports unwrapping via
// errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and
// exit code. If err is nil, the returned ExitError will have a nil Err
// field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewNotInstalledError creates the ExitError reported when update or
// uninstall runs against a machine with no recorded installation.
func NewNotInstalledError() *ExitError {
	return &ExitError{
		Err:        ErrNotInstalled,
		Code:       ExitNotInstalled,
		Suggestion: "Run: aetosup install",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the
// exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
