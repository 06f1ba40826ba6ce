// Package errors provides error handling conventions for the aetosup CLI.
//
// This package defines sentinel errors for the installer's failure
// taxonomy, an ExitError type for CLI exit code handling, and thin
// re-exports of cockroachdb/errors so call sites only need one import.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific failure classes
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotInstalled) {
//	    // update/uninstall invoked on a machine with no recorded state
//	}
//
// # Exit Codes
//
// The installer follows Unix conventions with one addition:
//
//   - ExitSuccess (0): operation completed successfully
//   - ExitUser (1): user-correctable precondition failure
//   - ExitSystem (2): system failure (I/O, process execution, permissions)
//   - ExitNotInstalled (3): update or uninstall with no recorded installation
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and an optional
// actionable suggestion. main unwraps it with [As] and exits with the code.
package errors
