// Package logging provides slog-based logging for the aetosup CLI.
//
// The package wires log/slog with a TTY-aware text handler that colorizes
// output when writing to a terminal, a JSON handler for machine
// consumption, and a multi-handler for simultaneous console and file
// logging.
//
// Loggers travel through context so lifecycle stages do not need a logger
// parameter on every call:
//
//	ctx = logging.NewContext(ctx, logger)
//	...
//	logging.FromContext(ctx).Warn("desktop database update failed", "err", err)
//
// In tests, use ForTest to route log output through testing.T:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.ForTest(t)
//	    ...
//	}
package logging
