//go:build windows

package probe

import "golang.org/x/sys/windows"

// isElevated reports whether the process token is elevated. Registry and
// Program Files writes require elevation, so a false result is a fatal
// precondition on Windows.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
