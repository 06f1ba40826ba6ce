//go:build !windows

package probe

import "os"

// isElevated reports whether the process runs as root. On POSIX,
// elevation is only needed for system package installation, so a false
// result degrades later steps instead of failing them.
func isElevated() bool {
	return os.Geteuid() == 0
}
