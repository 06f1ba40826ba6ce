// Package envcfg makes installed binaries reachable from the user's
// shell: a marker-delimited block appended to the shell profile on
// POSIX, the persistent user PATH value on Windows. Both directions
// are idempotent, and removal restores the profile byte-for-byte
// outside the managed block.
package envcfg
