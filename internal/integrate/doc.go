// Package integrate applies and removes OS-level integration for the
// Aetos toolchain: desktop launchers and MIME associations on POSIX,
// registry file associations, Start Menu shortcuts, and Add/Remove
// Programs entries on Windows, plus shell completion and PATH
// bookkeeping on both.
//
// Integration is described by tagged Entry values. A per-OS Registrar
// interprets each entry; applying an entry twice yields the same
// observable state as applying it once, and removing an entry that was
// never applied (or whose file is already gone) succeeds. Unsupported
// entry/OS combinations are skipped with a warning because desktop
// integration is cosmetic to the toolchain's function.
package integrate
