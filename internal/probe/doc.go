// Package probe inspects the machine without modifying it: OS family,
// system package manager, build toolchain presence, privilege level, and
// any recorded installation state. Every lifecycle operation starts from
// a probe result, and `aetosup doctor` renders the same facts as a
// diagnostic report.
package probe
