// Package prereq ensures the prerequisites of an Aetos build exist: the
// Rust build toolchain, and the system libraries the optional visual
// editor links against. The toolchain is mandatory and its absence after
// an install attempt is fatal; system libraries degrade to a warning
// with manual instructions when no package manager is available, because
// they only serve the optional editor target.
//
// All process execution goes through the Runner interface so tests can
// substitute a fake.
package prereq
