// Package paths resolves filesystem locations for the Aetos toolchain:
// the install root, the layout inside it, OS integration directories
// (XDG applications, MIME packages, icon themes), and shell profile
// files. All path logic lives here so every other package works with a
// Layout value instead of recomputing OS-specific locations.
package paths
