package paths

import "path/filepath"

// Layout describes the filesystem layout inside one installation root.
// The zero value is not useful; construct with NewLayout.
type Layout struct {
	// Root is the installation root directory.
	Root string
}

// NewLayout creates a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// BinDir returns <root>/bin, where installed binaries live.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, "bin")
}

// BinPath returns the full path of an installed target binary, with the
// OS executable suffix applied.
func (l Layout) BinPath(target string) string {
	return filepath.Join(l.BinDir(), ExeName(target))
}

// ExamplesDir returns <root>/examples, where shipped example programs live.
func (l Layout) ExamplesDir() string {
	return filepath.Join(l.Root, "examples")
}

// AssetsDir returns <root>/assets, where icons and completion artifacts live.
func (l Layout) AssetsDir() string {
	return filepath.Join(l.Root, "assets")
}

// ConfigFile returns <root>/config.toml, the hand-off configuration
// written at install time for the installed application.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.Root, "config.toml")
}

// StateFile returns <root>/state.yaml, the installation state record.
func (l Layout) StateFile() string {
	return filepath.Join(l.Root, "state.yaml")
}

// LockFile returns <root>/state.lock, the advisory lock taken for the
// duration of a lifecycle operation.
func (l Layout) LockFile() string {
	return filepath.Join(l.Root, "state.lock")
}
