package state

import (
	"time"

	"github.com/aetos-lang/aetosup/internal/integrate"
)

// Target records one installable unit in the state file.
type Target struct {
	// Name is the target identifier (aetosc, aetos-editor).
	Name string `yaml:"name"`

	// Required marks the target whose absence fails the whole install.
	Required bool `yaml:"required"`

	// Present reports whether the target's binary was installed. An
	// optional target whose build failed is recorded with Present false.
	Present bool `yaml:"present"`

	// Path is the installed binary location when present.
	Path string `yaml:"path,omitempty"`
}

// InstallationState is the persisted record of what is installed.
type InstallationState struct {
	// Version is the toolchain version this installation carries.
	Version string `yaml:"version"`

	// InstalledAt is when the last successful install or update finished.
	InstalledAt time.Time `yaml:"installed_at"`

	// Root is the installation root the record describes.
	Root string `yaml:"root"`

	// Targets lists every desired target and whether it is present.
	Targets []Target `yaml:"targets"`

	// Integrations lists the OS integration entries applied, in apply
	// order. Uninstall reverse-applies them back to front.
	Integrations []integrate.Entry `yaml:"integrations,omitempty"`

	// ProfileFile is the shell profile carrying the managed PATH block,
	// empty on Windows or when no profile was written.
	ProfileFile string `yaml:"profile_file,omitempty"`

	// ConfigFile is the hand-off configuration written at install time.
	ConfigFile string `yaml:"config_file,omitempty"`
}

// Target returns the named target record and whether it exists.
func (s *InstallationState) Target(name string) (Target, bool) {
	for _, t := range s.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// HasPresent reports whether the named target is recorded as installed.
func (s *InstallationState) HasPresent(name string) bool {
	t, ok := s.Target(name)
	return ok && t.Present
}
