package integrate

import "fmt"

// Kind discriminates integration entry variants.
type Kind string

const (
	// KindDesktopLauncher is a desktop entry (POSIX .desktop file).
	KindDesktopLauncher Kind = "desktop-launcher"

	// KindFileAssociation associates the source extension with a handler.
	KindFileAssociation Kind = "file-association"

	// KindPathEntry records a directory added to PATH. The entry itself
	// is bookkeeping; the profile edit is done by the envcfg package.
	KindPathEntry Kind = "path-entry"

	// KindStartMenuShortcut is a Windows Start Menu shortcut.
	KindStartMenuShortcut Kind = "start-menu-shortcut"

	// KindUninstallRegistry is a Windows Add/Remove Programs entry.
	KindUninstallRegistry Kind = "uninstall-registry"

	// KindShellCompletion is a bash completion artifact for the compiler.
	KindShellCompletion Kind = "shell-completion"
)

// Entry is one OS-integration side effect, tagged by Kind. Only the
// fields relevant to the variant are populated; the flat shape keeps the
// record trivially serializable into the installation state.
type Entry struct {
	Kind Kind `yaml:"kind"`

	// Name identifies launchers and shortcuts (e.g. "Aetos Visual Editor").
	Name string `yaml:"name,omitempty"`

	// Exec is the command a launcher or shortcut runs.
	Exec string `yaml:"exec,omitempty"`

	// Icon is the icon path or theme name for launchers.
	Icon string `yaml:"icon,omitempty"`

	// Extension is the file extension (with dot) for associations.
	Extension string `yaml:"extension,omitempty"`

	// MimeType is the MIME type registered for the extension.
	MimeType string `yaml:"mime_type,omitempty"`

	// Handler is the program that opens associated files. Recomputed on
	// every run: the visual editor when installed, a plain-text viewer
	// otherwise.
	Handler string `yaml:"handler,omitempty"`

	// Directory is the PATH directory for path entries.
	Directory string `yaml:"directory,omitempty"`

	// Target is the executable a shortcut points at.
	Target string `yaml:"target,omitempty"`

	// DisplayName, Version and UninstallCommand fill the Add/Remove
	// Programs entry.
	DisplayName      string `yaml:"display_name,omitempty"`
	Version          string `yaml:"version,omitempty"`
	UninstallCommand string `yaml:"uninstall_command,omitempty"`
}

// String renders a short human-readable description for logs.
func (e Entry) String() string {
	switch e.Kind {
	case KindDesktopLauncher:
		return fmt.Sprintf("desktop launcher %q", e.Name)
	case KindFileAssociation:
		return fmt.Sprintf("file association %s -> %s", e.Extension, e.Handler)
	case KindPathEntry:
		return fmt.Sprintf("PATH entry %s", e.Directory)
	case KindStartMenuShortcut:
		return fmt.Sprintf("start menu shortcut %q", e.Name)
	case KindUninstallRegistry:
		return fmt.Sprintf("uninstall entry %q", e.DisplayName)
	case KindShellCompletion:
		return fmt.Sprintf("shell completion for %s", e.Name)
	default:
		return string(e.Kind)
	}
}

// DesktopLauncher builds a desktop launcher entry.
func DesktopLauncher(name, exec, icon string) Entry {
	return Entry{Kind: KindDesktopLauncher, Name: name, Exec: exec, Icon: icon}
}

// FileAssociation builds a file association entry.
func FileAssociation(extension, mimeType, handler string) Entry {
	return Entry{Kind: KindFileAssociation, Extension: extension, MimeType: mimeType, Handler: handler}
}

// PathEntry builds a PATH bookkeeping entry.
func PathEntry(directory string) Entry {
	return Entry{Kind: KindPathEntry, Directory: directory}
}

// StartMenuShortcut builds a Start Menu shortcut entry.
func StartMenuShortcut(name, target, icon string) Entry {
	return Entry{Kind: KindStartMenuShortcut, Name: name, Target: target, Icon: icon}
}

// UninstallRegistryEntry builds an Add/Remove Programs entry.
func UninstallRegistryEntry(displayName, version, uninstallCommand string) Entry {
	return Entry{Kind: KindUninstallRegistry, DisplayName: displayName, Version: version, UninstallCommand: uninstallCommand}
}

// ShellCompletion builds a completion artifact entry for a binary name.
func ShellCompletion(binary string) Entry {
	return Entry{Kind: KindShellCompletion, Name: binary}
}
