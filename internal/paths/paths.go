package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Names of the installable units and their on-disk conventions.
const (
	// AppName is the product name used for directories and desktop entries.
	AppName = "aetos"

	// CompilerTarget is the required command-line compiler target.
	CompilerTarget = "aetosc"

	// EditorTarget is the optional visual editor target.
	EditorTarget = "aetos-editor"

	// SourceExt is the file extension of Aetos source programs.
	SourceExt = ".aetos"

	// MimeType is the MIME type registered for Aetos source files.
	MimeType = "text/x-aetos"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified
// permissions. If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string when it
// cannot be determined. Use ResolveHome for error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// DefaultRoot returns the default installation root.
// On POSIX: <XDG data home>/aetos (usually ~/.local/share/aetos).
// On Windows: %ProgramFiles%\Aetos.
func DefaultRoot() string {
	if runtime.GOOS == "windows" {
		pf := os.Getenv("ProgramFiles")
		if pf == "" {
			pf = `C:\Program Files`
		}
		return filepath.Join(pf, "Aetos")
	}
	return filepath.Join(xdg.DataHome, AppName)
}

// ResolveRoot picks the installation root with the priority order
// flag > AETOSUP_ROOT environment variable > OS default.
func ResolveRoot(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("AETOSUP_ROOT"); env != "" {
		return env
	}
	return DefaultRoot()
}

// ExeName appends the OS executable suffix to a target name.
func ExeName(target string) string {
	if runtime.GOOS == "windows" {
		return target + ".exe"
	}
	return target
}

// ApplicationsDir returns the XDG desktop entry directory
// (<data home>/applications).
func ApplicationsDir() string {
	return filepath.Join(xdg.DataHome, "applications")
}

// MimePackagesDir returns the XDG shared MIME package directory
// (<data home>/mime/packages).
func MimePackagesDir() string {
	return filepath.Join(xdg.DataHome, "mime", "packages")
}

// MimeDir returns the root of the user MIME database (<data home>/mime),
// the argument update-mime-database expects.
func MimeDir() string {
	return filepath.Join(xdg.DataHome, "mime")
}

// IconDir returns the scalable hicolor icon directory for app icons.
func IconDir() string {
	return filepath.Join(xdg.DataHome, "icons", "hicolor", "scalable", "apps")
}

// CompletionsDir returns the user bash completion directory.
func CompletionsDir() string {
	return filepath.Join(xdg.DataHome, "bash-completion", "completions")
}

// ConfigDir returns the installer's own configuration directory
// (<XDG config home>/aetosup).
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "aetosup")
}

// ProfileFile returns the shell profile the PATH block belongs in,
// chosen by $SHELL: ~/.zshrc for zsh, ~/.bashrc for bash, ~/.profile
// otherwise. Returns an error when the home directory is unknown.
func ProfileFile() (string, error) {
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}

	shell := filepath.Base(os.Getenv("SHELL"))
	switch {
	case strings.Contains(shell, "zsh"):
		return filepath.Join(home, ".zshrc"), nil
	case strings.Contains(shell, "bash"):
		return filepath.Join(home, ".bashrc"), nil
	default:
		return filepath.Join(home, ".profile"), nil
	}
}

// StartMenuDir returns the per-user Start Menu programs folder for the
// product. Only meaningful on Windows.
func StartMenuDir() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Aetos")
}
