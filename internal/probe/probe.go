package probe

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/state"
)

// Family is the coarse OS family the installer branches on.
type Family string

const (
	// FamilyPOSIX covers Linux and macOS.
	FamilyPOSIX Family = "posix"
	// FamilyWindows covers Windows.
	FamilyWindows Family = "windows"
)

// PackageManager identifies the detected system package manager.
type PackageManager string

const (
	PkgApt    PackageManager = "apt"
	PkgDnf    PackageManager = "dnf"
	PkgPacman PackageManager = "pacman"
	PkgZypper PackageManager = "zypper"
	PkgNone   PackageManager = "none"
)

// managerProbes maps each package manager to the executable that proves
// its presence, in detection order.
var managerProbes = []struct {
	manager PackageManager
	binary  string
}{
	{PkgApt, "apt-get"},
	{PkgDnf, "dnf"},
	{PkgPacman, "pacman"},
	{PkgZypper, "zypper"},
}

// Environment is the read-only snapshot of machine state that every
// lifecycle operation consumes.
type Environment struct {
	// Family is the OS family.
	Family Family

	// PackageManager is the detected system package manager, PkgNone
	// when no supported one is on PATH.
	PackageManager PackageManager

	// HasToolchain reports whether the build toolchain (cargo + rustc)
	// is on PATH.
	HasToolchain bool

	// ToolchainVersion is the reported cargo version when available.
	ToolchainVersion string

	// Elevated reports whether the process runs with elevated
	// privileges (root on POSIX, elevated token on Windows).
	Elevated bool

	// Existing is the recorded installation state, nil when not installed.
	Existing *state.InstallationState

	// Layout is the installation layout the probe examined.
	Layout paths.Layout
}

// Prober performs environment probes. The function fields are seams for
// tests; zero values fall back to the real implementations.
type Prober struct {
	// LookPath resolves a binary on PATH. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	// Version returns a tool's --version output. Defaults to running it.
	Version func(bin string) (string, error)

	// Elevated reports the process privilege level. Defaults to the
	// OS-specific check.
	Elevated func() bool
}

// New creates a Prober backed by the live OS.
func New() *Prober {
	return &Prober{}
}

// Probe inspects the machine and the given installation root.
// It performs no writes.
func (p *Prober) Probe(layout paths.Layout) (*Environment, error) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	versionOf := p.Version
	if versionOf == nil {
		versionOf = toolVersion
	}
	elevated := p.Elevated
	if elevated == nil {
		elevated = isElevated
	}

	env := &Environment{
		Family:         FamilyPOSIX,
		PackageManager: PkgNone,
		Elevated:       elevated(),
		Layout:         layout,
	}
	if runtime.GOOS == "windows" {
		env.Family = FamilyWindows
	}

	if env.Family == FamilyPOSIX {
		for _, probe := range managerProbes {
			if _, err := lookPath(probe.binary); err == nil {
				env.PackageManager = probe.manager
				break
			}
		}
	}

	_, cargoErr := lookPath("cargo")
	_, rustcErr := lookPath("rustc")
	env.HasToolchain = cargoErr == nil && rustcErr == nil
	if env.HasToolchain {
		if v, err := versionOf("cargo"); err == nil {
			env.ToolchainVersion = v
		}
	}

	existing, err := state.NewStore(layout).Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading installation state")
	}
	env.Existing = existing

	return env, nil
}

// Installed reports whether the probe found a recorded installation.
func (e *Environment) Installed() bool {
	return e.Existing != nil
}

// toolVersion runs `<bin> --version` and returns the first line.
func toolVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		return "", errors.Wrapf(err, "running %s --version", bin)
	}
	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line, nil
}
