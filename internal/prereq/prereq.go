package prereq

import (
	"context"
	"os/exec"
	"strings"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/probe"
)

// rustupScript is the scripted toolchain bootstrap used on POSIX when
// cargo is absent. -y keeps it non-interactive; rustup itself prints
// progress to the terminal.
const rustupScript = `curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y`

// systemPackages lists the GUI/TLS development packages the visual
// editor build links against, per package manager.
var systemPackages = map[probe.PackageManager][]string{
	probe.PkgApt:    {"build-essential", "libssl-dev", "libgtk-3-dev", "libxkbcommon-dev"},
	probe.PkgDnf:    {"gcc", "openssl-devel", "gtk3-devel", "libxkbcommon-devel"},
	probe.PkgPacman: {"base-devel", "openssl", "gtk3", "libxkbcommon"},
	probe.PkgZypper: {"gcc", "libopenssl-devel", "gtk3-devel", "libxkbcommon-devel"},
}

// installArgs returns the non-interactive install invocation for a
// package manager.
func installArgs(pm probe.PackageManager, packages []string) (string, []string) {
	switch pm {
	case probe.PkgApt:
		return "apt-get", append([]string{"install", "-y"}, packages...)
	case probe.PkgDnf:
		return "dnf", append([]string{"install", "-y"}, packages...)
	case probe.PkgPacman:
		return "pacman", append([]string{"-S", "--noconfirm", "--needed"}, packages...)
	case probe.PkgZypper:
		return "zypper", append([]string{"install", "-y"}, packages...)
	default:
		return "", nil
	}
}

// ToolchainInfo describes the verified build toolchain.
type ToolchainInfo struct {
	// CargoPath is the resolved cargo executable.
	CargoPath string

	// Version is cargo's reported version line when available.
	Version string
}

// Installer ensures prerequisites, optionally prompting before the
// toolchain bootstrap.
type Installer struct {
	// Runner executes package manager and bootstrap commands.
	// Defaults to ExecRunner.
	Runner Runner

	// LookPath resolves binaries on PATH. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	// Confirm asks the user before bootstrapping the toolchain. A nil
	// Confirm proceeds without asking (scripted mode).
	Confirm func(prompt string) (bool, error)
}

// New creates an Installer backed by the live system.
func New() *Installer {
	return &Installer{}
}

func (i *Installer) runner() Runner {
	if i.Runner != nil {
		return i.Runner
	}
	return ExecRunner{}
}

func (i *Installer) lookPath(file string) (string, error) {
	if i.LookPath != nil {
		return i.LookPath(file)
	}
	return exec.LookPath(file)
}

// EnsureToolchain verifies the build toolchain, bootstrapping it when
// absent. Returns ErrToolchainUnavailable when the toolchain is still
// missing after the install attempt; this is fatal and not retried.
func (i *Installer) EnsureToolchain(ctx context.Context, env *probe.Environment) (*ToolchainInfo, error) {
	log := logging.FromContext(ctx)

	if env.HasToolchain {
		path, err := i.lookPath("cargo")
		if err != nil {
			return nil, errors.Wrap(errors.ErrToolchainUnavailable, err.Error())
		}
		return &ToolchainInfo{CargoPath: path, Version: env.ToolchainVersion}, nil
	}

	if env.Family == probe.FamilyWindows {
		return nil, errors.Wrap(errors.ErrToolchainUnavailable,
			"install the Rust toolchain from https://rustup.rs and re-run aetosup")
	}

	if i.Confirm != nil {
		ok, err := i.Confirm("The Rust toolchain (cargo) is required to build Aetos. Install it now?")
		if err != nil {
			return nil, errors.Wrap(err, "reading confirmation")
		}
		if !ok {
			return nil, errors.Wrap(errors.ErrToolchainUnavailable, "toolchain install declined")
		}
	}

	log.Info("installing Rust toolchain via rustup")
	if err := i.runner().Run(ctx, "sh", "-c", rustupScript); err != nil {
		return nil, errors.CombineErrors(errors.ErrToolchainUnavailable, err)
	}

	// Re-check. rustup installs to ~/.cargo/bin which may not be on
	// PATH in this process; treat that the same as a failed install.
	path, err := i.lookPath("cargo")
	if err != nil {
		return nil, errors.Wrap(errors.ErrToolchainUnavailable,
			"cargo still not on PATH after install; open a new shell and re-run aetosup")
	}

	version, _ := i.runner().Output(ctx, path, "--version")
	return &ToolchainInfo{CargoPath: path, Version: version}, nil
}

// EnsureSystemPackages installs the GUI/TLS system libraries via the
// detected package manager. Failures never abort the install: the
// libraries only serve the optional visual editor, so every error path
// degrades to a warning, with manual package names logged when no
// package manager exists.
func (i *Installer) EnsureSystemPackages(ctx context.Context, env *probe.Environment) {
	log := logging.FromContext(ctx)

	if env.Family == probe.FamilyWindows {
		return
	}

	packages, ok := systemPackages[env.PackageManager]
	if !ok {
		log.Warn("no supported package manager; install GUI libraries manually",
			"apt", strings.Join(systemPackages[probe.PkgApt], " "),
			"dnf", strings.Join(systemPackages[probe.PkgDnf], " "),
			"pacman", strings.Join(systemPackages[probe.PkgPacman], " "),
			"zypper", strings.Join(systemPackages[probe.PkgZypper], " "))
		return
	}

	name, args := installArgs(env.PackageManager, packages)
	if !env.Elevated {
		args = append([]string{name}, args...)
		name = "sudo"
	}

	log.Info("installing system packages", "manager", env.PackageManager)
	if err := i.runner().Run(ctx, name, args...); err != nil {
		log.Warn("system package install failed; the visual editor build may fail",
			"err", err, "packages", strings.Join(packages, " "))
	}
}
