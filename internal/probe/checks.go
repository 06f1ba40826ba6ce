package probe

import (
	"fmt"
	"time"

	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// Diagnose renders an Environment as a doctor report.
func Diagnose(env *Environment) *Report {
	report := &Report{Timestamp: time.Now().UTC()}

	report.add(checkToolchain(env))
	report.add(checkPackageManager(env))
	report.add(checkElevation(env))
	report.add(checkInstallState(env))

	return report
}

func checkToolchain(env *Environment) CheckResult {
	res := CheckResult{Name: "build-toolchain"}
	if env.HasToolchain {
		res.Status = SeverityPass
		res.Message = "build toolchain present"
		if env.ToolchainVersion != "" {
			res.Message = fmt.Sprintf("build toolchain present (%s)", env.ToolchainVersion)
		}
		return res
	}
	res.Status = SeverityError
	res.Message = "cargo/rustc not found on PATH"
	res.FixHint = "aetosup install bootstraps the toolchain, or install rustup manually"
	return res
}

func checkPackageManager(env *Environment) CheckResult {
	res := CheckResult{Name: "package-manager"}
	switch {
	case env.Family == FamilyWindows:
		res.Status = SeverityInfo
		res.Message = "system packages not managed on Windows"
	case env.PackageManager == PkgNone:
		res.Status = SeverityWarning
		res.Message = "no supported package manager found (apt, dnf, pacman, zypper)"
		res.FixHint = "GUI system libraries must be installed manually for the visual editor"
	default:
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("package manager: %s", env.PackageManager)
	}
	return res
}

func checkElevation(env *Environment) CheckResult {
	res := CheckResult{Name: "privileges"}
	switch {
	case env.Family == FamilyWindows && !env.Elevated:
		res.Status = SeverityError
		res.Message = "not running elevated"
		res.FixHint = "run aetosup from an Administrator prompt"
	case env.Elevated:
		res.Status = SeverityPass
		res.Message = "running with elevated privileges"
	default:
		res.Status = SeverityInfo
		res.Message = "running unprivileged (sufficient for a user install)"
	}
	return res
}

func checkInstallState(env *Environment) CheckResult {
	res := CheckResult{Name: "installation"}
	if env.Existing == nil {
		res.Status = SeverityInfo
		res.Message = fmt.Sprintf("not installed at %s", env.Layout.Root)
		return res
	}

	res.Status = SeverityPass
	res.Message = fmt.Sprintf("version %s installed at %s", env.Existing.Version, env.Existing.Root)

	// A recorded binary that vanished is worth flagging.
	for _, target := range env.Existing.Targets {
		if target.Present && !fileutil.Exists(target.Path) {
			res.Status = SeverityWarning
			res.Message = fmt.Sprintf("state records %s but %s is missing", target.Name, target.Path)
			res.FixHint = "re-run aetosup install to repair"
			break
		}
	}
	return res
}
