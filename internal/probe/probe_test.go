package probe

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/state"
)

// fakeLookPath returns a LookPath that resolves only the named binaries.
func fakeLookPath(available ...string) func(string) (string, error) {
	set := make(map[string]bool, len(available))
	for _, name := range available {
		set[name] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.Newf("%s not found", file)
	}
}

func newTestProber(available ...string) *Prober {
	return &Prober{
		LookPath: fakeLookPath(available...),
		Version:  func(string) (string, error) { return "cargo 1.80.0", nil },
		Elevated: func() bool { return false },
	}
}

func TestProbe_PackageManagerDetection(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("package manager detection is POSIX-only")
	}

	tests := []struct {
		name      string
		available []string
		want      PackageManager
	}{
		{"apt", []string{"apt-get"}, PkgApt},
		{"dnf", []string{"dnf"}, PkgDnf},
		{"pacman", []string{"pacman"}, PkgPacman},
		{"zypper", []string{"zypper"}, PkgZypper},
		{"none", nil, PkgNone},
		{"apt wins over dnf", []string{"dnf", "apt-get"}, PkgApt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := newTestProber(tt.available...).Probe(paths.NewLayout(t.TempDir()))
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if env.PackageManager != tt.want {
				t.Errorf("PackageManager = %q, want %q", env.PackageManager, tt.want)
			}
		})
	}
}

func TestProbe_Toolchain(t *testing.T) {
	env, err := newTestProber("cargo", "rustc").Probe(paths.NewLayout(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if !env.HasToolchain {
		t.Error("HasToolchain = false with cargo and rustc available")
	}
	if env.ToolchainVersion != "cargo 1.80.0" {
		t.Errorf("ToolchainVersion = %q", env.ToolchainVersion)
	}

	// cargo without rustc is not a usable toolchain
	env, err = newTestProber("cargo").Probe(paths.NewLayout(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if env.HasToolchain {
		t.Error("HasToolchain = true with rustc missing")
	}
}

func TestProbe_ExistingState(t *testing.T) {
	root := t.TempDir()
	layout := paths.NewLayout(root)

	env, err := newTestProber().Probe(layout)
	if err != nil {
		t.Fatal(err)
	}
	if env.Installed() {
		t.Error("Installed() = true on clean root")
	}

	st := &state.InstallationState{Version: "0.3.0", Root: root}
	if err := state.NewStore(layout).Save(st); err != nil {
		t.Fatal(err)
	}

	env, err = newTestProber().Probe(layout)
	if err != nil {
		t.Fatal(err)
	}
	if !env.Installed() {
		t.Error("Installed() = false after state saved")
	}
	if env.Existing.Version != "0.3.0" {
		t.Errorf("Existing.Version = %q", env.Existing.Version)
	}
}

func TestProbe_ReadOnly(t *testing.T) {
	root := t.TempDir()
	if _, err := newTestProber().Probe(paths.NewLayout(root)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Probe() wrote to the install root: %v", entries)
	}
}

func TestDiagnose(t *testing.T) {
	layout := paths.NewLayout(t.TempDir())
	env := &Environment{
		Family:         FamilyPOSIX,
		PackageManager: PkgNone,
		HasToolchain:   false,
		Layout:         layout,
	}

	report := Diagnose(env)

	if !report.HasErrors() {
		t.Error("missing toolchain should produce an error result")
	}
	if !report.HasWarnings() {
		t.Error("missing package manager should produce a warning result")
	}
	if len(report.Results) != 4 {
		t.Errorf("Results = %d, want 4", len(report.Results))
	}
}

func TestDiagnose_HealthyInstall(t *testing.T) {
	root := t.TempDir()
	layout := paths.NewLayout(root)
	binPath := layout.BinPath(paths.CompilerTarget)
	if err := os.MkdirAll(filepath.Dir(binPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(binPath, []byte("bin"), 0755); err != nil {
		t.Fatal(err)
	}

	env := &Environment{
		Family:         FamilyPOSIX,
		PackageManager: PkgApt,
		HasToolchain:   true,
		Layout:         layout,
		Existing: &state.InstallationState{
			Version: "0.3.0",
			Root:    root,
			Targets: []state.Target{
				{Name: paths.CompilerTarget, Required: true, Present: true, Path: binPath},
			},
		},
	}

	report := Diagnose(env)
	if report.HasErrors() || report.HasWarnings() {
		t.Errorf("healthy install should be clean, got %+v", report.Results)
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
