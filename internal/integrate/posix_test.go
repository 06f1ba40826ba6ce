//go:build !windows

package integrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
)

func testCtx(t *testing.T) context.Context {
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

// testApplier roots every XDG path in a temp dir and records refresh
// commands instead of running them.
func testApplier(t *testing.T, layout paths.Layout) (*posixApplier, *[]string) {
	t.Helper()
	base := t.TempDir()
	var commands []string
	a := &posixApplier{
		layout:          layout,
		applicationsDir: filepath.Join(base, "applications"),
		mimePackagesDir: filepath.Join(base, "mime", "packages"),
		mimeDir:         filepath.Join(base, "mime"),
		iconDir:         filepath.Join(base, "icons"),
		completionsDir:  filepath.Join(base, "completions"),
		run: func(_ context.Context, name string, args ...string) error {
			commands = append(commands, name+" "+strings.Join(args, " "))
			return nil
		},
	}
	return a, &commands
}

func TestApplyLauncher(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}
	a, commands := testApplier(t, layout)
	r := &Registrar{layout: layout, applier: a}

	entry := DesktopLauncher("Aetos Editor", layout.BinPath(paths.EditorTarget), "aetos")
	applied := r.Apply(testCtx(t), []Entry{entry})
	if len(applied) != 1 {
		t.Fatalf("applied = %v", applied)
	}

	data, err := os.ReadFile(filepath.Join(a.applicationsDir, desktopFileName))
	if err != nil {
		t.Fatalf("desktop entry not written: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"[Desktop Entry]",
		"Name=Aetos Editor",
		"Exec=" + layout.BinPath(paths.EditorTarget) + " %f",
		"MimeType=" + paths.MimeType + ";",
		"Actions=compile;run;check;",
		"[Desktop Action compile]",
		"Exec=" + layout.BinPath(paths.CompilerTarget) + " compile %f",
		"[Desktop Action run]",
		"[Desktop Action check]",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("desktop entry missing %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(a.iconDir, "aetos.svg")); err != nil {
		t.Errorf("icon not installed: %v", err)
	}
	if len(*commands) == 0 || !strings.HasPrefix((*commands)[0], "update-desktop-database") {
		t.Errorf("commands = %v, want update-desktop-database", *commands)
	}
}

func TestApplyAssociation(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}
	a, commands := testApplier(t, layout)

	editor := layout.BinPath(paths.EditorTarget)
	entry := FileAssociation(paths.SourceExt, paths.MimeType, editor)
	if err := a.apply(testCtx(t), entry); err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(a.mimePackagesDir, "aetos.xml"))
	if err != nil {
		t.Fatalf("MIME record not written: %v", err)
	}
	for _, want := range []string{paths.MimeType, "*" + paths.SourceExt, "sub-class-of"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("MIME record missing %q", want)
		}
	}

	joined := strings.Join(*commands, "\n")
	if !strings.Contains(joined, "update-mime-database") {
		t.Errorf("commands = %v, want update-mime-database", *commands)
	}
	if !strings.Contains(joined, "xdg-mime default "+desktopFileName) {
		t.Errorf("editor handler should become the default opener, commands = %v", *commands)
	}
}

func TestApplyAssociationFallbackSkipsDefault(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}
	a, commands := testApplier(t, layout)

	entry := FileAssociation(paths.SourceExt, paths.MimeType, textViewerHandler)
	if err := a.apply(testCtx(t), entry); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if strings.Contains(strings.Join(*commands, "\n"), "xdg-mime") {
		t.Errorf("fallback handler must not claim the default opener, commands = %v", *commands)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}
	a, _ := testApplier(t, layout)
	r := &Registrar{layout: layout, applier: a}

	entries := Desired(layout, "0.3.0", true)
	r.Apply(testCtx(t), entries)
	r.Apply(testCtx(t), entries)

	apps, err := os.ReadDir(a.applicationsDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 1 {
		t.Errorf("applications dir has %d entries, want 1", len(apps))
	}
}

func TestUnsupportedKindSkipped(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}
	a, _ := testApplier(t, layout)
	r := &Registrar{layout: layout, applier: a}

	applied := r.Apply(testCtx(t), []Entry{
		StartMenuShortcut("Aetos", layout.BinPath(paths.CompilerTarget), "aetos"),
		ShellCompletion(paths.CompilerTarget),
	})
	if len(applied) != 1 || applied[0].Kind != KindShellCompletion {
		t.Errorf("applied = %v, want only the completion entry", applied)
	}
}

func TestRemoveReversesApply(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}
	a, _ := testApplier(t, layout)
	r := &Registrar{layout: layout, applier: a}

	entries := Desired(layout, "0.3.0", true)
	applied := r.Apply(testCtx(t), entries)
	r.Remove(testCtx(t), applied)

	for _, path := range []string{
		filepath.Join(a.applicationsDir, desktopFileName),
		filepath.Join(a.mimePackagesDir, "aetos.xml"),
		filepath.Join(a.iconDir, "aetos.svg"),
		filepath.Join(a.completionsDir, paths.CompilerTarget),
	} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s still present after Remove", path)
		}
	}

	// A second Remove over the same entries must succeed on absence.
	r.Remove(testCtx(t), applied)
}

func TestDesiredLauncherPrecedesAssociation(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}

	index := func(entries []Entry, kind Kind) int {
		for i, e := range entries {
			if e.Kind == kind {
				return i
			}
		}
		return -1
	}

	entries := Desired(layout, "0.3.0", true)
	launcher := index(entries, KindDesktopLauncher)
	association := index(entries, KindFileAssociation)
	if launcher < 0 || association < 0 {
		t.Fatalf("missing entries, got %v", entries)
	}
	// The association names the launcher's .desktop file as the default
	// opener; the launcher must be on disk first.
	if launcher > association {
		t.Errorf("launcher at %d applied after association at %d", launcher, association)
	}
}

func TestDesiredRecomputesHandler(t *testing.T) {
	layout := paths.Layout{Root: "/opt/aetos"}

	find := func(entries []Entry, kind Kind) Entry {
		for _, e := range entries {
			if e.Kind == kind {
				return e
			}
		}
		t.Fatalf("no %s entry", kind)
		return Entry{}
	}

	with := find(Desired(layout, "0.3.0", true), KindFileAssociation)
	if with.Handler != layout.BinPath(paths.EditorTarget) {
		t.Errorf("handler = %q, want editor", with.Handler)
	}

	without := Desired(layout, "0.3.0", false)
	if find(without, KindFileAssociation).Handler != textViewerHandler {
		t.Errorf("handler = %q, want text viewer fallback", find(without, KindFileAssociation).Handler)
	}
	for _, e := range without {
		if e.Kind == KindDesktopLauncher {
			t.Error("launcher desired without the editor present")
		}
	}

	// PATH bookkeeping entry is always present.
	if find(without, KindPathEntry).Directory != layout.BinDir() {
		t.Error("path entry should record the bin dir")
	}
}
