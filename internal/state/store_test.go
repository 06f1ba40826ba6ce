package state

import (
	"os"
	"testing"
	"time"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/integrate"
	"github.com/aetos-lang/aetosup/internal/paths"
)

func testState(root string) *InstallationState {
	return &InstallationState{
		Version:     "0.3.0",
		InstalledAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Root:        root,
		Targets: []Target{
			{Name: paths.CompilerTarget, Required: true, Present: true, Path: root + "/bin/aetosc"},
			{Name: paths.EditorTarget, Required: false, Present: false},
		},
		Integrations: []integrate.Entry{
			integrate.PathEntry(root + "/bin"),
			integrate.FileAssociation(paths.SourceExt, paths.MimeType, "aetosc"),
		},
		ProfileFile: "/home/u/.bashrc",
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(paths.NewLayout(t.TempDir()))

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st != nil {
		t.Errorf("Load() on empty root = %+v, want nil", st)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewStore(paths.NewLayout(root))
	want := testState(root)

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil {
		t.Fatal("Load() = nil after Save")
	}
	if got.Version != want.Version {
		t.Errorf("Version = %q, want %q", got.Version, want.Version)
	}
	if len(got.Targets) != 2 {
		t.Fatalf("Targets = %d, want 2", len(got.Targets))
	}
	if !got.HasPresent(paths.CompilerTarget) {
		t.Error("compiler target should be present")
	}
	if got.HasPresent(paths.EditorTarget) {
		t.Error("editor target should be absent")
	}
	if len(got.Integrations) != 2 {
		t.Fatalf("Integrations = %d, want 2", len(got.Integrations))
	}
	if got.Integrations[1].Kind != integrate.KindFileAssociation {
		t.Errorf("second integration kind = %q", got.Integrations[1].Kind)
	}
}

func TestStore_SaveIsAtomicRewrite(t *testing.T) {
	root := t.TempDir()
	store := NewStore(paths.NewLayout(root))

	st := testState(root)
	if err := store.Save(st); err != nil {
		t.Fatal(err)
	}
	st.Version = "0.4.0"
	if err := store.Save(st); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != "0.4.0" {
		t.Errorf("Version = %q, want 0.4.0", got.Version)
	}
}

func TestStore_DeleteIdempotent(t *testing.T) {
	root := t.TempDir()
	store := NewStore(paths.NewLayout(root))

	if err := store.Delete(); err != nil {
		t.Errorf("Delete() on missing record error = %v", err)
	}

	if err := store.Save(testState(root)); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestStore_Lock(t *testing.T) {
	root := t.TempDir()
	store := NewStore(paths.NewLayout(root))

	unlock, err := store.Lock()
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	if _, err := store.Lock(); !errors.Is(err, errors.ErrLocked) {
		t.Errorf("second Lock() error = %v, want ErrLocked", err)
	}

	unlock()

	if _, err := os.Stat(paths.NewLayout(root).LockFile()); !os.IsNotExist(err) {
		t.Error("lock file should be removed on unlock")
	}

	unlock2, err := store.Lock()
	if err != nil {
		t.Fatalf("Lock() after unlock error = %v", err)
	}
	unlock2()
}

func TestStore_LoadCorrupt(t *testing.T) {
	root := t.TempDir()
	layout := paths.NewLayout(root)
	if err := os.WriteFile(layout.StateFile(), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(layout).Load(); err == nil {
		t.Error("expected error for corrupt state file")
	}
}
