package integrate

import (
	"context"
	"os"
	"runtime"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
)

// applier applies and removes entries for one OS. Both directions
// treat re-application and absence as success.
type applier interface {
	apply(ctx context.Context, e Entry) error
	remove(ctx context.Context, e Entry) error
}

// Registrar applies integration entries for the running OS. Failures
// are never fatal: desktop integration is cosmetic to the installed
// tools, so every error degrades to a warning and the entry is
// skipped.
type Registrar struct {
	layout  paths.Layout
	applier applier
}

// New creates a Registrar for layout on the running OS.
func New(layout paths.Layout) *Registrar {
	return &Registrar{layout: layout, applier: newPlatformApplier(layout)}
}

// Desired computes the integration set for one run. The file
// association handler is recomputed on every call: the visual editor
// when present, a plain-text viewer fallback otherwise, so installing
// the editor later upgrades the association on the next run. Launcher
// entries come before the association so the handler it names already
// exists when the association is applied.
func Desired(layout paths.Layout, version string, editorPresent bool) []Entry {
	compiler := layout.BinPath(paths.CompilerTarget)
	editor := layout.BinPath(paths.EditorTarget)

	handler := textViewerHandler
	if editorPresent {
		handler = editor
	}

	var entries []Entry
	if runtime.GOOS == "windows" {
		if editorPresent {
			entries = append(entries, StartMenuShortcut("Aetos Editor", editor, "aetos"))
		}
		entries = append(entries,
			StartMenuShortcut("Aetos Compiler", compiler, "aetos"),
			UninstallRegistryEntry("Aetos", version, "aetosup uninstall --yes"))
	} else if editorPresent {
		entries = append(entries, DesktopLauncher("Aetos Editor", editor, "aetos"))
	}

	return append(entries,
		FileAssociation(paths.SourceExt, paths.MimeType, handler),
		PathEntry(layout.BinDir()),
		ShellCompletion(paths.CompilerTarget))
}

// Apply applies each entry and returns the subset that succeeded, in
// application order, for installation-state bookkeeping. PathEntry is
// bookkeeping only; the profile edit belongs to the environment
// configurator.
func (r *Registrar) Apply(ctx context.Context, entries []Entry) []Entry {
	log := logging.FromContext(ctx)

	applied := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == KindPathEntry {
			applied = append(applied, e)
			continue
		}
		if err := r.applier.apply(ctx, e); err != nil {
			if errors.Is(err, errors.ErrIntegrationUnsupported) {
				log.Warn("skipping unsupported integration", "entry", e.String(), "os", runtime.GOOS)
			} else {
				log.Warn("integration failed", "entry", e.String(), "err", err)
			}
			continue
		}
		log.Debug("applied integration", "entry", e.String())
		applied = append(applied, e)
	}
	return applied
}

// Remove reverse-applies entries in reverse order. Absence is success;
// errors are warnings so uninstall always makes all the progress it
// can.
func (r *Registrar) Remove(ctx context.Context, entries []Entry) {
	log := logging.FromContext(ctx)

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Kind == KindPathEntry {
			continue
		}
		if err := r.applier.remove(ctx, e); err != nil {
			if errors.Is(err, errors.ErrIntegrationUnsupported) {
				continue
			}
			log.Warn("could not remove integration", "entry", e.String(), "err", err)
			continue
		}
		log.Debug("removed integration", "entry", e.String())
	}
}

// removeIfPresent deletes a file, treating absence as success.
func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
