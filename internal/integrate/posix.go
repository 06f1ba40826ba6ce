//go:build !windows

package integrate

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aetos-lang/aetosup/internal/assets"
	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// textViewerHandler is the recorded association handler when the
// visual editor is absent. The MIME record subclasses text/plain, so
// the desktop's default text editor opens the files.
const textViewerHandler = "default-text-editor"

const desktopFileName = "aetos-editor.desktop"

// posixApplier writes freedesktop.org integration artifacts into the
// per-user XDG data tree.
type posixApplier struct {
	layout paths.Layout

	applicationsDir string
	mimePackagesDir string
	mimeDir         string
	iconDir         string
	completionsDir  string

	// run executes database-refresh helpers best-effort. Output is
	// discarded; these tools are optional on minimal systems.
	run func(ctx context.Context, name string, args ...string) error
}

func newPlatformApplier(layout paths.Layout) applier {
	return &posixApplier{
		layout:          layout,
		applicationsDir: paths.ApplicationsDir(),
		mimePackagesDir: paths.MimePackagesDir(),
		mimeDir:         paths.MimeDir(),
		iconDir:         paths.IconDir(),
		completionsDir:  paths.CompletionsDir(),
		run:             runQuiet,
	}
}

func runQuiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

func (a *posixApplier) apply(ctx context.Context, e Entry) error {
	switch e.Kind {
	case KindDesktopLauncher:
		return a.applyLauncher(ctx, e)
	case KindFileAssociation:
		return a.applyAssociation(ctx, e)
	case KindShellCompletion:
		return a.applyCompletion(e)
	default:
		return errors.Wrapf(errors.ErrIntegrationUnsupported, "%s on posix", e.Kind)
	}
}

func (a *posixApplier) remove(ctx context.Context, e Entry) error {
	switch e.Kind {
	case KindDesktopLauncher:
		return a.removeLauncher(ctx, e)
	case KindFileAssociation:
		return a.removeAssociation(ctx)
	case KindShellCompletion:
		return removeIfPresent(filepath.Join(a.completionsDir, e.Name))
	default:
		return errors.Wrapf(errors.ErrIntegrationUnsupported, "%s on posix", e.Kind)
	}
}

// applyLauncher writes the .desktop entry and installs the theme icon
// it references, then refreshes the desktop database. Rewriting the
// same file on a re-run is the idempotence contract.
func (a *posixApplier) applyLauncher(ctx context.Context, e Entry) error {
	if err := paths.EnsureDir(a.iconDir, 0); err != nil {
		return err
	}
	iconPath := filepath.Join(a.iconDir, e.Icon+".svg")
	if err := fileutil.AtomicWriteFile(iconPath, assets.Icon(), 0o644); err != nil {
		return errors.Wrap(err, "installing icon")
	}

	if err := paths.EnsureDir(a.applicationsDir, 0); err != nil {
		return err
	}
	path := filepath.Join(a.applicationsDir, desktopFileName)
	if err := fileutil.AtomicWriteFile(path, []byte(a.desktopEntry(e)), 0o644); err != nil {
		return errors.Wrap(err, "writing desktop entry")
	}

	a.refreshApplications(ctx)
	return nil
}

// desktopEntry renders the launcher with context-menu actions that
// invoke the compiler CLI directly.
func (a *posixApplier) desktopEntry(e Entry) string {
	compiler := a.layout.BinPath(paths.CompilerTarget)

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", e.Name)
	b.WriteString("Comment=Visual editor for the Aetos programming language\n")
	fmt.Fprintf(&b, "Exec=%s %%f\n", e.Exec)
	fmt.Fprintf(&b, "Icon=%s\n", e.Icon)
	b.WriteString("Terminal=false\n")
	b.WriteString("Categories=Development;IDE;\n")
	fmt.Fprintf(&b, "MimeType=%s;\n", paths.MimeType)
	b.WriteString("Actions=compile;run;check;\n")

	for _, action := range []struct{ id, name, sub string }{
		{"compile", "Compile", "compile"},
		{"run", "Run", "run"},
		{"check", "Check", "check"},
	} {
		fmt.Fprintf(&b, "\n[Desktop Action %s]\n", action.id)
		fmt.Fprintf(&b, "Name=%s\n", action.name)
		fmt.Fprintf(&b, "Exec=%s %s %%f\n", compiler, action.sub)
	}
	return b.String()
}

const mimeXMLTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<mime-info xmlns="http://www.freedesktop.org/standards/shared-mime-info">
  <mime-type type="%s">
    <comment>Aetos source file</comment>
    <sub-class-of type="text/plain"/>
    <glob pattern="*%s"/>
  </mime-type>
</mime-info>
`

// applyAssociation registers the MIME type and, when the handler is
// the visual editor, marks its launcher as the default opener.
func (a *posixApplier) applyAssociation(ctx context.Context, e Entry) error {
	if err := paths.EnsureDir(a.mimePackagesDir, 0); err != nil {
		return err
	}
	data := fmt.Sprintf(mimeXMLTemplate, e.MimeType, e.Extension)
	path := filepath.Join(a.mimePackagesDir, "aetos.xml")
	if err := fileutil.AtomicWriteFile(path, []byte(data), 0o644); err != nil {
		return errors.Wrap(err, "writing MIME record")
	}
	a.refreshMime(ctx)

	if e.Handler != textViewerHandler {
		if err := a.run(ctx, "xdg-mime", "default", desktopFileName, e.MimeType); err != nil {
			logging.FromContext(ctx).Debug("xdg-mime default failed", "err", err)
		}
	}
	return nil
}

func (a *posixApplier) applyCompletion(e Entry) error {
	if err := paths.EnsureDir(a.completionsDir, 0); err != nil {
		return err
	}
	path := filepath.Join(a.completionsDir, e.Name)
	return fileutil.AtomicWriteFile(path, assets.Completion(), 0o644)
}

func (a *posixApplier) removeLauncher(ctx context.Context, e Entry) error {
	err := errors.CombineErrors(
		removeIfPresent(filepath.Join(a.applicationsDir, desktopFileName)),
		removeIfPresent(filepath.Join(a.iconDir, e.Icon+".svg")))
	a.refreshApplications(ctx)
	return err
}

func (a *posixApplier) removeAssociation(ctx context.Context) error {
	if err := removeIfPresent(filepath.Join(a.mimePackagesDir, "aetos.xml")); err != nil {
		return err
	}
	a.refreshMime(ctx)
	return nil
}

func (a *posixApplier) refreshApplications(ctx context.Context) {
	if err := a.run(ctx, "update-desktop-database", a.applicationsDir); err != nil {
		logging.FromContext(ctx).Debug("update-desktop-database unavailable", "err", err)
	}
}

func (a *posixApplier) refreshMime(ctx context.Context) {
	if err := a.run(ctx, "update-mime-database", a.mimeDir); err != nil {
		logging.FromContext(ctx).Debug("update-mime-database unavailable", "err", err)
	}
}
