//go:build windows

package integrate

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows/registry"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// textViewerHandler is the recorded association handler when the
// visual editor is absent.
const textViewerHandler = "notepad.exe"

// progID is the programmatic identifier the extension maps to under
// HKCU\Software\Classes.
const progID = "Aetos.Source"

const uninstallKeyPath = `Software\Microsoft\Windows\CurrentVersion\Uninstall\Aetos`

// windowsApplier writes per-user integration: HKCU class registrations
// and a Start Menu folder. Per-user keys avoid requiring elevation for
// the integration step itself.
type windowsApplier struct {
	layout       paths.Layout
	startMenuDir string
}

func newPlatformApplier(layout paths.Layout) applier {
	return &windowsApplier{layout: layout, startMenuDir: paths.StartMenuDir()}
}

func (a *windowsApplier) apply(ctx context.Context, e Entry) error {
	switch e.Kind {
	case KindFileAssociation:
		return a.applyAssociation(e)
	case KindStartMenuShortcut:
		return a.applyShortcut(e)
	case KindUninstallRegistry:
		return a.applyUninstallEntry(e)
	default:
		return errors.Wrapf(errors.ErrIntegrationUnsupported, "%s on windows", e.Kind)
	}
}

func (a *windowsApplier) remove(ctx context.Context, e Entry) error {
	switch e.Kind {
	case KindFileAssociation:
		return a.removeAssociation(e)
	case KindStartMenuShortcut:
		return removeIfPresent(a.shortcutPath(e))
	case KindUninstallRegistry:
		return deleteKeyTree(uninstallKeyPath)
	default:
		return errors.Wrapf(errors.ErrIntegrationUnsupported, "%s on windows", e.Kind)
	}
}

// applyAssociation maps the extension to the prog ID and registers
// Open/Compile/Run/Check shell verbs. CreateKey opens existing keys,
// so re-running overwrites the same values.
func (a *windowsApplier) applyAssociation(e Entry) error {
	extKey, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+e.Extension, registry.ALL_ACCESS)
	if err != nil {
		return errors.Wrap(err, "registering extension")
	}
	defer extKey.Close()
	if err := extKey.SetStringValue("", progID); err != nil {
		return err
	}
	if err := extKey.SetStringValue("Content Type", e.MimeType); err != nil {
		return err
	}

	classKey, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+progID, registry.ALL_ACCESS)
	if err != nil {
		return errors.Wrap(err, "registering prog ID")
	}
	defer classKey.Close()
	if err := classKey.SetStringValue("", "Aetos source file"); err != nil {
		return err
	}

	if err := a.setVerb(`shell\open\command`, fmt.Sprintf(`"%s" "%%1"`, e.Handler)); err != nil {
		return err
	}

	compiler := a.layout.BinPath(paths.CompilerTarget)
	for _, verb := range []struct{ name, sub string }{
		{"Compile", "compile"},
		{"Run", "run"},
		{"Check", "check"},
	} {
		command := fmt.Sprintf(`"%s" %s "%%1"`, compiler, verb.sub)
		if err := a.setVerb(fmt.Sprintf(`shell\%s\command`, verb.name), command); err != nil {
			return err
		}
	}
	return nil
}

func (a *windowsApplier) setVerb(subPath, command string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER,
		`Software\Classes\`+progID+`\`+subPath, registry.ALL_ACCESS)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.SetStringValue("", command)
}

// applyShortcut writes a launcher script into the Start Menu folder.
// A cmd script behaves like a shortcut for search and pinning without
// needing COM to author a .lnk.
func (a *windowsApplier) applyShortcut(e Entry) error {
	if a.startMenuDir == "" {
		return errors.Wrap(errors.ErrIntegrationUnsupported, "APPDATA not set")
	}
	if err := paths.EnsureDir(a.startMenuDir, 0); err != nil {
		return err
	}
	script := fmt.Sprintf("@echo off\r\nstart \"\" \"%s\" %%*\r\n", e.Target)
	return fileutil.AtomicWriteFile(a.shortcutPath(e), []byte(script), 0o755)
}

func (a *windowsApplier) shortcutPath(e Entry) string {
	return filepath.Join(a.startMenuDir, e.Name+".cmd")
}

// applyUninstallEntry registers the Add/Remove Programs record.
func (a *windowsApplier) applyUninstallEntry(e Entry) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, uninstallKeyPath, registry.ALL_ACCESS)
	if err != nil {
		return errors.Wrap(err, "creating uninstall key")
	}
	defer key.Close()

	for name, value := range map[string]string{
		"DisplayName":     e.DisplayName,
		"DisplayVersion":  e.Version,
		"UninstallString": e.UninstallCommand,
		"InstallLocation": a.layout.Root,
		"Publisher":       "Aetos Project",
	} {
		if err := key.SetStringValue(name, value); err != nil {
			return err
		}
	}
	return key.SetDWordValue("NoModify", 1)
}

func (a *windowsApplier) removeAssociation(e Entry) error {
	return errors.CombineErrors(
		deleteKeyTree(`Software\Classes\`+e.Extension),
		deleteKeyTree(`Software\Classes\`+progID))
}

// deleteKeyTree removes a key and its subkeys; a missing key is
// success.
func deleteKeyTree(path string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.ALL_ACCESS)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return err
	}
	names, err := key.ReadSubKeyNames(-1)
	key.Close()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := deleteKeyTree(path + `\` + name); err != nil {
			return err
		}
	}
	return registry.DeleteKey(registry.CURRENT_USER, path)
}
