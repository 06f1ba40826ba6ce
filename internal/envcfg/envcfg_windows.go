//go:build windows

package envcfg

import (
	"context"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
)

// EnsurePathEntry appends dir to the persistent user PATH value under
// HKCU\Environment. The returned profile file is always empty on
// Windows. Running processes only see the change after a new session.
func EnsurePathEntry(ctx context.Context, dir string) (string, error) {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, "Environment", registry.ALL_ACCESS)
	if err != nil {
		return "", errors.Wrapf(errors.ErrProfileUnwritable, "opening HKCU\\Environment: %v", err)
	}
	defer key.Close()

	current, _, err := key.GetStringValue("Path")
	if err != nil && err != registry.ErrNotExist {
		return "", errors.Wrapf(errors.ErrProfileUnwritable, "reading user PATH: %v", err)
	}
	if pathHasDir(current, dir) {
		return "", nil
	}

	value := dir
	if current != "" {
		value = strings.TrimRight(current, ";") + ";" + dir
	}
	if err := key.SetExpandStringValue("Path", value); err != nil {
		return "", errors.Wrapf(errors.ErrProfileUnwritable, "writing user PATH: %v", err)
	}
	logging.FromContext(ctx).Info("added bin directory to user PATH; open a new terminal to use it", "dir", dir)
	return "", nil
}

// RemovePathEntry removes dir from the persistent user PATH value.
// Absence is success.
func RemovePathEntry(ctx context.Context, profileFile, dir string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.ALL_ACCESS)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "opening HKCU\\Environment: %v", err)
	}
	defer key.Close()

	current, _, err := key.GetStringValue("Path")
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "reading user PATH: %v", err)
	}

	var kept []string
	for _, elem := range strings.Split(current, ";") {
		if elem != dir && elem != "" {
			kept = append(kept, elem)
		}
	}
	if err := key.SetExpandStringValue("Path", strings.Join(kept, ";")); err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "writing user PATH: %v", err)
	}
	logging.FromContext(ctx).Debug("removed bin directory from user PATH", "dir", dir)
	return nil
}
