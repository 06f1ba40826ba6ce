//go:build !windows

package envcfg

import (
	"context"
	"os"

	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
)

// EnsurePathEntry makes dir reachable from new shells and returns the
// profile file that now carries the managed block, for installation
// state bookkeeping. When dir is already on the live PATH the profile
// is left untouched and the returned file is empty.
func EnsurePathEntry(ctx context.Context, dir string) (string, error) {
	log := logging.FromContext(ctx)

	if pathHasDir(os.Getenv("PATH"), dir) {
		log.Debug("PATH already contains bin directory", "dir", dir)
		return "", nil
	}

	profile, err := paths.ProfileFile()
	if err != nil {
		return "", err
	}
	if err := EnsureProfileBlock(profile, dir); err != nil {
		return "", err
	}
	log.Info("added PATH entry to shell profile", "profile", profile, "dir", dir)
	return profile, nil
}

// RemovePathEntry removes the managed block from the recorded profile
// file. dir is unused on POSIX; the block markers identify what to
// remove.
func RemovePathEntry(ctx context.Context, profileFile, dir string) error {
	if profileFile == "" {
		return nil
	}
	if err := RemoveProfileBlock(profileFile); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("removed PATH block", "profile", profileFile)
	return nil
}
