package state

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// Store reads and writes the installation state for one install root.
type Store struct {
	layout paths.Layout
}

// NewStore creates a Store for the given layout.
func NewStore(layout paths.Layout) *Store {
	return &Store{layout: layout}
}

// Load reads the installation state record.
// Returns (nil, nil) when no record exists: "not installed" is a normal
// probe outcome, not an error.
func (s *Store) Load() (*InstallationState, error) {
	data, err := os.ReadFile(s.layout.StateFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading state file")
	}

	var st InstallationState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(err, "parsing state file")
	}
	return &st, nil
}

// Save atomically rewrites the installation state record.
func (s *Store) Save(st *InstallationState) error {
	if err := paths.EnsureDir(s.layout.Root, 0); err != nil {
		return errors.Wrap(err, "creating install root")
	}
	if err := fileutil.AtomicWriteYAML(s.layout.StateFile(), st); err != nil {
		return errors.Wrap(err, "writing state file")
	}
	return nil
}

// Delete removes the state record. A missing record is success.
func (s *Store) Delete() error {
	if err := os.Remove(s.layout.StateFile()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "deleting state file")
	}
	return nil
}

// Lock takes the advisory lock on the installation root for the duration
// of one lifecycle operation. It returns an unlock function, or
// errors.ErrLocked when another process holds the lock. The lock file
// records the holder's PID for the error message.
func (s *Store) Lock() (func(), error) {
	if err := paths.EnsureDir(s.layout.Root, 0); err != nil {
		return nil, errors.Wrap(err, "creating install root")
	}

	lockPath := s.layout.LockFile()
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			holder, _ := os.ReadFile(lockPath)
			return nil, errors.Wrapf(errors.ErrLocked, "lock held by PID %s at %s", string(holder), lockPath)
		}
		return nil, errors.Wrap(err, "creating lock file")
	}

	fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()

	return func() { os.Remove(lockPath) }, nil
}
