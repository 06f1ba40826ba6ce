package lifecycle

import (
	"context"
	"os"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
)

// Uninstall removes the installation: recorded integrations are
// reverse-applied, the managed PATH entry is removed, and the install
// root is deleted along with the state record. Already-missing pieces
// are success, so a partially-failed install can always be cleaned up.
func (c *Controller) Uninstall(ctx context.Context) error {
	log := logging.FromContext(ctx)

	st, err := c.Store.Load()
	if err != nil {
		return err
	}
	if st == nil {
		return errors.NewNotInstalledError()
	}

	unlock, err := c.lock()
	if err != nil {
		return err
	}
	defer unlock()

	env, err := c.Prober.Probe(c.Layout)
	if err != nil {
		return err
	}
	if err := c.checkElevation(env); err != nil {
		return err
	}

	c.Integrations.Remove(ctx, st.Integrations)

	if err := c.RemovePath(ctx, st.ProfileFile, c.Layout.BinDir()); err != nil {
		log.Warn("could not remove the PATH entry; remove it manually",
			"profile", st.ProfileFile, "err", err)
	}

	if err := os.RemoveAll(c.Layout.Root); err != nil {
		return errors.NewSystemError(err, "remove "+c.Layout.Root+" manually")
	}
	if err := c.Store.Delete(); err != nil {
		return err
	}

	log.Info("uninstall complete", "root", c.Layout.Root)
	return nil
}
