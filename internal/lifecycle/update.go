package lifecycle

import (
	"context"

	goversion "github.com/hashicorp/go-version"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/prereq"
)

// Update rebuilds and re-provisions an existing installation. A source
// fetch failure never aborts: the update degrades to a rebuild of the
// local tree.
func (c *Controller) Update(ctx context.Context) error {
	unlock, err := c.lock()
	if err != nil {
		return err
	}
	defer unlock()

	log := logging.FromContext(ctx)

	env, err := c.Prober.Probe(c.Layout)
	if err != nil {
		return err
	}
	if !env.Installed() {
		return errors.NewNotInstalledError()
	}
	if err := c.checkElevation(env); err != nil {
		return err
	}

	c.logVersionChange(ctx, env.Existing.Version, c.Config.Version)

	if _, err := c.Prereq.EnsureToolchain(ctx, env); err != nil {
		return errors.NewUserError(err, "install the Rust toolchain from https://rustup.rs, then re-run aetosup update")
	}

	c.fetchSource(ctx)

	if err := c.provision(ctx, env); err != nil {
		return err
	}
	log.Info("update complete", "version", c.Config.Version)
	return nil
}

// fetchSource pulls newer source before the rebuild. Failures degrade
// to a warning and the local tree is rebuilt as-is.
func (c *Controller) fetchSource(ctx context.Context) {
	cmd := c.Config.FetchCommand
	if len(cmd) == 0 {
		return
	}
	log := logging.FromContext(ctx)
	log.Info("fetching latest source", "dir", c.Builder.SourceDir)

	runCtx := ctx
	if c.Builder.SourceDir != "" {
		runCtx = prereq.WithDir(ctx, c.Builder.SourceDir)
	}
	runner := c.Builder.Runner
	if runner == nil {
		runner = prereq.ExecRunner{}
	}
	if err := runner.Run(runCtx, cmd[0], cmd[1:]...); err != nil {
		log.Warn("source fetch failed; rebuilding from the current local source", "err", err)
	}
}

// logVersionChange compares recorded and target versions so the user
// sees whether this is an upgrade, a downgrade or a rebuild.
func (c *Controller) logVersionChange(ctx context.Context, from, to string) {
	log := logging.FromContext(ctx)

	current, err1 := goversion.NewVersion(from)
	next, err2 := goversion.NewVersion(to)
	if err1 != nil || err2 != nil {
		log.Info("updating installation", "from", from, "to", to)
		return
	}

	switch {
	case next.GreaterThan(current):
		log.Info("upgrading installation", "from", from, "to", to)
	case next.LessThan(current):
		log.Warn("target version is older than the installed one", "installed", from, "target", to)
	default:
		log.Info("reinstalling current version", "version", to)
	}
}
