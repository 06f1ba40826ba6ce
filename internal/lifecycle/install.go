package lifecycle

import (
	"context"
	"path/filepath"
	"time"

	"github.com/aetos-lang/aetosup/internal/appconfig"
	"github.com/aetos-lang/aetosup/internal/assets"
	"github.com/aetos-lang/aetosup/internal/builder"
	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/integrate"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/plan"
	"github.com/aetos-lang/aetosup/internal/probe"
	"github.com/aetos-lang/aetosup/internal/state"
)

// Install provisions a fresh installation, or re-provisions an
// existing one: every step is idempotent, so install over install is
// the documented recovery path for interrupted runs.
func (c *Controller) Install(ctx context.Context) error {
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
	if err := c.checkElevation(env); err != nil {
		return err
	}
	if env.Installed() {
		log.Info("existing installation found; files will be refreshed in place",
			"version", env.Existing.Version)
	}

	if _, err := c.Prereq.EnsureToolchain(ctx, env); err != nil {
		return errors.NewUserError(err, "install the Rust toolchain from https://rustup.rs, then re-run aetosup install")
	}
	c.Prereq.EnsureSystemPackages(ctx, env)

	return c.provision(ctx, env)
}

// provision runs the shared build → plan → integrate → configure →
// verify tail of install and update.
func (c *Controller) provision(ctx context.Context, env *probe.Environment) error {
	log := logging.FromContext(ctx)

	results, err := c.Builder.Build(ctx, desiredSpecs())
	if err != nil {
		return errors.NewUserError(err, "fix the build failure and re-run; see the build output above")
	}
	editorPresent := false
	for _, res := range results {
		if res.Spec.Name == paths.EditorTarget && res.OK() {
			editorPresent = true
		}
	}

	p := plan.Compute(results, c.companionFiles(editorPresent), c.Layout)
	if err := p.Execute(ctx); err != nil {
		return errors.NewSystemError(err,
			"changes already made are left in place; run 'aetosup uninstall' to clean up, then retry")
	}

	entries := integrate.Desired(c.Layout, c.Config.Version, editorPresent)
	applied := c.Integrations.Apply(ctx, entries)

	profileFile := ""
	if env.Existing != nil {
		profileFile = env.Existing.ProfileFile
	}
	if profile, err := c.EnsurePath(ctx, c.Layout.BinDir()); err != nil {
		log.Warn("could not configure PATH automatically; add it manually",
			"dir", c.Layout.BinDir(), "err", err,
			"hint", "append 'export PATH=\""+c.Layout.BinDir()+":$PATH\"' to your shell profile")
	} else if profile != "" {
		profileFile = profile
	}

	st := c.newState(results, applied, profileFile)
	if err := c.Store.Save(st); err != nil {
		return errors.NewSystemError(err,
			"the files were installed but the state record could not be written; re-run the operation")
	}

	c.verify(ctx, st)

	log.Info("installation complete", "version", st.Version, "root", c.Layout.Root)
	if !editorPresent {
		log.Warn("the visual editor was not installed; re-run after fixing its build to add it")
	}
	return nil
}

// companionFiles lists the non-binary files the plan writes: the
// hand-off config (kept when it already exists), example programs and
// the icon asset.
func (c *Controller) companionFiles(editorPresent bool) []plan.File {
	files := []plan.File{}

	if data, err := appconfig.Default(c.Layout, c.Config.Version, editorPresent).Render(); err == nil {
		files = append(files, plan.File{Path: c.Layout.ConfigFile(), Data: data, IfAbsent: true})
	}

	for name, data := range assets.Examples() {
		files = append(files, plan.File{Path: filepath.Join(c.Layout.ExamplesDir(), name), Data: data})
	}

	files = append(files, plan.File{
		Path: filepath.Join(c.Layout.AssetsDir(), assets.IconName+".svg"),
		Data: assets.Icon(),
	})
	return files
}

func (c *Controller) newState(results []builder.Result, applied []integrate.Entry, profileFile string) *state.InstallationState {
	st := &state.InstallationState{
		Version:      c.Config.Version,
		InstalledAt:  time.Now().UTC(),
		Root:         c.Layout.Root,
		Integrations: applied,
		ProfileFile:  profileFile,
		ConfigFile:   c.Layout.ConfigFile(),
	}
	for _, res := range results {
		target := state.Target{Name: res.Spec.Name, Required: res.Spec.Required, Present: res.OK()}
		if res.OK() {
			target.Path = c.Layout.BinPath(res.Spec.Name)
		}
		st.Targets = append(st.Targets, target)
	}
	return st
}
