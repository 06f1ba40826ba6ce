package lifecycle

import (
	"context"
	"os/exec"

	"github.com/aetos-lang/aetosup/internal/builder"
	"github.com/aetos-lang/aetosup/internal/config"
	"github.com/aetos-lang/aetosup/internal/envcfg"
	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/integrate"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/prereq"
	"github.com/aetos-lang/aetosup/internal/probe"
	"github.com/aetos-lang/aetosup/internal/state"
)

// registrar is the integration surface the controller drives.
type registrar interface {
	Apply(ctx context.Context, entries []integrate.Entry) []integrate.Entry
	Remove(ctx context.Context, entries []integrate.Entry)
}

// environmentProber inspects the machine; probe.Prober is the live
// implementation.
type environmentProber interface {
	Probe(layout paths.Layout) (*probe.Environment, error)
}

// Controller runs lifecycle operations against one installation root.
// Collaborator fields are seams for tests; New wires the real ones.
type Controller struct {
	Layout paths.Layout
	Config *config.Config

	Prober  environmentProber
	Prereq  *prereq.Installer
	Builder *builder.Builder
	Store   *state.Store

	Integrations registrar

	// EnsurePath and RemovePath manage the persistent PATH entry.
	EnsurePath func(ctx context.Context, dir string) (string, error)
	RemovePath func(ctx context.Context, profileFile, dir string) error

	// LookPath resolves binaries for post-install verification.
	LookPath func(file string) (string, error)
}

// New creates a Controller wired to the live system.
func New(cfg *config.Config) *Controller {
	layout := paths.NewLayout(cfg.Root)
	return &Controller{
		Layout:       layout,
		Config:       cfg,
		Prober:       probe.New(),
		Prereq:       prereq.New(),
		Builder:      &builder.Builder{SourceDir: cfg.SourceDir, Command: cfg.BuildCommand},
		Store:        state.NewStore(layout),
		Integrations: integrate.New(layout),
		EnsurePath:   envcfg.EnsurePathEntry,
		RemovePath:   envcfg.RemovePathEntry,
		LookPath:     exec.LookPath,
	}
}

// desiredSpecs lists the build targets of one operation: the compiler
// is required, the visual editor is optional.
func desiredSpecs() []builder.Spec {
	return []builder.Spec{
		{Name: paths.CompilerTarget, Required: true},
		{Name: paths.EditorTarget},
	}
}

// lock takes the installation root lock, translating contention into a
// user-facing error.
func (c *Controller) lock() (func(), error) {
	unlock, err := c.Store.Lock()
	if err != nil {
		if errors.Is(err, errors.ErrLocked) {
			return nil, errors.NewUserError(err,
				"another aetosup operation is running; wait for it or delete "+c.Layout.LockFile()+" if it crashed")
		}
		return nil, err
	}
	return unlock, nil
}

// checkElevation enforces the Windows precondition: Program Files and
// registry writes need an elevated process. POSIX installs are
// per-user and never require elevation here.
func (c *Controller) checkElevation(env *probe.Environment) error {
	if env.Family == probe.FamilyWindows && !env.Elevated {
		return errors.NewUserError(errors.ErrElevationRequired,
			"re-run aetosup from an elevated (Administrator) terminal")
	}
	return nil
}
