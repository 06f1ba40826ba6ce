package lifecycle

import (
	"context"

	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/state"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// verify checks post-conditions after provisioning: every target
// recorded present must exist and be executable, and the compiler
// should resolve on PATH. Failures are reported, never rolled back;
// re-running install is the repair path.
func (c *Controller) verify(ctx context.Context, st *state.InstallationState) {
	log := logging.FromContext(ctx)

	for _, target := range st.Targets {
		if !target.Present {
			continue
		}
		switch {
		case !fileutil.Exists(target.Path):
			log.Warn("verification: installed binary is missing", "target", target.Name, "path", target.Path)
		case !fileutil.IsExecutable(target.Path):
			log.Warn("verification: installed binary is not executable", "target", target.Name, "path", target.Path)
		default:
			log.Debug("verified target", "target", target.Name, "path", target.Path)
		}
	}

	if _, err := c.LookPath(paths.ExeName(paths.CompilerTarget)); err != nil {
		log.Info("aetosc is not on PATH in this shell yet; open a new shell or source your profile")
	}
}
