package plan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aetos-lang/aetosup/internal/builder"
	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// Step is one idempotent filesystem operation.
type Step interface {
	// Describe returns a one-line human description for logging.
	Describe() string

	// Run applies the step. Re-running a completed step is a no-op or
	// an equivalent overwrite, never an error.
	Run(ctx context.Context) error
}

// File describes one companion file the plan writes (config, example
// sources, completion script, icon).
type File struct {
	// Path is the absolute destination.
	Path string

	Data []byte
	Perm os.FileMode

	// IfAbsent skips the write when the file already exists. Used for
	// config.toml so update never clobbers user edits.
	IfAbsent bool
}

// Plan is an ordered sequence of steps owned by a single lifecycle
// operation.
type Plan struct {
	Steps []Step
}

// Compute derives the plan for a set of build results and companion
// files. Only successful builds produce copy steps; absent optional
// targets are simply skipped. Parent directories are created before
// any file lands in them.
func Compute(results []builder.Result, files []File, layout paths.Layout) *Plan {
	p := &Plan{}

	dirs := map[string]bool{}
	ensureDirOnce := func(dir string) {
		if dirs[dir] {
			return
		}
		dirs[dir] = true
		p.Steps = append(p.Steps, ensureDir{path: dir})
	}

	ensureDirOnce(layout.BinDir())
	for _, res := range results {
		if !res.OK() {
			continue
		}
		p.Steps = append(p.Steps, copyFile{
			src:        res.ArtifactPath,
			dst:        layout.BinPath(res.Spec.Name),
			executable: true,
		})
	}

	for _, f := range files {
		ensureDirOnce(filepath.Dir(f.Path))
		p.Steps = append(p.Steps, writeFile{file: f})
	}

	return p
}

// Execute runs every step in order. The first failure aborts; prior
// steps are left in place since each is independently idempotent.
func (p *Plan) Execute(ctx context.Context) error {
	log := logging.FromContext(ctx)
	for _, step := range p.Steps {
		log.Debug("plan step", "op", step.Describe())
		if err := step.Run(ctx); err != nil {
			return errors.Wrapf(err, "plan step %q", step.Describe())
		}
	}
	return nil
}

type ensureDir struct {
	path string
}

func (s ensureDir) Describe() string { return fmt.Sprintf("mkdir -p %s", s.path) }

func (s ensureDir) Run(context.Context) error {
	return paths.EnsureDir(s.path, 0)
}

type copyFile struct {
	src        string
	dst        string
	executable bool
}

func (s copyFile) Describe() string { return fmt.Sprintf("install %s -> %s", s.src, s.dst) }

// Run copies the built artifact into place, always overwriting. A
// missing source means the builder and planner disagree about what was
// built, which is never recoverable.
func (s copyFile) Run(context.Context) error {
	if !fileutil.Exists(s.src) {
		return errors.Wrapf(errors.ErrArtifactMissing, "%s", s.src)
	}
	perm := os.FileMode(0o644)
	if s.executable {
		perm = 0o755
	}
	return fileutil.CopyFile(s.src, s.dst, perm)
}

type writeFile struct {
	file File
}

func (s writeFile) Describe() string { return fmt.Sprintf("write %s", s.file.Path) }

func (s writeFile) Run(ctx context.Context) error {
	if s.file.IfAbsent && fileutil.Exists(s.file.Path) {
		logging.FromContext(ctx).Debug("keeping existing file", "path", s.file.Path)
		return nil
	}
	perm := s.file.Perm
	if perm == 0 {
		perm = 0o644
	}
	return fileutil.AtomicWriteFile(s.file.Path, s.file.Data, perm)
}
