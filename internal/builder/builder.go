package builder

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/prereq"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// defaultCommand is the build provider invocation; the target name is
// appended as the final argument.
var defaultCommand = []string{"cargo", "build", "--release", "--bin"}

// Spec names one target to build.
type Spec struct {
	// Name is the binary name, which is also the provider's build
	// target name.
	Name string

	// Required marks targets whose build failure aborts the whole
	// operation.
	Required bool
}

// Result is the outcome of one provider invocation. Failed optional
// targets carry Err but do not fail the operation; the target is
// simply absent from later stages.
type Result struct {
	Spec Spec

	// ArtifactPath is the built binary, set only on success.
	ArtifactPath string

	Err error
}

// OK reports whether the artifact was built and found on disk.
func (r Result) OK() bool {
	return r.Err == nil
}

// Builder runs the build provider once per target.
type Builder struct {
	// Runner executes the provider. Defaults to streaming exec.
	Runner prereq.Runner

	// SourceDir is the tree the provider runs in. Defaults to the
	// current directory.
	SourceDir string

	// Command overrides the provider invocation; the target name is
	// appended. Empty means the default cargo invocation.
	Command []string
}

// New creates a Builder running the default provider in dir.
func New(dir string) *Builder {
	return &Builder{SourceDir: dir}
}

func (b *Builder) runner() prereq.Runner {
	if b.Runner != nil {
		return b.Runner
	}
	return prereq.ExecRunner{}
}

func (b *Builder) command() []string {
	if len(b.Command) > 0 {
		return b.Command
	}
	return defaultCommand
}

// ArtifactPath returns where the provider leaves the binary for a
// target name.
func (b *Builder) ArtifactPath(name string) string {
	return filepath.Join(b.SourceDir, "target", "release", paths.ExeName(name))
}

// Build invokes the provider for each spec. Required targets are built
// first; a required failure short-circuits before any optional build
// and returns ErrBuildFailed. Optional failures are recorded on the
// Result and logged, never returned.
func (b *Builder) Build(ctx context.Context, specs []Spec) ([]Result, error) {
	log := logging.FromContext(ctx)

	ordered := make([]Spec, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Required && !ordered[j].Required
	})

	results := make([]Result, 0, len(ordered))
	for _, spec := range ordered {
		log.Info("building target", "target", spec.Name)
		res := b.buildOne(ctx, spec)
		results = append(results, res)

		if res.Err == nil {
			continue
		}
		if spec.Required {
			return results, errors.CombineErrors(
				errors.Wrapf(errors.ErrBuildFailed, "required target %s", spec.Name), res.Err)
		}
		log.Warn("optional target build failed; continuing without it",
			"target", spec.Name, "err", res.Err)
	}
	return results, nil
}

func (b *Builder) buildOne(ctx context.Context, spec Spec) Result {
	res := Result{Spec: spec}

	cmd := append(append([]string{}, b.command()...), spec.Name)
	runCtx := ctx
	if b.SourceDir != "" {
		runCtx = prereq.WithDir(ctx, b.SourceDir)
	}
	if err := b.runner().Run(runCtx, cmd[0], cmd[1:]...); err != nil {
		res.Err = errors.Wrapf(err, "build provider failed for %s", spec.Name)
		return res
	}

	artifact := b.ArtifactPath(spec.Name)
	if !fileutil.Exists(artifact) {
		res.Err = errors.Newf("build provider reported success but %s is missing", artifact)
		return res
	}
	res.ArtifactPath = artifact
	return res
}
