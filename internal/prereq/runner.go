package prereq

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/aetos-lang/aetosup/internal/errors"
)

// Runner executes external processes. Implementations must honor context
// cancellation.
type Runner interface {
	// Run executes a command, streaming output to the user's terminal.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its combined trimmed output.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

type dirKey struct{}

// WithDir returns a context that makes ExecRunner execute commands in
// dir instead of the process working directory.
func WithDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, dirKey{}, dir)
}

func dirFromContext(ctx context.Context) string {
	dir, _ := ctx.Value(dirKey{}).(string)
	return dir
}

// ExecRunner runs commands on the live system. Output is streamed to
// os.Stdout and os.Stderr, and stdin is connected to support interactive
// installers (e.g. rustup's prompts).
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run executes a command attached to the user's terminal.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dirFromContext(ctx)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running %s", name)
	}
	return nil
}

// Output executes a command and captures its output.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dirFromContext(ctx)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.Wrapf(err, "running %s", name)
	}
	return strings.TrimSpace(string(out)), nil
}
