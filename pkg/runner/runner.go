// Package runner implements types.Runner over os/exec. Package managers
// keep their own stdio (progress bars, sudo prompts), so Run inherits the
// process streams.
package runner

import (
	"context"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

type execRunner struct {
	logger zerolog.Logger
}

// New creates an exec-backed Runner
func New() types.Runner {
	return &execRunner{logger: logging.GetLogger("runner")}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	return r.RunIn(ctx, "", name, args...)
}

func (r *execRunner) RunIn(ctx context.Context, dir, name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func (r *execRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	logging.LogCommand(name, args)

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

func (r *execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
