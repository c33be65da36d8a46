// Package system performs the one-shot host tweaks that round off a
// bootstrap run: default shell change and the reboot prompt. Both shell
// out and both are optional; their failures never abort the run.
package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// CurrentShell returns the base name of the login shell from $SHELL
func CurrentShell() string {
	return filepath.Base(os.Getenv("SHELL"))
}

// EnsureShell changes the login shell to the named one via chsh when it
// differs from the current shell. Asks first; a declined change is not an
// error.
func EnsureShell(ctx context.Context, run types.Runner, confirm types.Confirmer, opts types.Options, shell string) error {
	logger := logging.GetLogger("system.shell")

	if shell == "" || CurrentShell() == shell {
		logger.Debug().Str("shell", shell).Msg("login shell already set")
		return nil
	}

	shellPath, err := run.LookPath(shell)
	if err != nil {
		return errors.Wrapf(err, errors.ErrShellChange,
			"shell %s is not installed", shell)
	}

	prompt := fmt.Sprintf("Change login shell to %s?", shellPath)
	if !confirm.Confirm(prompt, true) {
		logger.Info().Str("shell", shell).Msg("shell change declined")
		return nil
	}

	if opts.DryRun {
		logger.Info().Str("shell", shellPath).Msg("dry-run: would change login shell")
		return nil
	}

	if err := run.Run(ctx, "chsh", "-s", shellPath); err != nil {
		return errors.Wrapf(err, errors.ErrShellChange,
			"chsh failed for %s", shellPath)
	}

	logger.Info().Str("shell", shellPath).Msg("login shell changed")
	return nil
}
