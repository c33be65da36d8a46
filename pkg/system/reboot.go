package system

import (
	"context"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// MaybeReboot offers to reboot the machine after a full bootstrap run.
// The default answer comes from settings and is conservative. Uses
// systemctl where available, the plain reboot command otherwise
// (openrc hosts).
func MaybeReboot(ctx context.Context, run types.Runner, confirm types.Confirmer, opts types.Options, defaultYes bool) error {
	logger := logging.GetLogger("system.reboot")

	if opts.SkipReboot || opts.DryRun {
		logger.Debug().Msg("reboot skipped")
		return nil
	}

	if !confirm.Confirm("Reboot now to finish the setup?", defaultYes) {
		logger.Info().Msg("reboot declined")
		return nil
	}

	if _, err := run.LookPath("systemctl"); err == nil {
		if err := run.Run(ctx, "systemctl", "reboot"); err != nil {
			return errors.Wrap(err, errors.ErrReboot, "systemctl reboot failed")
		}
		return nil
	}

	if err := run.Run(ctx, "reboot"); err != nil {
		return errors.Wrap(err, errors.ErrReboot, "reboot failed")
	}
	return nil
}
