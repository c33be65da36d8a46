package packages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// AURBaseURL is where AUR package repositories are cloned from
const AURBaseURL = "https://aur.archlinux.org"

// AURHelper drives an AUR helper (paru by default). Helpers wrap pacman,
// so they also answer queries for official packages; they invoke sudo
// themselves and must not be run through it.
type AURHelper struct {
	helper  string
	run     types.Runner
	confirm types.Confirmer
	opts    types.Options
	logger  zerolog.Logger
}

// NewAURHelper creates a Manager backed by the named helper binary
func NewAURHelper(helper string, run types.Runner, confirm types.Confirmer, opts types.Options) *AURHelper {
	return &AURHelper{
		helper:  helper,
		run:     run,
		confirm: confirm,
		opts:    opts,
		logger:  logging.GetLogger("packages.aur"),
	}
}

func (a *AURHelper) Name() string { return a.helper }

// Ensure makes the helper binary available, building it from the AUR
// after confirmation if it is missing. A declined build is a hard error:
// the helper is a mandatory dependency of the AUR install step.
func (a *AURHelper) Ensure(ctx context.Context) error {
	if _, err := a.run.LookPath(a.helper); err == nil {
		return nil
	}

	prompt := fmt.Sprintf("AUR helper %q is not installed. Build it from the AUR now?", a.helper)
	if !a.confirm.Confirm(prompt, true) {
		return errors.Newf(errors.ErrHelperDeclined,
			"AUR helper %s is required but its installation was declined", a.helper)
	}

	if a.opts.DryRun {
		a.logger.Info().Str("helper", a.helper).Msg("dry-run: would build AUR helper")
		return nil
	}
	return a.bootstrap(ctx)
}

// bootstrap clones the helper's AUR repository and builds it with makepkg
func (a *AURHelper) bootstrap(ctx context.Context) error {
	buildDir, err := os.MkdirTemp("", "aur-"+a.helper+"-")
	if err != nil {
		return errors.Wrap(err, errors.ErrHelperMissing, "cannot create build directory")
	}
	defer func() {
		_ = os.RemoveAll(buildDir)
	}()

	repo := fmt.Sprintf("%s/%s.git", AURBaseURL, a.helper)
	cloneDir := filepath.Join(buildDir, a.helper)

	a.logger.Info().Str("repo", repo).Str("dir", cloneDir).Msg("building AUR helper")

	if err := a.run.Run(ctx, "git", "clone", repo, cloneDir); err != nil {
		return errors.Wrapf(err, errors.ErrHelperMissing, "cannot clone %s", repo)
	}
	if err := a.run.RunIn(ctx, cloneDir, "makepkg", "-si", "--noconfirm"); err != nil {
		return errors.Wrapf(err, errors.ErrHelperMissing, "makepkg failed for %s", a.helper)
	}
	return nil
}

func (a *AURHelper) IsInstalled(ctx context.Context, name string) bool {
	_, err := a.run.Output(ctx, a.helper, "-Qi", name)
	return err == nil
}

func (a *AURHelper) Install(ctx context.Context, names []string) error {
	args := append([]string{"-S", "--needed", "--noconfirm"}, names...)
	if a.opts.DryRun {
		a.logger.Info().Strs("command", append([]string{a.helper}, args...)).Msg("dry-run: would install")
		return nil
	}
	if err := a.run.Run(ctx, a.helper, args...); err != nil {
		return errors.Wrapf(err, errors.ErrPkgInstall,
			"%s failed to install %s", a.helper, strings.Join(names, ", "))
	}
	return nil
}

// Verify interface compliance
var (
	_ Manager = (*Pacman)(nil)
	_ Manager = (*Portage)(nil)
	_ Manager = (*AURHelper)(nil)
)
