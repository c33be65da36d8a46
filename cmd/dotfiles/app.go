package dotfiles

import (
	"context"
	"path/filepath"

	"github.com/moxi-git/dotfiles/pkg/config"
	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/filesystem"
	"github.com/moxi-git/dotfiles/pkg/linker"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/packages"
	"github.com/moxi-git/dotfiles/pkg/paths"
	"github.com/moxi-git/dotfiles/pkg/runner"
	"github.com/moxi-git/dotfiles/pkg/system"
	"github.com/moxi-git/dotfiles/pkg/types"
	"github.com/moxi-git/dotfiles/pkg/ui/confirm"
	"github.com/moxi-git/dotfiles/pkg/ui/output"
)

// app wires the capabilities for one invocation
type app struct {
	opts       types.Options
	settings   *config.Settings
	sourceRoot string

	fs      types.FS
	run     types.Runner
	confirm types.Confirmer
	out     *output.Writer
}

// newApp resolves the checkout, loads settings and assembles the
// capability set. Auto-confirm and dry-run both suppress prompting.
func newApp(flags *rootFlags) (*app, error) {
	sourceRoot, err := paths.SourceRoot(flags.source)
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(sourceRoot)
	if err != nil {
		return nil, err
	}

	opts := types.Options{
		AutoConfirm:  flags.yes,
		DryRun:       flags.dryRun,
		SkipDots:     flags.noDots,
		SkipPackages: flags.noPackages,
		SkipReboot:   flags.noReboot,
	}

	var confirmer types.Confirmer = confirm.NewConsole()
	if opts.AutoConfirm || opts.DryRun {
		confirmer = confirm.Auto{}
	}

	return &app{
		opts:       opts,
		settings:   settings,
		sourceRoot: sourceRoot,
		fs:         filesystem.NewOS(),
		run:        runner.New(),
		confirm:    confirmer,
		out:        output.New(),
	}, nil
}

// runLink executes the Link Installer over the configs tree
func (a *app) runLink() error {
	homeRoot, err := paths.HomeDir()
	if err != nil {
		return err
	}

	configsRoot := paths.ConfigsRoot(a.sourceRoot)
	exclude := linker.ExcludeSet(linker.DefaultExcludes, a.settings.Link.Exclude)

	a.out.Title("Linking configs from %s", configsRoot)

	l := linker.New(a.fs, a.confirm, a.opts)
	results, err := l.InstallTree(configsRoot, homeRoot, exclude)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch r.Outcome {
		case types.OutcomeCreated:
			a.out.Success("  linked   %s", r.Target.Destination)
		case types.OutcomeReplaced:
			a.out.Success("  replaced %s", r.Target.Destination)
		case types.OutcomeSkippedCorrect:
			a.out.Muted("  ok       %s", r.Target.Destination)
		case types.OutcomeSkippedDeclined:
			a.out.Warning("  kept     %s", r.Target.Destination)
		case types.OutcomeError:
			a.out.Error("  failed   %s: %v", r.Target.Destination, r.Err)
		}
	}

	s := linker.Summarize(results)
	a.out.Info("%d created, %d replaced, %d already linked, %d kept, %d failed",
		s.Created, s.Replaced, s.Skipped, s.Declined, s.Errors)
	return nil
}

// runPackages installs the manifest through the distro's package manager
func (a *app) runPackages(ctx context.Context) error {
	logger := logging.GetLogger("cmd.packages")

	manifest, err := config.LoadManifest(a.fs, filepath.Join(a.sourceRoot, paths.ManifestFileName))
	if err != nil {
		return err
	}
	if manifest.Empty() {
		a.out.Muted("No package manifest, skipping packages")
		return nil
	}

	distro, err := packages.Detect(a.fs)
	if err != nil {
		return err
	}
	logger.Info().Str("distro", string(distro)).Msg("detected distribution")

	switch distro {
	case packages.DistroArch:
		a.out.Title("Installing packages with pacman")
		if err := packages.Sync(ctx, packages.NewPacman(a.run, a.opts), manifest.Pacman); err != nil {
			return err
		}

		if len(manifest.Aur) > 0 {
			helper := packages.NewAURHelper(a.settings.Core.AURHelper, a.run, a.confirm, a.opts)
			if err := helper.Ensure(ctx); err != nil {
				return err
			}
			a.out.Title("Installing AUR packages with %s", helper.Name())
			if err := packages.Sync(ctx, helper, manifest.Aur); err != nil {
				return err
			}
		}

	case packages.DistroGentoo:
		a.out.Title("Installing packages with portage")
		if err := packages.Sync(ctx, packages.NewPortage(a.run, a.opts), manifest.Portage); err != nil {
			return err
		}

	default:
		return errors.Newf(errors.ErrDistroUnknown, "no package manager for %s", distro)
	}

	return nil
}

// runInstall is the full bootstrap: packages, links, shell, reboot
func (a *app) runInstall(ctx context.Context) error {
	if !a.opts.SkipPackages {
		if err := a.runPackages(ctx); err != nil {
			return err
		}
	}

	if !a.opts.SkipDots {
		if err := a.runLink(); err != nil {
			return err
		}
	}

	if err := system.EnsureShell(ctx, a.run, a.confirm, a.opts, a.settings.Core.Shell); err != nil {
		// Shell change is a convenience, not a precondition
		a.out.Warning("Shell change failed: %v", err)
	}

	return system.MaybeReboot(ctx, a.run, a.confirm, a.opts, a.settings.Core.Reboot)
}
