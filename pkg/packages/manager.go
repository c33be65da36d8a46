// Package packages installs system packages through the host's package
// manager. Dependency resolution, downloads and AUR build logic stay with
// the manager itself; this package only decides what to ask for.
package packages

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// Manager is the package-manager capability: query and install, nothing
// else. One implementation per backend.
type Manager interface {
	// Name identifies the backend for logs and prompts
	Name() string

	// IsInstalled reports whether a package is already present
	IsInstalled(ctx context.Context, name string) bool

	// Install installs the given packages. Implementations honor dry-run
	// by logging the command line instead of running it.
	Install(ctx context.Context, names []string) error
}

// FilterMissing returns the names not yet installed, preserving order
func FilterMissing(ctx context.Context, m Manager, names []string) []string {
	var missing []string
	for _, name := range names {
		if !m.IsInstalled(ctx, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Sync brings the named packages to installed state, skipping the ones
// already present
func Sync(ctx context.Context, m Manager, names []string) error {
	logger := logging.GetLogger("packages").With().Str("manager", m.Name()).Logger()

	if len(names) == 0 {
		logger.Debug().Msg("no packages requested")
		return nil
	}

	missing := FilterMissing(ctx, m, names)
	if len(missing) == 0 {
		logger.Info().Int("requested", len(names)).Msg("all packages already installed")
		return nil
	}

	logger.Info().
		Int("requested", len(names)).
		Int("missing", len(missing)).
		Strs("packages", missing).
		Msg("installing packages")

	return m.Install(ctx, missing)
}

// Pacman drives the official Arch repositories through pacman
type Pacman struct {
	run    types.Runner
	opts   types.Options
	logger zerolog.Logger
}

// NewPacman creates a pacman-backed Manager
func NewPacman(run types.Runner, opts types.Options) *Pacman {
	return &Pacman{
		run:    run,
		opts:   opts,
		logger: logging.GetLogger("packages.pacman"),
	}
}

func (p *Pacman) Name() string { return "pacman" }

func (p *Pacman) IsInstalled(ctx context.Context, name string) bool {
	_, err := p.run.Output(ctx, "pacman", "-Qi", name)
	return err == nil
}

func (p *Pacman) Install(ctx context.Context, names []string) error {
	args := append([]string{"pacman", "-S", "--needed", "--noconfirm"}, names...)
	if p.opts.DryRun {
		p.logger.Info().Strs("command", append([]string{"sudo"}, args...)).Msg("dry-run: would install")
		return nil
	}
	if err := p.run.Run(ctx, "sudo", args...); err != nil {
		return errors.Wrapf(err, errors.ErrPkgInstall,
			"pacman failed to install %s", strings.Join(names, ", "))
	}
	return nil
}

// Portage drives Gentoo's portage through emerge, querying with qlist
type Portage struct {
	run    types.Runner
	opts   types.Options
	logger zerolog.Logger
}

// NewPortage creates a portage-backed Manager
func NewPortage(run types.Runner, opts types.Options) *Portage {
	return &Portage{
		run:    run,
		opts:   opts,
		logger: logging.GetLogger("packages.portage"),
	}
}

func (p *Portage) Name() string { return "portage" }

func (p *Portage) IsInstalled(ctx context.Context, atom string) bool {
	out, err := p.run.Output(ctx, "qlist", "-I", atom)
	return err == nil && strings.TrimSpace(out) != ""
}

func (p *Portage) Install(ctx context.Context, atoms []string) error {
	args := append([]string{"emerge", "--ask=n"}, atoms...)
	if p.opts.DryRun {
		p.logger.Info().Strs("command", append([]string{"sudo"}, args...)).Msg("dry-run: would install")
		return nil
	}
	if err := p.run.Run(ctx, "sudo", args...); err != nil {
		return errors.Wrapf(err, errors.ErrPkgInstall,
			"emerge failed to install %s", strings.Join(atoms, ", "))
	}
	return nil
}
