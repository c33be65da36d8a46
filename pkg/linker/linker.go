// Package linker implements the idempotent symlink installer: for each
// entry of the configs tree it decides whether to create, skip, or safely
// replace the matching path in the home directory. It never mutates
// anything outside the home tree and never overwrites a foreign entry
// without explicit confirmation.
package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/paths"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// DefaultExcludes are base names never linked, regardless of confirmation
// mode: repository metadata and the tool's own files.
var DefaultExcludes = []string{
	".git",
	".github",
	".gitignore",
	"README.md",
	"LICENSE",
	paths.SettingsFileName,
	paths.ManifestFileName,
}

// Linker installs symlinks for a configs tree. It owns no long-lived
// state; the filesystem itself is the only durable record.
type Linker struct {
	fs      types.FS
	confirm types.Confirmer
	opts    types.Options
	logger  zerolog.Logger
}

// New creates a Linker over the given capabilities
func New(fs types.FS, confirm types.Confirmer, opts types.Options) *Linker {
	return &Linker{
		fs:      fs,
		confirm: confirm,
		opts:    opts,
		logger:  logging.GetLogger("linker"),
	}
}

// ExcludeSet builds a lookup set from base-name lists
func ExcludeSet(names ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range names {
		for _, name := range list {
			set[name] = true
		}
	}
	return set
}

// InstallTree links every entry of sourceRoot into homeRoot, then every
// entry of sourceRoot/.config into homeRoot/.config. Enumeration is
// shallow and unsorted; hidden entries are included; excluded base names
// are skipped unconditionally. The only fatal condition is an unreadable
// sourceRoot; per-item failures are reported in the results and the batch
// continues.
func (l *Linker) InstallTree(sourceRoot, homeRoot string, exclude map[string]bool) ([]types.LinkResult, error) {
	entries, err := l.fs.ReadDir(sourceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceMissing,
			"cannot read source tree %s", sourceRoot)
	}

	var results []types.LinkResult

	for _, entry := range entries {
		name := entry.Name()
		if exclude[name] || name == paths.XDGConfigDirName {
			l.logger.Debug().Str("name", name).Msg("entry excluded")
			continue
		}

		target := types.LinkTarget{
			Source:      filepath.Join(sourceRoot, name),
			Destination: filepath.Join(homeRoot, name),
		}
		results = append(results, l.Install(sourceRoot, homeRoot, target))
	}

	results = append(results, l.installConfigSubtree(sourceRoot, homeRoot, exclude)...)

	return results, nil
}

// installConfigSubtree handles the second pass: sourceRoot/.config entries
// land under homeRoot/.config, which is created first if absent.
func (l *Linker) installConfigSubtree(sourceRoot, homeRoot string, exclude map[string]bool) []types.LinkResult {
	configSource := filepath.Join(sourceRoot, paths.XDGConfigDirName)
	configDest := filepath.Join(homeRoot, paths.XDGConfigDirName)

	entries, err := l.fs.ReadDir(configSource)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug().Str("path", configSource).Msg("no .config subtree")
			return nil
		}
		return []types.LinkResult{{
			Target:  types.LinkTarget{Source: configSource, Destination: configDest},
			Outcome: types.OutcomeError,
			Err: errors.Wrapf(err, errors.ErrFileAccess,
				"cannot read .config subtree %s", configSource),
		}}
	}

	if !l.opts.DryRun {
		if err := l.fs.MkdirAll(configDest, 0755); err != nil {
			return []types.LinkResult{{
				Target:  types.LinkTarget{Source: configSource, Destination: configDest},
				Outcome: types.OutcomeError,
				Err: errors.Wrapf(err, errors.ErrDirCreate,
					"cannot create %s", configDest),
			}}
		}
	}

	var results []types.LinkResult
	for _, entry := range entries {
		name := entry.Name()
		if exclude[name] {
			continue
		}

		target := types.LinkTarget{
			Source:      filepath.Join(configSource, name),
			Destination: filepath.Join(configDest, name),
		}
		results = append(results, l.Install(sourceRoot, homeRoot, target))
	}
	return results
}

// Install processes a single link target through the safety policy:
//
//  1. reject destinations outside homeRoot without touching the filesystem
//  2. leave links that already resolve into sourceRoot alone
//  3. replace anything else only after confirmation
//  4. create the link with a home-relative target where computable
//
// All failures are item-scoped.
func (l *Linker) Install(sourceRoot, homeRoot string, target types.LinkTarget) types.LinkResult {
	logger := l.logger.With().
		Str("source", target.Source).
		Str("destination", target.Destination).
		Bool("dryRun", l.opts.DryRun).
		Logger()

	if !paths.IsWithin(homeRoot, target.Destination) {
		logger.Error().Str("home", homeRoot).Msg("destination escapes home directory")
		return types.LinkResult{
			Target:  target,
			Outcome: types.OutcomeError,
			Err: errors.Newf(errors.ErrUnsafeDestination,
				"destination %s is outside home directory %s", target.Destination, homeRoot).
				WithDetail("destination", target.Destination).
				WithDetail("home", homeRoot),
		}
	}

	replaced := false

	if info, err := l.fs.Lstat(target.Destination); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			if linkDest, err := l.fs.Readlink(target.Destination); err == nil {
				resolved := paths.ResolveLinkDestination(target.Destination, linkDest)
				if paths.IsWithin(sourceRoot, resolved) {
					logger.Debug().Str("resolved", resolved).Msg("already linked into source tree")
					return types.LinkResult{Target: target, Outcome: types.OutcomeSkippedCorrect}
				}
			}
		}

		prompt := fmt.Sprintf("%s already exists and will be removed. Overwrite it?", target.Destination)
		if !l.confirm.Confirm(prompt, false) {
			logger.Info().Msg("overwrite declined, leaving destination untouched")
			return types.LinkResult{Target: target, Outcome: types.OutcomeSkippedDeclined}
		}

		if l.opts.DryRun {
			logger.Info().Msg("dry-run: would remove existing entry")
		} else if err := l.fs.RemoveAll(target.Destination); err != nil {
			logger.Error().Err(err).Msg("failed to remove existing entry")
			return types.LinkResult{
				Target:  target,
				Outcome: types.OutcomeError,
				Err: errors.Wrapf(err, errors.ErrRemovalFailed,
					"cannot remove existing %s", target.Destination),
			}
		}
		replaced = true
	}

	linkTarget := paths.RelativeLinkTarget(target.Destination, target.Source)

	if l.opts.DryRun {
		logger.Info().Str("linkTarget", linkTarget).Msg("dry-run: would create symlink")
	} else if err := l.fs.Symlink(linkTarget, target.Destination); err != nil {
		logger.Error().Err(err).Msg("failed to create symlink")
		return types.LinkResult{
			Target:  target,
			Outcome: types.OutcomeError,
			Err: errors.Wrapf(err, errors.ErrSymlinkCreate,
				"cannot link %s -> %s", target.Destination, linkTarget),
		}
	} else {
		logger.Info().Str("linkTarget", linkTarget).Msg("symlink created")
	}

	if replaced {
		return types.LinkResult{Target: target, Outcome: types.OutcomeReplaced}
	}
	return types.LinkResult{Target: target, Outcome: types.OutcomeCreated}
}

// Summary counts results per outcome
type Summary struct {
	Created  int
	Skipped  int
	Declined int
	Replaced int
	Errors   int
}

// Summarize tallies a result batch
func Summarize(results []types.LinkResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case types.OutcomeCreated:
			s.Created++
		case types.OutcomeSkippedCorrect:
			s.Skipped++
		case types.OutcomeSkippedDeclined:
			s.Declined++
		case types.OutcomeReplaced:
			s.Replaced++
		case types.OutcomeError:
			s.Errors++
		}
	}
	return s
}
