// Package paths provides centralized path handling for the bootstrap tool:
// home-directory resolution, XDG locations, containment checks and
// relative link-target computation.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/moxi-git/dotfiles/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot overrides the dotfiles checkout location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Well-known names inside the dotfiles checkout
const (
	// ConfigsDirName is the directory holding linkable config items
	ConfigsDirName = "configs"

	// XDGConfigDirName is the nested subtree linked under ~/.config
	XDGConfigDirName = ".config"

	// SettingsFileName is the tool's own settings file
	SettingsFileName = "dotfiles.toml"

	// ManifestFileName is the package manifest
	ManifestFileName = "packages.yaml"
)

// HomeDir returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than a dangerous default.
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess,
		"unable to determine home directory: neither os.UserHomeDir() nor HOME are available")
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return HomeDir()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := HomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot expand ~")
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

// IsWithin reports whether path lies inside root (or equals it) after
// lexical normalization. Neither path is resolved through symlinks.
func IsWithin(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RelativeLinkTarget computes what a symlink at destination should contain
// so that it resolves to source: a path relative to the destination's
// directory where computable, the absolute source otherwise. Relative
// targets survive the home directory being relocated or restored from
// backup together with the dotfiles checkout.
func RelativeLinkTarget(destination, source string) string {
	rel, err := filepath.Rel(filepath.Dir(destination), source)
	if err != nil {
		return source
	}
	return rel
}

// ResolveLinkDestination resolves a symlink target read from the
// filesystem against the link's own directory and normalizes it
func ResolveLinkDestination(linkPath, target string) string {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}
	return filepath.Clean(target)
}

// SourceRoot returns the dotfiles checkout location: an explicit override,
// then DOTFILES_ROOT, then the current working directory
func SourceRoot(override string) (string, error) {
	if override != "" {
		expanded, err := ExpandHome(override)
		if err != nil {
			return "", err
		}
		return filepath.Abs(expanded)
	}

	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return filepath.Abs(root)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine working directory")
	}
	return cwd, nil
}

// ConfigsRoot returns the linkable tree inside the checkout: the configs/
// subdirectory when present, the checkout root otherwise
func ConfigsRoot(sourceRoot string) string {
	configs := filepath.Join(sourceRoot, ConfigsDirName)
	if info, err := os.Stat(configs); err == nil && info.IsDir() {
		return configs
	}
	return sourceRoot
}

// SettingsDir returns the XDG config directory for the tool's own
// settings. The environment is consulted first because xdg caches its
// values at process start.
func SettingsDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dotfiles")
	}
	return filepath.Join(xdg.ConfigHome, "dotfiles")
}

// SettingsPath returns the user-level settings file location
func SettingsPath() string {
	return filepath.Join(SettingsDir(), SettingsFileName)
}
