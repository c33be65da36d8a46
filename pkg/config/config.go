// Package config loads the tool's settings and the package manifest.
// Settings are TOML, layered defaults-then-user-then-checkout; the
// package manifest is a flat YAML document in the dotfiles checkout.
package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/paths"
)

//go:embed default.toml
var defaultSettings []byte

// Settings is the tool configuration after merging all layers
type Settings struct {
	Core CoreSettings `koanf:"core" toml:"core"`
	Link LinkSettings `koanf:"link" toml:"link"`
}

// CoreSettings configures the non-link steps
type CoreSettings struct {
	Shell     string `koanf:"shell" toml:"shell"`
	AURHelper string `koanf:"aur_helper" toml:"aur_helper"`
	Reboot    bool   `koanf:"reboot" toml:"reboot"`
}

// LinkSettings configures the link installer
type LinkSettings struct {
	// Exclude adds base names to the built-in exclusion set
	Exclude []string `koanf:"exclude" toml:"exclude"`
}

// Load merges settings: embedded defaults, then the user-level file under
// XDG_CONFIG_HOME, then the checkout-level file. Later layers win.
func Load(sourceRoot string) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultSettings), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	layers := []string{
		paths.SettingsPath(),
		filepath.Join(sourceRoot, paths.SettingsFileName),
	}
	for _, path := range layers {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load settings from %s", path)
		}
		logger.Debug().Str("path", path).Msg("settings layer loaded")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}
	return &s, nil
}

// Default returns the built-in settings without any file layers
func Default() (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultSettings), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	return &s, nil
}
