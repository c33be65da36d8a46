package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// Manifest lists the packages to install per backend. It is static data
// maintained by hand in the dotfiles checkout; there is no name
// translation between backends.
type Manifest struct {
	Pacman  []string `yaml:"pacman"`
	Aur     []string `yaml:"aur"`
	Portage []string `yaml:"portage"`
}

// Empty reports whether the manifest requests nothing at all
func (m *Manifest) Empty() bool {
	return len(m.Pacman) == 0 && len(m.Aur) == 0 && len(m.Portage) == 0
}

// LoadManifest reads the package manifest. A missing file yields an empty
// manifest: a checkout without packages.yaml simply has no packages step.
func LoadManifest(fs types.FS, path string) (*Manifest, error) {
	logger := logging.GetLogger("config.manifest")

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no package manifest")
			return &Manifest{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read package manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"cannot parse package manifest %s", path)
	}

	logger.Debug().
		Int("pacman", len(m.Pacman)).
		Int("aur", len(m.Aur)).
		Int("portage", len(m.Portage)).
		Msg("package manifest loaded")
	return &m, nil
}
