package config

import (
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/moxi-git/dotfiles/pkg/errors"
)

// Generate renders the effective defaults as a TOML document suitable as
// a starting point for a user settings file
func Generate() ([]byte, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := gotoml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render settings")
	}
	return data, nil
}
