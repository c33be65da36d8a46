package packages

import (
	"strings"

	"github.com/moxi-git/dotfiles/pkg/errors"
	"github.com/moxi-git/dotfiles/pkg/logging"
	"github.com/moxi-git/dotfiles/pkg/types"
)

// Distro identifies the host distribution family
type Distro string

const (
	DistroArch    Distro = "arch"
	DistroGentoo  Distro = "gentoo"
	DistroUnknown Distro = "unknown"
)

// OSReleasePath is where os-release(5) lives on every systemd and openrc
// distribution this tool supports
const OSReleasePath = "/etc/os-release"

// Detect reads os-release and classifies the distribution. An
// unclassifiable host yields DistroUnknown and ErrDistroUnknown; the
// caller decides whether that is fatal (it is for the packages step only).
func Detect(fs types.FS) (Distro, error) {
	logger := logging.GetLogger("packages.distro")

	data, err := fs.ReadFile(OSReleasePath)
	if err != nil {
		return DistroUnknown, errors.Wrapf(err, errors.ErrDistroUnknown,
			"cannot read %s", OSReleasePath)
	}

	fields := parseOSRelease(string(data))
	distro := classify(fields["ID"], fields["ID_LIKE"])

	logger.Debug().
		Str("id", fields["ID"]).
		Str("idLike", fields["ID_LIKE"]).
		Str("distro", string(distro)).
		Msg("distro detected")

	if distro == DistroUnknown {
		return DistroUnknown, errors.Newf(errors.ErrDistroUnknown,
			"unsupported distribution %q", fields["ID"])
	}
	return distro, nil
}

// parseOSRelease extracts KEY=value pairs, stripping quotes and comments
func parseOSRelease(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		fields[strings.TrimSpace(key)] = value
	}
	return fields
}

func classify(id, idLike string) Distro {
	candidates := append([]string{id}, strings.Fields(idLike)...)
	for _, c := range candidates {
		switch strings.ToLower(c) {
		case "arch", "archlinux":
			return DistroArch
		case "gentoo":
			return DistroGentoo
		}
	}
	return DistroUnknown
}
