package dotfiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moxi-git/dotfiles/pkg/config"
	"github.com/moxi-git/dotfiles/pkg/paths"
)

func newInstallCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Run the full bootstrap: packages, symlinks, shell, reboot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			return a.runInstall(cmd.Context())
		},
	}
}

func newLinkCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Symlink the configs tree into your home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			return a.runLink()
		},
	}
}

func newPackagesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "Install the packages listed in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			return a.runPackages(cmd.Context())
		},
	}
}

func newGenconfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Print the default settings as a TOML starting point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Generate()
			if err != nil {
				return err
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}

			path := paths.SettingsPath()
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write to the user settings file instead of stdout")
	return cmd
}
