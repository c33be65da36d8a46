package dotfiles

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/moxi-git/dotfiles/internal/version"
	"github.com/moxi-git/dotfiles/pkg/logging"
)

// rootFlags holds the persistent flag values before they are folded into
// an immutable types.Options
type rootFlags struct {
	verbosity  int
	yes        bool
	dryRun     bool
	noDots     bool
	noPackages bool
	noReboot   bool
	source     string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dotfiles",
		Short: "Bootstrap an Arch/Gentoo workstation from a dotfiles checkout",
		Long: `dotfiles installs system packages, symlinks configuration files from
the checkout's configs/ tree into your home directory, and performs a
handful of one-shot system tweaks (default shell, reboot).

Symlink installation is idempotent: existing links into the checkout are
left alone, and nothing outside your home directory is ever touched.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.BoolVarP(&flags.yes, "yes", "y", false, "Answer yes to every prompt")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "Preview changes without executing them")
	pf.BoolVar(&flags.noDots, "no-dots", false, "Skip symlink installation")
	pf.BoolVar(&flags.noPackages, "no-packages", false, "Skip package installation")
	pf.BoolVar(&flags.noReboot, "no-reboot", false, "Never offer to reboot")
	pf.StringVar(&flags.source, "source", "", "Dotfiles checkout location (default $DOTFILES_ROOT or the working directory)")

	rootCmd.AddCommand(newInstallCmd(flags))
	rootCmd.AddCommand(newLinkCmd(flags))
	rootCmd.AddCommand(newPackagesCmd(flags))
	rootCmd.AddCommand(newGenconfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dotfiles version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
