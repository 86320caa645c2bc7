package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aurgen",
		Short: "Generate AUR binary packages from a Cargo project",
		Long: `Aurgen reads a project's Cargo.toml, produces a release tarball and
renders the PKGBUILD that distributes it on the Arch User Repository.

Modes:
  - build     compile the project and pack the tarball
  - generate  render a PKGBUILD for an existing tarball`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewGenerateCmd())

	return rootCmd
}
