package cli

import (
	"github.com/ralt/aurgen/internal/assembler"
	"github.com/ralt/aurgen/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var config models.BuildConfig

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the project and generate the tarball and PKGBUILD",
		Long: `Runs a release build, packs the resulting binary into a release
tarball together with the LICENSE file (when the license is not
provided system-wide) and any declared extra files, and renders the
matching PKGBUILD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Info("Starting package generation...")
			logrus.Debugf("Configuration: %+v", config)

			asm := assembler.NewBuildAssembler(
				assembler.CargoToolchain{Dir: config.ProjectDir},
				config.ProjectDir,
				config.OutputDir,
				config.Musl,
			)
			return runPipeline(cmd.Context(), &config, asm)
		},
	}

	addCommonFlags(cmd, &config)
	cmd.Flags().BoolVar(&config.Musl, "musl", false, "Use the musl target to produce a static binary")

	return cmd
}
