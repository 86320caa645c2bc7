package cli

import (
	"github.com/ralt/aurgen/internal/assembler"
	"github.com/ralt/aurgen/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var config models.BuildConfig

	cmd := &cobra.Command{
		Use:   "generate ARCHIVE",
		Short: "Generate a PKGBUILD for an existing release tarball",
		Long: `Skips the build step entirely: computes the checksum over the given
archive's bytes and renders the PKGBUILD referencing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InputArchive = args[0]
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Info("Starting package generation...")
			logrus.Debugf("Configuration: %+v", config)

			asm := assembler.NewIngestAssembler(config.InputArchive)
			return runPipeline(cmd.Context(), &config, asm)
		},
	}

	addCommonFlags(cmd, &config)

	return cmd
}
