package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/aurgen/internal/assembler"
	"github.com/ralt/aurgen/internal/descriptor"
	"github.com/ralt/aurgen/internal/manifest"
	"github.com/ralt/aurgen/internal/models"
	"github.com/ralt/aurgen/internal/pkgbuild"
	"github.com/ralt/aurgen/internal/signer"
	"github.com/ralt/aurgen/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func validateConfig(config *models.BuildConfig) error {
	if config.ProjectDir == "" {
		config.ProjectDir = "."
	}
	if config.ManifestPath == "" {
		config.ManifestPath = filepath.Join(config.ProjectDir, "Cargo.toml")
	}
	if config.OutputDir == "" {
		return &models.AurGenError{
			Type: models.ErrMissingField,
			Err:  fmt.Errorf("output directory is required"),
		}
	}
	return nil
}

// runPipeline resolves the descriptor, obtains the tarball and checksum
// through the given assembler and writes the PKGBUILD. The PKGBUILD is
// only written once the checksum is known, and any stale one is removed
// up front, so a failed run never leaves a script referencing a
// mismatched tarball.
func runPipeline(ctx context.Context, config *models.BuildConfig, asm assembler.Assembler) error {
	if err := utils.EnsureDir(config.OutputDir); err != nil {
		return &models.AurGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to create output directory: %w", err),
		}
	}

	scriptPath := filepath.Join(config.OutputDir, "PKGBUILD")
	if err := os.Remove(scriptPath); err != nil && !os.IsNotExist(err) {
		return &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}

	logrus.Debugf("Reading manifest: %s", config.ManifestPath)
	m, err := manifest.Load(config.ManifestPath)
	if err != nil {
		return err
	}

	resolver := descriptor.NewResolver(descriptor.GitProber{})
	desc, err := resolver.Resolve(m, config.ProjectDir)
	if err != nil {
		return err
	}
	logrus.Debugf("Resolved descriptor: %+v", desc)

	archive, checksum, err := asm.Assemble(ctx, desc)
	if err != nil {
		return err
	}
	logrus.Infof("Tarball: %s (sha256 %s)", archive, checksum)

	script := pkgbuild.Render(desc, checksum)
	if err := utils.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		return &models.AurGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write PKGBUILD: %w", err),
		}
	}
	logrus.Infof("Wrote %s", scriptPath)

	if config.GPGKeyPath != "" {
		s, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.AurGenError{
				Type: models.ErrFileOp,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		if err := signArtifacts(s, config.OutputDir, archive, scriptPath); err != nil {
			return err
		}
	}

	logrus.Info("Done.")
	return nil
}

// signArtifacts writes detached signatures next to the tarball and the
// PKGBUILD, and exports the public key so consumers can verify them
func signArtifacts(s signer.Signer, outputDir, archive, scriptPath string) error {
	for _, path := range []string{archive, scriptPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			return &models.AurGenError{Type: models.ErrFileOp, Err: err}
		}
		sig, err := s.SignDetached(data)
		if err != nil {
			return &models.AurGenError{
				Type: models.ErrFileOp,
				Err:  fmt.Errorf("failed to sign %s: %w", path, err),
			}
		}
		if err := utils.WriteFile(path+".sig", sig, 0644); err != nil {
			return &models.AurGenError{Type: models.ErrFileOp, Err: err}
		}
		logrus.Infof("Signed %s", path)
	}

	pub, err := s.GetPublicKey()
	if err != nil {
		return &models.AurGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to export public key: %w", err),
		}
	}
	pubPath := filepath.Join(outputDir, "public.key")
	if err := utils.WriteFile(pubPath, pub, 0644); err != nil {
		return &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}
	logrus.Infof("Wrote %s", pubPath)
	return nil
}

// addCommonFlags registers the flags shared by the build and generate
// commands
func addCommonFlags(cmd *cobra.Command, config *models.BuildConfig) {
	cmd.Flags().StringVarP(&config.OutputDir, "output", "o", filepath.Join("target", "aurgen"), "Output directory")
	cmd.Flags().StringVar(&config.ProjectDir, "project-dir", ".", "Project directory containing Cargo.toml")
	cmd.Flags().StringVar(&config.GPGKeyPath, "gpg-key", "", "Path to GPG private key for detached signatures")
	cmd.Flags().StringVar(&config.GPGPassphrase, "gpg-passphrase", "", "GPG key passphrase")
}
