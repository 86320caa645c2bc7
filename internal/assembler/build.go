package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/aurgen/internal/models"
	"github.com/ralt/aurgen/internal/utils"
	"github.com/sirupsen/logrus"
)

// BuildAssembler runs the external build step, locates the produced
// binary and packs it into the release tarball
type BuildAssembler struct {
	toolchain  Toolchain
	projectDir string
	outputDir  string
	static     bool
}

// NewBuildAssembler creates an assembler that builds the project before
// packing
func NewBuildAssembler(tc Toolchain, projectDir, outputDir string, static bool) Assembler {
	return &BuildAssembler{
		toolchain:  tc,
		projectDir: projectDir,
		outputDir:  outputDir,
		static:     static,
	}
}

// Assemble builds the requested variant and packs the tarball,
// returning its path and sha256 digest
func (a *BuildAssembler) Assemble(ctx context.Context, desc *models.Descriptor) (string, string, error) {
	if a.static {
		logrus.Info("Checking for musl toolchain...")
		ok, err := a.toolchain.HasStaticTarget(ctx)
		if err != nil {
			return "", "", &models.AurGenError{Type: models.ErrBuildFailed, Err: err}
		}
		if !ok {
			return "", "", &models.AurGenError{
				Type: models.ErrTargetUnavailable,
				Err:  fmt.Errorf("missing target! Try: rustup target add %s", MuslTarget),
			}
		}
	}

	if err := a.toolchain.Build(ctx, a.static); err != nil {
		return "", "", err
	}

	binary := a.binaryPath(desc)
	if !utils.FileExists(binary) {
		return "", "", &models.AurGenError{
			Type:    models.ErrArtifactMissing,
			Package: desc.Name,
			Err:     fmt.Errorf("build succeeded but no binary found at %s", binary),
		}
	}

	if err := a.toolchain.Strip(ctx, binary); err != nil {
		return "", "", err
	}

	logrus.Info("Packing tarball...")
	archive := filepath.Join(a.outputDir, desc.TarballName())
	if err := writeTarball(desc, binary, a.projectDir, archive); err != nil {
		return "", "", err
	}

	checksum, err := utils.SHA256File(archive)
	if err != nil {
		return "", "", &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}

	return archive, checksum, nil
}

// binaryPath locates the compiled binary by the fixed, variant-dependent
// target directory convention
func (a *BuildAssembler) binaryPath(desc *models.Descriptor) string {
	targetDir := os.Getenv("CARGO_TARGET_DIR")
	if targetDir == "" {
		targetDir = filepath.Join(a.projectDir, "target")
	}

	releaseDir := "release"
	if a.static {
		releaseDir = filepath.Join(MuslTarget, "release")
	}

	return filepath.Join(targetDir, releaseDir, desc.BinaryName)
}
