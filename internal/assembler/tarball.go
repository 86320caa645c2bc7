package assembler

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ralt/aurgen/internal/models"
)

// writeTarball packs the release tarball for a descriptor: the binary
// with executable permissions, the LICENSE file when bundling is
// required, and every extra file in declared order under its
// destination path relative to the archive root.
func writeTarball(desc *models.Descriptor, binaryPath, projectDir, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}
	defer out.Close()

	zw := gzip.NewWriter(out)
	tw := tar.NewWriter(zw)

	if err := addFile(tw, binaryPath, desc.BinaryName, 0755); err != nil {
		return &models.AurGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to pack binary: %w", err),
		}
	}

	if desc.NeedsBundling {
		name := filepath.Base(desc.LicensePath)
		if err := addFile(tw, desc.LicensePath, name, 0644); err != nil {
			return &models.AurGenError{
				Type: models.ErrFileOp,
				Err:  fmt.Errorf("failed to pack license: %w", err),
			}
		}
	}

	for _, extra := range desc.ExtraFiles {
		src := filepath.Join(projectDir, extra.Source)
		if err := addFile(tw, src, extra.ArchivePath(), 0644); err != nil {
			return &models.AurGenError{
				Type: models.ErrFileOp,
				Err:  fmt.Errorf("failed to pack %s: %w", extra.Source, err),
			}
		}
	}

	if err := tw.Close(); err != nil {
		return &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}
	if err := zw.Close(); err != nil {
		return &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}
	return out.Sync()
}

// addFile writes a single file into the tar stream under name
func addFile(tw *tar.Writer, src, name string, mode int64) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	err = tw.WriteHeader(&tar.Header{
		Name: name,
		Mode: mode,
		Size: info.Size(),
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}
