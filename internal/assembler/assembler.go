package assembler

import (
	"context"

	"github.com/ralt/aurgen/internal/models"
)

// Assembler produces the release tarball and its sha256 checksum for a
// resolved descriptor. Two implementations exist: BuildAssembler runs
// the toolchain and packs a fresh tarball, IngestAssembler checksums a
// caller-supplied archive. Both return the archive path and the
// hex-encoded digest of the bytes on disk.
type Assembler interface {
	Assemble(ctx context.Context, desc *models.Descriptor) (archive string, checksum string, err error)
}
