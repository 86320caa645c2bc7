package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorNaming(t *testing.T) {
	desc := Descriptor{Name: "foobar", Version: "1.2.3"}
	assert.Equal(t, "foobar-bin", desc.PkgName())
	assert.Equal(t, "foobar-1.2.3-x86_64.tar.gz", desc.TarballName())
}

func TestFileMappingArchivePath(t *testing.T) {
	assert.Equal(t, "usr/share/x", FileMapping{Dest: "/usr/share/x"}.ArchivePath())
	assert.Equal(t, "usr/share/x", FileMapping{Dest: "usr/share/x"}.ArchivePath())
}

func TestAurGenError(t *testing.T) {
	inner := errors.New("boom")
	err := &AurGenError{Type: ErrLicense, Package: "foobar", Err: inner}

	assert.Equal(t, "[License] foobar: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := &AurGenError{Type: ErrBuildFailed, Err: inner}
	assert.Equal(t, "[BuildFailed] boom", bare.Error())
}

func TestErrorTypeString(t *testing.T) {
	tests := map[ErrorType]string{
		ErrMissingField:      "MissingField",
		ErrLicense:           "License",
		ErrBuildFailed:       "BuildFailed",
		ErrArtifactMissing:   "ArtifactMissing",
		ErrTargetUnavailable: "TargetUnavailable",
		ErrFileOp:            "FileOp",
	}
	for typ, want := range tests {
		assert.Equal(t, want, typ.String())
	}
}
