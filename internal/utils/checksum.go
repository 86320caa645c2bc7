package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// SHA256File calculates the hex-encoded sha256 digest of a file by
// streaming its bytes from disk. The digest is always computed over the
// bytes actually written, never over an in-memory copy, so the checksum
// referenced by the PKGBUILD can't drift from the tarball.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256Bytes calculates the hex-encoded sha256 digest of data
func SHA256Bytes(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
