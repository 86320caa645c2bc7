package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/ralt/aurgen/internal/models"
)

// Manifest represents the overall structure of a Cargo.toml file,
// reduced to the fields relevant for packaging.
type Manifest struct {
	Package Package  `toml:"package"`
	Bin     []Binary `toml:"bin"`
}

// Package holds the [package] metadata block
type Package struct {
	Name          string    `toml:"name"`
	Version       string    `toml:"version"`
	Description   string    `toml:"description"`
	License       string    `toml:"license"`
	Authors       []string  `toml:"authors"`
	Homepage      string    `toml:"homepage"`
	Repository    string    `toml:"repository"`
	Documentation string    `toml:"documentation"`
	Metadata      *Metadata `toml:"metadata"`
}

// Binary is a single [[bin]] target declaration
type Binary struct {
	Name string `toml:"name"`
}

// Metadata is the [package.metadata] block. The depends/optdepends
// lists directly under it are the deprecated pre-aur-table location;
// new manifests put everything under [package.metadata.aur].
type Metadata struct {
	Depends    []string `toml:"depends"`
	OptDepends []string `toml:"optdepends"`
	AUR        *AUR     `toml:"aur"`
}

// AUR is the [package.metadata.aur] override table
type AUR struct {
	PackageName    string     `toml:"package_name"`
	SourceDownload string     `toml:"source_download"`
	Depends        []string   `toml:"depends"`
	OptDepends     []string   `toml:"optdepends"`
	Conflicts      []string   `toml:"conflicts"`
	Files          [][]string `toml:"files"`
	Custom         []string   `toml:"custom"`
}

// Load reads and parses a Cargo.toml manifest
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, &models.AurGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to read manifest %s: %w", path, err),
		}
	}
	return &m, nil
}

// BinaryName returns the name of the compiled binary that should be
// copied into the tarball: the first declared [[bin]] target, or the
// package name when none is declared.
func (m *Manifest) BinaryName() string {
	if len(m.Bin) > 0 && m.Bin[0].Name != "" {
		return m.Bin[0].Name
	}
	return m.Package.Name
}

// UsesLegacyMetadata reports whether extra dependencies are declared
// directly under [package.metadata] instead of [package.metadata.aur]
func (m *Manifest) UsesLegacyMetadata() bool {
	md := m.Package.Metadata
	if md == nil || md.AUR != nil {
		return false
	}
	return len(md.Depends) > 0 || len(md.OptDepends) > 0
}
