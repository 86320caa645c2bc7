package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
[package]
name = "foobar"
version = "1.2.3"
description = "A thing that does things"
license = "MIT"
authors = ["Jane Doe <jane@example.com>"]
repository = "https://github.com/jane/foobar"

[[bin]]
name = "thing"

[package.metadata.aur]
depends = ["openssl"]
optdepends = ["git: for cloning"]
conflicts = ["foobar-git"]
files = [["extras/foobar.desktop", "/usr/share/applications/foobar.desktop"]]
custom = ["ln -sf /usr/bin/thing $pkgdir/usr/bin/thing2"]
`)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "foobar", m.Package.Name)
	assert.Equal(t, "1.2.3", m.Package.Version)
	assert.Equal(t, []string{"Jane Doe <jane@example.com>"}, m.Package.Authors)
	assert.Equal(t, "https://github.com/jane/foobar", m.Package.Repository)

	require.NotNil(t, m.Package.Metadata)
	require.NotNil(t, m.Package.Metadata.AUR)
	aur := m.Package.Metadata.AUR
	assert.Equal(t, []string{"openssl"}, aur.Depends)
	assert.Equal(t, []string{"git: for cloning"}, aur.OptDepends)
	assert.Equal(t, []string{"foobar-git"}, aur.Conflicts)
	require.Len(t, aur.Files, 1)
	assert.Equal(t, []string{"extras/foobar.desktop", "/usr/share/applications/foobar.desktop"}, aur.Files[0])
	assert.Equal(t, []string{"ln -sf /usr/bin/thing $pkgdir/usr/bin/thing2"}, aur.Custom)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "Cargo.toml"))
	assert.Error(t, err)
}

func TestBinaryName(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		expected string
	}{
		{
			name:     "NoBinTargets_UsesPackageName",
			manifest: Manifest{Package: Package{Name: "foobar"}},
			expected: "foobar",
		},
		{
			name: "FirstBinTargetWins",
			manifest: Manifest{
				Package: Package{Name: "foobar"},
				Bin:     []Binary{{Name: "thing"}, {Name: "other"}},
			},
			expected: "thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.manifest.BinaryName())
		})
	}
}

func TestUsesLegacyMetadata(t *testing.T) {
	legacy := Manifest{Package: Package{
		Metadata: &Metadata{Depends: []string{"openssl"}},
	}}
	assert.True(t, legacy.UsesLegacyMetadata())

	current := Manifest{Package: Package{
		Metadata: &Metadata{
			Depends: []string{"openssl"},
			AUR:     &AUR{Depends: []string{"zlib"}},
		},
	}}
	assert.False(t, current.UsesLegacyMetadata())

	none := Manifest{Package: Package{}}
	assert.False(t, none.UsesLegacyMetadata())
}
