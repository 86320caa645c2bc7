package models

import (
	"fmt"
	"strings"
)

// Host is the detected git forge hosting a project's source code
type Host int

const (
	HostUnknown Host = iota
	HostGitHub
	HostGitLab
)

// String returns the string representation of Host
func (h Host) String() string {
	switch h {
	case HostGitHub:
		return "github"
	case HostGitLab:
		return "gitlab"
	default:
		return "unknown"
	}
}

// FileMapping is an extra file copied into the tarball and installed to
// Dest at package-install time
type FileMapping struct {
	Source string
	Dest   string
}

// ArchivePath returns the path of the file inside the tarball: its
// install destination, relative to the archive root
func (f FileMapping) ArchivePath() string {
	return strings.TrimPrefix(f.Dest, "/")
}

// Descriptor is the resolved, read-only view of everything needed to
// assemble a release tarball and render its PKGBUILD. It is built once
// per invocation by the resolver and never mutated afterwards.
type Descriptor struct {
	// Core metadata
	Name        string
	Version     string
	Description string
	Maintainer  string
	URL         string
	Licenses    []string

	// Name of the compiled binary that goes into the tarball. Defaults
	// to Name when the manifest declares no [[bin]] targets.
	BinaryName string

	// Dependency sets, in manifest order
	Depends    []string
	OptDepends []string
	Conflicts  []string

	// Extra files and raw package() lines, in manifest order
	ExtraFiles []FileMapping
	Custom     []string

	// Resolved source= line for the PKGBUILD ($pkgver left literal so
	// makepkg expands it)
	Source string
	Host   Host

	// License bundling
	NeedsBundling bool
	LicensePath   string
}

// PkgName returns the AUR package name for the binary distribution
func (d *Descriptor) PkgName() string {
	return d.Name + "-bin"
}

// TarballName returns the filename of the release tarball
func (d *Descriptor) TarballName() string {
	return fmt.Sprintf("%s-%s-x86_64.tar.gz", d.Name, d.Version)
}
