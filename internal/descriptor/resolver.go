package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/aurgen/internal/manifest"
	"github.com/ralt/aurgen/internal/models"
	"github.com/ralt/aurgen/internal/utils"
	"github.com/sirupsen/logrus"
)

// archLicenses are the SPDX identifiers shipped system-wide by the Arch
// Linux `licenses` package. A project using anything else has to bundle
// its own LICENSE file into the tarball.
var archLicenses = map[string]bool{
	"AGPL-3.0-only":     true,
	"AGPL-3.0-or-later": true,
	"Apache-2.0":        true,
	"BSL-1.0":           true,
	"GPL-2.0-only":      true,
	"GPL-2.0-or-later":  true,
	"GPL-3.0-only":      true,
	"GPL-3.0-or-later":  true,
	"LGPL-2.0-only":     true,
	"LGPL-2.0-or-later": true,
	"LGPL-3.0-only":     true,
	"LGPL-3.0-or-later": true,
	"MPL-2.0":           true,
	"Unlicense":         true,
}

// RemoteProber looks up the URL of a project's version-control remote.
// It is the last resort of the url resolution chain, behind an
// interface so tests don't need a git checkout.
type RemoteProber interface {
	RemoteURL(dir string) (string, error)
}

// Resolver merges manifest metadata with the optional AUR override
// table into a single immutable Descriptor
type Resolver struct {
	prober RemoteProber
}

// NewResolver creates a Resolver using the given remote prober. A nil
// prober disables remote inference.
func NewResolver(prober RemoteProber) *Resolver {
	return &Resolver{prober: prober}
}

// Resolve produces the Descriptor for a manifest. projectDir is the
// directory holding the manifest; license and extra-file lookups are
// relative to it.
func (r *Resolver) Resolve(m *manifest.Manifest, projectDir string) (*models.Descriptor, error) {
	if err := validate(m); err != nil {
		return nil, err
	}

	pkg := m.Package
	aur := overrides(m)

	desc := &models.Descriptor{
		Name:        pkg.Name,
		Version:     pkg.Version,
		Description: pkg.Description,
		Maintainer:  pkg.Authors[0],
		Licenses:    splitLicense(pkg.License),
		BinaryName:  m.BinaryName(),
	}

	if aur != nil {
		if aur.PackageName != "" {
			desc.Name = aur.PackageName
		}
		desc.Depends = aur.Depends
		desc.OptDepends = aur.OptDepends
		desc.Conflicts = aur.Conflicts
		desc.Custom = aur.Custom

		files, err := extraFiles(aur.Files, projectDir)
		if err != nil {
			return nil, err
		}
		desc.ExtraFiles = files
	} else if md := m.Package.Metadata; md != nil {
		desc.Depends = md.Depends
		desc.OptDepends = md.OptDepends
	}

	if m.UsesLegacyMetadata() {
		logrus.Warn("Use of [package.metadata] is deprecated. Please specify extra dependencies under [package.metadata.aur].")
	}

	repo, err := r.resolveRepository(pkg, projectDir)
	if err != nil {
		return nil, err
	}

	desc.URL = pkg.Homepage
	if desc.URL == "" {
		desc.URL = repo
	}
	if desc.URL == "" {
		return nil, &models.AurGenError{
			Type: models.ErrMissingField,
			Err:  fmt.Errorf("no url available: set package.homepage or package.repository, or add a git remote"),
		}
	}

	desc.Host = detectHost(repo)

	source, err := resolveSource(desc, aur, repo)
	if err != nil {
		return nil, err
	}
	desc.Source = source

	if err := r.resolveLicenseFile(desc, projectDir); err != nil {
		return nil, err
	}

	return desc, nil
}

// validate checks the mandatory manifest fields
func validate(m *manifest.Manifest) error {
	pkg := m.Package
	missing := ""
	switch {
	case pkg.Name == "":
		missing = "package.name"
	case pkg.Version == "":
		missing = "package.version"
	case pkg.Description == "":
		missing = "package.description"
	case pkg.License == "":
		missing = "package.license"
	case len(pkg.Authors) == 0:
		missing = "package.authors"
	}
	if missing != "" {
		return &models.AurGenError{
			Type:    models.ErrMissingField,
			Package: pkg.Name,
			Err:     fmt.Errorf("manifest is missing required field %s", missing),
		}
	}
	return nil
}

// overrides returns the [package.metadata.aur] table, if present
func overrides(m *manifest.Manifest) *manifest.AUR {
	if m.Package.Metadata == nil {
		return nil
	}
	return m.Package.Metadata.AUR
}

// splitLicense breaks a Cargo SPDX license expression into individual
// identifiers. Only disjunctions appear in practice ("MIT OR Apache-2.0",
// older manifests use "MIT/Apache-2.0").
func splitLicense(license string) []string {
	license = strings.ReplaceAll(license, "/", " OR ")
	parts := strings.Split(license, " OR ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// extraFiles validates the files override entries and checks that every
// source path exists
func extraFiles(entries [][]string, projectDir string) ([]models.FileMapping, error) {
	var files []models.FileMapping
	for _, entry := range entries {
		if len(entry) != 2 {
			return nil, &models.AurGenError{
				Type: models.ErrMissingField,
				Err:  fmt.Errorf("files entries must be [source, destination] pairs, got %v", entry),
			}
		}
		src, dst := entry[0], entry[1]
		if !utils.FileExists(filepath.Join(projectDir, src)) {
			return nil, &models.AurGenError{
				Type: models.ErrFileOp,
				Err:  fmt.Errorf("extra file %s does not exist", src),
			}
		}
		files = append(files, models.FileMapping{Source: src, Dest: dst})
	}
	return files, nil
}

// resolveRepository returns the repository URL, probing the git remote
// when the manifest doesn't declare one
func (r *Resolver) resolveRepository(pkg manifest.Package, projectDir string) (string, error) {
	if pkg.Repository != "" {
		return pkg.Repository, nil
	}
	if r.prober == nil {
		return "", nil
	}
	remote, err := r.prober.RemoteURL(projectDir)
	if err != nil {
		logrus.Debugf("Remote probe failed: %v", err)
		return "", nil
	}
	return normalizeRemote(remote), nil
}

// normalizeRemote rewrites an ssh-style git remote to its https
// equivalent and drops the .git suffix
func normalizeRemote(remote string) string {
	remote = strings.TrimSpace(remote)
	remote = strings.TrimSuffix(remote, ".git")
	if rest, ok := strings.CutPrefix(remote, "git@"); ok {
		rest = strings.Replace(rest, ":", "/", 1)
		return "https://" + rest
	}
	return remote
}

// detectHost resolves the git forge from the repository URL
func detectHost(repo string) models.Host {
	switch {
	case strings.HasPrefix(repo, "https://github"):
		return models.HostGitHub
	case strings.HasPrefix(repo, "https://gitlab"):
		return models.HostGitLab
	default:
		return models.HostUnknown
	}
}

// resolveSource produces the source= line for the PKGBUILD. An explicit
// source_download template wins; otherwise the release-asset convention
// of the detected forge is used. $pkgver is left literal for makepkg.
func resolveSource(desc *models.Descriptor, aur *manifest.AUR, repo string) (string, error) {
	if aur != nil && aur.SourceDownload != "" {
		return expandTemplate(aur.SourceDownload, desc, repo), nil
	}

	switch desc.Host {
	case models.HostGitHub:
		return fmt.Sprintf("%s/releases/download/v$pkgver/%s-$pkgver-x86_64.tar.gz", repo, desc.Name), nil
	case models.HostGitLab:
		return fmt.Sprintf("%s/-/archive/v$pkgver/%s-$pkgver-x86_64.tar.gz", repo, desc.Name), nil
	default:
		return "", &models.AurGenError{
			Type:    models.ErrMissingField,
			Package: desc.Name,
			Err:     fmt.Errorf("cannot derive a download URL from %q: set source_download under [package.metadata.aur]", repo),
		}
	}
}

// expandTemplate substitutes the ${name}, ${version} and ${repository}
// placeholders of a source_download template
func expandTemplate(tmpl string, desc *models.Descriptor, repo string) string {
	return os.Expand(tmpl, func(key string) string {
		switch key {
		case "name":
			return desc.Name
		case "version":
			return desc.Version
		case "repository":
			return repo
		default:
			// Leave unknown variables alone so $pkgver survives
			// into the rendered PKGBUILD.
			return "$" + key
		}
	})
}

// resolveLicenseFile decides whether the license must be bundled and
// locates the LICENSE file if so
func (r *Resolver) resolveLicenseFile(desc *models.Descriptor, projectDir string) error {
	desc.NeedsBundling = false
	for _, id := range desc.Licenses {
		if !archLicenses[id] {
			desc.NeedsBundling = true
			break
		}
	}
	if !desc.NeedsBundling {
		return nil
	}

	path, err := findLicenseFile(projectDir)
	if err != nil {
		return err
	}
	desc.LicensePath = path
	logrus.Warn("LICENSE file will be installed manually.")
	return nil
}

// findLicenseFile returns the first file in dir whose name starts with
// LICENSE
func findLicenseFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &models.AurGenError{Type: models.ErrFileOp, Err: err}
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(entry.Name(), "LICENSE") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", &models.AurGenError{
		Type: models.ErrLicense,
		Err:  fmt.Errorf("license requires bundling but no LICENSE file found in %s (see https://choosealicense.com/)", dir),
	}
}
