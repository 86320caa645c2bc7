// Package pkgbuild renders the PKGBUILD consumed by makepkg. Rendering
// is a pure function of the descriptor and checksum: no I/O, no
// timestamps, so identical inputs always produce identical bytes.
package pkgbuild

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/ralt/aurgen/internal/models"
)

// Render produces the PKGBUILD text for a descriptor and the sha256
// digest of its release tarball
func Render(desc *models.Descriptor, checksum string) string {
	var buf bytes.Buffer

	// Write a quoted bash array field, skipped when empty
	writeArray := func(name string, values []string) {
		if len(values) == 0 {
			return
		}
		buf.WriteString(name + "=(")
		for i, v := range values {
			if i > 0 {
				buf.WriteString(" ")
			}
			fmt.Fprintf(&buf, "%q", v)
		}
		buf.WriteString(")\n")
	}

	fmt.Fprintf(&buf, "# Maintainer: %s\n", desc.Maintainer)
	buf.WriteString("#\n")
	buf.WriteString("# This PKGBUILD was generated by aurgen: https://github.com/ralt/aurgen\n\n")

	fmt.Fprintf(&buf, "pkgname=%s\n", desc.PkgName())
	fmt.Fprintf(&buf, "pkgver=%s\n", desc.Version)
	buf.WriteString("pkgrel=1\n")
	fmt.Fprintf(&buf, "pkgdesc=%q\n", desc.Description)
	fmt.Fprintf(&buf, "url=%q\n", desc.URL)
	writeArray("license", desc.Licenses)
	writeArray("arch", []string{"x86_64"})
	writeArray("provides", []string{desc.Name})
	writeArray("conflicts", append([]string{desc.Name}, desc.Conflicts...))
	writeArray("depends", desc.Depends)
	writeArray("optdepends", desc.OptDepends)
	writeArray("source", []string{desc.Source})
	writeArray("sha256sums", []string{checksum})

	buf.WriteString("\npackage() {\n")
	fmt.Fprintf(&buf, "    install -Dm755 %s -t \"$pkgdir/usr/bin\"\n", desc.BinaryName)
	if desc.NeedsBundling {
		fmt.Fprintf(&buf, "    install -Dm644 %s -t \"$pkgdir/usr/share/licenses/$pkgname\"\n", filepath.Base(desc.LicensePath))
	}
	for _, extra := range desc.ExtraFiles {
		fmt.Fprintf(&buf, "    install -Dm644 %s \"$pkgdir/%s\"\n", extra.ArchivePath(), extra.ArchivePath())
	}
	for _, line := range desc.Custom {
		fmt.Fprintf(&buf, "    %s\n", line)
	}
	buf.WriteString("}\n")

	return buf.String()
}
