package assembler

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ralt/aurgen/internal/models"
	"github.com/sirupsen/logrus"
)

// MuslTarget is the toolchain target used for statically-linked builds
const MuslTarget = "x86_64-unknown-linux-musl"

// Toolchain abstracts the external build commands so the assembler can
// be tested without a working compiler installation
type Toolchain interface {
	// HasStaticTarget reports whether the statically-linked build
	// target is installed
	HasStaticTarget(ctx context.Context) (bool, error)

	// Build runs a release build, optionally for the static target
	Build(ctx context.Context, static bool) error

	// Strip strips debug symbols from a binary
	Strip(ctx context.Context, binary string) error
}

// CargoToolchain drives cargo, rustup and strip in a project directory
type CargoToolchain struct {
	Dir string
}

// HasStaticTarget checks `rustup target list --installed` for the musl target
func (t CargoToolchain) HasStaticTarget(ctx context.Context) (bool, error) {
	out, err := exec.CommandContext(ctx, "rustup", "target", "list", "--installed").Output()
	if err != nil {
		return false, fmt.Errorf("failed to list rustup targets: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == MuslTarget {
			return true, nil
		}
	}
	return false, nil
}

// Build runs `cargo build --release`, potentially building statically
func (t CargoToolchain) Build(ctx context.Context, static bool) error {
	args := []string{"build", "--release"}
	if static {
		args = append(args, "--target="+MuslTarget)
	}

	logrus.Info("Running release build...")
	cmd := exec.CommandContext(ctx, "cargo", args...)
	cmd.Dir = t.Dir
	if err := cmd.Run(); err != nil {
		return &models.AurGenError{
			Type: models.ErrBuildFailed,
			Err:  fmt.Errorf("cargo build failed: %w", err),
		}
	}
	return nil
}

// Strip strips the release binary so we aren't compressing more bytes
// than we need to. A nonzero strip exit is ignored; only a missing or
// unrunnable strip binary is reported.
func (t CargoToolchain) Strip(ctx context.Context, binary string) error {
	logrus.Info("Stripping binary...")
	err := exec.CommandContext(ctx, "strip", binary).Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return &models.AurGenError{
			Type: models.ErrBuildFailed,
			Err:  fmt.Errorf("failed to run strip: %w", err),
		}
	}
	return nil
}
