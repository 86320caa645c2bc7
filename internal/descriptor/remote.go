package descriptor

import (
	"fmt"
	"os/exec"
	"strings"
)

// GitProber probes the origin remote of a git checkout by shelling out
// to git
type GitProber struct{}

// RemoteURL returns the URL of the origin remote in dir
func (GitProber) RemoteURL(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "remote", "get-url", "origin").Output()
	if err != nil {
		return "", fmt.Errorf("failed to read git remote: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
