package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	releasesDir = "releases"
	currentLink = "current"
)

// ReleaseDir is where version id is unpacked below root.
func ReleaseDir(root, versionID string) string {
	return filepath.Join(root, releasesDir, versionID)
}

// SwitchCurrentSymlink points root/current at releases/<versionID>. The link is
// replaced with a rename so readers never see it missing.
func SwitchCurrentSymlink(root, versionID string) error {
	if versionID == "" {
		return fmt.Errorf("version id is required")
	}
	target := filepath.ToSlash(filepath.Join(releasesDir, versionID))
	currentPath := filepath.Join(root, currentLink)
	tmpLinkPath := filepath.Join(root, ".current.tmp")

	if err := os.Remove(tmpLinkPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temp symlink %s: %w", tmpLinkPath, err)
	}
	if err := os.Symlink(target, tmpLinkPath); err != nil {
		return fmt.Errorf("create temp symlink %s -> %s: %w", tmpLinkPath, target, err)
	}
	if err := os.Rename(tmpLinkPath, currentPath); err != nil {
		_ = os.Remove(tmpLinkPath)
		return fmt.Errorf("activate current symlink %s -> %s: %w", currentPath, target, err)
	}
	return nil
}

// CurrentVersion reports the version root/current points at.
func CurrentVersion(root string) (string, bool, error) {
	currentPath := filepath.Join(root, currentLink)
	target, err := os.Readlink(currentPath)
	if err == nil {
		return filepath.Base(target), true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	return "", false, fmt.Errorf("read current symlink %s: %w", currentPath, err)
}
