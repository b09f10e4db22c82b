// Package blob keeps deployed file contents once per sha256 digest so
// successive releases share unchanged files.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

var hashHexPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Store struct {
	root string

	linkFn func(oldname, newname string) error
}

func NewStore(root string) *Store {
	return &Store{root: root, linkFn: os.Link}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Path(hashHex string) string {
	return filepath.Join(s.root, hashHex)
}

// Put stores content under hashHex. It reports false when the blob already
// existed.
func (s *Store) Put(ctx context.Context, hashHex string, content []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !hashHexPattern.MatchString(hashHex) {
		return false, fmt.Errorf("invalid hash %q", hashHex)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return false, fmt.Errorf("create blob directory %s: %w", s.root, err)
	}

	dst := s.Path(hashHex)
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat blob %s: %w", dst, err)
	}

	tmp, err := os.CreateTemp(s.root, hashHex+".tmp-*")
	if err != nil {
		return false, fmt.Errorf("create temp blob file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return false, fmt.Errorf("write temp blob file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return false, fmt.Errorf("close temp blob file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		if _, statErr := os.Stat(dst); statErr == nil {
			return false, nil
		}
		return false, fmt.Errorf("finalize blob %s: %w", dst, err)
	}
	return true, nil
}

func (s *Store) Get(hashHex string) ([]byte, error) {
	if !hashHexPattern.MatchString(hashHex) {
		return nil, fmt.Errorf("invalid hash %q", hashHex)
	}
	content, err := os.ReadFile(s.Path(hashHex))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("blob %s not found", hashHex)
		}
		return nil, fmt.Errorf("read blob %s: %w", hashHex, err)
	}
	return content, nil
}

// Materialize places the blob at target, hard-linking when the filesystem
// allows it and copying otherwise.
func (s *Store) Materialize(hashHex, target string) error {
	if !hashHexPattern.MatchString(hashHex) {
		return fmt.Errorf("invalid hash %q", hashHex)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create target directory %s: %w", filepath.Dir(target), err)
	}
	source := s.Path(hashHex)
	linkErr := s.linkFn(source, target)
	if linkErr == nil {
		return nil
	}
	if copyErr := copyFile(source, target); copyErr != nil {
		return fmt.Errorf("link blob %s -> %s: %v; copy fallback failed: %w", source, target, linkErr, copyErr)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
