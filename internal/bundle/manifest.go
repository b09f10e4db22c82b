package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var sha256HexPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes every file of a bundle.
type Manifest struct {
	Files []Resource `json:"files" yaml:"files"`
}

type Resource struct {
	Path        string `json:"path" yaml:"path"`
	Hash        string `json:"hash" yaml:"hash"`
	ContentType string `json:"contentType" yaml:"contentType"`
	Size        int64  `json:"size" yaml:"size"`
}

// NewManifest hashes files in the given order.
func NewManifest(files []File) Manifest {
	m := Manifest{Files: make([]Resource, 0, len(files))}
	for _, f := range files {
		m.Files = append(m.Files, Resource{
			Path:        f.Path,
			Hash:        ContentHash(f.Content),
			ContentType: ContentTypeForPath(f.Path),
			Size:        int64(len(f.Content)),
		})
	}
	return m
}

func ParseManifest(b []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("parse manifest json: %w", err)
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

func (m Manifest) Validate() error {
	if len(m.Files) == 0 {
		return fmt.Errorf("manifest.files must not be empty")
	}
	seen := make(map[string]struct{}, len(m.Files))
	for i, r := range m.Files {
		if err := validateBundlePath(r.Path); err != nil {
			return fmt.Errorf("manifest.files[%d]: invalid path %q: %w", i, r.Path, err)
		}
		if _, err := HashHex(r.Hash); err != nil {
			return fmt.Errorf("manifest.files[%d]: invalid hash for %q: %w", i, r.Path, err)
		}
		if _, ok := seen[r.Path]; ok {
			return fmt.Errorf("manifest.files[%d]: duplicate path %q", i, r.Path)
		}
		seen[r.Path] = struct{}{}
	}
	return nil
}

// Verify checks that b holds exactly the files m lists with matching hashes.
func (m Manifest) Verify(b Bundle) error {
	validation := &ValidationError{}
	expected := make(map[string]struct{}, len(m.Files))
	for _, r := range m.Files {
		expected[r.Path] = struct{}{}
		content, ok := b.Files[r.Path]
		if !ok {
			validation.MissingFiles = append(validation.MissingFiles, r.Path)
			continue
		}
		want, err := CanonicalHash(r.Hash)
		if err != nil || ContentHash(content) != want {
			validation.HashMismatches = append(validation.HashMismatches, r.Path)
		}
	}
	for _, name := range b.Order {
		if _, ok := expected[name]; !ok {
			validation.ExtraFiles = append(validation.ExtraFiles, name)
		}
	}
	if validation.empty() {
		return nil
	}
	return validation
}

func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func CanonicalHash(hash string) (string, error) {
	hex, err := HashHex(hash)
	if err != nil {
		return "", err
	}
	return "sha256:" + hex, nil
}

func HashHex(hash string) (string, error) {
	v := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(hash)), "sha256:")
	if !sha256HexPattern.MatchString(v) {
		return "", fmt.Errorf("expected sha256 hex digest")
	}
	return v, nil
}

// ContentTypeForPath maps a site file to the Content-Type it is served with.
func ContentTypeForPath(rel string) string {
	switch strings.ToLower(strings.TrimSpace(filepath.Ext(rel))) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".xml":
		return "application/xml; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".png":
		return "image/png"
	}
	typ := strings.TrimSpace(mime.TypeByExtension(filepath.Ext(rel)))
	if typ == "" {
		return "application/octet-stream"
	}
	return typ
}

func validateBundlePath(p string) error {
	clean := path.Clean(strings.TrimSpace(strings.ReplaceAll(p, "\\", "/")))
	if clean == "." || clean == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(clean, "/") {
		return fmt.Errorf("path must be relative")
	}
	if strings.HasPrefix(clean, "../") || strings.Contains(clean, "/../") || clean == ".." {
		return fmt.Errorf("path traversal is not allowed")
	}
	return nil
}
