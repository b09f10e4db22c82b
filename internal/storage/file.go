package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

const versionsDir = "versions"

// File stores the draft as <dir>/<key>.json and each published version as
// <dir>/versions/<id>.json. Every write goes through a temp file and rename.
type File struct {
	dir string
	key string
}

func NewFile(dir, key string) *File {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &File{dir: dir, key: key}
}

func (f *File) DraftPath() string {
	return filepath.Join(f.dir, f.key+".json")
}

func (f *File) LoadDraft(ctx context.Context) (model.ProjectData, error) {
	if err := ctx.Err(); err != nil {
		return model.ProjectData{}, err
	}
	body, err := os.ReadFile(f.DraftPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ProjectData{}, ErrNotFound
		}
		return model.ProjectData{}, fmt.Errorf("read draft %s: %w", f.DraftPath(), err)
	}
	return decodeDraft(body)
}

func (f *File) SaveDraft(ctx context.Context, doc model.ProjectData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encodeDraft(doc)
	if err != nil {
		return err
	}
	return WriteFileAtomic(f.DraftPath(), body)
}

func (f *File) SaveVersion(ctx context.Context, v model.PublishedVersion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(v.ID, `/\`) || strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("invalid version id %q", v.ID)
	}
	body, err := encodeVersion(v)
	if err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(f.dir, versionsDir, v.ID+".json"), body)
}

// LoadVersions returns versions oldest first.
func (f *File) LoadVersions(ctx context.Context) ([]model.PublishedVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Join(f.dir, versionsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.PublishedVersion{}, nil
		}
		return nil, fmt.Errorf("read versions directory %s: %w", dir, err)
	}
	out := []model.PublishedVersion{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		body, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read version %s: %w", entry.Name(), err)
		}
		v, err := decodeVersion(body)
		if err != nil {
			return nil, fmt.Errorf("version %s: %w", entry.Name(), err)
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.Before(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// WriteFileAtomic writes content next to path and renames it into place.
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
