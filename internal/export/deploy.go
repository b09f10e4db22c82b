package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benedict2310/sitebuilder/internal/blob"
	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

// ManifestFile is written into every deployed release directory.
const ManifestFile = ".manifest.json"

// Deploy materializes v below root/releases/<id> and points root/current at
// it. File contents are shared between releases through root/blobs. An
// already deployed version is only re-activated.
func (p *Packager) Deploy(ctx context.Context, v model.PublishedVersion, root string) (bundle.Manifest, error) {
	if err := p.acquire(); err != nil {
		return bundle.Manifest{}, err
	}
	defer p.release()

	releaseDir := release.ReleaseDir(root, v.ID)
	if raw, err := os.ReadFile(filepath.Join(releaseDir, ManifestFile)); err == nil {
		manifest, err := bundle.ParseManifest(raw)
		if err != nil {
			return bundle.Manifest{}, failed(fmt.Errorf("release %s: %w", v.ID, err))
		}
		if err := release.SwitchCurrentSymlink(root, v.ID); err != nil {
			return bundle.Manifest{}, failed(err)
		}
		p.logger.Info("release re-activated", "version", v.ID)
		return manifest, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return bundle.Manifest{}, failed(err)
	}

	files, err := p.build(ctx, v.Data)
	if err != nil {
		return bundle.Manifest{}, failed(err)
	}
	manifest := bundle.NewManifest(files)

	if err := os.MkdirAll(filepath.Dir(releaseDir), 0o755); err != nil {
		return bundle.Manifest{}, failed(fmt.Errorf("create releases directory: %w", err))
	}
	staging, err := os.MkdirTemp(filepath.Dir(releaseDir), "."+v.ID+".staging-*")
	if err != nil {
		return bundle.Manifest{}, failed(fmt.Errorf("create staging directory: %w", err))
	}
	if err := p.materialize(ctx, blob.NewStore(filepath.Join(root, "blobs", "sha256")), staging, files, manifest); err != nil {
		_ = os.RemoveAll(staging)
		return bundle.Manifest{}, failed(err)
	}
	_ = os.RemoveAll(releaseDir)
	if err := os.Rename(staging, releaseDir); err != nil {
		_ = os.RemoveAll(staging)
		return bundle.Manifest{}, failed(fmt.Errorf("finalize release %s: %w", v.ID, err))
	}
	if err := release.SwitchCurrentSymlink(root, v.ID); err != nil {
		return bundle.Manifest{}, failed(err)
	}
	p.logger.Info("release activated", "version", v.ID, "files", len(files))
	return manifest, nil
}

func (p *Packager) materialize(ctx context.Context, blobs *blob.Store, dir string, files []bundle.File, manifest bundle.Manifest) error {
	for i, f := range files {
		hashHex, err := bundle.HashHex(manifest.Files[i].Hash)
		if err != nil {
			return err
		}
		created, err := blobs.Put(ctx, hashHex, f.Content)
		if err != nil {
			return fmt.Errorf("store %s: %w", f.Path, err)
		}
		if !created {
			p.logger.Debug("reusing stored file", "path", f.Path, "hash", hashHex)
		}
		if err := blobs.Materialize(hashHex, filepath.Join(dir, filepath.FromSlash(f.Path))); err != nil {
			return err
		}
	}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return writeFile(filepath.Join(dir, ManifestFile), append(raw, '\n'))
}
