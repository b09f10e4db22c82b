// Package export turns a document into a downloadable archive, a directory
// tree or an activated release.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

// ErrExportInProgress is returned when an export starts while another one on
// the same Packager is still running.
var ErrExportInProgress = errors.New("an export is already in progress")

type Packager struct {
	opts     release.Options
	logger   *slog.Logger
	inFlight atomic.Bool
}

func NewPackager(opts release.Options) *Packager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = logger
	return &Packager{opts: opts, logger: logger}
}

func failed(err error) error {
	return fmt.Errorf("export failed: %w", err)
}

func (p *Packager) acquire() error {
	if !p.inFlight.CompareAndSwap(false, true) {
		return failed(ErrExportInProgress)
	}
	return nil
}

func (p *Packager) release() {
	p.inFlight.Store(false)
}

func (p *Packager) build(ctx context.Context, project model.ProjectData) ([]bundle.File, error) {
	site, err := release.Build(ctx, project, p.opts)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("site build log", "log", site.BuildLog)
	files := make([]bundle.File, 0, len(site.Files))
	for _, f := range site.Files {
		files = append(files, bundle.File{Path: f.Path, Content: f.Content})
	}
	return files, nil
}

// Manifest builds the site and returns its manifest without writing
// anything. It does not take the export guard.
func (p *Packager) Manifest(ctx context.Context, project model.ProjectData) (bundle.Manifest, error) {
	files, err := p.build(ctx, project)
	if err != nil {
		return bundle.Manifest{}, failed(err)
	}
	return bundle.NewManifest(files), nil
}

// Export builds the site and writes it to w as a zip archive.
func (p *Packager) Export(ctx context.Context, project model.ProjectData, w io.Writer) (bundle.Manifest, error) {
	if err := p.acquire(); err != nil {
		return bundle.Manifest{}, err
	}
	defer p.release()
	return p.export(ctx, project, w)
}

func (p *Packager) export(ctx context.Context, project model.ProjectData, w io.Writer) (bundle.Manifest, error) {
	files, err := p.build(ctx, project)
	if err != nil {
		return bundle.Manifest{}, failed(err)
	}
	if err := bundle.WriteZip(w, files); err != nil {
		return bundle.Manifest{}, failed(err)
	}
	manifest := bundle.NewManifest(files)
	p.logger.Info("site exported", "files", len(manifest.Files))
	return manifest, nil
}

// ExportFile writes the archive to path. The archive is read back and checked
// against its manifest before it replaces path.
func (p *Packager) ExportFile(ctx context.Context, project model.ProjectData, path string) (bundle.Manifest, error) {
	if err := p.acquire(); err != nil {
		return bundle.Manifest{}, err
	}
	defer p.release()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bundle.Manifest{}, failed(fmt.Errorf("create directory %s: %w", dir, err))
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return bundle.Manifest{}, failed(fmt.Errorf("create temp archive: %w", err))
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	manifest, err := p.export(ctx, project, tmp)
	if err != nil {
		cleanup()
		return bundle.Manifest{}, err
	}
	if err := verifyArchive(tmp, manifest); err != nil {
		cleanup()
		return bundle.Manifest{}, failed(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return bundle.Manifest{}, failed(fmt.Errorf("close temp archive: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return bundle.Manifest{}, failed(fmt.Errorf("finalize %s: %w", path, err))
	}
	return manifest, nil
}

func verifyArchive(f *os.File, manifest bundle.Manifest) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	b, err := bundle.ReadZip(f, info.Size())
	if err != nil {
		return err
	}
	return manifest.Verify(b)
}

// RenderDir writes the site as plain files below dir.
func (p *Packager) RenderDir(ctx context.Context, project model.ProjectData, dir string) (bundle.Manifest, error) {
	if err := p.acquire(); err != nil {
		return bundle.Manifest{}, err
	}
	defer p.release()

	files, err := p.build(ctx, project)
	if err != nil {
		return bundle.Manifest{}, failed(err)
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, filepath.FromSlash(f.Path)), f.Content); err != nil {
			return bundle.Manifest{}, failed(err)
		}
	}
	return bundle.NewManifest(files), nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}
