package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/internal/store"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

func starter() model.ProjectData {
	return store.Starter(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestExportStarterDocument(t *testing.T) {
	var buf bytes.Buffer
	manifest, err := NewPackager(release.Options{}).Export(context.Background(), starter(), &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	b, err := bundle.ReadZip(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadZip() error = %v", err)
	}
	if err := manifest.Verify(b); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !strings.Contains(string(b.Files["index.html"]), "Willkommen bei Meine Firma") {
		t.Fatalf("index.html missing hero headline")
	}
	if !strings.Contains(string(b.Files["styles.css"]), "#1f2937") {
		t.Fatalf("styles.css missing classic primary color")
	}
	for _, name := range []string{"sitemap.xml", "robots.txt", "README.md"} {
		if _, ok := b.Files[name]; !ok {
			t.Fatalf("archive missing %s; entries %v", name, b.Order)
		}
	}
}

func TestExportIsDeterministic(t *testing.T) {
	p := NewPackager(release.Options{})
	var a, b bytes.Buffer
	if _, err := p.Export(context.Background(), starter(), &a); err != nil {
		t.Fatalf("Export(first) error = %v", err)
	}
	if _, err := p.Export(context.Background(), starter(), &b); err != nil {
		t.Fatalf("Export(second) error = %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("identical documents produced different archives")
	}
}

type blockingWriter struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	w.once.Do(func() {
		close(w.started)
		<-w.release
	})
	return len(p), nil
}

func TestExportRejectsConcurrentExport(t *testing.T) {
	p := NewPackager(release.Options{})
	w := &blockingWriter{started: make(chan struct{}), release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := p.Export(context.Background(), starter(), w)
		done <- err
	}()
	<-w.started

	_, err := p.Export(context.Background(), starter(), &bytes.Buffer{})
	if !errors.Is(err, ErrExportInProgress) {
		t.Fatalf("concurrent Export() error = %v, want ErrExportInProgress", err)
	}
	if !strings.HasPrefix(err.Error(), "export failed: ") {
		t.Fatalf("unexpected error text %q", err.Error())
	}

	close(w.release)
	if err := <-done; err != nil {
		t.Fatalf("first Export() error = %v", err)
	}
	if _, err := p.Export(context.Background(), starter(), &bytes.Buffer{}); err != nil {
		t.Fatalf("Export() after completion error = %v", err)
	}
}

func TestExportFailureIsWrapped(t *testing.T) {
	doc := starter()
	doc.Pages[0].IsHome = false
	_, err := NewPackager(release.Options{}).Export(context.Background(), doc, &bytes.Buffer{})
	if err == nil || !strings.HasPrefix(err.Error(), "export failed: ") {
		t.Fatalf("Export() error = %v, want export failed prefix", err)
	}
}

func TestExportFileIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", bundle.ArchiveName)
	manifest, err := NewPackager(release.Options{}).ExportFile(context.Background(), starter(), path)
	if err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if len(manifest.Files) == 0 {
		t.Fatalf("empty manifest")
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != bundle.ArchiveName {
		t.Fatalf("unexpected output directory contents %v", entries)
	}

	doc := starter()
	doc.Pages[0].IsHome = false
	if _, err := NewPackager(release.Options{}).ExportFile(context.Background(), doc, path); err == nil {
		t.Fatalf("expected error for invalid document")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("failed export removed the previous archive: %v", err)
	}
}

func TestRenderDirWritesTree(t *testing.T) {
	doc := starter()
	doc.Pages = append(doc.Pages, model.Page{
		ID: "p2", Title: "Team", Slug: "team", Order: 1,
		Sections: []model.Section{{ID: "a", Type: model.SectionAbout, Content: map[string]string{"title": "Team"}}},
	})
	dir := t.TempDir()
	if _, err := NewPackager(release.Options{}).RenderDir(context.Background(), doc, dir); err != nil {
		t.Fatalf("RenderDir() error = %v", err)
	}
	for _, rel := range []string{"index.html", "styles.css", "pages/team.html", "sitemap.xml"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}
}

func TestDeployActivatesRelease(t *testing.T) {
	root := t.TempDir()
	p := NewPackager(release.Options{})
	first := model.PublishedVersion{ID: "01HX0000000000000000000001", Data: starter()}
	second := model.PublishedVersion{ID: "01HX0000000000000000000002", Data: starter()}
	second.Data.Pages[0].Sections[0].Content["headline"] = "Neu"

	if _, err := p.Deploy(context.Background(), first, root); err != nil {
		t.Fatalf("Deploy(first) error = %v", err)
	}
	if _, err := p.Deploy(context.Background(), second, root); err != nil {
		t.Fatalf("Deploy(second) error = %v", err)
	}
	current, ok, err := release.CurrentVersion(root)
	if err != nil || !ok || current != second.ID {
		t.Fatalf("CurrentVersion() = %q %v %v, want %q", current, ok, err, second.ID)
	}
	index, err := os.ReadFile(filepath.Join(root, "current", "index.html"))
	if err != nil {
		t.Fatalf("read current index: %v", err)
	}
	if !strings.Contains(string(index), "Neu") {
		t.Fatalf("current release does not serve the second version")
	}

	manifest, err := p.Deploy(context.Background(), first, root)
	if err != nil {
		t.Fatalf("Deploy(first again) error = %v", err)
	}
	if len(manifest.Files) == 0 {
		t.Fatalf("re-activation returned empty manifest")
	}
	if current, _, _ := release.CurrentVersion(root); current != first.ID {
		t.Fatalf("re-activation did not switch current, got %q", current)
	}
	if _, err := os.Stat(filepath.Join(release.ReleaseDir(root, first.ID), ManifestFile)); err != nil {
		t.Fatalf("release manifest missing: %v", err)
	}
}

func TestManifestMatchesExport(t *testing.T) {
	p := NewPackager(release.Options{})
	var buf bytes.Buffer
	exported, err := p.Export(context.Background(), starter(), &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	manifest, err := p.Manifest(context.Background(), starter())
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if len(manifest.Files) != len(exported.Files) {
		t.Fatalf("Manifest() has %d files, want %d", len(manifest.Files), len(exported.Files))
	}
	for i := range manifest.Files {
		if manifest.Files[i] != exported.Files[i] {
			t.Fatalf("Manifest().Files[%d] = %#v, want %#v", i, manifest.Files[i], exported.Files[i])
		}
	}
}
