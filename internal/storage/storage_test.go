package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	dbpkg "github.com/benedict2310/sitebuilder/internal/db"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

func sampleDoc(title string) model.ProjectData {
	return model.ProjectData{
		GlobalSections: model.GlobalSections{
			Header: model.Section{ID: "h", Type: model.SectionHeader, Content: map[string]string{"logoText": "Acme"}},
			Footer: model.Section{ID: "f", Type: model.SectionFooter, Content: map[string]string{"copyright": "© Acme"}},
		},
		Theme: model.ThemeConfig{Preset: "classic"},
		Pages: []model.Page{{
			ID: "home", Title: title, Slug: "index", IsHome: true,
			Sections: []model.Section{{ID: "s1", Type: model.SectionHero, Content: map[string]string{"headline": title}}},
		}},
	}
}

func backends(t *testing.T) map[string]Persister {
	t.Helper()
	sqlite, err := OpenSQLite(context.Background(), dbpkg.DefaultOptions(filepath.Join(t.TempDir(), "site.db")), "")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]Persister{
		"sqlite": sqlite,
		"file":   NewFile(t.TempDir(), ""),
		"memory": NewMemory(),
	}
}

func TestPersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := p.LoadDraft(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("LoadDraft() on empty backend error = %v, want ErrNotFound", err)
			}
			if err := p.SaveDraft(ctx, sampleDoc("one")); err != nil {
				t.Fatalf("SaveDraft(one) error = %v", err)
			}
			if err := p.SaveDraft(ctx, sampleDoc("two")); err != nil {
				t.Fatalf("SaveDraft(two) error = %v", err)
			}
			got, err := p.LoadDraft(ctx)
			if err != nil {
				t.Fatalf("LoadDraft() error = %v", err)
			}
			if got.Pages[0].Title != "two" || got.GlobalSections.Header.Content["logoText"] != "Acme" {
				t.Fatalf("unexpected loaded draft %#v", got)
			}
		})
	}
}

func TestVersionArchiveOrdersOldestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			archive, ok := ArchiveOf(p)
			if !ok {
				t.Fatalf("ArchiveOf(%s) = false", name)
			}
			for i, id := range []string{"01HX0000000000000000000001", "01HX0000000000000000000002"} {
				v := model.PublishedVersion{ID: id, Data: sampleDoc(id), PublishedAt: base.Add(time.Duration(i) * time.Minute)}
				if err := archive.SaveVersion(ctx, v); err != nil {
					t.Fatalf("SaveVersion(%s) error = %v", id, err)
				}
			}
			got, err := archive.LoadVersions(ctx)
			if err != nil {
				t.Fatalf("LoadVersions() error = %v", err)
			}
			if len(got) != 2 || got[0].ID != "01HX0000000000000000000001" || got[1].ID != "01HX0000000000000000000002" {
				t.Fatalf("unexpected versions %#v", got)
			}
			if got[1].Data.Pages[0].Title != "01HX0000000000000000000002" || !got[0].PublishedAt.Equal(base) {
				t.Fatalf("version data not preserved: %#v", got[1])
			}
		})
	}
}

func TestLoadDraftCorrupt(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{not json"},
		{name: "no pages", body: `{"pages":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			m.SetRaw([]byte(tt.body))
			if _, err := m.LoadDraft(ctx); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("LoadDraft() error = %v, want ErrCorrupt", err)
			}

			f := NewFile(t.TempDir(), "doc")
			if err := os.WriteFile(f.DraftPath(), []byte(tt.body), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := f.LoadDraft(ctx); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("File.LoadDraft() error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestFileSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(dir, "")
	if err := f.SaveDraft(context.Background(), sampleDoc("x")); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != DefaultKey+".json" {
		t.Fatalf("unexpected directory contents %v", entries)
	}
}

func TestFileRejectsVersionIDWithSeparator(t *testing.T) {
	f := NewFile(t.TempDir(), "")
	err := f.SaveVersion(context.Background(), model.PublishedVersion{ID: "../escape", Data: sampleDoc("x")})
	if err == nil {
		t.Fatalf("expected error for version id with separator")
	}
}

func TestAsyncCoalescesAndFlushes(t *testing.T) {
	inner := NewMemory()
	a := NewAsync(inner, func(err error) { t.Errorf("async save error: %v", err) })
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, title := range []string{"a", "b", "c"} {
		if err := a.SaveDraft(ctx, sampleDoc(title)); err != nil {
			t.Fatalf("SaveDraft(%s) error = %v", title, err)
		}
	}
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	got, err := a.LoadDraft(ctx)
	if err != nil {
		t.Fatalf("LoadDraft() error = %v", err)
	}
	if got.Pages[0].Title != "c" {
		t.Fatalf("expected newest draft, got %q", got.Pages[0].Title)
	}
	if saves := inner.Saves(); saves < 1 || saves > 3 {
		t.Fatalf("unexpected save count %d", saves)
	}
	if err := a.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := a.SaveDraft(ctx, sampleDoc("d")); err == nil {
		t.Fatalf("expected error after Close()")
	}
}

func TestAsyncFlushConcurrentWithSaves(t *testing.T) {
	inner := NewMemory()
	a := NewAsync(inner, func(err error) { t.Errorf("async save error: %v", err) })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush() on idle queue error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16*40)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 40; i++ {
				if err := a.SaveDraft(ctx, sampleDoc("w")); err != nil {
					errs <- err
				}
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 40; i++ {
				if err := a.Flush(ctx); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent SaveDraft/Flush error = %v", err)
	}

	if err := a.SaveDraft(ctx, sampleDoc("last")); err != nil {
		t.Fatalf("SaveDraft(last) error = %v", err)
	}
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	got, err := inner.LoadDraft(ctx)
	if err != nil {
		t.Fatalf("LoadDraft() error = %v", err)
	}
	if got.Pages[0].Title != "last" {
		t.Fatalf("Flush() returned before the newest draft was written, got %q", got.Pages[0].Title)
	}
	if err := a.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestAsyncReportsErrors(t *testing.T) {
	inner := NewMemory()
	boom := errors.New("disk full")
	inner.FailWith(boom)

	var mu sync.Mutex
	var got []error
	a := NewAsync(inner, func(err error) {
		mu.Lock()
		got = append(got, err)
		mu.Unlock()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.SaveDraft(ctx, sampleDoc("x")); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if err := a.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || !errors.Is(got[0], boom) {
		t.Fatalf("unexpected reported errors %v", got)
	}
}

func TestArchiveOfUnwrapsAsync(t *testing.T) {
	a := NewAsync(NewMemory(), nil)
	defer a.Close(context.Background())
	if _, ok := ArchiveOf(a); !ok {
		t.Fatalf("ArchiveOf(Async(Memory)) = false")
	}
	if _, ok := ArchiveOf(draftOnly{}); ok {
		t.Fatalf("ArchiveOf(draftOnly) = true")
	}
}

type draftOnly struct{}

func (draftOnly) LoadDraft(context.Context) (model.ProjectData, error) {
	return model.ProjectData{}, ErrNotFound
}

func (draftOnly) SaveDraft(context.Context, model.ProjectData) error { return nil }
