package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(DefaultOptions(filepath.Join(t.TempDir(), "db.sqlite")))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return db
}

func TestDocumentUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	q := NewQueries(openMigrated(t))

	if _, err := q.GetDocument(ctx, "project"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetDocument() on empty db error = %v, want sql.ErrNoRows", err)
	}
	if err := q.UpsertDocument(ctx, DocumentRow{Key: "project", Body: `{"v":1}`}); err != nil {
		t.Fatalf("UpsertDocument(first) error = %v", err)
	}
	if err := q.UpsertDocument(ctx, DocumentRow{Key: "project", Body: `{"v":2}`}); err != nil {
		t.Fatalf("UpsertDocument(second) error = %v", err)
	}
	row, err := q.GetDocument(ctx, "project")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if row.Body != `{"v":2}` || row.CreatedAt == "" || row.UpdatedAt == "" {
		t.Fatalf("unexpected document row: %#v", row)
	}
}

func TestVersionsListedOldestFirst(t *testing.T) {
	ctx := context.Background()
	q := NewQueries(openMigrated(t))
	if err := q.UpsertDocument(ctx, DocumentRow{Key: "project", Body: "{}"}); err != nil {
		t.Fatalf("UpsertDocument() error = %v", err)
	}
	for _, v := range []VersionRow{
		{ID: "02", DocumentKey: "project", Body: `{"n":2}`, PublishedAt: "2024-01-02T00:00:00Z"},
		{ID: "01", DocumentKey: "project", Body: `{"n":1}`, PublishedAt: "2024-01-01T00:00:00Z"},
	} {
		if err := q.InsertVersion(ctx, v); err != nil {
			t.Fatalf("InsertVersion(%s) error = %v", v.ID, err)
		}
	}
	if err := q.InsertVersion(ctx, VersionRow{ID: "01", DocumentKey: "project", Body: "{}", PublishedAt: "2024-01-03T00:00:00Z"}); err == nil {
		t.Fatalf("expected duplicate version id error")
	}

	rows, err := q.ListVersions(ctx, "project")
	if err != nil {
		t.Fatalf("ListVersions() error = %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "01" || rows[1].ID != "02" {
		t.Fatalf("unexpected version order: %#v", rows)
	}
	other, err := q.ListVersions(ctx, "other")
	if err != nil || len(other) != 0 {
		t.Fatalf("ListVersions(other) = %#v, %v", other, err)
	}
}

func TestInsertActivityReturnsID(t *testing.T) {
	ctx := context.Background()
	q := NewQueries(openMigrated(t))
	first, err := q.InsertActivity(ctx, ActivityRow{DocumentKey: "project", Timestamp: "2024-01-01T00:00:00Z", Operation: "page.add", MetadataJSON: "{}"})
	if err != nil {
		t.Fatalf("InsertActivity() error = %v", err)
	}
	second, err := q.InsertActivity(ctx, ActivityRow{DocumentKey: "project", Timestamp: "2024-01-01T00:00:01Z", Operation: "publish", MetadataJSON: "{}"})
	if err != nil {
		t.Fatalf("InsertActivity() error = %v", err)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}
}

func TestEnsureDocumentKeepsExistingBody(t *testing.T) {
	ctx := context.Background()
	q := NewQueries(openMigrated(t))

	if err := q.EnsureDocument(ctx, DocumentRow{Key: "project", Body: "first"}); err != nil {
		t.Fatalf("EnsureDocument(first) error = %v", err)
	}
	if err := q.EnsureDocument(ctx, DocumentRow{Key: "project", Body: "second"}); err != nil {
		t.Fatalf("EnsureDocument(second) error = %v", err)
	}
	row, err := q.GetDocument(ctx, "project")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if row.Body != "first" {
		t.Fatalf("EnsureDocument() overwrote body: %q", row.Body)
	}
}
