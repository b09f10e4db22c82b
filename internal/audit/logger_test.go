package audit

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	dbpkg "github.com/benedict2310/sitebuilder/internal/db"
)

func TestSQLiteLoggerLogAndQuery(t *testing.T) {
	db := openAuditTestDB(t)
	defer db.Close()
	ctx := context.Background()

	logger, err := NewSQLiteLogger(db, "site")
	if err != nil {
		t.Fatalf("NewSQLiteLogger() error = %v", err)
	}
	now := time.Now().UTC().Add(-time.Minute)
	if err := logger.Log(ctx, Entry{Operation: OperationSectionUpdate, Target: "hero-1", Metadata: map[string]any{"field": "headline"}, Timestamp: now}); err != nil {
		t.Fatalf("Log(section.update) error = %v", err)
	}
	if err := logger.Log(ctx, Entry{Operation: OperationPublish, Target: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Timestamp: now.Add(time.Second)}); err != nil {
		t.Fatalf("Log(publish) error = %v", err)
	}

	res, err := logger.Query(ctx, Filter{Limit: 10})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("expected 2 rows, got total=%d len=%d", res.Total, len(res.Entries))
	}
	if res.Entries[0].Operation != OperationPublish {
		t.Fatalf("expected newest operation first, got %q", res.Entries[0].Operation)
	}
	if res.Entries[1].Metadata["field"] != "headline" {
		t.Fatalf("unexpected metadata %#v", res.Entries[1].Metadata)
	}

	filtered, err := logger.Query(ctx, Filter{Operation: OperationSectionUpdate, Limit: 10})
	if err != nil {
		t.Fatalf("Query(filtered) error = %v", err)
	}
	if filtered.Total != 1 || len(filtered.Entries) != 1 || filtered.Entries[0].Target != "hero-1" {
		t.Fatalf("unexpected filtered result %#v", filtered)
	}
}

func TestSQLiteLoggerScopesByDocumentKey(t *testing.T) {
	db := openAuditTestDB(t)
	defer db.Close()
	ctx := context.Background()

	a, err := NewSQLiteLogger(db, "a")
	if err != nil {
		t.Fatalf("NewSQLiteLogger(a) error = %v", err)
	}
	b, err := NewSQLiteLogger(db, "b")
	if err != nil {
		t.Fatalf("NewSQLiteLogger(b) error = %v", err)
	}
	if err := a.Log(ctx, Entry{Operation: OperationUndo}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	res, err := b.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("expected no entries for other key, got %d", res.Total)
	}
}

func TestSQLiteLoggerRejectsEmptyOperation(t *testing.T) {
	db := openAuditTestDB(t)
	defer db.Close()
	logger, err := NewSQLiteLogger(db, "site")
	if err != nil {
		t.Fatalf("NewSQLiteLogger() error = %v", err)
	}
	if err := logger.Log(context.Background(), Entry{Operation: "  "}); err == nil {
		t.Fatalf("expected error for empty operation")
	}
	if _, err := NewSQLiteLogger(db, ""); err == nil {
		t.Fatalf("expected error for empty document key")
	}
}

func TestAsyncLoggerDrainsToSink(t *testing.T) {
	sink := NewMemoryLogger()
	logger := NewAsyncLogger(sink, 4, func(err error) { t.Errorf("async sink error: %v", err) })
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, op := range []string{OperationPageAdd, OperationSectionAdd, OperationThemeSet} {
		if err := logger.Log(ctx, Entry{Operation: op}); err != nil {
			t.Fatalf("Log(%s) error = %v", op, err)
		}
	}
	if err := logger.WaitIdle(ctx); err != nil {
		t.Fatalf("WaitIdle() error = %v", err)
	}
	res, err := logger.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("expected 3 entries, got %d", res.Total)
	}
	if err := logger.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := logger.Log(ctx, Entry{Operation: OperationUndo}); err == nil {
		t.Fatalf("expected error after Close()")
	}
}

type blockingSink struct {
	*MemoryLogger
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingSink) Log(ctx context.Context, entry Entry) error {
	s.once.Do(func() {
		close(s.started)
		<-s.release
	})
	return s.MemoryLogger.Log(ctx, entry)
}

func TestAsyncLoggerQueueFullAndStamps(t *testing.T) {
	sink := &blockingSink{MemoryLogger: NewMemoryLogger(), started: make(chan struct{}), release: make(chan struct{})}
	logger := NewAsyncLogger(sink, 1, nil)
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	logger.now = func() time.Time { return stamp }
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := logger.Log(ctx, Entry{Operation: OperationPageAdd}); err != nil {
		t.Fatalf("Log(first) error = %v", err)
	}
	<-sink.started
	if err := logger.Log(ctx, Entry{Operation: OperationPageMove}); err != nil {
		t.Fatalf("Log(second) error = %v", err)
	}
	if err := logger.Log(ctx, Entry{Operation: OperationUndo}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Log(third) error = %v, want ErrQueueFull", err)
	}
	if got := logger.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}

	close(sink.release)
	if err := logger.WaitIdle(ctx); err != nil {
		t.Fatalf("WaitIdle() error = %v", err)
	}
	res, err := logger.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("expected 2 entries, got %d", res.Total)
	}
	for _, e := range res.Entries {
		if !e.Timestamp.Equal(stamp) {
			t.Fatalf("entry %s timestamp = %v, want enqueue time %v", e.Operation, e.Timestamp, stamp)
		}
	}
	if err := logger.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := logger.Log(ctx, Entry{Operation: OperationUndo}); !errors.Is(err, ErrLoggerClosed) {
		t.Fatalf("Log() after Close error = %v, want ErrLoggerClosed", err)
	}
}

func TestMemoryLoggerPaging(t *testing.T) {
	logger := NewMemoryLogger()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := logger.Log(ctx, Entry{Operation: OperationPageUpdate, Timestamp: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}
	res, err := logger.Query(ctx, Filter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Total != 5 || len(res.Entries) != 2 {
		t.Fatalf("unexpected page total=%d len=%d", res.Total, len(res.Entries))
	}
	if res.Entries[0].ID != 4 || res.Entries[1].ID != 3 {
		t.Fatalf("unexpected ids %d %d", res.Entries[0].ID, res.Entries[1].ID)
	}
	res, err = logger.Query(ctx, Filter{Offset: 10})
	if err != nil {
		t.Fatalf("Query(offset) error = %v", err)
	}
	if len(res.Entries) != 0 {
		t.Fatalf("expected empty page past the end")
	}
}

func openAuditTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.sqlite")
	db, err := dbpkg.Open(dbpkg.DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := dbpkg.RunMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return db
}
