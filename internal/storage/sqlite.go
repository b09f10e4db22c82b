package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/benedict2310/sitebuilder/internal/db"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

const versionTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite persists the draft and its published versions in a migrated
// SQLite database.
type SQLite struct {
	db    *sql.DB
	key   string
	owned bool
}

// NewSQLite wraps an already migrated database. The caller keeps ownership.
func NewSQLite(db *sql.DB, key string) (*SQLite, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &SQLite{db: db, key: key}, nil
}

// OpenSQLite opens and migrates the database at opts.Path.
func OpenSQLite(ctx context.Context, opts dbpkg.Options, key string) (*SQLite, error) {
	db, err := dbpkg.OpenMigrated(ctx, opts)
	if err != nil {
		return nil, err
	}
	s, err := NewSQLite(db, key)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) Key() string { return s.key }

func (s *SQLite) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) LoadDraft(ctx context.Context) (model.ProjectData, error) {
	row, err := dbpkg.NewQueries(s.db).GetDocument(ctx, s.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProjectData{}, ErrNotFound
		}
		return model.ProjectData{}, err
	}
	return decodeDraft([]byte(row.Body))
}

func (s *SQLite) SaveDraft(ctx context.Context, doc model.ProjectData) error {
	body, err := encodeDraft(doc)
	if err != nil {
		return err
	}
	return dbpkg.NewQueries(s.db).UpsertDocument(ctx, dbpkg.DocumentRow{Key: s.key, Body: string(body)})
}

// SaveVersion stores v. A document row is created from the version body when
// no draft has been saved yet.
func (s *SQLite) SaveVersion(ctx context.Context, v model.PublishedVersion) error {
	body, err := encodeVersion(v)
	if err != nil {
		return err
	}
	draft, err := encodeDraft(v.Data)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin version transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := dbpkg.NewQueries(tx)
	if err := q.EnsureDocument(ctx, dbpkg.DocumentRow{Key: s.key, Body: string(draft)}); err != nil {
		return err
	}
	if err := q.InsertVersion(ctx, dbpkg.VersionRow{
		ID:          v.ID,
		DocumentKey: s.key,
		Body:        string(body),
		PublishedAt: v.PublishedAt.UTC().Format(versionTimeLayout),
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit version transaction: %w", err)
	}
	return nil
}

// LoadVersions returns versions oldest first.
func (s *SQLite) LoadVersions(ctx context.Context) ([]model.PublishedVersion, error) {
	rows, err := dbpkg.NewQueries(s.db).ListVersions(ctx, s.key)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublishedVersion, 0, len(rows))
	for _, row := range rows {
		v, err := decodeVersion([]byte(row.Body))
		if err != nil {
			return nil, fmt.Errorf("version %s: %w", row.ID, err)
		}
		if v.PublishedAt.IsZero() {
			if ts, err := time.Parse(versionTimeLayout, row.PublishedAt); err == nil {
				v.PublishedAt = ts
			}
		}
		out = append(out, v)
	}
	return out, nil
}
