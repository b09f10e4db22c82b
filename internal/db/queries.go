package db

import (
	"context"
	"database/sql"
	"fmt"
)

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db queryer
}

func NewQueries(db queryer) *Queries {
	return &Queries{db: db}
}

func (q *Queries) UpsertDocument(ctx context.Context, in DocumentRow) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO documents(key, body) VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET
    body = excluded.body,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')`, in.Key, in.Body)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// EnsureDocument inserts the row unless key already exists.
func (q *Queries) EnsureDocument(ctx context.Context, in DocumentRow) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO documents(key, body) VALUES(?, ?) ON CONFLICT(key) DO NOTHING`, in.Key, in.Body)
	if err != nil {
		return fmt.Errorf("ensure document: %w", err)
	}
	return nil
}

// GetDocument returns sql.ErrNoRows (wrapped) when key is unknown.
func (q *Queries) GetDocument(ctx context.Context, key string) (DocumentRow, error) {
	var out DocumentRow
	err := q.db.QueryRowContext(ctx, `SELECT key, body, created_at, updated_at FROM documents WHERE key = ?`, key).
		Scan(&out.Key, &out.Body, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return out, fmt.Errorf("get document: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertVersion(ctx context.Context, in VersionRow) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO published_versions(id, document_key, body, published_at) VALUES(?, ?, ?, ?)`,
		in.ID, in.DocumentKey, in.Body, in.PublishedAt)
	if err != nil {
		return fmt.Errorf("insert published version: %w", err)
	}
	return nil
}

// ListVersions returns versions oldest first.
func (q *Queries) ListVersions(ctx context.Context, documentKey string) ([]VersionRow, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT id, document_key, body, published_at
FROM published_versions
WHERE document_key = ?
ORDER BY published_at ASC, id ASC`, documentKey)
	if err != nil {
		return nil, fmt.Errorf("list published versions: %w", err)
	}
	defer rows.Close()

	out := []VersionRow{}
	for rows.Next() {
		var row VersionRow
		if err := rows.Scan(&row.ID, &row.DocumentKey, &row.Body, &row.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan published version row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate published version rows: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertActivity(ctx context.Context, in ActivityRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO activity_log(document_key, timestamp, operation, target, metadata_json) VALUES(?, ?, ?, ?, ?)`,
		in.DocumentKey, in.Timestamp, in.Operation, in.Target, in.MetadataJSON)
	if err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
	}
	return lastInsertID("insert activity", res)
}

func lastInsertID(op string, res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", op, err)
	}
	return id, nil
}
