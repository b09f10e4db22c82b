package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/benedict2310/sitebuilder/internal/db"
)

const (
	defaultLimit         = 50
	maxLimit             = 1000
	auditTimestampLayout = "2006-01-02T15:04:05.000000000Z"
)

var errOperationRequired = errors.New("operation is required")

// SQLiteLogger journals entries for one document key into activity_log.
type SQLiteLogger struct {
	db  *sql.DB
	key string
}

func NewSQLiteLogger(db *sql.DB, documentKey string) (*SQLiteLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if strings.TrimSpace(documentKey) == "" {
		return nil, fmt.Errorf("document key is required")
	}
	return &SQLiteLogger{db: db, key: documentKey}, nil
}

func (l *SQLiteLogger) Log(ctx context.Context, entry Entry) error {
	operation := strings.TrimSpace(entry.Operation)
	if operation == "" {
		return errOperationRequired
	}
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	metadataJSON := "{}"
	if entry.Metadata != nil {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
		metadataJSON = string(b)
	}

	q := dbpkg.NewQueries(l.db)
	_, err := q.InsertActivity(ctx, dbpkg.ActivityRow{
		DocumentKey:  l.key,
		Timestamp:    ts.UTC().Format(auditTimestampLayout),
		Operation:    operation,
		Target:       entry.Target,
		MetadataJSON: metadataJSON,
	})
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// Query returns matching entries newest first.
func (l *SQLiteLogger) Query(ctx context.Context, filter Filter) (QueryResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	clauses := []string{"document_key = ?"}
	args := []any{l.key}
	if strings.TrimSpace(filter.Operation) != "" {
		clauses = append(clauses, "operation = ?")
		args = append(args, strings.TrimSpace(filter.Operation))
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(auditTimestampLayout))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(auditTimestampLayout))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_log WHERE `+where, args...).Scan(&total); err != nil {
		return QueryResult{}, fmt.Errorf("count activity rows: %w", err)
	}

	query := `
SELECT id, timestamp, operation, target, metadata_json
FROM activity_log
WHERE ` + where + `
ORDER BY timestamp DESC, id DESC
LIMIT ? OFFSET ?`
	queryArgs := append(append([]any{}, args...), limit, offset)
	rows, err := l.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return QueryResult{}, fmt.Errorf("query activity rows: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var row Entry
		var ts string
		var metadataRaw string
		if err := rows.Scan(&row.ID, &ts, &row.Operation, &row.Target, &metadataRaw); err != nil {
			return QueryResult{}, fmt.Errorf("scan activity row: %w", err)
		}
		parsedTS, err := parseAuditTimestamp(ts)
		if err != nil {
			return QueryResult{}, fmt.Errorf("parse activity timestamp %q: %w", ts, err)
		}
		row.Timestamp = parsedTS
		if strings.TrimSpace(metadataRaw) != "" && metadataRaw != "{}" {
			meta := map[string]any{}
			if err := json.Unmarshal([]byte(metadataRaw), &meta); err != nil {
				return QueryResult{}, fmt.Errorf("parse activity metadata json: %w", err)
			}
			row.Metadata = meta
		}
		entries = append(entries, row)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, fmt.Errorf("iterate activity rows: %w", err)
	}
	return QueryResult{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}

func parseAuditTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(auditTimestampLayout, raw); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}
