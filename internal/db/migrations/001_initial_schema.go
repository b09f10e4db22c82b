package migrations

type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

const initialSchemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS published_versions (
    id TEXT PRIMARY KEY,
    document_key TEXT NOT NULL REFERENCES documents(key) ON DELETE CASCADE,
    body TEXT NOT NULL,
    published_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_published_versions_document
    ON published_versions(document_key, published_at, id);
`

func All() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "initial_schema",
			UpSQL:   initialSchemaSQL,
		},
		{
			Version: 2,
			Name:    "activity_log",
			UpSQL:   activityLogSchemaSQL,
		},
	}
}
