package db

type DocumentRow struct {
	Key       string
	Body      string
	CreatedAt string
	UpdatedAt string
}

type VersionRow struct {
	ID          string
	DocumentKey string
	Body        string
	PublishedAt string
}

type ActivityRow struct {
	ID           int64
	DocumentKey  string
	Timestamp    string
	Operation    string
	Target       string
	MetadataJSON string
}
