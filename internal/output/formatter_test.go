package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

func TestParseFormat(t *testing.T) {
	if got, err := ParseFormat(""); err != nil || got != FormatTable {
		t.Fatalf("ParseFormat(\"\") got=%q err=%v", got, err)
	}
	if got, err := ParseFormat("json"); err != nil || got != FormatJSON {
		t.Fatalf("ParseFormat(json) got=%q err=%v", got, err)
	}
	if got, err := ParseFormat("YAML"); err != nil || got != FormatYAML {
		t.Fatalf("ParseFormat(YAML) got=%q err=%v", got, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestWriteStructuredJSONAndYAML(t *testing.T) {
	payload := map[string]any{"page": "startseite", "count": 2}

	jsonOut := &bytes.Buffer{}
	if err := WriteStructured(jsonOut, FormatJSON, payload); err != nil {
		t.Fatalf("WriteStructured(JSON) error = %v", err)
	}
	if !strings.Contains(jsonOut.String(), "\"page\": \"startseite\"") {
		t.Fatalf("unexpected json output: %s", jsonOut.String())
	}

	yamlOut := &bytes.Buffer{}
	if err := WriteStructured(yamlOut, FormatYAML, payload); err != nil {
		t.Fatalf("WriteStructured(YAML) error = %v", err)
	}
	if !strings.Contains(yamlOut.String(), "page: startseite") {
		t.Fatalf("unexpected yaml output: %s", yamlOut.String())
	}
}

func TestWriteStructuredKeepsMarkupAndIndents(t *testing.T) {
	payload := map[string]any{"section": map[string]string{"headline": "<b>Tom & Jerry</b>"}}

	jsonOut := &bytes.Buffer{}
	if err := WriteStructured(jsonOut, FormatJSON, payload); err != nil {
		t.Fatalf("WriteStructured(JSON) error = %v", err)
	}
	if !strings.Contains(jsonOut.String(), `"headline": "<b>Tom & Jerry</b>"`) {
		t.Fatalf("expected unescaped markup, got %s", jsonOut.String())
	}

	yamlOut := &bytes.Buffer{}
	if err := WriteStructured(yamlOut, FormatYAML, payload); err != nil {
		t.Fatalf("WriteStructured(YAML) error = %v", err)
	}
	if !strings.Contains(yamlOut.String(), "section:\n  headline: ") {
		t.Fatalf("expected two-space yaml indent, got %q", yamlOut.String())
	}

	if err := WriteStructured(&bytes.Buffer{}, FormatTable, payload); err == nil {
		t.Fatalf("expected error for table format")
	}
	if FormatTable.Structured() || !FormatJSON.Structured() || !FormatYAML.Structured() {
		t.Fatalf("unexpected Structured() results")
	}
}

func TestWriteTable(t *testing.T) {
	out := &bytes.Buffer{}
	if err := WriteTable(out, []string{"ID", "TITLE"}, [][]string{{"home", "Startseite"}}); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if !strings.Contains(out.String(), "TITLE") || !strings.Contains(out.String(), "Startseite") {
		t.Fatalf("unexpected table output: %s", out.String())
	}
	if err := WriteTable(out, []string{"A", "B"}, [][]string{{"only-one"}}); err == nil {
		t.Fatalf("expected column count error")
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := Truncate("Über uns und mehr", 8); got != "Über ..." {
		t.Fatalf("Truncate() = %q", got)
	}
	if got := Truncate("kurz", 10); got != "kurz" {
		t.Fatalf("Truncate() = %q", got)
	}
}

func TestSizeAndAgo(t *testing.T) {
	if got := Size(4200); got != "4.2 kB" {
		t.Fatalf("Size(4200) = %q", got)
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := Ago(now.Add(-3*time.Minute), now); got != "3 minutes ago" {
		t.Fatalf("Ago() = %q", got)
	}
	if got := Ago(time.Time{}, now); got != "never" {
		t.Fatalf("Ago(zero) = %q", got)
	}
}

func TestManifestTableTotals(t *testing.T) {
	m := bundle.NewManifest([]bundle.File{
		{Path: "index.html", Content: []byte("<html></html>")},
		{Path: "styles.css", Content: []byte("body{}")},
	})
	headers, rows := ManifestTable(m)
	if len(headers) != 4 || len(rows) != 3 {
		t.Fatalf("unexpected manifest table %v %v", headers, rows)
	}
	if !strings.HasPrefix(rows[0][1], "text/html") {
		t.Fatalf("unexpected content type %q", rows[0][1])
	}
	if rows[2][0] != "2 files" || rows[2][2] != "19 B" {
		t.Fatalf("unexpected totals row %v", rows[2])
	}
}

func TestVersionsTableNewestFirst(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	versions := []model.PublishedVersion{
		{ID: "old", PublishedAt: now.Add(-48 * time.Hour), Data: model.ProjectData{Pages: []model.Page{{ID: "home"}}}},
		{ID: "new", PublishedAt: now.Add(-time.Hour)},
	}
	_, rows := VersionsTable(versions, "old", now)
	if rows[0][1] != "new" || rows[1][1] != "old" || rows[1][0] != "*" || rows[1][4] != "1" {
		t.Fatalf("unexpected version rows %v", rows)
	}
}

func TestPagesAndActivityTables(t *testing.T) {
	doc := model.ProjectData{Pages: []model.Page{
		{ID: "p2", Title: "Team", Slug: "team", Order: 1, SEO: &model.PageSEO{NoIndex: true}},
		{ID: "home", Title: "Startseite", Slug: "index", IsHome: true},
	}}
	_, rows := PagesTable(doc)
	if rows[0][1] != "home" || rows[0][5] != "home" || rows[1][5] != "noindex" {
		t.Fatalf("unexpected page rows %v", rows)
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, rows = ActivityTable([]audit.Entry{{ID: 7, Operation: audit.OperationUndo, Timestamp: now}}, now)
	if rows[0][0] != "7" || rows[0][2] != "undo" || rows[0][3] != "<none>" {
		t.Fatalf("unexpected activity rows %v", rows)
	}
}
