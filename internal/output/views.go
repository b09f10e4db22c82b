package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/dustin/go-humanize"
)

// Size renders a byte count for humans, e.g. "4.2 kB".
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Ago renders t relative to now, e.g. "3 minutes ago". Zero times render as
// "never".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func ManifestTable(m bundle.Manifest) ([]string, [][]string) {
	rows := make([][]string, 0, len(m.Files)+1)
	var total int64
	for _, f := range m.Files {
		total += f.Size
		rows = append(rows, []string{f.Path, f.ContentType, Size(f.Size), shortHash(f.Hash)})
	}
	rows = append(rows, []string{fmt.Sprintf("%s files", humanize.Comma(int64(len(m.Files)))), "", Size(total), ""})
	return []string{"PATH", "TYPE", "SIZE", "HASH"}, rows
}

func shortHash(h string) string {
	return Truncate(strings.TrimPrefix(h, "sha256:"), 12)
}

// VersionsTable lists versions newest first. current marks the deployed
// version, if any.
func VersionsTable(versions []model.PublishedVersion, current string, now time.Time) ([]string, [][]string) {
	sorted := append([]model.PublishedVersion(nil), versions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	rows := make([][]string, 0, len(sorted))
	for _, v := range sorted {
		marker := ""
		if v.ID == current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			v.ID,
			v.PublishedAt.UTC().Format(time.RFC3339),
			Ago(v.PublishedAt, now),
			strconv.Itoa(len(v.Data.Pages)),
		})
	}
	return []string{"", "ID", "PUBLISHED", "AGE", "PAGES"}, rows
}

func PagesTable(doc model.ProjectData) ([]string, [][]string) {
	pages := doc.SortedPages()
	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		flags := []string{}
		if p.IsHome {
			flags = append(flags, "home")
		}
		if p.NoIndex() {
			flags = append(flags, "noindex")
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Order),
			p.ID,
			Truncate(p.Title, 32),
			p.Slug,
			strconv.Itoa(len(p.Sections)),
			OrNone(strings.Join(flags, ",")),
		})
	}
	return []string{"ORDER", "ID", "TITLE", "SLUG", "SECTIONS", "FLAGS"}, rows
}

func SectionsTable(p model.Page) ([]string, [][]string) {
	rows := make([][]string, 0, len(p.Sections))
	for i, s := range p.Sections {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.ID, string(s.Type), Truncate(sectionSummary(s), 40)})
	}
	return []string{"#", "ID", "TYPE", "SUMMARY"}, rows
}

func sectionSummary(s model.Section) string {
	for _, key := range []string{"headline", "title", "logoText", "copyright"} {
		if v := strings.TrimSpace(s.Content[key]); v != "" {
			return v
		}
	}
	return ""
}

func ActivityTable(entries []audit.Entry, now time.Time) ([]string, [][]string) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			Ago(e.Timestamp, now),
			e.Operation,
			OrNone(e.Target),
		})
	}
	return []string{"ID", "WHEN", "OPERATION", "TARGET"}, rows
}
