// Package diff compares the generated files of two site states.
package diff

import (
	"sort"
	"strings"

	"github.com/benedict2310/sitebuilder/internal/bundle"
)

// Compare reports how the files of to differ from from. Both manifests are
// expected to be valid; the last entry wins for repeated paths.
func Compare(from, to bundle.Manifest) Result {
	old := index(from)
	next := index(to)

	paths := make([]string, 0, len(old)+len(next))
	for p := range old {
		paths = append(paths, p)
	}
	for p := range next {
		if _, ok := old[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	out := Result{Changes: make([]FileChange, 0, len(paths))}
	for _, p := range paths {
		was, hadOld := old[p]
		now, hasNew := next[p]
		change := FileChange{Path: p, Kind: KindOf(p)}
		switch {
		case hasNew && !hadOld:
			out.Summary.Added++
			change.ChangeType = ChangeAdded
			change.NewHash = now.Hash
			change.SizeDelta = now.Size
		case hadOld && !hasNew:
			out.Summary.Removed++
			change.ChangeType = ChangeRemoved
			change.OldHash = was.Hash
			change.SizeDelta = -was.Size
		case was.Hash != now.Hash:
			out.Summary.Modified++
			change.ChangeType = ChangeModified
			change.OldHash = was.Hash
			change.NewHash = now.Hash
			change.SizeDelta = now.Size - was.Size
		default:
			out.Summary.Unchanged++
			continue
		}
		out.Changes = append(out.Changes, change)
	}

	sort.SliceStable(out.Changes, func(i, j int) bool {
		a, b := out.Changes[i], out.Changes[j]
		if kindRank(a.Kind) != kindRank(b.Kind) {
			return kindRank(a.Kind) < kindRank(b.Kind)
		}
		return a.Path < b.Path
	})
	return out
}

func index(m bundle.Manifest) map[string]bundle.Resource {
	out := make(map[string]bundle.Resource, len(m.Files))
	for _, r := range m.Files {
		r.Hash = strings.ToLower(strings.TrimSpace(r.Hash))
		out[r.Path] = r
	}
	return out
}

// KindOf classifies a site path.
func KindOf(p string) Kind {
	switch {
	case strings.HasSuffix(p, ".html"):
		return KindPage
	case strings.HasSuffix(p, ".css"):
		return KindStyle
	case p == "sitemap.xml" || p == "robots.txt":
		return KindSEO
	case strings.HasSuffix(p, ".png"):
		return KindImage
	default:
		return KindOther
	}
}

func kindRank(k Kind) int {
	for i, known := range kindOrder {
		if known == k {
			return i
		}
	}
	return len(kindOrder)
}
