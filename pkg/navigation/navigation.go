package navigation

import (
	"strings"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

const (
	// HomeHref is the link target of the home page relative to the site root.
	HomeHref = "index.html"
	// PagesDir holds every non-home page.
	PagesDir = "pages"
)

// Build derives the navigation from pages, ordered by Order ascending.
func Build(pages []model.Page) []model.NavigationItem {
	sorted := model.SortPages(pages)
	items := make([]model.NavigationItem, 0, len(sorted))
	for _, page := range sorted {
		items = append(items, model.NavigationItem{
			Label:  page.Title,
			Href:   PageHref(page),
			PageID: page.ID,
		})
	}
	return items
}

// PageHref is the root-relative file path of page.
func PageHref(page model.Page) string {
	if page.IsHome {
		return HomeHref
	}
	return PagesDir + "/" + page.Slug + ".html"
}

// Relative rewrites a root-relative href for a page that lives under PagesDir.
func Relative(href string, nested bool) string {
	if !nested || strings.HasPrefix(href, "#") {
		return href
	}
	return "../" + href
}
