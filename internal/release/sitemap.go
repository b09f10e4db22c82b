package release

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/navigation"
)

const (
	sitemapNamespace  = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapChangeFreq = "weekly"
	homePriority      = "1.0"
	pagePriority      = "0.8"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// BaseURL is the absolute site origin for a custom domain, or "" when the
// project has none. Scheme prefixes and trailing slashes in the stored domain
// are ignored.
func BaseURL(hosting *model.HostingConfig) string {
	if hosting == nil {
		return ""
	}
	domain := strings.TrimSpace(hosting.CustomDomain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimRight(domain, "/")
	if domain == "" {
		return ""
	}
	return "https://" + domain
}

// URLPath is the site-absolute path a page is served from.
func URLPath(page model.Page) string {
	if page.IsHome {
		return "/"
	}
	return "/" + navigation.PagesDir + "/" + page.Slug + ".html"
}

// GenerateSitemap lists every indexable page in navigation order.
func GenerateSitemap(pages []model.Page, base string) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(pages))
	for _, page := range model.SortPages(pages) {
		if page.NoIndex() {
			continue
		}
		entry := sitemapURL{ChangeFreq: sitemapChangeFreq, Priority: pagePriority}
		if page.IsHome {
			entry.Loc = base
			if entry.Loc == "" {
				entry.Loc = "/"
			}
			entry.Priority = homePriority
		} else {
			entry.Loc = base + URLPath(page)
		}
		urls = append(urls, entry)
	}

	payload, err := xml.MarshalIndent(sitemapURLSet{
		XMLNS: sitemapNamespace,
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap xml: %w", err)
	}
	out := append([]byte(xml.Header), payload...)
	out = append(out, '\n')
	return out, nil
}
