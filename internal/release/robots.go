package release

import (
	"strings"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

// GenerateRobots allows everything except no-indexed pages and points
// crawlers at the sitemap.
func GenerateRobots(pages []model.Page, base string) string {
	lines := []string{"User-agent: *", "Allow: /"}
	for _, page := range model.SortPages(pages) {
		if page.NoIndex() {
			lines = append(lines, "Disallow: "+URLPath(page))
		}
	}
	lines = append(lines, "", "Sitemap: "+base+"/sitemap.xml")
	return strings.Join(lines, "\n") + "\n"
}
