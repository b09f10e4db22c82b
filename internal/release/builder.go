package release

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/benedict2310/sitebuilder/internal/ogimage"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/renderer"
	"github.com/benedict2310/sitebuilder/pkg/slug"
	"github.com/benedict2310/sitebuilder/pkg/theme"
	"github.com/benedict2310/sitebuilder/pkg/validator"
)

const (
	SitemapFile = "sitemap.xml"
	RobotsFile  = "robots.txt"
	ReadmeFile  = "README.md"
	ogDir       = "og"
)

// File is one generated output keyed by its slash-separated path.
type File struct {
	Path    string
	Content []byte
}

// Site is the complete generated file set in a stable order.
type Site struct {
	Files    []File
	BuildLog string
}

// File returns the content stored at path.
func (s Site) File(path string) ([]byte, bool) {
	for _, f := range s.Files {
		if f.Path == path {
			return f.Content, true
		}
	}
	return nil, false
}

// Paths lists every output path in build order.
func (s Site) Paths() []string {
	out := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		out = append(out, f.Path)
	}
	return out
}

type Options struct {
	// SocialCards adds one og:image PNG per page.
	SocialCards bool
	Logger      *slog.Logger

	generateFn func(ogimage.Card) ([]byte, error)
}

// Build compiles project into a static site. Two pages resolving to the same
// output path, an invalid slug or a page that fails verification abort the
// build.
func Build(ctx context.Context, project model.ProjectData, opts Options) (Site, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	generate := opts.generateFn
	if generate == nil {
		generate = ogimage.Generate
	}

	log := newBuildLog()
	pages := model.SortPages(project.Pages)
	if err := checkPagePaths(pages); err != nil {
		return Site{}, err
	}

	presetName, values := theme.Resolve(project.Theme.Preset)
	if presetName != project.Theme.Preset {
		log.Warnf("unknown theme preset %q, using %q", project.Theme.Preset, presetName)
	}

	site := Site{}
	add := func(path string, content []byte) {
		site.Files = append(site.Files, File{Path: path, Content: content})
		log.Addf("wrote %s (%d bytes)", path, len(content))
	}

	add(renderer.StylesheetName, renderer.GenerateStylesheet(presetName))

	var cards []File
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return Site{}, err
		}
		path := renderer.PagePath(page)

		var renderOpts []renderer.Option
		if opts.SocialCards {
			cardPath := ogImagePath(path)
			png, err := generate(cardFor(project, page, values))
			if err != nil {
				return Site{}, fmt.Errorf("generate social card for page %q: %w", page.ID, err)
			}
			cards = append(cards, File{Path: cardPath, Content: png})
			renderOpts = append(renderOpts, renderer.WithOGImage(cardPath))
		}

		html, err := renderer.RenderPage(project, page, renderOpts...)
		if err != nil {
			return Site{}, fmt.Errorf("render page %q: %w", page.ID, err)
		}
		if errs := validator.ValidatePage(path, html); len(errs) > 0 {
			return Site{}, fmt.Errorf("verify page %q:\n%s", page.ID, validator.FormatErrors(errs))
		}
		add(path, html)
	}
	for _, card := range cards {
		add(card.Path, card.Content)
	}

	base := BaseURL(project.Hosting)
	sitemap, err := GenerateSitemap(project.Pages, base)
	if err != nil {
		return Site{}, err
	}
	add(SitemapFile, sitemap)
	add(RobotsFile, []byte(GenerateRobots(project.Pages, base)))
	add(ReadmeFile, []byte(readme))

	logger.Debug("site built", "files", len(site.Files), "pages", len(pages), "theme", presetName)
	site.BuildLog = log.String()
	return site, nil
}

func checkPagePaths(pages []model.Page) error {
	homes := 0
	seen := make(map[string]string, len(pages))
	for _, page := range pages {
		if page.IsHome {
			homes++
		} else if !slug.Valid(page.Slug) {
			return fmt.Errorf("page %q has invalid slug %q", page.ID, page.Slug)
		}
		path := renderer.PagePath(page)
		if other, ok := seen[path]; ok {
			return fmt.Errorf("pages %q and %q both resolve to %s", other, page.ID, path)
		}
		seen[path] = page.ID
	}
	if homes != 1 {
		return fmt.Errorf("project must have exactly one home page, found %d", homes)
	}
	return nil
}

func ogImagePath(pagePath string) string {
	return ogDir + "/" + strings.TrimSuffix(pagePath, ".html") + ".png"
}

func cardFor(project model.ProjectData, page model.Page, values theme.Values) ogimage.Card {
	title := page.Title
	description := project.GlobalSEO.DefaultDescription
	if page.SEO != nil {
		if page.SEO.Title != "" {
			title = page.SEO.Title
		}
		if page.SEO.Description != "" {
			description = page.SEO.Description
		}
	}
	return ogimage.Card{
		Title:           title,
		Description:     description,
		SiteName:        project.GlobalSections.Header.Content["logoText"],
		BackgroundColor: values.PrimaryColor,
		AccentColor:     values.AccentColor,
	}
}

const readme = `# Ihre Website

Diese Website wurde mit sitebuilder erstellt.

## Dateien

- index.html - Ihre Startseite
- pages/ - Weitere Seiten
- styles.css - Das Design Ihrer Website
- sitemap.xml - Für Suchmaschinen
- robots.txt - Für Suchmaschinen

## Veröffentlichen

1. Laden Sie alle Dateien auf Ihren Webserver hoch
2. Oder nutzen Sie einen Hosting-Dienst wie Netlify, Cloudflare Pages oder GitHub Pages

Bei Fragen wenden Sie sich an Ihren Webentwickler.
`
