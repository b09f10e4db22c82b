package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/navigation"
)

const (
	StylesheetName = "styles.css"
	robotsNoIndex  = "noindex,nofollow"
)

// Option adjusts a single page render.
type Option func(*pageOptions)

type pageOptions struct {
	ogImage string
}

// WithOGImage adds an og:image tag pointing at href, relative to the site root.
func WithOGImage(href string) Option {
	return func(o *pageOptions) {
		o.ogImage = href
	}
}

// RenderPage renders one page of project into a complete HTML document.
// Identical input always yields identical bytes.
func RenderPage(project model.ProjectData, page model.Page, opts ...Option) ([]byte, error) {
	var options pageOptions
	for _, opt := range opts {
		opt(&options)
	}

	nested := !page.IsHome
	header := model.DecodeContent(model.SectionHeader, project.GlobalSections.Header.Content).(model.HeaderContent)
	footer := model.DecodeContent(model.SectionFooter, project.GlobalSections.Footer.Content).(model.FooterContent)

	seoTitle := page.Title
	description := project.GlobalSEO.DefaultDescription
	if page.SEO != nil {
		if page.SEO.Title != "" {
			seoTitle = page.SEO.Title
		}
		if page.SEO.Description != "" {
			description = page.SEO.Description
		}
	}
	title := seoTitle
	if project.GlobalSEO.TitleSuffix != "" {
		title = seoTitle + " " + project.GlobalSEO.TitleSuffix
	}

	view := pageView{
		Title:          title,
		Description:    description,
		OGTitle:        seoTitle,
		StylesheetHref: navigation.Relative(StylesheetName, nested),
		LogoText:       header.LogoText,
		Phone:          header.Phone,
		Copyright:      footer.Copyright,
		Address:        footer.Address,
	}
	if page.NoIndex() {
		view.Robots = robotsNoIndex
	}
	if options.ogImage != "" {
		view.OGImage = navigation.Relative(options.ogImage, nested)
	}
	for _, item := range navigation.Build(project.Pages) {
		view.Nav = append(view.Nav, navLink{
			Href:  navigation.Relative(item.Href, nested),
			Label: item.Label,
		})
	}

	blocks := make([]string, 0, len(page.Sections))
	for _, section := range page.Sections {
		block, err := renderSection(section)
		if err != nil {
			return nil, fmt.Errorf("render section %q: %w", section.ID, err)
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	view.Main = strings.Join(blocks, "\n")

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", view); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return normalizeLFBytes(buf.Bytes()), nil
}

// PagePath is the root-relative output path of page.
func PagePath(page model.Page) string {
	return navigation.PageHref(page)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
