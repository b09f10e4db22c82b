package model

import "time"

// SectionType tags a content block. The set is closed.
type SectionType string

const (
	SectionHeader       SectionType = "header"
	SectionFooter       SectionType = "footer"
	SectionHero         SectionType = "hero"
	SectionServices     SectionType = "services"
	SectionAbout        SectionType = "about"
	SectionContact      SectionType = "contact"
	SectionTestimonials SectionType = "testimonials"
	SectionGallery      SectionType = "gallery"
	SectionFAQ          SectionType = "faq"
	SectionCTA          SectionType = "cta"
)

var sectionTypes = []SectionType{
	SectionHeader,
	SectionFooter,
	SectionHero,
	SectionServices,
	SectionAbout,
	SectionContact,
	SectionTestimonials,
	SectionGallery,
	SectionFAQ,
	SectionCTA,
}

// SectionTypes returns every known section type in declaration order.
func SectionTypes() []SectionType {
	return append([]SectionType(nil), sectionTypes...)
}

func (t SectionType) Valid() bool {
	for _, known := range sectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Section is one content block. Content stays map-shaped on the wire; use
// DecodeContent for the typed view.
type Section struct {
	ID      string            `json:"id" yaml:"id"`
	Type    SectionType       `json:"type" yaml:"type"`
	Content map[string]string `json:"content" yaml:"content"`
}

type PageSEO struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	NoIndex     bool   `json:"noindex,omitempty" yaml:"noindex,omitempty"`
}

type Page struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Slug     string    `json:"slug" yaml:"slug"`
	Order    int       `json:"order" yaml:"order"`
	IsHome   bool      `json:"isHome,omitempty" yaml:"isHome,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
	SEO      *PageSEO  `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// NoIndex reports whether the page is excluded from search engines.
func (p Page) NoIndex() bool {
	return p.SEO != nil && p.SEO.NoIndex
}

type GlobalSections struct {
	Header Section `json:"header" yaml:"header"`
	Footer Section `json:"footer" yaml:"footer"`
}

type GlobalSEO struct {
	TitleSuffix        string `json:"titleSuffix,omitempty" yaml:"titleSuffix,omitempty"`
	DefaultDescription string `json:"defaultDescription,omitempty" yaml:"defaultDescription,omitempty"`
}

type ThemeConfig struct {
	Preset string `json:"preset" yaml:"preset"`
}

type HostingConfig struct {
	CustomDomain string `json:"customDomain,omitempty" yaml:"customDomain,omitempty"`
}

// ProjectData is the document: the unit of persistence, undo and publishing.
type ProjectData struct {
	GlobalSections GlobalSections `json:"globalSections" yaml:"globalSections"`
	GlobalSEO      GlobalSEO      `json:"globalSeo" yaml:"globalSeo"`
	Theme          ThemeConfig    `json:"theme" yaml:"theme"`
	Hosting        *HostingConfig `json:"hosting,omitempty" yaml:"hosting,omitempty"`
	Pages          []Page         `json:"pages" yaml:"pages"`
}

// CustomDomain returns the configured domain or "".
func (p ProjectData) CustomDomain() string {
	if p.Hosting == nil {
		return ""
	}
	return p.Hosting.CustomDomain
}

// PublishedVersion is an immutable snapshot of the draft.
type PublishedVersion struct {
	ID          string      `json:"id" yaml:"id"`
	Data        ProjectData `json:"data" yaml:"data"`
	PublishedAt time.Time   `json:"publishedAt" yaml:"publishedAt"`
}

type PreviewMode string

const (
	PreviewDraft     PreviewMode = "draft"
	PreviewPublished PreviewMode = "published"
)

func (m PreviewMode) Valid() bool {
	return m == PreviewDraft || m == PreviewPublished
}

// NavigationItem is one derived navigation link. It is never stored.
type NavigationItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	PageID string `json:"pageId"`
}
