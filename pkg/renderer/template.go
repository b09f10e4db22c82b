package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

type navLink struct {
	Href  string
	Label string
}

type pageView struct {
	Title          string
	Description    string
	Robots         string
	OGTitle        string
	OGImage        string
	StylesheetHref string
	LogoText       string
	Phone          string
	Nav            []navLink
	Main           string
	Copyright      string
	Address        string
}

// Every template field holding user content goes through esc. Main is the only
// unescaped value and is assembled from already-escaped section blocks.
const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="de">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{esc .Title}}</title>
{{- if .Description}}
  <meta name="description" content="{{esc .Description}}">
{{- end}}
{{- if .Robots}}
  <meta name="robots" content="{{.Robots}}">
{{- end}}
  <meta property="og:title" content="{{esc .OGTitle}}">
  <meta property="og:description" content="{{esc .Description}}">
  <meta property="og:type" content="website">
{{- if .OGImage}}
  <meta property="og:image" content="{{esc .OGImage}}">
{{- end}}
  <link rel="stylesheet" href="{{esc .StylesheetHref}}">
</head>
<body>
  <header class="site-header">
    <div class="site-header-inner">
      <div class="site-logo">{{esc .LogoText}}</div>
      <nav class="site-nav">
{{- range .Nav}}
        <a href="{{esc .Href}}">{{esc .Label}}</a>
{{- end}}
      </nav>
{{- if .Phone}}
      <div class="header-phone">{{esc .Phone}}</div>
{{- end}}
    </div>
  </header>

  <main>
{{.Main}}
  </main>

  <footer class="site-footer">
    <div class="site-footer-inner">
      <p>{{esc .Copyright}}</p>
{{- if .Address}}
      <p>{{esc .Address}}</p>
{{- end}}
    </div>
  </footer>
</body>
</html>
{{end}}`

const sectionTemplates = `{{define "hero"}}  <section class="section-hero" id="{{esc .ID}}">
    <div class="section-hero-inner">
      <h1>{{esc .C.Headline}}</h1>
      <p>{{esc .C.Subheadline}}</p>
{{- if .C.ButtonText}}
      <a href="{{esc (or .C.ButtonLink "#")}}" class="btn btn-primary">{{esc .C.ButtonText}}</a>
{{- end}}
    </div>
  </section>{{end}}

{{define "services"}}  <section class="section-services" id="{{esc .ID}}">
    <div class="section-services-inner">
      <h2>{{esc (or .C.Title "Unsere Leistungen")}}</h2>
      <div class="services-grid">
{{- range .C.Services}}{{if .Title}}
        <div class="service-card">
          <h3>{{esc .Title}}</h3>
          <p>{{esc .Description}}</p>
        </div>
{{- end}}{{end}}
      </div>
    </div>
  </section>{{end}}

{{define "about"}}  <section class="section-about" id="{{esc .ID}}">
    <div class="section-about-inner">
      <h2>{{esc (or .C.Title "Über uns")}}</h2>
      <p>{{esc .C.Text}}</p>
    </div>
  </section>{{end}}

{{define "gallery"}}  <section class="section-about" id="{{esc .ID}}">
    <div class="section-about-inner">
      <h2>{{esc (or .C.Title "Galerie")}}</h2>
      <p>{{esc .C.Description}}</p>
    </div>
  </section>{{end}}

{{define "contact"}}  <section class="section-contact" id="kontakt">
    <div class="section-contact-inner">
      <h2>{{esc (or .C.Title "Kontakt")}}</h2>
      <div class="contact-info">
{{- if .C.Phone}}
        <p>Telefon: <a href="tel:{{esc (dial .C.Phone)}}">{{esc .C.Phone}}</a></p>
{{- end}}
{{- if .C.Email}}
        <p>E-Mail: <a href="mailto:{{esc .C.Email}}">{{esc .C.Email}}</a></p>
{{- end}}
{{- if .C.Address}}
        <p>{{esc .C.Address}}</p>
{{- end}}
      </div>
    </div>
  </section>{{end}}

{{define "testimonials"}}  <section class="section-testimonials" id="{{esc .ID}}">
    <div class="section-testimonials-inner">
      <h2>{{esc (or .C.Title "Das sagen unsere Kunden")}}</h2>
      <div class="testimonials-grid">
{{- range .C.Testimonials}}{{if .Quote}}
        <div class="testimonial-card">
          <blockquote>"{{esc .Quote}}"</blockquote>
          <cite>– {{esc .Author}}</cite>
        </div>
{{- end}}{{end}}
      </div>
    </div>
  </section>{{end}}

{{define "faq"}}  <section class="section-faq" id="{{esc .ID}}">
    <div class="section-faq-inner">
      <h2>{{esc (or .C.Title "Häufige Fragen")}}</h2>
{{- range .C.Items}}{{if .Question}}
      <div class="faq-item">
        <h3>{{esc .Question}}</h3>
        <p>{{esc .Answer}}</p>
      </div>
{{- end}}{{end}}
    </div>
  </section>{{end}}

{{define "cta"}}  <section class="section-cta" id="{{esc .ID}}">
    <div class="section-cta-inner">
      <h2>{{esc .C.Headline}}</h2>
      <p>{{esc .C.Text}}</p>
{{- if .C.ButtonText}}
      <a href="{{esc (or .C.ButtonLink "#")}}" class="btn btn-white">{{esc .C.ButtonText}}</a>
{{- end}}
    </div>
  </section>{{end}}`

var templates = template.Must(template.New("site").Funcs(template.FuncMap{
	"esc":  Escape,
	"dial": stripWhitespace,
}).Parse(pageTemplate + sectionTemplates))

type sectionView struct {
	ID string
	C  model.Content
}

// renderSection renders one page section. Header and footer sections, and
// types without a template, render nothing.
func renderSection(section model.Section) (string, error) {
	name := string(section.Type)
	if section.Type == model.SectionHeader || section.Type == model.SectionFooter || templates.Lookup(name) == nil {
		return "", nil
	}
	content := section.Decode()
	if content == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, sectionView{ID: section.ID, C: content}); err != nil {
		return "", fmt.Errorf("execute %s template: %w", name, err)
	}
	return buf.String(), nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
