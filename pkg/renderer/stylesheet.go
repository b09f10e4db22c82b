package renderer

import (
	"bytes"
	"text/template"

	"github.com/benedict2310/sitebuilder/pkg/theme"
)

type stylesheetView struct {
	Name string
	theme.Values
}

var stylesheetTemplate = template.Must(template.New("stylesheet").Parse(stylesheetSource))

// GenerateStylesheet renders the shared stylesheet for preset. Unknown presets
// use the default theme.
func GenerateStylesheet(preset string) []byte {
	name, values := theme.Resolve(preset)
	var buf bytes.Buffer
	// The template only reads string fields of a fixed struct.
	if err := stylesheetTemplate.Execute(&buf, stylesheetView{Name: name, Values: values}); err != nil {
		panic(err)
	}
	return normalizeLFBytes(buf.Bytes())
}

const stylesheetSource = `/* Generated stylesheet */
/* Theme: {{.Name}} */

* {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

body {
  font-family: {{.FontFamily}};
  color: {{.TextColor}};
  background-color: {{.BackgroundColor}};
  line-height: 1.6;
  font-size: 16px;
}

a {
  color: {{.AccentColor}};
  text-decoration: none;
  transition: opacity 0.2s ease;
}

a:hover {
  opacity: 0.8;
}

img {
  max-width: 100%;
  height: auto;
}

/* header */

.site-header {
  background: {{.BackgroundColor}};
  border-bottom: 1px solid {{.PrimaryColor}}15;
  padding: 16px 24px;
  position: sticky;
  top: 0;
  z-index: 100;
}

.site-header-inner {
  max-width: 1200px;
  margin: 0 auto;
  display: flex;
  justify-content: space-between;
  align-items: center;
  flex-wrap: wrap;
  gap: 16px;
}

.site-logo {
  font-size: 20px;
  font-weight: 700;
  color: {{.PrimaryColor}};
}

.site-nav {
  display: flex;
  gap: 24px;
  flex-wrap: wrap;
}

.site-nav a {
  color: {{.SecondaryColor}};
  font-weight: 500;
  font-size: 14px;
}

.site-nav a:hover {
  color: {{.PrimaryColor}};
}

.header-phone {
  color: {{.PrimaryColor}};
  font-weight: 600;
}

/* hero section */

.section-hero {
  padding: 80px 24px;
  text-align: center;
  background: linear-gradient(180deg, {{.BackgroundColor}} 0%, {{.PrimaryColor}}08 100%);
}

.section-hero-inner {
  max-width: 800px;
  margin: 0 auto;
}

.section-hero h1 {
  font-size: clamp(32px, 5vw, 48px);
  font-weight: 700;
  color: {{.PrimaryColor}};
  margin-bottom: 16px;
  line-height: 1.2;
}

.section-hero p {
  font-size: 18px;
  color: {{.SecondaryColor}};
  margin-bottom: 32px;
}

/* services section */

.section-services {
  padding: 64px 24px;
  background: {{.BackgroundColor}};
}

.section-services-inner {
  max-width: 1200px;
  margin: 0 auto;
}

.section-services h2 {
  text-align: center;
  font-size: 32px;
  font-weight: 700;
  color: {{.PrimaryColor}};
  margin-bottom: 48px;
}

.services-grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(280px, 1fr));
  gap: 32px;
}

.service-card {
  padding: 32px;
  background: {{.BackgroundColor}};
  border: 1px solid {{.PrimaryColor}}15;
  border-radius: {{.BorderRadius}};
  transition: box-shadow 0.2s ease;
}

.service-card:hover {
  box-shadow: 0 4px 12px {{.PrimaryColor}}10;
}

.service-card h3 {
  font-size: 20px;
  font-weight: 600;
  color: {{.PrimaryColor}};
  margin-bottom: 12px;
}

.service-card p {
  color: {{.SecondaryColor}};
  font-size: 15px;
}

/* about section */

.section-about {
  padding: 64px 24px;
  background: {{.PrimaryColor}}05;
}

.section-about-inner {
  max-width: 800px;
  margin: 0 auto;
  text-align: center;
}

.section-about h2 {
  font-size: 32px;
  font-weight: 700;
  color: {{.PrimaryColor}};
  margin-bottom: 24px;
}

.section-about p {
  font-size: 17px;
  color: {{.SecondaryColor}};
  line-height: 1.8;
}

/* contact section */

.section-contact {
  padding: 64px 24px;
  background: {{.BackgroundColor}};
}

.section-contact-inner {
  max-width: 600px;
  margin: 0 auto;
  text-align: center;
}

.section-contact h2 {
  font-size: 32px;
  font-weight: 700;
  color: {{.PrimaryColor}};
  margin-bottom: 32px;
}

.contact-info {
  display: flex;
  flex-direction: column;
  gap: 16px;
}

.contact-info p {
  font-size: 17px;
  color: {{.SecondaryColor}};
}

.contact-info a {
  color: {{.AccentColor}};
  font-weight: 500;
}

/* testimonials section */

.section-testimonials {
  padding: 64px 24px;
  background: {{.PrimaryColor}}05;
}

.section-testimonials-inner {
  max-width: 1000px;
  margin: 0 auto;
}

.section-testimonials h2 {
  text-align: center;
  font-size: 32px;
  font-weight: 700;
  color: {{.PrimaryColor}};
  margin-bottom: 48px;
}

.testimonials-grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
  gap: 32px;
}

.testimonial-card {
  padding: 32px;
  background: {{.BackgroundColor}};
  border-radius: {{.BorderRadius}};
  box-shadow: 0 2px 8px {{.PrimaryColor}}08;
}

.testimonial-card blockquote {
  font-size: 16px;
  font-style: italic;
  color: {{.SecondaryColor}};
  margin-bottom: 16px;
  line-height: 1.7;
}

.testimonial-card cite {
  font-style: normal;
  font-weight: 600;
  color: {{.PrimaryColor}};
}

/* faq section */

.section-faq {
  padding: 64px 24px;
  background: {{.BackgroundColor}};
}

.section-faq-inner {
  max-width: 800px;
  margin: 0 auto;
}

.section-faq h2 {
  text-align: center;
  font-size: 32px;
  font-weight: 700;
  color: {{.PrimaryColor}};
  margin-bottom: 48px;
}

.faq-item {
  margin-bottom: 24px;
  padding-bottom: 24px;
  border-bottom: 1px solid {{.PrimaryColor}}10;
}

.faq-item:last-child {
  border-bottom: none;
}

.faq-item h3 {
  font-size: 18px;
  font-weight: 600;
  color: {{.PrimaryColor}};
  margin-bottom: 12px;
}

.faq-item p {
  color: {{.SecondaryColor}};
  line-height: 1.7;
}

/* cta section */

.section-cta {
  padding: 64px 24px;
  background: {{.AccentColor}};
  text-align: center;
}

.section-cta-inner {
  max-width: 600px;
  margin: 0 auto;
}

.section-cta h2 {
  font-size: 28px;
  font-weight: 700;
  color: #ffffff;
  margin-bottom: 16px;
}

.section-cta p {
  font-size: 17px;
  color: rgba(255, 255, 255, 0.9);
  margin-bottom: 24px;
}

/* buttons */

.btn {
  display: inline-block;
  padding: 14px 28px;
  font-size: 15px;
  font-weight: 600;
  text-align: center;
  border-radius: {{.BorderRadius}};
  cursor: pointer;
  transition: all 0.2s ease;
  border: none;
}

.btn-primary {
  background: {{.AccentColor}};
  color: #ffffff;
}

.btn-primary:hover {
  background: {{.PrimaryColor}};
  opacity: 1;
}

.btn-secondary {
  background: {{.BackgroundColor}};
  color: {{.PrimaryColor}};
  border: 2px solid {{.PrimaryColor}};
}

.btn-secondary:hover {
  background: {{.PrimaryColor}};
  color: {{.BackgroundColor}};
}

.btn-white {
  background: #ffffff;
  color: {{.AccentColor}};
}

.btn-white:hover {
  background: {{.BackgroundColor}};
  opacity: 1;
}

/* footer */

.site-footer {
  padding: 48px 24px;
  background: {{.PrimaryColor}};
  color: rgba(255, 255, 255, 0.8);
}

.site-footer-inner {
  max-width: 1200px;
  margin: 0 auto;
  text-align: center;
}

.site-footer p {
  margin-bottom: 8px;
}

.site-footer a {
  color: rgba(255, 255, 255, 0.9);
}

/* responsive */

@media (max-width: 768px) {
  .site-header-inner {
    flex-direction: column;
    text-align: center;
  }

  .site-nav {
    justify-content: center;
  }

  .section-hero {
    padding: 48px 16px;
  }

  .section-hero h1 {
    font-size: 28px;
  }
}
`
