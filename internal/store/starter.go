package store

import (
	"fmt"
	"time"

	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/slug"
	"github.com/benedict2310/sitebuilder/pkg/theme"
)

// Starter is the document a new project begins with.
func Starter(now time.Time) model.ProjectData {
	return model.ProjectData{
		GlobalSections: model.GlobalSections{
			Header: model.Section{
				ID:      "global-header",
				Type:    model.SectionHeader,
				Content: model.EncodeContent(model.HeaderContent{LogoText: "Meine Firma"}),
			},
			Footer: model.Section{
				ID:      "global-footer",
				Type:    model.SectionFooter,
				Content: model.EncodeContent(model.FooterContent{Copyright: fmt.Sprintf("© %d Meine Firma", now.Year())}),
			},
		},
		GlobalSEO: model.GlobalSEO{
			TitleSuffix:        "– Meine Firma",
			DefaultDescription: "Professionelle Dienstleistungen für KMU",
		},
		Theme:   model.ThemeConfig{Preset: theme.Classic},
		Hosting: &model.HostingConfig{},
		Pages: []model.Page{{
			ID:     "home",
			Title:  "Startseite",
			Slug:   slug.Home,
			Order:  0,
			IsHome: true,
			Sections: []model.Section{
				{
					ID:   "hero-1",
					Type: model.SectionHero,
					Content: model.EncodeContent(model.HeroContent{
						Headline:    "Willkommen bei Meine Firma",
						Subheadline: "Ihre professionelle Lösung für...",
						ButtonText:  "Kontakt aufnehmen",
						ButtonLink:  "#kontakt",
					}),
				},
				{
					ID:   "services-1",
					Type: model.SectionServices,
					Content: model.EncodeContent(model.ServicesContent{
						Title: "Unsere Leistungen",
						Services: [3]model.ServiceItem{
							{Title: "Beratung", Description: "Kompetente Beratung für Ihre Bedürfnisse"},
							{Title: "Umsetzung", Description: "Professionelle Umsetzung Ihrer Projekte"},
							{Title: "Support", Description: "Zuverlässiger Support für Sie"},
						},
					}),
				},
				{
					ID:   "about-1",
					Type: model.SectionAbout,
					Content: model.EncodeContent(model.AboutContent{
						Title: "Über uns",
						Text:  "Wir sind ein erfahrenes Team mit langjähriger Expertise...",
					}),
				},
				{
					ID:      "contact-1",
					Type:    model.SectionContact,
					Content: model.EncodeContent(model.ContactContent{Title: "Kontakt"}),
				},
			},
			SEO: &model.PageSEO{},
		}},
	}
}
