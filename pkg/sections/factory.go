package sections

import (
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/google/uuid"
)

// Factory builds new, pre-filled sections.
type Factory struct {
	NewID func() string
}

// Default uses random UUIDs for section ids.
var Default = Factory{NewID: uuid.NewString}

// New builds a section of type t with the default factory.
func New(t model.SectionType) model.Section {
	return Default.New(t)
}

// New builds a section of type t with placeholder content for every field the
// renderer reads. Unknown types never fail: they produce a minimal hero
// section instead.
func (f Factory) New(t model.SectionType) model.Section {
	newID := f.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	id := newID()

	content, ok := placeholder(t)
	if !ok {
		return model.Section{
			ID:   id,
			Type: model.SectionHero,
			Content: map[string]string{
				"headline": "Neue Sektion",
				"text":     "",
			},
		}
	}
	return model.Section{
		ID:      id,
		Type:    t,
		Content: model.EncodeContent(content),
	}
}

// PageTypes lists the section types that can be added to a page.
func PageTypes() []model.SectionType {
	return []model.SectionType{
		model.SectionHero,
		model.SectionServices,
		model.SectionAbout,
		model.SectionContact,
		model.SectionTestimonials,
		model.SectionGallery,
		model.SectionFAQ,
		model.SectionCTA,
	}
}

func placeholder(t model.SectionType) (model.Content, bool) {
	switch t {
	case model.SectionHero:
		return model.HeroContent{
			Headline:    "Ihre Überschrift",
			Subheadline: "Ihre Beschreibung hier",
			ButtonText:  "Mehr erfahren",
			ButtonLink:  "#",
		}, true
	case model.SectionServices:
		return model.ServicesContent{
			Title: "Unsere Leistungen",
			Services: [3]model.ServiceItem{
				{Title: "Leistung 1", Description: "Beschreibung der ersten Leistung"},
				{Title: "Leistung 2", Description: "Beschreibung der zweiten Leistung"},
				{Title: "Leistung 3", Description: "Beschreibung der dritten Leistung"},
			},
		}, true
	case model.SectionAbout:
		return model.AboutContent{
			Title: "Über uns",
			Text:  "Erzählen Sie hier Ihre Geschichte...",
		}, true
	case model.SectionContact:
		return model.ContactContent{
			Title:   "Kontakt",
			Phone:   "+49 123 456789",
			Email:   "info@example.com",
			Address: "Musterstrasse 1, 12345 Musterstadt",
		}, true
	case model.SectionTestimonials:
		return model.TestimonialsContent{
			Title: "Das sagen unsere Kunden",
			Testimonials: [2]model.Testimonial{
				{Quote: "Hervorragende Arbeit!", Author: "Max Mustermann"},
				{Quote: "Sehr zufrieden mit dem Service.", Author: "Anna Beispiel"},
			},
		}, true
	case model.SectionGallery:
		return model.GalleryContent{
			Title:       "Galerie",
			Description: "Eindrücke unserer Arbeit",
		}, true
	case model.SectionFAQ:
		return model.FAQContent{
			Title: "Häufige Fragen",
			Items: [2]model.FAQItem{
				{Question: "Wie erreiche ich Sie?", Answer: "Sie können uns telefonisch oder per E-Mail erreichen."},
				{Question: "Was kostet Ihr Service?", Answer: "Kontaktieren Sie uns für ein individuelles Angebot."},
			},
		}, true
	case model.SectionCTA:
		return model.CTAContent{
			Headline:   "Bereit loszulegen?",
			Text:       "Kontaktieren Sie uns noch heute!",
			ButtonText: "Jetzt anfragen",
			ButtonLink: "#kontakt",
		}, true
	case model.SectionHeader:
		return model.HeaderContent{
			LogoText: "Meine Firma",
			Phone:    "+49 123 456789",
		}, true
	case model.SectionFooter:
		return model.FooterContent{
			Copyright: "© Meine Firma",
			Address:   "Musterstrasse 1, 12345 Musterstadt",
		}, true
	default:
		return nil, false
	}
}
