package model

// Content is the typed view of a section's content map. There is one variant
// per SectionType; the persisted form remains map[string]string.
type Content interface {
	SectionType() SectionType
	Fields() map[string]string
}

type HeroContent struct {
	Headline    string
	Subheadline string
	ButtonText  string
	ButtonLink  string
}

type ServiceItem struct {
	Title       string
	Description string
}

type ServicesContent struct {
	Title    string
	Services [3]ServiceItem
}

type AboutContent struct {
	Title string
	Text  string
}

type ContactContent struct {
	Title   string
	Phone   string
	Email   string
	Address string
}

type Testimonial struct {
	Quote  string
	Author string
}

type TestimonialsContent struct {
	Title        string
	Testimonials [2]Testimonial
}

type GalleryContent struct {
	Title       string
	Description string
}

type FAQItem struct {
	Question string
	Answer   string
}

type FAQContent struct {
	Title string
	Items [2]FAQItem
}

type CTAContent struct {
	Headline   string
	Text       string
	ButtonText string
	ButtonLink string
}

type HeaderContent struct {
	LogoText string
	Phone    string
}

type FooterContent struct {
	Copyright string
	Address   string
}

var fieldNames = map[SectionType][]string{
	SectionHero:         {"headline", "subheadline", "buttonText", "buttonLink"},
	SectionServices:     {"title", "service1Title", "service1Desc", "service2Title", "service2Desc", "service3Title", "service3Desc"},
	SectionAbout:        {"title", "text"},
	SectionContact:      {"title", "phone", "email", "address"},
	SectionTestimonials: {"title", "quote1", "author1", "quote2", "author2"},
	SectionGallery:      {"title", "description"},
	SectionFAQ:          {"title", "question1", "answer1", "question2", "answer2"},
	SectionCTA:          {"headline", "text", "buttonText", "buttonLink"},
	SectionHeader:       {"logoText", "phone"},
	SectionFooter:       {"copyright", "address"},
}

// FieldNames lists the content keys the typed variant of t reads.
func FieldNames(t SectionType) []string {
	return append([]string(nil), fieldNames[t]...)
}

// DecodeContent converts a persisted content map into its typed variant.
// Missing keys decode to "". Unknown types yield nil.
func DecodeContent(t SectionType, m map[string]string) Content {
	switch t {
	case SectionHero:
		return HeroContent{
			Headline:    m["headline"],
			Subheadline: m["subheadline"],
			ButtonText:  m["buttonText"],
			ButtonLink:  m["buttonLink"],
		}
	case SectionServices:
		return ServicesContent{
			Title: m["title"],
			Services: [3]ServiceItem{
				{Title: m["service1Title"], Description: m["service1Desc"]},
				{Title: m["service2Title"], Description: m["service2Desc"]},
				{Title: m["service3Title"], Description: m["service3Desc"]},
			},
		}
	case SectionAbout:
		return AboutContent{Title: m["title"], Text: m["text"]}
	case SectionContact:
		return ContactContent{
			Title:   m["title"],
			Phone:   m["phone"],
			Email:   m["email"],
			Address: m["address"],
		}
	case SectionTestimonials:
		return TestimonialsContent{
			Title: m["title"],
			Testimonials: [2]Testimonial{
				{Quote: m["quote1"], Author: m["author1"]},
				{Quote: m["quote2"], Author: m["author2"]},
			},
		}
	case SectionGallery:
		return GalleryContent{Title: m["title"], Description: m["description"]}
	case SectionFAQ:
		return FAQContent{
			Title: m["title"],
			Items: [2]FAQItem{
				{Question: m["question1"], Answer: m["answer1"]},
				{Question: m["question2"], Answer: m["answer2"]},
			},
		}
	case SectionCTA:
		return CTAContent{
			Headline:   m["headline"],
			Text:       m["text"],
			ButtonText: m["buttonText"],
			ButtonLink: m["buttonLink"],
		}
	case SectionHeader:
		return HeaderContent{LogoText: m["logoText"], Phone: m["phone"]}
	case SectionFooter:
		return FooterContent{Copyright: m["copyright"], Address: m["address"]}
	default:
		return nil
	}
}

// Decode returns the typed view of the section's content.
func (s Section) Decode() Content {
	return DecodeContent(s.Type, s.Content)
}

// EncodeContent builds a Section content map from a typed variant.
func EncodeContent(c Content) map[string]string {
	if c == nil {
		return map[string]string{}
	}
	return c.Fields()
}

func (HeroContent) SectionType() SectionType { return SectionHero }

func (c HeroContent) Fields() map[string]string {
	return map[string]string{
		"headline":    c.Headline,
		"subheadline": c.Subheadline,
		"buttonText":  c.ButtonText,
		"buttonLink":  c.ButtonLink,
	}
}

func (ServicesContent) SectionType() SectionType { return SectionServices }

func (c ServicesContent) Fields() map[string]string {
	return map[string]string{
		"title":         c.Title,
		"service1Title": c.Services[0].Title,
		"service1Desc":  c.Services[0].Description,
		"service2Title": c.Services[1].Title,
		"service2Desc":  c.Services[1].Description,
		"service3Title": c.Services[2].Title,
		"service3Desc":  c.Services[2].Description,
	}
}

func (AboutContent) SectionType() SectionType { return SectionAbout }

func (c AboutContent) Fields() map[string]string {
	return map[string]string{"title": c.Title, "text": c.Text}
}

func (ContactContent) SectionType() SectionType { return SectionContact }

func (c ContactContent) Fields() map[string]string {
	return map[string]string{
		"title":   c.Title,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
	}
}

func (TestimonialsContent) SectionType() SectionType { return SectionTestimonials }

func (c TestimonialsContent) Fields() map[string]string {
	return map[string]string{
		"title":   c.Title,
		"quote1":  c.Testimonials[0].Quote,
		"author1": c.Testimonials[0].Author,
		"quote2":  c.Testimonials[1].Quote,
		"author2": c.Testimonials[1].Author,
	}
}

func (GalleryContent) SectionType() SectionType { return SectionGallery }

func (c GalleryContent) Fields() map[string]string {
	return map[string]string{"title": c.Title, "description": c.Description}
}

func (FAQContent) SectionType() SectionType { return SectionFAQ }

func (c FAQContent) Fields() map[string]string {
	return map[string]string{
		"title":     c.Title,
		"question1": c.Items[0].Question,
		"answer1":   c.Items[0].Answer,
		"question2": c.Items[1].Question,
		"answer2":   c.Items[1].Answer,
	}
}

func (CTAContent) SectionType() SectionType { return SectionCTA }

func (c CTAContent) Fields() map[string]string {
	return map[string]string{
		"headline":   c.Headline,
		"text":       c.Text,
		"buttonText": c.ButtonText,
		"buttonLink": c.ButtonLink,
	}
}

func (HeaderContent) SectionType() SectionType { return SectionHeader }

func (c HeaderContent) Fields() map[string]string {
	return map[string]string{"logoText": c.LogoText, "phone": c.Phone}
}

func (FooterContent) SectionType() SectionType { return SectionFooter }

func (c FooterContent) Fields() map[string]string {
	return map[string]string{"copyright": c.Copyright, "address": c.Address}
}
