package model

import "sort"

// Clone returns a deep copy that shares no mutable state with s.
func (s Section) Clone() Section {
	out := s
	if s.Content != nil {
		out.Content = make(map[string]string, len(s.Content))
		for k, v := range s.Content {
			out.Content[k] = v
		}
	}
	return out
}

func (p Page) Clone() Page {
	out := p
	if p.Sections != nil {
		out.Sections = make([]Section, len(p.Sections))
		for i, section := range p.Sections {
			out.Sections[i] = section.Clone()
		}
	}
	if p.SEO != nil {
		seo := *p.SEO
		out.SEO = &seo
	}
	return out
}

func (p ProjectData) Clone() ProjectData {
	out := p
	out.GlobalSections = GlobalSections{
		Header: p.GlobalSections.Header.Clone(),
		Footer: p.GlobalSections.Footer.Clone(),
	}
	if p.Hosting != nil {
		hosting := *p.Hosting
		out.Hosting = &hosting
	}
	if p.Pages != nil {
		out.Pages = make([]Page, len(p.Pages))
		for i, page := range p.Pages {
			out.Pages[i] = page.Clone()
		}
	}
	return out
}

func (v PublishedVersion) Clone() PublishedVersion {
	out := v
	out.Data = v.Data.Clone()
	return out
}

// PageIndex returns the slice index of the page with id, or -1.
func (p ProjectData) PageIndex(id string) int {
	for i := range p.Pages {
		if p.Pages[i].ID == id {
			return i
		}
	}
	return -1
}

func (p ProjectData) PageByID(id string) (Page, bool) {
	idx := p.PageIndex(id)
	if idx < 0 {
		return Page{}, false
	}
	return p.Pages[idx], true
}

// HomePage returns the page carrying the home flag.
func (p ProjectData) HomePage() (Page, bool) {
	for _, page := range p.Pages {
		if page.IsHome {
			return page, true
		}
	}
	return Page{}, false
}

// SortedPages returns the pages ordered by Order ascending. Ties keep slice order.
func (p ProjectData) SortedPages() []Page {
	return SortPages(p.Pages)
}

func SortPages(pages []Page) []Page {
	out := append([]Page(nil), pages...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// SectionIndex returns the slice index of the section with id, or -1.
func (p Page) SectionIndex(id string) int {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return i
		}
	}
	return -1
}
