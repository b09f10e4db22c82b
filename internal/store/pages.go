package store

import (
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/sections"
	"github.com/benedict2310/sitebuilder/pkg/slug"
)

// replacePage returns doc with a fresh pages slice where index idx holds p.
// Other pages are shared with doc.
func replacePage(doc model.ProjectData, idx int, p model.Page) model.ProjectData {
	pages := append([]model.Page(nil), doc.Pages...)
	pages[idx] = p
	doc.Pages = pages
	return doc
}

func takenSlugs(pages []model.Page, except string) map[string]bool {
	taken := map[string]bool{slug.Home: true}
	for _, p := range pages {
		if p.ID != except {
			taken[p.Slug] = true
		}
	}
	return taken
}

// AddPage appends a page with one hero section and selects it.
func (s *Store) AddPage() model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.draft.Pages) + 1
	maxOrder := 0
	for i, p := range s.draft.Pages {
		if i == 0 || p.Order > maxOrder {
			maxOrder = p.Order
		}
	}
	factory := sections.Factory{NewID: s.newID}
	page := model.Page{
		ID:       s.newID(),
		Title:    fmt.Sprintf("Neue Seite %d", n),
		Slug:     slug.Unique(fmt.Sprintf("seite-%d", n), takenSlugs(s.draft.Pages, "")),
		Order:    maxOrder + 1,
		Sections: []model.Section{factory.New(model.SectionHero)},
		SEO:      &model.PageSEO{},
	}
	if len(s.draft.Pages) == 0 {
		page.Order = 0
	}

	next := s.draft
	next.Pages = append(append([]model.Page(nil), s.draft.Pages...), page)
	s.currentPage = page.ID
	return s.commit(audit.OperationPageAdd, page.ID, nil, next)
}

// RemovePage deletes a non-home page. The last remaining page is never
// removed.
func (s *Store) RemovePage(id string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(id)
	if idx < 0 || s.draft.Pages[idx].IsHome || len(s.draft.Pages) < 2 {
		return s.draft.Clone()
	}
	pages := make([]model.Page, 0, len(s.draft.Pages)-1)
	pages = append(pages, s.draft.Pages[:idx]...)
	pages = append(pages, s.draft.Pages[idx+1:]...)

	next := s.draft
	next.Pages = pages
	s.currentPage = pages[0].ID
	return s.commit(audit.OperationPageRemove, id, nil, next)
}

func (s *Store) MovePageUp(id string) model.ProjectData {
	return s.movePage(id, -1)
}

func (s *Store) MovePageDown(id string) model.ProjectData {
	return s.movePage(id, 1)
}

// movePage swaps a page's Order with its neighbour in navigation order. No
// other page changes. The home page never moves and nothing moves across it.
func (s *Store) movePage(id string, delta int) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.draft.SortedPages()
	i := -1
	for k, p := range sorted {
		if p.ID == id {
			i = k
			break
		}
	}
	j := i + delta
	if i < 0 || j < 0 || j >= len(sorted) || sorted[i].IsHome || sorted[j].IsHome {
		return s.draft.Clone()
	}

	moved, other := sorted[i].Order, sorted[j].Order
	if moved == other {
		// Equal orders sort by slice position; split them so the swap shows.
		if delta < 0 {
			moved++
		} else {
			other++
		}
	}
	pages := append([]model.Page(nil), s.draft.Pages...)
	pages[s.draft.PageIndex(sorted[i].ID)].Order = other
	pages[s.draft.PageIndex(sorted[j].ID)].Order = moved
	next := s.draft
	next.Pages = pages
	return s.commit(audit.OperationPageMove, id, map[string]any{"delta": delta}, next)
}

func (s *Store) UpdatePageTitle(id, title string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(id)
	if idx < 0 {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	page.Title = title
	return s.commit(audit.OperationPageUpdate, id, map[string]any{"field": "title"}, replacePage(s.draft, idx, page))
}

// UpdatePageSlug normalizes value and makes it unique among the other pages.
// The home slug is fixed.
func (s *Store) UpdatePageSlug(id, value string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(id)
	if idx < 0 || s.draft.Pages[idx].IsHome {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	page.Slug = slug.Unique(slug.Normalize(value), takenSlugs(s.draft.Pages, id))
	return s.commit(audit.OperationPageUpdate, id, map[string]any{"field": "slug"}, replacePage(s.draft, idx, page))
}

// UpdatePageSEO sets the page's SEO "title" or "description".
func (s *Store) UpdatePageSEO(id, field, value string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(id)
	if idx < 0 || (field != "title" && field != "description") {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	seo := model.PageSEO{}
	if page.SEO != nil {
		seo = *page.SEO
	}
	if field == "title" {
		seo.Title = value
	} else {
		seo.Description = value
	}
	page.SEO = &seo
	return s.commit(audit.OperationSEOUpdate, id, map[string]any{"field": field}, replacePage(s.draft, idx, page))
}

func (s *Store) SetPageNoIndex(id string, noindex bool) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(id)
	if idx < 0 {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	seo := model.PageSEO{}
	if page.SEO != nil {
		seo = *page.SEO
	}
	seo.NoIndex = noindex
	page.SEO = &seo
	return s.commit(audit.OperationSEOUpdate, id, map[string]any{"field": "noindex", "value": noindex}, replacePage(s.draft, idx, page))
}
