package store

import (
	"strings"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/sections"
)

func withField(content map[string]string, field, value string) map[string]string {
	out := make(map[string]string, len(content)+1)
	for k, v := range content {
		out[k] = v
	}
	out[field] = value
	return out
}

func (s *Store) UpdateSectionContent(pageID, sectionID, field, value string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(pageID)
	if idx < 0 || strings.TrimSpace(field) == "" {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	si := page.SectionIndex(sectionID)
	if si < 0 {
		return s.draft.Clone()
	}
	secs := append([]model.Section(nil), page.Sections...)
	secs[si].Content = withField(secs[si].Content, field, value)
	page.Sections = secs
	return s.commit(audit.OperationSectionUpdate, sectionID, map[string]any{"page": pageID, "field": field}, replacePage(s.draft, idx, page))
}

// UpdateGlobalSectionContent edits the shared header or footer.
func (s *Store) UpdateGlobalSectionContent(which model.SectionType, field, value string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(field) == "" {
		return s.draft.Clone()
	}
	next := s.draft
	switch which {
	case model.SectionHeader:
		next.GlobalSections.Header.Content = withField(s.draft.GlobalSections.Header.Content, field, value)
	case model.SectionFooter:
		next.GlobalSections.Footer.Content = withField(s.draft.GlobalSections.Footer.Content, field, value)
	default:
		return s.draft.Clone()
	}
	return s.commit(audit.OperationGlobalUpdate, string(which), map[string]any{"field": field}, next)
}

// AddSection appends a factory section of type t to the page.
func (s *Store) AddSection(pageID string, t model.SectionType) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(pageID)
	if idx < 0 {
		return s.draft.Clone()
	}
	section := sections.Factory{NewID: s.newID}.New(t)
	page := s.draft.Pages[idx]
	page.Sections = append(append([]model.Section(nil), page.Sections...), section)
	return s.commit(audit.OperationSectionAdd, section.ID, map[string]any{"page": pageID, "type": string(section.Type)}, replacePage(s.draft, idx, page))
}

// RemoveSection deletes a section unless it is the last one on its page.
func (s *Store) RemoveSection(pageID, sectionID string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(pageID)
	if idx < 0 {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	si := page.SectionIndex(sectionID)
	if si < 0 || len(page.Sections) < 2 {
		return s.draft.Clone()
	}
	secs := make([]model.Section, 0, len(page.Sections)-1)
	secs = append(secs, page.Sections[:si]...)
	secs = append(secs, page.Sections[si+1:]...)
	page.Sections = secs
	return s.commit(audit.OperationSectionRemove, sectionID, map[string]any{"page": pageID}, replacePage(s.draft, idx, page))
}

func (s *Store) MoveSectionUp(pageID, sectionID string) model.ProjectData {
	return s.moveSection(pageID, sectionID, -1)
}

func (s *Store) MoveSectionDown(pageID, sectionID string) model.ProjectData {
	return s.moveSection(pageID, sectionID, 1)
}

func (s *Store) moveSection(pageID, sectionID string, delta int) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draft.PageIndex(pageID)
	if idx < 0 {
		return s.draft.Clone()
	}
	page := s.draft.Pages[idx]
	i := page.SectionIndex(sectionID)
	j := i + delta
	if i < 0 || j < 0 || j >= len(page.Sections) {
		return s.draft.Clone()
	}
	secs := append([]model.Section(nil), page.Sections...)
	secs[i], secs[j] = secs[j], secs[i]
	page.Sections = secs
	return s.commit(audit.OperationSectionMove, sectionID, map[string]any{"page": pageID, "delta": delta}, replacePage(s.draft, idx, page))
}
