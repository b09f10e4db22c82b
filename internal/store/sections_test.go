package store

import (
	"testing"

	"github.com/benedict2310/sitebuilder/internal/storage"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

func sectionIDs(p model.Page) []string {
	var ids []string
	for _, s := range p.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestAddSectionUsesFactory(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())
	doc := s.AddSection("home", model.SectionFAQ)
	secs := doc.Pages[0].Sections
	last := secs[len(secs)-1]
	if last.Type != model.SectionFAQ || last.ID != "id-1" {
		t.Fatalf("unexpected added section %#v", last)
	}
	if last.Content["question1"] == "" {
		t.Fatalf("factory placeholders missing: %#v", last.Content)
	}
	if len(s.AddSection("missing", model.SectionFAQ).Pages[0].Sections) != len(secs) {
		t.Fatalf("unknown page should be a no-op")
	}
}

func TestRemoveSectionKeepsLastSection(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())
	for _, id := range []string{"hero-1", "services-1", "about-1"} {
		s.RemoveSection("home", id)
	}
	doc := s.RemoveSection("home", "contact-1")
	if got := sectionIDs(doc.Pages[0]); len(got) != 1 || got[0] != "contact-1" {
		t.Fatalf("unexpected remaining sections %v", got)
	}
}

func TestMoveSections(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())
	doc := s.MoveSectionDown("home", "hero-1")
	if got := sectionIDs(doc.Pages[0]); got[0] != "services-1" || got[1] != "hero-1" {
		t.Fatalf("after MoveSectionDown = %v", got)
	}
	doc = s.MoveSectionUp("home", "contact-1")
	if got := sectionIDs(doc.Pages[0]); got[2] != "contact-1" || got[3] != "about-1" {
		t.Fatalf("after MoveSectionUp = %v", got)
	}
	history := s.HistoryLen()
	s.MoveSectionUp("home", "services-1")
	s.MoveSectionDown("home", "about-1")
	s.MoveSectionDown("home", "missing")
	if s.HistoryLen() != history {
		t.Fatalf("edge moves should be no-ops")
	}
}

func TestGlobalSectionContent(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())
	s.UpdateGlobalSectionContent(model.SectionHeader, "phone", "+49 1")
	doc := s.UpdateGlobalSectionContent(model.SectionFooter, "address", "Hauptstr. 2")
	if doc.GlobalSections.Header.Content["phone"] != "+49 1" || doc.GlobalSections.Footer.Content["address"] != "Hauptstr. 2" {
		t.Fatalf("unexpected global sections %#v", doc.GlobalSections)
	}
	history := s.HistoryLen()
	s.UpdateGlobalSectionContent(model.SectionHero, "headline", "x")
	if s.HistoryLen() != history {
		t.Fatalf("non-global section type should be a no-op")
	}
}

func TestThemeAndDomain(t *testing.T) {
	s := openTestStore(t, storage.NewMemory())
	if got := s.SetThemePreset("elegant").Theme.Preset; got != "elegant" {
		t.Fatalf("theme = %q", got)
	}
	if got := s.SetThemePreset("neon").Theme.Preset; got != "elegant" {
		t.Fatalf("unknown preset applied: %q", got)
	}
	if got := s.UpdateCustomDomain("acme.example").CustomDomain(); got != "acme.example" {
		t.Fatalf("domain = %q", got)
	}
}
