package sections

import (
	"strconv"
	"testing"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

func TestNewFillsEveryRenderedField(t *testing.T) {
	for _, typ := range model.SectionTypes() {
		section := New(typ)
		if section.ID == "" {
			t.Fatalf("New(%q) returned empty id", typ)
		}
		if section.Type != typ {
			t.Fatalf("New(%q).Type = %q", typ, section.Type)
		}
		for _, field := range model.FieldNames(typ) {
			if section.Content[field] == "" {
				t.Fatalf("New(%q) content[%q] is empty", typ, field)
			}
		}
	}
}

func TestNewGeneratesFreshIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := New(model.SectionHero).ID
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewUnknownTypeFallsBack(t *testing.T) {
	section := New(model.SectionType("carousel"))
	if section.Type != model.SectionHero {
		t.Fatalf("expected hero fallback, got %q", section.Type)
	}
	if section.Content["headline"] != "Neue Sektion" {
		t.Fatalf("unexpected fallback headline %q", section.Content["headline"])
	}
	if _, ok := section.Content["text"]; !ok {
		t.Fatalf("expected fallback text key")
	}
}

func TestFactoryUsesInjectedIDs(t *testing.T) {
	n := 0
	f := Factory{NewID: func() string {
		n++
		return "s-" + strconv.Itoa(n)
	}}
	if got := f.New(model.SectionFAQ).ID; got != "s-1" {
		t.Fatalf("first id = %q", got)
	}
	if got := f.New(model.SectionCTA).ID; got != "s-2" {
		t.Fatalf("second id = %q", got)
	}
}

func TestPageTypesExcludeGlobalSections(t *testing.T) {
	for _, typ := range PageTypes() {
		if typ == model.SectionHeader || typ == model.SectionFooter {
			t.Fatalf("PageTypes() contains global type %q", typ)
		}
		if !typ.Valid() {
			t.Fatalf("PageTypes() contains invalid type %q", typ)
		}
	}
}
