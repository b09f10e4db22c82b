package navigation

import (
	"reflect"
	"testing"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

func TestBuildSortsByOrder(t *testing.T) {
	pages := []model.Page{
		{ID: "c", Title: "Kontakt", Slug: "kontakt", Order: 7},
		{ID: "home", Title: "Start", Slug: "index", Order: 0, IsHome: true},
		{ID: "a", Title: "Über uns", Slug: "ueber-uns", Order: 3},
	}

	got := Build(pages)
	want := []model.NavigationItem{
		{Label: "Start", Href: "index.html", PageID: "home"},
		{Label: "Über uns", Href: "pages/ueber-uns.html", PageID: "a"},
		{Label: "Kontakt", Href: "pages/kontakt.html", PageID: "c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Build() = %#v, want %#v", got, want)
	}
	if pages[0].ID != "c" {
		t.Fatalf("Build() mutated input order")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	pages := []model.Page{
		{ID: "x", Title: "X", Slug: "x", Order: 1},
		{ID: "y", Title: "Y", Slug: "y", Order: 1},
		{ID: "home", Title: "Home", Slug: "index", IsHome: true},
	}
	first := Build(pages)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, Build(pages)) {
			t.Fatalf("Build() not deterministic")
		}
	}
	if first[1].PageID != "x" || first[2].PageID != "y" {
		t.Fatalf("equal orders should keep slice order, got %#v", first)
	}
}

func TestRelative(t *testing.T) {
	tests := []struct {
		href   string
		nested bool
		want   string
	}{
		{href: "index.html", nested: false, want: "index.html"},
		{href: "index.html", nested: true, want: "../index.html"},
		{href: "pages/team.html", nested: true, want: "../pages/team.html"},
		{href: "#kontakt", nested: true, want: "#kontakt"},
	}
	for _, tt := range tests {
		if got := Relative(tt.href, tt.nested); got != tt.want {
			t.Fatalf("Relative(%q, %v) = %q, want %q", tt.href, tt.nested, got, tt.want)
		}
	}
}
