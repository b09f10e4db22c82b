package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/benedict2310/sitebuilder/internal/domain"
	"github.com/benedict2310/sitebuilder/internal/store"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/theme"
)

// operation is one draft edit. Single commands and apply scripts both go
// through it, so the guards below apply to both.
type operation struct {
	Op        string `json:"op" yaml:"op"`
	Page      string `json:"page,omitempty" yaml:"page,omitempty"`
	Section   string `json:"section,omitempty" yaml:"section,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
}

type opResult struct {
	Op      string `json:"op" yaml:"op"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Changed bool   `json:"changed" yaml:"changed"`
	Message string `json:"message" yaml:"message"`
}

const (
	opPageAdd       = "page.add"
	opPageRemove    = "page.remove"
	opPageMove      = "page.move"
	opPageTitle     = "page.title"
	opPageSlug      = "page.slug"
	opPageSEO       = "page.seo"
	opPageNoIndex   = "page.noindex"
	opSectionAdd    = "section.add"
	opSectionRemove = "section.remove"
	opSectionMove   = "section.move"
	opSectionSet    = "section.set"
	opGlobalSet     = "global.set"
	opSEOSet        = "seo.set"
	opThemeSet      = "theme.set"
	opDomainSet     = "domain.set"
	opUndo          = "undo"
	opPublish       = "publish"
	opRestore       = "restore"
)

func invalidf(format string, args ...any) error {
	return exitCodeError(ExitInvalid, fmt.Errorf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return exitCodeError(ExitNotFound, fmt.Errorf(format, args...))
}

// resolvePage finds a page by id or slug. "" and "current" select the
// store's current page.
func resolvePage(st *store.Store, ref string) (model.Page, error) {
	doc := st.Draft()
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "current" {
		ref = st.CurrentPageID()
	}
	if p, ok := doc.PageByID(ref); ok {
		return p, nil
	}
	for _, p := range doc.Pages {
		if p.Slug == ref {
			return p, nil
		}
	}
	return model.Page{}, notFoundf("page %q not found", ref)
}

// resolveSection finds a section of page by id, 1-based position or "last".
func resolveSection(page model.Page, ref string) (model.Section, error) {
	ref = strings.TrimSpace(ref)
	if ref == "last" && len(page.Sections) > 0 {
		return page.Sections[len(page.Sections)-1], nil
	}
	if i := page.SectionIndex(ref); i >= 0 {
		return page.Sections[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(page.Sections) {
		return page.Sections[n-1], nil
	}
	return model.Section{}, notFoundf("section %q not found on page %q", ref, page.ID)
}

func parseDirection(v string) (up bool, err error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "up":
		return true, nil
	case "down":
		return false, nil
	default:
		return false, invalidf("direction must be up or down, got %q", v)
	}
}

func checkField(t model.SectionType, field string) error {
	names := model.FieldNames(t)
	if !slices.Contains(names, field) {
		return invalidf("%s sections have no field %q (fields: %s)", t, field, strings.Join(names, ", "))
	}
	return nil
}

// apply runs op against st.
func apply(st *store.Store, op operation) (opResult, error) {
	res := opResult{Op: op.Op}
	before := st.Draft()

	switch op.Op {
	case opPageAdd:
		st.AddPage()
		p, _ := st.Draft().PageByID(st.CurrentPageID())
		res.Target = p.ID
		res.Message = fmt.Sprintf("added page %q (%s)", p.Title, p.Slug)

	case opPageRemove:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		if p.IsHome {
			return res, invalidf("the home page cannot be removed")
		}
		st.RemovePage(p.ID)
		res.Target = p.ID
		res.Message = fmt.Sprintf("removed page %q", p.Title)

	case opPageMove:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		if p.IsHome {
			return res, invalidf("the home page always comes first")
		}
		up, err := parseDirection(op.Direction)
		if err != nil {
			return res, err
		}
		if up {
			st.MovePageUp(p.ID)
		} else {
			st.MovePageDown(p.ID)
		}
		res.Target = p.ID
		res.Message = fmt.Sprintf("moved page %q %s", p.Title, strings.ToLower(op.Direction))

	case opPageTitle:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		st.UpdatePageTitle(p.ID, op.Value)
		res.Target = p.ID
		res.Message = fmt.Sprintf("page %q is now titled %q", p.ID, op.Value)

	case opPageSlug:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		if p.IsHome {
			return res, invalidf("the home page slug is fixed")
		}
		st.UpdatePageSlug(p.ID, op.Value)
		after, _ := st.Draft().PageByID(p.ID)
		res.Target = p.ID
		res.Message = fmt.Sprintf("page %q slug is now %q", p.ID, after.Slug)

	case opPageSEO:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		if op.Field != "title" && op.Field != "description" {
			return res, invalidf("page seo field must be title or description, got %q", op.Field)
		}
		st.UpdatePageSEO(p.ID, op.Field, op.Value)
		res.Target = p.ID
		res.Message = fmt.Sprintf("page %q seo %s updated", p.ID, op.Field)

	case opPageNoIndex:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		noindex, err := strconv.ParseBool(strings.TrimSpace(op.Value))
		if err != nil {
			return res, invalidf("noindex value must be true or false, got %q", op.Value)
		}
		st.SetPageNoIndex(p.ID, noindex)
		res.Target = p.ID
		res.Message = fmt.Sprintf("page %q noindex=%t", p.ID, noindex)

	case opSectionAdd:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		t := model.SectionType(strings.ToLower(strings.TrimSpace(op.Type)))
		if !t.Valid() || t == model.SectionHeader || t == model.SectionFooter {
			return res, invalidf("unknown section type %q", op.Type)
		}
		after, _ := st.AddSection(p.ID, t).PageByID(p.ID)
		added := after.Sections[len(after.Sections)-1]
		res.Target = added.ID
		res.Message = fmt.Sprintf("added %s section %s to page %q", t, added.ID, p.ID)

	case opSectionRemove:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		sec, err := resolveSection(p, op.Section)
		if err != nil {
			return res, err
		}
		if len(p.Sections) < 2 {
			return res, invalidf("page %q needs at least one section", p.ID)
		}
		st.RemoveSection(p.ID, sec.ID)
		res.Target = sec.ID
		res.Message = fmt.Sprintf("removed %s section %s", sec.Type, sec.ID)

	case opSectionMove:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		sec, err := resolveSection(p, op.Section)
		if err != nil {
			return res, err
		}
		up, err := parseDirection(op.Direction)
		if err != nil {
			return res, err
		}
		if up {
			st.MoveSectionUp(p.ID, sec.ID)
		} else {
			st.MoveSectionDown(p.ID, sec.ID)
		}
		res.Target = sec.ID
		res.Message = fmt.Sprintf("moved %s section %s %s", sec.Type, sec.ID, strings.ToLower(op.Direction))

	case opSectionSet:
		p, err := resolvePage(st, op.Page)
		if err != nil {
			return res, err
		}
		sec, err := resolveSection(p, op.Section)
		if err != nil {
			return res, err
		}
		if err := checkField(sec.Type, op.Field); err != nil {
			return res, err
		}
		st.UpdateSectionContent(p.ID, sec.ID, op.Field, op.Value)
		res.Target = sec.ID
		res.Message = fmt.Sprintf("set %s.%s", sec.ID, op.Field)

	case opGlobalSet:
		which := model.SectionType(strings.ToLower(strings.TrimSpace(op.Section)))
		if which != model.SectionHeader && which != model.SectionFooter {
			return res, invalidf("global section must be header or footer, got %q", op.Section)
		}
		if err := checkField(which, op.Field); err != nil {
			return res, err
		}
		st.UpdateGlobalSectionContent(which, op.Field, op.Value)
		res.Target = string(which)
		res.Message = fmt.Sprintf("set %s.%s", which, op.Field)

	case opSEOSet:
		if op.Field != "titleSuffix" && op.Field != "defaultDescription" {
			return res, invalidf("seo field must be titleSuffix or defaultDescription, got %q", op.Field)
		}
		st.UpdateGlobalSEO(op.Field, op.Value)
		res.Message = fmt.Sprintf("set seo.%s", op.Field)

	case opThemeSet:
		if !theme.Known(op.Value) {
			return res, invalidf("unknown theme preset %q", op.Value)
		}
		st.SetThemePreset(op.Value)
		res.Target = op.Value
		res.Message = fmt.Sprintf("theme set to %s", op.Value)

	case opDomainSet:
		host, err := domain.Parse(op.Value)
		if err != nil {
			return res, exitCodeError(ExitInvalid, err)
		}
		st.UpdateCustomDomain(host)
		res.Target = host
		if host == "" {
			res.Message = "custom domain cleared"
		} else {
			res.Message = fmt.Sprintf("custom domain set to %q", host)
		}

	case opUndo:
		if st.HistoryLen() == 0 {
			res.Message = "nothing to undo"
			return res, nil
		}
		st.Undo()
		res.Message = "undid the last change"

	case opPublish:
		v, err := st.Publish()
		if err != nil {
			return res, err
		}
		res.Target = v.ID
		res.Changed = true
		res.Message = fmt.Sprintf("published version %s", v.ID)
		return res, nil

	case opRestore:
		v, ok := st.Version(op.Version)
		if !ok {
			return res, notFoundf("version %q not found", op.Version)
		}
		st.RestoreVersion(v.ID)
		res.Target = v.ID
		res.Message = fmt.Sprintf("restored draft from version %s", v.ID)

	default:
		return res, invalidf("unknown operation %q", op.Op)
	}

	res.Changed = !sameDraft(before, st.Draft())
	if !res.Changed && op.Op != opUndo {
		res.Message += " (unchanged)"
	}
	return res, nil
}

func sameDraft(a, b model.ProjectData) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}
