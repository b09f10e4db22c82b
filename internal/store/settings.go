package store

import (
	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/benedict2310/sitebuilder/pkg/theme"
)

// UpdateGlobalSEO sets "titleSuffix" or "defaultDescription".
func (s *Store) UpdateGlobalSEO(field, value string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft
	switch field {
	case "titleSuffix":
		next.GlobalSEO.TitleSuffix = value
	case "defaultDescription":
		next.GlobalSEO.DefaultDescription = value
	default:
		return s.draft.Clone()
	}
	return s.commit(audit.OperationSEOUpdate, "", map[string]any{"field": field}, next)
}

// SetThemePreset switches the theme. Unknown presets are ignored.
func (s *Store) SetThemePreset(preset string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !theme.Known(preset) {
		return s.draft.Clone()
	}
	next := s.draft
	next.Theme = model.ThemeConfig{Preset: preset}
	return s.commit(audit.OperationThemeSet, preset, nil, next)
}

func (s *Store) UpdateCustomDomain(domain string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.draft
	hosting := model.HostingConfig{}
	if s.draft.Hosting != nil {
		hosting = *s.draft.Hosting
	}
	hosting.CustomDomain = domain
	next.Hosting = &hosting
	return s.commit(audit.OperationDomainSet, domain, nil, next)
}
