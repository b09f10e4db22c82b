package store

import (
	"context"
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

// Undo restores the draft from before the most recent change. It does
// nothing when the history is empty and cannot be redone.
func (s *Store) Undo() model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.pop()
	if !ok {
		return s.draft.Clone()
	}
	s.install(audit.OperationUndo, "", nil, prev)
	if s.draft.PageIndex(s.currentPage) < 0 {
		s.currentPage = s.defaultPageID()
	}
	return s.draft.Clone()
}

// Publish freezes a deep copy of the draft as a new version and switches the
// preview to published. The history is left untouched.
func (s *Store) Publish() (model.PublishedVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	id, err := s.versionID(now)
	if err != nil {
		return model.PublishedVersion{}, fmt.Errorf("publish: %w", err)
	}
	v := model.PublishedVersion{ID: id, Data: s.draft.Clone(), PublishedAt: now}
	s.versions = append(s.versions, v)
	s.previewMode = model.PreviewPublished

	if s.archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		if err := s.archive.SaveVersion(ctx, v); err != nil {
			s.logger.Warn("save published version failed", "version", id, "error", err)
		}
		cancel()
	}
	s.record(audit.OperationPublish, id, nil)
	return v.Clone(), nil
}

// RestoreVersion copies a published version back into the draft and clears
// the undo history. Unknown ids are ignored.
func (s *Store) RestoreVersion(id string) model.ProjectData {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.versionIndex(id)
	if idx < 0 {
		return s.draft.Clone()
	}
	s.history.clear()
	s.install(audit.OperationRestore, id, nil, s.versions[idx].Data.Clone())
	if s.draft.PageIndex(s.currentPage) < 0 {
		s.currentPage = s.defaultPageID()
	}
	return s.draft.Clone()
}

func (s *Store) versionIndex(id string) int {
	for i := range s.versions {
		if s.versions[i].ID == id {
			return i
		}
	}
	return -1
}

// PublishedVersions returns every version, oldest first.
func (s *Store) PublishedVersions() []model.PublishedVersion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PublishedVersion, len(s.versions))
	for i, v := range s.versions {
		out[i] = v.Clone()
	}
	return out
}

func (s *Store) Version(id string) (model.PublishedVersion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.versionIndex(id)
	if idx < 0 {
		return model.PublishedVersion{}, false
	}
	return s.versions[idx].Clone(), true
}

func (s *Store) LatestPublished() (model.PublishedVersion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.versions) == 0 {
		return model.PublishedVersion{}, false
	}
	return s.versions[len(s.versions)-1].Clone(), true
}
