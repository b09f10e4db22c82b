package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/storage"
	"github.com/benedict2310/sitebuilder/pkg/model"
)

// Snapshot is the content the preview server renders from.
type Snapshot struct {
	Draft    model.ProjectData
	Versions []model.PublishedVersion
}

// Latest returns the newest published version.
func (s Snapshot) Latest() (model.PublishedVersion, bool) {
	var latest model.PublishedVersion
	found := false
	for _, v := range s.Versions {
		if !found || !v.PublishedAt.Before(latest.PublishedAt) {
			latest = v
			found = true
		}
	}
	return latest, found
}

func (s Snapshot) Version(id string) (model.PublishedVersion, bool) {
	for _, v := range s.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return model.PublishedVersion{}, false
}

// Source loads the current snapshot. It is called again after every
// invalidation.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type SourceFunc func(ctx context.Context) (Snapshot, error)

func (f SourceFunc) Snapshot(ctx context.Context) (Snapshot, error) { return f(ctx) }

// PersisterSource reads the stored draft and version archive on each call so
// edits made by other processes become visible.
type PersisterSource struct {
	Persister storage.Persister
}

func (p PersisterSource) Snapshot(ctx context.Context) (Snapshot, error) {
	draft, err := p.Persister.LoadDraft(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Snapshot{}, fmt.Errorf("no project stored yet, run init first: %w", err)
		}
		return Snapshot{}, err
	}
	snap := Snapshot{Draft: draft}
	if archive, ok := storage.ArchiveOf(p.Persister); ok {
		versions, err := archive.LoadVersions(ctx)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load published versions: %w", err)
		}
		snap.Versions = versions
	}
	return snap, nil
}
