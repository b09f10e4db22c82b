package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

// DefaultKey is the fixed key the draft document is stored under.
const DefaultKey = "smooth-builder-project"

var (
	// ErrNotFound reports that nothing has been stored yet.
	ErrNotFound = errors.New("document not found")
	// ErrCorrupt reports stored data that does not decode into a usable document.
	ErrCorrupt = errors.New("stored document is corrupt")
)

// Persister loads and saves the draft document.
type Persister interface {
	LoadDraft(ctx context.Context) (model.ProjectData, error)
	SaveDraft(ctx context.Context, doc model.ProjectData) error
}

// VersionArchive is implemented by persisters that also keep published
// versions across restarts.
type VersionArchive interface {
	SaveVersion(ctx context.Context, v model.PublishedVersion) error
	LoadVersions(ctx context.Context) ([]model.PublishedVersion, error)
}

// ArchiveOf returns the version archive behind p, looking through wrappers
// that expose Unwrap.
func ArchiveOf(p Persister) (VersionArchive, bool) {
	for p != nil {
		if a, ok := p.(VersionArchive); ok {
			return a, true
		}
		w, ok := p.(interface{ Unwrap() Persister })
		if !ok {
			return nil, false
		}
		p = w.Unwrap()
	}
	return nil, false
}

func encodeDraft(doc model.ProjectData) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

func decodeDraft(body []byte) (model.ProjectData, error) {
	var doc model.ProjectData
	if err := json.Unmarshal(body, &doc); err != nil {
		return model.ProjectData{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(doc.Pages) == 0 {
		return model.ProjectData{}, fmt.Errorf("%w: document has no pages", ErrCorrupt)
	}
	return doc, nil
}

func encodeVersion(v model.PublishedVersion) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode version %s: %w", v.ID, err)
	}
	return b, nil
}

func decodeVersion(body []byte) (model.PublishedVersion, error) {
	var v model.PublishedVersion
	if err := json.Unmarshal(body, &v); err != nil {
		return model.PublishedVersion{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if v.ID == "" {
		return model.PublishedVersion{}, fmt.Errorf("%w: version without id", ErrCorrupt)
	}
	return v, nil
}
