package storage

import (
	"context"
	"sync"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

// Memory keeps encoded documents in process. Bodies are stored encoded so
// loads behave like a real backend.
type Memory struct {
	mu       sync.Mutex
	draft    []byte
	versions [][]byte
	saves    int
	failWith error
}

func NewMemory() *Memory {
	return &Memory{}
}

// SetRaw replaces the stored draft body verbatim.
func (m *Memory) SetRaw(body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = append([]byte(nil), body...)
}

// FailWith makes subsequent saves return err. A nil err clears it.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Saves reports how many draft saves succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Memory) LoadDraft(ctx context.Context) (model.ProjectData, error) {
	if err := ctx.Err(); err != nil {
		return model.ProjectData{}, err
	}
	m.mu.Lock()
	body := m.draft
	m.mu.Unlock()
	if body == nil {
		return model.ProjectData{}, ErrNotFound
	}
	return decodeDraft(body)
}

func (m *Memory) SaveDraft(ctx context.Context, doc model.ProjectData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encodeDraft(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.draft = body
	m.saves++
	return nil
}

func (m *Memory) SaveVersion(ctx context.Context, v model.PublishedVersion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encodeVersion(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.versions = append(m.versions, body)
	return nil
}

func (m *Memory) LoadVersions(ctx context.Context) ([]model.PublishedVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	bodies := append([][]byte(nil), m.versions...)
	m.mu.Unlock()
	out := make([]model.PublishedVersion, 0, len(bodies))
	for _, body := range bodies {
		v, err := decodeVersion(body)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
