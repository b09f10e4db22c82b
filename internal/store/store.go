// Package store owns the draft document, its bounded undo history and the
// append-only list of published versions.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/internal/storage"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/google/uuid"
)

// HistoryLimit is how many prior drafts Undo can walk back through.
const HistoryLimit = 20

const ioTimeout = 5 * time.Second

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithJournal records every applied operation to j.
func WithJournal(j audit.Logger) Option {
	return func(s *Store) { s.journal = j }
}

// WithIDGenerator sets the id source for new pages and sections.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithVersionIDs sets the id source for published versions.
func WithVersionIDs(fn func(time.Time) (string, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.versionID = fn
		}
	}
}

type Store struct {
	mu sync.RWMutex

	persister storage.Persister
	archive   storage.VersionArchive
	journal   audit.Logger
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	versionID func(time.Time) (string, error)

	draft       model.ProjectData
	history     history
	versions    []model.PublishedVersion
	currentPage string
	previewMode model.PreviewMode
	lastSavedAt time.Time
}

// Open loads the persisted draft, falling back to the starter document when
// nothing is stored or the stored document cannot be used. Published versions
// are loaded when the persister keeps them.
func Open(ctx context.Context, p storage.Persister, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, fmt.Errorf("persister is required")
	}
	s := &Store{
		persister:   p,
		logger:      slog.Default(),
		now:         time.Now,
		newID:       uuid.NewString,
		versionID:   release.NewVersionID,
		history:     history{limit: HistoryLimit},
		previewMode: model.PreviewDraft,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := p.LoadDraft(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("no stored draft, starting from starter document")
		doc = Starter(s.now())
	default:
		s.logger.Warn("stored draft unusable, starting from starter document", "error", err)
		doc = Starter(s.now())
	}
	s.draft = doc

	if archive, ok := storage.ArchiveOf(p); ok {
		s.archive = archive
		versions, err := archive.LoadVersions(ctx)
		if err != nil {
			s.logger.Warn("load published versions failed", "error", err)
		} else {
			s.versions = versions
		}
	}

	s.currentPage = s.defaultPageID()
	return s, nil
}

// Close waits for pending draft writes when the persister queues them.
func (s *Store) Close(ctx context.Context) error {
	if f, ok := s.persister.(interface{ Flush(context.Context) error }); ok {
		return f.Flush(ctx)
	}
	return nil
}

func (s *Store) defaultPageID() string {
	if home, ok := s.draft.HomePage(); ok {
		return home.ID
	}
	if len(s.draft.Pages) > 0 {
		return s.draft.Pages[0].ID
	}
	return ""
}

// commit installs next as the draft. The previous draft goes onto the
// history stack. Callers hold s.mu.
func (s *Store) commit(op, target string, meta map[string]any, next model.ProjectData) model.ProjectData {
	s.history.push(s.draft)
	s.install(op, target, meta, next)
	return s.draft.Clone()
}

// install replaces the draft without touching history.
func (s *Store) install(op, target string, meta map[string]any, next model.ProjectData) {
	s.draft = next
	s.persist()
	s.lastSavedAt = s.now()
	s.record(op, target, meta)
}

func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	if err := s.persister.SaveDraft(ctx, s.draft); err != nil {
		s.logger.Warn("save draft failed", "error", err)
	}
}

func (s *Store) record(op, target string, meta map[string]any) {
	if s.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	entry := audit.Entry{Operation: op, Target: target, Timestamp: s.now().UTC(), Metadata: meta}
	if err := s.journal.Log(ctx, entry); err != nil {
		s.logger.Warn("record activity failed", "operation", op, "error", err)
	}
}

// Record journals an operation that happens outside the store, such as an
// export.
func (s *Store) Record(op, target string, meta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(op, target, meta)
}

func (s *Store) Draft() model.ProjectData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone()
}

func (s *Store) CurrentPageID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// SetCurrentPage selects a page. Unknown ids are ignored.
func (s *Store) SetCurrentPage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.PageIndex(id) >= 0 {
		s.currentPage = id
	}
}

func (s *Store) PreviewMode() model.PreviewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.previewMode
}

func (s *Store) SetPreviewMode(mode model.PreviewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode.Valid() {
		s.previewMode = mode
	}
}

// PreviewDocument returns the latest published version in published mode
// when one exists, and the draft otherwise.
func (s *Store) PreviewDocument() model.ProjectData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.previewMode == model.PreviewPublished && len(s.versions) > 0 {
		return s.versions[len(s.versions)-1].Data.Clone()
	}
	return s.draft.Clone()
}

func (s *Store) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.len()
}

// LastSavedAt is zero until the first change.
func (s *Store) LastSavedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSavedAt
}
