package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benedict2310/sitebuilder/pkg/model"
)

const saveTimeout = 5 * time.Second

// Async saves drafts on a background goroutine. Saves that arrive while one
// is queued replace it, so only the newest draft is written. Errors go to
// onError and are never returned to the caller of SaveDraft.
type Async struct {
	inner   Persister
	onError func(error)

	mu     sync.Mutex
	next   *model.ProjectData
	closed bool
	// pending counts queued plus in-progress saves. idle is closed whenever
	// pending is zero and replaced when it leaves zero; both guarded by mu.
	pending int
	idle    chan struct{}

	wake chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func NewAsync(inner Persister, onError func(error)) *Async {
	a := &Async{
		inner:   inner,
		onError: onError,
		wake:    make(chan struct{}, 1),
		idle:    closedChan(),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Async) Unwrap() Persister { return a.inner }

func (a *Async) run() {
	defer a.wg.Done()
	for range a.wake {
		a.drain()
	}
	a.drain()
}

func (a *Async) drain() {
	a.mu.Lock()
	doc := a.next
	a.next = nil
	a.mu.Unlock()
	if doc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	err := a.inner.SaveDraft(ctx, *doc)
	cancel()
	if err != nil && a.onError != nil {
		a.onError(err)
	}
	a.mu.Lock()
	a.pending--
	if a.pending == 0 {
		close(a.idle)
	}
	a.mu.Unlock()
}

// LoadDraft reads through to the wrapped persister.
func (a *Async) LoadDraft(ctx context.Context) (model.ProjectData, error) {
	return a.inner.LoadDraft(ctx)
}

func (a *Async) SaveDraft(_ context.Context, doc model.ProjectData) error {
	doc = doc.Clone()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return fmt.Errorf("persister is closed")
	}
	if a.next == nil {
		if a.pending == 0 {
			a.idle = make(chan struct{})
		}
		a.pending++
	}
	a.next = &doc
	select {
	case a.wake <- struct{}{}:
	default:
	}
	return nil
}

// Flush blocks until every queued draft has been written. It is safe to call
// concurrently with SaveDraft and with other Flush calls.
func (a *Async) Flush(ctx context.Context) error {
	a.mu.Lock()
	idle := a.idle
	a.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes the queued draft, if any, and stops the worker.
func (a *Async) Close(ctx context.Context) error {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.wake)
		a.mu.Unlock()
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
