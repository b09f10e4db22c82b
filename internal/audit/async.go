package audit

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	defaultQueueSize = 512
	sinkWriteTimeout = 250 * time.Millisecond
)

var (
	ErrLoggerClosed = errors.New("activity logger is closed")
	ErrQueueFull    = errors.New("activity queue is full")
)

// AsyncLogger queues entries for a background writer so store operations
// never wait on the journal. Entries are stamped when queued, so their
// timestamps reflect when the edit happened rather than when it was written.
type AsyncLogger struct {
	sink    Logger
	onError func(error)
	now     func() time.Time

	queue chan Entry
	wg    sync.WaitGroup
	once  sync.Once

	mu      sync.Mutex
	closed  bool
	dropped int
	// queued counts entries not yet handed to the sink; idle is closed while
	// it is zero.
	queued int
	idle   chan struct{}
}

func NewAsyncLogger(sink Logger, queueSize int, onError func(error)) *AsyncLogger {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	idle := make(chan struct{})
	close(idle)
	l := &AsyncLogger{
		sink:    sink,
		onError: onError,
		now:     time.Now,
		queue:   make(chan Entry, queueSize),
		idle:    idle,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *AsyncLogger) run() {
	defer l.wg.Done()
	for entry := range l.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sinkWriteTimeout)
		err := l.sink.Log(ctx, entry)
		cancel()
		if err != nil && l.onError != nil {
			l.onError(err)
		}
		l.mu.Lock()
		l.queued--
		if l.queued == 0 {
			close(l.idle)
		}
		l.mu.Unlock()
	}
}

// Log queues entry. A full queue drops the entry and returns ErrQueueFull.
func (l *AsyncLogger) Log(_ context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLoggerClosed
	}
	select {
	case l.queue <- entry:
		if l.queued == 0 {
			l.idle = make(chan struct{})
		}
		l.queued++
		return nil
	default:
		l.dropped++
		return ErrQueueFull
	}
}

// Dropped reports how many entries were rejected because the queue was full.
func (l *AsyncLogger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

func (l *AsyncLogger) Query(ctx context.Context, filter Filter) (QueryResult, error) {
	return l.sink.Query(ctx, filter)
}

// Close stops accepting entries and waits for the queue to drain.
func (l *AsyncLogger) Close(ctx context.Context) error {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.queue)
		l.mu.Unlock()
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitIdle blocks until every entry queued so far has reached the sink.
func (l *AsyncLogger) WaitIdle(ctx context.Context) error {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
