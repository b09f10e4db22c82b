package audit

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryLogger keeps entries in process. It backs the file storage driver
// and tests.
type MemoryLogger struct {
	mu      sync.Mutex
	nextID  int64
	entries []Entry
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(_ context.Context, entry Entry) error {
	if strings.TrimSpace(entry.Operation) == "" {
		return errOperationRequired
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	entry.ID = l.nextID
	l.entries = append(l.entries, entry)
	return nil
}

func (l *MemoryLogger) Query(_ context.Context, filter Filter) (QueryResult, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	l.mu.Lock()
	matched := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if op := strings.TrimSpace(filter.Operation); op != "" && e.Operation != op {
			continue
		}
		if filter.Since != nil && e.Timestamp.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && e.Timestamp.After(*filter.Until) {
			continue
		}
		matched = append(matched, e)
	}
	l.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return QueryResult{Entries: matched[offset:end], Total: total, Limit: limit, Offset: offset}, nil
}
