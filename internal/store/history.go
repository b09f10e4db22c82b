package store

import "github.com/benedict2310/sitebuilder/pkg/model"

// history is a bounded LIFO of prior drafts. Pushing past the limit drops
// the oldest entry.
type history struct {
	limit   int
	entries []model.ProjectData
}

func (h *history) push(doc model.ProjectData) {
	h.entries = append(h.entries, doc)
	if h.limit > 0 && len(h.entries) > h.limit {
		n := copy(h.entries, h.entries[1:])
		h.entries[n] = model.ProjectData{}
		h.entries = h.entries[:n]
	}
}

func (h *history) pop() (model.ProjectData, bool) {
	if len(h.entries) == 0 {
		return model.ProjectData{}, false
	}
	last := len(h.entries) - 1
	doc := h.entries[last]
	h.entries[last] = model.ProjectData{}
	h.entries = h.entries[:last]
	return doc, true
}

func (h *history) clear() {
	h.entries = nil
}

func (h *history) len() int {
	return len(h.entries)
}
