/*
history.go - In-memory run history

PURPOSE:
  Keeps the recent run reports for the status endpoint. Memory only, by
  design: this robot persists nothing beyond its transient files, and a
  restart starting with an empty history is acceptable.
*/
package robot

import "sync"

// History is a bounded, newest-first log of run reports. Safe for
// concurrent use.
type History struct {
	mu   sync.RWMutex
	runs []RunReport
	max  int
}

// NewHistory creates a history bounded to max entries.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 1
	}
	return &History{max: max}
}

// Append records a finished run, evicting the oldest entry when full.
func (h *History) Append(r RunReport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, r)
	if len(h.runs) > h.max {
		h.runs = h.runs[len(h.runs)-h.max:]
	}
}

// Last returns the most recent run, if any.
func (h *History) Last() (RunReport, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.runs) == 0 {
		return RunReport{}, false
	}
	return h.runs[len(h.runs)-1], true
}

// List returns all recorded runs, newest first.
func (h *History) List() []RunReport {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]RunReport, len(h.runs))
	for i, r := range h.runs {
		out[len(h.runs)-1-i] = r
	}
	return out
}
