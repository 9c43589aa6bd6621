package memory

import (
	"sync"

	"github.com/sandevgo/meetbot/internal/core"
)

// Window is the bounded, ordered store of processed utterances, including
// the engine's own replies. Oldest entries are evicted FIFO on overflow.
// It is the only shared mutable state in the engine; all access goes
// through the mutex so tail/all reads see a consistent snapshot.
type Window struct {
	mu      sync.Mutex
	max     int
	entries []core.Utterance
}

func NewWindow(max int) *Window {
	if max <= 0 {
		max = 1
	}
	return &Window{max: max}
}

// Append adds to the tail, dropping from the head until the bound holds.
func (w *Window) Append(u core.Utterance) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, u)
	if len(w.entries) > w.max {
		// Copy into a fresh slice so the evicted head can be collected
		trimmed := make([]core.Utterance, w.max)
		copy(trimmed, w.entries[len(w.entries)-w.max:])
		w.entries = trimmed
	}
}

// Tail returns the last k entries (or fewer) in chronological order.
// The result is a copy; mutating it does not touch the window.
func (w *Window) Tail(k int) []core.Utterance {
	w.mu.Lock()
	defer w.mu.Unlock()

	if k > len(w.entries) {
		k = len(w.entries)
	}
	if k <= 0 {
		return nil
	}
	out := make([]core.Utterance, k)
	copy(out, w.entries[len(w.entries)-k:])
	return out
}

// All returns the full ordered content. Used by the summarizer.
func (w *Window) All() []core.Utterance {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]core.Utterance, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}
