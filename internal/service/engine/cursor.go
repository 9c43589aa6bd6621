package engine

import (
	"strings"

	"github.com/sandevgo/meetbot/internal/core"
)

// Cursor guards the ingestion path against reprocessing. Pull sources hand
// it the whole fetched window each poll; it returns every item strictly
// after the last processed identifier (gap-filling, not just
// repeat-suppression). Push sources hand it one-element batches and it
// degenerates to the origin/empty filter.
type Cursor struct {
	lastID string
}

func NewCursor() *Cursor {
	return &Cursor{}
}

// Observe returns the not-yet-processed subset of the batch in arrival
// order, advancing the cursor past it. Engine-origin and empty-text items
// are skipped silently after the cursor advances, so a batch ending with
// the engine's own reply is not replayed on the next poll.
func (c *Cursor) Observe(batch []core.Utterance) []core.Utterance {
	items := batch
	if c.lastID != "" {
		// When the last-seen ID is absent the source window has moved past
		// it; process the whole batch rather than dropping it.
		for i := len(batch) - 1; i >= 0; i-- {
			if batch[i].ID == c.lastID {
				items = batch[i+1:]
				break
			}
		}
	}
	if len(items) == 0 {
		return nil
	}
	c.lastID = items[len(items)-1].ID

	out := make([]core.Utterance, 0, len(items))
	for _, u := range items {
		if u.Origin == core.OriginEngine {
			continue
		}
		if strings.TrimSpace(u.Text) == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}
