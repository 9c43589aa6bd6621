package engine

import (
	"strings"

	"github.com/sandevgo/meetbot/internal/core"
)

// Detector decides whether an utterance activates the engine:
// case-insensitive substring match of the configured phrase. Exact
// substring semantics, no tokenization.
type Detector struct {
	phrase string
}

func NewDetector(phrase string) *Detector {
	return &Detector{phrase: strings.ToLower(strings.TrimSpace(phrase))}
}

// IsActivated is always false for engine-origin utterances regardless of
// text, which keeps the engine from triggering on its own replies.
func (d *Detector) IsActivated(u core.Utterance) bool {
	if u.Origin == core.OriginEngine {
		return false
	}
	if d.phrase == "" || u.Text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(u.Text), d.phrase)
}

// Activation wraps a matching utterance for the prompt builder.
func (d *Detector) Activation(u core.Utterance) (core.Activation, bool) {
	if !d.IsActivated(u) {
		return core.Activation{}, false
	}
	return core.Activation{Utterance: u, Phrase: d.phrase}, true
}
