package core

import (
	"strings"
	"time"
)

const (
	BotName       = "AI Assistant"
	BotUserAgent  = "MeetBot-Agent/0.1"
	RepositoryURL = "https://github.com/sandevgo/meetbot"
	Version       = "0.1.0"

	// UnknownSpeaker is substituted when the source carries no speaker identity.
	UnknownSpeaker = "Unknown"
)

// Origin distinguishes external speakers from the engine's own replies.
// Replies are kept in the context window but must never re-trigger the
// engine, so the tag is assigned structurally by the source adapters and
// the response router — never re-derived from message content.
type Origin string

const (
	OriginSpeaker Origin = "speaker"
	OriginEngine  Origin = "engine"
)

// Utterance is one attributed unit of meeting speech or chat text.
type Utterance struct {
	// ID is the source's opaque identifier, used only for deduplication.
	// Sources without identifiers assign their own (see console transport).
	ID        string
	Speaker   string
	Text      string
	Origin    Origin
	Timestamp time.Time // advisory only; ingestion order is authoritative
}

// Activation is produced when a speaker utterance matches the trigger
// phrase. It is consumed immediately by the prompt builder, never stored.
type Activation struct {
	Utterance Utterance
	Phrase    string
}

// ParseTranscriptLine splits "Name: message" demo input into speaker and
// text. Lines without a colon are attributed to UnknownSpeaker.
func ParseTranscriptLine(line string) (speaker, text string) {
	if i := strings.Index(line, ":"); i >= 0 {
		speaker = strings.TrimSpace(line[:i])
		text = strings.TrimSpace(line[i+1:])
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		return speaker, text
	}
	return UnknownSpeaker, strings.TrimSpace(line)
}
