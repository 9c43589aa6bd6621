package core

import "testing"

func TestParseTranscriptLine(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSpeaker string
		wantText    string
	}{
		{
			name:        "speaker and message",
			input:       "John: Hello everyone",
			wantSpeaker: "John",
			wantText:    "Hello everyone",
		},
		{
			name:        "no colon falls back to unknown",
			input:       "just some text",
			wantSpeaker: UnknownSpeaker,
			wantText:    "just some text",
		},
		{
			name:        "empty speaker falls back to unknown",
			input:       ": hi",
			wantSpeaker: UnknownSpeaker,
			wantText:    "hi",
		},
		{
			name:        "colon inside message kept",
			input:       "Alice: note: ship on Friday",
			wantSpeaker: "Alice",
			wantText:    "note: ship on Friday",
		},
		{
			name:        "whitespace trimmed",
			input:       "  Bob :  hey assistant  ",
			wantSpeaker: "Bob",
			wantText:    "hey assistant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speaker, text := ParseTranscriptLine(tt.input)
			if speaker != tt.wantSpeaker || text != tt.wantText {
				t.Errorf("ParseTranscriptLine(%q) = (%q, %q), want (%q, %q)",
					tt.input, speaker, text, tt.wantSpeaker, tt.wantText)
			}
		})
	}
}
