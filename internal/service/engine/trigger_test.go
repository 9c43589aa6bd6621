package engine

import (
	"testing"

	"github.com/sandevgo/meetbot/internal/core"
)

func TestDetector(t *testing.T) {
	d := NewDetector("hey assistant")

	tests := []struct {
		name string
		u    core.Utterance
		want bool
	}{
		{
			name: "uppercase",
			u:    speak("1", "Alice", "HEY ASSISTANT, help"),
			want: true,
		},
		{
			name: "lowercase exact",
			u:    speak("2", "Bob", "hey assistant"),
			want: true,
		},
		{
			name: "mid sentence mixed case",
			u:    speak("3", "Carol", "Say Hey Assistant now"),
			want: true,
		},
		{
			name: "no word boundary",
			u:    speak("4", "Dave", "heyassistant"),
			want: false,
		},
		{
			name: "truncated phrase",
			u:    speak("5", "Eve", "hey assist"),
			want: false,
		},
		{
			name: "engine origin never activates",
			u:    core.Utterance{ID: "6", Speaker: "AI Assistant", Text: "hey assistant", Origin: core.OriginEngine},
			want: false,
		},
		{
			name: "empty text",
			u:    speak("7", "Frank", ""),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsActivated(tt.u); got != tt.want {
				t.Errorf("IsActivated(%q) = %v, want %v", tt.u.Text, got, tt.want)
			}
		})
	}
}

func TestDetectorActivation(t *testing.T) {
	d := NewDetector("Hey Assistant")

	act, ok := d.Activation(speak("1", "Alice", "well HEY assistant"))
	if !ok {
		t.Fatal("expected activation")
	}
	if act.Phrase != "hey assistant" {
		t.Errorf("phrase = %q, want normalized %q", act.Phrase, "hey assistant")
	}
	if act.Utterance.ID != "1" {
		t.Errorf("activation carries wrong utterance: %q", act.Utterance.ID)
	}

	if _, ok := d.Activation(speak("2", "Bob", "nothing here")); ok {
		t.Error("unexpected activation")
	}
}

func TestDetectorEmptyPhrase(t *testing.T) {
	d := NewDetector("  ")
	if d.IsActivated(speak("1", "Alice", "anything at all")) {
		t.Error("empty trigger phrase must never activate")
	}
}
