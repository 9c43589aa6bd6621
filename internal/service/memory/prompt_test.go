package memory

import (
	"strings"
	"testing"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
)

func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		TriggerPhrase:      "hey assistant",
		BotName:            "AI Assistant",
		MaxContextMessages: 50,
		ContextTailSize:    10,
		MaxPromptTokens:    0, // budget disabled unless a test opts in
		Preamble:           "You are an AI meeting assistant named %q.\nYou were just addressed in a video call meeting.",
		Instruction:        "Provide a helpful, concise response (2-3 sentences). Be friendly and professional.",
		Apology:            "I'm having trouble processing that request right now.",
	}
}

func TestPromptContainsContextAndActivation(t *testing.T) {
	b := NewPromptBuilder(testEngineConfig())
	w := NewWindow(50)
	w.Append(utter("1", "Alice", "Hello everyone"))
	w.Append(utter("2", "Bob", "Hey Assistant, summarize so far"))

	activating := utter("2", "Bob", "Hey Assistant, summarize so far")
	prompt := b.Build(activating, w)

	for _, want := range []string{
		`named "AI Assistant"`,
		"Alice: Hello everyone",
		"Bob: Hey Assistant, summarize so far",
		"Current message from Bob: Hey Assistant, summarize so far",
		"friendly and professional",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestPromptDeterministic(t *testing.T) {
	b := NewPromptBuilder(testEngineConfig())
	w := NewWindow(50)
	w.Append(utter("1", "Alice", "Hello"))
	w.Append(utter("2", "Bob", "hey assistant, help"))

	activating := utter("2", "Bob", "hey assistant, help")
	first := b.Build(activating, w)
	second := b.Build(activating, w)
	if first != second {
		t.Error("prompt rendering is not deterministic")
	}
}

func TestPromptUsesTailOnly(t *testing.T) {
	cfg := testEngineConfig()
	cfg.ContextTailSize = 2
	b := NewPromptBuilder(cfg)

	w := NewWindow(50)
	w.Append(utter("1", "Alice", "ancient history"))
	w.Append(utter("2", "Bob", "recent one"))
	w.Append(utter("3", "Carol", "recent two"))

	prompt := b.Build(utter("3", "Carol", "recent two"), w)
	if strings.Contains(prompt, "ancient history") {
		t.Error("prompt included context beyond the configured tail")
	}
	if !strings.Contains(prompt, "Bob: recent one") {
		t.Error("prompt missing tail context")
	}
}

func TestPromptTokenBudgetTrimsOldestFirst(t *testing.T) {
	cfg := testEngineConfig()
	cfg.MaxPromptTokens = 1
	// Count every prompt containing the oldest line as over budget
	b := NewPromptBuilder(cfg).WithTokenCounter(func(s string) int {
		if strings.Contains(s, "oldest line") {
			return 100
		}
		return 1
	})

	tail := []core.Utterance{
		utter("1", "Alice", "oldest line"),
		utter("2", "Bob", "newest line"),
	}
	prompt := b.Render(utter("3", "Carol", "hey assistant"), tail)

	if strings.Contains(prompt, "oldest line") {
		t.Error("over-budget prompt kept the oldest context line")
	}
	if !strings.Contains(prompt, "newest line") {
		t.Error("trimming dropped the newest context line")
	}
}

func TestPromptPlainPreamble(t *testing.T) {
	cfg := testEngineConfig()
	cfg.Preamble = "You are a terse meeting helper."
	b := NewPromptBuilder(cfg)

	prompt := b.Build(utter("1", "Alice", "hey assistant"), NewWindow(10))
	if !strings.HasPrefix(prompt, "You are a terse meeting helper.") {
		t.Errorf("custom preamble not rendered verbatim:\n%s", prompt)
	}
}

func TestPromptPreambleLiteralPercent(t *testing.T) {
	cfg := testEngineConfig()
	cfg.Preamble = "Be 100% concise and stay on topic."
	b := NewPromptBuilder(cfg)

	prompt := b.Build(utter("1", "Alice", "hey assistant"), NewWindow(10))
	if !strings.HasPrefix(prompt, "Be 100% concise and stay on topic.") {
		t.Errorf("literal percent not preserved:\n%s", prompt)
	}
	if strings.Contains(prompt, "%!") {
		t.Errorf("formatting noise leaked into prompt:\n%s", prompt)
	}
}
