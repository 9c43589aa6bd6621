package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// Falls back to a byte heuristic when the encoding is unavailable, so
// prompt building never depends on the tokenizer cache.
func defaultTokenCounter(s string) int {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	if tk == nil {
		return len(s) / 4
	}
	return len(tk.Encode(s, nil, nil))
}

// PromptBuilder renders the activating utterance plus a trailing slice of
// the context window into a single completion prompt. Rendering is
// deterministic: same window, same utterance, same prompt.
type PromptBuilder struct {
	botName     string
	preamble    string
	instruction string
	tailSize    int
	maxTokens   int
	countTokens func(string) int
}

func NewPromptBuilder(cfg *config.EngineConfig) *PromptBuilder {
	return &PromptBuilder{
		botName:     cfg.BotName,
		preamble:    cfg.Preamble,
		instruction: cfg.Instruction,
		tailSize:    cfg.ContextTailSize,
		maxTokens:   cfg.MaxPromptTokens,
		countTokens: defaultTokenCounter,
	}
}

// WithTokenCounter overrides the token counter. Used in tests.
func (b *PromptBuilder) WithTokenCounter(fn func(string) int) *PromptBuilder {
	b.countTokens = fn
	return b
}

// Build renders the prompt for an activation against the window's tail.
func (b *PromptBuilder) Build(activating core.Utterance, window *Window) string {
	return b.Render(activating, window.Tail(b.tailSize))
}

// Render produces the prompt from an explicit context slice. When the
// result exceeds the token budget, the oldest context lines are dropped
// until it fits.
func (b *PromptBuilder) Render(activating core.Utterance, tail []core.Utterance) string {
	lines := make([]string, 0, len(tail))
	for _, u := range tail {
		lines = append(lines, u.Speaker+": "+u.Text)
	}

	prompt := b.render(activating, lines)
	if b.maxTokens <= 0 {
		return prompt
	}
	for len(lines) > 0 && b.countTokens(prompt) > b.maxTokens {
		lines = lines[1:]
		prompt = b.render(activating, lines)
	}
	return prompt
}

func (b *PromptBuilder) render(activating core.Utterance, lines []string) string {
	var sb strings.Builder
	// Only an explicit name placeholder is formatted; a literal percent
	// in a configured preamble must pass through untouched.
	if strings.Contains(b.preamble, "%q") || strings.Contains(b.preamble, "%s") {
		fmt.Fprintf(&sb, b.preamble, b.botName)
	} else {
		sb.WriteString(b.preamble)
	}
	sb.WriteString("\n\nMeeting context (last few messages):\n")
	sb.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&sb, "\n\nCurrent message from %s: %s\n\n", activating.Speaker, activating.Text)
	sb.WriteString(b.instruction)
	return sb.String()
}
