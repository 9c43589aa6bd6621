package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/meetbot/internal/core"
)

type stubCommand struct {
	name string
	out  string
	err  error
	args []string
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub" }
func (s *stubCommand) Execute(_ context.Context, args []string) (string, error) {
	s.args = args
	return s.out, s.err
}

func TestRouterNonCommandFallsThrough(t *testing.T) {
	r := New(nil)
	for _, input := range []string{"hello", "hey assistant, help", "summary please"} {
		if _, ok := r.Execute(context.Background(), input); ok {
			t.Errorf("input %q should not be treated as a command", input)
		}
	}
}

func TestRouterDispatch(t *testing.T) {
	stub := &stubCommand{name: "summary", out: "the digest"}
	r := New([]core.Command{stub})

	out, ok := r.Execute(context.Background(), "/summary now")
	if !ok {
		t.Fatal("expected command to be handled")
	}
	if out != "the digest" {
		t.Errorf("got %q, want %q", out, "the digest")
	}
	if len(stub.args) != 1 || stub.args[0] != "now" {
		t.Errorf("args = %v, want [now]", stub.args)
	}
}

func TestRouterUnknownCommand(t *testing.T) {
	r := New(nil)
	out, ok := r.Execute(context.Background(), "/nope")
	if !ok {
		t.Fatal("slash input should always be handled")
	}
	if !strings.Contains(out, "/nope") {
		t.Errorf("unknown-command reply should name the command, got %q", out)
	}
}

func TestRouterCommandErrorHidden(t *testing.T) {
	stub := &stubCommand{name: "summary", err: errors.New("backend exploded: secret detail")}
	r := New([]core.Command{stub})

	out, ok := r.Execute(context.Background(), "/summary")
	if !ok {
		t.Fatal("expected command to be handled")
	}
	if strings.Contains(out, "secret detail") {
		t.Errorf("internal error leaked to chat: %q", out)
	}
}
