package integration

import (
	"context"
	"os"
	"testing"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/providers/stream"
	"github.com/sandevgo/meetbot/pkg/log"
)

// Exercises the real chat backend. Needs STREAM_API_KEY / STREAM_API_SECRET.
func TestStreamRoundTrip(t *testing.T) {
	if os.Getenv("STREAM_API_KEY") == "" {
		t.Skip("STREAM_API_KEY not set")
	}

	ctx := context.Background()
	var flushLog func()
	ctx, flushLog = log.NewContextWithLogger(ctx, true)
	defer flushLog()

	cfg := config.NewStreamConfig(ctx)
	client, err := stream.NewClient(cfg, "AI Assistant")
	if err != nil {
		t.Fatal(err)
	}

	if err := client.Connect(ctx); err != nil {
		t.Fatal(err)
	}

	if err := client.SendMessage(ctx, "integration check"); err != nil {
		t.Fatal(err)
	}

	messages, err := client.QueryMessages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) == 0 {
		t.Fatal("expected at least one message in the channel")
	}
}
