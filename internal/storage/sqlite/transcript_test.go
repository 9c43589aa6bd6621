package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/meetbot/internal/core"
)

func newTestTranscript(t *testing.T) *Transcript {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "meetbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTranscript(db)
}

func TestTranscriptRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestTranscript(t)

	spoken := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []core.Utterance{
		{ID: "m1", Speaker: "Alice", Text: "standup time", Origin: core.OriginSpeaker, Timestamp: spoken},
		{ID: "m2", Speaker: "Bob", Text: "hey assistant, recap please", Origin: core.OriginSpeaker, Timestamp: spoken.Add(time.Minute)},
		{ID: "m3", Speaker: "AI Assistant", Text: "Here is the recap.", Origin: core.OriginEngine, Timestamp: spoken.Add(2 * time.Minute)},
	}
	for _, u := range items {
		require.NoError(t, repo.AddUtterance(ctx, u))
	}

	got, err := repo.RecentUtterances(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "Alice", got[0].Speaker)
	assert.Equal(t, core.OriginSpeaker, got[0].Origin)
	assert.Equal(t, "m3", got[2].ID)
	assert.Equal(t, core.OriginEngine, got[2].Origin)
	assert.True(t, got[0].Timestamp.Equal(spoken))
}

func TestTranscriptRecentLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestTranscript(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddUtterance(ctx, core.Utterance{
			ID: string(rune('a' + i)), Speaker: "Alice", Text: "line", Origin: core.OriginSpeaker,
		}))
	}

	got, err := repo.RecentUtterances(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Limit keeps the newest rows, returned oldest first.
	assert.Equal(t, "d", got[0].ID)
	assert.Equal(t, "e", got[1].ID)
}

func TestAddSummary(t *testing.T) {
	ctx := context.Background()
	repo := newTestTranscript(t)

	require.NoError(t, repo.AddSummary(ctx, "Discussion points: release planning."))
}
