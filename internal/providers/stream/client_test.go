package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
)

func testStreamConfig(baseURL string) *config.StreamConfig {
	return &config.StreamConfig{
		APIKey:      "key-123",
		APISecret:   "secret-456",
		CallID:      "standup",
		UserID:      "ai-assistant-bot",
		ChannelType: "messaging",
		BaseURL:     baseURL,
		FetchLimit:  25,
	}
}

func TestServerToken(t *testing.T) {
	token, err := serverToken("secret-456")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte("secret-456"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, true, claims["server"])
}

func TestQueryMessages(t *testing.T) {
	var gotPath, gotAuthType, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthType = r.Header.Get("stream-auth-type")
		gotKey = r.URL.Query().Get("api_key")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "messages")

		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]any{
				{
					"id":         "m1",
					"text":       "hello everyone",
					"type":       "regular",
					"user":       map[string]any{"id": "alice", "name": "Alice"},
					"created_at": time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					"id":   "m2",
					"text": "Sure, I can help.",
					"type": "regular",
					"user": map[string]any{"id": "ai-assistant-bot", "name": "AI Assistant"},
				},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(testStreamConfig(server.URL), "AI Assistant")
	require.NoError(t, err)

	messages, err := client.QueryMessages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/channels/messaging/call-standup/query", gotPath)
	assert.Equal(t, "jwt", gotAuthType)
	assert.Equal(t, "key-123", gotKey)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello everyone", messages[0].Text)
	assert.Equal(t, "Alice", messages[0].User.Name)
}

func TestSendMessage(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(testStreamConfig(server.URL), "AI Assistant")
	require.NoError(t, err)

	require.NoError(t, client.SendMessage(context.Background(), "meeting recap"))

	msg, ok := gotBody["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "meeting recap", msg["text"])
	assert.Equal(t, "ai-assistant-bot", msg["user_id"])
}

func TestSendMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"channel frozen"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(testStreamConfig(server.URL), "AI Assistant")
	require.NoError(t, err)

	err = client.SendMessage(context.Background(), "recap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPollerTagsOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]any{
				{"id": "m1", "text": "hey assistant, recap please", "type": "regular", "user": map[string]any{"id": "bob", "name": "Bob"}},
				{"id": "m2", "text": "Here is the recap.", "type": "regular", "user": map[string]any{"id": "ai-assistant-bot", "name": "AI Assistant"}},
				{"id": "m3", "text": "removed", "type": "deleted", "user": map[string]any{"id": "bob"}},
				{"id": "m4", "text": "no profile", "type": "regular", "user": map[string]any{}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(testStreamConfig(server.URL), "AI Assistant")
	require.NoError(t, err)

	items, err := NewPoller(client).Poll(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, core.OriginSpeaker, items[0].Origin)
	assert.Equal(t, "Bob", items[0].Speaker)
	assert.Equal(t, core.OriginEngine, items[1].Origin)
	assert.Equal(t, core.UnknownSpeaker, items[2].Speaker)
}

func TestPollerSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(testStreamConfig(server.URL), "AI Assistant")
	require.NoError(t, err)

	_, err = NewPoller(client).Poll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrSourceUnavailable))
}

func TestEventDecode(t *testing.T) {
	client, err := NewClient(testStreamConfig("http://unused"), "AI Assistant")
	require.NoError(t, err)
	source := NewEventSource(client, testStreamConfig("http://unused"))

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "new message on our channel",
			raw:  `{"type":"message.new","cid":"messaging:call-standup","message":{"id":"m9","text":"hi","user":{"id":"carol","name":"Carol"}}}`,
			want: true,
		},
		{
			name: "other channel",
			raw:  `{"type":"message.new","cid":"messaging:call-other","message":{"id":"m9","text":"hi","user":{"id":"carol"}}}`,
			want: false,
		},
		{
			name: "health check",
			raw:  `{"type":"health.check"}`,
			want: false,
		},
		{
			name: "not json",
			raw:  `ping`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := source.decode([]byte(tt.raw))
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, "Carol", u.Speaker)
				assert.Equal(t, core.OriginSpeaker, u.Origin)
			}
		})
	}
}
