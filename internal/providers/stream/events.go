package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/pkg/log"
	"github.com/sandevgo/meetbot/pkg/retry"
)

// reconnectPause separates reconnect bursts. A source outage is never
// fatal: the feed keeps retrying until the context ends.
const reconnectPause = 5 * time.Second

// EventSource is the push-mode utterance feed. It keeps a websocket
// connection to the chat backend and forwards message.new events for the
// bound channel, reconnecting on failure until the context ends.
type EventSource struct {
	client *Client
	wsURL  string
	cid    string

	pause time.Duration
}

type event struct {
	Type    string   `json:"type"`
	CID     string   `json:"cid"`
	Message *Message `json:"message"`
}

func NewEventSource(client *Client, cfg *config.StreamConfig) *EventSource {
	return &EventSource{
		client: client,
		wsURL:  cfg.WSURL,
		cid:    cfg.ChannelType + ":" + cfg.ChannelID(),
		pause:  reconnectPause,
	}
}

func (s *EventSource) Subscribe(ctx context.Context) (<-chan core.Utterance, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
	}

	out := make(chan core.Utterance)
	go s.run(ctx, conn, out)
	return out, nil
}

func (s *EventSource) dial(ctx context.Context) (*websocket.Conn, error) {
	payload, err := json.Marshal(map[string]any{
		"user_id":      s.client.userID,
		"user_details": map[string]any{"id": s.client.userID, "name": s.client.botName},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal connect payload: %w", err)
	}

	q := url.Values{}
	q.Set("json", string(payload))
	q.Set("api_key", s.client.apiKey)
	q.Set("authorization", s.client.token)
	q.Set("stream-auth-type", "jwt")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL+"?"+q.Encode(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return conn, nil
}

// run owns the channel for its whole life: it only closes when the
// context ends, so a dropped connection never looks like end-of-meeting
// to the ingestion loop.
func (s *EventSource) run(ctx context.Context, conn *websocket.Conn, out chan<- core.Utterance) {
	defer close(out)
	logger := log.FromCtx(ctx)

	for {
		// Drop the connection when the context ends so ReadMessage
		// unblocks; stop releases the watcher on a normal drop.
		stop := make(chan struct{})
		go func(c *websocket.Conn) {
			select {
			case <-ctx.Done():
				c.Close()
			case <-stop:
			}
		}(conn)

		err := s.readLoop(ctx, conn, out)
		close(stop)
		conn.Close()

		if ctx.Err() != nil {
			return
		}
		logger.Warn().Err(err).Msg("event stream dropped, reconnecting")

		conn = s.redial(ctx)
		if conn == nil {
			return
		}
	}
}

// redial reconnects in backoff bursts separated by a pause, forever.
// Returns nil only when the context ends.
func (s *EventSource) redial(ctx context.Context) *websocket.Conn {
	logger := log.FromCtx(ctx)

	for {
		var conn *websocket.Conn
		err := retry.NewDefaultRetrier().Do(ctx, func() error {
			c, err := s.dial(ctx)
			if err != nil {
				return err
			}
			conn = c
			return nil
		})
		if err == nil {
			return conn
		}
		if ctx.Err() != nil {
			return nil
		}

		logger.Warn().Err(err).
			Dur("pause", s.pause).
			Msg("event stream still unreachable, pausing before next attempt")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.pause):
		}
	}
}

func (s *EventSource) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- core.Utterance) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		u, ok := s.decode(data)
		if !ok {
			continue
		}

		select {
		case out <- u:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// decode filters the event firehose down to new messages on our channel.
func (s *EventSource) decode(data []byte) (core.Utterance, bool) {
	var ev event
	if err := json.Unmarshal(data, &ev); err != nil {
		return core.Utterance{}, false
	}
	if ev.Type != "message.new" || ev.CID != s.cid || ev.Message == nil {
		return core.Utterance{}, false
	}
	return s.client.toUtterance(*ev.Message)
}
