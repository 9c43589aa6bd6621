package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/pkg/log"
	"github.com/sandevgo/meetbot/pkg/retry"
)

// Client talks to the Stream Chat REST API with a server-side token.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	token   string

	userID      string
	botName     string
	channelType string
	channelID   string
	fetchLimit  int
}

// Message is a single chat message as the API returns it.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewClient(cfg *config.StreamConfig, botName string) (*Client, error) {
	token, err := serverToken(cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("sign server token: %w", err)
	}

	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		token:       token,
		userID:      cfg.UserID,
		botName:     botName,
		channelType: cfg.ChannelType,
		channelID:   cfg.ChannelID(),
		fetchLimit:  cfg.FetchLimit,
	}, nil
}

// serverToken builds the signed JWT Stream expects from backend callers.
func serverToken(secret string) (string, error) {
	claims := jwt.MapClaims{"server": true}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("api_key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", c.token)
	req.Header.Set("stream-auth-type", "jwt")
}

func drainError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("stream api status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
}

// Connect makes sure the bot user exists and the channel is created,
// retrying while the backend warms up. Called once at startup.
func (c *Client) Connect(ctx context.Context) error {
	retrier := retry.NewDefaultRetrier()

	if err := retrier.Do(ctx, func() error {
		return c.upsertUser(ctx)
	}); err != nil {
		return fmt.Errorf("upsert bot user: %w", err)
	}

	if err := retrier.Do(ctx, func() error {
		_, err := c.QueryMessages(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("channel", c.channelID).
		Str("user", c.userID).
		Msg("connected to chat backend")
	return nil
}

func (c *Client) upsertUser(ctx context.Context) error {
	body := map[string]any{
		"users": map[string]any{
			c.userID: map[string]any{
				"id":   c.userID,
				"name": c.botName,
				"role": "admin",
			},
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/users", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return drainError(resp)
	}
	return nil
}

// QueryMessages returns the most recent channel messages in chronological
// order. The channel is created on first query.
func (c *Client) QueryMessages(ctx context.Context) ([]Message, error) {
	path := fmt.Sprintf("/channels/%s/%s/query", c.channelType, c.channelID)
	body := map[string]any{
		"state":    true,
		"messages": map[string]any{"limit": c.fetchLimit},
		"data":     map[string]any{"created_by_id": c.userID},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, drainError(resp)
	}

	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode channel state: %w", err)
	}
	return out.Messages, nil
}

// SendMessage posts text to the channel as the bot user.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	path := fmt.Sprintf("/channels/%s/%s/message", c.channelType, c.channelID)
	body := map[string]any{
		"message": map[string]any{
			"text":    text,
			"user_id": c.userID,
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return drainError(resp)
	}
	return nil
}

// SendAttachment uploads a file to the channel and posts a message linking
// it, used for synthesized audio replies.
func (c *Client) SendAttachment(ctx context.Context, name, contentType string, data []byte) error {
	fileURL, err := c.uploadFile(ctx, name, contentType, data)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/channels/%s/%s/message", c.channelType, c.channelID)
	body := map[string]any{
		"message": map[string]any{
			"text":    "",
			"user_id": c.userID,
			"attachments": []map[string]any{
				{
					"type":      "audio",
					"asset_url": fileURL,
					"title":     name,
				},
			},
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return drainError(resp)
	}
	return nil
}

func (c *Client) uploadFile(ctx context.Context, name, contentType string, data []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.WriteField("user_id", c.userID); err != nil {
		return "", fmt.Errorf("write form field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	path := fmt.Sprintf("/channels/%s/%s/file", c.channelType, c.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", drainError(resp)
	}

	var out struct {
		File string `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.File, nil
}
