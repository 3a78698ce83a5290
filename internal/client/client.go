// Package client provides a JSON API client for the Cosmus server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cosmusapp/cosmus-go/internal/metrics"
	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/server"
)

// Client is a JSON API client for the Cosmus server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a new API client.
// If endpoint is empty, uses COSMUS_SERVER_URL env var or defaults to
// localhost:8787. Timeout can be configured via COSMUS_CLIENT_TIMEOUT
// (default 2m; model turns with retries can take a while).
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("COSMUS_SERVER_URL")
	}
	if endpoint == "" {
		endpoint = "http://localhost:8787"
	}
	endpoint = strings.TrimRight(endpoint, "/")

	timeout := 2 * time.Minute
	if t := os.Getenv("COSMUS_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do executes one request against the server and decodes the JSON response
// into result. Fallback statuses (busy, failed) still carry a renderable
// body, so they are decoded rather than treated as errors.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable, http.StatusBadGateway:
	default:
		return fmt.Errorf("server error: %s - %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Chat sends one user turn and returns the server's response. A busy or
// failed turn is not an error here: the response carries a canned reply and
// the Busy/Failed flags instead.
func (c *Client) Chat(ctx context.Context, name, message string) (*server.ChatResponse, error) {
	var resp server.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat", server.ChatRequest{Name: name, Message: message}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Greeting fetches the opening welcome message.
func (c *Client) Greeting(ctx context.Context) (*server.ChatResponse, error) {
	var resp server.ChatResponse
	if err := c.do(ctx, http.MethodGet, "/greeting", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Media searches the archive for the query and returns the resolved media,
// or nil when nothing usable was found.
func (c *Client) Media(ctx context.Context, query string) (*models.ResolvedMedia, error) {
	var resp server.MediaResponse
	if err := c.do(ctx, http.MethodGet, "/media?q="+url.QueryEscape(query), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}

// RandomMedia returns a random piece of media from the archive, or nil when
// nothing usable was found.
func (c *Client) RandomMedia(ctx context.Context) (*models.ResolvedMedia, error) {
	var resp server.MediaResponse
	if err := c.do(ctx, http.MethodGet, "/media/random", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}

// Stats returns the server's runtime statistics.
func (c *Client) Stats(ctx context.Context) (*metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// StreamEvent is one websocket frame from the server: a reply for the turn,
// followed by a media frame when the reply requested an illustration.
type StreamEvent struct {
	Type  string                  `json:"type"`
	ID    string                  `json:"id"`
	Reply *models.StructuredReply `json:"reply,omitempty"`
	Media *models.ResolvedMedia   `json:"media,omitempty"`
	Error string                  `json:"error,omitempty"`
}

// ChatStream sends one turn over the websocket endpoint and invokes onEvent
// for each frame the server pushes back, returning once the turn is fully
// delivered (a reply with no media request, or the media frame following
// one). Return an error from onEvent to abort.
func (c *Client) ChatStream(ctx context.Context, name, message string, onEvent func(StreamEvent) error) error {
	wsEndpoint := c.endpoint
	wsEndpoint = strings.Replace(wsEndpoint, "http://", "ws://", 1)
	wsEndpoint = strings.Replace(wsEndpoint, "https://", "wss://", 1)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsEndpoint+"/ws", nil)
	if err != nil {
		return fmt.Errorf("websocket connect: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(server.ChatRequest{Name: name, Message: message}); err != nil {
		return fmt.Errorf("send turn: %w", err)
	}

	expectMedia := false
	for {
		var event StreamEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}

		if err := onEvent(event); err != nil {
			return err
		}

		switch event.Type {
		case "error":
			return fmt.Errorf("stream error: %s", event.Error)
		case "reply":
			if event.Reply == nil || event.Reply.ImageQuery == "" {
				return nil
			}
			expectMedia = true
		case "media":
			if expectMedia {
				return nil
			}
		}
	}
}
