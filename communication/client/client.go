package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mcts/communication"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var ErrNotFound = errors.New("not found")

// Client talks to an inspector server.
type Client struct {
	serverURL string
	http      *http.Client
}

// NewClient returns a client for the inspector at serverURL, for example http://localhost:8080.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		http:      http.DefaultClient,
	}
}

func (c *Client) Status(ctx context.Context) (communication.Status, error) {
	var status communication.Status
	err := c.do(ctx, http.MethodGet, "/api/status", &status)
	return status, err
}

func (c *Client) Node(ctx context.Context, id int) (communication.NodeView, error) {
	var node communication.NodeView
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/nodes/%d", id), &node)
	return node, err
}

func (c *Client) RootChildren(ctx context.Context) ([]communication.NodeView, error) {
	var children []communication.NodeView
	err := c.do(ctx, http.MethodGet, "/api/root/children", &children)
	return children, err
}

// Finish asks the server's search to stop and returns the status right after.
func (c *Client) Finish(ctx context.Context) (communication.Status, error) {
	var status communication.Status
	err := c.do(ctx, http.MethodPost, "/api/finish", &status)
	return status, err
}

// Watch calls fn with every status pushed by the server until the search finishes or ctx is
// done.
func (c *Client) Watch(ctx context.Context, fn func(communication.Status)) error {
	wsURL := "ws" + strings.TrimPrefix(c.serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	for {
		var msg communication.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read status: %w", err)
		}
		if msg.Type == communication.MessageStatus && msg.Payload != nil {
			fn(*msg.Payload)
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
