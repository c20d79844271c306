package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultEndpoint    = "http://localhost:8080"
	chatRequestTimeout = 90 * time.Second
)

// manages HTTP requests to the chat REST API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// creates a chat client; an empty endpoint falls back to SALESCHAT_API_ENDPOINT, then localhost
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("SALESCHAT_API_ENDPOINT")
	}

	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: chatRequestTimeout,
		},
	}
}

// sends one chat turn with the prior history
func (c *Client) Chat(ctx context.Context, message string, history []Turn) (*ChatReply, error) {
	payload, err := json.Marshal(chatRequest{Message: message, History: history})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var reply ChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &reply, nil
}

// returns a tea.Cmd that sends a chat turn
func (c *Client) ChatCmd(message string, history []Turn) tea.Cmd {
	// copy so later appends by the model do not race the request
	snapshot := append([]Turn(nil), history...)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
		defer cancel()

		reply, err := c.Chat(ctx, message, snapshot)
		if err != nil {
			return ChatErrorMsg{query: message, err: err}
		}

		return ChatResponseMsg{query: message, reply: *reply}
	}
}

type chatRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
