// Package client talks to the external conversation management API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"commerce_agent_backend/platform/config"
	"commerce_agent_backend/platform/logger"
)

// Client is an HTTP client for the conversation API. A nil Client means the
// integration is not configured; callers must check Configured before use.
type Client struct {
	baseURL   string
	accountID string
	token     string
	http      *http.Client
	log       *logger.Logger
}

type labelsRequest struct {
	Labels []string `json:"labels"`
}

type noteRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	Private     bool   `json:"private"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// NewClient builds a conversation API client from config. Returns nil when no
// base URL is configured.
func NewClient(cfg config.ConversationAPIConfig, log *logger.Logger) *Client {
	if cfg.GetConversationAPIURL() == "" {
		return nil
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.GetConversationAPIURL(), "/"),
		accountID: cfg.GetConversationAccountID(),
		token:     cfg.GetConversationAPIToken(),
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

// Configured reports whether the client can authenticate against the API.
func (c *Client) Configured() bool {
	return c != nil && c.token != ""
}

// AddLabels replaces the label set on a conversation.
func (c *Client) AddLabels(ctx context.Context, conversationID int64, labels []string) (int, error) {
	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/labels", c.baseURL, c.accountID, conversationID)
	return c.send(ctx, http.MethodPost, url, labelsRequest{Labels: labels})
}

// CreateNote posts a private note on a conversation, visible to operators only.
func (c *Client) CreateNote(ctx context.Context, conversationID int64, content string) (int, error) {
	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/messages", c.baseURL, c.accountID, conversationID)
	payload := noteRequest{
		Content:     content,
		MessageType: "outgoing",
		Private:     true,
	}
	return c.send(ctx, http.MethodPost, url, payload)
}

// Reopen flips the conversation status back to open so it lands in an
// operator's queue.
func (c *Client) Reopen(ctx context.Context, conversationID int64) (int, error) {
	url := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d", c.baseURL, c.accountID, conversationID)
	return c.send(ctx, http.MethodPatch, url, statusRequest{Status: "open"})
}

func (c *Client) send(ctx context.Context, method, url string, payload any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal conversation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("conversation api request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("conversation api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return resp.StatusCode, nil
}
