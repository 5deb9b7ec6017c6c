package linegateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"order-relay/internal/config"
	"order-relay/internal/interfaces"
)

// Client talks to the messaging platform's HTTP API. Calls are
// fire-and-forget from the core's perspective: callers log failures and
// move on, nothing is retried.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type replyRequest struct {
	ReplyToken string                   `json:"replyToken"`
	Messages   []interfaces.TextMessage `json:"messages"`
}

type pushRequest struct {
	To       string                   `json:"to"`
	Messages []interfaces.TextMessage `json:"messages"`
}

func (c *Client) Reply(ctx context.Context, replyToken string, messages ...interfaces.TextMessage) error {
	return c.post(ctx, "/v2/bot/message/reply", replyRequest{ReplyToken: replyToken, Messages: messages})
}

func (c *Client) Push(ctx context.Context, to string, messages ...interfaces.TextMessage) error {
	return c.post(ctx, "/v2/bot/message/push", pushRequest{To: to, Messages: messages})
}

// GetProfile looks up a user's display name. Non-success responses are
// tolerated and yield an empty profile; only transport failures error.
func (c *Client) GetProfile(ctx context.Context, userID string) (interfaces.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/bot/profile/"+userID, nil)
	if err != nil {
		return interfaces.Profile{}, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return interfaces.Profile{}, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return interfaces.Profile{}, nil
	}

	var profile interfaces.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return interfaces.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
