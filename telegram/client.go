// Package telegram provides the Bot API client, the slash-command front-end
// and the delivery-summary notification sink.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Client is a minimal Telegram Bot API client. It implements the scheduler's
// notification sink: Notify failures are reported to the caller but must be
// treated as best-effort.
type Client struct {
	token   string
	apiBase string
	client  *http.Client
}

// NewClient creates a Client with an injectable http.Client. If nil is
// passed, a default client with a sensible timeout is used. An empty token
// yields a client that reports not ready and drops messages.
func NewClient(token string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		token:   token,
		apiBase: defaultAPIBase,
		client:  client,
	}
}

// Ready reports whether a bot token is configured.
func (c *Client) Ready() bool {
	return c.token != ""
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Notify sends a text message to a chat.
func (c *Client) Notify(chatID int64, text string) error {
	if !c.Ready() {
		return fmt.Errorf("telegram bot is not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	resp, err := c.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("telegram sendMessage: unexpected response (status %d)", resp.StatusCode)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram sendMessage: %s", parsed.Description)
	}

	return nil
}
