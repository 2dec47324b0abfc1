// Package apiclient is the typed client for the reachout HTTP surface, used
// by the CLI. Reads use a short timeout; message sends get a longer one
// because the gateway resolves the recipient before delivering.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reachout/internal/model"
)

const (
	quickTimeout = 10 * time.Second
	longTimeout  = 30 * time.Second
)

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// GenerateRequest mirrors POST /api/message/generate.
type GenerateRequest struct {
	Target       model.Profile `json:"targetProfileData"`
	Sender       model.Profile `json:"senderProfileData"`
	CustomPrompt string        `json:"customPrompt,omitempty"`
	Variations   int           `json:"variations,omitempty"`
	OpenAIAPIKey string        `json:"openaiApiKey"`
}

// SendResult mirrors the POST /api/message/send success payload.
type SendResult struct {
	MessageID string `json:"message_id"`
	SentAt    string `json:"sent_at"`
	Preview   string `json:"message_preview"`
}

// Client talks to one reachout server.
type Client struct {
	baseURL string
	quick   *http.Client
	long    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		quick:   &http.Client{Timeout: quickTimeout},
		long:    &http.Client{Timeout: longTimeout},
	}
}

// OAuthURL returns the hosted OAuth page URL.
func (c *Client) OAuthURL(ctx context.Context) (string, error) {
	var resp struct {
		OAuthURL string `json:"oauth_url"`
	}
	if err := c.call(ctx, c.quick, http.MethodGet, "/api/auth/linkedin/url", nil, &resp); err != nil {
		return "", err
	}
	return resp.OAuthURL, nil
}

// ConnectedAccount returns the most recently linked account id. A 404 comes
// back as *APIError with Status 404.
func (c *Client) ConnectedAccount(ctx context.Context) (string, error) {
	var resp struct {
		AccountID string `json:"account_id"`
	}
	if err := c.call(ctx, c.quick, http.MethodGet, "/api/auth/connected-account", nil, &resp); err != nil {
		return "", err
	}
	return resp.AccountID, nil
}

// OwnProfile fetches the linked account's own profile.
func (c *Client) OwnProfile(ctx context.Context, accountID string) (model.Profile, error) {
	var resp struct {
		Profile model.Profile `json:"profile"`
	}
	path := "/api/profile/me/" + url.PathEscape(accountID)
	if err := c.call(ctx, c.quick, http.MethodGet, path, nil, &resp); err != nil {
		return model.Profile{}, err
	}
	return resp.Profile, nil
}

// FetchProfile resolves and fetches another user's profile.
func (c *Client) FetchProfile(ctx context.Context, profileURL, accountID string) (model.Profile, error) {
	var resp struct {
		Profile model.Profile `json:"profile"`
	}
	body := map[string]string{"profileUrl": profileURL, "accountId": accountID}
	if err := c.call(ctx, c.quick, http.MethodPost, "/api/profile/fetch", body, &resp); err != nil {
		return model.Profile{}, err
	}
	return resp.Profile, nil
}

// GenerateMessages requests one or more outreach drafts.
func (c *Client) GenerateMessages(ctx context.Context, req GenerateRequest) ([]string, error) {
	var resp struct {
		Messages []string `json:"messages"`
	}
	if err := c.call(ctx, c.quick, http.MethodPost, "/api/message/generate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage delivers a message through the linked account.
func (c *Client) SendMessage(ctx context.Context, accountID, recipientID, message string) (SendResult, error) {
	var resp SendResult
	body := map[string]string{"accountId": accountID, "recipientId": recipientID, "message": message}
	if err := c.call(ctx, c.long, http.MethodPost, "/api/message/send", body, &resp); err != nil {
		return SendResult{}, err
	}
	return resp, nil
}

// Health checks the server is up.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.quick.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

func (c *Client) call(ctx context.Context, hc *http.Client, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response payload"}
	}
	if resp.StatusCode >= 400 || !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: "unexpected response payload"}
		}
	}
	return nil
}
