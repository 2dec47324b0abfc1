// Package gateway wraps the unified-messaging API that brokers LinkedIn
// account linking, profile retrieval and message delivery.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"reachout/internal/model"
)

const (
	// internalIDPrefix marks identifiers that are already gateway-internal
	// provider ids and need no lookup before a send.
	internalIDPrefix = "ACoAAA"

	profileURLMarker = "linkedin.com/in/"

	oauthLinkExpiry = time.Hour

	requestTimeout = 25 * time.Second
)

// UpstreamError is any failure reported by (or while reaching) the gateway.
// Status is the upstream HTTP status, or 0 for transport failures.
type UpstreamError struct {
	Op      string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: gateway returned %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Account is one linked messaging account.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Client is a long-lived gateway client, safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// RequestOAuthLink asks the gateway for a hosted OAuth page that links a
// LinkedIn account. The link expires one hour after creation.
func (c *Client) RequestOAuthLink(ctx context.Context, successURL, failureURL string) (string, error) {
	payload := map[string]any{
		"type":                 "create",
		"providers":            []string{"LINKEDIN"},
		"api_url":              strings.TrimSuffix(c.baseURL, "/api/v1"),
		"expiresOn":            time.Now().Add(oauthLinkExpiry).UTC().Format(time.RFC3339),
		"success_redirect_url": successURL,
		"failure_redirect_url": failureURL,
	}

	body, err := c.do(ctx, "request oauth link", http.MethodPost, "/hosted/accounts/link", nil, payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.URL == "" {
		return "", &UpstreamError{Op: "request oauth link", Message: "gateway returned no link url"}
	}
	return resp.URL, nil
}

// ListAccounts returns every linked account. No accounts is not an error.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	body, err := c.do(ctx, "list accounts", http.MethodGet, "/accounts", nil, nil)
	if err != nil {
		return nil, err
	}

	// The gateway wraps the list in {items: [...]} on newer API versions and
	// returns a bare array on older ones.
	var wrapped struct {
		Items []Account `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}
	var bare []Account
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, &UpstreamError{Op: "list accounts", Message: "unexpected account list payload"}
	}
	return bare, nil
}

// GetOwnProfile fetches the linked account's own profile. The account shape
// carries far fewer fields than a user lookup; see model.OwnAccountSource.
func (c *Client) GetOwnProfile(ctx context.Context, accountID string) (model.Profile, error) {
	body, err := c.do(ctx, "fetch profile", http.MethodGet, "/accounts/"+url.PathEscape(accountID), nil, nil)
	if err != nil {
		return model.Profile{}, err
	}

	var src model.OwnAccountSource
	if err := json.Unmarshal(body, &src); err != nil {
		return model.Profile{}, &UpstreamError{Op: "fetch profile", Message: "unexpected account payload"}
	}
	return src.Normalize(), nil
}

// ResolveAndFetchProfile looks up another user's profile. identifier is either
// a raw provider id / public identifier, or a full profile URL whose trailing
// path segment becomes the search key.
func (c *Client) ResolveAndFetchProfile(ctx context.Context, identifier, accountID string) (model.Profile, error) {
	key := SearchKey(identifier)

	query := url.Values{"account_id": {accountID}}
	body, err := c.do(ctx, "fetch user profile", http.MethodGet, "/users/"+url.PathEscape(key), query, nil)
	if err != nil {
		return model.Profile{}, err
	}

	var src model.SearchedUserSource
	if err := json.Unmarshal(body, &src); err != nil {
		return model.Profile{}, &UpstreamError{Op: "fetch user profile", Message: "unexpected user payload"}
	}
	return src.Normalize(), nil
}

// SendMessage delivers text to recipient through the linked account and
// returns the gateway chat id.
//
// Recipients given as profile URLs or public identifiers are first resolved
// to an internal provider id. A failed resolution does not abort the send:
// the original identifier is used as-is. That keeps sends working for callers
// who already hold a provider id the prefix check misclassifies, at the cost
// of possibly handing the gateway an id it cannot route.
func (c *Client) SendMessage(ctx context.Context, accountID, recipient, text string) (string, error) {
	resolved := recipient
	if needsResolution(recipient) {
		id, err := c.lookupProviderID(ctx, recipient, accountID)
		if err == nil && id != "" {
			resolved = id
		} else {
			c.log.Warn("recipient resolution failed, sending with original identifier",
				zap.String("recipient", recipient),
				zap.Error(err))
		}
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("account_id", accountID)
	_ = form.WriteField("text", text)
	_ = form.WriteField("attendees_ids", resolved)
	_ = form.WriteField("linkedin[api]", "classic")
	if err := form.Close(); err != nil {
		return "", &UpstreamError{Op: "send message", Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chats", &buf)
	if err != nil {
		return "", &UpstreamError{Op: "send message", Message: err.Error()}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-API-KEY", c.apiKey)

	body, err := c.execute(req, "send message")
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &UpstreamError{Op: "send message", Message: "unexpected chat payload"}
	}
	return resp.ID, nil
}

func (c *Client) lookupProviderID(ctx context.Context, identifier, accountID string) (string, error) {
	key := SearchKey(identifier)
	query := url.Values{"account_id": {accountID}}
	body, err := c.do(ctx, "resolve recipient", http.MethodGet, "/users/"+url.PathEscape(key), query, nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		ProviderID string `json:"provider_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return resp.ProviderID, nil
}

func needsResolution(recipient string) bool {
	return strings.Contains(recipient, profileURLMarker) || !strings.HasPrefix(recipient, internalIDPrefix)
}

// SearchKey reduces a profile identifier to the gateway search key. For
// profile URLs that is the last non-empty path segment; anything else passes
// through untouched.
func SearchKey(identifier string) string {
	if !strings.Contains(identifier, profileURLMarker) {
		return identifier
	}
	parts := strings.Split(identifier, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(parts[i]); seg != "" {
			return strings.SplitN(seg, "?", 2)[0]
		}
	}
	return identifier
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &UpstreamError{Op: op, Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: err.Error()}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, op)
}

func (c *Client) execute(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, &UpstreamError{Op: op, Message: "request timed out, please try again"}
		}
		return nil, &UpstreamError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: op, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{Op: op, Status: resp.StatusCode, Message: upstreamMessage(data)}
	}
	return data, nil
}

// upstreamMessage extracts the gateway's error message when the body is the
// usual {message: ...} JSON, otherwise falls back to the raw body.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}
