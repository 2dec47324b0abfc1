// Package genai generates outreach message drafts through an
// OpenAI-compatible chat-completions API. The API key is always supplied by
// the caller per request; the server never holds one.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reachout/internal/model"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"

	samplingTemperature = 0.7
	maxCompletionTokens = 150
)

// ErrMissingAPIKey is returned when a generation is requested without a key.
var ErrMissingAPIKey = errors.New("text generation API key is required")

// CredentialError means the upstream rejected the caller's API key.
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	return "invalid or missing API key: " + e.Message
}

// GenerationError is any other text-generation failure.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return "failed to generate message: " + e.Message
}

const systemPrompt = `You are a professional LinkedIn outreach specialist. Generate a personalized, concise, and engaging LinkedIn message based on the provided profile information. The message should be:
- Professional yet friendly
- Maximum 300 characters (LinkedIn message limit)
- Personalized based on the target's role, company, and industry
- Written from the sender's perspective
- Include a specific call to action
- Avoid generic templates
- Never use placeholders like [Your Name] - always use the actual sender's name provided`

// Client calls the chat-completions API. Safe for concurrent use.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   defaultModel,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateOne produces a single outreach message from target to be contacted
// and sender who writes it. custom is an optional extra instruction.
func (c *Client) GenerateOne(ctx context.Context, target, sender model.Profile, custom, apiKey string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}

	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt(target, sender, custom)},
		},
		"max_tokens":  maxCompletionTokens,
		"temperature": samplingTemperature,
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", &GenerationError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return "", &GenerationError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &GenerationError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiErrorMessage(respBody, resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
			strings.Contains(strings.ToLower(msg), "api key") {
			return "", &CredentialError{Message: msg}
		}
		return "", &GenerationError{Message: msg}
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &GenerationError{Message: "unexpected completion payload"}
	}
	if len(parsed.Choices) == 0 {
		return "", &GenerationError{Message: "no choices in response"}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// GenerateMany produces count independent variants concurrently. Results come
// back in issue order. Any single failure fails the whole batch; there is no
// deduplication, so near-identical variants are possible.
func (c *Client) GenerateMany(ctx context.Context, target, sender model.Profile, count int, custom, apiKey string) ([]string, error) {
	variants := make([]string, count)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			text, err := c.GenerateOne(gctx, target, sender, custom, apiKey)
			if err != nil {
				return err
			}
			variants[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return variants, nil
}

func userPrompt(target, sender model.Profile, custom string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate a personalized LinkedIn outreach message:

SENDER (Person writing the message):
- Name: %s
- Job Title: %s
- Company: %s

TARGET (Person receiving the message):
- Name: %s
- Job Title: %s
- Company: %s
- Industry: %s
`,
		orElse(sender.Name, "Professional"),
		orElse(sender.JobTitle, "Professional"),
		orElse(sender.Company, "Company"),
		orElse(target.Name, "Connection"),
		orElse(target.JobTitle, "Professional"),
		orElse(target.Company, "Company"),
		orElse(target.Industry, "Industry"),
	)
	if custom != "" {
		fmt.Fprintf(&b, "\nAdditional context: %s\n", custom)
	}
	fmt.Fprintf(&b, "\nWrite a message FROM %s TO %s. Use the sender's actual name, not placeholders. Make it professional and engaging.",
		orElse(sender.Name, "the sender"),
		orElse(target.Name, "the target"),
	)
	return b.String()
}

func orElse(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func apiErrorMessage(body []byte, status int) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return fmt.Sprintf("API error (status %d)", status)
}
