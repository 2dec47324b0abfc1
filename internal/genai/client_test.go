package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"reachout/internal/model"
)

func completionResponse(text string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": text}},
		},
	}
	encoded, _ := json.Marshal(resp)
	return string(encoded)
}

func TestGenerateOneRequiresAPIKey(t *testing.T) {
	c := NewClient("http://unused")
	_, err := c.GenerateOne(context.Background(), model.Profile{}, model.Profile{}, "", "")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateOneBuildsPrompt(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionResponse("  Hi John, let's talk.  ")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	target := model.Profile{Name: "John Smith", JobTitle: "CTO", Company: "Acme", Industry: "Go"}
	sender := model.Profile{Name: "Jane Doe", JobTitle: "AE", Company: "SalesCo"}

	text, err := c.GenerateOne(context.Background(), target, sender, "mention the conference", "sk-test")
	require.NoError(t, err)
	require.Equal(t, "Hi John, let's talk.", text, "content must be trimmed")

	require.Equal(t, "gpt-4o", gotBody["model"])
	require.EqualValues(t, 150, gotBody["max_tokens"])
	require.EqualValues(t, 0.7, gotBody["temperature"])

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)["content"].(string)
	require.Contains(t, user, "Name: Jane Doe")
	require.Contains(t, user, "Name: John Smith")
	require.Contains(t, user, "Additional context: mention the conference")
	require.Contains(t, user, "FROM Jane Doe TO John Smith")
}

func TestGenerateOneFallbackInterpolation(t *testing.T) {
	var userContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		userContent = body["messages"].([]any)[1].(map[string]any)["content"].(string)
		_, _ = w.Write([]byte(completionResponse("hello")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GenerateOne(context.Background(), model.Profile{}, model.Profile{}, "", "sk-test")
	require.NoError(t, err)
	require.Contains(t, userContent, "Name: Professional")
	require.Contains(t, userContent, "Name: Connection")
	require.Contains(t, userContent, "Company: Company")
	require.Contains(t, userContent, "Industry: Industry")
	require.NotContains(t, userContent, "Additional context")
}

func TestGenerateOneInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GenerateOne(context.Background(), model.Profile{}, model.Profile{}, "", "sk-bad")
	var cred *CredentialError
	require.ErrorAs(t, err, &cred)
	require.Contains(t, cred.Message, "Incorrect API key")
}

func TestGenerateOneUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GenerateOne(context.Background(), model.Profile{}, model.Profile{}, "", "sk-test")
	var gen *GenerationError
	require.ErrorAs(t, err, &gen)
	require.Contains(t, gen.Message, "overloaded")
}

func TestGenerateManyIssuesIndependentCalls(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		_, _ = w.Write([]byte(completionResponse(fmt.Sprintf("variant %d", n))))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	variants, err := c.GenerateMany(context.Background(), model.Profile{}, model.Profile{}, 3, "", "sk-test")
	require.NoError(t, err)
	require.Len(t, variants, 3)
	require.EqualValues(t, 3, calls.Load(), "each variant must be its own upstream call")
	for _, v := range variants {
		require.NotEmpty(t, v)
	}
}

func TestGenerateManyAllOrNothing(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"message": "overloaded"}}`))
			return
		}
		_, _ = w.Write([]byte(completionResponse("ok")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	variants, err := c.GenerateMany(context.Background(), model.Profile{}, model.Profile{}, 3, "", "sk-test")
	require.Error(t, err)
	require.Nil(t, variants)
}
