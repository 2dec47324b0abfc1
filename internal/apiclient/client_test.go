package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectedAccountSuccessAndNotFound(t *testing.T) {
	found := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/connected-account", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if !found {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "No accounts found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "account_id": "acc_1"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.ConnectedAccount(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "No accounts found", apiErr.Message)

	found = true
	id, err := c.ConnectedAccount(context.Background())
	require.NoError(t, err)
	require.Equal(t, "acc_1", id)
}

func TestFetchProfileSendsBodyAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/profile/fetch", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "https://linkedin.com/in/jane", body["profileUrl"])
		require.Equal(t, "acc_1", body["accountId"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"profile": map[string]any{"name": "Jane", "company": "Acme"},
		})
	}))
	defer srv.Close()

	p, err := New(srv.URL).FetchProfile(context.Background(), "https://linkedin.com/in/jane", "acc_1")
	require.NoError(t, err)
	require.Equal(t, "Jane", p.Name)
	require.Equal(t, "Acme", p.Company)
}

func TestSendMessageUsesLongClientAndDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/message/send", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":         true,
			"message_sent":    true,
			"message_id":      "chat_1",
			"sent_at":         "2025-06-01T12:00:00Z",
			"message_preview": "hello...",
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL).SendMessage(context.Background(), "acc_1", "ACoAAAx", "hello")
	require.NoError(t, err)
	require.Equal(t, "chat_1", res.MessageID)
	require.Equal(t, "hello...", res.Preview)
}

func TestEnvelopeFailureWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	_, err := New(srv.URL).OAuthURL(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestTimeoutClassesDiffer(t *testing.T) {
	c := New("http://localhost:0")
	require.Less(t, c.quick.Timeout, c.long.Timeout)
}
