package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reachout/internal/gateway"
)

type fakeGatewayAuth struct {
	oauthURL    string
	oauthErr    error
	accounts    []gateway.Account
	accountsErr error

	gotSuccessURL string
	gotFailureURL string
}

func (f *fakeGatewayAuth) RequestOAuthLink(_ context.Context, successURL, failureURL string) (string, error) {
	f.gotSuccessURL = successURL
	f.gotFailureURL = failureURL
	return f.oauthURL, f.oauthErr
}

func (f *fakeGatewayAuth) ListAccounts(context.Context) ([]gateway.Account, error) {
	return f.accounts, f.accountsErr
}

func TestOAuthURLSuccess(t *testing.T) {
	gw := &fakeGatewayAuth{oauthURL: "https://x/y"}
	h := NewAuthHandler(gw, "https://app.example.com", false)

	rr := httptest.NewRecorder()
	h.OAuthURL(rr, httptest.NewRequest(http.MethodGet, "/api/auth/linkedin/url", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decodeEnvelope(t, rr)
	if body["success"] != true || body["oauth_url"] != "https://x/y" {
		t.Fatalf("unexpected body %v", body)
	}
	if gw.gotSuccessURL != "https://app.example.com/auth/success" {
		t.Fatalf("unexpected success redirect %q", gw.gotSuccessURL)
	}
	if gw.gotFailureURL != "https://app.example.com/auth/error" {
		t.Fatalf("unexpected failure redirect %q", gw.gotFailureURL)
	}
}

func TestOAuthURLUpstreamError(t *testing.T) {
	gw := &fakeGatewayAuth{oauthErr: &gateway.UpstreamError{Op: "request oauth link", Message: "request timed out, please try again"}}
	h := NewAuthHandler(gw, "https://app.example.com", false)

	rr := httptest.NewRecorder()
	h.OAuthURL(rr, httptest.NewRequest(http.MethodGet, "/api/auth/linkedin/url", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "timed out") {
		t.Fatalf("expected timeout message, got %s", rr.Body.String())
	}
}

func TestConnectedAccountReturnsMostRecent(t *testing.T) {
	gw := &fakeGatewayAuth{accounts: []gateway.Account{{ID: "old"}, {ID: "new"}}}
	h := NewAuthHandler(gw, "", false)

	rr := httptest.NewRecorder()
	h.ConnectedAccount(rr, httptest.NewRequest(http.MethodGet, "/api/auth/connected-account", nil))

	body := decodeEnvelope(t, rr)
	if body["account_id"] != "new" {
		t.Fatalf("expected most recently linked account, got %v", body)
	}
}

func TestConnectedAccountEmptyIs404(t *testing.T) {
	h := NewAuthHandler(&fakeGatewayAuth{}, "", false)

	rr := httptest.NewRecorder()
	h.ConnectedAccount(rr, httptest.NewRequest(http.MethodGet, "/api/auth/connected-account", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	body := decodeEnvelope(t, rr)
	if body["success"] != false || body["error"] != "No accounts found" {
		t.Fatalf("unexpected body %v", body)
	}
}
