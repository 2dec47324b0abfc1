package handler

import (
	"context"
	"net/http"

	"reachout/internal/gateway"
)

// GatewayAuth is the slice of the gateway client the auth handler needs.
type GatewayAuth interface {
	RequestOAuthLink(ctx context.Context, successURL, failureURL string) (string, error)
	ListAccounts(ctx context.Context) ([]gateway.Account, error)
}

type AuthHandler struct {
	gw          GatewayAuth
	frontendURL string
	production  bool
}

func NewAuthHandler(gw GatewayAuth, frontendURL string, production bool) *AuthHandler {
	return &AuthHandler{gw: gw, frontendURL: frontendURL, production: production}
}

// GET /api/auth/linkedin/url
func (h *AuthHandler) OAuthURL(w http.ResponseWriter, r *http.Request) {
	successURL := h.frontendURL + "/auth/success"
	failureURL := h.frontendURL + "/auth/error"

	oauthURL, err := h.gw.RequestOAuthLink(r.Context(), successURL, failureURL)
	if err != nil {
		writeClientError(w, err, h.production)
		return
	}
	writeSuccess(w, map[string]any{"oauth_url": oauthURL})
}

// GET /api/auth/connected-account
//
// The gateway lists accounts in link order; the most recently linked one is
// what a just-completed OAuth flow is waiting for.
func (h *AuthHandler) ConnectedAccount(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.gw.ListAccounts(r.Context())
	if err != nil {
		writeClientError(w, err, h.production)
		return
	}
	if len(accounts) == 0 {
		writeFailure(w, http.StatusNotFound, "No accounts found")
		return
	}
	writeSuccess(w, map[string]any{"account_id": accounts[len(accounts)-1].ID})
}
