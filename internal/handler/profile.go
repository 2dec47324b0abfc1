package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"reachout/internal/model"
)

// GatewayProfiles is the slice of the gateway client the profile handler needs.
type GatewayProfiles interface {
	GetOwnProfile(ctx context.Context, accountID string) (model.Profile, error)
	ResolveAndFetchProfile(ctx context.Context, identifier, accountID string) (model.Profile, error)
}

type ProfileHandler struct {
	gw         GatewayProfiles
	production bool
}

func NewProfileHandler(gw GatewayProfiles, production bool) *ProfileHandler {
	return &ProfileHandler{gw: gw, production: production}
}

// GET /api/profile/me/{accountId}
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	profile, err := h.gw.GetOwnProfile(r.Context(), accountID)
	if err != nil {
		writeClientError(w, err, h.production)
		return
	}
	writeSuccess(w, map[string]any{"profile": profile})
}

// POST /api/profile/fetch
func (h *ProfileHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileURL string `json:"profileUrl"`
		AccountID  string `json:"accountId"`
	}
	if err := decodeBody(r, &req); err != nil || req.ProfileURL == "" || req.AccountID == "" {
		writeFailure(w, http.StatusBadRequest, "Profile URL and account ID are required")
		return
	}

	profile, err := h.gw.ResolveAndFetchProfile(r.Context(), req.ProfileURL, req.AccountID)
	if err != nil {
		writeClientError(w, err, h.production)
		return
	}
	writeSuccess(w, map[string]any{"profile": profile})
}
